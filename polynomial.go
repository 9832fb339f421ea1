package zkthresh

import (
	"sync"
)

// Crossover thresholds between multiplication strategies (§4.C). Not
// semantically load-bearing (spec §9 Open Questions); chosen empirically
// and kept as package variables so benchmarking can retune them.
var (
	naiveCrossover = 32
	nttCrossover   = 256
	// parallelThreshold is the minimum operand size before a recursive
	// step is handed to its own goroutine (§5: "partition only above a
	// tunable threshold (default 1024 scalars)").
	parallelThreshold = 1024
)

// Polynomial is a dense, ordered list of scalar coefficients
// [a0, a1, ..., ad]. Degree is len-1; the zero polynomial is the empty
// list. Grounded on the teacher's polynomial.go (Horner evaluation,
// Zeroize), generalized to the spec's full algebra (§4.C).
type Polynomial struct {
	coefficients []Scalar
}

// NewPolynomial builds a polynomial from coefficients, lowest degree
// first. The slice is trimmed of trailing zero coefficients.
func NewPolynomial(coefficients []Scalar) *Polynomial {
	return &Polynomial{coefficients: trimTrailingZeros(coefficients)}
}

// NewRandomPolynomial creates a polynomial of the given degree with a
// fixed constant term and uniformly random higher-degree coefficients.
// Grounded on the teacher's NewRandomPolynomial, kept curve-agnostic to
// nothing since the engine now has exactly one group (§1.A of
// SPEC_FULL.md).
func NewRandomPolynomial(degree int, constantTerm Scalar) (*Polynomial, error) {
	if degree < 0 {
		return nil, ErrDegreeOverflow
	}
	coefficients := make([]Scalar, degree+1)
	coefficients[0] = constantTerm
	for i := 1; i <= degree; i++ {
		coeff, err := RandomScalar()
		if err != nil {
			return nil, ErrRngUnavailable.WithCause(err)
		}
		coefficients[i] = coeff
	}
	return &Polynomial{coefficients: coefficients}, nil
}

func trimTrailingZeros(coeffs []Scalar) []Scalar {
	n := len(coeffs)
	for n > 0 && coeffs[n-1] != nil && coeffs[n-1].IsZero() {
		n--
	}
	return coeffs[:n]
}

// Degree returns len(coefficients)-1; the zero polynomial has degree -1.
func (p *Polynomial) Degree() int { return len(p.coefficients) - 1 }

// Coefficients returns a defensive copy of the coefficient list.
func (p *Polynomial) Coefficients() []Scalar {
	out := make([]Scalar, len(p.coefficients))
	copy(out, p.coefficients)
	return out
}

// Evaluate computes f(x) via Horner's method.
func (p *Polynomial) Evaluate(x Scalar) Scalar {
	if len(p.coefficients) == 0 {
		return ScalarZero()
	}
	result := p.coefficients[len(p.coefficients)-1]
	for i := len(p.coefficients) - 2; i >= 0; i-- {
		result = result.Mul(x).Add(p.coefficients[i])
	}
	return result
}

// Zeroize overwrites every coefficient before release (§5, §9).
func (p *Polynomial) Zeroize() {
	for _, coeff := range p.coefficients {
		if coeff != nil {
			coeff.Zeroize()
		}
	}
	p.coefficients = nil
}

// Add returns the pointwise sum of p and q, padded with zero.
func Add(p, q []Scalar) []Scalar {
	n := len(p)
	if len(q) > n {
		n = len(q)
	}
	out := make([]Scalar, n)
	for i := 0; i < n; i++ {
		a, b := coeffAt(p, i), coeffAt(q, i)
		out[i] = a.Add(b)
	}
	return trimTrailingZeros(out)
}

// Sub returns the pointwise difference p - q, padded with zero.
func Sub(p, q []Scalar) []Scalar {
	n := len(p)
	if len(q) > n {
		n = len(q)
	}
	out := make([]Scalar, n)
	for i := 0; i < n; i++ {
		a, b := coeffAt(p, i), coeffAt(q, i)
		out[i] = a.Sub(b)
	}
	return trimTrailingZeros(out)
}

// ScalarMulPoly multiplies every coefficient of p by c.
func ScalarMulPoly(p []Scalar, c Scalar) []Scalar {
	out := make([]Scalar, len(p))
	for i, coeff := range p {
		out[i] = coeff.Mul(c)
	}
	return trimTrailingZeros(out)
}

func coeffAt(p []Scalar, i int) Scalar {
	if i < len(p) {
		return p[i]
	}
	return ScalarZero()
}

// Derivative returns the coefficient list of p', where the k-th
// coefficient a_k contributes k*a_k at index k-1.
func Derivative(p []Scalar) []Scalar {
	if len(p) <= 1 {
		return nil
	}
	out := make([]Scalar, len(p)-1)
	for i := 1; i < len(p); i++ {
		out[i-1] = p[i].Mul(ScalarFromUint64(uint64(i)))
	}
	return trimTrailingZeros(out)
}

// Mul multiplies two coefficient lists, dispatching by result size per
// §4.C: schoolbook below naiveCrossover, Karatsuba up to nttCrossover,
// and (since no NTT-friendly root of unity is available for this field,
// see SPEC_FULL.md §1.C) Karatsuba again above it. All paths are
// bit-exact with schoolbook by construction.
func Mul(a, b []Scalar) []Scalar {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	resultLen := len(a) + len(b) - 1
	if resultLen <= naiveCrossover {
		return naiveMul(a, b)
	}
	return karatsubaMul(a, b)
}

func naiveMul(a, b []Scalar) []Scalar {
	out := make([]Scalar, len(a)+len(b)-1)
	for i := range out {
		out[i] = ScalarZero()
	}
	for i, ca := range a {
		if ca.IsZero() {
			continue
		}
		for j, cb := range b {
			out[i+j] = out[i+j].Add(ca.Mul(cb))
		}
	}
	return trimTrailingZeros(out)
}

// karatsubaMul implements the standard three-multiplication recursion,
// grounded on the original Rust source's lagrange_fft.rs karatsuba_mul /
// parallel_karatsuba_mul, translated from rayon::join into a goroutine +
// WaitGroup pair gated by parallelThreshold (§5).
func karatsubaMul(a, b []Scalar) []Scalar {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	if n <= naiveCrossover {
		return naiveMul(a, b)
	}

	m := n / 2
	aLow, aHigh := splitAt(a, m)
	bLow, bHigh := splitAt(b, m)

	var z0, z2 []Scalar
	if n >= parallelThreshold {
		var wg sync.WaitGroup
		wg.Add(2)
		go func() { defer wg.Done(); z0 = karatsubaMul(aLow, bLow) }()
		go func() { defer wg.Done(); z2 = karatsubaMul(aHigh, bHigh) }()
		wg.Wait()
	} else {
		z0 = karatsubaMul(aLow, bLow)
		z2 = karatsubaMul(aHigh, bHigh)
	}

	aSum := Add(aLow, aHigh)
	bSum := Add(bLow, bHigh)
	z1 := Sub(Sub(karatsubaMul(aSum, bSum), z0), z2)

	out := make([]Scalar, len(a)+len(b)-1)
	for i := range out {
		out[i] = ScalarZero()
	}
	for i, c := range z0 {
		out[i] = out[i].Add(c)
	}
	for i, c := range z1 {
		if i+m < len(out) {
			out[i+m] = out[i+m].Add(c)
		}
	}
	for i, c := range z2 {
		if i+2*m < len(out) {
			out[i+2*m] = out[i+2*m].Add(c)
		}
	}
	return trimTrailingZeros(out)
}

func splitAt(p []Scalar, m int) (low, high []Scalar) {
	if len(p) <= m {
		return p, nil
	}
	return p[:m], p[m:]
}

// ProductTree is a balanced binary tree of partial products of linear
// factors {(X - x_i)}, used by MultipointEvaluate and fast Lagrange
// interpolation (§4.C).
type ProductTree struct {
	poly        []Scalar
	left, right *ProductTree
	leafIndex   int // valid only on leaves
	isLeaf      bool
}

// BuildProductTree constructs the tree Π(X - x_i) bottom-up. Cost is
// O(M(n) log n) where M is Mul.
func BuildProductTree(xs []Scalar) *ProductTree {
	if len(xs) == 0 {
		return &ProductTree{poly: []Scalar{ScalarOne()}, isLeaf: true, leafIndex: -1}
	}
	if len(xs) == 1 {
		return &ProductTree{
			poly:      []Scalar{xs[0].Negate(), ScalarOne()},
			isLeaf:    true,
			leafIndex: 0,
		}
	}
	mid := len(xs) / 2
	leftLeaves := buildLeaves(xs[:mid], 0)
	rightLeaves := buildLeaves(xs[mid:], mid)
	return &ProductTree{
		poly:  Mul(leftLeaves.poly, rightLeaves.poly),
		left:  leftLeaves,
		right: rightLeaves,
	}
}

func buildLeaves(xs []Scalar, offset int) *ProductTree {
	if len(xs) == 1 {
		return &ProductTree{
			poly:      []Scalar{xs[0].Negate(), ScalarOne()},
			isLeaf:    true,
			leafIndex: offset,
		}
	}
	mid := len(xs) / 2
	left := buildLeaves(xs[:mid], offset)
	right := buildLeaves(xs[mid:], offset+mid)
	return &ProductTree{poly: Mul(left.poly, right.poly), left: left, right: right}
}

// MultipointEvaluate evaluates poly at every x_i using recursive
// remaindering down tree, returning values in the same order as the
// original index assignment used to build tree.
func MultipointEvaluate(poly []Scalar, tree *ProductTree, n int) []Scalar {
	out := make([]Scalar, n)
	evalDown(poly, tree, out)
	return out
}

func evalDown(poly []Scalar, node *ProductTree, out []Scalar) {
	if node.isLeaf {
		if node.leafIndex < 0 {
			return
		}
		x := node.poly[0].Negate()
		out[node.leafIndex] = evaluateSlice(poly, x)
		return
	}
	_, rLeft := polyDivMod(poly, node.left.poly)
	_, rRight := polyDivMod(poly, node.right.poly)
	evalDown(rLeft, node.left, out)
	evalDown(rRight, node.right, out)
}

func evaluateSlice(poly []Scalar, x Scalar) Scalar {
	if len(poly) == 0 {
		return ScalarZero()
	}
	result := poly[len(poly)-1]
	for i := len(poly) - 2; i >= 0; i-- {
		result = result.Mul(x).Add(poly[i])
	}
	return result
}

// polyDivMod performs schoolbook polynomial division, returning
// (quotient, remainder). divisor must be monic (leading coefficient 1),
// which every product-tree node satisfies by construction.
func polyDivMod(p, divisor []Scalar) (quotient, remainder []Scalar) {
	remainder = append([]Scalar(nil), padTo(p, len(p))...)
	divDeg := len(divisor) - 1
	if len(p)-1 < divDeg {
		return nil, trimTrailingZeros(remainder)
	}
	quotient = make([]Scalar, len(p)-divDeg)
	for i := range quotient {
		quotient[i] = ScalarZero()
	}
	for remainder = trimTrailingZeros(remainder); len(remainder)-1 >= divDeg && len(remainder) > 0; remainder = trimTrailingZeros(remainder) {
		deg := len(remainder) - 1
		coeff := remainder[deg]
		shift := deg - divDeg
		quotient[shift] = coeff
		for i, dc := range divisor {
			remainder[shift+i] = remainder[shift+i].Sub(dc.Mul(coeff))
		}
	}
	return quotient, remainder
}

func padTo(p []Scalar, n int) []Scalar {
	out := make([]Scalar, n)
	copy(out, p)
	for i := len(p); i < n; i++ {
		out[i] = ScalarZero()
	}
	return out
}

// FastLagrangeAtZero computes f(0) given (x_i, y_i) pairs using the
// product-tree / derivative method of §4.C:
//
//	Q(X) = Π(X - x_j); secret = -Q(0)·Σ y_i / (x_i·Q'(x_i))
//
// with all inversions batched via Montgomery's trick into a single
// field inversion. Grounded on the original Rust source's
// lagrange_fft.rs recover_secret_fft.
func FastLagrangeAtZero(xs, ys []Scalar) (Scalar, error) {
	if len(xs) == 0 {
		return nil, ErrEmptyInput
	}
	if len(xs) != len(ys) {
		return nil, ErrInternal
	}
	if err := checkDistinctNonzero(xs); err != nil {
		return nil, err
	}

	tree := BuildProductTree(xs)
	q0 := ScalarZero()
	if len(tree.poly) > 0 {
		q0 = tree.poly[0]
	}
	qDeriv := Derivative(tree.poly)
	qPrimeAtX := MultipointEvaluate(qDeriv, tree, len(xs))

	denominators := make([]Scalar, len(xs))
	for i, x := range xs {
		if qPrimeAtX[i].IsZero() {
			return nil, ErrInternal
		}
		denominators[i] = x.Mul(qPrimeAtX[i])
	}
	invDenominators, err := BatchInvert(denominators)
	if err != nil {
		return nil, ErrInternal.WithCause(err)
	}

	secret := ScalarZero()
	for i, y := range ys {
		term := y.Mul(invDenominators[i])
		secret = secret.Add(term)
	}
	secret = secret.Mul(q0.Negate())
	return secret, nil
}

// SlowLagrangeAtZero computes f(0) via direct O(t^2) Lagrange
// interpolation. It exists to cross-check FastLagrangeAtZero (§8: "Fast
// Lagrange = slow Lagrange for every t <= 16") and is also used directly
// for small t, grounded on the teacher's shamir.go
// ReconstructSecret double loop.
func SlowLagrangeAtZero(xs, ys []Scalar) (Scalar, error) {
	if len(xs) == 0 {
		return nil, ErrEmptyInput
	}
	if len(xs) != len(ys) {
		return nil, ErrInternal
	}
	if err := checkDistinctNonzero(xs); err != nil {
		return nil, err
	}

	secret := ScalarZero()
	for i := range xs {
		numerator := ScalarOne()
		denominator := ScalarOne()
		for j := range xs {
			if i == j {
				continue
			}
			numerator = numerator.Mul(xs[j].Negate())
			denominator = denominator.Mul(xs[i].Sub(xs[j]))
		}
		denomInv, err := denominator.Invert()
		if err != nil {
			return nil, ErrInternal.WithCause(err)
		}
		coefficient := numerator.Mul(denomInv)
		secret = secret.Add(ys[i].Mul(coefficient))
	}
	return secret, nil
}

func checkDistinctNonzero(xs []Scalar) error {
	seen := make(map[string]bool, len(xs))
	for _, x := range xs {
		if x.IsZero() {
			return ErrZeroAbscissa
		}
		key := string(x.Bytes())
		if seen[key] {
			return ErrDuplicateIndex
		}
		seen[key] = true
	}
	return nil
}

// BatchInvert inverts every scalar in one pass using Montgomery's
// trick: one field inversion plus 3(n-1) multiplications instead of n
// inversions. Grounded on the teacher's utils.go BatchInvert,
// generalized off the removed Curve parameter (the engine now has a
// single group).
func BatchInvert(scalars []Scalar) ([]Scalar, error) {
	n := len(scalars)
	if n == 0 {
		return nil, nil
	}
	for _, s := range scalars {
		if s.IsZero() {
			return nil, ErrZeroAbscissa
		}
	}
	if n == 1 {
		inv, err := scalars[0].Invert()
		if err != nil {
			return nil, err
		}
		return []Scalar{inv}, nil
	}

	partials := make([]Scalar, n)
	partials[0] = scalars[0]
	for i := 1; i < n; i++ {
		partials[i] = partials[i-1].Mul(scalars[i])
	}

	allInv, err := partials[n-1].Invert()
	if err != nil {
		return nil, err
	}

	inverses := make([]Scalar, n)
	for i := n - 1; i > 0; i-- {
		inverses[i] = allInv.Mul(partials[i-1])
		allInv = allInv.Mul(scalars[i])
	}
	inverses[0] = allInv
	return inverses, nil
}
