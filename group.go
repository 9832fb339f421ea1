package zkthresh

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"runtime"

	"filippo.io/edwards25519"
)

// Scalar is an element of the prime-order scalar field backing the group.
// All arithmetic is constant-time courtesy of filippo.io/edwards25519.
type Scalar interface {
	Bytes() []byte
	String() string

	Add(Scalar) Scalar
	Sub(Scalar) Scalar
	Mul(Scalar) Scalar
	Negate() Scalar
	Invert() (Scalar, error)

	Equal(Scalar) bool
	IsZero() bool

	// Zeroize overwrites the scalar's internal representation. Called on
	// every exit path that owns secret material (§5 of the design doc).
	Zeroize()
}

// Point is an element of the prime-order group used for commitments and
// public keys.
type Point interface {
	Bytes() []byte
	CompressedBytes() []byte
	String() string

	Add(Point) Point
	Sub(Point) Point
	Mul(Scalar) Point
	Negate() Point

	Equal(Point) bool
	IsIdentity() bool
}

const (
	// ScalarSize is the canonical encoding width of a scalar (§6).
	ScalarSize = 32
	// PointSize is the canonical encoding width of a compressed point (§6).
	PointSize = 32
)

// Common errors surfaced by the group layer. The wire decoders in wire.go
// wrap them into ErrSerialization; the exported functions of this file
// return them unwrapped.
var (
	errInvalidScalarLength = fmt.Errorf("invalid scalar length")
	errInvalidPointLength  = fmt.Errorf("invalid point length")
	errInvalidScalar       = fmt.Errorf("invalid scalar encoding")
	errInvalidPoint        = fmt.Errorf("invalid point encoding")
	errScalarZero          = fmt.Errorf("scalar is zero")
)

// RandomScalar draws a uniformly random nonzero-biased scalar from the OS
// entropy source. It is the sole blocking call in the engine (§5).
func RandomScalar() (Scalar, error) {
	var buf [64]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return nil, err
	}
	s, err := edwards25519.NewScalar().SetUniformBytes(buf[:])
	if err != nil {
		return nil, err
	}
	for i := range buf {
		buf[i] = 0
	}
	return newScalar(s), nil
}

// ScalarFromUint64 lifts a small integer into the field. Used for share
// indices 1..n (§3 "Share").
func ScalarFromUint64(v uint64) Scalar {
	var buf [32]byte
	for i := 0; i < 8; i++ {
		buf[i] = byte(v >> (8 * i))
	}
	s, err := edwards25519.NewScalar().SetCanonicalBytes(buf[:])
	if err != nil {
		// buf is always < q for any uint64 value, so this cannot happen.
		panic("zkthresh: canonical scalar encoding rejected for a reduced value")
	}
	return newScalar(s)
}

// ScalarZero returns the additive identity.
func ScalarZero() Scalar { return newScalar(edwards25519.NewScalar()) }

// ScalarOne returns the multiplicative identity.
func ScalarOne() Scalar { return ScalarFromUint64(1) }

// ScalarFromCanonicalBytes decodes a 32-byte little-endian canonical
// reduction, rejecting non-canonical (>= q) encodings per §6.
func ScalarFromCanonicalBytes(data []byte) (Scalar, error) {
	if len(data) != ScalarSize {
		return nil, errInvalidScalarLength
	}
	s, err := edwards25519.NewScalar().SetCanonicalBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidScalar, err)
	}
	return newScalar(s), nil
}

// ScalarFromUniformBytes reduces a uniform byte string of at least 32
// bytes into a scalar, used for hash-to-scalar (§4.B) and batch
// verification weights. Only the first 64 bytes are used; shorter input
// is zero-padded to 64 bytes. Unlike ScalarFromCanonicalBytes it never
// rejects input of 32 bytes or more.
func ScalarFromUniformBytes(data []byte) (Scalar, error) {
	if len(data) < 32 {
		return nil, errInvalidScalarLength
	}
	buf := make([]byte, 64)
	copy(buf, data)
	s, err := edwards25519.NewScalar().SetUniformBytes(buf)
	if err != nil {
		return nil, err
	}
	return newScalar(s), nil
}

// scalarImpl wraps an edwards25519 scalar. A runtime finalizer is a backup
// cleanup path; callers must still call Zeroize explicitly on every exit
// (§5, §9 ownership notes) rather than rely on GC timing.
type scalarImpl struct {
	inner *edwards25519.Scalar
}

func newScalar(s *edwards25519.Scalar) *scalarImpl {
	out := &scalarImpl{inner: s}
	runtime.SetFinalizer(out, (*scalarImpl).finalize)
	return out
}

func (s *scalarImpl) finalize() {
	if s.inner != nil {
		s.Zeroize()
	}
}

func (s *scalarImpl) Bytes() []byte  { return s.inner.Bytes() }
func (s *scalarImpl) String() string { return hex.EncodeToString(s.Bytes()) }

func (s *scalarImpl) Add(other Scalar) Scalar {
	r := edwards25519.NewScalar()
	r.Add(s.inner, other.(*scalarImpl).inner)
	return newScalar(r)
}

func (s *scalarImpl) Sub(other Scalar) Scalar {
	r := edwards25519.NewScalar()
	r.Subtract(s.inner, other.(*scalarImpl).inner)
	return newScalar(r)
}

func (s *scalarImpl) Mul(other Scalar) Scalar {
	r := edwards25519.NewScalar()
	r.Multiply(s.inner, other.(*scalarImpl).inner)
	return newScalar(r)
}

func (s *scalarImpl) Negate() Scalar {
	r := edwards25519.NewScalar()
	r.Negate(s.inner)
	return newScalar(r)
}

// Invert fails with errScalarZero on the zero scalar, matching spec §4.A
// ("undefined on zero — fails with InvalidInput").
func (s *scalarImpl) Invert() (Scalar, error) {
	if s.IsZero() {
		return nil, errScalarZero
	}
	r := edwards25519.NewScalar()
	r.Invert(s.inner)
	return newScalar(r), nil
}

func (s *scalarImpl) Equal(other Scalar) bool {
	o, ok := other.(*scalarImpl)
	if !ok {
		return false
	}
	return s.inner.Equal(o.inner) == 1
}

func (s *scalarImpl) IsZero() bool {
	return s.inner.Equal(edwards25519.NewScalar()) == 1
}

func (s *scalarImpl) Zeroize() {
	s.inner.Set(edwards25519.NewScalar())
	runtime.SetFinalizer(s, nil)
}

// pointImpl wraps an edwards25519 point.
type pointImpl struct {
	inner *edwards25519.Point
}

func newPoint(p *edwards25519.Point) *pointImpl { return &pointImpl{inner: p} }

// BasePoint returns the group's distinguished generator G0.
func BasePoint() Point { return newPoint(edwards25519.NewGeneratorPoint()) }

// IdentityPoint returns the group identity element.
func IdentityPoint() Point { return newPoint(edwards25519.NewIdentityPoint()) }

// PointFromCanonicalBytes decodes a 32-byte compressed point, rejecting
// non-canonical encodings per §6.
func PointFromCanonicalBytes(data []byte) (Point, error) {
	if len(data) != PointSize {
		return nil, errInvalidPointLength
	}
	p, err := new(edwards25519.Point).SetBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidPoint, err)
	}
	return newPoint(p), nil
}

func (p *pointImpl) Bytes() []byte           { return p.inner.Bytes() }
func (p *pointImpl) CompressedBytes() []byte { return p.Bytes() }
func (p *pointImpl) String() string          { return hex.EncodeToString(p.Bytes()) }

func (p *pointImpl) Add(other Point) Point {
	r := edwards25519.NewIdentityPoint()
	r.Add(p.inner, other.(*pointImpl).inner)
	return newPoint(r)
}

func (p *pointImpl) Sub(other Point) Point {
	r := edwards25519.NewIdentityPoint()
	r.Subtract(p.inner, other.(*pointImpl).inner)
	return newPoint(r)
}

func (p *pointImpl) Mul(scalar Scalar) Point {
	r := edwards25519.NewIdentityPoint()
	r.ScalarMult(scalar.(*scalarImpl).inner, p.inner)
	return newPoint(r)
}

func (p *pointImpl) Negate() Point {
	r := edwards25519.NewIdentityPoint()
	r.Negate(p.inner)
	return newPoint(r)
}

func (p *pointImpl) Equal(other Point) bool {
	o, ok := other.(*pointImpl)
	if !ok {
		return false
	}
	return p.inner.Equal(o.inner) == 1
}

func (p *pointImpl) IsIdentity() bool {
	return p.inner.Equal(edwards25519.NewIdentityPoint()) == 1
}

// hDerivationLabel is the nothing-up-my-sleeve label for H0 (§4.A).
const hDerivationLabel = "zk-thresh-pro/H/v1"

var blindingGenerator Point

// BlindingGenerator returns H0, the independently-derived Pedersen
// blinding generator. log_G0(H0) must be unknown to everyone (§3, §4.A),
// which rules out hashing the label to a *scalar* and multiplying G0 by
// it — that would make the discrete log the hash output itself, public
// and computable by any verifier, letting a committer equivocate at
// will. H0 is instead obtained by hash-to-curve: hash the label plus an
// incrementing counter until the digest decodes as a canonical point,
// then clear the cofactor so H0 lands in the prime-order subgroup.
func BlindingGenerator() Point {
	if blindingGenerator != nil {
		return blindingGenerator
	}
	blindingGenerator = hashToPoint(hDerivationLabel)
	return blindingGenerator
}

// hashToPoint implements try-and-increment hash-to-curve: roughly half
// of all 32-byte strings decode as a valid compressed Edwards point, so
// the loop converges in a handful of iterations in practice.
func hashToPoint(label string) Point {
	for counter := uint32(0); ; counter++ {
		if counter == 1<<20 {
			panic("zkthresh: hash-to-curve did not converge; hash adapter is broken")
		}
		t := NewTranscript("H/v1")
		t.Update([]byte(label))
		t.Update(beUint32(counter))
		digest := t.Finalize64()

		candidate, err := new(edwards25519.Point).SetBytes(digest[:32])
		if err != nil {
			continue
		}
		cleared := edwards25519.NewIdentityPoint().MultByCofactor(candidate)
		if cleared.Equal(edwards25519.NewIdentityPoint()) == 1 {
			continue
		}
		return newPoint(cleared)
	}
}

// MultiScalarMul computes Σ scalars[i]·points[i]. It is the naive
// sequential form, generalized from the teacher's inline Σ loop in
// PolynomialCommitment.Verify into a single reusable helper. BatchVerify
// is its caller; the VSS check computes its own sum in ExpectedPoint.
func MultiScalarMul(scalars []Scalar, points []Point) (Point, error) {
	if len(scalars) != len(points) {
		return nil, fmt.Errorf("zkthresh: mismatched scalar/point vector lengths %d != %d", len(scalars), len(points))
	}
	result := IdentityPoint()
	for i := range scalars {
		result = result.Add(points[i].Mul(scalars[i]))
	}
	return result, nil
}
