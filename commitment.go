package zkthresh

// CommitmentVector is the public, persistent commitment to a secret
// polynomial's coefficients: C_k = a_k·G0 + b_k·H0 for k in [0, t).
// C_0 commits to the shared secret itself. Grounded on the teacher's
// commitments.go PolynomialCommitment, generalized from the teacher's
// per-coefficient-independent-blinding design to the spec's single
// shared blinding polynomial (§3 "CommitmentVector"): every coefficient
// of the blinding polynomial is itself a deliberately chosen scalar
// the caller supplies, not freshly drawn per coefficient at commit time.
type CommitmentVector []Point

// Commit computes a single Pedersen commitment C = s·G0 + r·H0 (§4.E
// commit). Grounded on the teacher's PedersenCommitment.Commit.
func Commit(s, r Scalar) Point {
	return BasePoint().Mul(s).Add(BlindingGenerator().Mul(r))
}

// BuildCommitmentVector commits to each coefficient pair (a_k, b_k) of
// the secret and blinding polynomials, in order, producing the public
// CommitmentVector of §4.D step 3.
func BuildCommitmentVector(aCoeffs, bCoeffs []Scalar) (CommitmentVector, error) {
	if len(aCoeffs) != len(bCoeffs) {
		return nil, ErrInternal
	}
	vector := make(CommitmentVector, len(aCoeffs))
	for k := range aCoeffs {
		vector[k] = Commit(aCoeffs[k], bCoeffs[k])
	}
	return vector, nil
}

// ExpectedPoint derives Ĉ = Σ_k index^k · C_k for a given share index,
// the quantity a VSS check compares against y·G0 + r·H0 (§4.F).
// Grounded on the teacher's commitments.go PolynomialCommitment.Verify
// inline Σ loop, split out into its own reusable step the way
// other_examples/bytemare-frost__verifiable.go's DerivePublicPoint does.
// VerifyShareAgainstCommitments is its caller; Split does not re-check
// its own output against the vector.
func ExpectedPoint(vector CommitmentVector, index Scalar) Point {
	expected := IdentityPoint()
	xPower := ScalarOne()
	for _, c := range vector {
		expected = expected.Add(c.Mul(xPower))
		xPower = xPower.Mul(index)
	}
	return expected
}
