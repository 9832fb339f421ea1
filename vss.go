package zkthresh

// VerifyShareAgainstCommitments checks that a share (index, y, r) lies
// on the polynomial committed to by vector (§4.F). It computes
// Ĉ = Σ_k index^k·C_k via ExpectedPoint and compares it against
// y·G0 + r·H0. Failure is reported as CategoryInconsistent, distinct
// from a NIZK CategoryVerification failure, since VSS and the NIZK are
// independent checks (§4.F: "VSS verification is independent of the
// NIZK").
//
// Grounded on the teacher's commitments.go PolynomialCommitment.Verify,
// restructured around the shared ExpectedPoint helper the way
// other_examples/bytemare-frost__verifiable.go's Verify calls
// DerivePublicPoint before comparing.
func VerifyShareAgainstCommitments(index, y, r Scalar, vector CommitmentVector) error {
	if len(vector) == 0 {
		return ErrEmptyInput
	}
	if index.IsZero() {
		return ErrZeroIndex
	}

	expected := ExpectedPoint(vector, index)
	actual := Commit(y, r)

	if !expected.Equal(actual) {
		return ErrInconsistent
	}
	return nil
}

// VerifyShare runs both independent checks required of an Active-state
// share (§4.F: "In this system both are required for Active-state
// shares"): the per-share NIZK and the VSS consistency check against
// the public commitment vector.
func VerifyShare(share *Share, vector CommitmentVector) error {
	if share.Proof == nil || share.Commitment == nil {
		return ErrVerificationFailed
	}

	ok, err := Verify(share.Index, share.Commitment, share.Proof)
	if err != nil {
		return err
	}
	if !ok {
		return ErrVerificationFailed
	}

	return VerifyShareAgainstCommitments(share.Index, share.Value, share.Blinding, vector)
}
