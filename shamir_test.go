package zkthresh

import "testing"

func TestSplitReconstructRoundtrip(t *testing.T) {
	secret, err := RandomScalar()
	if err != nil {
		t.Fatalf("RandomScalar: %v", err)
	}
	shares, _, err := Split(secret, 3, 5)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}

	got, err := Reconstruct(shares[:3], 3)
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}
	if !got.Equal(secret) {
		t.Fatalf("reconstructed secret does not match original")
	}
}

func TestReconstructUsesAnyThresholdSubset(t *testing.T) {
	secret, _ := RandomScalar()
	shares, _, err := Split(secret, 3, 6)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	subset := []*Share{shares[1], shares[3], shares[5]}
	got, err := Reconstruct(subset, 3)
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}
	if !got.Equal(secret) {
		t.Fatalf("reconstructed secret does not match original for a non-contiguous subset")
	}
}

func TestReconstructFailsBelowThreshold(t *testing.T) {
	secret, _ := RandomScalar()
	shares, _, err := Split(secret, 4, 6)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if _, err := Reconstruct(shares[:3], 4); err == nil {
		t.Fatalf("expected ErrInsufficient")
	}
}

func TestSplitRejectsInvalidThreshold(t *testing.T) {
	secret := s(1)
	cases := []struct{ t, n int }{
		{1, 5},
		{6, 5},
		{0, 0},
	}
	for _, c := range cases {
		if _, _, err := Split(secret, c.t, c.n); err == nil {
			t.Fatalf("t=%d n=%d: expected ErrInvalidThreshold", c.t, c.n)
		}
	}
}

func TestDedupeByIndexCollapsesAgreeingDuplicates(t *testing.T) {
	secret, _ := RandomScalar()
	shares, _, err := Split(secret, 2, 3)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	withDuplicate := append(append([]*Share{}, shares...), shares[0])
	got, err := Reconstruct(withDuplicate, 2)
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}
	if !got.Equal(secret) {
		t.Fatalf("reconstructed secret mismatch with a duplicate share present")
	}
}

func TestDedupeByIndexRejectsConflictingDuplicates(t *testing.T) {
	secret, _ := RandomScalar()
	shares, _, err := Split(secret, 2, 3)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	conflicting := &Share{Index: shares[0].Index, Value: shares[0].Value.Add(ScalarOne())}
	if _, err := dedupeByIndex([]*Share{shares[0], conflicting}); err == nil {
		t.Fatalf("expected ErrInconsistent for conflicting duplicate indices")
	}
}

func TestRefreshPreservesSecretUnderNewEpoch(t *testing.T) {
	secret, _ := RandomScalar()
	shares, vector, err := Split(secret, 3, 4)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}

	refreshed := make([]*Share, len(shares))
	deltaVectors := make([]CommitmentVector, len(shares))
	for i, share := range shares {
		newShare, deltaVector, err := Refresh(share, 3, 1)
		if err != nil {
			t.Fatalf("Refresh: %v", err)
		}
		refreshed[i] = newShare
		deltaVectors[i] = deltaVector
	}

	newVector := make(CommitmentVector, len(vector))
	for k := range vector {
		newVector[k] = vector[k]
		for _, dv := range deltaVectors {
			newVector[k] = newVector[k].Add(dv[k])
		}
	}

	for _, share := range refreshed {
		ok, err := VerifyEpoch(share.Index, share.Commitment, share.Proof, 1)
		if err != nil {
			t.Fatalf("VerifyEpoch: %v", err)
		}
		if !ok {
			t.Fatalf("refreshed share must verify under its own epoch")
		}
		if err := VerifyShareAgainstCommitments(share.Index, share.Value, share.Blinding, newVector); err != nil {
			t.Fatalf("refreshed share inconsistent with aggregated commitment vector: %v", err)
		}
	}

	got, err := Reconstruct(refreshed[:3], 3)
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}
	if !got.Equal(secret) {
		t.Fatalf("refresh must preserve the underlying secret")
	}
}

func TestChangeThresholdPreservesSecret(t *testing.T) {
	secret, _ := RandomScalar()
	shares, _, err := Split(secret, 2, 4)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}

	newShares, _, err := ChangeThreshold(shares[:2], 2, 3, 5)
	if err != nil {
		t.Fatalf("ChangeThreshold: %v", err)
	}

	got, err := Reconstruct(newShares[:3], 3)
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}
	if !got.Equal(secret) {
		t.Fatalf("ChangeThreshold must preserve the underlying secret")
	}
}
