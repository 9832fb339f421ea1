package zkthresh

import "testing"

func TestVerifyShareAgainstCommitmentsAcceptsGenuineShare(t *testing.T) {
	secret, err := RandomScalar()
	if err != nil {
		t.Fatalf("RandomScalar: %v", err)
	}
	shares, vector, err := Split(secret, 3, 5)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	for _, share := range shares {
		if err := VerifyShareAgainstCommitments(share.Index, share.Value, share.Blinding, vector); err != nil {
			t.Fatalf("VerifyShareAgainstCommitments: %v", err)
		}
	}
}

func TestVerifyShareAgainstCommitmentsRejectsTamperedValue(t *testing.T) {
	secret, _ := RandomScalar()
	shares, vector, err := Split(secret, 2, 3)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	tampered := shares[0].Value.Add(ScalarOne())
	if err := VerifyShareAgainstCommitments(shares[0].Index, tampered, shares[0].Blinding, vector); err == nil {
		t.Fatalf("expected ErrInconsistent for a tampered value")
	}
}

func TestVerifyShareRunsBothChecks(t *testing.T) {
	secret, _ := RandomScalar()
	shares, vector, err := Split(secret, 2, 4)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}

	if err := VerifyShare(shares[0], vector); err != nil {
		t.Fatalf("VerifyShare: %v", err)
	}

	// A share missing its proof must fail, not panic.
	bare := &Share{Index: shares[0].Index, Value: shares[0].Value, Blinding: shares[0].Blinding}
	if err := VerifyShare(bare, vector); err == nil {
		t.Fatalf("expected VerifyShare to reject a share with no proof")
	}
}
