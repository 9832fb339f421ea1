package zkthresh

import "testing"

func TestEncodeDecodeShareRoundtrip(t *testing.T) {
	secret, _ := RandomScalar()
	shares, _, err := Split(secret, 2, 3)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}

	blob, err := EncodeShare(shares[0])
	if err != nil {
		t.Fatalf("EncodeShare: %v", err)
	}
	if len(blob) != ShareWireSize {
		t.Fatalf("expected %d bytes, got %d", ShareWireSize, len(blob))
	}

	decoded, err := DecodeShare(blob)
	if err != nil {
		t.Fatalf("DecodeShare: %v", err)
	}
	if !decoded.Index.Equal(shares[0].Index) || !decoded.Value.Equal(shares[0].Value) {
		t.Fatalf("decoded share does not match original")
	}
	ok, err := Verify(decoded.Index, decoded.Commitment, decoded.Proof)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatalf("decoded share's proof must still verify")
	}
}

func TestDecodeShareRejectsTruncatedInput(t *testing.T) {
	if _, err := DecodeShare(make([]byte, ShareWireSize-1)); err == nil {
		t.Fatalf("expected ErrSerialization for truncated input")
	}
}

func TestEncodeShareRejectsUnproven(t *testing.T) {
	bare := &Share{Index: s(1), Value: s(2), Blinding: s(3)}
	if _, err := EncodeShare(bare); err == nil {
		t.Fatalf("expected ErrSerialization for a share with no proof/commitment")
	}
}

func TestEncodeDecodeCommitmentVectorRoundtrip(t *testing.T) {
	secret, _ := RandomScalar()
	_, vector, err := Split(secret, 3, 5)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}

	blob := EncodeCommitmentVector(vector)
	decoded, err := DecodeCommitmentVector(blob)
	if err != nil {
		t.Fatalf("DecodeCommitmentVector: %v", err)
	}
	if len(decoded) != len(vector) {
		t.Fatalf("expected %d points, got %d", len(vector), len(decoded))
	}
	for i := range vector {
		if !decoded[i].Equal(vector[i]) {
			t.Fatalf("point %d mismatch after roundtrip", i)
		}
	}
}

func TestDecodeCommitmentVectorRejectsBadLength(t *testing.T) {
	if _, err := DecodeCommitmentVector([]byte{1, 0, 0, 0}); err == nil {
		t.Fatalf("expected ErrSerialization for a length prefix with no matching payload")
	}
}
