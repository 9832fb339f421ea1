package zkthresh

import "testing"

func TestCommitDiffersUnderDifferentBlinding(t *testing.T) {
	v, err := RandomScalar()
	if err != nil {
		t.Fatalf("RandomScalar: %v", err)
	}
	r1, err := RandomScalar()
	if err != nil {
		t.Fatalf("RandomScalar: %v", err)
	}
	r2, err := RandomScalar()
	if err != nil {
		t.Fatalf("RandomScalar: %v", err)
	}

	c1 := Commit(v, r1)
	c2 := Commit(v, r2)
	if c1.Equal(c2) {
		t.Fatalf("different blinding factors must produce different commitments")
	}
}

func TestBuildCommitmentVectorRejectsMismatchedLengths(t *testing.T) {
	if _, err := BuildCommitmentVector([]Scalar{s(1)}, []Scalar{s(1), s(2)}); err == nil {
		t.Fatalf("expected length-mismatch error")
	}
}

func TestExpectedPointMatchesDirectCommitment(t *testing.T) {
	a := []Scalar{s(3), s(5)} // f(x) = 3 + 5x
	b := []Scalar{s(1), s(2)} // g(x) = 1 + 2x
	vector, err := BuildCommitmentVector(a, b)
	if err != nil {
		t.Fatalf("BuildCommitmentVector: %v", err)
	}

	index := s(4)
	y := s(3 + 5*4)
	r := s(1 + 2*4)

	expected := ExpectedPoint(vector, index)
	direct := Commit(y, r)
	if !expected.Equal(direct) {
		t.Fatalf("ExpectedPoint disagrees with direct commitment")
	}
}
