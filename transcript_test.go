package zkthresh

import "testing"

func TestTranscriptDomainSeparation(t *testing.T) {
	a, err := hashToScalar(domainProof, []byte("x"))
	if err != nil {
		t.Fatalf("hashToScalar: %v", err)
	}
	b, err := hashToScalar(domainVSS, []byte("x"))
	if err != nil {
		t.Fatalf("hashToScalar: %v", err)
	}
	if a.Equal(b) {
		t.Fatalf("distinct labels must not collide")
	}
}

func TestTranscriptLengthPrefixingAvoidsConcatenationAmbiguity(t *testing.T) {
	a, err := hashToScalar(domainProof, []byte("ab"), []byte("c"))
	if err != nil {
		t.Fatalf("hashToScalar: %v", err)
	}
	b, err := hashToScalar(domainProof, []byte("a"), []byte("bc"))
	if err != nil {
		t.Fatalf("hashToScalar: %v", err)
	}
	if a.Equal(b) {
		t.Fatalf("\"ab\",\"c\" must hash differently from \"a\",\"bc\"")
	}
}

func TestTranscriptIsDeterministic(t *testing.T) {
	a, err := hashToScalar(domainMPC, []byte("same"))
	if err != nil {
		t.Fatalf("hashToScalar: %v", err)
	}
	b, err := hashToScalar(domainMPC, []byte("same"))
	if err != nil {
		t.Fatalf("hashToScalar: %v", err)
	}
	if !a.Equal(b) {
		t.Fatalf("identical transcripts must hash identically")
	}
}

func TestFinalizeXOFLengthRespected(t *testing.T) {
	tr := NewTranscript("test/xof")
	tr.Update([]byte("payload"))
	out := tr.FinalizeXOF(48)
	if len(out) != 48 {
		t.Fatalf("expected 48 bytes, got %d", len(out))
	}
}

func TestBeUint64IsBigEndian(t *testing.T) {
	got := beUint64(0x0102030405060708)
	want := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}
	if len(got) != len(want) {
		t.Fatalf("unexpected length %d", len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("byte %d: got %x want %x", i, got[i], want[i])
		}
	}
}
