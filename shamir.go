package zkthresh

import (
	"math/big"
)

// Share is one holder's piece of a sharing: an index, the evaluation of
// the secret polynomial there, the matching blinding evaluation, and
// (once emitted by split) the commitment and NIZK proof binding the two
// together (§3 "Share"). Grounded on the teacher's shamir.go Share,
// generalized from a bare (index, value) pair to the spec's full
// verifiable tuple.
type Share struct {
	Index      Scalar
	Value      Scalar
	Blinding   Scalar
	Proof      *Proof
	Commitment Point
}

// Zeroize overwrites the share's secret-bearing fields (§5, §9: share
// values, blindings, and the proof's response scalars are all sensitive).
func (s *Share) Zeroize() {
	if s.Value != nil {
		s.Value.Zeroize()
	}
	if s.Blinding != nil {
		s.Blinding.Zeroize()
	}
	if s.Proof != nil {
		if s.Proof.Zs != nil {
			s.Proof.Zs.Zeroize()
		}
		if s.Proof.Zr != nil {
			s.Proof.Zr.Zeroize()
		}
	}
}

const maxParticipants = 1 << 16

// Split implements §4.D split: draws a secret polynomial f with
// f(0)=secret and an independent blinding polynomial g, evaluates both
// at indices 1..n, commits to each coefficient pair, and emits one NIZK
// per share over its own commitment. Grounded on the teacher's
// shamir.go GenerateShares, generalized to also produce blindings,
// commitments, and proofs rather than bare (index, value) pairs.
func Split(secret Scalar, t, n int) ([]*Share, CommitmentVector, error) {
	if t < 2 || t > n || n > maxParticipants {
		return nil, nil, ErrInvalidThreshold
	}

	// The constant term is a copy of secret: valuePoly.Zeroize overwrites
	// every coefficient, and the caller's own scalar must survive Split.
	valuePoly, err := NewRandomPolynomial(t-1, secret.Add(ScalarZero()))
	if err != nil {
		return nil, nil, err
	}
	defer valuePoly.Zeroize()

	blindingConstant, err := RandomScalar()
	if err != nil {
		return nil, nil, ErrRngUnavailable.WithCause(err)
	}
	blindingPoly, err := NewRandomPolynomial(t-1, blindingConstant)
	if err != nil {
		return nil, nil, err
	}
	defer blindingPoly.Zeroize()

	vector, err := BuildCommitmentVector(valuePoly.Coefficients(), blindingPoly.Coefficients())
	if err != nil {
		return nil, nil, err
	}

	shares := make([]*Share, n)
	for i := 1; i <= n; i++ {
		index := ScalarFromUint64(uint64(i))
		y := valuePoly.Evaluate(index)
		r := blindingPoly.Evaluate(index)
		c := Commit(y, r)

		proof, err := Prove(index, y, r, c)
		if err != nil {
			return nil, nil, err
		}

		shares[i-1] = &Share{
			Index:      index,
			Value:      y,
			Blinding:   r,
			Proof:      proof,
			Commitment: c,
		}
	}

	return shares, vector, nil
}

// Reconstruct implements §4.D reconstruct: deduplicates shares by
// index, requires at least t surviving distinct shares, takes the t
// lowest indices for determinism, and interpolates f(0). It does not
// check proofs or VSS consistency; callers needing integrity must do
// that first (§4.E/F). Grounded on the teacher's ReconstructSecret,
// generalized with dedup/Inconsistent handling drawn from the original
// Rust source's sharing.rs index-uniqueness checks.
func Reconstruct(shares []*Share, t int) (Scalar, error) {
	deduped, err := dedupeByIndex(shares)
	if err != nil {
		return nil, err
	}
	if len(deduped) < t {
		return nil, ErrInsufficient
	}

	sortByIndexAscending(deduped)
	selected := deduped[:t]

	xs := make([]Scalar, t)
	ys := make([]Scalar, t)
	for i, s := range selected {
		xs[i] = s.Index
		ys[i] = s.Value
	}

	if t <= 16 {
		return SlowLagrangeAtZero(xs, ys)
	}
	return FastLagrangeAtZero(xs, ys)
}

// dedupeByIndex collapses shares sharing the same index when their
// values agree, and fails Inconsistent when they disagree (§4.D
// reconstruct, §7 CategoryInconsistent).
func dedupeByIndex(shares []*Share) ([]*Share, error) {
	if len(shares) == 0 {
		return nil, ErrEmptyInput
	}
	seen := make(map[string]*Share, len(shares))
	order := make([]string, 0, len(shares))
	for _, s := range shares {
		key := string(s.Index.Bytes())
		if existing, ok := seen[key]; ok {
			if !existing.Value.Equal(s.Value) {
				return nil, ErrInconsistent
			}
			continue
		}
		seen[key] = s
		order = append(order, key)
	}
	out := make([]*Share, len(order))
	for i, key := range order {
		out[i] = seen[key]
	}
	return out, nil
}

// sortByIndexAscending orders shares by their numeric index so that
// "lowest indices first" (§4.D reconstruct) is well defined regardless
// of caller-supplied ordering.
func sortByIndexAscending(shares []*Share) {
	for i := 1; i < len(shares); i++ {
		for j := i; j > 0 && scalarLess(shares[j].Index, shares[j-1].Index); j-- {
			shares[j], shares[j-1] = shares[j-1], shares[j]
		}
	}
}

func scalarLess(a, b Scalar) bool {
	return indexToBigInt(a).Cmp(indexToBigInt(b)) < 0
}

// indexToBigInt interprets a scalar's little-endian canonical encoding
// as an unsigned integer, valid for the small indices 1..n this engine
// assigns (§3 "typically the small integers 1..n lifted into the
// field").
func indexToBigInt(s Scalar) *big.Int {
	b := s.Bytes()
	reversed := make([]byte, len(b))
	for i, v := range b {
		reversed[len(b)-1-i] = v
	}
	return new(big.Int).SetBytes(reversed)
}

// Refresh implements proactive refresh (§4.D refresh): the holder draws
// a degree-(t-1) polynomial δ with δ(0)=0 and a matching blinding
// polynomial δ_r with δ_r(0)=0, folds their evaluation into its own
// share, and re-proves under a transcript label tagged with epoch so
// that shares from different epochs are never interchangeable.
// deltaVector is returned so the caller can broadcast it; combining
// every holder's deltaVector into the new joint CommitmentVector is the
// surrounding coordination layer's job (mirrored by mpc.go's
// aggregation for the initial split).
//
// Grounded on the original Rust source's sharing.rs update_shares.
func Refresh(share *Share, t int, epoch uint64) (*Share, CommitmentVector, error) {
	deltaPoly, err := NewRandomPolynomial(t-1, ScalarZero())
	if err != nil {
		return nil, nil, err
	}
	defer deltaPoly.Zeroize()

	deltaBlindingPoly, err := NewRandomPolynomial(t-1, ScalarZero())
	if err != nil {
		return nil, nil, err
	}
	defer deltaBlindingPoly.Zeroize()

	deltaVector, err := BuildCommitmentVector(deltaPoly.Coefficients(), deltaBlindingPoly.Coefficients())
	if err != nil {
		return nil, nil, err
	}

	deltaY := deltaPoly.Evaluate(share.Index)
	deltaR := deltaBlindingPoly.Evaluate(share.Index)

	newValue := share.Value.Add(deltaY)
	newBlinding := share.Blinding.Add(deltaR)
	newCommitment := Commit(newValue, newBlinding)

	proof, err := ProveEpoch(share.Index, newValue, newBlinding, newCommitment, epoch)
	if err != nil {
		return nil, nil, err
	}

	return &Share{
		Index:      share.Index,
		Value:      newValue,
		Blinding:   newBlinding,
		Proof:      proof,
		Commitment: newCommitment,
	}, deltaVector, nil
}

// ChangeThreshold implements §4.D change_threshold: reconstructs the
// secret from at least t_old shares, then re-splits it for the new
// (t_new, n). Grounded on the original Rust source's sharing.rs
// adjust_threshold, generalized (per SPEC_FULL §1.D) to go through a
// full reconstruct-then-split rather than direct Lagrange-coefficient
// re-weighting.
func ChangeThreshold(oldShares []*Share, tOld, tNew, n int) ([]*Share, CommitmentVector, error) {
	if len(oldShares) < tOld {
		return nil, nil, ErrInsufficient
	}

	secret, err := Reconstruct(oldShares, tOld)
	if err != nil {
		return nil, nil, err
	}
	defer secret.Zeroize()

	return Split(secret, tNew, n)
}
