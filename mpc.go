package zkthresh

// PartyContribution is one party's full §4.D split output submitted to
// the MPC joint-polynomial protocol (§4.G): its own shares for every
// recipient 1..n and the public commitment vector to its own secret
// polynomial.
type PartyContribution struct {
	Party  ParticipantIndex
	Shares []*Share // Shares[i-1] is this party's share for recipient index i
	Vector CommitmentVector
}

// PartySplit runs an ordinary §4.D split on behalf of one MPC party.
// Grounded on the teacher's keygen.go Round1/Round2 pair, collapsed
// into a single call since this engine's split already produces proofs
// and a commitment vector in one pass (unlike the teacher's two-round
// FROST DKG).
func PartySplit(party ParticipantIndex, secret Scalar, t, n int) (*PartyContribution, error) {
	shares, vector, err := Split(secret, t, n)
	if err != nil {
		return nil, err
	}
	return &PartyContribution{Party: party, Shares: shares, Vector: vector}, nil
}

// AggregateJointSplit implements §4.G: verifies every contribution's
// shares against its own declared commitment vector (the "joint VSS
// checks reduce to checking each incoming share against its issuer's
// vector" rule), aborts with AbortedByPartyError on the first party
// whose shares fail that check, and otherwise sums shares and
// commitment vectors coordinate-wise into a single consistent sharing
// of Σ secrets. Every contribution must use the same (t, n).
//
// Grounded on the original Rust source's mpc.rs mpc_generate_key_shares
// (global_secret = Σ constant terms, shares aggregated pointwise) and
// on the teacher's keygen.go ProcessRound1/ProcessRound2 verify-then-
// aggregate structure.
func AggregateJointSplit(contributions []PartyContribution, t, n int) ([]*Share, CommitmentVector, error) {
	if len(contributions) == 0 {
		return nil, nil, ErrEmptyInput
	}

	for _, contrib := range contributions {
		if len(contrib.Vector) != t || len(contrib.Shares) != n {
			return nil, nil, ErrInternal
		}
		for _, share := range contrib.Shares {
			if err := VerifyShareAgainstCommitments(share.Index, share.Value, share.Blinding, contrib.Vector); err != nil {
				return nil, nil, &AbortedByPartyError{Party: contrib.Party}
			}
		}
	}

	jointVector, err := sumCommitmentVectors(contributions)
	if err != nil {
		return nil, nil, err
	}

	jointShares := make([]*Share, n)
	for i := 0; i < n; i++ {
		index := contributions[0].Shares[i].Index
		y := ScalarZero()
		r := ScalarZero()
		for _, contrib := range contributions {
			y = y.Add(contrib.Shares[i].Value)
			r = r.Add(contrib.Shares[i].Blinding)
		}

		c := Commit(y, r)
		proof, err := Prove(index, y, r, c)
		if err != nil {
			return nil, nil, err
		}

		jointShares[i] = &Share{
			Index:      index,
			Value:      y,
			Blinding:   r,
			Proof:      proof,
			Commitment: c,
		}
	}

	return jointShares, jointVector, nil
}

func sumCommitmentVectors(contributions []PartyContribution) (CommitmentVector, error) {
	t := len(contributions[0].Vector)
	joint := make(CommitmentVector, t)
	for k := 0; k < t; k++ {
		joint[k] = IdentityPoint()
	}
	for _, contrib := range contributions {
		if len(contrib.Vector) != t {
			return nil, ErrInternal
		}
		for k := 0; k < t; k++ {
			joint[k] = joint[k].Add(contrib.Vector[k])
		}
	}
	return joint, nil
}
