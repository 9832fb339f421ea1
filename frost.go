package zkthresh

// ParticipantIndex identifies one party in the MPC joint-polynomial
// protocol (§4.G). Grounded on the teacher's frost.go ParticipantIndex;
// kept as the sole survivor of that file once the FROST two-round
// signing types (Signature, SigningCommitment, SigningResponse) were
// dropped as out of scope for a share-sharing engine (see DESIGN.md).
type ParticipantIndex uint32

// ToScalar lifts a participant index into the scalar field.
func (pi ParticipantIndex) ToScalar() Scalar {
	return ScalarFromUint64(uint64(pi))
}
