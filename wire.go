package zkthresh

import (
	"encoding/binary"
)

// ShareWireSize is the fixed length of an encoded share: seven
// 32-byte fields (§6 "Share wire format").
const ShareWireSize = 7 * ScalarSize

// EncodeShare serializes a share to the spec's fixed 224-byte wire
// format: index‖y‖r‖R‖z_s‖z_r‖C. The share must already carry a
// commitment and proof (i.e. be split/refresh/MPC output, not a bare
// in-flight evaluation).
func EncodeShare(s *Share) ([]byte, error) {
	if s.Proof == nil || s.Commitment == nil {
		return nil, ErrSerialization
	}
	out := make([]byte, 0, ShareWireSize)
	out = append(out, s.Index.Bytes()...)
	out = append(out, s.Value.Bytes()...)
	out = append(out, s.Blinding.Bytes()...)
	out = append(out, s.Proof.R.CompressedBytes()...)
	out = append(out, s.Proof.Zs.Bytes()...)
	out = append(out, s.Proof.Zr.Bytes()...)
	out = append(out, s.Commitment.CompressedBytes()...)
	return out, nil
}

// DecodeShare parses the 224-byte wire format back into a Share,
// rejecting truncated blobs and non-canonical field encodings (§6, §7
// CategorySerialization).
func DecodeShare(data []byte) (*Share, error) {
	if len(data) != ShareWireSize {
		return nil, ErrSerialization
	}

	fields := make([][]byte, 7)
	for i := range fields {
		fields[i] = data[i*ScalarSize : (i+1)*ScalarSize]
	}

	index, err := ScalarFromCanonicalBytes(fields[0])
	if err != nil {
		return nil, ErrSerialization.WithCause(err)
	}
	y, err := ScalarFromCanonicalBytes(fields[1])
	if err != nil {
		return nil, ErrSerialization.WithCause(err)
	}
	r, err := ScalarFromCanonicalBytes(fields[2])
	if err != nil {
		return nil, ErrSerialization.WithCause(err)
	}
	R, err := PointFromCanonicalBytes(fields[3])
	if err != nil {
		return nil, ErrSerialization.WithCause(err)
	}
	zs, err := ScalarFromCanonicalBytes(fields[4])
	if err != nil {
		return nil, ErrSerialization.WithCause(err)
	}
	zr, err := ScalarFromCanonicalBytes(fields[5])
	if err != nil {
		return nil, ErrSerialization.WithCause(err)
	}
	c, err := PointFromCanonicalBytes(fields[6])
	if err != nil {
		return nil, ErrSerialization.WithCause(err)
	}

	return &Share{
		Index:      index,
		Value:      y,
		Blinding:   r,
		Proof:      &Proof{R: R, Zs: zs, Zr: zr},
		Commitment: c,
	}, nil
}

// EncodeCommitmentVector serializes a CommitmentVector as
// t_u32_le‖C_0‖…‖C_{t-1} (§6 "Commitment vector").
func EncodeCommitmentVector(vector CommitmentVector) []byte {
	out := make([]byte, 4, 4+len(vector)*PointSize)
	binary.LittleEndian.PutUint32(out[:4], uint32(len(vector)))
	for _, c := range vector {
		out = append(out, c.CompressedBytes()...)
	}
	return out
}

// DecodeCommitmentVector parses the wire format produced by
// EncodeCommitmentVector, rejecting truncated blobs and non-canonical
// point encodings.
func DecodeCommitmentVector(data []byte) (CommitmentVector, error) {
	if len(data) < 4 {
		return nil, ErrSerialization
	}
	t := binary.LittleEndian.Uint32(data[:4])
	rest := data[4:]
	if uint64(len(rest)) != uint64(t)*uint64(PointSize) {
		return nil, ErrSerialization
	}

	vector := make(CommitmentVector, t)
	for i := uint32(0); i < t; i++ {
		p, err := PointFromCanonicalBytes(rest[i*PointSize : (i+1)*PointSize])
		if err != nil {
			return nil, ErrSerialization.WithCause(err)
		}
		vector[i] = p
	}
	return vector, nil
}
