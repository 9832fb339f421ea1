package zkthresh

// ZeroizeBytes overwrites a byte slice in place. Grounded on the
// teacher's utils.go ZeroizeBytes.
func ZeroizeBytes(data []byte) {
	for i := range data {
		data[i] = 0
	}
}

// ZeroizeScalarSlice overwrites every scalar in a slice (§5, §9). No
// function in this repository calls it; Polynomial.Zeroize and
// Share.Zeroize do their own overwriting. Grounded on the teacher's
// utils.go ZeroizeScalarSlice.
func ZeroizeScalarSlice(scalars []Scalar) {
	for _, s := range scalars {
		if s != nil {
			s.Zeroize()
		}
	}
}

// SecureCompare performs a constant-time byte-slice comparison.
// Grounded on the teacher's utils.go SecureCompare.
func SecureCompare(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	var result byte
	for i := range a {
		result |= a[i] ^ b[i]
	}
	return result == 0
}
