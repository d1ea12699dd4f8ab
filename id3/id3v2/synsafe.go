package id3v2

// decodeSynsafe unpacks a 28-bit value stored as four 7-bit groups (the
// high bit of each byte is always zero) into a normal uint32. This is how
// ID3v2 encodes sizes so that a long run of tag bytes can never look like
// an MPEG frame sync (0xFF followed by a byte with its top bits set).
func decodeSynsafe(x uint32) uint32 {
	return (x & 0x7F) | ((x & 0x7F00) >> 1) | ((x & 0x7F0000) >> 2) | ((x & 0x7F000000) >> 3)
}

// encodeSynsafe is the inverse of decodeSynsafe. Inputs of 2^28 or more
// have their top 4 bits silently dropped, same as the reference decoder.
func encodeSynsafe(n uint32) uint32 {
	n &= 0x0FFFFFFF
	return (n & 0x7F) | ((n & 0x3F80) << 1) | ((n & 0x1FC000) << 2) | ((n & 0xFE00000) << 3)
}

// decodeSynsafeBytes reads a 4-byte big-endian synsafe integer.
func decodeSynsafeBytes(b []byte) uint32 {
	x := uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
	return decodeSynsafe(x)
}

// encodeSynsafeBytes writes n as a 4-byte big-endian synsafe integer.
func encodeSynsafeBytes(n uint32) [4]byte {
	x := encodeSynsafe(n)
	return [4]byte{byte(x >> 24), byte(x >> 16), byte(x >> 8), byte(x)}
}
