package id3v2

import "testing"

func TestSynsafeRoundTrip(t *testing.T) {
	cases := []uint32{0, 1, 0x7F, 0x80, 0xFF, 0x3FFF, 0x4000, 0xFFFFFFF, 1234567}
	for _, n := range cases {
		got := decodeSynsafe(encodeSynsafe(n))
		if got != n {
			t.Errorf("decodeSynsafe(encodeSynsafe(%d)) = %d, want %d", n, got, n)
		}
	}
}

func TestSynsafeEncodeDropsTopBits(t *testing.T) {
	n := uint32(1) << 30 // well above 2^28
	encoded := encodeSynsafe(n)
	decoded := decodeSynsafe(encoded)
	if decoded != n&0x0FFFFFFF {
		t.Errorf("expected top bits dropped, got %d want %d", decoded, n&0x0FFFFFFF)
	}
}

func TestSynsafeBytesRoundTrip(t *testing.T) {
	n := uint32(1337)
	b := encodeSynsafeBytes(n)
	if got := decodeSynsafeBytes(b[:]); got != n {
		t.Errorf("decodeSynsafeBytes(encodeSynsafeBytes(%d)) = %d", n, got)
	}
}

func TestSynsafeKnownValue(t *testing.T) {
	// 0x0FFFFFFF packs into 0x7F7F7F7F, as used by jlubawy-go-id3v2's
	// analogous SizeToSynchSafe/SynchSafeToSize test.
	if got := encodeSynsafe(0x0FFFFFFF); got != 0x7F7F7F7F {
		t.Errorf("encodeSynsafe(0x0FFFFFFF) = 0x%08X, want 0x7F7F7F7F", got)
	}
	if got := decodeSynsafe(0x7F7F7F7F); got != 0x0FFFFFFF {
		t.Errorf("decodeSynsafe(0x7F7F7F7F) = 0x%08X, want 0x0FFFFFFF", got)
	}
}
