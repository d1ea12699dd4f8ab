package id3v2

// Version identifies an ID3v2 tag revision. Only major versions 3 and 4
// (ID3v2.3 and ID3v2.4) are supported; ID3v2.2's 3-byte frame ids and
// 6-byte frame headers are a different wire format and out of scope.
type Version struct {
	Major uint8
	Minor uint8
}

const (
	// Major3 is ID3v2.3.
	Major3 uint8 = 3
	// Major4 is ID3v2.4.
	Major4 uint8 = 4
)

// Supported reports whether v's major version is one this package knows
// how to parse and write.
func (v Version) Supported() bool {
	return v.Major == Major3 || v.Major == Major4
}

const (
	// HeaderSize is the length in bytes of the ID3v2 tag header.
	HeaderSize = 10
	// FooterSize is the length in bytes of the ID3v2.4 tag footer.
	FooterSize = 10
	// FrameHeaderSize is the length in bytes of a single frame's header.
	FrameHeaderSize = 10
)

// Tag header flag bits (byte 5 of the header).
const (
	FlagUnsynchronisation uint8 = 1 << 7
	FlagExtendedHeader    uint8 = 1 << 6
	FlagExperimental      uint8 = 1 << 5
	FlagFooter            uint8 = 1 << 4
)
