package id3v2

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// CodepageName identifies one of the byte<->string conversions this
// package understands. The set of source (decodable) encodings is wider
// than the set of target (encodable) ones: ID3v2 only ever writes
// ISO-8859-1, UTF-8 or UTF-16LE, but it can read UTF-16BE too.
type CodepageName string

// Supported codepages. The decoder/encoder pairs below all come from
// golang.org/x/text, the way arenzana-id3v2's Frame.Text uses
// charmap.ISO8859_1 and unicode.UTF16 rather than hand-rolled byte loops.
const (
	ISO88591 CodepageName = "ISO-8859-1"
	UTF8     CodepageName = "UTF-8"
	UTF16LE  CodepageName = "UTF-16LE"
	UTF16BE  CodepageName = "UTF-16BE"
)

var (
	utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	utf16be = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
)

// codecs maps every decodable codepage to the encoding.Encoding that
// implements it, so callers that only need "give me the codec for this
// name" don't have to duplicate the switch in decodeCodepage/
// encodeCodepage. UTF-8 has no encoding.Encoding of its own (it's the Go
// string representation already) and is handled as a pass-through in
// both functions below.
var codecs = map[CodepageName]encoding.Encoding{
	ISO88591: charmap.ISO8859_1,
	UTF16LE:  utf16le,
	UTF16BE:  utf16be,
}

// decodeCodepage converts raw bytes in the given codepage to a Go string.
// Callers are responsible for stripping any BOM before calling this: none
// of these codecs expect one.
func decodeCodepage(name CodepageName, data []byte) (string, error) {
	if name == UTF8 {
		return string(data), nil
	}
	if name == UTF16BE {
		// Byte-swap into LE order and decode with the LE codec, rather
		// than a separate BE decoder, so there is exactly one UTF-16
		// decode path to get right.
		name, data = UTF16LE, swap16(data)
	}

	codec, ok := codecs[name]
	if !ok {
		return "", formatErrorf(nil, "unsupported source codepage %q", name)
	}
	out, err := codec.NewDecoder().Bytes(data)
	if err != nil {
		return "", ioErrorf(err, "decode %s", name)
	}
	return string(out), nil
}

// encodeCodepage converts a Go string to raw bytes in the given codepage,
// without emitting a byte-order mark. Only the three codepages ID3v2 can
// actually write are supported as encode targets.
func encodeCodepage(name CodepageName, s string) ([]byte, error) {
	if name == UTF8 {
		return []byte(s), nil
	}
	if name != ISO88591 && name != UTF16LE {
		return nil, formatErrorf(nil, "unsupported target codepage %q", name)
	}

	codec := codecs[name]
	out, err := codec.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, ioErrorf(err, "encode %s", name)
	}
	return out, nil
}

// swap16 returns a copy of data with every pair of bytes swapped, turning
// a big-endian UTF-16 byte stream into a little-endian one (or back). An
// odd trailing byte, which shouldn't occur in well-formed input, is left
// in place.
func swap16(data []byte) []byte {
	out := make([]byte, len(data))
	copy(out, data)
	for i := 0; i+1 < len(out); i += 2 {
		out[i], out[i+1] = out[i+1], out[i]
	}
	return out
}
