package id3v2

import "bytes"

// encodingDescriptor is what an encoding byte (and, for 0x01, the BOM
// that follows it) resolves to: which codepage to use, whether its code
// units are two bytes wide, and the BOM bytes (if any) that were
// consumed from the front of the content.
type encodingDescriptor struct {
	Codepage     CodepageName
	BOM          []byte
	DoubleByte   bool
	EncodingByte byte
}

// bomCandidate is one entry in the byte==0x01 BOM-detection table. The
// empty-BOM fallback (UTF-8 with no BOM bytes) always matches, so it must
// stay last.
type bomCandidate struct {
	bom      []byte
	codepage CodepageName
	double   bool
}

var bomCandidates = []bomCandidate{
	{[]byte{0xFF, 0xFE}, UTF16LE, true},
	{[]byte{0xFE, 0xFF}, UTF16BE, true},
	{[]byte{0xEF, 0xBB, 0xBF}, UTF8, false},
	{nil, UTF8, false}, // empty-BOM fallback: matches everything
}

// resolveEncoding resolves the leading encoding byte of a frame payload
// (plus, for byte 0x01, a BOM sniffed from the following content) to an
// encodingDescriptor, and returns the content with any matched BOM bytes
// stripped from the front.
func resolveEncoding(encodingByte byte, content []byte) (encodingDescriptor, []byte, error) {
	switch encodingByte {
	case 0x00:
		return encodingDescriptor{Codepage: ISO88591, EncodingByte: 0x00}, content, nil
	case 0x01:
		for _, c := range bomCandidates {
			if bytes.HasPrefix(content, c.bom) {
				return encodingDescriptor{
					Codepage:     c.codepage,
					BOM:          c.bom,
					DoubleByte:   c.double,
					EncodingByte: 0x01,
				}, content[len(c.bom):], nil
			}
		}
		// unreachable: the empty-BOM fallback always matches
		return encodingDescriptor{Codepage: UTF8, EncodingByte: 0x01}, content, nil
	case 0x02:
		return encodingDescriptor{Codepage: UTF16BE, DoubleByte: true, EncodingByte: 0x02}, content, nil
	case 0x03:
		return encodingDescriptor{Codepage: UTF8, EncodingByte: 0x03}, content, nil
	default:
		return encodingDescriptor{}, nil, formatErrorf(ErrUnknownEncodingByte, "encoding byte 0x%02x", encodingByte)
	}
}

// defaultEncoding picks the encoding a codec should write when producing
// a new string frame: UTF-16LE with a BOM for ID3v2.3 (no raw UTF-16BE or
// UTF-8 encoding byte exists pre-2.4), UTF-8 without a BOM for ID3v2.4.
func defaultEncoding(major uint8) encodingDescriptor {
	if major >= Major4 {
		return encodingDescriptor{Codepage: UTF8, EncodingByte: 0x03}
	}
	return encodingDescriptor{Codepage: UTF16LE, BOM: []byte{0xFF, 0xFE}, DoubleByte: true, EncodingByte: 0x01}
}
