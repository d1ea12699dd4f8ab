package id3v2

import "bytes"

// Comment is the decoded form of a COMM frame payload.
type Comment struct {
	Language string
	Short    string
	Long     string
}

// UserText is the decoded form of a TXXX frame payload: a user-supplied
// description paired with a value, using the same encoding-byte-prefixed
// shape as a plain text frame but with the description as an extra
// null-terminated field in front of the value.
type UserText struct {
	Description string
	Value       string
}

// Popularity is the decoded form of a POPM frame payload.
type Popularity struct {
	Email     string
	Rating    byte
	PlayCount uint64
}

// Picture is the decoded form of an APIC frame payload.
type Picture struct {
	MIME        string
	PictureType byte
	Description string
	Data        []byte
}

// Decoder interprets and produces frame payload bytes for one ID3v2
// major version. The version only affects which encoding codecs gets
// chosen by default when producing new payloads (EncodeString,
// EncodeComment, EncodePicture); decoding a payload that already carries
// its own encoding byte never needs it.
type Decoder struct {
	major uint8
}

// NewDecoder returns a Decoder for the given major version (3 or 4).
func NewDecoder(major uint8) *Decoder {
	return &Decoder{major: major}
}

// scanNullTerminator finds the first null terminator in b. For
// single-byte encodings that's simply the first zero byte. For
// double-byte encodings, only a zero byte at an even offset within b
// whose successor is also zero counts: a lone zero byte landing on an odd
// offset is not a terminator, and scanning continues past it one byte at
// a time until realigned. It returns the offset of the terminator and its
// width (1 or 2), or ErrUnterminatedString if none is found.
func scanNullTerminator(b []byte, doubleByte bool) (offset, width int, err error) {
	if !doubleByte {
		i := bytes.IndexByte(b, 0)
		if i < 0 {
			return 0, 0, formatErrorf(ErrUnterminatedString, "single-byte terminator not found in %d bytes", len(b))
		}
		return i, 1, nil
	}

	for i := 0; i < len(b); i++ {
		if i%2 == 0 && i+1 < len(b) && b[i] == 0 && b[i+1] == 0 {
			return i, 2, nil
		}
	}
	return 0, 0, formatErrorf(ErrUnterminatedString, "double-byte terminator not found in %d bytes", len(b))
}

func terminatorBytes(width int) []byte {
	if width == 2 {
		return []byte{0, 0}
	}
	return []byte{0}
}

// DecodeString decodes a plain text frame payload: byte 0 is the
// encoding byte, the rest is the (possibly BOM-prefixed) string content.
// Unlike COMM/TXXX/APIC, a plain text frame carries no null terminator of
// its own, so the BOM-stripped body is decoded as-is.
func (d *Decoder) DecodeString(payload []byte) (string, error) {
	if len(payload) == 0 {
		return "", argumentErrorf("DecodeString: empty payload")
	}
	desc, body, err := resolveEncoding(payload[0], payload[1:])
	if err != nil {
		return "", err
	}
	return decodeCodepage(desc.Codepage, body)
}

// EncodeString encodes s using the Decoder's default encoding: UTF-16LE
// with a BOM for ID3v2.3, UTF-8 without one for ID3v2.4.
func (d *Decoder) EncodeString(s string) ([]byte, error) {
	desc := defaultEncoding(d.major)
	content, err := encodeCodepage(desc.Codepage, s)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, 1+len(desc.BOM)+len(content))
	out = append(out, desc.EncodingByte)
	out = append(out, desc.BOM...)
	out = append(out, content...)
	return out, nil
}

// DecodeComment decodes a COMM frame payload: encoding byte, 3-byte
// language code, then a null-terminated short description followed by
// the long comment text. Both strings may carry their own BOM, since
// EncodeComment repeats the BOM in front of each.
func (d *Decoder) DecodeComment(payload []byte) (Comment, error) {
	if len(payload) < 4 {
		return Comment{}, argumentErrorf("DecodeComment: payload too short (%d bytes)", len(payload))
	}
	encByte := payload[0]
	lang := string(payload[1:4])

	descA, shortBody, err := resolveEncoding(encByte, payload[4:])
	if err != nil {
		return Comment{}, err
	}
	off, width, err := scanNullTerminator(shortBody, descA.DoubleByte)
	if err != nil {
		return Comment{}, err
	}
	short, err := decodeCodepage(descA.Codepage, shortBody[:off])
	if err != nil {
		return Comment{}, err
	}

	descB, longBody, err := resolveEncoding(encByte, shortBody[off+width:])
	if err != nil {
		return Comment{}, err
	}
	long, err := decodeCodepage(descB.Codepage, longBody)
	if err != nil {
		return Comment{}, err
	}

	return Comment{Language: lang, Short: short, Long: long}, nil
}

// EncodeComment encodes c using the Decoder's default encoding. The
// language code is padded with spaces or truncated to exactly 3 bytes.
func (d *Decoder) EncodeComment(c Comment) ([]byte, error) {
	desc := defaultEncoding(d.major)

	lang := []byte(c.Language)
	langField := [3]byte{' ', ' ', ' '}
	copy(langField[:], lang)

	shortBytes, err := encodeCodepage(desc.Codepage, c.Short)
	if err != nil {
		return nil, err
	}
	longBytes, err := encodeCodepage(desc.Codepage, c.Long)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, 1+3+2*len(desc.BOM)+len(shortBytes)+len(longBytes)+4)
	out = append(out, desc.EncodingByte)
	out = append(out, langField[:]...)
	out = append(out, desc.BOM...)
	out = append(out, shortBytes...)
	out = append(out, terminatorBytes(widthOf(desc))...)
	out = append(out, desc.BOM...)
	out = append(out, longBytes...)
	return out, nil
}

func widthOf(desc encodingDescriptor) int {
	if desc.DoubleByte {
		return 2
	}
	return 1
}

// DecodeUserText decodes a TXXX frame payload: encoding byte, a
// null-terminated description, then the value text.
func (d *Decoder) DecodeUserText(payload []byte) (UserText, error) {
	if len(payload) == 0 {
		return UserText{}, argumentErrorf("DecodeUserText: empty payload")
	}
	encByte := payload[0]

	desc, body, err := resolveEncoding(encByte, payload[1:])
	if err != nil {
		return UserText{}, err
	}
	off, width, err := scanNullTerminator(body, desc.DoubleByte)
	if err != nil {
		return UserText{}, err
	}
	description, err := decodeCodepage(desc.Codepage, body[:off])
	if err != nil {
		return UserText{}, err
	}

	descB, valueBody, err := resolveEncoding(encByte, body[off+width:])
	if err != nil {
		return UserText{}, err
	}
	value, err := decodeCodepage(descB.Codepage, valueBody)
	if err != nil {
		return UserText{}, err
	}

	return UserText{Description: description, Value: value}, nil
}

// EncodeUserText encodes u using the Decoder's default encoding.
func (d *Decoder) EncodeUserText(u UserText) ([]byte, error) {
	desc := defaultEncoding(d.major)

	descBytes, err := encodeCodepage(desc.Codepage, u.Description)
	if err != nil {
		return nil, err
	}
	valueBytes, err := encodeCodepage(desc.Codepage, u.Value)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, 1+2*len(desc.BOM)+len(descBytes)+len(valueBytes)+2)
	out = append(out, desc.EncodingByte)
	out = append(out, desc.BOM...)
	out = append(out, descBytes...)
	out = append(out, terminatorBytes(widthOf(desc))...)
	out = append(out, desc.BOM...)
	out = append(out, valueBytes...)
	return out, nil
}

// DecodePopularity decodes a POPM frame payload: a null-terminated ASCII
// email, one rating byte, then a big-endian play count occupying
// whatever bytes remain (possibly zero, meaning a play count of 0).
func (d *Decoder) DecodePopularity(payload []byte) (Popularity, error) {
	i := bytes.IndexByte(payload, 0)
	if i < 0 {
		return Popularity{}, formatErrorf(ErrUnterminatedString, "POPM email terminator not found")
	}
	if i+1 >= len(payload) {
		return Popularity{}, argumentErrorf("DecodePopularity: payload too short for rating byte")
	}
	email := string(payload[:i])
	rating := payload[i+1]

	var playCount uint64
	for _, b := range payload[i+2:] {
		playCount = playCount<<8 | uint64(b)
	}

	return Popularity{Email: email, Rating: rating, PlayCount: playCount}, nil
}

// EncodePopularity encodes p. The play count is written using the
// smallest number of big-endian bytes that hold it (zero bytes if it's
// zero), matching how DecodePopularity accepts a variable-width tail.
func (d *Decoder) EncodePopularity(p Popularity) []byte {
	out := make([]byte, 0, len(p.Email)+2+8)
	out = append(out, []byte(p.Email)...)
	out = append(out, 0, p.Rating)

	if p.PlayCount == 0 {
		return out
	}
	var tmp [8]byte
	n := p.PlayCount
	i := 8
	for n > 0 {
		i--
		tmp[i] = byte(n)
		n >>= 8
	}
	return append(out, tmp[i:]...)
}

// DecodePicture decodes an APIC frame payload: encoding byte, a
// null-terminated ISO-8859-1 MIME type, one picture-type byte, a
// null-terminated description in the frame's encoding, then the raw
// picture bytes.
func (d *Decoder) DecodePicture(payload []byte) (Picture, error) {
	if len(payload) == 0 {
		return Picture{}, argumentErrorf("DecodePicture: empty payload")
	}
	encByte := payload[0]

	mimeEnd, _, err := scanNullTerminator(payload[1:], false)
	if err != nil {
		return Picture{}, err
	}
	mime, err := decodeCodepage(ISO88591, payload[1:1+mimeEnd])
	if err != nil {
		return Picture{}, err
	}

	rest := payload[1+mimeEnd+1:]
	if len(rest) < 1 {
		return Picture{}, argumentErrorf("DecodePicture: payload too short for picture type")
	}
	pictureType := rest[0]

	desc, body, err := resolveEncoding(encByte, rest[1:])
	if err != nil {
		return Picture{}, err
	}
	off, width, err := scanNullTerminator(body, desc.DoubleByte)
	if err != nil {
		return Picture{}, err
	}
	description, err := decodeCodepage(desc.Codepage, body[:off])
	if err != nil {
		return Picture{}, err
	}
	data := append([]byte(nil), body[off+width:]...)

	return Picture{MIME: mime, PictureType: pictureType, Description: description, Data: data}, nil
}

// EncodePicture encodes p using the Decoder's default encoding for the
// description field. The MIME type is always ISO-8859-1, per the wire
// format.
func (d *Decoder) EncodePicture(p Picture) ([]byte, error) {
	desc := defaultEncoding(d.major)

	mimeBytes, err := encodeCodepage(ISO88591, p.MIME)
	if err != nil {
		return nil, err
	}
	descBytes, err := encodeCodepage(desc.Codepage, p.Description)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, 2+len(mimeBytes)+1+len(desc.BOM)+len(descBytes)+2+len(p.Data))
	out = append(out, desc.EncodingByte)
	out = append(out, mimeBytes...)
	out = append(out, 0)
	out = append(out, p.PictureType)
	out = append(out, desc.BOM...)
	out = append(out, descBytes...)
	out = append(out, terminatorBytes(widthOf(desc))...)
	out = append(out, p.Data...)
	return out, nil
}
