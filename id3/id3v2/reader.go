package id3v2

import (
	"os"

	"go.tagkit.dev/mp3tag/bytefile"
)

// ReadTag opens path and parses its ID3v2 tag, if any. A file that
// doesn't begin with the "ID3" magic is not an error: ReadTag returns a
// TagData synthesized by NoHeader, treating the entire file as audio.
func ReadTag(path string) (*TagData, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, ioErrorf(err, "stat %s", path)
	}
	fileSize := info.Size()

	// Opened for update, not read-only: TagData.Save's in-place write-back
	// path writes the header/frames/padding/footer back through this same
	// handle whenever padding absorbs a size change.
	file, err := bytefile.Open(path, bytefile.ModeUpdate)
	if err != nil {
		return nil, ioErrorf(err, "open %s", path)
	}

	if fileSize < HeaderSize {
		return NoHeader(file, path, fileSize), nil
	}

	header, err := file.ReadSlice(0, HeaderSize)
	if err != nil {
		return NoHeader(file, path, fileSize), nil
	}
	if header[0] != 'I' || header[1] != 'D' || header[2] != '3' {
		return NoHeader(file, path, fileSize), nil
	}

	version := Version{Major: header[3], Minor: header[4]}
	if !version.Supported() {
		return nil, formatErrorf(ErrUnsupportedVersion, "major version %d", version.Major)
	}
	flags := header[5]
	if flags&FlagExtendedHeader != 0 {
		return nil, formatErrorf(ErrUnsupportedFeature, "extended header")
	}
	contentSize := int64(decodeSynsafeBytes(header[6:10]))

	hasFooter := version.Major == Major4 && flags&FlagFooter != 0
	footerSize := int64(0)
	if hasFooter {
		footerSize = FooterSize
	}
	tagEnd := HeaderSize + contentSize + footerSize
	if tagEnd > fileSize {
		return nil, formatErrorf(ErrUnsupportedFeature, "tag claims %d bytes, file has %d", tagEnd, fileSize)
	}

	content, err := file.ReadSlice(HeaderSize, int(contentSize))
	if err != nil {
		return nil, ioErrorf(err, "read tag content of %s", path)
	}

	frames, paddingOffset, err := readFrames(content)
	if err != nil {
		return nil, err
	}

	paddingSize := contentSize - paddingOffset
	decoder := NewDecoder(version.Major)

	return &TagData{
		file:       file,
		sourcePath: path,
		Version:    version,
		Flags:      flags,
		tagEnd:     tagEnd,
		Frames:     frames,
		Padding:    Padding{Offset: HeaderSize + paddingOffset, Size: paddingSize},
		Audio:      ByteRange{file: file, Offset: tagEnd, Size: fileSize - tagEnd},
		HasFooter:  hasFooter,
		decoder:    decoder,
	}, nil
}

// readFrames walks content (the tag body, starting right after the
// 10-byte header, not including any footer) frame by frame until it
// either runs out of room or finds a frame header beginning with a zero
// byte, which marks the start of padding. Each Frame's Offset is already
// an absolute file offset (HeaderSize is added here); the returned
// padding offset is relative to the start of content, and the caller
// adds HeaderSize to it.
func readFrames(content []byte) ([]*Frame, int64, error) {
	var frames []*Frame
	pos := int64(0)

	for {
		if pos+FrameHeaderSize > int64(len(content)) {
			return frames, pos, nil
		}
		if content[pos] == 0 {
			return frames, pos, nil
		}

		id := string(content[pos : pos+4])
		size := uint32(content[pos+4])<<24 | uint32(content[pos+5])<<16 | uint32(content[pos+6])<<8 | uint32(content[pos+7])
		flags := uint16(content[pos+8])<<8 | uint16(content[pos+9])

		payloadStart := pos + FrameHeaderSize
		payloadEnd := payloadStart + int64(size)
		if payloadEnd > int64(len(content)) {
			return nil, 0, formatErrorf(ErrUnsupportedFeature, "frame %s size %d overruns tag content", id, size)
		}

		payload := append([]byte(nil), content[payloadStart:payloadEnd]...)
		frames = append(frames, &Frame{
			ID:      id,
			Offset:  HeaderSize + payloadStart,
			Size:    size,
			Flags:   flags,
			Payload: payload,
		})

		pos = payloadEnd
	}
}
