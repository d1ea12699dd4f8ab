package id3v2

import (
	"encoding/binary"

	"go.tagkit.dev/mp3tag/bytefile"
)

// Frame-level flag bits, ID3v2.4 layout (arenzana-id3v2 / moshee-sound's
// frameTagAlterPreservation and friends). These are read-only
// conveniences over the raw Flags word: nothing in the mutation or
// write-back path inspects them, so they carry no invariant of their own.
const (
	frameFlagTagAlterPreservation  uint16 = 1 << 14
	frameFlagFileAlterPreservation uint16 = 1 << 13
	frameFlagReadOnly              uint16 = 1 << 12
)

// Frame is one ID3v2 frame: a 4-character identifier, the absolute file
// offset of its payload (not its header), the payload itself, and the
// frame-level flags word.
type Frame struct {
	ID      string
	Offset  int64
	Size    uint32
	Flags   uint16
	Payload []byte
}

// allocateFrame creates a Frame with offset 0; the caller (TagData) must
// realign the frame list before the offset is meaningful.
func allocateFrame(id string, payload []byte) *Frame {
	return &Frame{ID: id, Size: uint32(len(payload)), Payload: payload}
}

// SetPayload replaces the frame's payload; its declared size tracks the
// new length.
func (f *Frame) SetPayload(payload []byte) {
	f.Payload = payload
	f.Size = uint32(len(payload))
}

// DiscardOnTagAlter reports the frame's "discard if tag is altered" flag.
func (f *Frame) DiscardOnTagAlter() bool {
	return f.Flags&frameFlagTagAlterPreservation != 0
}

// DiscardOnFileAlter reports the frame's "discard if file is altered" flag.
func (f *Frame) DiscardOnFileAlter() bool {
	return f.Flags&frameFlagFileAlterPreservation != 0
}

// ReadOnly reports the frame's read-only flag.
func (f *Frame) ReadOnly() bool {
	return f.Flags&frameFlagReadOnly != 0
}

// Write serializes the frame's 10-byte header followed by its payload,
// positioning file's cursor to the frame header's start (Offset minus the
// header size) first.
func (f *Frame) Write(file bytefile.File) error {
	if _, err := file.Seek(f.Offset-FrameHeaderSize, bytefile.SeekStart); err != nil {
		return ioErrorf(err, "seek to frame %s header", f.ID)
	}

	header := make([]byte, FrameHeaderSize)
	copy(header[0:4], f.ID)
	binary.BigEndian.PutUint32(header[4:8], f.Size)
	binary.BigEndian.PutUint16(header[8:10], f.Flags)

	if _, err := file.Write(header); err != nil {
		return ioErrorf(err, "write frame %s header", f.ID)
	}
	if _, err := file.Write(f.Payload); err != nil {
		return ioErrorf(err, "write frame %s payload", f.ID)
	}
	return nil
}
