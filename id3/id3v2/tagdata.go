package id3v2

import (
	"bytes"

	"go.tagkit.dev/mp3tag/bytefile"
)

// Padding describes the run of zero bytes between the last frame's
// payload and the start of the audio data.
type Padding struct {
	Offset int64
	Size   int64
}

// TagData is the central in-memory model of a parsed (or synthesized)
// ID3v2 tag: the header fields, the ordered frame catalog, the padding
// descriptor, a lazy locator for the audio bytes, and the dirty/rewrite
// bookkeeping that TagData.Save consults when deciding how to write the
// tag back out.
type TagData struct {
	file       bytefile.File
	sourcePath string

	Version Version
	Flags   uint8

	// tagEnd is the absolute file offset one past the tag's content
	// (frames + padding + footer, if any) — equivalently, the offset
	// where the audio data begins once the tag has actually been
	// written to disk in this shape.
	tagEnd int64

	Frames  []*Frame
	Padding Padding
	Audio   ByteRange

	// Rewrite is set when a size growth has exhausted padding: the
	// audio payload must be relocated on save.
	Rewrite bool
	// Dirty is set when any user-visible field has changed since
	// load/last save.
	Dirty bool
	// HasFooter tracks whether a v2.4 footer should be written.
	HasFooter bool

	decoder *Decoder
}

// NoHeader synthesizes an empty TagData for a file with no ID3v2 header:
// zero frames, zero padding, and the audio region set to the entire
// file. It's also what ReadTag falls back to when a file doesn't start
// with the "ID3" magic.
func NoHeader(file bytefile.File, sourcePath string, fileSize int64) *TagData {
	v := Version{Major: Major3, Minor: 0}
	return &TagData{
		file:       file,
		sourcePath: sourcePath,
		Version:    v,
		tagEnd:     HeaderSize,
		Frames:     nil,
		Padding:    Padding{Offset: HeaderSize, Size: 0},
		Audio:      ByteRange{file: file, Offset: 0, Size: fileSize},
		decoder:    NewDecoder(v.Major),
	}
}

// Decoder returns the Decoder configured for this tag's major version.
func (t *TagData) Decoder() *Decoder { return t.decoder }

// GetFrame returns the first frame with the given id, or nil.
func (t *TagData) GetFrame(id string) *Frame {
	for _, f := range t.Frames {
		if f.ID == id {
			return f
		}
	}
	return nil
}

// GetFrames returns every frame with the given id, in order.
func (t *TagData) GetFrames(id string) []*Frame {
	var out []*Frame
	for _, f := range t.Frames {
		if f.ID == id {
			out = append(out, f)
		}
	}
	return out
}

// GetFrameBuffer returns the payload of the first frame with the given
// id. The bool return is false if no such frame exists.
func (t *TagData) GetFrameBuffer(id string) ([]byte, bool) {
	f := t.GetFrame(id)
	if f == nil {
		return nil, false
	}
	return f.Payload, true
}

// GetFrameBuffers returns the payloads of every frame with the given id.
func (t *TagData) GetFrameBuffers(id string) [][]byte {
	frames := t.GetFrames(id)
	if frames == nil {
		return nil
	}
	out := make([][]byte, len(frames))
	for i, f := range frames {
		out[i] = f.Payload
	}
	return out
}

// SetFrameBuffer replaces (or creates) the single frame with the given
// id. It assumes frame ids are unique for write purposes: if more than
// one frame with id exists, only the first is updated.
func (t *TagData) SetFrameBuffer(id string, payload []byte) {
	t.reallocateFrame(id, payload)
}

// RemoveFrame deletes every frame with the given id and realigns the
// remaining catalog.
func (t *TagData) RemoveFrame(id string) {
	kept := t.Frames[:0:0]
	removed := false
	for _, f := range t.Frames {
		if f.ID == id {
			removed = true
			continue
		}
		kept = append(kept, f)
	}
	if !removed {
		return
	}
	t.Frames = kept
	t.realignFrames()
	t.Dirty = true
}

// reallocateFrame implements SetFrameBuffer's semantics: allocate if
// absent, no-op if the payload is unchanged, otherwise replace the
// payload (realigning if the size changed).
func (t *TagData) reallocateFrame(id string, payload []byte) {
	f := t.GetFrame(id)
	if f == nil {
		t.allocateFrame(id, payload)
		t.Dirty = true
		return
	}
	if bytes.Equal(f.Payload, payload) {
		return
	}
	oldSize := f.Size
	f.SetPayload(payload)
	if f.Size != oldSize {
		t.realignFrames()
	}
	t.Dirty = true
}

// allocateFrame appends a new frame and realigns the catalog so its
// offset (and the padding descriptor) reflect the addition.
func (t *TagData) allocateFrame(id string, payload []byte) *Frame {
	f := allocateFrame(id, payload)
	t.Frames = append(t.Frames, f)
	t.realignFrames()
	return f
}

// realignFrames recomputes every frame's offset from the current frame
// sizes, then reconciles the padding descriptor against wherever the
// frame list now ends. If the frames now overrun the old padding region
// entirely, tagEnd grows to make room and Rewrite is set: the audio
// payload will need to be relocated on the next save.
func (t *TagData) realignFrames() {
	cursor := int64(HeaderSize)
	for _, f := range t.Frames {
		f.Offset = cursor + FrameHeaderSize
		cursor += FrameHeaderSize + int64(f.Size)
	}

	delta := cursor - t.Padding.Offset
	t.Padding.Offset += delta
	t.Padding.Size -= delta

	if t.Padding.Size < 0 {
		t.tagEnd += -t.Padding.Size
		t.Rewrite = true
		t.Padding.Size = 0
	}

	t.Dirty = true
}

// checkFooter enforces the rule that a footer and non-zero padding are
// mutually exclusive: if a footer is pending but padding has grown past
// zero, the footer is dropped in favor of keeping the padding, and its
// space is folded into the padding instead. Idempotent.
func (t *TagData) checkFooter() {
	if t.HasFooter && t.Padding.Size > 0 {
		t.Padding.Size += FooterSize
		t.HasFooter = false
		t.Flags &^= FlagFooter
	}
}

// GetContentSize returns the value that belongs in the tag header's
// (and, if present, footer's) synsafe size field: everything between the
// header and the audio data, excluding the footer itself.
func (t *TagData) GetContentSize() int64 {
	footer := int64(0)
	if t.HasFooter {
		footer = FooterSize
	}
	return t.tagEnd - HeaderSize - footer
}

// GetAudioBytes loads and returns the audio payload.
func (t *TagData) GetAudioBytes() (Bytes, error) {
	return t.Audio.Load()
}

func (t *TagData) writeTagHeader(w bytefile.File) error {
	header := make([]byte, HeaderSize)
	header[0], header[1], header[2] = 'I', 'D', '3'
	header[3] = t.Version.Major
	header[4] = t.Version.Minor
	header[5] = t.Flags
	size := encodeSynsafeBytes(uint32(t.GetContentSize()))
	copy(header[6:10], size[:])

	if _, err := w.Write(header); err != nil {
		return ioErrorf(err, "write tag header")
	}
	return nil
}

func (t *TagData) writeTagFooter(w bytefile.File) error {
	footer := make([]byte, FooterSize)
	footer[0], footer[1], footer[2] = '3', 'D', 'I'
	footer[3] = t.Version.Major
	footer[4] = t.Version.Minor
	footer[5] = t.Flags
	size := encodeSynsafeBytes(uint32(t.GetContentSize()))
	copy(footer[6:10], size[:])

	if _, err := w.Write(footer); err != nil {
		return ioErrorf(err, "write tag footer")
	}
	return nil
}
