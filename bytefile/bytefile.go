// Package bytefile provides a positional byte-stream abstraction over an
// open file descriptor or a fixed-size in-memory buffer. Every read and
// write is relative to an explicit cursor that the caller can seek
// independently of the underlying descriptor's own offset, which keeps
// higher-level code (frame parsers, tag writers) from having to reason
// about os.File's notion of "current position".
package bytefile

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

// Mode selects how Open prepares the underlying file.
type Mode int

const (
	// ModeRead opens an existing file for reading only.
	ModeRead Mode = iota
	// ModeTruncate creates (or truncates) a file for writing from scratch.
	ModeTruncate
	// ModeUpdate opens an existing file for reading and writing without
	// truncating it, so bytes beyond whatever gets written remain intact.
	ModeUpdate
)

// Origin selects how Seek interprets its delta argument.
type Origin int

const (
	// SeekStart seeks to an absolute byte offset.
	SeekStart Origin = iota
	// SeekCurrent seeks relative to the current cursor.
	SeekCurrent
)

// ErrOutOfRange is returned when a write to a fixed-size Buffer would
// extend past the end of its backing array.
var ErrOutOfRange = errors.New("bytefile: write out of range")

// File is a positional byte-stream: every Read/Write happens at the
// cursor and advances it, while ReadSlice is purely positional and never
// touches the cursor.
type File interface {
	// Position returns the current cursor, starting at 0.
	Position() int64
	// Read reads into p starting at the cursor and advances it by the
	// number of bytes read.
	Read(p []byte) (int, error)
	// ReadSlice reads exactly length bytes starting at offset,
	// without moving the cursor. A short read is an error.
	ReadSlice(offset int64, length int) ([]byte, error)
	// Write writes p starting at the cursor and advances it by len(p).
	Write(p []byte) (int, error)
	// Seek repositions the cursor and returns the new absolute position.
	Seek(delta int64, origin Origin) (int64, error)
	// Close releases any underlying resources.
	Close() error
}

// OSFile is a File backed by an *os.File. All reads and writes are
// positional (ReadAt/WriteAt) so the cursor this type tracks is entirely
// independent of the os.File's own offset.
type OSFile struct {
	f    *os.File
	mode Mode
	pos  int64
}

// Open opens path in the given Mode. ModeRead requires the file to
// already exist; ModeTruncate creates it fresh (truncating any existing
// contents); ModeUpdate opens an existing file for in-place read/write.
func Open(path string, mode Mode) (*OSFile, error) {
	var (
		f   *os.File
		err error
	)
	switch mode {
	case ModeRead:
		f, err = os.Open(path)
	case ModeTruncate:
		f, err = os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	case ModeUpdate:
		f, err = os.OpenFile(path, os.O_RDWR, 0644)
	default:
		return nil, errors.Errorf("bytefile: unknown mode %d", mode)
	}
	if err != nil {
		return nil, errors.Wrap(err, "bytefile: open")
	}
	return &OSFile{f: f, mode: mode}, nil
}

func (o *OSFile) Position() int64 { return o.pos }

func (o *OSFile) Read(p []byte) (int, error) {
	n, err := o.f.ReadAt(p, o.pos)
	o.pos += int64(n)
	if err == io.EOF && n > 0 {
		// A short final read is not an error for sequential Read; the
		// caller sees the true byte count and can ask again.
		return n, nil
	}
	return n, err
}

func (o *OSFile) ReadSlice(offset int64, length int) ([]byte, error) {
	buf := make([]byte, length)
	n, err := o.f.ReadAt(buf, offset)
	if n < length {
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		return nil, errors.Wrapf(err, "bytefile: short read at %d (wanted %d, got %d)", offset, length, n)
	}
	return buf, nil
}

func (o *OSFile) Write(p []byte) (int, error) {
	if o.mode == ModeRead {
		return 0, errors.New("bytefile: file opened read-only")
	}
	n, err := o.f.WriteAt(p, o.pos)
	o.pos += int64(n)
	if err != nil {
		return n, errors.Wrap(err, "bytefile: write")
	}
	return n, nil
}

func (o *OSFile) Seek(delta int64, origin Origin) (int64, error) {
	switch origin {
	case SeekStart:
		o.pos = delta
	case SeekCurrent:
		o.pos += delta
	default:
		return o.pos, errors.Errorf("bytefile: unknown seek origin %d", origin)
	}
	return o.pos, nil
}

func (o *OSFile) Close() error {
	return o.f.Close()
}

// Buffer is a File backed by a fixed-size in-memory byte slice. It never
// grows: a Write that would extend past the end of the buffer fails with
// ErrOutOfRange.
type Buffer struct {
	buf []byte
	pos int64
}

// NewBuffer wraps buf as a File. The caller is responsible for sizing buf
// to whatever the eventual contents require.
func NewBuffer(buf []byte) *Buffer {
	return &Buffer{buf: buf}
}

// Bytes returns the backing slice.
func (b *Buffer) Bytes() []byte { return b.buf }

func (b *Buffer) Position() int64 { return b.pos }

func (b *Buffer) Read(p []byte) (int, error) {
	if b.pos >= int64(len(b.buf)) {
		return 0, io.EOF
	}
	n := copy(p, b.buf[b.pos:])
	b.pos += int64(n)
	return n, nil
}

func (b *Buffer) ReadSlice(offset int64, length int) ([]byte, error) {
	end := offset + int64(length)
	if offset < 0 || end > int64(len(b.buf)) {
		return nil, errors.Wrapf(io.ErrUnexpectedEOF, "bytefile: short read at %d (wanted %d, have %d)", offset, length, int64(len(b.buf))-offset)
	}
	out := make([]byte, length)
	copy(out, b.buf[offset:end])
	return out, nil
}

func (b *Buffer) Write(p []byte) (int, error) {
	end := b.pos + int64(len(p))
	if end > int64(len(b.buf)) {
		return 0, ErrOutOfRange
	}
	copy(b.buf[b.pos:end], p)
	b.pos = end
	return len(p), nil
}

func (b *Buffer) Seek(delta int64, origin Origin) (int64, error) {
	switch origin {
	case SeekStart:
		b.pos = delta
	case SeekCurrent:
		b.pos += delta
	default:
		return b.pos, errors.Errorf("bytefile: unknown seek origin %d", origin)
	}
	return b.pos, nil
}

func (b *Buffer) Close() error { return nil }
