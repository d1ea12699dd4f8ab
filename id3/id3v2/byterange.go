package id3v2

import "go.tagkit.dev/mp3tag/bytefile"

// Bytes is a materialized byte payload, as opposed to a lazy range over a
// file. It carries no notion of where it came from.
type Bytes []byte

// ByteRange is a lazy, positional view over a region of a bytefile.File.
// Unlike the source repository's combined Data/DataSource wrapper, this
// carries no inheritance relationship with Bytes: a ByteRange produces
// Bytes on demand through Load, and that's the only connection between
// the two types.
type ByteRange struct {
	file   bytefile.File
	Offset int64
	Size   int64
}

// Load reads the entire range into memory.
func (r ByteRange) Load() (Bytes, error) {
	if r.Size == 0 {
		return Bytes{}, nil
	}
	if r.file == nil {
		return nil, stateErrorf("byte range has no backing file")
	}
	b, err := r.file.ReadSlice(r.Offset, int(r.Size))
	if err != nil {
		return nil, ioErrorf(err, "load byte range [%d,%d)", r.Offset, r.Offset+r.Size)
	}
	return Bytes(b), nil
}
