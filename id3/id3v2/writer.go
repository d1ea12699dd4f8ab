package id3v2

import (
	"go.tagkit.dev/mp3tag/bytefile"
)

// Save writes the tag back to its source file, in place when possible.
// It's a no-op if nothing has changed since the tag was loaded or last
// saved.
func (t *TagData) Save() error {
	if t.sourcePath == "" {
		return stateErrorf("Save: tag has no source path, use WriteTo")
	}
	return t.writeTo(t.sourcePath, true)
}

// WriteTo writes the tag and its audio to path. Unlike Save, this always
// performs a full rewrite: it makes no assumption that path is the file
// the tag was loaded from.
func (t *TagData) WriteTo(path string) error {
	return t.writeTo(path, false)
}

func (t *TagData) writeTo(path string, inPlace bool) error {
	if !t.Dirty && inPlace && path == t.sourcePath {
		return nil
	}

	t.checkFooter()

	sameFile := inPlace && path == t.sourcePath
	needsRelocation := t.Rewrite || !sameFile

	if !needsRelocation {
		return t.writeInPlace()
	}
	return t.writeFull(path)
}

// writeInPlace rewrites the header, frames, padding, and footer of the
// source file without touching the audio bytes, which remain at their
// existing offset because padding absorbed any size change.
func (t *TagData) writeInPlace() error {
	if t.file == nil {
		return stateErrorf("writeInPlace: tag has no backing file")
	}

	if _, err := t.file.Seek(0, bytefile.SeekStart); err != nil {
		return ioErrorf(err, "seek to tag start")
	}
	if err := t.writeTagHeader(t.file); err != nil {
		return err
	}
	for _, f := range t.Frames {
		if err := f.Write(t.file); err != nil {
			return err
		}
	}
	if err := t.writePadding(t.file); err != nil {
		return err
	}
	if t.HasFooter {
		if err := t.writeTagFooter(t.file); err != nil {
			return err
		}
	}

	t.Dirty = false
	t.Rewrite = false
	return nil
}

// writeFull writes the entire file — header, frames, padding, footer,
// and audio — to path from scratch. This is used whenever the audio
// payload must move: either because padding has been exhausted (Rewrite)
// or because the destination isn't the file the tag was loaded from.
func (t *TagData) writeFull(path string) error {
	audio, err := t.GetAudioBytes()
	if err != nil {
		return err
	}

	out, err := bytefile.Open(path, bytefile.ModeTruncate)
	if err != nil {
		return ioErrorf(err, "open %s for writing", path)
	}

	if err := t.writeTagHeader(out); err != nil {
		out.Close()
		return err
	}
	for _, f := range t.Frames {
		if err := f.Write(out); err != nil {
			out.Close()
			return err
		}
	}
	if err := t.writePadding(out); err != nil {
		out.Close()
		return err
	}
	if t.HasFooter {
		if err := t.writeTagFooter(out); err != nil {
			out.Close()
			return err
		}
	}
	if _, err := out.Write(audio); err != nil {
		out.Close()
		return ioErrorf(err, "write audio to %s", path)
	}

	if err := out.Close(); err != nil {
		return ioErrorf(err, "close %s", path)
	}

	if t.file != nil {
		if err := t.file.Close(); err != nil {
			return ioErrorf(err, "close previous source file")
		}
	}

	reopened, err := bytefile.Open(path, bytefile.ModeUpdate)
	if err != nil {
		return ioErrorf(err, "reopen %s", path)
	}
	t.file = reopened
	t.sourcePath = path
	t.Audio = ByteRange{file: reopened, Offset: t.tagEnd, Size: int64(len(audio))}
	t.Dirty = false
	t.Rewrite = false
	return nil
}

func (t *TagData) writePadding(w bytefile.File) error {
	if t.Padding.Size == 0 {
		return nil
	}
	const chunk = 4096
	buf := make([]byte, chunk)
	remaining := t.Padding.Size
	for remaining > 0 {
		n := int64(chunk)
		if remaining < n {
			n = remaining
		}
		if _, err := w.Write(buf[:n]); err != nil {
			return ioErrorf(err, "write padding")
		}
		remaining -= n
	}
	return nil
}
