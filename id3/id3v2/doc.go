// Package id3v2 reads, mutates, and writes ID3v2.3 and ID3v2.4 metadata
// tags embedded at the head of MP3 files.
//
// ReadTag parses a tag (or synthesizes an empty one for a tagless file)
// into a *TagData. Frame payloads are looked up and replaced by 4-byte
// frame identifier through TagData's Get/Set/Remove methods, and decoded
// or re-encoded through the Decoder returned by NewDecoder. TagData.Save
// and TagData.WriteTo serialize the tag back out, reusing the original
// padding in place when the new tag still fits and falling back to a full
// rewrite (including relocating the audio payload) when it doesn't.
package id3v2
