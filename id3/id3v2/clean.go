package id3v2

import (
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// CleanDescription strips stray NUL and control characters from a
// decoded string, for display purposes only. Some encoders leave extra
// null bytes inside a field, or pad it with low control characters:
// neither belongs in a rendered description or comment title. The string
// is also put through Unicode NFKD normalization, so precomposed
// characters come back decomposed (e.g. "é" as "e" plus a combining
// accent) and compatibility forms such as ligatures are replaced.
//
// This is deliberately not part of the decode path: decodeString and
// friends preserve whatever bytes the frame actually contained, so a
// round trip through decode/encode never silently drops data a caller
// might want back verbatim. Callers that only display the value (a
// tag-listing command, say) can run it through CleanDescription first.
func CleanDescription(s string) string {
	s = removeRunes(s, func(r rune) bool { return r == 0 })
	s = removeRunes(s, func(r rune) bool { return r < 32 && r != '\t' })
	return s
}

func removeRunes(s string, drop func(rune) bool) string {
	t := transform.Chain(norm.NFKD, transform.RemoveFunc(drop))
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
