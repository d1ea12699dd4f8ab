package id3v2

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies what went wrong, independent of the specific message.
// Pure lookups (GetFrame, GetFrameBuffer, ...) never return an error: a
// missing frame is absence, not failure.
type Kind int

const (
	// KindIO covers an underlying open/read/write failure, including a
	// short read where an exact byte count was required.
	KindIO Kind = iota
	// KindFormat covers a malformed header or frame: an unsupported
	// version, an unsupported flag, an unknown encoding byte, an
	// unterminated string, or an otherwise invalid size.
	KindFormat
	// KindArgument covers a caller passing the wrong shape of input to a
	// codec routine, or a nonexistent destination to a sink operation.
	KindArgument
	// KindState covers an operation, such as Save, that needs a bound
	// source file and doesn't have one.
	KindState
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindFormat:
		return "format"
	case KindArgument:
		return "argument"
	case KindState:
		return "state"
	default:
		return "unknown"
	}
}

// Error is the error type every exported id3v2 operation returns. It
// carries a Kind so callers can branch on the category of failure, and
// wraps the underlying cause (if any) so %+v / errors.Unwrap still reach
// the original error.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("id3v2: %s: %s", e.Kind, e.Op)
	}
	return fmt.Sprintf("id3v2: %s: %s: %v", e.Kind, e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, op string, cause error) *Error {
	return &Error{Kind: kind, Op: op, Err: cause}
}

func ioErrorf(cause error, format string, args ...interface{}) *Error {
	return newError(KindIO, fmt.Sprintf(format, args...), cause)
}

func formatErrorf(cause error, format string, args ...interface{}) *Error {
	return newError(KindFormat, fmt.Sprintf(format, args...), cause)
}

func argumentErrorf(format string, args ...interface{}) *Error {
	return newError(KindArgument, fmt.Sprintf(format, args...), nil)
}

func stateErrorf(format string, args ...interface{}) *Error {
	return newError(KindState, fmt.Sprintf(format, args...), nil)
}

// Sentinel format-error causes, wrapped into a *Error by the call sites
// that detect them so the message always names the bytes involved.
var (
	// ErrUnsupportedVersion is the cause for a tag whose major version is
	// anything but 3 or 4.
	ErrUnsupportedVersion = errors.New("unsupported id3v2 major version")
	// ErrUnsupportedFeature is the cause for a tag that sets the extended
	// header flag, which this package does not parse. ReadTag also uses it
	// for a tag or frame whose declared size overruns the bytes available.
	ErrUnsupportedFeature = errors.New("unsupported id3v2 feature")
	// ErrUnknownEncodingByte is the cause for a frame whose encoding byte
	// is not one of 0x00-0x03.
	ErrUnknownEncodingByte = errors.New("unknown text encoding byte")
	// ErrUnterminatedString is the cause for a null-terminated field
	// whose terminator is missing from the payload.
	ErrUnterminatedString = errors.New("unterminated string in frame payload")
)
