package resp

import "errors"

// ErrProtocol matches every decode failure caused by malformed input.
// Transport errors from the underlying reader are returned unchanged and
// do not match it.
var ErrProtocol = errors.New("resp: protocol error")

// Decode failure causes. Each returned *Error wraps exactly one of these.
var (
	ErrUnknownTag        = errors.New("unknown type tag")
	ErrMalformedLine     = errors.New("malformed line")
	ErrMissingTerminator = errors.New("missing terminator")
	ErrLineTooLong       = errors.New("line too long")
	ErrInvalidText       = errors.New("invalid utf-8 text")
	ErrInvalidInteger    = errors.New("invalid integer")
	ErrInvalidLength     = errors.New("invalid length")
	ErrLengthOutOfBounds = errors.New("length out of bounds")
	ErrTruncated         = errors.New("truncated value")
	ErrTruncatedArray    = errors.New("truncated array")
	ErrDepthExceeded     = errors.New("nesting depth exceeded")
)

// Error is a protocol decode error.
type Error struct {
	Err    error  // one of the Err* causes above
	Detail string // offending input or limit, may be empty
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return "resp: " + e.Err.Error() + ": " + e.Detail
	}
	return "resp: " + e.Err.Error()
}

// Unwrap returns the cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is makes every *Error match ErrProtocol in addition to its cause.
func (e *Error) Is(target error) bool {
	return target == ErrProtocol
}

func protoErr(cause error, detail string) error {
	return &Error{Err: cause, Detail: detail}
}
