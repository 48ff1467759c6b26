package poly

import (
	"errors"
	"fmt"
)

var (
	ErrOverflow         = errors.New("coefficient overflow")
	ErrExponentOverflow = errors.New("exponent overflow")
	ErrNegativeExponent = errors.New("negative exponent")

	ErrSyntax  = errors.New("syntax error")
	ErrRange   = errors.New("value out of range")
	ErrTooDeep = errors.New("polynomial nested too deeply")

	errInvalidEncoding = errors.New("invalid polynomial encoding")
)

// ParseError describes why a string is not a polynomial. Err is one of
// ErrSyntax, ErrRange or ErrTooDeep.
type ParseError struct {
	Offset int // byte offset in the input
	Msg    string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v at offset %d: %s", e.Err, e.Offset, e.Msg)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
