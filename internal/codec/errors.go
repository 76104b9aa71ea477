package codec

import (
	"errors"
	"fmt"
)

// Failure categories. Every error returned by this package matches exactly
// one of them under errors.Is.
var (
	ErrDecode            = errors.New("decode failed")
	ErrEncode            = errors.New("encode failed")
	ErrUnsupportedFormat = errors.New("unsupported target format")
)

// Error records the codec stage that failed and the underlying cause.
type Error struct {
	Op   string // "decode", "encode", "read"
	Kind error  // One of the Err* sentinels.
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

// Unwrap exposes both the category sentinel and the cause.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func decodeError(err error) error {
	return &Error{Op: "decode", Kind: ErrDecode, Err: err}
}

func encodeError(err error) error {
	return &Error{Op: "encode", Kind: ErrEncode, Err: err}
}
