package jsonmap

import (
	"errors"
	"fmt"
	"strings"
)

// SyntaxError reports malformed JSON text. Offset is the byte position of the
// offending character in the input.
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("jsonmap: syntax error at offset %d: %s", e.Offset, e.Msg)
}

// TypeMismatchError reports a dynamic value whose shape is incompatible with
// the requested target shape (for example an object where an array was
// required). Path is a JSON Pointer into the source document.
type TypeMismatchError struct {
	Path string
	Want string
	Got  string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("jsonmap: type mismatch at %s: expected %s, got %s", pointerOrRoot(e.Path), e.Want, e.Got)
}

// ConversionError reports a value of compatible shape that cannot be coerced
// to the target's concrete type (bad numeric literal, unknown enum constant,
// unparsable time, and so on).
type ConversionError struct {
	Path   string
	Target string
	Text   string
	Cause  error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("jsonmap: cannot convert %q to %s at %s", e.Text, e.Target, pointerOrRoot(e.Path))
}

func (e *ConversionError) Unwrap() error { return e.Cause }

// ConstructionError reports a target type that cannot be instantiated or a
// field that cannot be assigned.
type ConstructionError struct {
	Type   string
	Reason string
	Cause  error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("jsonmap: cannot construct %s: %s", e.Type, e.Reason)
}

func (e *ConstructionError) Unwrap() error { return e.Cause }

// EncodeError is the single error surfaced by the serialize direction. It
// wraps the specific underlying error as its cause.
type EncodeError struct {
	Type string
	Err  error
}

func (e *EncodeError) Error() string {
	if e.Type == "" {
		return "jsonmap: encode failed: " + e.Err.Error()
	}
	return fmt.Sprintf("jsonmap: failed to encode %s: %v", e.Type, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// DecodeError is the single error surfaced by the deserialize direction. It
// wraps the specific underlying error as its cause.
type DecodeError struct {
	Type string
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Type == "" {
		return "jsonmap: decode failed: " + e.Err.Error()
	}
	return fmt.Sprintf("jsonmap: failed to decode into %s: %v", e.Type, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// AsSyntaxError extracts a *SyntaxError from an error chain.
func AsSyntaxError(err error) (*SyntaxError, bool) {
	var se *SyntaxError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

func pointerOrRoot(p string) string {
	if p == "" {
		return "/"
	}
	return p
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// joinPointer appends an escaped token to a JSON Pointer path.
func joinPointer(base, token string) string {
	return base + "/" + pointerEscaper.Replace(token)
}

func decodeErr(target string, err error) error {
	var de *DecodeError
	if errors.As(err, &de) {
		return err
	}
	return &DecodeError{Type: target, Err: err}
}

func encodeErr(target string, err error) error {
	var ee *EncodeError
	if errors.As(err, &ee) {
		return err
	}
	return &EncodeError{Type: target, Err: err}
}
