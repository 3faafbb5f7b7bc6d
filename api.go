package jsonmap

import (
	"io"
	"reflect"
	"strings"
)

// ContentType is the MIME type of the texts this package produces and
// consumes.
const ContentType = "application/json"

// Encode serializes v according to the context's configuration and returns
// the JSON text. A nil v encodes as the null literal.
func Encode(c *Context, v any) (string, error) {
	var sb strings.Builder
	if err := EncodeTo(c, v, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// EncodeTo serializes v directly to w without buffering the whole document.
func EncodeTo(c *Context, v any, w io.Writer) error {
	jw := NewWriter(w)
	if c.pretty {
		jw = NewIndentWriter(w, c.indent)
	}
	e := &encoder{ctx: c, w: jw}
	if err := e.encodeAny(v, 0); err != nil {
		return encodeErr(typeNameOf(v), err)
	}
	if err := jw.Err(); err != nil {
		return encodeErr(typeNameOf(v), err)
	}
	return nil
}

// Decode parses data and maps it onto a T. Empty input, blank input and the
// bare null literal all yield T's zero value with a nil error.
func Decode[T any](c *Context, data []byte) (T, error) {
	var zero T
	t := goTypeOf[T]()
	if isBlank(data) {
		return zero, nil
	}
	v, err := ParseLimit(data, c.maxDepth)
	if err != nil {
		return zero, decodeErr(t.String(), err)
	}
	out, err := decodeInto(c, v, t)
	if err != nil {
		return zero, err
	}
	if out == nil {
		return zero, nil
	}
	return out.(T), nil
}

// DecodeString is Decode over a string input.
func DecodeString[T any](c *Context, text string) (T, error) {
	return Decode[T](c, []byte(text))
}

// DecodeFrom reads r to the end and decodes the result.
func DecodeFrom[T any](c *Context, r io.Reader) (T, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		var zero T
		return zero, decodeErr(goTypeOf[T]().String(), err)
	}
	return Decode[T](c, data)
}

// DecodeValue maps an already-parsed Value onto a T, for callers that obtain
// the dynamic tree from somewhere other than JSON text.
func DecodeValue[T any](c *Context, v Value) (T, error) {
	var zero T
	out, err := decodeInto(c, v, goTypeOf[T]())
	if err != nil {
		return zero, err
	}
	if out == nil {
		return zero, nil
	}
	return out.(T), nil
}

// DecodeAs decodes with an explicit descriptor instead of a type parameter,
// for callers that select the target type at run time.
func DecodeAs(c *Context, data []byte, td *TypeDescriptor) (any, error) {
	if isBlank(data) {
		return td.Zero(), nil
	}
	v, err := ParseLimit(data, c.maxDepth)
	if err != nil {
		return nil, decodeErr(td.Name, err)
	}
	d := &decoder{ctx: c}
	out, assigned, err := d.decodeValue(v, td, "", nil, "", 0)
	if err != nil {
		return nil, decodeErr(td.Name, err)
	}
	if !assigned {
		return td.Zero(), nil
	}
	return out, nil
}

func decodeInto(c *Context, v Value, t reflect.Type) (any, error) {
	td, ok := c.typeFor(t)
	if !ok {
		if a, aok := c.adapterFor(t); aok {
			out, err := a.decode(v.Native())
			if err != nil {
				return nil, decodeErr(a.name, &ConversionError{Target: a.name, Text: v.Text(), Cause: err})
			}
			return out, nil
		}
		return nil, &DecodeError{Type: t.String(), Err: &ConstructionError{Type: t.String(), Reason: "no descriptor or adapter registered"}}
	}
	d := &decoder{ctx: c}
	out, assigned, err := d.decodeValue(v, td, "", nil, "", 0)
	if err != nil {
		return nil, decodeErr(td.Name, err)
	}
	if !assigned {
		return nil, nil
	}
	return out, nil
}

func typeNameOf(v any) string {
	if v == nil {
		return ""
	}
	return reflect.TypeOf(v).String()
}

func isBlank(data []byte) bool {
	for _, c := range data {
		switch c {
		case ' ', '\t', '\n', '\r':
		default:
			return false
		}
	}
	return true
}
