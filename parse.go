package jsonmap

import (
	"errors"
	"io"
	"math"
	"strconv"

	"github.com/kyantra/jsonmap/internal/scan"
)

// DefaultMaxDepth bounds container nesting when no explicit limit is
// configured, so pathological inputs fail with a SyntaxError instead of
// exhausting the call stack.
const DefaultMaxDepth = 1000

// Parse converts JSON text into a dynamic Value tree. Any structural
// violation fails with a *SyntaxError carrying the byte offset.
func Parse(data []byte) (Value, error) {
	return ParseLimit(data, DefaultMaxDepth)
}

// ParseString is Parse over a string input.
func ParseString(text string) (Value, error) {
	return Parse([]byte(text))
}

// ParseFrom reads r to the end and parses the result.
func ParseFrom(r io.Reader) (Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Value{}, &DecodeError{Err: err}
	}
	return Parse(data)
}

// ParseLimit is Parse with an explicit nesting bound. maxDepth <= 0 means
// DefaultMaxDepth.
func ParseLimit(data []byte, maxDepth int) (Value, error) {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	p := &parser{sc: scan.New(data), maxDepth: maxDepth}
	v, err := p.parseValue(0)
	if err != nil {
		return Value{}, asSyntaxError(err)
	}
	p.sc.SkipSpace()
	if p.sc.More() {
		c, _ := p.sc.Peek()
		return Value{}, &SyntaxError{Offset: p.sc.Offset(), Msg: "unexpected trailing character '" + string(c) + "'"}
	}
	return v, nil
}

type parser struct {
	sc       *scan.Scanner
	maxDepth int
}

func (p *parser) parseValue(depth int) (Value, error) {
	p.sc.SkipSpace()
	c, err := p.sc.Peek()
	if err != nil {
		return Value{}, err
	}
	switch {
	case c == '{':
		return p.parseObject(depth + 1)
	case c == '[':
		return p.parseArray(depth + 1)
	case c == '"':
		s, err := p.sc.ReadString()
		if err != nil {
			return Value{}, err
		}
		return String(s), nil
	case c == 't':
		return Bool(true), p.sc.ExpectLiteral("true")
	case c == 'f':
		return Bool(false), p.sc.ExpectLiteral("false")
	case c == 'n':
		return Null(), p.sc.ExpectLiteral("null")
	case c == '-' || (c >= '0' && c <= '9'):
		return p.parseNumber()
	default:
		return Value{}, &SyntaxError{Offset: p.sc.Offset(), Msg: "unexpected character '" + string(c) + "'"}
	}
}

func (p *parser) parseObject(depth int) (Value, error) {
	if depth > p.maxDepth {
		return Value{}, &SyntaxError{Offset: p.sc.Offset(), Msg: "maximum nesting depth exceeded"}
	}
	obj := NewObject()
	if err := p.sc.Expect('{'); err != nil {
		return Value{}, err
	}
	p.sc.SkipSpace()
	if c, err := p.sc.Peek(); err != nil {
		return Value{}, err
	} else if c == '}' {
		_, _ = p.sc.Next()
		return ObjectValue(obj), nil
	}
	for {
		p.sc.SkipSpace()
		key, err := p.sc.ReadString()
		if err != nil {
			return Value{}, err
		}
		p.sc.SkipSpace()
		if err := p.sc.Expect(':'); err != nil {
			return Value{}, err
		}
		v, err := p.parseValue(depth)
		if err != nil {
			return Value{}, err
		}
		obj.Set(key, v)
		p.sc.SkipSpace()
		c, err := p.sc.Next()
		if err != nil {
			return Value{}, err
		}
		if c == '}' {
			return ObjectValue(obj), nil
		}
		if c != ',' {
			return Value{}, &SyntaxError{Offset: p.sc.Offset() - 1, Msg: "expected ',' or '}' in object, found '" + string(c) + "'"}
		}
	}
}

func (p *parser) parseArray(depth int) (Value, error) {
	if depth > p.maxDepth {
		return Value{}, &SyntaxError{Offset: p.sc.Offset(), Msg: "maximum nesting depth exceeded"}
	}
	if err := p.sc.Expect('['); err != nil {
		return Value{}, err
	}
	p.sc.SkipSpace()
	if c, err := p.sc.Peek(); err != nil {
		return Value{}, err
	} else if c == ']' {
		_, _ = p.sc.Next()
		return Array(), nil
	}
	var items []Value
	for {
		v, err := p.parseValue(depth)
		if err != nil {
			return Value{}, err
		}
		items = append(items, v)
		p.sc.SkipSpace()
		c, err := p.sc.Next()
		if err != nil {
			return Value{}, err
		}
		if c == ']' {
			return Array(items...), nil
		}
		if c != ',' {
			return Value{}, &SyntaxError{Offset: p.sc.Offset() - 1, Msg: "expected ',' or ']' in array, found '" + string(c) + "'"}
		}
	}
}

// parseNumber classifies the literal: '.' or an exponent makes it a float,
// otherwise an exact 64-bit integer parse is attempted with a float fallback
// on overflow only.
func (p *parser) parseNumber() (Value, error) {
	start := p.sc.Offset()
	text, isFloat, err := p.sc.ReadNumber()
	if err != nil {
		return Value{}, err
	}
	if !isFloat {
		if i, err := strconv.ParseInt(text, 10, 64); err == nil {
			return Int(i), nil
		}
		// Integer overflow: fall through to the float form.
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsInf(f, 0) {
		return Value{}, &SyntaxError{Offset: start, Msg: "invalid number " + text}
	}
	return Float(f), nil
}

func asSyntaxError(err error) error {
	var se *scan.Error
	if errors.As(err, &se) {
		return &SyntaxError{Offset: se.Offset, Msg: se.Msg}
	}
	return err
}
