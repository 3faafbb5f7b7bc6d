// Package scan implements the lexical layer of the JSON parser: a single
// left-to-right pass over the input with one-byte lookahead and byte-accurate
// error offsets. The grammar layer lives in the root package.
package scan

import (
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// Error is a lexical or structural JSON error carrying the byte offset of the
// offending character.
type Error struct {
	Offset int
	Msg    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("syntax error at offset %d: %s", e.Offset, e.Msg)
}

func errAt(off int, format string, args ...any) *Error {
	return &Error{Offset: off, Msg: fmt.Sprintf(format, args...)}
}

// Scanner walks a byte slice. It never backtracks; Peek provides the single
// byte of lookahead the grammar needs.
type Scanner struct {
	data []byte
	pos  int
}

// New returns a scanner over data.
func New(data []byte) *Scanner { return &Scanner{data: data} }

// Offset reports the current byte position.
func (s *Scanner) Offset() int { return s.pos }

// SkipSpace advances past JSON whitespace (space, tab, CR, LF).
func (s *Scanner) SkipSpace() {
	for s.pos < len(s.data) {
		switch s.data[s.pos] {
		case ' ', '\t', '\r', '\n':
			s.pos++
		default:
			return
		}
	}
}

// More reports whether unread input remains.
func (s *Scanner) More() bool { return s.pos < len(s.data) }

// Peek returns the current byte without consuming it.
func (s *Scanner) Peek() (byte, error) {
	if s.pos >= len(s.data) {
		return 0, errAt(s.pos, "unexpected end of input")
	}
	return s.data[s.pos], nil
}

// Next consumes and returns the current byte.
func (s *Scanner) Next() (byte, error) {
	if s.pos >= len(s.data) {
		return 0, errAt(s.pos, "unexpected end of input")
	}
	c := s.data[s.pos]
	s.pos++
	return c, nil
}

// Expect consumes the current byte and fails unless it equals want.
func (s *Scanner) Expect(want byte) error {
	c, err := s.Next()
	if err != nil {
		return err
	}
	if c != want {
		return errAt(s.pos-1, "expected '%c', found '%c'", want, c)
	}
	return nil
}

// ExpectLiteral consumes the literal word lit ("true", "false" or "null").
func (s *Scanner) ExpectLiteral(lit string) error {
	start := s.pos
	for i := 0; i < len(lit); i++ {
		c, err := s.Next()
		if err != nil {
			return err
		}
		if c != lit[i] {
			return errAt(start, "expected %q", lit)
		}
	}
	return nil
}

// ReadString consumes a quoted JSON string, including both quotes, and
// returns the unescaped text.
func (s *Scanner) ReadString() (string, error) {
	if err := s.Expect('"'); err != nil {
		return "", err
	}
	var b strings.Builder
	for {
		c, err := s.Next()
		if err != nil {
			return "", errAt(s.pos, "unterminated string")
		}
		switch {
		case c == '"':
			return b.String(), nil
		case c == '\\':
			if err := s.readEscape(&b); err != nil {
				return "", err
			}
		case c < 0x20:
			return "", errAt(s.pos-1, "invalid control character in string")
		default:
			b.WriteByte(c)
		}
	}
}

func (s *Scanner) readEscape(b *strings.Builder) error {
	c, err := s.Next()
	if err != nil {
		return errAt(s.pos, "unterminated string")
	}
	switch c {
	case '"', '\\', '/':
		b.WriteByte(c)
	case 'b':
		b.WriteByte('\b')
	case 'f':
		b.WriteByte('\f')
	case 'n':
		b.WriteByte('\n')
	case 'r':
		b.WriteByte('\r')
	case 't':
		b.WriteByte('\t')
	case 'u':
		r, err := s.readHex4()
		if err != nil {
			return err
		}
		if utf16.IsSurrogate(r) {
			// A high surrogate must be followed by an escaped low surrogate;
			// anything else becomes the replacement character.
			if s.pos+1 < len(s.data) && s.data[s.pos] == '\\' && s.data[s.pos+1] == 'u' {
				mark := s.pos
				s.pos += 2
				r2, err := s.readHex4()
				if err != nil {
					return err
				}
				if dec := utf16.DecodeRune(r, r2); dec != utf8.RuneError {
					b.WriteRune(dec)
					return nil
				}
				s.pos = mark
			}
			b.WriteRune(utf8.RuneError)
			return nil
		}
		b.WriteRune(r)
	default:
		return errAt(s.pos-1, "invalid escape character '\\%c'", c)
	}
	return nil
}

func (s *Scanner) readHex4() (rune, error) {
	if s.pos+4 > len(s.data) {
		return 0, errAt(s.pos, "incomplete unicode escape sequence")
	}
	var r rune
	for i := 0; i < 4; i++ {
		c := s.data[s.pos]
		s.pos++
		switch {
		case c >= '0' && c <= '9':
			r = r<<4 | rune(c-'0')
		case c >= 'a' && c <= 'f':
			r = r<<4 | rune(c-'a'+10)
		case c >= 'A' && c <= 'F':
			r = r<<4 | rune(c-'A'+10)
		default:
			return 0, errAt(s.pos-1, "invalid unicode escape sequence")
		}
	}
	return r, nil
}

// ReadNumber consumes a JSON number literal and returns its text along with
// whether it carries a fraction or exponent.
func (s *Scanner) ReadNumber() (text string, isFloat bool, err error) {
	start := s.pos
	if c, _ := s.Peek(); c == '-' {
		s.pos++
	}
	c, err := s.Peek()
	if err != nil {
		return "", false, err
	}
	switch {
	case c == '0':
		s.pos++
		if d, _ := s.Peek(); d >= '0' && d <= '9' {
			return "", false, errAt(s.pos, "invalid number: leading zero")
		}
	case c >= '1' && c <= '9':
		s.skipDigits()
	default:
		return "", false, errAt(s.pos, "invalid number")
	}
	if d, _ := s.Peek(); d == '.' {
		isFloat = true
		s.pos++
		if !s.digitAhead() {
			return "", false, errAt(s.pos, "invalid number: missing digits after decimal point")
		}
		s.skipDigits()
	}
	if d, _ := s.Peek(); d == 'e' || d == 'E' {
		isFloat = true
		s.pos++
		if d, _ := s.Peek(); d == '+' || d == '-' {
			s.pos++
		}
		if !s.digitAhead() {
			return "", false, errAt(s.pos, "invalid number: missing digits in exponent")
		}
		s.skipDigits()
	}
	return string(s.data[start:s.pos]), isFloat, nil
}

func (s *Scanner) digitAhead() bool {
	return s.pos < len(s.data) && s.data[s.pos] >= '0' && s.data[s.pos] <= '9'
}

func (s *Scanner) skipDigits() {
	for s.digitAhead() {
		s.pos++
	}
}
