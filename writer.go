package jsonmap

import (
	"io"
	"strings"
)

// Writer emits JSON text to an io.Writer. When an indentation unit is set it
// pretty-prints: a newline plus indentLevel units after each container open,
// after each separator, and before each container close. Nesting tracks
// container depth.
type Writer struct {
	w      io.Writer
	indent string
	pretty bool
	level  int
	err    error
}

// NewWriter returns a writer emitting compact output.
func NewWriter(w io.Writer) *Writer { return &Writer{w: w} }

// NewIndentWriter returns a writer pretty-printing with the given unit.
func NewIndentWriter(w io.Writer, indent string) *Writer {
	return &Writer{w: w, indent: indent, pretty: true}
}

// Err returns the first underlying write error, if any.
func (w *Writer) Err() error { return w.err }

// BeginObject opens a JSON object.
func (w *Writer) BeginObject() {
	w.writeByte('{')
	w.level++
	w.newline()
}

// EndObject closes a JSON object.
func (w *Writer) EndObject() {
	w.level--
	w.newline()
	w.writeByte('}')
}

// BeginArray opens a JSON array.
func (w *Writer) BeginArray() {
	w.writeByte('[')
	w.level++
	w.newline()
}

// EndArray closes a JSON array.
func (w *Writer) EndArray() {
	w.level--
	w.newline()
	w.writeByte(']')
}

// Separator writes the comma between members or elements.
func (w *Writer) Separator() {
	w.writeByte(',')
	w.newline()
}

// Name writes an object member key and its colon.
func (w *Writer) Name(key string) {
	w.String(key)
	w.writeByte(':')
	if w.pretty {
		w.writeByte(' ')
	}
}

// String writes a quoted, escaped JSON string.
func (w *Writer) String(s string) {
	w.writeByte('"')
	w.writeString(escapeString(s))
	w.writeByte('"')
}

// Raw writes a literal verbatim (numbers, booleans, null).
func (w *Writer) Raw(lit string) {
	w.writeString(lit)
}

// Null writes the null literal.
func (w *Writer) Null() {
	w.writeString("null")
}

func (w *Writer) newline() {
	if !w.pretty {
		return
	}
	w.writeByte('\n')
	for i := 0; i < w.level; i++ {
		w.writeString(w.indent)
	}
}

func (w *Writer) writeByte(c byte) {
	if w.err != nil {
		return
	}
	_, w.err = w.w.Write([]byte{c})
}

func (w *Writer) writeString(s string) {
	if w.err != nil {
		return
	}
	_, w.err = io.WriteString(w.w, s)
}

const hexDigits = "0123456789abcdef"

// escapeString applies the JSON escape set: the short escapes known to the
// parser plus \u00XX for remaining control characters below 0x20.
func escapeString(s string) string {
	// Fast path: nothing to escape.
	clean := true
	for i := 0; i < len(s); i++ {
		if c := s[i]; c == '"' || c == '\\' || c < 0x20 {
			clean = false
			break
		}
	}
	if clean {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 16)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if c < 0x20 {
				b.WriteString(`\u00`)
				b.WriteByte(hexDigits[c>>4])
				b.WriteByte(hexDigits[c&0xf])
			} else {
				b.WriteByte(c)
			}
		}
	}
	return b.String()
}
