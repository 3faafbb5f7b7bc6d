package jsonmap

import "strconv"

// ValueKind enumerates the variants of a dynamic JSON value.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindArray
	KindObject
)

func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is the dynamic in-memory form of a parsed JSON document. Numbers keep
// their lexical classification: a literal with '.' or an exponent is a float,
// everything else is an int64 unless it overflows.
type Value struct {
	kind ValueKind
	b    bool
	i    int64
	f    float64
	s    string
	arr  []Value
	obj  *Object
}

// Null returns the null value.
func Null() Value { return Value{kind: KindNull} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int wraps a 64-bit integer.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float wraps a 64-bit float.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// String wraps a string.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Array wraps a sequence of values. The slice is taken over, not copied.
func Array(items ...Value) Value { return Value{kind: KindArray, arr: items} }

// ObjectValue wraps an ordered object.
func ObjectValue(o *Object) Value {
	if o == nil {
		o = NewObject()
	}
	return Value{kind: KindObject, obj: o}
}

// Kind reports the variant held by the value.
func (v Value) Kind() ValueKind { return v.kind }

// IsNull reports whether the value is JSON null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// BoolVal returns the wrapped boolean; valid only for KindBool.
func (v Value) BoolVal() bool { return v.b }

// IntVal returns the wrapped integer; valid only for KindInt.
func (v Value) IntVal() int64 { return v.i }

// FloatVal returns the wrapped float; valid only for KindFloat.
func (v Value) FloatVal() float64 { return v.f }

// StringVal returns the wrapped string; valid only for KindString.
func (v Value) StringVal() string { return v.s }

// Items returns the element slice of an array value.
func (v Value) Items() []Value { return v.arr }

// ObjectVal returns the ordered member map of an object value.
func (v Value) ObjectVal() *Object { return v.obj }

// IsScalar reports whether the value is a number, bool or string.
func (v Value) IsScalar() bool {
	switch v.kind {
	case KindBool, KindInt, KindFloat, KindString:
		return true
	}
	return false
}

// Text renders a scalar value in its textual form. Containers and null render
// to the empty string; callers are expected to check IsScalar first.
func (v Value) Text() string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindString:
		return v.s
	default:
		return ""
	}
}

// Native lowers the value to plain Go data: nil, bool, int64, float64, string,
// []any for arrays and *Object for objects (preserving member order).
func (v Value) Native() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	case KindArray:
		out := make([]any, len(v.arr))
		for i, e := range v.arr {
			out[i] = e.Native()
		}
		return out
	case KindObject:
		return v.obj
	default:
		return nil
	}
}

// Object is an insertion-ordered string-to-Value mapping with unique keys.
// Re-setting an existing key updates the member in place without moving it.
type Object struct {
	keys  []string
	index map[string]int
	vals  []Value
}

// NewObject returns an empty ordered object.
func NewObject() *Object {
	return &Object{index: make(map[string]int)}
}

// Len reports the number of members.
func (o *Object) Len() int { return len(o.keys) }

// Keys returns the member keys in insertion order. The slice is shared.
func (o *Object) Keys() []string { return o.keys }

// Get returns the member value for key.
func (o *Object) Get(key string) (Value, bool) {
	i, ok := o.index[key]
	if !ok {
		return Value{}, false
	}
	return o.vals[i], true
}

// Set inserts or updates a member, preserving first-insertion order.
func (o *Object) Set(key string, v Value) {
	if i, ok := o.index[key]; ok {
		o.vals[i] = v
		return
	}
	o.index[key] = len(o.keys)
	o.keys = append(o.keys, key)
	o.vals = append(o.vals, v)
}

// At returns the i-th member in insertion order.
func (o *Object) At(i int) (string, Value) { return o.keys[i], o.vals[i] }
