package dsl

import (
	"reflect"
	"time"

	jm "github.com/kyantra/jsonmap"
)

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Bool describes a bool-kinded type, including named bool types.
func Bool[T ~bool]() *jm.TypeDescriptor {
	t := typeOf[T]()
	return &jm.TypeDescriptor{
		Kind:     jm.TypeBool,
		Name:     t.String(),
		GoType:   t,
		Zero:     func() any { return T(false) },
		FromBool: func(b bool) any { return T(b) },
		AsBool:   func(v any) bool { return bool(v.(T)) },
	}
}

// Int describes a signed integer type of any width.
func Int[T ~int | ~int8 | ~int16 | ~int32 | ~int64]() *jm.TypeDescriptor {
	t := typeOf[T]()
	return &jm.TypeDescriptor{
		Kind:      jm.TypeInt,
		Name:      t.String(),
		GoType:    t,
		Zero:      func() any { return T(0) },
		FromInt:   func(i int64) any { return T(i) },
		FromFloat: func(f float64) any { return T(f) },
		AsInt:     func(v any) int64 { return int64(v.(T)) },
	}
}

// Uint describes an unsigned integer type of any width.
func Uint[T ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64]() *jm.TypeDescriptor {
	t := typeOf[T]()
	return &jm.TypeDescriptor{
		Kind:      jm.TypeUint,
		Name:      t.String(),
		GoType:    t,
		Zero:      func() any { return T(0) },
		FromInt:   func(i int64) any { return T(i) },
		FromFloat: func(f float64) any { return T(f) },
		AsUint:    func(v any) uint64 { return uint64(v.(T)) },
	}
}

// Float describes a floating-point type.
func Float[T ~float32 | ~float64]() *jm.TypeDescriptor {
	t := typeOf[T]()
	return &jm.TypeDescriptor{
		Kind:      jm.TypeFloat,
		Name:      t.String(),
		GoType:    t,
		Zero:      func() any { return T(0) },
		FromInt:   func(i int64) any { return T(i) },
		FromFloat: func(f float64) any { return T(f) },
		AsFloat:   func(v any) float64 { return float64(v.(T)) },
	}
}

// String describes a string-kinded type, including named string types.
func String[T ~string]() *jm.TypeDescriptor {
	t := typeOf[T]()
	return &jm.TypeDescriptor{
		Kind:       jm.TypeString,
		Name:       t.String(),
		GoType:     t,
		Zero:       func() any { return T("") },
		FromString: func(s string) any { return T(s) },
		AsString:   func(v any) string { return string(v.(T)) },
	}
}

// Char describes a single-rune target. Decoding takes the first rune of the
// scalar's text; an empty string counts as null.
func Char() *jm.TypeDescriptor {
	return &jm.TypeDescriptor{
		Kind:       jm.TypeChar,
		Name:       "rune",
		GoType:     typeOf[rune](),
		Zero:       func() any { return rune(0) },
		FromString: func(s string) any { return []rune(s)[0] },
		AsString:   func(v any) string { return string(v.(rune)) },
	}
}

// Time describes a time.Time field using the context's date pattern.
func Time() *jm.TypeDescriptor {
	return &jm.TypeDescriptor{
		Kind:   jm.TypeTime,
		Name:   "time.Time",
		GoType: typeOf[time.Time](),
		Zero:   func() any { return time.Time{} },
	}
}

// TimeLayout is Time with a fixed layout that overrides the context's date
// pattern.
func TimeLayout(layout string) *jm.TypeDescriptor {
	td := Time()
	td.TimeLayout = layout
	return td
}

// EnumValue pairs a symbolic name with its constant.
type EnumValue[T comparable] struct {
	Name  string
	Value T
}

// C declares one enum constant.
func C[T comparable](name string, value T) EnumValue[T] {
	return EnumValue[T]{Name: name, Value: value}
}

// Enum describes a closed set of named constants. Declaration order is kept:
// the case-insensitive decode fallback scans constants in the order given
// here.
func Enum[T comparable](values ...EnumValue[T]) *jm.TypeDescriptor {
	t := typeOf[T]()
	names := make([]string, 0, len(values))
	byName := make(map[string]any, len(values))
	byValue := make(map[T]string, len(values))
	for _, ev := range values {
		names = append(names, ev.Name)
		byName[ev.Name] = ev.Value
		if _, dup := byValue[ev.Value]; !dup {
			byValue[ev.Value] = ev.Name
		}
	}
	return &jm.TypeDescriptor{
		Kind:       jm.TypeEnum,
		Name:       t.String(),
		GoType:     t,
		Zero:       func() any { var z T; return z },
		EnumNames:  names,
		EnumByName: byName,
		EnumName: func(v any) (string, bool) {
			n, ok := byValue[v.(T)]
			return n, ok
		},
	}
}

// Any describes an untyped target: decoding lowers the dynamic value to plain
// Go data and encoding dispatches on the runtime type.
func Any() *jm.TypeDescriptor {
	return &jm.TypeDescriptor{
		Kind:   jm.TypeAny,
		Name:   "any",
		GoType: typeOf[any](),
		Zero:   func() any { return nil },
	}
}

// Value describes a field holding a raw jsonmap.Value tree.
func Value() *jm.TypeDescriptor {
	return &jm.TypeDescriptor{
		Kind:   jm.TypeValue,
		Name:   "jsonmap.Value",
		GoType: typeOf[jm.Value](),
		Zero:   func() any { return jm.Null() },
	}
}

// Object describes a field holding a raw *jsonmap.Object.
func Object() *jm.TypeDescriptor {
	return &jm.TypeDescriptor{
		Kind:   jm.TypeValue,
		Name:   "*jsonmap.Object",
		GoType: typeOf[*jm.Object](),
		Zero:   func() any { return (*jm.Object)(nil) },
		IsNil:  func(v any) bool { return v.(*jm.Object) == nil },
	}
}
