package dsl

import (
	jm "github.com/kyantra/jsonmap"
)

// Struct describes a composite type S from its field descriptors. Field order
// is declaration order: encoding emits members in this order and the scalar
// construction fallback scans it when looking for a value/id/name field.
func Struct[S any](fields ...jm.FieldDescriptor) *jm.TypeDescriptor {
	t := typeOf[S]()
	return &jm.TypeDescriptor{
		Kind:   jm.TypeStruct,
		Name:   t.String(),
		GoType: t,
		Zero:   func() any { var z S; return z },
		Fields: fields,
		New:    func() any { return new(S) },
		Deref:  func(ptr any) any { return *ptr.(*S) },
	}
}

// ScalarCtor attaches a single-argument construction strategy to a composite
// descriptor, tried first when the source is a bare scalar. The argument is
// the scalar lowered to plain Go data (bool, int64, float64 or string).
func ScalarCtor[S any](td *jm.TypeDescriptor, fn func(any) (S, error)) *jm.TypeDescriptor {
	td.ScalarNew = func(v any) (any, error) { return fn(v) }
	return td
}

// Factory attaches a factory construction strategy, tried after ScalarCtor.
func Factory[S any](td *jm.TypeDescriptor, fn func(any) (S, error)) *jm.TypeDescriptor {
	td.Factory = func(v any) (any, error) { return fn(v) }
	return td
}

// FieldOpt adjusts one field descriptor.
type FieldOpt func(*jm.FieldDescriptor)

// Name sets an explicit wire name. Explicit names win over declared and
// strategy-derived names on both directions and are exempt from the naming
// strategy.
func Name(name string) FieldOpt {
	return func(f *jm.FieldDescriptor) { f.WireName = name }
}

// Alt adds alternate wire names accepted during decoding. Encoding always
// uses the primary name.
func Alt(names ...string) FieldOpt {
	return func(f *jm.FieldDescriptor) { f.Alternates = append(f.Alternates, names...) }
}

// SkipEncode excludes the field from serialization.
func SkipEncode() FieldOpt {
	return func(f *jm.FieldDescriptor) { f.Encode = false }
}

// SkipDecode excludes the field from deserialization.
func SkipDecode() FieldOpt {
	return func(f *jm.FieldDescriptor) { f.Decode = false }
}

// Ignore excludes the field from both directions.
func Ignore() FieldOpt {
	return func(f *jm.FieldDescriptor) {
		f.Encode = false
		f.Decode = false
	}
}

// Layout sets a per-field date pattern overriding the descriptor's and the
// context's.
func Layout(layout string) FieldOpt {
	return func(f *jm.FieldDescriptor) { f.TimeLayout = layout }
}

// WithAdapter overrides conversion for this field only.
func WithAdapter(a jm.AnyAdapter) FieldOpt {
	return func(f *jm.FieldDescriptor) {
		ad := a
		f.Adapter = &ad
	}
}

// Field describes one member of S: its declared name, its type descriptor and
// a getter/setter pair. Both directions are enabled by default.
func Field[S, F any](name string, typ *jm.TypeDescriptor, get func(S) F, set func(*S, F), opts ...FieldOpt) jm.FieldDescriptor {
	f := jm.FieldDescriptor{
		Name:   name,
		Encode: true,
		Decode: true,
		Type:   typ,
		Get:    func(recv any) any { return get(recv.(S)) },
		Set:    func(recv any, v any) { set(recv.(*S), v.(F)) },
	}
	for _, opt := range opts {
		opt(&f)
	}
	return f
}
