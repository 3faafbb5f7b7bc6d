package jsonmap

import (
	"reflect"
	"time"
)

// TypeKind classifies a mapping target for the coercion engine.
type TypeKind int

const (
	TypeBool TypeKind = iota
	TypeInt
	TypeUint
	TypeFloat
	TypeString
	TypeChar
	TypeTime
	TypeEnum
	TypeSlice
	TypeSet
	TypeMap
	TypeStruct
	TypeAny
	TypeValue
)

// TypeDescriptor describes how one target type maps to and from JSON. All
// construction and access goes through statically built closures; the GoType
// field is used only as an exact-match identity key in registries, never for
// reflective access. Descriptors are built once (usually by the dsl package)
// and shared read-only.
type TypeDescriptor struct {
	Kind   TypeKind
	Name   string
	GoType reflect.Type

	// Zero returns the type's zero value; used for null members inside
	// containers that cannot represent absence.
	Zero func() any

	// IsNil reports whether a value of this type counts as JSON null during
	// encoding (nil slices, nil maps, nil pointers). Unset for kinds that
	// cannot be nil.
	IsNil func(any) bool

	// Scalar closures. FromInt/FromFloat/FromBool/FromString construct a
	// typed value from a coerced source; the As* closures recover the wire
	// form during encoding of named scalar types.
	FromInt    func(int64) any
	FromFloat  func(float64) any
	FromBool   func(bool) any
	FromString func(string) any
	AsInt      func(any) int64
	AsUint     func(any) uint64
	AsFloat    func(any) float64
	AsBool     func(any) bool
	AsString   func(any) string

	// TimeLayout overrides the context's date pattern for TypeTime.
	TimeLayout string

	// Enum tables. EnumNames preserves declaration order for the
	// case-insensitive fallback scan.
	EnumNames  []string
	EnumByName map[string]any
	EnumName   func(any) (string, bool)

	// Sequence closures (TypeSlice, TypeSet). Append returns the grown
	// sequence; Set kinds are expected to drop duplicates while keeping
	// first-occurrence order.
	Elem     *TypeDescriptor
	NewSeq   func() any
	Append   func(seq, elem any) any
	SeqLen   func(seq any) int
	SeqIndex func(seq any, i int) any

	// Map closures. IterMap must visit entries in a deterministic order:
	// insertion order for order-preserving maps, sorted key order otherwise.
	KeyType   *TypeDescriptor
	ValueType *TypeDescriptor
	NewMap    func() any
	SetEntry  func(m any, key, val any) any
	IterMap   func(m any, fn func(key string, val any) error) error

	// Struct closures. New returns a pointer to a fresh zero instance and
	// Deref recovers the value form. ScalarNew and Factory are optional
	// construction strategies for scalar sources, tried in that order before
	// the default-construct-and-assign fallback.
	Fields    []FieldDescriptor
	New       func() any
	Deref     func(ptr any) any
	ScalarNew func(v any) (any, error)
	Factory   func(v any) (any, error)
}

// FieldDescriptor describes one struct field: its declared name, resolved
// wire names, direction flags, optional per-field adapter and date pattern,
// and accessor closures. Get receives the struct value; Set receives the
// pointer produced by TypeDescriptor.New.
type FieldDescriptor struct {
	Name       string
	WireName   string
	Alternates []string
	Encode     bool
	Decode     bool
	TimeLayout string
	Adapter    *AnyAdapter
	Type       *TypeDescriptor
	Get        func(recv any) any
	Set        func(recv any, v any)
}

// encodeName resolves the wire name used when emitting the field: the
// explicit name when present, the declared name in declared-name mode, and
// the snake_case transform otherwise.
func (f *FieldDescriptor) encodeName(useFieldNames bool) string {
	if f.WireName != "" {
		return f.WireName
	}
	if useFieldNames {
		return f.Name
	}
	return CamelToSnake(f.Name)
}

// fieldResolver holds the two decode lookup tables of a struct descriptor:
// explicit annotation names (primary plus alternates) take precedence over
// declared and naming-strategy-transformed names.
type fieldResolver struct {
	explicit map[string]*FieldDescriptor
	declared map[string]*FieldDescriptor
}

func newFieldResolver(td *TypeDescriptor, useFieldNames bool) fieldResolver {
	r := fieldResolver{
		explicit: make(map[string]*FieldDescriptor),
		declared: make(map[string]*FieldDescriptor),
	}
	for i := range td.Fields {
		f := &td.Fields[i]
		if !f.Decode {
			continue
		}
		if f.WireName != "" {
			r.explicit[f.WireName] = f
			for _, alt := range f.Alternates {
				r.explicit[alt] = f
			}
		} else if !useFieldNames {
			r.declared[CamelToSnake(f.Name)] = f
		}
		r.declared[f.Name] = f
	}
	return r
}

func (r fieldResolver) resolve(key string) (*FieldDescriptor, bool) {
	if f, ok := r.explicit[key]; ok {
		return f, true
	}
	f, ok := r.declared[key]
	return f, ok
}

// Adapter converts between one Go type and its wire representation. The wire
// side is plain Go data: string or number for most adapters, but any value
// the engine can serialize is allowed.
type Adapter[T any] interface {
	Encode(v T) (any, error)
	Decode(v any) (T, error)
}

// AnyAdapter is the type-erased form of an Adapter, keyed by the exact Go
// type it serves. Registries match on that identity only; there is no
// interface- or inheritance-based lookup.
type AnyAdapter struct {
	goType reflect.Type
	name   string
	encode func(any) (any, error)
	decode func(any) (any, error)
}

// AdapterFor erases a typed Adapter.
func AdapterFor[T any](a Adapter[T]) AnyAdapter {
	t := reflect.TypeOf((*T)(nil)).Elem()
	return AnyAdapter{
		goType: t,
		name:   t.String(),
		encode: func(v any) (any, error) { return a.Encode(v.(T)) },
		decode: func(v any) (any, error) { return a.Decode(v) },
	}
}

// TypeName reports the Go type the adapter serves.
func (a AnyAdapter) TypeName() string { return a.name }

// goTypeOf returns the identity key for T.
func goTypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// ---- built-in descriptors ----

func intBuiltin[T int | int8 | int16 | int32 | int64]() *TypeDescriptor {
	t := goTypeOf[T]()
	return &TypeDescriptor{
		Kind:      TypeInt,
		Name:      t.String(),
		GoType:    t,
		Zero:      func() any { return T(0) },
		FromInt:   func(i int64) any { return T(i) },
		FromFloat: func(f float64) any { return T(f) },
		AsInt:     func(v any) int64 { return int64(v.(T)) },
	}
}

func uintBuiltin[T uint | uint8 | uint16 | uint32 | uint64]() *TypeDescriptor {
	t := goTypeOf[T]()
	return &TypeDescriptor{
		Kind:      TypeUint,
		Name:      t.String(),
		GoType:    t,
		Zero:      func() any { return T(0) },
		FromInt:   func(i int64) any { return T(i) },
		FromFloat: func(f float64) any { return T(f) },
		AsUint:    func(v any) uint64 { return uint64(v.(T)) },
	}
}

func floatBuiltin[T float32 | float64]() *TypeDescriptor {
	t := goTypeOf[T]()
	return &TypeDescriptor{
		Kind:      TypeFloat,
		Name:      t.String(),
		GoType:    t,
		Zero:      func() any { return T(0) },
		FromInt:   func(i int64) any { return T(i) },
		FromFloat: func(f float64) any { return T(f) },
		AsFloat:   func(v any) float64 { return float64(v.(T)) },
	}
}

var builtinDescriptors = func() map[reflect.Type]*TypeDescriptor {
	boolDesc := &TypeDescriptor{
		Kind:     TypeBool,
		Name:     "bool",
		GoType:   goTypeOf[bool](),
		Zero:     func() any { return false },
		FromBool: func(b bool) any { return b },
		AsBool:   func(v any) bool { return v.(bool) },
	}
	stringDesc := &TypeDescriptor{
		Kind:       TypeString,
		Name:       "string",
		GoType:     goTypeOf[string](),
		Zero:       func() any { return "" },
		FromString: func(s string) any { return s },
		AsString:   func(v any) string { return v.(string) },
	}
	timeDesc := &TypeDescriptor{
		Kind:   TypeTime,
		Name:   "time.Time",
		GoType: goTypeOf[time.Time](),
		Zero:   func() any { return time.Time{} },
	}
	anyDesc := &TypeDescriptor{
		Kind:   TypeAny,
		Name:   "any",
		GoType: goTypeOf[any](),
		Zero:   func() any { return nil },
	}
	valueDesc := &TypeDescriptor{
		Kind:   TypeValue,
		Name:   "jsonmap.Value",
		GoType: goTypeOf[Value](),
		Zero:   func() any { return Null() },
	}
	objectDesc := &TypeDescriptor{
		Kind:   TypeValue,
		Name:   "*jsonmap.Object",
		GoType: goTypeOf[*Object](),
		Zero:   func() any { return (*Object)(nil) },
	}
	all := []*TypeDescriptor{
		boolDesc, stringDesc, timeDesc, anyDesc, valueDesc, objectDesc,
		intBuiltin[int](), intBuiltin[int8](), intBuiltin[int16](), intBuiltin[int32](), intBuiltin[int64](),
		uintBuiltin[uint](), uintBuiltin[uint8](), uintBuiltin[uint16](), uintBuiltin[uint32](), uintBuiltin[uint64](),
		floatBuiltin[float32](), floatBuiltin[float64](),
	}
	m := make(map[reflect.Type]*TypeDescriptor, len(all))
	for _, td := range all {
		m[td.GoType] = td
	}
	return m
}()

func builtinFor(t reflect.Type) (*TypeDescriptor, bool) {
	td, ok := builtinDescriptors[t]
	return td, ok
}
