package jsonmap

import (
	"errors"
	"math"
	"reflect"
	"sort"
	"strconv"
	"time"
)

// encoder traverses a typed object graph and writes JSON text directly to a
// Writer, without building an intermediate Value tree.
type encoder struct {
	ctx *Context
	w   *Writer
}

var errEncodeMaxDepth = errors.New("maximum nesting depth exceeded")

// encodeAny dispatches on the runtime type of v: registered adapter first,
// then primitives, strings, date-likes, registered descriptors (enums,
// sequences, maps, composites), and finally the dynamic builtins.
func (e *encoder) encodeAny(v any, depth int) error {
	if v == nil {
		e.w.Null()
		return nil
	}
	if depth > e.ctx.maxDepth {
		return errEncodeMaxDepth
	}
	t := reflect.TypeOf(v)
	if a, ok := e.ctx.adapterFor(t); ok {
		adapted, err := a.encode(v)
		if err != nil {
			return &EncodeError{Type: a.name, Err: err}
		}
		return e.encodeAny(adapted, depth+1)
	}

	switch x := v.(type) {
	case bool:
		e.w.Raw(strconv.FormatBool(x))
		return nil
	case int:
		e.w.Raw(strconv.FormatInt(int64(x), 10))
		return nil
	case int8:
		e.w.Raw(strconv.FormatInt(int64(x), 10))
		return nil
	case int16:
		e.w.Raw(strconv.FormatInt(int64(x), 10))
		return nil
	case int32:
		e.w.Raw(strconv.FormatInt(int64(x), 10))
		return nil
	case int64:
		e.w.Raw(strconv.FormatInt(x, 10))
		return nil
	case uint:
		e.w.Raw(strconv.FormatUint(uint64(x), 10))
		return nil
	case uint8:
		e.w.Raw(strconv.FormatUint(uint64(x), 10))
		return nil
	case uint16:
		e.w.Raw(strconv.FormatUint(uint64(x), 10))
		return nil
	case uint32:
		e.w.Raw(strconv.FormatUint(uint64(x), 10))
		return nil
	case uint64:
		e.w.Raw(strconv.FormatUint(x, 10))
		return nil
	case float32:
		return e.encodeFloat(float64(x))
	case float64:
		return e.encodeFloat(x)
	case string:
		e.w.String(x)
		return nil
	case time.Time:
		e.w.String(x.Format(e.ctx.timeLayout))
		return nil
	case Value:
		return e.encodeValueTree(x, depth)
	case *Object:
		return e.encodeObjectTree(x, depth)
	case []any:
		return e.encodeAnySlice(x, depth)
	case map[string]any:
		return e.encodeAnyMap(x, depth)
	}

	if td, ok := e.ctx.typeFor(t); ok {
		return e.encodeWith(v, td, "", depth)
	}
	return &EncodeError{Type: t.String(), Err: errors.New("no descriptor or adapter registered")}
}

// encodeWith emits a value whose static type is known through a descriptor.
func (e *encoder) encodeWith(v any, td *TypeDescriptor, fieldLayout string, depth int) error {
	if v == nil || (td.IsNil != nil && td.IsNil(v)) {
		e.w.Null()
		return nil
	}
	if depth > e.ctx.maxDepth {
		return errEncodeMaxDepth
	}
	if td.GoType != nil {
		if a, ok := e.ctx.adapterFor(td.GoType); ok {
			adapted, err := a.encode(v)
			if err != nil {
				return &EncodeError{Type: a.name, Err: err}
			}
			return e.encodeAny(adapted, depth+1)
		}
	}
	switch td.Kind {
	case TypeBool:
		e.w.Raw(strconv.FormatBool(td.AsBool(v)))
		return nil
	case TypeInt:
		e.w.Raw(strconv.FormatInt(td.AsInt(v), 10))
		return nil
	case TypeUint:
		e.w.Raw(strconv.FormatUint(td.AsUint(v), 10))
		return nil
	case TypeFloat:
		return e.encodeFloat(td.AsFloat(v))
	case TypeString, TypeChar:
		e.w.String(td.AsString(v))
		return nil
	case TypeTime:
		e.w.String(v.(time.Time).Format(e.ctx.layoutFor(td, fieldLayout)))
		return nil
	case TypeEnum:
		name, ok := td.EnumName(v)
		if !ok {
			return &EncodeError{Type: td.Name, Err: errors.New("value is not a declared constant")}
		}
		e.w.String(name)
		return nil
	case TypeSlice, TypeSet:
		return e.encodeSeq(v, td, depth)
	case TypeMap:
		return e.encodeMap(v, td, depth)
	case TypeStruct:
		return e.encodeStruct(v, td, depth)
	case TypeAny:
		return e.encodeAny(v, depth)
	case TypeValue:
		if o, ok := v.(*Object); ok {
			return e.encodeObjectTree(o, depth)
		}
		return e.encodeValueTree(v.(Value), depth)
	default:
		return &EncodeError{Type: td.Name, Err: errors.New("unsupported source kind")}
	}
}

func (e *encoder) encodeFloat(f float64) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return &EncodeError{Type: "float64", Err: errors.New("NaN and infinities have no JSON form")}
	}
	e.w.Raw(strconv.FormatFloat(f, 'g', -1, 64))
	return nil
}

func (e *encoder) encodeSeq(v any, td *TypeDescriptor, depth int) error {
	e.w.BeginArray()
	n := td.SeqLen(v)
	for i := 0; i < n; i++ {
		if i > 0 {
			e.w.Separator()
		}
		if err := e.encodeWith(td.SeqIndex(v, i), td.Elem, "", depth+1); err != nil {
			return err
		}
	}
	e.w.EndArray()
	return nil
}

func (e *encoder) encodeMap(v any, td *TypeDescriptor, depth int) error {
	e.w.BeginObject()
	first := true
	err := td.IterMap(v, func(key string, val any) error {
		if e.skipAsNull(val, td.ValueType) {
			return nil
		}
		if !first {
			e.w.Separator()
		}
		first = false
		e.w.Name(key)
		return e.encodeWith(val, td.ValueType, "", depth+1)
	})
	if err != nil {
		return err
	}
	e.w.EndObject()
	return nil
}

// encodeStruct emits members in field-declaration order, honoring per-field
// visibility, wire names and adapter overrides.
func (e *encoder) encodeStruct(v any, td *TypeDescriptor, depth int) error {
	e.w.BeginObject()
	first := true
	for i := range td.Fields {
		f := &td.Fields[i]
		if !f.Encode {
			continue
		}
		val := f.Get(v)
		if e.skipAsNull(val, f.Type) {
			continue
		}
		if !first {
			e.w.Separator()
		}
		first = false
		e.w.Name(f.encodeName(e.ctx.useFieldNames))
		if f.Adapter != nil && !isNullFor(val, f.Type) {
			adapted, err := f.Adapter.encode(val)
			if err != nil {
				return &EncodeError{Type: f.Adapter.name, Err: err}
			}
			if err := e.encodeAny(adapted, depth+1); err != nil {
				return err
			}
			continue
		}
		if err := e.encodeWith(val, f.Type, f.TimeLayout, depth+1); err != nil {
			return err
		}
	}
	e.w.EndObject()
	return nil
}

func (e *encoder) encodeValueTree(v Value, depth int) error {
	if depth > e.ctx.maxDepth {
		return errEncodeMaxDepth
	}
	switch v.Kind() {
	case KindNull:
		e.w.Null()
	case KindBool:
		e.w.Raw(strconv.FormatBool(v.BoolVal()))
	case KindInt:
		e.w.Raw(strconv.FormatInt(v.IntVal(), 10))
	case KindFloat:
		return e.encodeFloat(v.FloatVal())
	case KindString:
		e.w.String(v.StringVal())
	case KindArray:
		e.w.BeginArray()
		for i, item := range v.Items() {
			if i > 0 {
				e.w.Separator()
			}
			if err := e.encodeValueTree(item, depth+1); err != nil {
				return err
			}
		}
		e.w.EndArray()
	case KindObject:
		return e.encodeObjectTree(v.ObjectVal(), depth)
	}
	return nil
}

func (e *encoder) encodeObjectTree(o *Object, depth int) error {
	if o == nil {
		e.w.Null()
		return nil
	}
	e.w.BeginObject()
	first := true
	for i := 0; i < o.Len(); i++ {
		key, mv := o.At(i)
		if mv.IsNull() && !e.ctx.serializeNulls {
			continue
		}
		if !first {
			e.w.Separator()
		}
		first = false
		e.w.Name(key)
		if err := e.encodeValueTree(mv, depth+1); err != nil {
			return err
		}
	}
	e.w.EndObject()
	return nil
}

func (e *encoder) encodeAnySlice(items []any, depth int) error {
	e.w.BeginArray()
	for i, item := range items {
		if i > 0 {
			e.w.Separator()
		}
		if err := e.encodeAny(item, depth+1); err != nil {
			return err
		}
	}
	e.w.EndArray()
	return nil
}

// encodeAnyMap sorts keys so untyped map output is deterministic.
func (e *encoder) encodeAnyMap(m map[string]any, depth int) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	e.w.BeginObject()
	first := true
	for _, k := range keys {
		val := m[k]
		if val == nil && !e.ctx.serializeNulls {
			continue
		}
		if !first {
			e.w.Separator()
		}
		first = false
		e.w.Name(k)
		if err := e.encodeAny(val, depth+1); err != nil {
			return err
		}
	}
	e.w.EndObject()
	return nil
}

func isNullFor(v any, td *TypeDescriptor) bool {
	return v == nil || (td != nil && td.IsNil != nil && td.IsNil(v))
}

// skipAsNull reports whether a null member should be omitted rather than
// emitted; when nulls are serialized it writes nothing and returns false so
// the caller emits the member normally (encodeWith renders the null).
func (e *encoder) skipAsNull(v any, td *TypeDescriptor) bool {
	return isNullFor(v, td) && !e.ctx.serializeNulls
}
