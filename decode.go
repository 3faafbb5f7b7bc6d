package jsonmap

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// decoder walks a dynamic Value against a target descriptor. It is created
// per conversion call and carries only the shared read-only context.
type decoder struct {
	ctx *Context
}

// decodeValue coerces v to the target type. The boolean result is false when
// the source was null: callers keep the zero value or skip the assignment.
// fieldLayout and adapter carry per-field overrides from the enclosing
// FieldDescriptor, if any.
func (d *decoder) decodeValue(v Value, td *TypeDescriptor, fieldLayout string, adapter *AnyAdapter, path string, depth int) (any, bool, error) {
	if v.IsNull() {
		return nil, false, nil
	}
	if adapter != nil {
		out, err := adapter.decode(v.Native())
		if err != nil {
			return nil, false, &ConversionError{Path: path, Target: adapter.name, Text: v.Text(), Cause: err}
		}
		return out, true, nil
	}
	if td.GoType != nil {
		if a, ok := d.ctx.adapterFor(td.GoType); ok {
			out, err := a.decode(v.Native())
			if err != nil {
				return nil, false, &ConversionError{Path: path, Target: a.name, Text: v.Text(), Cause: err}
			}
			return out, true, nil
		}
	}
	if depth > d.ctx.maxDepth {
		return nil, false, &ConversionError{Path: path, Target: td.Name, Text: "", Cause: errMaxDepth}
	}

	switch td.Kind {
	case TypeBool:
		return d.decodeBool(v, td, path)
	case TypeInt:
		return d.decodeInt(v, td, path)
	case TypeUint:
		return d.decodeUint(v, td, path)
	case TypeFloat:
		return d.decodeFloat(v, td, path)
	case TypeString:
		if !v.IsScalar() {
			return nil, false, &TypeMismatchError{Path: path, Want: "string", Got: v.Kind().String()}
		}
		return td.FromString(v.Text()), true, nil
	case TypeChar:
		if !v.IsScalar() {
			return nil, false, &TypeMismatchError{Path: path, Want: "string", Got: v.Kind().String()}
		}
		if v.Text() == "" {
			return nil, false, nil
		}
		return td.FromString(v.Text()), true, nil
	case TypeTime:
		return d.decodeTime(v, td, fieldLayout, path)
	case TypeEnum:
		return d.decodeEnum(v, td, path)
	case TypeSlice, TypeSet:
		return d.decodeSeq(v, td, path, depth)
	case TypeMap:
		return d.decodeMap(v, td, path, depth)
	case TypeStruct:
		return d.decodeStruct(v, td, path, depth)
	case TypeAny:
		return v.Native(), true, nil
	case TypeValue:
		if td.GoType == goTypeOf[*Object]() {
			if v.Kind() != KindObject {
				return nil, false, &TypeMismatchError{Path: path, Want: "object", Got: v.Kind().String()}
			}
			return v.ObjectVal(), true, nil
		}
		return v, true, nil
	default:
		return nil, false, &ConstructionError{Type: td.Name, Reason: "unsupported target kind"}
	}
}

var errMaxDepth = &ConstructionError{Type: "", Reason: "maximum nesting depth exceeded"}

var errNegativeUnsigned = errors.New("negative value for unsigned type")

func (d *decoder) decodeBool(v Value, td *TypeDescriptor, path string) (any, bool, error) {
	switch v.Kind() {
	case KindBool:
		return td.FromBool(v.BoolVal()), true, nil
	case KindString, KindInt, KindFloat:
		b, err := strconv.ParseBool(v.Text())
		if err != nil {
			return nil, false, &ConversionError{Path: path, Target: td.Name, Text: v.Text(), Cause: err}
		}
		return td.FromBool(b), true, nil
	default:
		return nil, false, &TypeMismatchError{Path: path, Want: "bool", Got: v.Kind().String()}
	}
}

func (d *decoder) decodeInt(v Value, td *TypeDescriptor, path string) (any, bool, error) {
	switch v.Kind() {
	case KindInt:
		return td.FromInt(v.IntVal()), true, nil
	case KindFloat:
		// Narrowing truncates toward zero; no rounding.
		return td.FromInt(int64(v.FloatVal())), true, nil
	case KindString:
		i, err := strconv.ParseInt(v.StringVal(), 10, 64)
		if err != nil {
			return nil, false, &ConversionError{Path: path, Target: td.Name, Text: v.StringVal(), Cause: err}
		}
		return td.FromInt(i), true, nil
	case KindBool:
		if v.BoolVal() {
			return td.FromInt(1), true, nil
		}
		return td.FromInt(0), true, nil
	default:
		return nil, false, &TypeMismatchError{Path: path, Want: "number", Got: v.Kind().String()}
	}
}

func (d *decoder) decodeUint(v Value, td *TypeDescriptor, path string) (any, bool, error) {
	switch v.Kind() {
	case KindInt:
		if v.IntVal() < 0 {
			return nil, false, &ConversionError{Path: path, Target: td.Name, Text: v.Text(), Cause: errNegativeUnsigned}
		}
		return td.FromInt(v.IntVal()), true, nil
	case KindFloat:
		if v.FloatVal() < 0 {
			return nil, false, &ConversionError{Path: path, Target: td.Name, Text: v.Text(), Cause: errNegativeUnsigned}
		}
		return td.FromInt(int64(v.FloatVal())), true, nil
	case KindString:
		u, err := strconv.ParseUint(v.StringVal(), 10, 64)
		if err != nil {
			return nil, false, &ConversionError{Path: path, Target: td.Name, Text: v.StringVal(), Cause: err}
		}
		return td.FromInt(int64(u)), true, nil
	default:
		return nil, false, &TypeMismatchError{Path: path, Want: "number", Got: v.Kind().String()}
	}
}

func (d *decoder) decodeFloat(v Value, td *TypeDescriptor, path string) (any, bool, error) {
	switch v.Kind() {
	case KindInt:
		return td.FromFloat(float64(v.IntVal())), true, nil
	case KindFloat:
		return td.FromFloat(v.FloatVal()), true, nil
	case KindString:
		f, err := strconv.ParseFloat(v.StringVal(), 64)
		if err != nil {
			return nil, false, &ConversionError{Path: path, Target: td.Name, Text: v.StringVal(), Cause: err}
		}
		return td.FromFloat(f), true, nil
	default:
		return nil, false, &TypeMismatchError{Path: path, Want: "number", Got: v.Kind().String()}
	}
}

func (d *decoder) decodeTime(v Value, td *TypeDescriptor, fieldLayout string, path string) (any, bool, error) {
	if !v.IsScalar() {
		return nil, false, &TypeMismatchError{Path: path, Want: "string", Got: v.Kind().String()}
	}
	layout := d.ctx.layoutFor(td, fieldLayout)
	t, err := time.Parse(layout, v.Text())
	if err != nil {
		return nil, false, &ConversionError{Path: path, Target: td.Name, Text: v.Text(), Cause: err}
	}
	return t, true, nil
}

// decodeEnum resolves a symbolic constant: exact match first, then a retry
// with one pair of surrounding quotes stripped, then a case-insensitive scan
// over the constants in declaration order.
func (d *decoder) decodeEnum(v Value, td *TypeDescriptor, path string) (any, bool, error) {
	if !v.IsScalar() {
		return nil, false, &TypeMismatchError{Path: path, Want: "string", Got: v.Kind().String()}
	}
	text := v.Text()
	if c, ok := td.EnumByName[text]; ok {
		return c, true, nil
	}
	if len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"' {
		if c, ok := td.EnumByName[text[1:len(text)-1]]; ok {
			return c, true, nil
		}
	}
	for _, name := range td.EnumNames {
		if strings.EqualFold(name, text) {
			return td.EnumByName[name], true, nil
		}
	}
	return nil, false, &ConversionError{Path: path, Target: td.Name, Text: text}
}

func (d *decoder) decodeSeq(v Value, td *TypeDescriptor, path string, depth int) (any, bool, error) {
	var items []Value
	switch v.Kind() {
	case KindArray:
		items = v.Items()
	case KindObject:
		return nil, false, &TypeMismatchError{Path: path, Want: "array", Got: "object"}
	default:
		// Scalar source: lift into a single-element sequence.
		items = []Value{v}
	}
	seq := td.NewSeq()
	for i, item := range items {
		elem, ok, err := d.decodeValue(item, td.Elem, "", nil, joinPointer(path, strconv.Itoa(i)), depth+1)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			elem = td.Elem.Zero()
		}
		seq = td.Append(seq, elem)
	}
	return seq, true, nil
}

func (d *decoder) decodeMap(v Value, td *TypeDescriptor, path string, depth int) (any, bool, error) {
	if v.Kind() != KindObject {
		return nil, false, &TypeMismatchError{Path: path, Want: "object", Got: v.Kind().String()}
	}
	obj := v.ObjectVal()
	m := td.NewMap()
	for i := 0; i < obj.Len(); i++ {
		key, mv := obj.At(i)
		entryPath := joinPointer(path, key)
		k, ok, err := d.decodeValue(String(key), td.KeyType, "", nil, entryPath, depth+1)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			k = td.KeyType.Zero()
		}
		val, ok, err := d.decodeValue(mv, td.ValueType, "", nil, entryPath, depth+1)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			val = td.ValueType.Zero()
		}
		m = td.SetEntry(m, k, val)
	}
	return m, true, nil
}

func (d *decoder) decodeStruct(v Value, td *TypeDescriptor, path string, depth int) (any, bool, error) {
	switch v.Kind() {
	case KindObject:
		// Fall through to field mapping below.
	case KindArray:
		return nil, false, &TypeMismatchError{Path: path, Want: "object", Got: "array"}
	default:
		return d.constructFromScalar(v, td, path, depth)
	}
	if td.New == nil {
		return nil, false, &ConstructionError{Type: td.Name, Reason: "no default constructor"}
	}
	ptr := td.New()
	resolver := newFieldResolver(td, d.ctx.useFieldNames)
	obj := v.ObjectVal()
	for i := 0; i < obj.Len(); i++ {
		key, mv := obj.At(i)
		f, ok := resolver.resolve(key)
		if !ok {
			// Unknown members are ignored.
			continue
		}
		val, assigned, err := d.decodeValue(mv, f.Type, f.TimeLayout, f.Adapter, joinPointer(path, key), depth+1)
		if err != nil {
			return nil, false, err
		}
		if assigned {
			f.Set(ptr, val)
		}
	}
	return td.Deref(ptr), true, nil
}

// constructFromScalar builds a composite target from a scalar source by
// trying an ordered chain of strategies: a registered single-argument
// constructor, a registered factory, and finally default construction with
// the scalar assigned to the first field named value, id or name.
func (d *decoder) constructFromScalar(v Value, td *TypeDescriptor, path string, depth int) (any, bool, error) {
	native := v.Native()
	if td.ScalarNew != nil {
		if out, err := td.ScalarNew(native); err == nil {
			return out, true, nil
		}
	}
	if td.Factory != nil {
		if out, err := td.Factory(native); err == nil {
			return out, true, nil
		}
	}
	if td.New != nil {
		for i := range td.Fields {
			f := &td.Fields[i]
			switch strings.ToLower(f.Name) {
			case "value", "id", "name":
				ptr := td.New()
				val, assigned, err := d.decodeValue(v, f.Type, f.TimeLayout, f.Adapter, path, depth+1)
				if err != nil {
					return nil, false, err
				}
				if assigned {
					f.Set(ptr, val)
				}
				return td.Deref(ptr), true, nil
			}
		}
	}
	return nil, false, &ConversionError{Path: path, Target: td.Name, Text: v.Text()}
}
