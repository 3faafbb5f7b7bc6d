package dsl

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	jm "github.com/kyantra/jsonmap"
)

// SliceOf describes a []E sequence.
func SliceOf[E any](elem *jm.TypeDescriptor) *jm.TypeDescriptor {
	t := typeOf[[]E]()
	return &jm.TypeDescriptor{
		Kind:     jm.TypeSlice,
		Name:     t.String(),
		GoType:   t,
		Zero:     func() any { return []E(nil) },
		IsNil:    func(v any) bool { return v.([]E) == nil },
		Elem:     elem,
		NewSeq:   func() any { return []E{} },
		Append:   func(seq, e any) any { return append(seq.([]E), e.(E)) },
		SeqLen:   func(seq any) int { return len(seq.([]E)) },
		SeqIndex: func(seq any, i int) any { return seq.([]E)[i] },
	}
}

// SetOf describes a []E treated as a set: appending drops duplicates while
// keeping first-occurrence order.
func SetOf[E comparable](elem *jm.TypeDescriptor) *jm.TypeDescriptor {
	td := SliceOf[E](elem)
	td.Kind = jm.TypeSet
	td.Append = func(seq, e any) any {
		s := seq.([]E)
		v := e.(E)
		for _, have := range s {
			if have == v {
				return s
			}
		}
		return append(s, v)
	}
	return td
}

// MapOf describes a map[K]V. Encoding visits entries sorted by the key's wire
// text so output is deterministic; decoding coerces each member name through
// the key descriptor.
func MapOf[K comparable, V any](key, val *jm.TypeDescriptor) *jm.TypeDescriptor {
	t := typeOf[map[K]V]()
	return &jm.TypeDescriptor{
		Kind:      jm.TypeMap,
		Name:      t.String(),
		GoType:    t,
		Zero:      func() any { return map[K]V(nil) },
		IsNil:     func(v any) bool { return v.(map[K]V) == nil },
		KeyType:   key,
		ValueType: val,
		NewMap:    func() any { return map[K]V{} },
		SetEntry: func(m any, k, v any) any {
			mm := m.(map[K]V)
			mm[k.(K)] = v.(V)
			return mm
		},
		IterMap: func(m any, fn func(key string, val any) error) error {
			mm := m.(map[K]V)
			type entry struct {
				text string
				k    K
			}
			entries := make([]entry, 0, len(mm))
			for k := range mm {
				entries = append(entries, entry{text: keyText(key, k), k: k})
			}
			sort.Slice(entries, func(i, j int) bool { return entries[i].text < entries[j].text })
			for _, e := range entries {
				if err := fn(e.text, mm[e.k]); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// OrderedMapOf describes a *jsonmap.OrderedMap[V], preserving member order
// across a decode/encode round trip. Keys are strings.
func OrderedMapOf[V any](val *jm.TypeDescriptor) *jm.TypeDescriptor {
	t := typeOf[*jm.OrderedMap[V]]()
	return &jm.TypeDescriptor{
		Kind:      jm.TypeMap,
		Name:      t.String(),
		GoType:    t,
		Zero:      func() any { return (*jm.OrderedMap[V])(nil) },
		IsNil:     func(v any) bool { return v.(*jm.OrderedMap[V]) == nil },
		KeyType:   String[string](),
		ValueType: val,
		NewMap:    func() any { return jm.NewOrderedMap[V]() },
		SetEntry: func(m any, k, v any) any {
			om := m.(*jm.OrderedMap[V])
			om.Set(k.(string), v.(V))
			return om
		},
		IterMap: func(m any, fn func(key string, val any) error) error {
			om := m.(*jm.OrderedMap[V])
			for i := 0; i < om.Len(); i++ {
				k, v := om.At(i)
				if err := fn(k, v); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// keyText renders a map key as its JSON member name.
func keyText(kt *jm.TypeDescriptor, k any) string {
	switch kt.Kind {
	case jm.TypeString, jm.TypeChar:
		return kt.AsString(k)
	case jm.TypeInt:
		return strconv.FormatInt(kt.AsInt(k), 10)
	case jm.TypeUint:
		return strconv.FormatUint(kt.AsUint(k), 10)
	case jm.TypeFloat:
		return strconv.FormatFloat(kt.AsFloat(k), 'g', -1, 64)
	case jm.TypeBool:
		return strconv.FormatBool(kt.AsBool(k))
	case jm.TypeEnum:
		if n, ok := kt.EnumName(k); ok {
			return n
		}
	case jm.TypeTime:
		layout := kt.TimeLayout
		if layout == "" {
			layout = jm.DefaultTimeLayout
		}
		return k.(time.Time).Format(layout)
	}
	return fmt.Sprint(k)
}
