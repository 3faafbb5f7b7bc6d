package jsonmap

// OrderedMap is a string-keyed map that remembers insertion order, for wire
// objects whose member order is significant. Setting an existing key updates
// the value in place without moving the key.
type OrderedMap[V any] struct {
	keys  []string
	index map[string]int
	vals  []V
}

// NewOrderedMap returns an empty ordered map.
func NewOrderedMap[V any]() *OrderedMap[V] {
	return &OrderedMap[V]{index: make(map[string]int)}
}

// Len reports the number of entries.
func (m *OrderedMap[V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in insertion order. The slice is shared; callers must
// not modify it.
func (m *OrderedMap[V]) Keys() []string {
	if m == nil {
		return nil
	}
	return m.keys
}

// Get looks up a key.
func (m *OrderedMap[V]) Get(key string) (V, bool) {
	if m == nil {
		var zero V
		return zero, false
	}
	i, ok := m.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	return m.vals[i], true
}

// Set inserts or updates an entry.
func (m *OrderedMap[V]) Set(key string, val V) {
	if i, ok := m.index[key]; ok {
		m.vals[i] = val
		return
	}
	m.index[key] = len(m.keys)
	m.keys = append(m.keys, key)
	m.vals = append(m.vals, val)
}

// At returns the i-th entry in insertion order.
func (m *OrderedMap[V]) At(i int) (string, V) {
	return m.keys[i], m.vals[i]
}
