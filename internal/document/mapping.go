package document

import (
	"bytes"
	"encoding/json"
)

// Mapping is an insertion-order-preserving string-keyed container. Go maps do
// not keep key order, but mapping order is part of the serialization
// round-trip guarantee, so the domain tree uses this instead of map[string]any.
type Mapping struct {
	keys  []string
	items map[string]any
}

// NewMapping returns an empty Mapping.
func NewMapping() *Mapping {
	return &Mapping{items: make(map[string]any)}
}

// Get returns the value for key and whether it is present.
func (m *Mapping) Get(key string) (any, bool) {
	v, ok := m.items[key]
	return v, ok
}

// Set stores key=value, appending the key if it is new and keeping its
// original position if it already exists.
func (m *Mapping) Set(key string, value any) {
	if _, ok := m.items[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.items[key] = value
}

// Delete removes key from the mapping. Removing an absent key is a no-op.
func (m *Mapping) Delete(key string) {
	if _, ok := m.items[key]; !ok {
		return
	}
	delete(m.items, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Len returns the number of entries.
func (m *Mapping) Len() int { return len(m.keys) }

// Keys returns the keys in insertion order. The returned slice is a copy.
func (m *Mapping) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// clone returns a shallow copy: fresh key slice and item map, values shared.
func (m *Mapping) clone() *Mapping {
	c := &Mapping{
		keys:  make([]string, len(m.keys)),
		items: make(map[string]any, len(m.items)),
	}
	copy(c.keys, m.keys)
	for k, v := range m.items {
		c.items[k] = v
	}
	return c
}

// Equal reports deep value equality with another mapping, including key order.
func (m *Mapping) Equal(other *Mapping) bool {
	if m == nil || other == nil {
		return m == other
	}
	if len(m.keys) != len(other.keys) {
		return false
	}
	for i, k := range m.keys {
		if other.keys[i] != k {
			return false
		}
		if !ValueEqual(m.items[k], other.items[k]) {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the mapping as a JSON object preserving key order.
func (m *Mapping) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(m.items[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ValueEqual reports deep equality of two domain values. Mappings compare by
// key order and per-key values, sequences element-wise, scalars by ==.
func ValueEqual(a, b any) bool {
	switch av := a.(type) {
	case *Mapping:
		bv, ok := b.(*Mapping)
		return ok && av.Equal(bv)
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !ValueEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}
