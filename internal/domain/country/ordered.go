package country

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Ordered is a string-keyed map that remembers insertion order. Decoding
// from JSON keeps the key order of the source object, which is what
// "first currency" and "first language" lookups rely on.
type Ordered[V any] struct {
	keys   []string
	values map[string]V
}

// NewOrdered builds an Ordered map from pairs, keeping their order.
func NewOrdered[V any](pairs ...Pair[V]) Ordered[V] {
	var m Ordered[V]
	for _, p := range pairs {
		m.Set(p.Key, p.Value)
	}
	return m
}

// Pair is one entry of an Ordered map.
type Pair[V any] struct {
	Key   string
	Value V
}

// P is shorthand for constructing a Pair.
func P[V any](key string, value V) Pair[V] { return Pair[V]{Key: key, Value: value} }

// Set stores value under key. A new key is appended; an existing key keeps
// its position.
func (m *Ordered[V]) Set(key string, value V) {
	if m.values == nil {
		m.values = make(map[string]V)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value stored under key.
func (m Ordered[V]) Get(key string) (V, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Len returns the number of entries.
func (m Ordered[V]) Len() int { return len(m.keys) }

// Keys returns the keys in insertion order.
func (m Ordered[V]) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Values returns the values in insertion order.
func (m Ordered[V]) Values() []V {
	out := make([]V, 0, len(m.keys))
	for _, k := range m.keys {
		out = append(out, m.values[k])
	}
	return out
}

// First returns the first inserted value.
func (m Ordered[V]) First() (V, bool) {
	if len(m.keys) == 0 {
		var zero V
		return zero, false
	}
	return m.values[m.keys[0]], true
}

// UnmarshalJSON decodes a JSON object preserving key order. null leaves
// the map empty.
func (m *Ordered[V]) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if tok == nil {
		*m = Ordered[V]{}
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("%w: expected object, got %v", ErrDecode, tok)
	}

	var out Ordered[V]
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrDecode, err)
		}
		key, ok := kt.(string)
		if !ok {
			return fmt.Errorf("%w: unexpected key %v", ErrDecode, kt)
		}
		var v V
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("%w: key %q: %v", ErrDecode, key, err)
		}
		out.Set(key, v)
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	*m = out
	return nil
}

// MarshalJSON encodes the map as a JSON object in insertion order.
func (m Ordered[V]) MarshalJSON() ([]byte, error) {
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
		vb, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
