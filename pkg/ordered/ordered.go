// SPDX-License-Identifier: MPL-2.0

// Package ordered provides an insertion-order-preserving map used for task
// and script listings whose display order must match declaration order.
package ordered

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
)

// Map is a map that remembers the order in which keys were first inserted.
// Setting an existing key replaces its value but keeps its position.
// The zero value is not usable; create instances with New.
type Map[K comparable, V any] struct {
	keys   []K
	values map[K]V
}

// New creates an empty Map.
func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{values: make(map[K]V)}
}

// Set inserts or replaces the value for key.
func (m *Map[K, V]) Set(key K, value V) {
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value for key and whether it was present.
func (m *Map[K, V]) Get(key K) (V, bool) {
	if m == nil {
		var zero V
		return zero, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present.
func (m *Map[K, V]) Has(key K) bool {
	_, ok := m.Get(key)
	return ok
}

// Len returns the number of entries. A nil Map has length zero.
func (m *Map[K, V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns a copy of the keys in insertion order.
func (m *Map[K, V]) Keys() []K {
	if m == nil {
		return nil
	}
	return append([]K(nil), m.keys...)
}

// All iterates over entries in insertion order.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		if m == nil {
			return
		}
		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}

// UnmarshalJSON decodes a JSON object, keeping the order of its members.
// Only string keys are supported, so K must be string-kinded.
func (m *Map[K, V]) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		m.keys = nil
		m.values = make(map[K]V)
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("ordered: expected JSON object, got %v", tok)
	}

	m.keys = nil
	m.values = make(map[K]V)

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("ordered: expected object key, got %v", tok)
		}

		var key K
		if err := json.Unmarshal(mustQuote(name), &key); err != nil {
			return fmt.Errorf("ordered: key %q: %w", name, err)
		}

		var value V
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("ordered: value for %q: %w", name, err)
		}
		m.Set(key, value)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// MarshalJSON encodes the map as a JSON object in insertion order.
func (m *Map[K, V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.Keys() {
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

func mustQuote(s string) []byte {
	b, _ := json.Marshal(s) // marshaling a string cannot fail
	return b
}
