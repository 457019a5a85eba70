// Package repository holds the per-city indices built during an aggregation
// pass. Every index remembers the order in which cities were first inserted,
// which is what ranking ties fall back to.
package repository

import "iter"

// Ordered is a string-keyed map that iterates in first-insertion order.
// It is not safe for concurrent use; a pass runs on one goroutine.
type Ordered[V any] struct {
	keys   []string
	values []V
	pos    map[string]int
	frozen bool
}

// NewOrdered creates an empty ordered map.
func NewOrdered[V any](opts ...Option) *Ordered[V] {
	o := buildOptions(opts)
	return &Ordered[V]{
		keys:   make([]string, 0, o.capacity),
		values: make([]V, 0, o.capacity),
		pos:    make(map[string]int, o.capacity),
	}
}

// Upsert inserts the zero value for key if it is absent, then applies update
// to the stored value in place.
func (m *Ordered[V]) Upsert(key string, update func(v *V)) error {
	if m.frozen {
		return ErrFrozen
	}
	i, ok := m.pos[key]
	if !ok {
		i = len(m.keys)
		m.keys = append(m.keys, key)
		var zero V
		m.values = append(m.values, zero)
		m.pos[key] = i
	}
	update(&m.values[i])
	return nil
}

// Get returns the value stored for key.
func (m *Ordered[V]) Get(key string) (V, bool) {
	i, ok := m.pos[key]
	if !ok {
		var zero V
		return zero, false
	}
	return m.values[i], true
}

// Len returns the number of keys.
func (m *Ordered[V]) Len() int {
	return len(m.keys)
}

// Keys returns a copy of the keys in insertion order.
func (m *Ordered[V]) Keys() []string {
	return append([]string(nil), m.keys...)
}

// All iterates key/value pairs in insertion order.
func (m *Ordered[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		for i, k := range m.keys {
			if !yield(k, m.values[i]) {
				return
			}
		}
	}
}

// Freeze rejects all further Upserts with ErrFrozen.
func (m *Ordered[V]) Freeze() {
	m.frozen = true
}

// Frozen reports whether Freeze was called.
func (m *Ordered[V]) Frozen() bool {
	return m.frozen
}
