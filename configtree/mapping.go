package configtree

import (
	"iter"
	"slices"

	"github.com/iancoleman/orderedmap"
)

// Mapping is an insertion-ordered map of keys to [*Value].
//
// Create instances with [NewMapping] (as the payload of a [Value]) or
// [Value.SetMapping].
type Mapping struct {
	om *orderedmap.OrderedMap
}

func newMapping() *Mapping {
	om := orderedmap.New()
	om.SetEscapeHTML(false)

	return &Mapping{om: om}
}

// Len returns the number of entries.
func (m *Mapping) Len() int {
	return len(m.om.Keys())
}

// Get returns the value stored under key.
func (m *Mapping) Get(key string) (*Value, bool) {
	raw, ok := m.om.Get(key)
	if !ok {
		return nil, false
	}

	v, ok := raw.(*Value)

	return v, ok
}

// Set stores v under key. An existing key keeps its position.
func (m *Mapping) Set(key string, v *Value) {
	if v == nil {
		v = Absent()
	}

	m.om.Set(key, v)
}

// Delete removes key. Missing keys are ignored.
func (m *Mapping) Delete(key string) {
	m.om.Delete(key)
}

// Keys returns the keys in insertion order. The slice is a copy.
func (m *Mapping) Keys() []string {
	return slices.Clone(m.om.Keys())
}

// All iterates over entries in insertion order.
func (m *Mapping) All() iter.Seq2[string, *Value] {
	return func(yield func(string, *Value) bool) {
		for _, key := range m.Keys() {
			v, ok := m.Get(key)
			if !ok {
				continue
			}

			if !yield(key, v) {
				return
			}
		}
	}
}

// Equal reports whether both mappings hold equal values under the same keys.
// Key order is not compared.
func (m *Mapping) Equal(other *Mapping) bool {
	if m == nil || other == nil {
		return m == other
	}

	if m.Len() != other.Len() {
		return false
	}

	for key, a := range m.All() {
		b, ok := other.Get(key)
		if !ok || !a.Equal(b) {
			return false
		}
	}

	return true
}

// Clone returns a deep copy of m.
func (m *Mapping) Clone() *Mapping {
	out := newMapping()
	for key, v := range m.All() {
		out.Set(key, v.Clone())
	}

	return out
}
