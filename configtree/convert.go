package configtree

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/iancoleman/orderedmap"
)

// BlankLine is the comment-list entry that stands for an empty line. Comment
// text never contains a newline, so the sentinel cannot collide with a real
// comment.
const BlankLine = "\n"

// Lift converts a raw Go value into a [*Value].
//
// A [*Value] is returned as-is and a [*Tree] contributes its root value, so
// their comments and styles are kept. Maps are lifted recursively: ordered
// inputs (*[orderedmap.OrderedMap], [*Mapping]) keep their key order and
// plain Go maps are sorted by key. Slices and arrays become sequences. Any
// other value becomes a scalar.
func Lift(raw any) *Value {
	switch v := raw.(type) {
	case nil:
		return Absent()
	case *Value:
		if v == nil {
			return Absent()
		}

		return v
	case *Tree:
		if v == nil {
			return Absent()
		}

		return v.Root()
	case *Mapping:
		val := &Value{}
		val.SetMapping(v)

		return val
	case string:
		return String(v, StylePlain)
	case *orderedmap.OrderedMap:
		return FromMap(v)
	case orderedmap.OrderedMap:
		return FromMap(&v)
	case map[string]any, map[any]any:
		return FromMap(v)
	}

	rv := reflect.ValueOf(raw)

	switch rv.Kind() {
	case reflect.Map:
		return FromMap(raw)
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
			// []byte is a scalar, not a sequence of numbers.
			return Scalar(raw)
		}

		items := make([]*Value, rv.Len())
		for i := range rv.Len() {
			items[i] = Lift(rv.Index(i).Interface())
		}

		return Sequence(items...)
	default:
		return Scalar(raw)
	}
}

// FromMap lifts a nested map into a mapping [*Value]. Entries whose key is
// not a string (or a [fmt.Stringer]) are dropped. Existing [*Value] entries
// are reused, so their comments survive. Non-map input yields an empty
// mapping.
func FromMap(raw any) *Value {
	out := NewMapping()
	m := out.Mapping()

	switch v := raw.(type) {
	case *orderedmap.OrderedMap:
		for _, key := range v.Keys() {
			child, _ := v.Get(key)
			m.Set(key, Lift(child))
		}

		return out
	case *Mapping:
		out.SetMapping(v)

		return out
	}

	rv := reflect.ValueOf(raw)
	if rv.Kind() != reflect.Map {
		return out
	}

	type entry struct {
		value any
		key   string
	}

	entries := make([]entry, 0, rv.Len())

	iter := rv.MapRange()
	for iter.Next() {
		key, ok := keyString(iter.Key().Interface())
		if !ok {
			continue
		}

		entries = append(entries, entry{key: key, value: iter.Value().Interface()})
	}

	slices.SortFunc(entries, func(a, b entry) int {
		switch {
		case a.key < b.key:
			return -1
		case a.key > b.key:
			return 1
		}

		return 0
	})

	for _, e := range entries {
		m.Set(e.key, Lift(e.value))
	}

	return out
}

// keyString returns the addressable key for a raw map key.
func keyString(k any) (string, bool) {
	switch key := k.(type) {
	case string:
		return key, true
	case *Value:
		return key.Text()
	case fmt.Stringer:
		return key.String(), true
	}

	return "", false
}
