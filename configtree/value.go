package configtree

import (
	"math"
	"reflect"
	"slices"

	"github.com/iancoleman/orderedmap"
)

// Kind identifies which payload a [Value] holds.
type Kind int

const (
	// KindAbsent is a value with no payload (missing key or YAML null).
	KindAbsent Kind = iota
	// KindScalar is a string, number, boolean or other leaf value.
	KindScalar
	// KindMapping is a nested ordered [Mapping].
	KindMapping
	// KindSequence is an ordered list of [Value] items.
	KindSequence
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindScalar:
		return "scalar"
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	}

	return "unknown"
}

// Value is a stored configuration value together with the formatting
// metadata that must survive a load/save round trip.
//
// Exactly one payload is populated at a time, selected by [Value.Kind].
// Every setter clears the other payloads. Comment lists may be nil; nil and
// empty lists are equal.
//
// Create instances with [Absent], [Scalar], [String], [NewMapping] or
// [Sequence], or lift raw Go values with [Lift].
type Value struct {
	scalar  any
	mapping *Mapping
	items   []*Value

	// Comments are the leading block comment lines placed above the key.
	Comments []string
	// Inline holds comments rendered on the same line as the key (for
	// mappings and sequences) or as the scalar.
	Inline []string
	// Trailing holds comments after the last entry of a mapping. At the
	// document root these are the end-of-document comments.
	Trailing []string

	source string

	kind      Kind
	style     Style
	hasSource bool
	flow      bool
}

// Absent returns a value with no payload.
func Absent() *Value {
	return &Value{}
}

// Scalar returns a scalar value. A string payload gets [StylePlain]; a nil
// payload yields an absent value.
func Scalar(v any) *Value {
	val := &Value{}
	val.SetScalar(v)

	return val
}

// String returns a textual scalar with the given presentation style.
func String(s string, style Style) *Value {
	val := &Value{}
	val.SetString(s, style)

	return val
}

// NewMapping returns a value holding an empty [Mapping].
func NewMapping() *Value {
	val := &Value{}
	val.SetMapping(newMapping())

	return val
}

// Sequence returns a sequence value holding the given items.
func Sequence(items ...*Value) *Value {
	val := &Value{}
	val.SetSequence(items)

	return val
}

// Kind reports which payload is populated.
func (v *Value) Kind() Kind {
	return v.kind
}

// IsAbsent reports whether v holds no payload.
func (v *Value) IsAbsent() bool {
	return v.kind == KindAbsent
}

// IsMapping reports whether v holds a [Mapping].
func (v *Value) IsMapping() bool {
	return v.kind == KindMapping
}

// IsSequence reports whether v holds a sequence.
func (v *Value) IsSequence() bool {
	return v.kind == KindSequence
}

// IsScalar reports whether v holds a scalar.
func (v *Value) IsScalar() bool {
	return v.kind == KindScalar
}

// Scalar returns the scalar payload, or nil if v is not a scalar.
func (v *Value) Scalar() any {
	if v.kind != KindScalar {
		return nil
	}

	return v.scalar
}

// Text returns the payload as a string if v is a textual scalar.
func (v *Value) Text() (string, bool) {
	s, ok := v.Scalar().(string)

	return s, ok
}

// Style returns the presentation style of a textual scalar. Non-textual
// values report [StylePlain].
func (v *Value) Style() Style {
	if _, ok := v.Text(); !ok {
		return StylePlain
	}

	return v.style
}

// Mapping returns the mapping payload, or nil if v is not a mapping.
func (v *Value) Mapping() *Mapping {
	if v.kind != KindMapping {
		return nil
	}

	return v.mapping
}

// Items returns the sequence items, or nil if v is not a sequence.
func (v *Value) Items() []*Value {
	if v.kind != KindSequence {
		return nil
	}

	return v.items
}

// Clear drops the payload, leaving comments in place.
func (v *Value) Clear() {
	v.kind = KindAbsent
	v.scalar = nil
	v.mapping = nil
	v.items = nil
	v.style = StylePlain
	v.source = ""
	v.hasSource = false
	v.flow = false
}

// SetScalar replaces the payload with a scalar. Strings get [StylePlain].
// A nil scalar clears the payload.
//
// Numbers are stored the way a load produces them: sized integers as int
// (uint64 when out of range) and float32 as float64.
func (v *Value) SetScalar(s any) {
	v.Clear()

	if s == nil {
		return
	}

	v.kind = KindScalar
	v.scalar = normalizeNumber(s)
}

func normalizeNumber(s any) any {
	switch n := s.(type) {
	case int8:
		return int(n)
	case int16:
		return int(n)
	case int32:
		return int(n)
	case int64:
		if int64(int(n)) == n {
			return int(n)
		}
	case uint8:
		return int(n)
	case uint16:
		return int(n)
	case uint32:
		return normalizeUnsigned(uint64(n))
	case uint:
		return normalizeUnsigned(uint64(n))
	case uint64:
		return normalizeUnsigned(n)
	case float32:
		return float64(n)
	}

	return s
}

func normalizeUnsigned(n uint64) any {
	if n > math.MaxInt {
		return n
	}

	return int(n)
}

// SetString replaces the payload with a textual scalar in the given style.
func (v *Value) SetString(s string, style Style) {
	v.Clear()
	v.kind = KindScalar
	v.scalar = s
	v.style = style
}

// SetStyle changes the style of a textual scalar. It is a no-op for any
// other payload.
func (v *Value) SetStyle(style Style) {
	if _, ok := v.Text(); ok {
		v.style = style
	}
}

// Source returns the text a scalar or null was read from. It is only set
// while the payload is unchanged since loading.
func (v *Value) Source() (string, bool) {
	return v.source, v.hasSource
}

// SetSource records the text the current scalar or null payload was read
// from, so that writers can reproduce it (for example "0x1F" rather than
// "31"). It is a no-op for mappings and sequences.
func (v *Value) SetSource(text string) {
	if v.kind == KindMapping || v.kind == KindSequence {
		return
	}

	v.source = text
	v.hasSource = true
}

// Flow reports whether a mapping or sequence is written in flow style.
func (v *Value) Flow() bool {
	return v.flow
}

// SetFlow selects flow style for a mapping or sequence. It is a no-op for
// other payloads.
func (v *Value) SetFlow(flow bool) {
	if v.kind == KindMapping || v.kind == KindSequence {
		v.flow = flow
	}
}

// SetMapping replaces the payload with m. A nil m stores an empty mapping.
func (v *Value) SetMapping(m *Mapping) {
	v.Clear()

	if m == nil {
		m = newMapping()
	}

	v.kind = KindMapping
	v.mapping = m
}

// SetSequence replaces the payload with items. Nil items are stored as
// absent values.
func (v *Value) SetSequence(items []*Value) {
	v.Clear()

	v.kind = KindSequence
	v.items = make([]*Value, len(items))

	for i, item := range items {
		if item == nil {
			item = Absent()
		}

		v.items[i] = item
	}
}

// reaches reports whether v, or any value or mapping below it, is in set.
// Set keys are [*Value] and [*Mapping] pointers.
func (v *Value) reaches(set map[any]bool) bool {
	if set[v] {
		return true
	}

	switch v.kind {
	case KindMapping:
		if set[v.mapping] {
			return true
		}

		for _, child := range v.mapping.All() {
			if child.reaches(set) {
				return true
			}
		}
	case KindSequence:
		for _, item := range v.items {
			if item.reaches(set) {
				return true
			}
		}
	case KindAbsent, KindScalar:
	}

	return false
}

// adopt copies the payload of src into v without touching v's comments.
func (v *Value) adopt(src *Value) {
	v.kind = src.kind
	v.scalar = src.scalar
	v.mapping = src.mapping
	v.items = src.items
	v.style = src.style
	v.source = src.source
	v.hasSource = src.hasSource
	v.flow = src.flow
}

// Interface returns the payload as a plain Go value. Mappings are returned as
// *[orderedmap.OrderedMap] so key order survives JSON encoding; sequences as
// []any; absent values as nil.
func (v *Value) Interface() any {
	switch v.kind {
	case KindScalar:
		return v.scalar
	case KindMapping:
		om := orderedmap.New()
		om.SetEscapeHTML(false)

		for key, child := range v.mapping.All() {
			om.Set(key, child.Interface())
		}

		return om
	case KindSequence:
		out := make([]any, len(v.items))
		for i, item := range v.items {
			out[i] = item.Interface()
		}

		return out
	case KindAbsent:
		return nil
	}

	return nil
}

// Equal reports whether v and other have the same kind, payload, style and
// comment lists, recursively. Source text and flow style are presentation
// details and are not compared.
func (v *Value) Equal(other *Value) bool {
	if v == other {
		return true
	}

	if v == nil || other == nil {
		return false
	}

	if v.kind != other.kind ||
		!slices.Equal(v.Comments, other.Comments) ||
		!slices.Equal(v.Inline, other.Inline) ||
		!slices.Equal(v.Trailing, other.Trailing) {
		return false
	}

	switch v.kind {
	case KindScalar:
		return v.Style() == other.Style() && reflect.DeepEqual(v.scalar, other.scalar)
	case KindMapping:
		return v.mapping.Equal(other.mapping)
	case KindSequence:
		return slices.EqualFunc(v.items, other.items, (*Value).Equal)
	case KindAbsent:
		return true
	}

	return false
}

// Clone returns a deep copy of v.
func (v *Value) Clone() *Value {
	out := &Value{
		kind:      v.kind,
		scalar:    v.scalar,
		style:     v.style,
		source:    v.source,
		hasSource: v.hasSource,
		flow:      v.flow,
		Comments:  slices.Clone(v.Comments),
		Inline:    slices.Clone(v.Inline),
		Trailing:  slices.Clone(v.Trailing),
	}

	switch v.kind {
	case KindMapping:
		out.mapping = v.mapping.Clone()
	case KindSequence:
		out.items = make([]*Value, len(v.items))
		for i, item := range v.items {
			out.items[i] = item.Clone()
		}
	case KindAbsent, KindScalar:
	}

	return out
}
