package configtree

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidPath indicates a key path that is empty or has an empty
	// segment.
	ErrInvalidPath = errors.New("invalid path")
	// ErrCycle indicates a value that would end up inside itself.
	ErrCycle = errors.New("value would contain itself")
)

// Separator splits key path segments. Keys containing a literal separator
// cannot be addressed.
const Separator = "."

// Tree is a configuration mapping addressable by dotted key paths.
//
// A Tree owns a mapping [Value]. Sub-trees returned by [Tree.Sub] are views
// that share the parent's values, so writes through a view change the
// parent. A Tree is not safe for concurrent mutation.
//
// Create instances with [New] or [FromValue].
type Tree struct {
	root   *Value
	parent *Tree
	path   string
}

// New returns an empty root tree.
func New() *Tree {
	return &Tree{root: NewMapping()}
}

// FromValue returns a root tree over v. A v that is not a mapping is
// replaced by an empty mapping in place, keeping its comments.
func FromValue(v *Value) *Tree {
	if v == nil {
		v = NewMapping()
	}

	if !v.IsMapping() {
		v.SetMapping(nil)
	}

	return &Tree{root: v}
}

// Root returns the value backing t. It is a mapping unless t is a view whose
// entry was since replaced in the parent by something else; reads through
// such a view miss.
func (t *Tree) Root() *Value {
	return t.root
}

// Replace swaps the backing value of t for v. It is used by loaders to
// install a freshly parsed tree in one step.
func (t *Tree) Replace(v *Value) {
	if v == nil || !v.IsMapping() {
		v = NewMapping()
	}

	t.root = v
}

// Parent returns the enclosing tree of a view, or nil for a root tree.
func (t *Tree) Parent() *Tree {
	return t.parent
}

// CurrentPath returns the fully-qualified path of t. It is empty for a root
// tree.
func (t *Tree) CurrentPath() string {
	return t.path
}

// Path qualifies relative with the path of t.
func (t *Tree) Path(relative string) string {
	if t.parent == nil || t.path == "" {
		return relative
	}

	return t.path + Separator + relative
}

// Set stores value at path.
//
// Intermediate segments are created as mappings; a segment that holds a
// non-mapping value is replaced by an empty mapping. A nil value removes the
// final segment without pruning parents that become empty.
//
// A [*Value] or [*Tree] value is adopted as-is, comments included. Any other
// value replaces only the payload of an existing entry, so comments already
// attached at path are kept.
func (t *Tree) Set(path string, value any) error {
	keys, err := splitPath(path)
	if err != nil {
		return err
	}

	stored, raw := storedValue(value)
	if stored != nil && stored.reaches(t.enclosing(keys, raw)) {
		return fmt.Errorf("%w: %s", ErrCycle, t.Path(path))
	}

	if !t.root.IsMapping() {
		t.root.SetMapping(nil)
	}

	m := t.root.Mapping()

	for _, key := range keys[:len(keys)-1] {
		next, ok := m.Get(key)
		if !ok || !next.IsMapping() {
			next = NewMapping()
			m.Set(key, next)
		}

		m = next.Mapping()
	}

	last := keys[len(keys)-1]

	switch {
	case stored == nil:
		m.Delete(last)

		return nil
	case !raw:
		m.Set(last, stored)

		return nil
	}

	existing, ok := m.Get(last)
	if !ok {
		existing = &Value{}
	}

	existing.adopt(stored)
	m.Set(last, existing)

	return nil
}

// storedValue lifts a Set argument. A nil result means removal; raw is set
// when only the payload should be taken over.
func storedValue(value any) (*Value, bool) {
	switch v := value.(type) {
	case nil:
		return nil, false
	case *Value:
		if v == nil {
			return nil, false
		}

		return v, false
	case *Tree:
		if v == nil {
			return nil, false
		}

		return v.Root(), false
	}

	return Lift(value), true
}

// enclosing returns the existing values and mappings that a value stored at
// keys would end up inside. With adopt set the value at keys itself is
// included, since it takes over the payload in place.
func (t *Tree) enclosing(keys []string, adopt bool) map[any]bool {
	out := make(map[any]bool)

	add := func(v *Value) {
		out[v] = true
		if m := v.Mapping(); m != nil {
			out[m] = true
		}
	}

	for cur := t; cur != nil; cur = cur.parent {
		add(cur.root)
	}

	cur := t.root

	for i, key := range keys {
		if i == len(keys)-1 && !adopt {
			break
		}

		m := cur.Mapping()
		if m == nil {
			break
		}

		next, ok := m.Get(key)
		if !ok {
			break
		}

		add(next)

		cur = next
	}

	return out
}

// Get returns the value at path. A missing segment, a non-mapping
// intermediate or a malformed path yields a fresh absent value that is not
// attached to t.
func (t *Tree) Get(path string) *Value {
	v, ok := t.lookup(path)
	if !ok {
		return Absent()
	}

	return v
}

// Has reports whether an entry exists at path. An entry holding null counts.
func (t *Tree) Has(path string) bool {
	_, ok := t.lookup(path)

	return ok
}

func (t *Tree) lookup(path string) (*Value, bool) {
	keys, err := splitPath(path)
	if err != nil {
		return nil, false
	}

	cur := t.root
	if !cur.IsMapping() {
		return nil, false
	}

	for _, key := range keys {
		m := cur.Mapping()
		if m == nil {
			return nil, false
		}

		next, ok := m.Get(key)
		if !ok {
			return nil, false
		}

		cur = next
	}

	return cur, true
}

// Sub returns a view over the mapping at path.
func (t *Tree) Sub(path string) (*Tree, bool) {
	v, ok := t.lookup(path)
	if !ok || !v.IsMapping() {
		return nil, false
	}

	return &Tree{root: v, parent: t, path: t.Path(path)}, true
}

// Keys returns the keys of t. When deep is set, nested mapping keys are
// included as dotted paths relative to t, so a child "a" holding "b" yields
// both "a" and "a.b". The order is document order; callers should treat the
// result as a set.
func (t *Tree) Keys(deep bool) []string {
	m := t.root.Mapping()
	if m == nil {
		return nil
	}

	if !deep {
		return m.Keys()
	}

	var keys []string

	collectKeys(m, "", &keys)

	return keys
}

func collectKeys(m *Mapping, prefix string, keys *[]string) {
	for key, v := range m.All() {
		full := key
		if prefix != "" {
			full = prefix + Separator + key
		}

		*keys = append(*keys, full)

		if child := v.Mapping(); child != nil {
			collectKeys(child, full, keys)
		}
	}
}

// Equal reports whether t and other hold deep-equal values, comments and
// styles included.
func (t *Tree) Equal(other *Tree) bool {
	if t == nil || other == nil {
		return t == other
	}

	return t.root.Equal(other.root)
}

// Clone returns a deep copy of t as a root tree.
func (t *Tree) Clone() *Tree {
	return FromValue(t.root.Clone())
}

func splitPath(path string) ([]string, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidPath)
	}

	keys := strings.Split(path, Separator)
	for _, key := range keys {
		if key == "" {
			return nil, fmt.Errorf("%w: empty segment in %q", ErrInvalidPath, path)
		}
	}

	return keys, nil
}
