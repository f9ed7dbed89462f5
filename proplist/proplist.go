// Package proplist implements a compact ordered string->string map used as
// a cache key for block states. It is a pure data-structure concern (see
// spec §9): the spec explicitly permits substituting a sorted vector or
// balanced tree for the pooled inline/spill scheme of the original
// implementation as long as equality and hashing match, so this is a
// sorted slice rather than a port of
// _examples/original_source/mcrender/src/proplist.rs's BytesPool-backed
// design.
package proplist

import (
	"sort"
	"strings"

	"github.com/segmentio/fasthash/fnv1a"
)

type entry struct{ key, value string }

// List is an ordered-by-key string->string map optimized for the small
// (1-8 entry) property sets a block state carries. The zero value is an
// empty list.
type List struct {
	entries []entry
}

// New returns an empty List.
func New() List { return List{} }

// FromMap builds a List from an unordered map, sorting keys for a
// canonical iteration and hash order.
func FromMap(m map[string]string) List {
	l := List{entries: make([]entry, 0, len(m))}
	for k, v := range m {
		l.entries = append(l.entries, entry{k, v})
	}
	sort.Slice(l.entries, func(i, j int) bool { return l.entries[i].key < l.entries[j].key })
	return l
}

// Insert sets key to value, keeping entries sorted by key. An existing
// key's value is overwritten in place.
func (l *List) Insert(key, value string) {
	i := sort.Search(len(l.entries), func(i int) bool { return l.entries[i].key >= key })
	if i < len(l.entries) && l.entries[i].key == key {
		l.entries[i].value = value
		return
	}
	l.entries = append(l.entries, entry{})
	copy(l.entries[i+1:], l.entries[i:])
	l.entries[i] = entry{key, value}
}

// Get returns the value for key and whether it was present.
func (l List) Get(key string) (string, bool) {
	i := sort.Search(len(l.entries), func(i int) bool { return l.entries[i].key >= key })
	if i < len(l.entries) && l.entries[i].key == key {
		return l.entries[i].value, true
	}
	return "", false
}

// Len returns the number of entries.
func (l List) Len() int { return len(l.entries) }

// Equal reports whether l and other hold the same key/value pairs in the
// same order (which, since both are kept sorted by key, is equivalent to
// set equality).
func (l List) Equal(other List) bool {
	if len(l.entries) != len(other.entries) {
		return false
	}
	for i, e := range l.entries {
		if e != other.entries[i] {
			return false
		}
	}
	return true
}

// Hash returns a 64-bit hash of the property list, combining each key and
// value with a separator byte per entry so that {"a":"bc"} and {"ab":"c"}
// don't collide. Uses fasthash's fnv1a, the same hash family the teacher
// uses for block-state hashing in server/world/block_state.go's
// hashProperties, ported from hash/fnv to the faster ecosystem
// implementation already present in the teacher's dependency graph.
func (l List) Hash() uint64 {
	var b strings.Builder
	for _, e := range l.entries {
		b.WriteString(e.key)
		b.WriteByte(0)
		b.WriteString(e.value)
		b.WriteByte(0)
	}
	return fnv1a.HashString64(b.String())
}

// String renders the list as "k1=v1;k2=v2", matching the original
// implementation's Display impl for diagnostics and cache-debug logging.
func (l List) String() string {
	var b strings.Builder
	for i, e := range l.entries {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(e.key)
		b.WriteByte('=')
		b.WriteString(e.value)
	}
	return b.String()
}

// Range calls f for every entry in key order.
func (l List) Range(f func(key, value string)) {
	for _, e := range l.entries {
		f(e.key, e.value)
	}
}

// Filter returns a new List containing only the keys present in keep.
func (l List) Filter(keep map[string]struct{}) List {
	out := List{entries: make([]entry, 0, len(l.entries))}
	for _, e := range l.entries {
		if _, ok := keep[e.key]; ok {
			out.entries = append(out.entries, e)
		}
	}
	return out
}
