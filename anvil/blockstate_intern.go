package anvil

import (
	"sync"

	"github.com/brentp/intintmap"
)

// StateIntern deduplicates BlockStates across every caller sharing one
// table, keyed by the
// 64-bit hash of (name, filtered properties). Grounded on the teacher's
// block-state registration scheme in server/world/block_state.go
// (`blocks []Block` indexed by runtime ID, looked up via `stateRuntimeIDs
// map[stateHash]uint32` populated from an `intintmap.New(...)`-backed
// `hashes` table keyed by a numeric hash) — repurposed here from
// registering every possible Bedrock block permutation up front to
// memoizing Anvil block states as they're encountered while parsing
// chunks, since Java Edition has no bounded up-front block-state registry
// to preload.
//
// A hash collision between two distinct (name, properties) pairs is
// caught by an Equal check, so distinct states are never aliased: the
// newer state is stored separately and takes over the hash slot, and the
// older one is stored again as a new entry the next time it is interned.
// Collisions are not chained.
//
// ParseChunk does not use a StateIntern; deduplication happens only for
// callers that share one table.
type StateIntern struct {
	mu     sync.Mutex
	index  *intintmap.Map
	states []*BlockState
}

// NewStateIntern returns an empty intern table sized for an expected
// number of distinct states.
func NewStateIntern(expected int) *StateIntern {
	if expected <= 0 {
		expected = 1024
	}
	return &StateIntern{index: intintmap.New(int64(expected), 0.99)}
}

// Intern returns a pointer to the canonical, shared BlockState equal to s,
// interning s if it hasn't been seen before.
func (t *StateIntern) Intern(s BlockState) *BlockState {
	h := int64(s.Hash())

	t.mu.Lock()
	defer t.mu.Unlock()
	if v, ok := t.index.Get(h); ok {
		if existing := t.states[v]; existing.Equal(s) {
			return existing
		}
		// Hash collision between distinct states: fall through and store
		// s separately rather than aliasing an unrelated state.
	}
	idx := int64(len(t.states))
	t.states = append(t.states, &s)
	t.index.Put(h, idx)
	return &s
}

// Len returns the number of distinct states interned so far.
func (t *StateIntern) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.states)
}
