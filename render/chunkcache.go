package render

import (
	"container/list"
	"sync"

	"github.com/df-mc/isorender/anvil"
)

// ChunkBounds constrains which chunk coordinates a ChunkCache will
// actually attempt to fetch, short-circuiting out-of-region lookups to
// "absent" without touching the backing dimension (spec.md §4.6).
type ChunkBounds interface {
	contains(c anvil.CCoords) bool
}

// Unbounded places no restriction on chunk coordinates.
type Unbounded struct{}

func (Unbounded) contains(anvil.CCoords) bool { return true }

// MinMax restricts lookups to chunks with Min.X <= X < Max.X and
// Min.Z <= Z < Max.Z.
type MinMax struct{ Min, Max anvil.CCoords }

func (b MinMax) contains(c anvil.CCoords) bool {
	return c.X >= b.Min.X && c.X < b.Max.X && c.Z >= b.Min.Z && c.Z < b.Max.Z
}

// ChunkCache is an LRU of parsed chunks keyed by CCoords, bounded by a
// configurable capacity (default 100 per spec.md §4.6). A cached nil
// entry records "this chunk is absent or not fully generated" so a
// repeated lookup for a hole doesn't re-hit the backing dimension.
// Not safe for concurrent use — each Renderer (and each parallel
// worker) owns one exclusively, per spec.md §5.
type ChunkCache struct {
	capacity int
	entries  map[anvil.CCoords]*list.Element
	order    *list.List // front = most recently used

	source  *anvil.DimensionInfo
	filter  anvil.PropertyFilter
}

type chunkCacheEntry struct {
	coords anvil.CCoords
	chunk  *anvil.Chunk // nil means "known absent / not fully generated"
}

const defaultChunkCacheCapacity = 100

// NewChunkCache returns an empty cache backed by source, filtering
// parsed block states through filter (typically a *RuleSet). A
// capacity <= 0 uses the spec's default of 100.
func NewChunkCache(source *anvil.DimensionInfo, filter anvil.PropertyFilter, capacity int) *ChunkCache {
	if capacity <= 0 {
		capacity = defaultChunkCacheCapacity
	}
	return &ChunkCache{
		capacity: capacity,
		entries:  map[anvil.CCoords]*list.Element{},
		order:    list.New(),
		source:   source,
		filter:   filter,
	}
}

// Get returns the chunk at coords, fetching and parsing it on a cache
// miss. ok is false when the chunk does not exist, lies outside
// bounds, or exists but is not fully generated — in every such case
// chunk is nil. Only fully-generated chunks are ever cached as present.
func (c *ChunkCache) Get(coords anvil.CCoords, bounds ChunkBounds) (chunk *anvil.Chunk, ok bool, err error) {
	if bounds != nil && !bounds.contains(coords) {
		return nil, false, nil
	}

	if el, hit := c.entries[coords]; hit {
		c.order.MoveToFront(el)
		entry := el.Value.(*chunkCacheEntry)
		return entry.chunk, entry.chunk != nil, nil
	}

	raw, present, err := c.source.GetRawChunk(coords)
	if err != nil {
		return nil, false, err
	}
	var parsed *anvil.Chunk
	if present {
		parsed, err = raw.Parse(c.filter)
		if err != nil {
			return nil, false, err
		}
		if !parsed.FullyGenerated {
			parsed = nil
		}
	}

	c.insert(coords, parsed)
	return parsed, parsed != nil, nil
}

func (c *ChunkCache) insert(coords anvil.CCoords, chunk *anvil.Chunk) {
	el := c.order.PushFront(&chunkCacheEntry{coords: coords, chunk: chunk})
	c.entries[coords] = el
	if c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*chunkCacheEntry).coords)
	}
}

// SharedChunkCache wraps a ChunkCache with a mutex for the uncommon
// case a caller wants to share one cache across goroutines, even
// though spec.md §5 describes per-Renderer exclusive ownership as the
// default contract.
type SharedChunkCache struct {
	mu    sync.Mutex
	cache *ChunkCache
}

// NewSharedChunkCache wraps cache for concurrent access.
func NewSharedChunkCache(cache *ChunkCache) *SharedChunkCache {
	return &SharedChunkCache{cache: cache}
}

// Get mirrors ChunkCache.Get under the wrapper's mutex.
func (s *SharedChunkCache) Get(coords anvil.CCoords, bounds ChunkBounds) (*anvil.Chunk, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Get(coords, bounds)
}
