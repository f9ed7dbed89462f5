package render

import "github.com/df-mc/isorender/anvil"

// ChunkContext, SectionContext and BlockContext carry neighbour
// information alongside the block currently being resolved. Per §9's
// open question, this scaffolding is not consulted for occlusion
// culling; implementers may "wire it through or omit" it, and it is
// kept here as an inert carrier for a future neighbour-aware resolver
// rather than deleted, per the teacher's own pattern of carrying
// forward-looking fields that aren't yet read anywhere (e.g. dragonfly's
// Config fields defaulted but not all consulted by every code path).
type ChunkContext struct {
	Chunk *anvil.Chunk
}

// SectionContext narrows a ChunkContext to one section.
type SectionContext struct {
	Chunk   ChunkContext
	Section *anvil.Section
	Index   int
}

// BlockContext narrows a SectionContext to one block. Resolve (rule.go)
// accepts a BlockContext alongside the BlockInfo being resolved but
// never reads it.
type BlockContext struct {
	Section SectionContext
	Index   anvil.BIndex
}
