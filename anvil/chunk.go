package anvil

import (
	"fmt"

	"github.com/df-mc/isorender/proplist"
	"github.com/segmentio/fasthash/fnv1a"
)

// DefaultBiome is used wherever a biome cannot be determined, matching the
// constant named in spec.md §6.
const DefaultBiome = "minecraft:plains"

// BlockState is an interned block name paired with the subset of its NBT
// properties the configured render rule declares relevant. Equal
// BlockStates compare equal, so two sections that happen to hold the same
// rendered appearance reuse one cache entry even if their full raw NBT
// properties differed in a way that doesn't affect rendering.
type BlockState struct {
	Name       string
	Properties proplist.List
}

// ShortName strips the "minecraft:" (or other) namespace prefix from the
// state's name.
func (s BlockState) ShortName() string {
	for i := 0; i < len(s.Name); i++ {
		if s.Name[i] == ':' {
			return s.Name[i+1:]
		}
	}
	return s.Name
}

// Hash returns a 64-bit hash combining the name and the filtered property
// list, used as the key into the block-state intern table.
func (s BlockState) Hash() uint64 {
	h := fnv1a.HashString64(s.Name)
	return fnv1a.AddUint64(h, s.Properties.Hash())
}

// Equal reports whether s and other represent the same render-relevant
// state.
func (s BlockState) Equal(other BlockState) bool {
	return s.Name == other.Name && s.Properties.Equal(other.Properties)
}

// LightLevel packs a block light and sky light nibble (0-15 each).
type LightLevel struct{ Block, Sky uint8 }

// Effective returns the brighter of the two channels, the value renderers
// should use for shading.
func (l LightLevel) Effective() uint8 {
	if l.Block > l.Sky {
		return l.Block
	}
	return l.Sky
}

// BlockData is the packed per-block record spec.md §3 describes:
// {state_index: 16, biome_index: 8, block_light: 4, sky_light: 4}.
type BlockData struct {
	StateIndex uint16
	BiomeIndex uint8
	Lighting   LightLevel
}

// Section is a 16x16x16 voxel box: the unit of palette scoping and light
// storage.
type Section struct {
	Base          BCoords
	BlockData     [ChunkSize * ChunkSize * ChunkSize]BlockData
	BlockPalette  []BlockState
	BiomePalette  []string
}

// BlockInfo describes one resolved block: its section-relative index,
// state, biome, and lighting.
type BlockInfo struct {
	Index   BIndex
	State   *BlockState
	Biome   string
	Lighting LightLevel
}

// GetBlock resolves the block at idx within the section.
func (s *Section) GetBlock(idx BIndex) BlockInfo {
	data := s.BlockData[idx.FlatIndex()]
	return BlockInfo{
		Index:    idx,
		State:    &s.BlockPalette[data.StateIndex],
		Biome:    s.BiomePalette[data.BiomeIndex],
		Lighting: data.Lighting,
	}
}

// IterBlocks calls f for every block in the section, in (Y, Z, X) ascending
// order — the order Anvil stores them in and the order spec.md §4.5
// requires for correct back-to-front isometric painting.
func (s *Section) IterBlocks(f func(BlockInfo)) {
	for i := range s.BlockData {
		idx := BIndexFromFlat(i)
		f(s.GetBlock(idx))
	}
}

// Chunk owns the parsed sections of one 16x16xWorldHeight column.
type Chunk struct {
	Coords         CCoords
	Sections       []*Section
	FullyGenerated bool
}

// IterBlocks calls f for every block across every section, translating
// section-relative Y into a chunk-relative index by offsetting Y by the
// section's stack position.
func (c *Chunk) IterBlocks(f func(BlockInfo)) {
	for i, sec := range c.Sections {
		yOffset := uint32(i) * ChunkSize
		sec.IterBlocks(func(b BlockInfo) {
			b.Index.Y += yOffset
			f(b)
		})
	}
}

// PropertyFilter decides, for a given block name, which NBT property keys
// are render-relevant. Implementations are typically backed by
// render.RuleSet; kept as an interface here so package anvil does not
// depend on package render.
type PropertyFilter interface {
	RelevantProperties(blockName string) map[string]struct{}
}

// noopFilter keeps every property, used when the caller doesn't supply a
// PropertyFilter (e.g. tests that don't care about cache-key minimality).
type noopFilter struct{}

func (noopFilter) RelevantProperties(string) map[string]struct{} { return nil }

// ParseChunk decodes a decompressed chunk NBT payload into a Chunk. Filter
// may be nil, in which case no properties are filtered out.
func ParseChunk(data []byte, filter PropertyFilter) (*Chunk, error) {
	if filter == nil {
		filter = noopFilter{}
	}
	var doc nbtChunk
	if err := unmarshalChunkNBT(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedChunk, err)
	}

	chunk := &Chunk{
		Coords:         CCoords{X: doc.XPos, Z: doc.ZPos},
		Sections:       make([]*Section, 0, len(doc.Sections)),
		FullyGenerated: doc.Status == "minecraft:full",
	}
	baseX := chunk.Coords.X * ChunkSize
	baseZ := chunk.Coords.Z * ChunkSize

	skyLightBySection := make([][]byte, len(doc.Sections))

	for i, sec := range doc.Sections {
		section := &Section{
			Base: BCoords{X: baseX, Z: baseZ, Y: int32(sec.Y) * ChunkSize},
		}

		palette := make([]BlockState, len(sec.BlockStates.Palette))
		keepByName := make([]map[string]struct{}, len(palette))
		for pi, bs := range sec.BlockStates.Palette {
			name := intern(bs.Name)
			keep := filter.RelevantProperties(name)
			props := proplist.FromMap(bs.Properties)
			if _, all := filter.(noopFilter); !all {
				props = props.Filter(keep)
			}
			palette[pi] = BlockState{Name: name, Properties: props}
			keepByName[pi] = keep
		}
		section.BlockPalette = palette

		bits := blockBits(len(palette))
		count := ChunkSize * ChunkSize * ChunkSize
		stateIndices := unpackIndices(sec.BlockStates.Data, bits, count)
		if err := validatePaletteIndices(stateIndices, max(len(palette), 1), "block"); err != nil {
			return nil, err
		}

		biomePalette := make([]string, len(sec.Biomes.Palette))
		for bi, name := range sec.Biomes.Palette {
			biomePalette[bi] = intern(name)
		}
		section.BiomePalette = biomePalette
		bbits := biomeBits(len(biomePalette))
		biomeIndices := unpackIndices(sec.Biomes.Data, bbits, 64)
		if err := validatePaletteIndices(biomeIndices, max(len(biomePalette), 1), "biome"); err != nil {
			return nil, err
		}

		for bi := 0; bi < count; bi++ {
			idx := BIndexFromFlat(bi)
			section.BlockData[bi].StateIndex = uint16(stateIndices[bi])
			section.BlockData[bi].BiomeIndex = uint8(biomeIndices[idx.biomeIndex()])
		}

		if len(sec.BlockLight) == 2048 {
			for bi := 0; bi < count; bi++ {
				section.BlockData[bi].Lighting.Block = nibble(sec.BlockLight, bi)
			}
		}

		skyLightBySection[i] = sec.SkyLight
		chunk.Sections = append(chunk.Sections, section)
	}

	// Sky light defaults to full exposure above the terrain and is filled
	// top-down: a section without its own SkyLight duplicates the bottom
	// nibble-layer of the section above it.
	const layerNibbles = ChunkSize * ChunkSize
	var carry [2048]byte
	for i := range carry {
		carry[i] = 0xFF
	}
	for i := len(chunk.Sections) - 1; i >= 0; i-- {
		data := skyLightBySection[i]
		if len(data) == 2048 {
			copy(carry[:], data)
		} else {
			// Duplicate the bottom layer upward through the section.
			for off := layerNibbles / 2; off < len(carry); off += layerNibbles / 2 {
				copy(carry[off:off+layerNibbles/2], carry[:layerNibbles/2])
			}
		}
		sec := chunk.Sections[i]
		for bi := 0; bi < ChunkSize*ChunkSize*ChunkSize; bi++ {
			sec.BlockData[bi].Lighting.Sky = nibble(carry[:], bi)
		}
	}

	return chunk, nil
}

// nibble returns the i'th nibble from a byte slice packed two-per-byte,
// lower nibble first, matching BlockLight/SkyLight's on-disk layout.
func nibble(data []byte, i int) uint8 {
	b := data[i/2]
	if i%2 == 0 {
		return b & 0xF
	}
	return b >> 4
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
