package render

import (
	"testing"

	"github.com/df-mc/isorender/anvil"
	"github.com/df-mc/isorender/canvas"
	"github.com/stretchr/testify/assert"
)

func TestBlockOrigin(t *testing.T) {
	x, y := blockOrigin(anvil.BIndex{X: 0, Z: 0, Y: 0})
	assert.Equal(t, sectionOriginX, x)
	assert.Equal(t, sectionOriginY, y)

	ex, ey := blockOrigin(anvil.BIndex{X: 1, Z: 0, Y: 0})
	assert.Equal(t, x+stepEastX, ex)
	assert.Equal(t, y+stepEastY, ey)

	sx, sy := blockOrigin(anvil.BIndex{X: 0, Z: 1, Y: 0})
	assert.Equal(t, x+stepSouthX, sx)
	assert.Equal(t, y+stepSouthY, sy)

	_, uy := blockOrigin(anvil.BIndex{X: 0, Z: 0, Y: 1})
	assert.Equal(t, y+stepUpY, uy)
}

func TestSectionOffsetInChunk(t *testing.T) {
	assert.Equal(t, ChunkH-SectionH, sectionOffsetInChunk(0))
	assert.Equal(t, sectionOffsetInChunk(0)-SlabHeight, sectionOffsetInChunk(1))
	assert.GreaterOrEqual(t, sectionOffsetInChunk(anvil.SectionsPerChunk-1), 0)
}

// stubResolver resolves every block to a single opaque-red ModeSolidTop
// layer, so drawn sprites are trivially detectable in a test raster.
type stubResolver struct{ calls int }

func (s *stubResolver) Resolve(anvil.BlockInfo, BlockContext) (*Sprite, error) {
	s.calls++
	pixels := make([]Rgba8, SpriteSize*SpriteSize)
	for i := range pixels {
		pixels[i] = Rgba8{200, 0, 0, 255}
	}
	return &Sprite{Layers: []SpriteLayer{{Pixels: pixels, Mode: ModeSolidTop}}}, nil
}

func flatSection(state anvil.BlockState) *anvil.Section {
	sec := &anvil.Section{
		BlockPalette: []anvil.BlockState{state},
		BiomePalette: []string{"minecraft:plains"},
	}
	return sec
}

func TestDrawSectionSkipsOutOfBounds(t *testing.T) {
	sec := flatSection(anvil.BlockState{Name: "minecraft:stone"})
	resolver := &stubResolver{}
	dst := canvas.NewBuf[Rgb8](SpriteSize, SpriteSize)

	// Place block (0, 0, 0)'s sprite exactly on dst so some blocks land
	// inside the raster and the rest are skipped.
	err := DrawSection(dst, sec, resolver, SectionContext{Section: sec}, -sectionOriginX, -sectionOriginY)
	assert.NoError(t, err)
	assert.Less(t, resolver.calls, anvil.ChunkSize*anvil.ChunkSize*anvil.ChunkSize)
	assert.Greater(t, resolver.calls, 0)
}

func TestRenderChunkDimensions(t *testing.T) {
	chunk := &anvil.Chunk{Coords: anvil.CCoords{}, FullyGenerated: true}
	for i := 0; i < anvil.SectionsPerChunk; i++ {
		chunk.Sections = append(chunk.Sections, flatSection(anvil.BlockState{Name: "minecraft:stone"}))
	}

	bg := Rgb8{10, 20, 30}
	out, err := RenderChunk(chunk, &stubResolver{}, bg)
	assert.NoError(t, err)
	assert.Equal(t, SectionW, out.Width())
	assert.Equal(t, ChunkH, out.Height())
}

func TestRenderChunkAtNotFound(t *testing.T) {
	cache := NewChunkCache(nil, nil, 0)
	cache.insert(anvil.CCoords{X: 1, Z: 1}, nil)

	_, err := RenderChunkAt(cache, anvil.CCoords{X: 1, Z: 1}, &stubResolver{}, Rgb8{})
	assert.ErrorIs(t, err, ErrChunkNotFound)
}

func TestRenderRegionSizeIsPositive(t *testing.T) {
	w, h := RenderRegionSize()
	assert.Greater(t, w, SectionW)
	assert.Greater(t, h, ChunkH)
}

func TestRenderRegionAllMissingIsErrRegionNotFound(t *testing.T) {
	cache := NewChunkCache(nil, nil, anvil.RegionSize*anvil.RegionSize)
	for x := int32(0); x < anvil.RegionSize; x++ {
		for z := int32(0); z < anvil.RegionSize; z++ {
			cache.insert(anvil.CCoords{X: x, Z: z}, nil)
		}
	}
	_, err := RenderRegion(cache, anvil.RCoords{}, &stubResolver{}, Rgb8{})
	assert.ErrorIs(t, err, ErrRegionNotFound)
}

func TestColumnWalkerEmitsTilesOfSectionHeight(t *testing.T) {
	walker := NewColumnWalker(&stubResolver{}, Rgb8{}, Unbounded{}, 0)

	noChunk := func(anvil.CCoords) (*anvil.Chunk, bool, error) { return nil, false, nil }

	var rows []int
	err := walker.Walk(noChunk, func(row int, tile *canvas.Buf[Rgb8]) bool {
		assert.Equal(t, SectionW, tile.Width())
		assert.Equal(t, SectionH, tile.Height())
		rows = append(rows, row)
		return len(rows) < 3
	})
	assert.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, rows)
}

func TestColumnWalkerAnchorsChunkAlongDiagonal(t *testing.T) {
	walker := NewColumnWalker(&stubResolver{}, Rgb8{}, Unbounded{}, 3)
	assert.Equal(t, anvil.CCoords{X: 3, Z: -3}, walker.anchorChunk())

	walker.row = 2
	assert.Equal(t, anvil.CCoords{X: 7, Z: 1}, walker.anchorChunk())
}
