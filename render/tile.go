package render

import (
	"fmt"

	"github.com/df-mc/isorender/anvil"
	"github.com/df-mc/isorender/canvas"
)

// Isometric placement geometry (spec.md §4.5). Stepping one block east
// moves the sprite's top-left by (+12, +6); south by (-12, +6); up by
// (0, -12).
const (
	stepEastX, stepEastY   = SpriteSize / 2, SpriteSize / 4
	stepSouthX, stepSouthY = -SpriteSize / 2, SpriteSize / 4
	stepUpY                = -SpriteSize / 2

	// SectionW is a section's horizontal raster extent.
	SectionW = anvil.ChunkSize * SpriteSize
	// SectionH is a standalone section's full raster height (the
	// horizontal rhombus plus the vertical band a 16-block-tall stack
	// of sprites needs). Chosen and held fixed throughout the renderer
	// per DESIGN.md's resolution of the tile-height/chunk-height
	// ambiguity in spec.md §4.5.
	SectionH = SpriteSize * anvil.ChunkSize

	// SlabHeight is the vertical pixel step one stacked section
	// contributes over the section below it (half a section's height,
	// since adjacent sections overlap by SectionH/2 in the stack).
	SlabHeight = SectionH / 2

	// ChunkH is a whole chunk's standalone raster height: the bottom
	// section's own SectionH plus one SlabHeight step for every
	// section above it, which exactly contains every stacked section's
	// content without clipping (derived, not the literal spec figure —
	// see DESIGN.md).
	ChunkH = SectionH + (anvil.SectionsPerChunk-1)*SlabHeight
)

// sectionOriginX, sectionOriginY is the screen-space top-left of the
// sprite for section-relative block (0, 0, 0): (SECTION_W/2 -
// SPRITE/2, (CHUNK_SIZE-1) * SPRITE/2).
const (
	sectionOriginX = SectionW/2 - SpriteSize/2
	sectionOriginY = (anvil.ChunkSize - 1) * SpriteSize / 2
)

// blockOrigin returns the screen-space top-left pixel of the sprite for
// the block at section-relative index idx.
func blockOrigin(idx anvil.BIndex) (int, int) {
	x := sectionOriginX + int(idx.X)*stepEastX + int(idx.Z)*stepSouthX
	y := sectionOriginY + int(idx.X)*stepEastY + int(idx.Z)*stepSouthY + int(idx.Y)*stepUpY
	return x, y
}

// sectionOffsetInChunk returns section i's (0 = bottom) vertical pixel
// offset within a whole-chunk raster of height ChunkH, per spec.md
// §4.5's `CHUNK_H - SECTION_H - i*SECTION_H/2`.
func sectionOffsetInChunk(i int) int {
	return ChunkH - SectionH - i*SlabHeight
}

// Resolver resolves a block to its sprite; satisfied by *RuleSet.
type Resolver interface {
	Resolve(block anvil.BlockInfo, ctx BlockContext) (*Sprite, error)
}

// DrawSection blits every non-empty block of section onto dst at pixel
// offset (originX, originY), in the (Y, Z, X) order spec.md §4.5
// requires for correct back-to-front painting. Blocks whose sprite
// rectangle falls entirely outside dst are skipped before any sprite
// lookup (the "block-skip optimization").
func DrawSection(dst canvas.ImageMut[Rgb8], section *anvil.Section, resolver Resolver, ctx SectionContext, originX, originY int) error {
	dw, dh := dst.Width(), dst.Height()
	var err error
	section.IterBlocks(func(b anvil.BlockInfo) {
		if err != nil {
			return
		}
		bx, by := blockOrigin(b.Index)
		x, y := originX+bx, originY+by
		if x+SpriteSize <= 0 || x >= dw || y+SpriteSize <= 0 || y >= dh {
			return
		}
		blockCtx := BlockContext{Section: ctx, Index: b.Index}
		var sprite *Sprite
		sprite, err = resolver.Resolve(b, blockCtx)
		if err != nil || sprite == nil {
			return
		}
		for _, layer := range sprite.Layers {
			view, vErr := canvas.NewBufFrom[Rgba8](SpriteSize, SpriteSize, layer.Pixels)
			if vErr != nil {
				continue
			}
			canvas.OverlayFinal(dst, view, x, y)
		}
	})
	return err
}

// DrawChunk blits every section of chunk onto dst, with (originX,
// originY) as the top-left of the chunk's ChunkH-tall raster: section i
// (0 = bottom) is drawn at originY + sectionOffsetInChunk(i), stacking
// sections bottom-up.
func DrawChunk(dst canvas.ImageMut[Rgb8], chunk *anvil.Chunk, resolver Resolver, originX, originY int) error {
	chunkCtx := ChunkContext{Chunk: chunk}
	for i, section := range chunk.Sections {
		secCtx := SectionContext{Chunk: chunkCtx, Section: section, Index: i}
		y := originY + sectionOffsetInChunk(i)
		if err := DrawSection(dst, section, resolver, secCtx, originX, y); err != nil {
			return err
		}
	}
	return nil
}

// FillBackground pre-fills dst with bg before any blit, per spec.md
// §4.5's "Every raster is pre-filled with a caller-supplied RGB
// background ... before any blit."
func FillBackground(dst *canvas.Buf[Rgb8], bg Rgb8) {
	for y := 0; y < dst.Height(); y++ {
		row := dst.RowMut(y)
		for x := range row {
			row[x] = bg
		}
	}
}

// RenderChunk renders a standalone chunk image sized to its content:
// SectionW wide, ChunkH tall, background pre-filled.
func RenderChunk(chunk *anvil.Chunk, resolver Resolver, bg Rgb8) (*canvas.Buf[Rgb8], error) {
	dst := canvas.NewBuf[Rgb8](SectionW, ChunkH)
	FillBackground(dst, bg)
	if err := DrawChunk(dst, chunk, resolver, 0, 0); err != nil {
		return nil, err
	}
	return dst, nil
}

// RenderChunkAt looks coords up in cache and renders it standalone,
// returning ErrChunkNotFound wrapped with the coordinates if the chunk
// does not exist or is not fully generated.
func RenderChunkAt(cache *ChunkCache, coords anvil.CCoords, resolver Resolver, bg Rgb8) (*canvas.Buf[Rgb8], error) {
	chunk, ok, err := cache.Get(coords, Unbounded{})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %+v", ErrChunkNotFound, coords)
	}
	return RenderChunk(chunk, resolver, bg)
}

// chunkOffsetX, chunkOffsetZ are the rolling-buffer pixel offsets one
// step east/south of the walker's anchor chunk contributes, per
// spec.md §4.5: `CHUNK_OFFSET_X = (SECTION_W/2, SECTION_H/4)`,
// `CHUNK_OFFSET_Z = (−SECTION_W/2, SECTION_H/4)`.
var (
	chunkOffsetXdx, chunkOffsetXdy = SectionW / 2, SectionH / 4
	chunkOffsetZdx, chunkOffsetZdy = -SectionW / 2, SectionH / 4
)

// RenderRegionSize returns the content-bounded raster size of a
// standalone region render holding a RegionSize x RegionSize grid of
// chunks, each placed at the same (chunkOffsetX, chunkOffsetZ) stride
// the column walker uses.
func RenderRegionSize() (width, height int) {
	const n = anvil.RegionSize - 1
	return SectionW + n*(chunkOffsetXdx-chunkOffsetZdx), ChunkH + n*(chunkOffsetXdy+chunkOffsetZdy)
}

// RenderRegion renders every chunk of the region at rcoords found in
// cache onto one standalone raster, in the same isometric layout the
// column walker streams incrementally. Missing chunks are left as
// background; the region itself not existing at all is
// ErrRegionNotFound.
func RenderRegion(cache *ChunkCache, rcoords anvil.RCoords, resolver Resolver, bg Rgb8) (*canvas.Buf[Rgb8], error) {
	w, h := RenderRegionSize()
	dst := canvas.NewBuf[Rgb8](w, h)
	FillBackground(dst, bg)

	base := rcoords.ToChunkCoords()
	originX := (anvil.RegionSize - 1) * chunkOffsetXdx
	found := false
	for cz := 0; cz < anvil.RegionSize; cz++ {
		for cx := 0; cx < anvil.RegionSize; cx++ {
			coords := anvil.CCoords{X: base.X + int32(cx), Z: base.Z + int32(cz)}
			chunk, ok, err := cache.Get(coords, Unbounded{})
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			found = true
			ox := originX + cx*chunkOffsetXdx + cz*chunkOffsetZdx
			oy := cx*chunkOffsetXdy + cz*chunkOffsetZdy
			if err := DrawChunk(dst, chunk, resolver, ox, oy); err != nil {
				return nil, err
			}
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: %+v", ErrRegionNotFound, rcoords)
	}
	return dst, nil
}

// columnOffsets are the six chunk positions (relative to a per-row
// anchor) whose content affects one tile, per spec.md §4.5.
var columnOffsets = [6][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}, {2, 1}, {1, 2}}

// ColumnWalker streams a map-tile column downward with bounded memory,
// re-rendering each chunk exactly once regardless of how many tiles
// reference it vertically. Grounded on
// original_source/mcrender/src/render/mod.rs's render_map_column.
type ColumnWalker struct {
	resolver Resolver
	bg       Rgb8
	bounds   ChunkBounds

	col int
	row int

	buffer *canvas.Buf[Rgb8]
}

// NewColumnWalker starts a walker for tile column col, beginning at
// row 0.
func NewColumnWalker(resolver Resolver, bg Rgb8, bounds ChunkBounds, col int) *ColumnWalker {
	buf := canvas.NewBuf[Rgb8](SectionW, ChunkH+3*SectionH/4)
	FillBackground(buf, bg)
	return &ColumnWalker{resolver: resolver, bg: bg, bounds: bounds, col: col, buffer: buf}
}

// anchorChunk returns the chunk coordinates the walker's current row
// is anchored at: (2*row + col, 2*row - col), per
// original_source/mcrender/src/render/mod.rs's render_map_column.
func (w *ColumnWalker) anchorChunk() anvil.CCoords {
	return anvil.CCoords{X: int32(2*w.row + w.col), Z: int32(2*w.row - w.col)}
}

// Walk drives the walker over chunks, calling get to fetch each needed
// chunk (a cache lookup) and sink for each emitted tile. sink returns
// false to stop early. Walk renders each of the six chunks touching a
// row exactly once per row, per the column-walker contract.
func (w *ColumnWalker) Walk(get func(anvil.CCoords) (*anvil.Chunk, bool, error), sink func(row int, tile *canvas.Buf[Rgb8]) bool) error {
	for {
		anchor := w.anchorChunk()
		if w.bounds != nil && !w.bounds.contains(anchor) {
			return nil
		}
		for _, off := range columnOffsets {
			coords := anvil.CCoords{X: anchor.X + int32(off[0]), Z: anchor.Z + int32(off[1])}
			chunk, ok, err := get(coords)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			ox := off[0]*chunkOffsetXdx + off[1]*chunkOffsetZdx
			oy := off[0]*chunkOffsetXdy + off[1]*chunkOffsetZdy
			if err := DrawChunk(w.buffer, chunk, w.resolver, ox, oy); err != nil {
				return err
			}
		}

		tile := canvas.NewBuf[Rgb8](SectionW, SectionH)
		for y := 0; y < SectionH; y++ {
			copy(tile.RowMut(y), w.buffer.Row(y))
		}
		if !sink(w.row, tile) {
			return nil
		}

		w.shiftUp(SectionH)
		w.row++
	}
}

// shiftUp shifts the rolling buffer's content up by n rows, filling the
// exposed bottom rows with the background colour.
func (w *ColumnWalker) shiftUp(n int) {
	h := w.buffer.Height()
	for y := 0; y < h-n; y++ {
		copy(w.buffer.RowMut(y), w.buffer.Row(y+n))
	}
	for y := h - n; y < h; y++ {
		row := w.buffer.RowMut(y)
		for x := range row {
			row[x] = w.bg
		}
	}
}
