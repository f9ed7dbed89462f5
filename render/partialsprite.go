package render

import (
	"sync"

	"github.com/df-mc/isorender/canvas"
)

// partialKey is the memoization key for one projected, optionally
// tinted cube face (spec.md §4.3 "Partial sprite cache").
type partialKey struct {
	texture string
	aspect  Aspect
	tint    Rgb8
	tinted  bool
}

// PartialSpriteCache memoizes one projected 24x24 RGBA face per
// (texture name, aspect, tint) key, shared across every composite
// sprite that needs the same face. Grounded on
// original_source/mcrender/src/render/sprite.rs's
// PartialSpriteCache::get_tinted, using the same optimistic
// read-then-write-lock pattern as TextureCache.
type PartialSpriteCache struct {
	textures *TextureCache

	mu      sync.RWMutex
	partials map[partialKey]*canvas.Buf[Rgba8]
}

// NewPartialSpriteCache returns an empty cache backed by textures.
func NewPartialSpriteCache(textures *TextureCache) *PartialSpriteCache {
	return &PartialSpriteCache{textures: textures, partials: map[partialKey]*canvas.Buf[Rgba8]{}}
}

// faceTint returns the fixed ambient-occlusion-style shading multiplier
// spec.md §4.3 assigns to east/south faces; top/bottom faces are
// untinted by direction (their multiplier is white).
func faceTint(aspect Aspect) Rgb8 {
	switch aspect {
	case AspectBlockSouth, AspectBlockSouthRotated, AspectBlockNorth:
		return Rgb8{220, 220, 220}
	case AspectBlockEast, AspectBlockEastRotated, AspectBlockWest:
		return Rgb8{200, 200, 200}
	default:
		return Rgb8{255, 255, 255}
	}
}

// Get returns the partial sprite for (textureName, aspect), optionally
// multiplied by an additional biome tint. hasTint distinguishes "no
// biome tint supplied" from a literal white tint, so untinted rules
// don't grow a spurious cache entry distinct from a white-tinted one.
func (c *PartialSpriteCache) Get(textureName string, aspect Aspect, tint Rgb8, hasTint bool) (*canvas.Buf[Rgba8], error) {
	key := partialKey{texture: textureName, aspect: aspect, tint: tint, tinted: hasTint}

	c.mu.RLock()
	if p, ok := c.partials[key]; ok {
		c.mu.RUnlock()
		return p, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if p, ok := c.partials[key]; ok {
		return p, nil
	}

	tex, err := c.textures.Get(textureName)
	if err != nil {
		return nil, err
	}
	proj, ok := projections[aspect]
	if !ok {
		proj = projections[AspectBlockTop]
	}
	projected := warp(tex, proj)

	face := faceTint(aspect)
	canvas.MultiplyImage(projected, projected, face)
	if hasTint {
		canvas.MultiplyImage(projected, projected, tint)
	}

	c.partials[key] = projected
	return projected, nil
}
