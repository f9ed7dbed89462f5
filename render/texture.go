package render

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"sync"

	"github.com/df-mc/isorender/canvas"
)

// TextureCache loads and memoizes 16x16 block textures by bare short
// name (e.g. "stone"), resolving each to
// "<assets>/minecraft/textures/block/<name>.png" and keeping only the
// top-left 16x16 sub-image. Grounded on
// original_source/mcrender/src/asset.rs's AssetCache::get_texture,
// restyled after the teacher's RWMutex-guarded, optimistic-read caches
// (e.g. its interned-name tables): a read lock is taken first; on miss
// it is released and a write lock acquired, re-checking for a
// concurrent insert before loading from disk. Resolves the §9 open
// question ("PathBuf key vs string key") in favour of the bare string
// short name, matching the teacher's general preference for
// string-keyed maps over path-joined keys.
type TextureCache struct {
	assetsPath string

	mu      sync.RWMutex
	loaded  map[string]*canvas.Buf[Rgba8]
}

// NewTextureCache returns an empty cache rooted at assetsPath, the
// directory containing the ".mcassetsroot" marker (spec.md §6).
func NewTextureCache(assetsPath string) *TextureCache {
	return &TextureCache{assetsPath: assetsPath, loaded: map[string]*canvas.Buf[Rgba8]{}}
}

// Get returns the cached 16x16 texture for name, loading it from disk
// on first request.
func (c *TextureCache) Get(name string) (*canvas.Buf[Rgba8], error) {
	c.mu.RLock()
	if t, ok := c.loaded[name]; ok {
		c.mu.RUnlock()
		return t, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if t, ok := c.loaded[name]; ok {
		return t, nil
	}
	t, err := c.load(name)
	if err != nil {
		return nil, err
	}
	c.loaded[name] = t
	return t, nil
}

func (c *TextureCache) load(name string) (*canvas.Buf[Rgba8], error) {
	path := filepath.Join(c.assetsPath, "minecraft", "textures", "block", name+".png")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture %s: %w", name, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode texture %s: %w", name, err)
	}

	full := canvas.FromImage(img)
	view := canvas.NewView[Rgba8](full, 0, 0, TextureSize, TextureSize)
	cropped := canvas.NewBuf[Rgba8](TextureSize, TextureSize)
	for y := 0; y < view.Height(); y++ {
		srcRow := view.Row(y)
		dstRow := cropped.RowMut(y)
		copy(dstRow, srcRow)
	}
	return cropped, nil
}

// ValidateAssetsRoot checks for the ".mcassetsroot" marker file spec.md
// §6 requires of a valid assets directory.
func ValidateAssetsRoot(assetsPath string) error {
	_, err := os.Stat(filepath.Join(assetsPath, ".mcassetsroot"))
	if err != nil {
		return fmt.Errorf("%w: %s", ErrNotAnAssetsRoot, assetsPath)
	}
	return nil
}
