package render

import (
	"github.com/df-mc/isorender/canvas"
	"github.com/go-gl/mathgl/mgl32"
)

// warp applies an aspect's affine projection to a TextureSize x
// TextureSize source image, producing a SpriteSize x SpriteSize RGBA8
// destination. The projection matrix maps source pixel coordinates to
// destination pixel coordinates (spec.md §4.3's "applied right-to-left
// to source pixels"); warp inverts it once and walks the destination
// raster, sampling the source at the mapped-back coordinate — the
// standard inverse-mapping approach so every destination pixel is
// filled exactly once with no holes.
func warp(src canvas.Image[Rgba8], proj aspectProjection) *canvas.Buf[Rgba8] {
	inv := proj.forward.Inv()
	dst := canvas.NewBuf[Rgba8](SpriteSize, SpriteSize)
	for dy := 0; dy < SpriteSize; dy++ {
		row := dst.RowMut(dy)
		for dx := 0; dx < SpriteSize; dx++ {
			d := mgl32.Vec3{float32(dx) + 0.5, float32(dy) + 0.5, 1}
			s := inv.Mul3x1(d)
			sx, sy := s[0]-0.5, s[1]-0.5
			row[dx] = sampleSource(src, sx, sy, proj.interp)
		}
	}
	return dst
}

// sampleSource samples src at floating-point coordinates (x, y). Nearest
// sampling returns transparent black when the rounded coordinate falls
// outside [0, w) x [0, h); bilinear sampling treats each out-of-range
// neighbour as transparent black, so it returns transparent black only
// when all four neighbours are outside.
func sampleSource(src canvas.Image[Rgba8], x, y float32, interp Interp) Rgba8 {
	if interp == InterpNearest {
		ix, iy := floorInt(x+0.5), floorInt(y+0.5)
		p, ok := src.GetPixel(ix, iy)
		if !ok {
			return Rgba8{}
		}
		return p
	}
	return sampleBilinear(src, x, y)
}

func sampleBilinear(src canvas.Image[Rgba8], x, y float32) Rgba8 {
	x0 := floorInt(x)
	y0 := floorInt(y)
	fx := x - float32(x0)
	fy := y - float32(y0)

	p00, ok00 := src.GetPixel(x0, y0)
	p10, ok10 := src.GetPixel(x0+1, y0)
	p01, ok01 := src.GetPixel(x0, y0+1)
	p11, ok11 := src.GetPixel(x0+1, y0+1)
	if !ok00 && !ok10 && !ok01 && !ok11 {
		return Rgba8{}
	}

	var out Rgba8
	for c := 0; c < 4; c++ {
		v00, v10, v01, v11 := channelOr0(p00, ok00, c), channelOr0(p10, ok10, c), channelOr0(p01, ok01, c), channelOr0(p11, ok11, c)
		top := lerp(v00, v10, fx)
		bot := lerp(v01, v11, fx)
		out[c] = uint8(clampF(lerp(top, bot, fy), 0, 255) + 0.5)
	}
	return out
}

func channelOr0(p Rgba8, ok bool, c int) float32 {
	if !ok {
		return 0
	}
	return float32(p[c])
}

func lerp(a, b, t float32) float32 { return a + (b-a)*t }

func clampF(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func floorInt(v float32) int {
	i := int(v)
	if v < 0 && float32(i) != v {
		i--
	}
	return i
}
