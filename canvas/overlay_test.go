package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlendChannelOpaqueAndTransparent(t *testing.T) {
	assert.Equal(t, uint8(200), blendChannel(200, 50, 255))
	assert.Equal(t, uint8(50), blendChannel(200, 50, 0))
}

func TestBlendChannelHalf(t *testing.T) {
	got := blendChannel(200, 0, 128)
	if got < 97 || got > 101 {
		t.Errorf("half-alpha blend of 200 over 0 = %d, want ~100", got)
	}
}

func TestOverlayOpaqueReplacesPixel(t *testing.T) {
	dst := NewBufFilled[Rgb8](4, 4, Rgb8{0, 0, 0})
	src := NewBufFilled[Rgba8](2, 2, Rgba8{255, 0, 0, 255})

	Overlay(dst, src, 1, 1)

	p, _ := dst.GetPixel(1, 1)
	assert.Equal(t, Rgb8{255, 0, 0}, p)
	p, _ = dst.GetPixel(0, 0)
	assert.Equal(t, Rgb8{0, 0, 0}, p)
}

func TestOverlayClampsAtEdges(t *testing.T) {
	dst := NewBufFilled[Rgb8](4, 4, Rgb8{1, 1, 1})
	src := NewBufFilled[Rgba8](4, 4, Rgba8{9, 9, 9, 255})

	Overlay(dst, src, 2, 2)

	p, _ := dst.GetPixel(3, 3)
	assert.Equal(t, Rgb8{9, 9, 9}, p)
	p, _ = dst.GetPixel(0, 0)
	assert.Equal(t, Rgb8{1, 1, 1}, p)
}

func TestOverlayTiersAgreeBitForBit(t *testing.T) {
	src := NewBuf[Rgba8](16, 16)
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			src.SetPixel(x, y, Rgba8{uint8(x * 16), uint8(y * 16), uint8(x + y), uint8((x * y) % 256)})
		}
	}

	results := make([]*Buf[Rgb8], 3)
	for i, tier := range []OverlayTier{KernelScalar, KernelSSE4, KernelAVX2} {
		dst := NewBufFilled[Rgb8](16, 16, Rgb8{30, 60, 90})
		overlayAt(dst, src, 0, 0, tier)
		results[i] = dst
	}

	for i := 1; i < len(results); i++ {
		assert.Equal(t, results[0].Pixels(), results[i].Pixels())
	}
}

func TestOverlayFinalIsOverlay(t *testing.T) {
	a := NewBufFilled[Rgb8](2, 2, Rgb8{0, 0, 0})
	b := NewBufFilled[Rgb8](2, 2, Rgb8{0, 0, 0})
	src := NewBufFilled[Rgba8](2, 2, Rgba8{10, 20, 30, 128})

	Overlay(a, src, 0, 0)
	OverlayFinal(b, src, 0, 0)

	assert.Equal(t, a.Pixels(), b.Pixels())
}
