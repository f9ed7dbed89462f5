package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMultiplyTintWhiteIsIdentity(t *testing.T) {
	p := Rgba8{10, 20, 30, 255}
	got := MultiplyTint(p, Rgb8{255, 255, 255})
	assert.Equal(t, p, got)
}

func TestMultiplyTintBlackZeroesRGB(t *testing.T) {
	p := Rgba8{10, 20, 30, 200}
	got := MultiplyTint(p, Rgb8{0, 0, 0})
	assert.Equal(t, Rgba8{0, 0, 0, 200}, got)
}

func TestMultiplyTintPreservesAlpha(t *testing.T) {
	p := Rgba8{100, 150, 200, 77}
	got := MultiplyTint(p, Rgb8{128, 128, 128})
	assert.Equal(t, uint8(77), got[3])
}

func TestMultiplyImageAppliesToEveryPixel(t *testing.T) {
	src := NewBufFilled[Rgba8](3, 3, Rgba8{255, 255, 255, 255})
	dst := NewBuf[Rgba8](3, 3)

	MultiplyImage(dst, src, Rgb8{0, 128, 255})

	p, _ := dst.GetPixel(1, 1)
	assert.Equal(t, Rgba8{0, 128, 255, 255}, p)
}
