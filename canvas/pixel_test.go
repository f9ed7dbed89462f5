package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRgbRgbaRoundTrip(t *testing.T) {
	p := Rgb8{10, 20, 30}
	rgba := p.ToRgba()
	assert.Equal(t, Rgba8{10, 20, 30, 255}, rgba)
	assert.Equal(t, p, rgba.ToRgb())
}

func TestU8F32RoundTrip(t *testing.T) {
	for _, v := range []uint8{0, 1, 127, 128, 254, 255} {
		got := F32ToU8(U8ToF32(v))
		if got != v {
			t.Errorf("U8ToF32/F32ToU8 round trip: %d -> %v -> %d", v, U8ToF32(v), got)
		}
	}
}

func TestF32ToU8Clamps(t *testing.T) {
	assert.Equal(t, uint8(0), F32ToU8(-1))
	assert.Equal(t, uint8(255), F32ToU8(2))
}

func TestRgba8ChannelsAliasesMemory(t *testing.T) {
	pixels := []Rgba8{{1, 2, 3, 4}, {5, 6, 7, 8}}
	chans := Rgba8Channels(pixels)
	assert.Equal(t, []uint8{1, 2, 3, 4, 5, 6, 7, 8}, chans)

	chans[0] = 99
	assert.Equal(t, uint8(99), pixels[0][0])
}

func TestChannelsRgba8IsInverse(t *testing.T) {
	chans := []uint8{1, 2, 3, 4, 5, 6, 7, 8}
	pixels := ChannelsRgba8(chans)
	assert.Equal(t, []Rgba8{{1, 2, 3, 4}, {5, 6, 7, 8}}, pixels)
}

func TestRgb8ChannelsRoundTrip(t *testing.T) {
	pixels := []Rgb8{{1, 2, 3}, {4, 5, 6}}
	chans := Rgb8Channels(pixels)
	assert.Equal(t, []uint8{1, 2, 3, 4, 5, 6}, chans)
	back := ChannelsRgb8(chans)
	assert.Equal(t, pixels, back)
}

func TestRgb8ToRgb32fToRgb8(t *testing.T) {
	p := Rgb8{0, 128, 255}
	got := Rgb32fToRgb8(Rgb8ToRgb32f(p))
	assert.Equal(t, p, got)
}
