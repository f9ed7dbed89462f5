package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufGetSetPixel(t *testing.T) {
	b := NewBuf[Rgb8](4, 3)
	ok := b.SetPixel(2, 1, Rgb8{7, 8, 9})
	assert.True(t, ok)

	p, ok := b.GetPixel(2, 1)
	assert.True(t, ok)
	assert.Equal(t, Rgb8{7, 8, 9}, p)

	_, ok = b.GetPixel(4, 0)
	assert.False(t, ok)
	_, ok = b.GetPixel(0, 3)
	assert.False(t, ok)
	assert.False(t, b.SetPixel(-1, 0, Rgb8{}))
}

func TestBufRowIsBackedByBuffer(t *testing.T) {
	b := NewBuf[Rgb8](3, 2)
	row := b.RowMut(1)
	row[0] = Rgb8{1, 1, 1}

	p, _ := b.GetPixel(0, 1)
	assert.Equal(t, Rgb8{1, 1, 1}, p)
}

func TestNewBufFromRejectsTooSmall(t *testing.T) {
	_, err := NewBufFrom[Rgb8](4, 4, make([]Rgb8, 4))
	assert.Error(t, err)
}

func TestViewClampsToRoot(t *testing.T) {
	b := NewBuf[Rgb8](10, 10)
	v := NewView[Rgb8](b, 8, 8, 10, 10)
	assert.Equal(t, 2, v.Width())
	assert.Equal(t, 2, v.Height())
}

func TestViewNegativeOriginClamps(t *testing.T) {
	b := NewBuf[Rgb8](10, 10)
	v := NewView[Rgb8](b, -5, -5, 8, 8)
	assert.Equal(t, 3, v.Width())
	assert.Equal(t, 3, v.Height())
}

func TestViewOfViewCollapses(t *testing.T) {
	b := NewBuf[Rgb8](10, 10)
	b.SetPixel(5, 5, Rgb8{42, 42, 42})

	outer := NewView[Rgb8](b, 2, 2, 8, 8)
	inner := NewView[Rgb8](outer, 1, 1, 8, 8)

	p, ok := inner.GetPixel(2, 2)
	assert.True(t, ok)
	assert.Equal(t, Rgb8{42, 42, 42}, p)
}

func TestViewMutWritesThroughToRoot(t *testing.T) {
	b := NewBuf[Rgb8](5, 5)
	v := NewViewMut[Rgb8](b, 1, 1, 3, 3)
	assert.True(t, v.SetPixel(0, 0, Rgb8{9, 9, 9}))

	p, _ := b.GetPixel(1, 1)
	assert.Equal(t, Rgb8{9, 9, 9}, p)
}

func TestViewMutRowMut(t *testing.T) {
	b := NewBuf[Rgb8](5, 5)
	v := NewViewMut[Rgb8](b, 1, 1, 3, 3)
	row := v.RowMut(0)
	row[0] = Rgb8{3, 3, 3}

	p, _ := b.GetPixel(1, 1)
	assert.Equal(t, Rgb8{3, 3, 3}, p)
}
