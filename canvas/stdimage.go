package canvas

import (
	"image"
	"image/color"
)

// FromImage copies a standard library image.Image (as decoded by
// image/png when loading block textures, SPEC_FULL.md §4.2) into a
// Buf[Rgba8]. Source pixels are converted via color.RGBAModel, matching
// the teacher's texture-loading path of decoding PNGs with the stdlib
// image package and then working in a project-local pixel type.
func FromImage(src image.Image) *Buf[Rgba8] {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := NewBuf[Rgba8](w, h)
	for y := 0; y < h; y++ {
		row := out.Row(y)
		for x := 0; x < w; x++ {
			r, g, bl, a := src.At(b.Min.X+x, b.Min.Y+y).RGBA()
			row[x] = Rgba8{uint8(r >> 8), uint8(g >> 8), uint8(bl >> 8), uint8(a >> 8)}
		}
	}
	return out
}

// ToImage wraps an Image[Rgba8] as a standard library image.Image, for
// handing rendered tiles to image/png.Encode.
func ToImage(src Image[Rgba8]) image.Image {
	return &stdImageAdapter{src: src}
}

type stdImageAdapter struct {
	src Image[Rgba8]
}

func (a *stdImageAdapter) ColorModel() color.Model { return color.RGBAModel }

func (a *stdImageAdapter) Bounds() image.Rectangle {
	return image.Rect(0, 0, a.src.Width(), a.src.Height())
}

func (a *stdImageAdapter) At(x, y int) color.Color {
	p, ok := a.src.GetPixel(x, y)
	if !ok {
		return color.RGBA{}
	}
	return color.RGBA{R: p[0], G: p[1], B: p[2], A: p[3]}
}

// ToImageRgb wraps an Image[Rgb8] (an opaque composed tile, post-final
// overlay) as a standard library image.Image.
func ToImageRgb(src Image[Rgb8]) image.Image {
	return &stdImageRgbAdapter{src: src}
}

type stdImageRgbAdapter struct {
	src Image[Rgb8]
}

func (a *stdImageRgbAdapter) ColorModel() color.Model { return color.RGBAModel }

func (a *stdImageRgbAdapter) Bounds() image.Rectangle {
	return image.Rect(0, 0, a.src.Width(), a.src.Height())
}

func (a *stdImageRgbAdapter) At(x, y int) color.Color {
	p, ok := a.src.GetPixel(x, y)
	if !ok {
		return color.RGBA{}
	}
	return color.RGBA{R: p[0], G: p[1], B: p[2], A: 255}
}
