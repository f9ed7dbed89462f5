package canvas

// MultiplyTint scales each RGB channel of p by the corresponding channel
// of tint, normalised to [0, 1], leaving alpha untouched. This is the
// per-pixel operation biome tinting (grass, leaves, water colour maps)
// composes with overlay, per spec.md §4.3's SolidUniform/Leaves/Grass
// rules and §8.3's tint test.
func MultiplyTint(p Rgba8, tint Rgb8) Rgba8 {
	return Rgba8{
		blendMultiply(p[0], tint[0]),
		blendMultiply(p[1], tint[1]),
		blendMultiply(p[2], tint[2]),
		p[3],
	}
}

func blendMultiply(c, t uint8) uint8 {
	num := uint16(c) * uint16(t)
	return uint8((num + ((num + 257) >> 8)) >> 8)
}

// MultiplyImage applies MultiplyTint to every pixel of src, writing the
// result into dst. src and dst must have equal dimensions; pixels beyond
// the smaller of the two are left untouched.
func MultiplyImage(dst ImageMut[Rgba8], src Image[Rgba8], tint Rgb8) {
	w, h := src.Width(), src.Height()
	if dw, dh := dst.Width(), dst.Height(); dw < w {
		w = dw
	} else if dh < h {
		h = dh
	}
	for y := 0; y < h; y++ {
		srcRow := src.Row(y)
		dstRow := dst.RowMut(y)
		if srcRow != nil && dstRow != nil && len(dstRow) >= w && len(srcRow) >= w {
			for x := 0; x < w; x++ {
				dstRow[x] = MultiplyTint(srcRow[x], tint)
			}
			continue
		}
		for x := 0; x < w; x++ {
			sp, ok := src.GetPixel(x, y)
			if !ok {
				continue
			}
			dst.SetPixel(x, y, MultiplyTint(sp, tint))
		}
	}
}
