package canvas

// blendRowScalar processes one pixel per iteration. This is the
// reference kernel every tier must agree with bit-for-bit (spec.md §8
// item 2's SIMD/scalar parity test).
func blendRowScalar(dst []Rgb8, src []Rgba8) {
	n := len(dst)
	if len(src) < n {
		n = len(src)
	}
	for i := 0; i < n; i++ {
		dst[i] = blendPixel(src[i], dst[i])
	}
}
