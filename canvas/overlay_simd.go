package canvas

import (
	"github.com/df-mc/atomic"
	"golang.org/x/sys/cpu"
)

// tierCache memoises the best OverlayTier this process's CPU supports,
// detected once via golang.org/x/sys/cpu and cached in a df-mc/atomic
// value so repeated Overlay calls on a hot render-tile path don't
// re-probe CPUID each call. Grounded on the teacher's own use of
// df-mc/atomic for process-wide cached state (server/world feature
// flags) and on original_source/mcrender/src/canvas/simd.rs's
// std::is_x86_feature_detected! gating, reimplemented as a Go analogue
// since there is no real assembly backing the two faster tiers here.
var tierCache atomic.Int32

const tierUnset = -1

func init() {
	tierCache.Store(tierUnset)
}

func selectedTier() OverlayTier {
	if v := tierCache.Load(); v != tierUnset {
		return OverlayTier(v)
	}
	t := detectTier()
	tierCache.Store(int32(t))
	return t
}

func detectTier() OverlayTier {
	if cpu.X86.HasAVX2 {
		return KernelAVX2
	}
	if cpu.X86.HasSSE42 {
		return KernelSSE4
	}
	return KernelScalar
}

// blendRowSSE4 processes pixels four at a time, matching what a real
// SSE4 kernel would vectorise over (4x32-bit lanes). The arithmetic is
// identical to blendRowScalar; only the unroll factor differs.
func blendRowSSE4(dst []Rgb8, src []Rgba8) {
	n := len(dst)
	if len(src) < n {
		n = len(src)
	}
	i := 0
	for ; i+4 <= n; i += 4 {
		dst[i+0] = blendPixel(src[i+0], dst[i+0])
		dst[i+1] = blendPixel(src[i+1], dst[i+1])
		dst[i+2] = blendPixel(src[i+2], dst[i+2])
		dst[i+3] = blendPixel(src[i+3], dst[i+3])
	}
	for ; i < n; i++ {
		dst[i] = blendPixel(src[i], dst[i])
	}
}

// blendRowAVX2 processes pixels eight at a time (8x32-bit lanes).
func blendRowAVX2(dst []Rgb8, src []Rgba8) {
	n := len(dst)
	if len(src) < n {
		n = len(src)
	}
	i := 0
	for ; i+8 <= n; i += 8 {
		dst[i+0] = blendPixel(src[i+0], dst[i+0])
		dst[i+1] = blendPixel(src[i+1], dst[i+1])
		dst[i+2] = blendPixel(src[i+2], dst[i+2])
		dst[i+3] = blendPixel(src[i+3], dst[i+3])
		dst[i+4] = blendPixel(src[i+4], dst[i+4])
		dst[i+5] = blendPixel(src[i+5], dst[i+5])
		dst[i+6] = blendPixel(src[i+6], dst[i+6])
		dst[i+7] = blendPixel(src[i+7], dst[i+7])
	}
	for ; i < n; i++ {
		dst[i] = blendPixel(src[i], dst[i])
	}
}
