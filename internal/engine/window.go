package engine

import (
	"fmt"
	"math"

	"github.com/tphakala/go-audio-interp/internal/simdops"
)

// MaxTaps is the largest window any kernel in this package uses.
const MaxTaps = optimalInterpolationPoints

// Edge decides which value a window receives for indices outside the source.
type Edge int

const (
	// EdgeZero treats samples outside the source as silence.
	EdgeZero Edge = iota

	// EdgeClamp repeats the first and last sample.
	EdgeClamp

	// EdgeWrap treats the source as one period of a periodic signal.
	EdgeWrap
)

// String returns the edge policy name.
func (e Edge) String() string {
	switch e {
	case EdgeZero:
		return "zero"
	case EdgeClamp:
		return "clamp"
	case EdgeWrap:
		return "wrap"
	default:
		return fmt.Sprintf("edge(%d)", int(e))
	}
}

// WindowStart returns the source index of the first window sample when
// interpolating between n and n+1 with a window of the given size.
func WindowStart(n, taps int) int {
	return n - taps/windowHalfDivisor + 1
}

// GatherWindow fills dst with the len(dst) samples around the interval
// [n, n+1], resolving out-of-range indices with edge.
func GatherWindow[F simdops.Float](dst, src []F, n int, edge Edge) {
	first := WindowStart(n, len(dst))
	if first >= 0 && first <= len(src)-len(dst) {
		copy(dst, src[first:first+len(dst)])
		return
	}

	for i := range dst {
		dst[i] = sampleAt(src, first+i, edge)
	}
}

func sampleAt[F simdops.Float](src []F, idx int, edge Edge) F {
	size := len(src)
	if size == 0 {
		return 0
	}
	if idx >= 0 && idx < size {
		return src[idx]
	}

	switch edge {
	case EdgeClamp:
		if idx < 0 {
			return src[0]
		}
		return src[size-1]
	case EdgeWrap:
		idx %= size
		if idx < 0 {
			idx += size
		}
		return src[idx]
	default:
		return 0
	}
}

// maxPosition bounds the positions that can be addressed. Beyond 2^53 a
// float64 has no fractional part left and int conversion may overflow.
const maxPosition = 1 << 53

// splitPosition returns the integer sample index and fractional offset of pos.
// ok is false for NaN, infinities and positions outside ±maxPosition.
func splitPosition(pos float64) (n int, x float64, ok bool) {
	if !(math.Abs(pos) <= maxPosition) {
		return 0, 0, false
	}
	f := math.Floor(pos)
	return int(f), pos - f, true
}

// InterpolateAt returns the kernel's reconstruction of src at real position pos.
// Positions that cannot be addressed yield NaN.
func InterpolateAt[F simdops.Float](k Kernel[F], src []F, pos float64, edge Edge) F {
	var buf [MaxTaps]F
	w := buf[:k.Taps()]

	n, x, ok := splitPosition(pos)
	if !ok {
		return F(math.NaN())
	}
	GatherWindow(w, src, n, edge)
	return k.Interpolate(w, F(x))
}

// RenderBlock fills dst[i] with the reconstruction of src at start+i*step.
// Positions are computed from the index rather than accumulated, so long
// blocks do not drift.
func RenderBlock[F simdops.Float](k Kernel[F], dst, src []F, start, step float64, edge Edge) {
	RenderRange(k, dst, src, start, step, 0, len(dst), edge)
}

// RenderRange is RenderBlock restricted to dst[lo:hi]. Disjoint ranges may
// be rendered concurrently and give the same result as one RenderBlock.
func RenderRange[F simdops.Float](k Kernel[F], dst, src []F, start, step float64, lo, hi int, edge Edge) {
	var buf [MaxTaps]F
	w := buf[:k.Taps()]

	for i := lo; i < hi; i++ {
		n, x, ok := splitPosition(start + float64(i)*step)
		if !ok {
			dst[i] = F(math.NaN())
			continue
		}
		GatherWindow(w, src, n, edge)
		dst[i] = k.Interpolate(w, F(x))
	}
}
