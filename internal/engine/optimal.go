// Package engine implements the fractional interpolation kernels and the
// streaming and block renderers built on them.
package engine

import "github.com/tphakala/go-audio-interp/internal/simdops"

// Optimal 32x (6-point, 5th-order) interpolator coefficients, z-form.
// Even-indexed polynomial coefficients weight the symmetric sums of the
// three sample pairs, odd-indexed ones weight the differences.
// Pair 1 is (y0, y1), pair 2 is (yn1, y2), pair 3 is (yn2, y3).
const (
	c0Even1 = 0.42685983409379380
	c0Even2 = 0.07238123511170030
	c0Even3 = 0.00075893079450573

	c1Odd1 = 0.35831772348893259
	c1Odd2 = 0.20451644554758297
	c1Odd3 = 0.00562658797241955

	c2Even1 = -0.217009177221292431
	c2Even2 = 0.20051376594086157
	c2Even3 = 0.01649541128040211

	c3Odd1 = -0.25112715343740988
	c3Odd2 = 0.04223025992200458
	c3Odd3 = 0.02488727472995134

	c4Even1 = 0.04166946673533273
	c4Even2 = -0.06250420114356986
	c4Even3 = 0.02083473440841799

	c5Odd1 = 0.08349799235675044
	c5Odd2 = -0.04174912841630993
	c5Odd3 = 0.00834987866042734
)

// Optimal32x reconstructs the signal at fractional offset x past y0 from the
// six samples yn2..y3 at integer positions n-2..n+3.
//
// The coefficients were optimized for minimum error on 32x oversampled input,
// so the result at x=0 is close to y0 but not equal to it. x outside [0,1)
// extrapolates the same quintic.
func Optimal32x[F simdops.Float](x, yn2, yn1, y0, y1, y2, y3 F) F {
	z := x - optimalCenter

	even1, odd1 := y1+y0, y1-y0
	even2, odd2 := y2+yn1, y2-yn1
	even3, odd3 := y3+yn2, y3-yn2

	c0 := even1*c0Even1 + even2*c0Even2 + even3*c0Even3
	c1 := odd1*c1Odd1 + odd2*c1Odd2 + odd3*c1Odd3
	c2 := even1*c2Even1 + even2*c2Even2 + even3*c2Even3
	c3 := odd1*c3Odd1 + odd2*c3Odd2 + odd3*c3Odd3
	c4 := even1*c4Even1 + even2*c4Even2 + even3*c4Even3
	c5 := odd1*c5Odd1 + odd2*c5Odd2 + odd3*c5Odd3

	return ((((c5*z+c4)*z+c3)*z+c2)*z+c1)*z + c0
}
