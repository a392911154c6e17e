package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-audio-interp/internal/testutil"
)

func optimal(x float64, w [6]float64) float64 {
	return Optimal32x(x, w[0], w[1], w[2], w[3], w[4], w[5])
}

// TestOptimal32xImpulseBaseline records the response to a unit impulse at y0.
func TestOptimal32xImpulseBaseline(t *testing.T) {
	impulse := [6]float64{0, 0, 1, 0, 0, 0}

	testCases := []struct {
		x    float64
		want float64
	}{
		{0.0, 0.5255891612853675},
		{0.25, 0.49919664197983243},
		{0.5, 0.4268598340937938},
		{0.75, 0.3277224217639634},
	}

	got := make([]float64, 0, len(testCases))
	for _, tc := range testCases {
		y := optimal(tc.x, impulse)
		assert.InDelta(t, tc.want, y, testutil.ExactTolerance, "x=%.2f", tc.x)
		got = append(got, y)
	}

	// Bump peaks at x=0 and falls off smoothly towards y1.
	testutil.AssertMonotonicDecreasing(t, got)
	for _, y := range got {
		testutil.AssertInRange(t, y, 0, 1)
	}
}

// TestOptimal32xImpulseAtY1Baseline records the mirrored bump for (0,0,0,1,0,0).
func TestOptimal32xImpulseAtY1Baseline(t *testing.T) {
	impulse := [6]float64{0, 0, 0, 1, 0, 0}

	testCases := []struct {
		x    float64
		want float64
	}{
		{0.0, 0.22483460163349048},
		{0.25, 0.3277224217639634},
		{0.5, 0.4268598340937938},
		{0.75, 0.49919664197983243},
	}

	for _, tc := range testCases {
		assert.InDelta(t, tc.want, optimal(tc.x, impulse), testutil.ExactTolerance, "x=%.2f", tc.x)
	}
}

// TestOptimal32xNotInterpolating checks the value at x=0 is not forced to y0.
func TestOptimal32xNotInterpolating(t *testing.T) {
	impulse := [6]float64{0, 0, 1, 0, 0, 0}
	y := optimal(0, impulse)
	assert.Greater(t, math.Abs(y-1), 0.4, "approximating kernel must not pass through the sample")
}

func TestOptimal32xConstantWindow(t *testing.T) {
	for i := 0; i <= 100; i++ {
		x := float64(i) / 100
		y := Optimal32x(x, 5.0, 5.0, 5.0, 5.0, 5.0, 5.0)
		assert.InDelta(t, 5.0, y, testutil.ExactTolerance, "x=%.2f", x)
	}
}

func TestOptimal32xLinearRamp(t *testing.T) {
	ramp := [6]float64{-2, -1, 0, 1, 2, 3}
	for i := 0; i <= 20; i++ {
		x := float64(i) / 20
		assert.InDelta(t, x, optimal(x, ramp), 1e-9, "x=%.2f", x)
	}
}

func TestOptimal32xDeterminism(t *testing.T) {
	rng := testutil.NewRand(1)
	for range 100 {
		w := testutil.RandomWindow(rng)
		x := rng.Float64()
		first := optimal(x, w)
		for range 5 {
			assert.Equal(t, first, optimal(x, w))
		}
	}
}

func TestOptimal32xTimeReversalSymmetry(t *testing.T) {
	rng := testutil.NewRand(2)
	for range 500 {
		w := testutil.RandomWindow(rng)
		mirrored := [6]float64{w[5], w[4], w[3], w[2], w[1], w[0]}
		x := rng.Float64()

		assert.InDelta(t, optimal(x, w), optimal(1-x, mirrored), testutil.ExactTolerance)
	}
}

func TestOptimal32xLinearity(t *testing.T) {
	rng := testutil.NewRand(3)
	for range 500 {
		u := testutil.RandomWindow(rng)
		v := testutil.RandomWindow(rng)
		a := rng.Float64()*20 - 10
		b := rng.Float64()*20 - 10
		x := rng.Float64()

		var combined [6]float64
		for i := range combined {
			combined[i] = a*u[i] + b*v[i]
		}

		want := a*optimal(x, u) + b*optimal(x, v)
		assert.InDelta(t, want, optimal(x, combined), testutil.DefaultTolerance)
	}
}

// TestOptimal32xContinuity bounds the change in output by the kernel's
// Lipschitz constant (about 1.74 per unit amplitude over [0,1]).
func TestOptimal32xContinuity(t *testing.T) {
	const (
		step      = 1e-4
		lipschitz = 2.0
	)

	rng := testutil.NewRand(4)
	for range 50 {
		w := testutil.RandomWindow(rng)
		maxAbs := 0.0
		for _, v := range w {
			maxAbs = max(maxAbs, math.Abs(v))
		}

		prev := optimal(0, w)
		for x := step; x < 1; x += step {
			y := optimal(x, w)
			require.LessOrEqual(t, math.Abs(y-prev), lipschitz*step*maxAbs+testutil.ExactTolerance,
				"jump at x=%f", x)
			prev = y
		}
	}
}

// TestOptimal32xSamplePointError bounds |y(0)-y0| for sines inside the
// 32x oversampled band. The error is the filter's passband droop.
func TestOptimal32xSamplePointError(t *testing.T) {
	testCases := []struct {
		freq  float64
		bound float64
	}{
		{1.0 / 256, 2.5e-4},
		{1.0 / 128, 1e-3},
		{1.0 / 64, 3e-3},
	}

	for _, tc := range testCases {
		worst := 0.0
		for k := range 200 {
			w := testutil.SineWindow(tc.freq, float64(k)*0.0137)
			worst = max(worst, math.Abs(optimal(0, w)-w[2]))
		}
		assert.Greater(t, worst, 0.0, "freq=%f: error should be small but not zero", tc.freq)
		assert.LessOrEqual(t, worst, tc.bound, "freq=%f", tc.freq)
	}
}

func TestOptimal32xInteriorError(t *testing.T) {
	const freq = 1.0 / 64
	worst := 0.0
	for k := range 50 {
		phase := float64(k) * 0.1
		w := testutil.SineWindow(freq, phase)
		for j := 0; j <= 10; j++ {
			x := float64(j) / 10
			want := math.Sin(2*math.Pi*freq*x + phase)
			worst = max(worst, math.Abs(optimal(x, w)-want))
		}
	}
	assert.LessOrEqual(t, worst, 3e-3)
}

func TestOptimal32xFloat32(t *testing.T) {
	rng := testutil.NewRand(5)
	for range 200 {
		w := testutil.RandomWindow(rng)
		x := rng.Float64()

		want := optimal(x, w)
		got := Optimal32x(float32(x),
			float32(w[0]), float32(w[1]), float32(w[2]),
			float32(w[3]), float32(w[4]), float32(w[5]))
		assert.InDelta(t, want, float64(got), testutil.Float32Tolerance)
	}

	assert.InDelta(t, 5.0, float64(Optimal32x[float32](0.3, 5, 5, 5, 5, 5, 5)), testutil.Float32Tolerance)
}

func TestOptimal32xNonFinitePropagates(t *testing.T) {
	nan := math.NaN()
	assert.True(t, math.IsNaN(Optimal32x(0.5, 0, 0, nan, 0, 0, 0)))
	assert.True(t, math.IsNaN(Optimal32x(nan, 1, 2, 3, 4, 5, 6)))

	inf := math.Inf(1)
	y := Optimal32x(0.5, 0, 0, inf, 0, 0, 0)
	assert.True(t, math.IsNaN(y) || math.IsInf(y, 0), "non-finite input must not produce a finite value")
}

func TestOptimal32xExtrapolates(t *testing.T) {
	w := [6]float64{0.3, -0.2, 0.9, 0.1, -0.5, 0.4}
	for _, x := range []float64{-1, -0.5, 1.5, 2, 10} {
		y := optimal(x, w)
		assert.False(t, math.IsNaN(y), "x=%f", x)
	}
	// x=1 on this window continues the same polynomial
	assert.InDelta(t, 0.14496612114471055, optimal(1, w), testutil.ExactTolerance)
}
