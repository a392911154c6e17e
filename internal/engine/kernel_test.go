package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-audio-interp/internal/testutil"
)

func TestParseMethod(t *testing.T) {
	testCases := []struct {
		in   string
		want Method
	}{
		{"optimal32x", MethodOptimal32x},
		{"Optimal", MethodOptimal32x},
		{"", MethodOptimal32x},
		{"hermite", MethodHermite},
		{"cubic", MethodHermite},
		{" linear ", MethodLinear},
	}

	for _, tc := range testCases {
		got, err := ParseMethod(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	_, err := ParseMethod("sinc")
	require.ErrorIs(t, err, ErrUnknownMethod)
}

func TestMethodStringRoundTrip(t *testing.T) {
	for _, m := range []Method{MethodOptimal32x, MethodHermite, MethodLinear} {
		parsed, err := ParseMethod(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
	}
	assert.Equal(t, "method(42)", Method(42).String())
}

func TestNewKernelTaps(t *testing.T) {
	testCases := []struct {
		method Method
		taps   int
	}{
		{MethodOptimal32x, 6},
		{MethodHermite, 4},
		{MethodLinear, 2},
	}

	for _, tc := range testCases {
		k, err := NewKernel[float64](tc.method)
		require.NoError(t, err)
		assert.Equal(t, tc.taps, k.Taps(), tc.method.String())
		assert.Equal(t, tc.method.String(), k.Name())
	}

	_, err := NewKernel[float32](Method(99))
	require.ErrorIs(t, err, ErrUnknownMethod)
}

func TestOptimalKernelMatchesFunction(t *testing.T) {
	k := OptimalKernel[float64]{}
	rng := testutil.NewRand(10)
	for range 100 {
		w := testutil.RandomWindow(rng)
		x := rng.Float64()
		assert.Equal(t, optimal(x, w), k.Interpolate(w[:], x))
	}
}

func TestHermiteKernelPassesThroughSamples(t *testing.T) {
	k := HermiteKernel[float64]{}
	w := []float64{0.5, 0.9, 0.7, 0.3}

	assert.InDelta(t, 0.9, k.Interpolate(w, 0), testutil.ExactTolerance)
	assert.InDelta(t, 0.7, k.Interpolate(w, 1), testutil.ExactTolerance)

	ramp := []float64{1, 2, 3, 4}
	assert.InDelta(t, 2.25, k.Interpolate(ramp, 0.25), testutil.ExactTolerance)
}

func TestLinearKernel(t *testing.T) {
	k := LinearKernel[float32]{}
	w := []float32{1, 3}

	assert.InDelta(t, 1.0, float64(k.Interpolate(w, 0)), testutil.Float32Tolerance)
	assert.InDelta(t, 2.0, float64(k.Interpolate(w, 0.5)), testutil.Float32Tolerance)
	assert.InDelta(t, 2.5, float64(k.Interpolate(w, 0.75)), testutil.Float32Tolerance)
}

// TestKernelsDCFidelity checks every kernel reproduces a constant signal.
func TestKernelsDCFidelity(t *testing.T) {
	for _, m := range []Method{MethodOptimal32x, MethodHermite, MethodLinear} {
		k, err := NewKernel[float64](m)
		require.NoError(t, err)

		w := make([]float64, k.Taps())
		for i := range w {
			w[i] = -3.25
		}
		for i := 0; i <= 10; i++ {
			x := float64(i) / 10
			assert.InDelta(t, -3.25, k.Interpolate(w, x), testutil.ExactTolerance, "%s x=%.1f", m, x)
		}
	}
}
