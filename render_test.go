package interp

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-audio-interp/internal/testutil"
)

func TestInterpolateAt(t *testing.T) {
	src := []float64{0, 0, 0, 1, 0, 0, 0, 0}
	y, err := InterpolateAt(src, 3, MethodOptimal32x, EdgeZero)
	require.NoError(t, err)
	assert.InDelta(t, 0.5255891612853675, y, testutil.ExactTolerance)

	_, err = InterpolateAt(src, 3, Method(50), EdgeZero)
	require.Error(t, err)
}

func TestRenderParallelMatchesSequential(t *testing.T) {
	src := testutil.Sine(20000, 1.0/64)
	const (
		start = 0.5
		step  = 0.73
	)

	want := make([]float64, 25000)
	for i := range want {
		y, err := InterpolateAt(src, start+float64(i)*step, MethodOptimal32x, EdgeClamp)
		require.NoError(t, err)
		want[i] = y
	}

	for _, workers := range []int{0, 1, 3, 8} {
		got := make([]float64, len(want))
		err := RenderParallel(context.Background(), got, src, start, step, MethodOptimal32x, EdgeClamp, workers)
		require.NoError(t, err)
		assert.Equal(t, want, got, "workers=%d", workers)
	}
}

func TestRenderParallelFloat32(t *testing.T) {
	src := []float32{1, 1, 1, 1, 1, 1, 1, 1}
	dst := make([]float32, 100)
	err := RenderParallelFloat32(context.Background(), dst, src, 0, 0.07, MethodHermite, EdgeClamp, 2)
	require.NoError(t, err)
	for _, v := range dst {
		assert.InDelta(t, 1.0, float64(v), testutil.Float32Tolerance)
	}
}

func TestRenderParallelCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dst := make([]float64, 100000)
	err := RenderParallel(ctx, dst, []float64{1, 2, 3}, 0, 0.01, MethodOptimal32x, EdgeWrap, 4)
	require.ErrorIs(t, err, context.Canceled)
}

func TestRenderParallelInvalidMethod(t *testing.T) {
	err := RenderParallel(context.Background(), make([]float64, 4), []float64{1}, 0, 1, Method(-1), EdgeZero, 1)
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestRenderParallelEmpty(t *testing.T) {
	require.NoError(t, RenderParallel(context.Background(), nil, nil, 0, 1, MethodLinear, EdgeZero, 4))
}

func TestRenderParallelNonFinitePositions(t *testing.T) {
	src := testutil.Sine(256, 1.0/32)
	for _, edge := range []Edge{EdgeZero, EdgeClamp, EdgeWrap} {
		for _, start := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), 1e19} {
			y, err := InterpolateAt(src, start, MethodOptimal32x, edge)
			require.NoError(t, err)
			assert.True(t, math.IsNaN(y), "edge=%s pos=%g", edge, start)

			dst := make([]float64, 10000)
			err = RenderParallel(context.Background(), dst, src, start, 0.5, MethodOptimal32x, edge, 4)
			require.NoError(t, err)
			assert.True(t, math.IsNaN(dst[0]))
			assert.True(t, math.IsNaN(dst[len(dst)-1]))
		}
	}
}

func BenchmarkRenderParallel(b *testing.B) {
	src := testutil.Sine(1<<16, 1.0/64)
	dst := make([]float64, 1<<18)
	ctx := context.Background()

	b.ReportAllocs()
	for b.Loop() {
		_ = RenderParallel(ctx, dst, src, 0, 0.25, MethodOptimal32x, EdgeWrap, 0)
	}
}
