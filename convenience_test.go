package interp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-audio-interp/internal/testutil"
)

// TestResampleMonoLength verifies that a flushed stream yields ceil(N*ratio) samples.
func TestResampleMonoLength(t *testing.T) {
	tests := []struct {
		name       string
		inputRate  float64
		outputRate float64
		method     Method
	}{
		{"CD_to_DAT_Optimal", RateCD, RateDAT, MethodOptimal32x},
		{"DAT_to_CD_Optimal", RateDAT, RateCD, MethodOptimal32x},
		{"2x_Upsample_Hermite", RateDAT, RateHiRes96, MethodHermite},
		{"2x_Downsample_Linear", RateHiRes96, RateDAT, MethodLinear},
	}

	const numSamples = 4410
	input := testutil.Sine(numSamples, 1000.0/RateCD)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := ResampleMono(input, tt.inputRate, tt.outputRate, tt.method)
			require.NoError(t, err)

			want := int(math.Ceil(numSamples * tt.outputRate / tt.inputRate))
			assert.Len(t, output, want)
			testutil.AssertNoNaNOrInf(t, output)
		})
	}
}

func TestResampleMonoInvalid(t *testing.T) {
	_, err := ResampleMono([]float64{1, 2}, 0, RateDAT, MethodOptimal32x)
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestResampleStereo(t *testing.T) {
	left := testutil.Sine(2000, 0.01)
	right := make([]float64, len(left))
	for i, v := range left {
		right[i] = -v
	}

	leftOut, rightOut, err := ResampleStereo(left, right, RateCD, RateDAT, MethodOptimal32x)
	require.NoError(t, err)
	require.Len(t, rightOut, len(leftOut))

	for i := range leftOut {
		assert.InDelta(t, -leftOut[i], rightOut[i], testutil.ExactTolerance)
	}

	mono, err := ResampleMono(left, RateCD, RateDAT, MethodOptimal32x)
	require.NoError(t, err)
	assert.Equal(t, mono, leftOut)
}

func TestInterleaveDeinterleave(t *testing.T) {
	left := []float64{1, 2, 3, 4}
	right := []float64{-1, -2, -3}

	interleaved := InterleaveToStereo(left, right)
	assert.Equal(t, []float64{1, -1, 2, -2, 3, -3}, interleaved)

	l, r := DeinterleaveFromStereo(interleaved)
	assert.Equal(t, left[:3], l)
	assert.Equal(t, right, r)
}

func TestDeinterleaveOddLength(t *testing.T) {
	l, r := DeinterleaveFromStereo([]float64{1, 2, 3})
	assert.Equal(t, []float64{1}, l)
	assert.Equal(t, []float64{2}, r)
}
