package interp

import (
	"github.com/tphakala/go-audio-interp/internal/simdops"
)

// Common sample rates for convenience functions.
const (
	// RateCD is the CD quality sample rate (Red Book standard).
	RateCD = 44100

	// RateDAT is the DAT/DVD sample rate.
	RateDAT = 48000

	// RateHiRes96 is the high-resolution 2x DAT sample rate.
	RateHiRes96 = 96000

	// RatePAL is the Amiga PAL Paula clock in Hz. A channel playing at
	// period p runs at RatePAL / (2*p) samples per second.
	RatePAL = 7093789.2
)

// ResampleMono is a convenience function for one-shot mono resampling.
// It creates a resampler, processes the input, flushes, and returns the result.
func ResampleMono(input []float64, inputRate, outputRate float64, method Method) ([]float64, error) {
	r, err := New(&Config{
		InputRate:  inputRate,
		OutputRate: outputRate,
		Channels:   1,
		Method:     method,
	})
	if err != nil {
		return nil, err
	}

	output, err := r.Process(input)
	if err != nil {
		return nil, err
	}

	flushed, err := r.Flush()
	if err != nil {
		return nil, err
	}

	return append(output, flushed...), nil
}

// ResampleStereo is a convenience function for one-shot stereo resampling.
// Both channels are processed concurrently.
func ResampleStereo(left, right []float64, inputRate, outputRate float64, method Method) (leftOut, rightOut []float64, err error) {
	r, err := New(&Config{
		InputRate:      inputRate,
		OutputRate:     outputRate,
		Channels:       stereoChannels,
		Method:         method,
		EnableParallel: true,
	})
	if err != nil {
		return nil, nil, err
	}

	out, err := r.ProcessMulti([][]float64{left, right})
	if err != nil {
		return nil, nil, err
	}

	flushed, err := r.FlushMulti()
	if err != nil {
		return nil, nil, err
	}

	return append(out[0], flushed[0]...), append(out[1], flushed[1]...), nil
}

// InterleaveToStereo converts two mono channels to interleaved stereo.
// Output format: [L0, R0, L1, R1, L2, R2, ...]
func InterleaveToStereo(left, right []float64) []float64 {
	minLen := min(len(left), len(right))
	result := make([]float64, minLen*stereoChannels)
	simdops.Float64Ops().Interleave2(result, left[:minLen], right[:minLen])
	return result
}

// DeinterleaveFromStereo converts interleaved stereo to two mono channels.
// Input format: [L0, R0, L1, R1, L2, R2, ...]
func DeinterleaveFromStereo(interleaved []float64) (left, right []float64) {
	numSamples := len(interleaved) / stereoChannels
	left = make([]float64, numSamples)
	right = make([]float64, numSamples)
	simdops.Float64Ops().Deinterleave2(left, right, interleaved)
	return left, right
}
