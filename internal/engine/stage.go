package engine

import (
	"fmt"
	"math"

	"github.com/tphakala/go-audio-interp/internal/simdops"
)

// Stage resamples a continuous stream at a fixed ratio using a Kernel.
//
// Output sample j is the reconstruction at input position j/ratio, so the
// output is time-aligned with the input. The stage holds back Taps()/2
// samples of look-ahead; Flush releases them by feeding silence.
// A Stage is not safe for concurrent use.
type Stage[F simdops.Float] struct {
	kernel Kernel[F]
	ratio  float64
	taps   int
	half   int

	history  []F   // last taps input samples, oldest first
	inCount  int64 // input samples pushed so far
	outCount int64 // output samples produced so far
}

// NewStage creates a streaming stage. ratio is output rate / input rate.
func NewStage[F simdops.Float](k Kernel[F], ratio float64) (*Stage[F], error) {
	if k == nil {
		return nil, fmt.Errorf("stage needs a kernel")
	}
	if ratio <= 0 || math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return nil, fmt.Errorf("invalid stage ratio %v", ratio)
	}

	taps := k.Taps()
	return &Stage[F]{
		kernel:  k,
		ratio:   ratio,
		taps:    taps,
		half:    taps / windowHalfDivisor,
		history: make([]F, taps),
	}, nil
}

// Process pushes input through the stage and returns the outputs that
// became computable.
func (s *Stage[F]) Process(input []F) ([]F, error) {
	if len(input) == 0 {
		return []F{}, nil
	}

	outputSize := int(math.Ceil(float64(len(input))*s.ratio)) + 1
	output := make([]F, 0, outputSize)

	for _, sample := range input {
		output = s.push(output, sample)
	}

	return output, nil
}

// push shifts one sample into the window and appends every output whose
// position falls inside the window's centre interval.
func (s *Stage[F]) push(output []F, sample F) []F {
	copy(s.history, s.history[1:])
	s.history[s.taps-1] = sample
	s.inCount++

	// y0 of the current window sits at input index base.
	base := s.inCount - 1 - int64(s.half)
	if base < 0 {
		return output
	}
	limit := float64(base + 1)

	for {
		pos := float64(s.outCount) / s.ratio
		if pos >= limit {
			break
		}
		x := pos - float64(base)
		output = append(output, s.kernel.Interpolate(s.history, F(x)))
		s.outCount++
	}

	return output
}

// Flush drains the look-ahead and resets the stage for a new stream.
func (s *Stage[F]) Flush() ([]F, error) {
	if s.inCount == 0 {
		return []F{}, nil
	}

	output := make([]F, 0, int(math.Ceil(float64(s.half)*s.ratio))+1)
	for range s.half {
		output = s.push(output, 0)
	}

	s.Reset()
	return output, nil
}

// Reset clears internal state.
func (s *Stage[F]) Reset() {
	clear(s.history)
	s.inCount = 0
	s.outCount = 0
}

// GetRatio returns the stage's resampling ratio.
func (s *Stage[F]) GetRatio() float64 {
	return s.ratio
}

// GetLatency returns the look-ahead held back before output, in input samples.
func (s *Stage[F]) GetLatency() int {
	return s.half
}

// GetTaps returns the kernel window size.
func (s *Stage[F]) GetTaps() int {
	return s.taps
}

// Kernel returns the stage's kernel.
func (s *Stage[F]) Kernel() Kernel[F] {
	return s.kernel
}
