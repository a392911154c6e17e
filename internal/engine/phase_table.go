package engine

import (
	"fmt"
	"math"

	"github.com/tphakala/go-audio-interp/internal/simdops"
)

// PhaseTable holds kernel weights precomputed at evenly spaced phases.
//
// Row p holds the weights for x = p/phases, so that
// Interpolate(w, p/phases) == dot(w, Weights(p)). Between phases the
// nearest row is used, which trades accuracy for a single SIMD dot product.
type PhaseTable[F simdops.Float] struct {
	phases  int
	taps    int
	weights []F // phases rows of taps weights
	ops     *simdops.Ops[F]
}

// NewPhaseTable tabulates kernel k at the given number of phases.
// The weights are obtained by feeding unit impulses through the kernel,
// which is exact for any kernel that is linear in the samples.
func NewPhaseTable[F simdops.Float](k Kernel[F], phases int) (*PhaseTable[F], error) {
	if phases < 1 {
		return nil, fmt.Errorf("phase table needs at least 1 phase, got %d", phases)
	}

	taps := k.Taps()
	t := &PhaseTable[F]{
		phases:  phases,
		taps:    taps,
		weights: make([]F, phases*taps),
		ops:     simdops.For[F](),
	}

	impulse := make([]F, taps)
	for p := range phases {
		x := F(p) / F(phases)
		row := t.weights[p*taps : (p+1)*taps]
		for j := range taps {
			impulse[j] = 1
			row[j] = k.Interpolate(impulse, x)
			impulse[j] = 0
		}
	}

	return t, nil
}

// Phases returns the number of tabulated phases.
func (t *PhaseTable[F]) Phases() int {
	return t.phases
}

// Taps returns the window size.
func (t *PhaseTable[F]) Taps() int {
	return t.taps
}

// Weights returns the weights for phase p. The slice aliases the table.
func (t *PhaseTable[F]) Weights(p int) []F {
	return t.weights[p*t.taps : (p+1)*t.taps]
}

// Phase returns the table row nearest to x, with x reduced to [0,1).
// x at or above (phases-0.5)/phases belongs to phase 0 of the next sample,
// which a fixed window cannot reach, so it is clamped to the last row.
//
// Phase and Interpolate are for analysis and benchmarks. Playback and
// rendering evaluate the kernel directly.
func (t *PhaseTable[F]) Phase(x F) int {
	frac := float64(x) - math.Floor(float64(x))
	p := int(frac*float64(t.phases) + roundHalf)
	if p >= t.phases {
		p = t.phases - 1
	}
	return p
}

// Interpolate evaluates the window at the phase nearest to x. Near x = 1 it
// carries the last-row bias described on Phase.
func (t *PhaseTable[F]) Interpolate(w []F, x F) F {
	return t.ops.DotProductUnsafe(w[:t.taps], t.Weights(t.Phase(x)))
}

// DCGain returns the sum of the weights at phase p.
func (t *PhaseTable[F]) DCGain(p int) F {
	return t.ops.Sum(t.Weights(p))
}
