// Package samplestore holds module samples as normalized floating-point
// signals and serves interpolation windows over them.
package samplestore

import (
	"errors"
	"fmt"
	"math"

	"github.com/tphakala/go-audio-interp/internal/engine"
	"github.com/tphakala/go-audio-interp/internal/mod"
)

// pcmScale maps signed 8-bit PCM to [-1, 1).
const pcmScale = 128.0

// ErrNoSample is returned for instrument numbers without sample data.
var ErrNoSample = errors.New("no such sample")

// Sample is one instrument as a float signal.
//
// Looping samples play Data[:LoopEnd] once and then repeat
// Data[LoopStart:LoopEnd]. One-shot samples are silent past the end.
type Sample struct {
	Name      string
	Data      []float64
	Volume    int
	Finetune  uint8
	LoopStart int
	LoopEnd   int
	Looped    bool
}

// NewSample converts a module sample.
func NewSample(s *mod.Sample) *Sample {
	out := &Sample{
		Name:     s.Name,
		Data:     make([]float64, len(s.Data)),
		Volume:   s.Volume,
		Finetune: s.Finetune,
		LoopEnd:  len(s.Data),
	}
	for i, v := range s.Data {
		out.Data[i] = float64(v) / pcmScale
	}

	if s.Looped() {
		out.Looped = true
		out.LoopStart = s.LoopStart
		out.LoopEnd = min(s.LoopStart+s.LoopLength, len(s.Data))
	}
	return out
}

// loopLen returns the loop length in samples.
func (s *Sample) loopLen() int {
	return s.LoopEnd - s.LoopStart
}

// index maps a playback index to a position in Data, or -1 for silence.
func (s *Sample) index(i int) int {
	switch {
	case i < 0:
		return -1
	case i < s.LoopEnd:
		return i
	case !s.Looped:
		return -1
	default:
		return s.LoopStart + (i-s.LoopStart)%s.loopLen()
	}
}

// Window fills dst with the samples around the interval [n, n+1] as the
// playback head sees them, so windows crossing the loop end continue at the
// loop start.
func (s *Sample) Window(dst []float64, n int) {
	first := engine.WindowStart(n, len(dst))
	last := first + len(dst) - 1

	switch {
	case last < s.LoopEnd:
		engine.GatherWindow(dst, s.Data[:s.LoopEnd], n, engine.EdgeZero)
	case s.Looped && first >= s.LoopStart:
		engine.GatherWindow(dst, s.Data[s.LoopStart:s.LoopEnd], n-s.LoopStart, engine.EdgeWrap)
	default:
		for i := range dst {
			if j := s.index(first + i); j >= 0 {
				dst[i] = s.Data[j]
			} else {
				dst[i] = 0
			}
		}
	}
}

// Advance moves a playback position forward by step and folds it back into
// the loop. It reports false once a one-shot sample has ended.
func (s *Sample) Advance(pos, step float64) (float64, bool) {
	pos += step
	end := float64(s.LoopEnd)
	if pos < end {
		return pos, true
	}
	if !s.Looped {
		return pos, false
	}

	start := float64(s.LoopStart)
	return start + math.Mod(pos-start, float64(s.loopLen())), true
}

// Store indexes samples by instrument number.
type Store struct {
	samples [mod.NumSamples]*Sample
}

// New converts every sample of m.
func New(m *mod.Module) *Store {
	st := &Store{}
	for i := range m.Samples {
		st.samples[i] = NewSample(&m.Samples[i])
	}
	return st
}

// Get returns the sample for instrument number 1..31.
func (st *Store) Get(instrument int) (*Sample, error) {
	if instrument < 1 || instrument > mod.NumSamples {
		return nil, fmt.Errorf("%w: instrument %d", ErrNoSample, instrument)
	}
	s := st.samples[instrument-1]
	if len(s.Data) == 0 {
		return nil, fmt.Errorf("%w: instrument %d is empty", ErrNoSample, instrument)
	}
	return s, nil
}
