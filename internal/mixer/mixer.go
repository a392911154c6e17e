// Package mixer plays modules: a row/tick sequencer drives four voices whose
// samples are reconstructed at arbitrary rates with an interpolation kernel.
package mixer

import (
	"errors"
	"fmt"
	"math"

	"github.com/tphakala/go-audio-interp/internal/engine"
	"github.com/tphakala/go-audio-interp/internal/mod"
	"github.com/tphakala/go-audio-interp/internal/samplestore"
	"github.com/tphakala/go-audio-interp/internal/simdops"
)

// Playback defaults.
const (
	// PALClock is the Amiga PAL Paula clock in Hz.
	PALClock = 7093789.2

	// DefaultGain keeps four full-scale voices on two outputs from clipping.
	DefaultGain = 0.5

	defaultSpeed = 6
	defaultBPM   = 125
	maxVolume    = 64
	maxSpeed     = 32 // Fxx below this sets ticks per row, otherwise BPM

	// tickScale is samples per tick times BPM over the output rate.
	tickScale = 2.5
)

// Effect commands understood by the sequencer.
const (
	effectPositionJump = 0x0B
	effectSetVolume    = 0x0C
	effectPatternBreak = 0x0D
	effectSetSpeed     = 0x0F
)

// ErrInvalidConfig is returned for unusable player settings.
var ErrInvalidConfig = errors.New("invalid mixer configuration")

// Config holds player settings.
type Config struct {
	// SampleRate is the output rate in Hz.
	SampleRate float64

	// Method selects the interpolation kernel. The zero value is optimal32x.
	Method engine.Method

	// Gain is the master gain applied after mixing. Zero selects DefaultGain.
	Gain float64

	// Clock is the Paula clock in Hz. Zero selects PALClock.
	Clock float64
}

// pan assigns channels to outputs in Amiga order: left, right, right, left.
var pan = [mod.Channels]int{0, 1, 1, 0}

// voice is one playing channel.
type voice struct {
	sample *samplestore.Sample
	pos    float64
	step   float64
	period int
	volume int
	active bool
}

// Player renders a module to stereo.
type Player struct {
	module *mod.Module
	store  *samplestore.Store
	kernel engine.Kernel[float64]
	ops    *simdops.Ops[float64]
	rate   float64
	clock  float64
	gain   float64

	voices [mod.Channels]voice
	window []float64

	order, row int
	tick       int
	speed      int
	bpm        int
	tickLeft   float64 // output samples left in the current tick

	jump      bool
	jumpOrder int
	jumpRow   int
	visited   map[int]bool
	ended     bool
	started   bool
}

// New creates a player positioned at the start of the song.
func New(m *mod.Module, cfg Config) (*Player, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: nil module", ErrInvalidConfig)
	}
	if !(cfg.SampleRate > 0) || math.IsInf(cfg.SampleRate, 0) {
		return nil, fmt.Errorf("%w: sample rate %v", ErrInvalidConfig, cfg.SampleRate)
	}

	for i := range min(m.SongLength, mod.NumOrders) {
		if m.Orders[i] < 0 || m.Orders[i] >= len(m.Patterns) {
			return nil, fmt.Errorf("%w: order %d refers to missing pattern %d", ErrInvalidConfig, i, m.Orders[i])
		}
	}

	k, err := engine.NewKernel[float64](cfg.Method)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	p := &Player{
		module: m,
		store:  samplestore.New(m),
		kernel: k,
		ops:    simdops.Float64Ops(),
		rate:   cfg.SampleRate,
		clock:  cfg.Clock,
		gain:   cfg.Gain,
		window: make([]float64, k.Taps()),
	}
	if p.clock == 0 {
		p.clock = PALClock
	}
	if p.gain == 0 {
		p.gain = DefaultGain
	}
	p.Reset()
	return p, nil
}

// Reset rewinds to the first order with default speed and tempo.
func (p *Player) Reset() {
	p.voices = [mod.Channels]voice{}
	p.order, p.row, p.tick = 0, 0, 0
	p.speed, p.bpm = defaultSpeed, defaultBPM
	p.tickLeft = 0
	p.jump = false
	p.visited = make(map[int]bool)
	p.ended = p.module.SongLength == 0
	p.started = false
}

// Done reports whether the song has ended.
func (p *Player) Done() bool {
	return p.ended
}

// Position returns the current order and row.
func (p *Player) Position() (order, row int) {
	return p.order, p.row
}

// Render fills left and right with the next frames and returns how many
// were written. Fewer than min(len(left), len(right)) means the song ended.
func (p *Player) Render(left, right []float64) int {
	n := min(len(left), len(right))
	i := 0
	for i < n {
		if p.tickLeft <= 0 {
			p.advanceTick()
			if p.ended {
				break
			}
		}

		run := min(n-i, int(math.Ceil(p.tickLeft)))
		p.mix(left[i:i+run], right[i:i+run])
		p.tickLeft -= float64(run)
		i += run
	}

	p.ops.Scale(left[:i], left[:i], p.gain)
	p.ops.Scale(right[:i], right[:i], p.gain)
	return i
}

// RenderInterleaved fills dst with interleaved stereo frames and returns the
// number of frames written.
func (p *Player) RenderInterleaved(dst []float64) int {
	frames := len(dst) / 2
	left := make([]float64, frames)
	right := make([]float64, frames)
	n := p.Render(left, right)
	p.ops.Interleave2(dst[:2*n], left[:n], right[:n])
	return n
}

// mix overwrites left and right with the sum of all active voices.
func (p *Player) mix(left, right []float64) {
	clear(left)
	clear(right)
	out := [2][]float64{left, right}

	for ch := range p.voices {
		v := &p.voices[ch]
		if !v.active || v.volume == 0 {
			continue
		}
		dst := out[pan[ch]]
		amp := float64(v.volume) / maxVolume
		for i := range dst {
			if !v.active {
				break
			}
			n, x := math.Floor(v.pos), v.pos-math.Floor(v.pos)
			v.sample.Window(p.window, int(n))
			dst[i] += amp * p.kernel.Interpolate(p.window, x)
			v.pos, v.active = v.sample.Advance(v.pos, v.step)
		}
	}
}

// advanceTick moves the sequencer one tick forward, processing a new row
// when the previous one has used up its ticks.
func (p *Player) advanceTick() {
	if p.started {
		p.tick++
		if p.tick >= p.speed {
			p.tick = 0
			p.nextRow()
		}
	}
	p.started = true

	if p.tick == 0 && !p.ended {
		key := p.order*mod.Rows + p.row
		if p.visited[key] {
			p.ended = true
			return
		}
		p.visited[key] = true
		p.playRow()
	}

	p.tickLeft += tickScale * p.rate / float64(p.bpm)
}

func (p *Player) nextRow() {
	if p.jump {
		p.jump = false
		p.order, p.row = p.jumpOrder, p.jumpRow
	} else {
		p.row++
		if p.row >= mod.Rows {
			p.row = 0
			p.order++
		}
	}
	if p.order >= p.module.SongLength {
		p.ended = true
	}
}

// playRow triggers the notes and effects of the current row.
func (p *Player) playRow() {
	pattern := &p.module.Patterns[p.module.Orders[p.order]]
	for ch, note := range pattern[p.row] {
		v := &p.voices[ch]

		if note.Instrument > 0 {
			if s, err := p.store.Get(note.Instrument); err == nil {
				v.sample = s
				v.volume = s.Volume
			} else {
				v.sample = nil
				v.active = false
			}
		}

		if note.Period > 0 && v.sample != nil {
			v.period = note.Period
			v.step = p.clock / (2 * float64(note.Period)) / p.rate
			v.pos = 0
			v.active = true
		}

		p.applyEffect(v, note)
	}
}

func (p *Player) applyEffect(v *voice, note mod.Note) {
	param := int(note.Param)
	switch note.Effect {
	case effectSetVolume:
		v.volume = min(param, maxVolume)
	case effectSetSpeed:
		switch {
		case param == 0:
		case param < maxSpeed:
			p.speed = param
		default:
			p.bpm = param
		}
	case effectPositionJump:
		p.setJump(param, 0)
	case effectPatternBreak:
		row := (param>>4)*10 + param&0x0F
		if row >= mod.Rows {
			row = 0
		}
		order := p.order + 1
		if p.jump {
			order = p.jumpOrder
		}
		p.setJump(order, row)
	}
}

func (p *Player) setJump(order, row int) {
	p.jump = true
	p.jumpOrder = order
	p.jumpRow = row
}
