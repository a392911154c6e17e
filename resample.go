package interp

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/tphakala/go-audio-interp/internal/engine"
)

// Method selects the interpolation kernel.
type Method = engine.Method

// Interpolation methods.
const (
	// MethodOptimal32x is the 6-point, 5th-order optimal interpolator for
	// 32x oversampled input. This is the default.
	MethodOptimal32x = engine.MethodOptimal32x

	// MethodHermite is 4-point, 3rd-order Hermite interpolation.
	MethodHermite = engine.MethodHermite

	// MethodLinear is 2-point linear interpolation.
	MethodLinear = engine.MethodLinear
)

// ParseMethod maps a name such as "optimal32x", "hermite" or "linear" to a Method.
func ParseMethod(s string) (Method, error) {
	return engine.ParseMethod(s)
}

// Resampler converts a stream between two sample rates by evaluating an
// interpolation kernel at every output position.
type Resampler interface {
	// Process resamples a mono audio channel (channel 0).
	Process(input []float64) ([]float64, error)

	// ProcessFloat32 is like Process but for float32 samples.
	// It shares channel 0's stream state with Process.
	ProcessFloat32(input []float32) ([]float32, error)

	// ProcessMulti processes every channel. Each slice is one channel.
	ProcessMulti(input [][]float64) ([][]float64, error)

	// Flush returns the samples held back on channel 0 and resets it.
	Flush() ([]float64, error)

	// FlushMulti flushes every channel.
	FlushMulti() ([][]float64, error)

	// GetLatency returns the look-ahead in input samples.
	GetLatency() int

	// Reset clears all internal state.
	Reset()

	// GetRatio returns the resampling ratio (output_rate / input_rate).
	GetRatio() float64
}

// Config holds resampling configuration.
type Config struct {
	// InputRate is the sample rate of input audio in Hz.
	InputRate float64

	// OutputRate is the desired output sample rate in Hz.
	OutputRate float64

	// Channels is the number of audio channels to process.
	Channels int

	// Method selects the interpolation kernel. The zero value is MethodOptimal32x.
	Method Method

	// EnableParallel processes channels concurrently in ProcessMulti and
	// FlushMulti. Has no effect on mono audio.
	EnableParallel bool
}

// Common errors returned by the resampler.
var (
	// ErrInvalidConfig indicates invalid configuration parameters.
	ErrInvalidConfig = errors.New("invalid resampler configuration")

	// ErrNotSupported indicates the requested operation is not supported.
	ErrNotSupported = errors.New("operation not supported")
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.InputRate <= 0 || c.OutputRate <= 0 ||
		math.IsInf(c.InputRate, 0) || math.IsInf(c.OutputRate, 0) ||
		math.IsNaN(c.InputRate) || math.IsNaN(c.OutputRate) {
		return fmt.Errorf("%w: sample rates must be positive", ErrInvalidConfig)
	}

	if c.Channels < 1 {
		return fmt.Errorf("%w: channels must be at least 1", ErrInvalidConfig)
	}

	if c.Channels > maxChannels {
		return fmt.Errorf("%w: too many channels (max %d)", ErrInvalidConfig, maxChannels)
	}

	ratio := c.OutputRate / c.InputRate
	if ratio < minRatioFactor || ratio > maxRatioFactor {
		return fmt.Errorf("%w: resampling ratio out of range (%v to %v)", ErrInvalidConfig, minRatioFactor, maxRatioFactor)
	}

	if _, err := engine.NewKernel[float64](c.Method); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

// New creates a new resampler with the specified configuration.
func New(config *Config) (Resampler, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return newKernelResampler(config)
}

// kernelResampler runs one engine stage per channel.
type kernelResampler struct {
	config Config
	ratio  float64
	stages []*engine.Stage[float64]
	mu     sync.Mutex
}

func newKernelResampler(config *Config) (*kernelResampler, error) {
	ratio := config.OutputRate / config.InputRate
	r := &kernelResampler{
		config: *config,
		ratio:  ratio,
		stages: make([]*engine.Stage[float64], config.Channels),
	}

	for ch := range r.stages {
		k, err := engine.NewKernel[float64](config.Method)
		if err != nil {
			return nil, err
		}
		stage, err := engine.NewStage(k, ratio)
		if err != nil {
			return nil, fmt.Errorf("failed to create stage for channel %d: %w", ch, err)
		}
		r.stages[ch] = stage
	}

	return r, nil
}

// Process resamples a mono audio channel.
func (r *kernelResampler) Process(input []float64) ([]float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stages[0].Process(input)
}

// ProcessFloat32 resamples float32 audio data through channel 0.
// Internally converts to float64 for processing, then converts back.
func (r *kernelResampler) ProcessFloat32(input []float32) ([]float32, error) {
	input64 := make([]float64, len(input))
	for i, v := range input {
		input64[i] = float64(v)
	}

	output64, err := r.Process(input64)
	if err != nil {
		return nil, err
	}

	output32 := make([]float32, len(output64))
	for i, v := range output64 {
		output32[i] = float32(v)
	}

	return output32, nil
}

// ProcessMulti processes multiple audio channels.
// When EnableParallel is set, channels are processed concurrently.
func (r *kernelResampler) ProcessMulti(input [][]float64) ([][]float64, error) {
	if len(input) != r.config.Channels {
		return nil, fmt.Errorf("%w: expected %d channels, got %d", ErrInvalidConfig, r.config.Channels, len(input))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.eachChannel(func(ch int) ([]float64, error) {
		return r.stages[ch].Process(input[ch])
	})
}

// Flush returns any remaining samples on channel 0.
func (r *kernelResampler) Flush() ([]float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stages[0].Flush()
}

// FlushMulti flushes every channel.
func (r *kernelResampler) FlushMulti() ([][]float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.eachChannel(func(ch int) ([]float64, error) {
		return r.stages[ch].Flush()
	})
}

// eachChannel runs fn for every channel, concurrently when enabled.
// Stages are independent, so each goroutine owns exactly one of them.
func (r *kernelResampler) eachChannel(fn func(ch int) ([]float64, error)) ([][]float64, error) {
	output := make([][]float64, len(r.stages))

	if !r.config.EnableParallel || len(r.stages) <= 1 {
		for ch := range r.stages {
			result, err := fn(ch)
			if err != nil {
				return nil, fmt.Errorf("channel %d: %w", ch, err)
			}
			output[ch] = result
		}
		return output, nil
	}

	var g errgroup.Group
	for ch := range r.stages {
		g.Go(func() error {
			result, err := fn(ch)
			if err != nil {
				return fmt.Errorf("channel %d: %w", ch, err)
			}
			output[ch] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return output, nil
}

// GetLatency returns the look-ahead in input samples.
func (r *kernelResampler) GetLatency() int {
	return r.stages[0].GetLatency()
}

// Reset clears all internal state.
func (r *kernelResampler) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, stage := range r.stages {
		stage.Reset()
	}
}

// GetRatio returns the resampling ratio.
func (r *kernelResampler) GetRatio() float64 {
	return r.ratio
}

// GetInfo returns information about the resampler.
func (r *kernelResampler) GetInfo() Info {
	return Info{
		Algorithm:    r.config.Method.String(),
		FilterLength: r.stages[0].GetTaps(),
		Latency:      r.GetLatency(),
		Channels:     len(r.stages),
	}
}

// Info returns information about the resampler implementation.
type Info struct {
	// Algorithm names the interpolation kernel in use.
	Algorithm string

	// FilterLength is the kernel window size in samples.
	FilterLength int

	// Latency is the look-ahead in input samples.
	Latency int

	// Channels is the number of channels.
	Channels int
}

// infoProvider is an optional interface for resamplers that can provide detailed info.
type infoProvider interface {
	GetInfo() Info
}

// GetInfo returns information about a resampler.
func GetInfo(r Resampler) Info {
	if provider, ok := r.(infoProvider); ok {
		return provider.GetInfo()
	}

	return Info{
		Algorithm: "unknown",
		Latency:   r.GetLatency(),
	}
}
