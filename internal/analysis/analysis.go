// Package analysis measures the frequency-domain behaviour of interpolation
// kernels: DC gain, passband droop, and rejection of the spectral images
// that appear when a sampled signal is reconstructed at fractional positions.
//
// A kernel is treated as a continuous-time reconstruction filter. Its impulse
// response is sampled at a fixed number of phases per input sample (the
// polyphase decomposition of the kernel), and the spectrum of that sampled
// response is computed with a real FFT.
package analysis

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"

	"github.com/tphakala/go-audio-interp/internal/engine"
	"github.com/tphakala/go-audio-interp/internal/simdops"
)

// ErrInvalidOptions indicates analysis options that cannot be satisfied.
var ErrInvalidOptions = errors.New("invalid analysis options")

const (
	defaultPhases  = engine.OptimalOversampling
	defaultFFTSize = 8192

	// Number of sine phases probed for the sample point error
	samplePointProbes = 64

	// Magnitudes below this floor are reported as infinite rejection
	magnitudeFloor = 1e-300

	dbScale = 20.0
)

// Options configures a measurement.
type Options struct {
	// Phases is the number of impulse response samples per input sample.
	Phases int

	// FFTSize is the transform length. Must be at least Taps*Phases.
	FFTSize int

	// Oversampling is the design oversampling ratio. The passband edge is
	// 1/(2*Oversampling) cycles per input sample.
	Oversampling int
}

// DefaultOptions returns options matched to the 32x design target.
func DefaultOptions() Options {
	return Options{
		Phases:       defaultPhases,
		FFTSize:      defaultFFTSize,
		Oversampling: engine.OptimalOversampling,
	}
}

// Validate checks the options against a kernel of the given size.
func (o Options) Validate(taps int) error {
	if o.Phases < 2 {
		return fmt.Errorf("%w: phases must be at least 2", ErrInvalidOptions)
	}
	if o.Oversampling < 1 {
		return fmt.Errorf("%w: oversampling must be at least 1", ErrInvalidOptions)
	}
	if o.FFTSize < taps*o.Phases {
		return fmt.Errorf("%w: fft size %d shorter than impulse response %d",
			ErrInvalidOptions, o.FFTSize, taps*o.Phases)
	}
	return nil
}

// Report summarizes a kernel's reconstruction quality.
type Report struct {
	Method string
	Taps   int
	Phases int

	// DCGain is the response at 0 Hz. Exactly 1 for a kernel that
	// reproduces constant signals.
	DCGain float64

	// PassbandGain is the magnitude at the passband edge.
	PassbandGain float64

	// PassbandDroopDB is -20*log10(PassbandGain).
	PassbandDroopDB float64

	// ImageRejectionDB is the attenuation of the strongest image of the
	// passband around multiples of the input rate.
	ImageRejectionDB float64

	// WorstImageFreq is where that image lies, in cycles per input sample.
	WorstImageFreq float64

	// SamplePointError is the worst |y(0)-y0| for a unit sine at the
	// passband edge. Zero for interpolating kernels.
	SamplePointError float64
}

// ImpulseResponse samples the kernel's continuous impulse response at
// phases points per input sample. The result has Taps*phases entries and
// starts at t = -Taps/2.
func ImpulseResponse[F simdops.Float](k engine.Kernel[F], phases int) ([]float64, error) {
	table, err := engine.NewPhaseTable(k, phases)
	if err != nil {
		return nil, err
	}

	taps := table.Taps()
	ir := make([]float64, taps*phases)
	for p := range phases {
		w := table.Weights(p)
		for j, v := range w {
			// Tap j weights the sample (taps-1-j) input samples behind the
			// newest one, so it lands (taps-1-j) periods into the response.
			ir[(taps-1-j)*phases+p] = float64(v)
		}
	}
	return ir, nil
}

// FrequencyResponse returns |H| at fftSize/2+1 bins spaced phases/fftSize
// cycles per input sample apart, normalized so a unit-gain kernel has
// magnitude 1 at DC.
func FrequencyResponse(ir []float64, phases, fftSize int) ([]float64, error) {
	if fftSize < len(ir) {
		return nil, fmt.Errorf("%w: fft size %d shorter than impulse response %d",
			ErrInvalidOptions, fftSize, len(ir))
	}

	padded := make([]float64, fftSize)
	copy(padded, ir)

	fft := fourier.NewFFT(fftSize)
	coeffs := fft.Coefficients(nil, padded)

	scale := 1.0 / float64(phases)
	mag := make([]float64, len(coeffs))
	for i, c := range coeffs {
		mag[i] = cmplx.Abs(c) * scale
	}
	return mag, nil
}

// Measure computes a Report for the kernel.
func Measure[F simdops.Float](k engine.Kernel[F], opts Options) (Report, error) {
	if err := opts.Validate(k.Taps()); err != nil {
		return Report{}, err
	}

	ir, err := ImpulseResponse(k, opts.Phases)
	if err != nil {
		return Report{}, err
	}

	mag, err := FrequencyResponse(ir, opts.Phases, opts.FFTSize)
	if err != nil {
		return Report{}, err
	}

	binsPerCycle := float64(opts.FFTSize) / float64(opts.Phases)
	passband := 1.0 / float64(2*opts.Oversampling)

	report := Report{
		Method: k.Name(),
		Taps:   k.Taps(),
		Phases: opts.Phases,
		DCGain: simdops.Float64Ops().Sum(ir) / float64(opts.Phases),
	}

	pbBin := int(math.Round(passband * binsPerCycle))
	report.PassbandGain = mag[pbBin]
	report.PassbandDroopDB = -toDB(report.PassbandGain)

	worst, worstBin := imageBandPeak(mag, binsPerCycle, passband, opts.Phases)
	report.WorstImageFreq = float64(worstBin) / binsPerCycle
	if worst < magnitudeFloor {
		report.ImageRejectionDB = math.Inf(1)
	} else {
		report.ImageRejectionDB = -toDB(worst)
	}

	report.SamplePointError = samplePointError(k, passband)

	return report, nil
}

// imageBandPeak returns the largest magnitude within ±passband of every
// multiple of the input rate below the analysis Nyquist frequency.
func imageBandPeak(mag []float64, binsPerCycle, passband float64, phases int) (float64, int) {
	worst, worstBin := 0.0, 0
	for img := 1; img < phases/2; img++ {
		lo := int(math.Round((float64(img) - passband) * binsPerCycle))
		hi := int(math.Round((float64(img) + passband) * binsPerCycle))
		hi = min(hi, len(mag)-1)
		if lo > hi {
			continue
		}

		band := mag[lo : hi+1]
		if peak := floats.Max(band); peak > worst {
			worst = peak
			worstBin = lo + floats.MaxIdx(band)
		}
	}
	return worst, worstBin
}

// samplePointError probes y(0) against y0 for a unit sine at freq.
func samplePointError[F simdops.Float](k engine.Kernel[F], freq float64) float64 {
	taps := k.Taps()
	center := taps/2 - 1
	w := make([]F, taps)

	worst := 0.0
	for probe := range samplePointProbes {
		phase := 2 * math.Pi * float64(probe) / samplePointProbes
		for i := range w {
			w[i] = F(math.Sin(2*math.Pi*freq*float64(i-center) + phase))
		}
		worst = max(worst, math.Abs(float64(k.Interpolate(w, 0)-w[center])))
	}
	return worst
}

func toDB(mag float64) float64 {
	return dbScale * math.Log10(mag)
}
