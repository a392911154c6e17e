// Package interp provides fractional-position signal interpolation in pure Go.
//
// The core is the "optimal 32x" interpolator: a 6-point, 5th-order
// polynomial whose coefficients were optimized offline for input that is
// oversampled 32 times. Given six consecutive samples and a fractional
// offset x between the middle two, it reconstructs the signal value at
// that offset with a fixed handful of multiply-adds.
//
// # Quick Start
//
// Evaluate a single point:
//
//	y := interp.Optimal32x(0.25, yn2, yn1, y0, y1, y2, y3)
//
// or with a window value:
//
//	w := interp.Window{yn2, yn1, y0, y1, y2, y3}
//	y := w.At(0.25)
//
// For streaming sample rate conversion:
//
//	r, err := interp.New(&interp.Config{
//	    InputRate:  44100,
//	    OutputRate: 48000,
//	    Channels:   2,
//	    Method:     interp.MethodOptimal32x,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out, err := r.ProcessMulti(chunk)
//	final, err := r.FlushMulti()
//
// # Approximating, not interpolating
//
// The kernel minimizes overall reconstruction error instead of passing
// exactly through the input samples. At x=0 the result is close to y0, off
// by the filter's passband droop (about 0.26% for a tone at the edge of the
// 32x band). Constant and linear signals are reproduced exactly. Use
// [MethodHermite] or [MethodLinear] when exact pass-through matters more
// than image rejection.
//
// # Addressing
//
// Which six samples form a window is the caller's decision.
// [InterpolateAt] and [RenderParallel] offer one policy: positions are
// real numbers whose integer part selects y0, and an [Edge] decides what
// lies beyond the source.
//
// # Thread Safety
//
// [Optimal32x], [Window.At], [InterpolateAt] and [RenderParallel] are pure
// and may be called concurrently without synchronization. A [Resampler]
// carries stream state; calls on the same instance are serialized
// internally.
package interp
