package interp

import "github.com/tphakala/go-audio-interp/internal/engine"

// Window is a 6-sample window yn2, yn1, y0, y1, y2, y3 taken at integer
// positions n-2 .. n+3.
type Window [6]float64

// Window32 is the float32 form of Window.
type Window32 [6]float32

// Optimal32x reconstructs the value at fractional offset x past y0 from six
// consecutive samples of a signal oversampled 32x.
//
// The interpolator is a fixed 6-point, 5th-order polynomial whose
// coefficients minimize reconstruction error rather than pass through the
// samples: Optimal32x(0, ...) is close to y0 but not equal to it. x is meant
// to lie in [0,1); other values extrapolate the same polynomial. The function
// is pure and safe to call from any number of goroutines.
func Optimal32x(x, yn2, yn1, y0, y1, y2, y3 float64) float64 {
	return engine.Optimal32x(x, yn2, yn1, y0, y1, y2, y3)
}

// Optimal32xFloat32 is Optimal32x in single precision.
func Optimal32xFloat32(x, yn2, yn1, y0, y1, y2, y3 float32) float32 {
	return engine.Optimal32x(x, yn2, yn1, y0, y1, y2, y3)
}

// At evaluates Optimal32x over the window at offset x past w[2].
func (w Window) At(x float64) float64 {
	return engine.Optimal32x(x, w[0], w[1], w[2], w[3], w[4], w[5])
}

// At evaluates Optimal32xFloat32 over the window at offset x past w[2].
func (w Window32) At(x float32) float32 {
	return engine.Optimal32x(x, w[0], w[1], w[2], w[3], w[4], w[5])
}

// Reversed returns the time-reversed window. For any x,
// w.At(x) equals w.Reversed().At(1-x) up to rounding.
func (w Window) Reversed() Window {
	return Window{w[5], w[4], w[3], w[2], w[1], w[0]}
}
