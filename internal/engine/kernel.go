package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tphakala/go-audio-interp/internal/simdops"
)

// ErrUnknownMethod is returned by ParseMethod for unrecognized names.
var ErrUnknownMethod = errors.New("unknown interpolation method")

// Kernel reconstructs a value between two samples from a fixed-size window.
//
// The window passed to Interpolate holds exactly Taps() consecutive samples.
// The sample at index Taps()/2-1 is y0, x is the fractional offset past it.
type Kernel[F simdops.Float] interface {
	// Taps returns the window size.
	Taps() int

	// Interpolate returns the reconstructed value at offset x past y0.
	Interpolate(w []F, x F) F

	// Name returns the method name.
	Name() string
}

// Method selects an interpolation kernel.
type Method int

const (
	// MethodOptimal32x is the 6-point 5th-order optimal interpolator
	// designed for 32x oversampled input.
	MethodOptimal32x Method = iota

	// MethodHermite is the 4-point 3rd-order Hermite interpolator.
	MethodHermite

	// MethodLinear is 2-point linear interpolation.
	MethodLinear
)

// String returns the method name.
func (m Method) String() string {
	switch m {
	case MethodOptimal32x:
		return "optimal32x"
	case MethodHermite:
		return "hermite"
	case MethodLinear:
		return "linear"
	default:
		return fmt.Sprintf("method(%d)", int(m))
	}
}

// ParseMethod maps a method name to a Method.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "optimal32x", "optimal", "":
		return MethodOptimal32x, nil
	case "hermite", "cubic":
		return MethodHermite, nil
	case "linear":
		return MethodLinear, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, s)
	}
}

// NewKernel returns the kernel for a method.
func NewKernel[F simdops.Float](m Method) (Kernel[F], error) {
	switch m {
	case MethodOptimal32x:
		return OptimalKernel[F]{}, nil
	case MethodHermite:
		return HermiteKernel[F]{}, nil
	case MethodLinear:
		return LinearKernel[F]{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, m)
	}
}

// OptimalKernel adapts Optimal32x to the Kernel interface.
type OptimalKernel[F simdops.Float] struct{}

// Taps returns 6.
func (OptimalKernel[F]) Taps() int { return optimalInterpolationPoints }

// Interpolate evaluates Optimal32x over w[0..5].
func (OptimalKernel[F]) Interpolate(w []F, x F) F {
	_ = w[5]
	return Optimal32x(x, w[0], w[1], w[2], w[3], w[4], w[5])
}

// Name returns "optimal32x".
func (OptimalKernel[F]) Name() string { return MethodOptimal32x.String() }

// HermiteKernel implements cubic (4-point, 3rd order) Hermite interpolation.
type HermiteKernel[F simdops.Float] struct{}

// Taps returns 4.
func (HermiteKernel[F]) Taps() int { return cubicInterpolationPoints }

// Interpolate evaluates y = ((a*x + b)*x + c)*x + d between w[1] and w[2].
func (HermiteKernel[F]) Interpolate(w []F, x F) F {
	_ = w[3]
	y0, y1, y2, y3 := w[0], w[1], w[2], w[3]

	coefA := -hermiteCoeff0_5*y0 + hermiteCoeff1_5*y1 - hermiteCoeff1_5*y2 + hermiteCoeff0_5*y3
	coefB := y0 - hermiteCoeff2_5*y1 + 2*y2 - hermiteCoeff0_5*y3
	coefC := -hermiteCoeff0_5*y0 + hermiteCoeff0_5*y2
	coefD := y1

	return ((coefA*x+coefB)*x+coefC)*x + coefD
}

// Name returns "hermite".
func (HermiteKernel[F]) Name() string { return MethodHermite.String() }

// LinearKernel implements linear (2-point, 1st order) interpolation.
type LinearKernel[F simdops.Float] struct{}

// Taps returns 2.
func (LinearKernel[F]) Taps() int { return linearInterpolationPoints }

// Interpolate returns (1-x)*w[0] + x*w[1].
func (LinearKernel[F]) Interpolate(w []F, x F) F {
	_ = w[1]
	return (1-x)*w[0] + x*w[1]
}

// Name returns "linear".
func (LinearKernel[F]) Name() string { return MethodLinear.String() }
