package engine

// Optimal 32x interpolation constants
const (
	// 6-point window: yn2, yn1, y0, y1, y2, y3
	optimalInterpolationPoints = 6

	// Polynomial is evaluated in z = x - 1/2
	optimalCenter = 0.5

	// Design oversampling ratio the coefficients were optimized for
	OptimalOversampling = 32
)

// Cubic (Hermite) interpolation constants
const (
	// Cubic interpolation uses 4-point window
	cubicInterpolationPoints = 4

	// Hermite interpolation coefficients for smooth C1 continuity
	// coefA := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	hermiteCoeff0_5 = 0.5
	hermiteCoeff1_5 = 1.5
	hermiteCoeff2_5 = 2.5
)

// Linear interpolation uses 2-point window
const linearInterpolationPoints = 2

// Stage constants
const (
	// Divisor for the look-ahead half of a window
	windowHalfDivisor = 2

	// Samples per phase table entry lookup are rounded to the nearest phase
	roundHalf = 0.5
)
