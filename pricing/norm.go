package pricing

import "math"

const sqrt2Pi = 2.5066282746310002

// Abramowitz & Stegun 7.1.26 rational approximation of erf.
// Max absolute error ~1.5e-7, which is plenty for option premiums and keeps
// the package free of special-function dependencies.
const (
	erfP  = 0.3275911
	erfA1 = 0.254829592
	erfA2 = -0.284496736
	erfA3 = 1.421413741
	erfA4 = -1.453152027
	erfA5 = 1.061405429
)

func erf(x float64) float64 {
	sign := 1.0
	if x < 0 {
		sign = -1.0
		x = -x
	}

	t := 1.0 / (1.0 + erfP*x)
	poly := ((((erfA5*t+erfA4)*t+erfA3)*t+erfA2)*t + erfA1) * t

	return sign * (1.0 - poly*math.Exp(-x*x))
}

// normCDF is the standard normal cumulative distribution function.
func normCDF(x float64) float64 {
	return 0.5 * (1.0 + erf(x/math.Sqrt2))
}

// normPDF is the standard normal density.
func normPDF(x float64) float64 {
	return math.Exp(-0.5*x*x) / sqrt2Pi
}
