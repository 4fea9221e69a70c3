package pricing

import (
	"fmt"
	"math"
)

const (
	ivInitialGuess = 0.3
	ivTolerance    = 1e-4 // absolute price difference
	ivMaxIter      = 100
	ivMinVega      = 1e-10
)

// ImpliedVolatility solves for the volatility that reproduces target as a
// put premium, using Newton-Raphson with vega as the derivative.
//
// The strategy path never needs this; it exists for analyzing observed
// premiums against the model.
func ImpliedVolatility(target, spot, strike, years, rate float64) (float64, error) {
	if err := checkDomain(spot, strike, years, 1); err != nil {
		return 0, err
	}
	if !(target > 0) {
		return 0, fmt.Errorf("%w: target premium %v", ErrNumericDomain, target)
	}

	sigma := ivInitialGuess

	for i := 0; i < ivMaxIter; i++ {
		price, err := PutPrice(spot, strike, years, sigma, rate)
		if err != nil {
			return 0, err
		}

		diff := price - target
		if math.Abs(diff) < ivTolerance {
			return sigma, nil
		}

		vega := Vega(spot, strike, years, sigma, rate)
		if vega < ivMinVega {
			break
		}

		sigma -= diff / vega
		if sigma <= 0 {
			sigma = 1e-4
		}
	}

	return 0, fmt.Errorf("%w after %d iterations (target %.6f)", ErrNoConvergence, ivMaxIter, target)
}
