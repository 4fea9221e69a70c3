// Package pricing implements Black-Scholes European option pricing for the
// put-selling engine, plus a Newton-Raphson implied-volatility solver.
//
// All math here is float64 on purpose; exact decimal arithmetic is reserved
// for portfolio accounting in the engine.
package pricing

import (
	"errors"
	"fmt"
	"math"
)

// ErrNumericDomain is returned when an input lies outside the pricing
// model's domain (non-positive spot, strike, volatility, or expiry).
// These are fatal: callers must not paper over them with a fallback price.
var ErrNumericDomain = errors.New("input outside numeric domain")

// ErrNoConvergence is returned by ImpliedVolatility when Newton-Raphson
// exhausts its iteration budget without reaching tolerance.
var ErrNoConvergence = errors.New("implied volatility did not converge")

// PutPrice returns the Black-Scholes premium of a European put.
//
//	spot    current price of the underlying, > 0
//	strike  exercise price, > 0
//	years   time to expiry in years, > 0
//	sigma   annualized volatility, > 0
//	rate    annual risk-free rate
//
// The put is derived from the call via put-call parity:
// put = call + strike*e^(-r*t) - spot.
func PutPrice(spot, strike, years, sigma, rate float64) (float64, error) {
	call, err := CallPrice(spot, strike, years, sigma, rate)
	if err != nil {
		return 0, err
	}

	put := call + strike*math.Exp(-rate*years) - spot
	if put < 0 {
		// parity can dip a hair below zero from approximation error
		put = 0
	}
	return put, nil
}

// CallPrice returns the Black-Scholes premium of a European call.
func CallPrice(spot, strike, years, sigma, rate float64) (float64, error) {
	if err := checkDomain(spot, strike, years, sigma); err != nil {
		return 0, err
	}

	d1, d2 := d1d2(spot, strike, years, sigma, rate)
	return spot*normCDF(d1) - strike*math.Exp(-rate*years)*normCDF(d2), nil
}

// Vega is the sensitivity of the option premium to volatility,
// spot * sqrt(t) * phi(d1). Identical for calls and puts.
func Vega(spot, strike, years, sigma, rate float64) float64 {
	if spot <= 0 || strike <= 0 || years <= 0 || sigma <= 0 {
		return 0
	}
	d1, _ := d1d2(spot, strike, years, sigma, rate)
	return spot * math.Sqrt(years) * normPDF(d1)
}

func d1d2(spot, strike, years, sigma, rate float64) (float64, float64) {
	sqt := sigma * math.Sqrt(years)
	d1 := (math.Log(spot/strike) + (rate+0.5*sigma*sigma)*years) / sqt
	return d1, d1 - sqt
}

func checkDomain(spot, strike, years, sigma float64) error {
	switch {
	case !(spot > 0): // catches NaN too
		return fmt.Errorf("%w: spot %v", ErrNumericDomain, spot)
	case !(strike > 0):
		return fmt.Errorf("%w: strike %v", ErrNumericDomain, strike)
	case !(years > 0):
		return fmt.Errorf("%w: time to expiry %v years", ErrNumericDomain, years)
	case !(sigma > 0):
		return fmt.Errorf("%w: volatility %v", ErrNumericDomain, sigma)
	}
	return nil
}
