package indicators

import (
	"fmt"
	"math"
)

const (
	// DefaultVol is returned while the window is still warming up, or when
	// bad prices make the estimate undefined. 50% annualized is a deliberate
	// middle-of-the-road default so the engine can price options early in a
	// run.
	DefaultVol = 0.5

	// MinVol and MaxVol clamp the estimate; near-constant windows would
	// otherwise price options at ~0 and erratic ones at absurd levels.
	MinVol = 0.10
	MaxVol = 2.00

	// tradingDaysPerYear annualizes daily log returns. The estimator assumes
	// one price per calendar day; feeding sub-daily data without adjusting
	// this factor silently misestimates volatility.
	tradingDaysPerYear = 365
)

// HistoricalVolatility estimates annualized volatility from the trailing
// window of daily log returns (sample stddev, Bessel-corrected, scaled by
// sqrt(365)).
type HistoricalVolatility struct {
	window int
	prices []float64 // most recent window+1 closes, oldest first
}

var _ Indicator = (*HistoricalVolatility)(nil)

// NewHistoricalVolatility creates an estimator over `window` log returns.
// The conventional window is 30.
func NewHistoricalVolatility(window int) *HistoricalVolatility {
	if window <= 0 {
		window = 30
	}
	return &HistoricalVolatility{window: window}
}

func (h *HistoricalVolatility) Name() string {
	return fmt.Sprintf("HV(%d)", h.window)
}

// Warmup is window+1 closes: n prices yield n-1 returns.
func (h *HistoricalVolatility) Warmup() int { return h.window + 1 }

func (h *HistoricalVolatility) Reset() { h.prices = h.prices[:0] }

func (h *HistoricalVolatility) Update(close float64) {
	h.prices = append(h.prices, close)
	if len(h.prices) > h.window+1 {
		h.prices = h.prices[1:]
	}
}

func (h *HistoricalVolatility) Ready() bool {
	return len(h.prices) >= h.window+1
}

// Value returns the clamped annualized volatility estimate, or DefaultVol
// when the window has not filled yet. A zero or negative price in the window
// also yields DefaultVol rather than propagating a NaN into pricing.
func (h *HistoricalVolatility) Value() float64 {
	if !h.Ready() {
		return DefaultVol
	}

	n := h.window
	returns := make([]float64, 0, n)
	for i := len(h.prices) - n; i < len(h.prices); i++ {
		returns = append(returns, math.Log(h.prices[i]/h.prices[i-1]))
	}

	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= float64(n)

	ss := 0.0
	for _, r := range returns {
		d := r - mean
		ss += d * d
	}
	sigma := math.Sqrt(ss/float64(n-1)) * math.Sqrt(tradingDaysPerYear)

	if math.IsNaN(sigma) || math.IsInf(sigma, 0) {
		return DefaultVol
	}
	return clamp(sigma, MinVol, MaxVol)
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
