// Package indicators provides streaming statistics computed from a price
// series. Indicators are deterministic and safe to reuse across backtests
// after a Reset.
package indicators

// Indicator computes a single streaming value from closing prices.
type Indicator interface {
	// Name returns a stable identifier like "HV(30)".
	Name() string

	// Warmup returns how many updates are needed before Ready() can be true.
	Warmup() int

	// Reset clears all internal state.
	Reset()

	// Update consumes the next closing price.
	Update(close float64)

	// Ready reports whether Value() is computed from a full window.
	Ready() bool

	// Value returns the current indicator value.
	Value() float64
}
