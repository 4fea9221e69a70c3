package engine

import (
	"errors"
	"fmt"
)

// PricingMode selects how the premium of a new put is computed.
type PricingMode string

const (
	// PricingFlat charges a flat percentage of the strike.
	PricingFlat PricingMode = "flat"
	// PricingBlackScholes prices the put with Black-Scholes using the
	// historical-volatility estimate at issuance time.
	PricingBlackScholes PricingMode = "black-scholes"
)

// ErrInvalidConfig is wrapped by every configuration validation failure.
var ErrInvalidConfig = errors.New("invalid strategy config")

const (
	// DefaultVolWindow is the trailing log-return window for the
	// historical-volatility estimate.
	DefaultVolWindow = 30
	// DefaultHistoryLimit bounds the engine's retained price history.
	DefaultHistoryLimit = 100
)

// Config holds the immutable strategy parameters. It is supplied once at
// engine construction and never mutated afterwards.
type Config struct {
	InitialBTC float64 `json:"initial_btc" yaml:"initial_btc"`
	InitialUSD float64 `json:"initial_usd" yaml:"initial_usd"`

	// PutPremiumPercent is the flat-mode premium as a fraction of the
	// strike, in [0,1). Ignored in black-scholes mode.
	PutPremiumPercent float64 `json:"put_premium_percent" yaml:"put_premium_percent"`

	// StrikeDiscountPercent sets the strike below spot: strike =
	// spot*(1-discount). In [0,1).
	StrikeDiscountPercent float64 `json:"strike_discount_percent" yaml:"strike_discount_percent"`

	// DaysToExpiration is the lifetime of each contract, > 0.
	DaysToExpiration int `json:"days_to_expiration" yaml:"days_to_expiration"`

	// PricingMode defaults to flat.
	PricingMode PricingMode `json:"pricing_mode" yaml:"pricing_mode"`

	// RiskFreeRate is the annual rate used by black-scholes pricing.
	RiskFreeRate float64 `json:"risk_free_rate" yaml:"risk_free_rate"`

	// VolWindow is the log-return window of the volatility estimate
	// (default 30).
	VolWindow int `json:"vol_window,omitempty" yaml:"vol_window,omitempty"`

	// HistoryLimit bounds retained price history (default 100).
	HistoryLimit int `json:"history_limit,omitempty" yaml:"history_limit,omitempty"`
}

func (c Config) withDefaults() Config {
	if c.PricingMode == "" {
		c.PricingMode = PricingFlat
	}
	if c.VolWindow == 0 {
		c.VolWindow = DefaultVolWindow
	}
	if c.HistoryLimit == 0 {
		c.HistoryLimit = DefaultHistoryLimit
	}
	return c
}

// Validate checks the parameters after defaults are applied. Every failure
// wraps ErrInvalidConfig.
func (c Config) Validate() error {
	if c.InitialBTC < 0 {
		return fmt.Errorf("%w: initial_btc must be >= 0, got %v", ErrInvalidConfig, c.InitialBTC)
	}
	if c.InitialUSD < 0 {
		return fmt.Errorf("%w: initial_usd must be >= 0, got %v", ErrInvalidConfig, c.InitialUSD)
	}
	if c.PutPremiumPercent < 0 || c.PutPremiumPercent >= 1 {
		return fmt.Errorf("%w: put_premium_percent must be in [0,1), got %v", ErrInvalidConfig, c.PutPremiumPercent)
	}
	if c.StrikeDiscountPercent < 0 || c.StrikeDiscountPercent >= 1 {
		return fmt.Errorf("%w: strike_discount_percent must be in [0,1), got %v", ErrInvalidConfig, c.StrikeDiscountPercent)
	}
	if c.DaysToExpiration <= 0 {
		return fmt.Errorf("%w: days_to_expiration must be positive, got %d", ErrInvalidConfig, c.DaysToExpiration)
	}
	switch c.PricingMode {
	case "", PricingFlat, PricingBlackScholes: // empty defaults to flat
	default:
		return fmt.Errorf("%w: unknown pricing_mode %q", ErrInvalidConfig, c.PricingMode)
	}
	if c.VolWindow < 0 {
		return fmt.Errorf("%w: vol_window must be >= 0, got %d", ErrInvalidConfig, c.VolWindow)
	}
	if c.HistoryLimit < 0 {
		return fmt.Errorf("%w: history_limit must be >= 0, got %d", ErrInvalidConfig, c.HistoryLimit)
	}
	return nil
}
