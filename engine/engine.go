// Package engine implements the cash-secured put strategy state machine:
// it owns the two-asset portfolio, the single active option contract, and
// the append-only trade ledger, and advances them one price tick at a time.
package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/putsim/indicators"
	"github.com/rustyeddy/putsim/journal"
	"github.com/rustyeddy/putsim/market"
	"github.com/rustyeddy/putsim/pricing"
)

const yearDays = 365.0

// Engine holds the strategy state for one backtest run. It is exclusively
// owned by the run driving it and is not safe for concurrent use.
type Engine struct {
	cfg Config

	btc decimal.Decimal
	usd decimal.Decimal

	contract *Contract // nil when no put is open
	serial   int

	ledger  []journal.TradeRecord
	history []market.PricePoint
	vol     *indicators.HistoricalVolatility

	totalPremium decimal.Decimal
	assigned     int

	journal journal.Journal
}

// New validates cfg and builds an engine. A nil journal records nothing.
func New(cfg Config, j journal.Journal) (*Engine, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if j == nil {
		j = journal.Nop{}
	}

	return &Engine{
		cfg:     cfg,
		btc:     decimal.NewFromFloat(cfg.InitialBTC),
		usd:     decimal.NewFromFloat(cfg.InitialUSD),
		vol:     indicators.NewHistoricalVolatility(cfg.VolWindow),
		journal: j,
	}, nil
}

// Tick advances the engine by one price observation.
//
// Order per tick: settle any contract past expiry, then consider selling a
// new put, then record a portfolio snapshot. A contract whose expiry equals
// the tick timestamp is NOT yet settled (strict inequality); it settles on
// the next tick.
//
// Ticks at or before the last observed timestamp are dropped whole: history
// must advance strictly, and a replayed timestamp would double-drive the
// state machine.
func (e *Engine) Tick(p market.PricePoint) error {
	if !(p.Price > 0) || math.IsInf(p.Price, 0) {
		return fmt.Errorf("tick at %s: %w: price %v",
			p.Time.Format(time.RFC3339), pricing.ErrNumericDomain, p.Price)
	}
	if n := len(e.history); n > 0 && !p.Time.After(e.history[n-1].Time) {
		return nil
	}

	e.observe(p)

	if err := e.settle(p); err != nil {
		return err
	}
	if err := e.issue(p); err != nil {
		return err
	}

	value := e.btc.Mul(decimal.NewFromFloat(p.Price)).Add(e.usd)
	return e.journal.RecordSnapshot(journal.Snapshot{
		Time:       p.Time,
		BTCPrice:   p.Price,
		BTCBalance: e.btc,
		USDBalance: e.usd,
		Value:      value,
	})
}

// observe appends p to the bounded history window and feeds the volatility
// estimate. Callers have already enforced strictly increasing timestamps.
func (e *Engine) observe(p market.PricePoint) {
	e.history = append(e.history, p)
	if len(e.history) > e.cfg.HistoryLimit {
		e.history = e.history[1:]
	}
	e.vol.Update(p.Price)
}

// settle closes the active contract if the tick is strictly past expiry.
// Below the strike the put is assigned: the entire cash balance buys the
// underlying at the strike. At or above the strike it expires worthless for
// the buyer and the premium, credited at sale time, is simply kept.
func (e *Engine) settle(p market.PricePoint) error {
	c := e.contract
	if c == nil || !p.Time.After(c.ExpiresAt) {
		return nil
	}

	c.Active = false
	e.contract = nil

	spot := decimal.NewFromFloat(p.Price)
	if spot.Cmp(c.Strike) < 0 {
		c.Assigned = true
		e.assigned++

		bought := e.usd.Div(c.Strike)
		e.btc = e.btc.Add(bought)
		e.usd = decimal.Zero

		return e.append(p, journal.ActionPutAssigned, c)
	}

	return e.append(p, journal.ActionPutExpired, c)
}

// issue sells a new put when cash is available and no contract is open.
// The single-position rule is load-bearing: even with spare cash, one
// active contract blocks further issuance.
func (e *Engine) issue(p market.PricePoint) error {
	if e.contract != nil || !e.usd.IsPositive() {
		return nil
	}

	spot := decimal.NewFromFloat(p.Price)
	strike := spot.Mul(decimal.NewFromFloat(1 - e.cfg.StrikeDiscountPercent))

	premium, err := e.premium(p, strike)
	if err != nil {
		return err
	}

	e.serial++
	c := &Contract{
		ID:        fmt.Sprintf("CSP-%06d", e.serial),
		Strike:    strike,
		Premium:   premium,
		CreatedAt: p.Time,
		ExpiresAt: p.Time.AddDate(0, 0, e.cfg.DaysToExpiration),
		Active:    true,
	}
	e.contract = c

	e.usd = e.usd.Add(premium)
	e.totalPremium = e.totalPremium.Add(premium)

	return e.append(p, journal.ActionSellPut, c)
}

// premium prices the new contract. Flat mode is a strike percentage;
// black-scholes mode uses the volatility estimate over history up to and
// including the current tick — never ahead of it.
func (e *Engine) premium(p market.PricePoint, strike decimal.Decimal) (decimal.Decimal, error) {
	switch e.cfg.PricingMode {
	case PricingBlackScholes:
		years := float64(e.cfg.DaysToExpiration) / yearDays
		sigma := e.vol.Value()

		prem, err := pricing.PutPrice(p.Price, strike.InexactFloat64(), years, sigma, e.cfg.RiskFreeRate)
		if err != nil {
			return decimal.Zero, fmt.Errorf("price put at %s: %w", p.Time.Format(time.RFC3339), err)
		}
		return decimal.NewFromFloat(prem), nil

	default: // PricingFlat
		return strike.Mul(decimal.NewFromFloat(e.cfg.PutPremiumPercent)), nil
	}
}

func (e *Engine) append(p market.PricePoint, action journal.Action, c *Contract) error {
	rec := journal.TradeRecord{
		Time:       p.Time,
		Action:     action,
		BTCPrice:   p.Price,
		Strike:     c.Strike,
		Premium:    c.Premium,
		BTCBalance: e.btc,
		USDBalance: e.usd,
	}
	e.ledger = append(e.ledger, rec)
	return e.journal.RecordTrade(rec)
}

// Portfolio returns the current balances.
func (e *Engine) Portfolio() (btc, usd decimal.Decimal) {
	return e.btc, e.usd
}

// Ledger returns a copy of the append-only trade log.
func (e *Engine) Ledger() []journal.TradeRecord {
	out := make([]journal.TradeRecord, len(e.ledger))
	copy(out, e.ledger)
	return out
}

// ActiveContract returns a copy of the open contract, if any.
func (e *Engine) ActiveContract() (Contract, bool) {
	if e.contract == nil {
		return Contract{}, false
	}
	return *e.contract, true
}

// TotalPremium is the sum of all premiums collected so far.
func (e *Engine) TotalPremium() decimal.Decimal { return e.totalPremium }

// AssignedPuts is the number of contracts that settled by assignment.
func (e *Engine) AssignedPuts() int { return e.assigned }

// Config returns the engine's immutable configuration.
func (e *Engine) Config() Config { return e.cfg }
