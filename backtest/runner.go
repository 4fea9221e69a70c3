// Package backtest drives the put-selling engine over a historical price
// series and aggregates the run into a Result.
package backtest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rustyeddy/putsim/engine"
	"github.com/rustyeddy/putsim/market"
)

// ErrEmptyInput is returned when the price series is empty.
var ErrEmptyInput = errors.New("backtest: no price points")

// ErrEmptyRange is returned when the date filter excludes every point.
var ErrEmptyRange = errors.New("backtest: no price points in range")

// Runner executes one backtest. The engine is exclusively owned by the
// runner for the duration of Run; a fresh engine is needed per run.
type Runner struct {
	Engine *engine.Engine

	// From/To bound the series inclusively on both ends. Zero values leave
	// the corresponding side unbounded.
	From time.Time
	To   time.Time
}

// Run sorts a defensive copy of prices chronologically (stable, so points
// sharing a timestamp keep their input order), applies the date filter, and
// feeds every surviving point through the engine in a single pass. Any
// per-point failure aborts the run; there is no partial result.
func (r *Runner) Run(ctx context.Context, prices []market.PricePoint) (Result, error) {
	if r.Engine == nil {
		return Result{}, fmt.Errorf("backtest: Engine is required")
	}
	if len(prices) == 0 {
		return Result{}, ErrEmptyInput
	}

	series := market.SortChronological(prices)
	series = market.FilterRange(series, r.From, r.To)
	if len(series) == 0 {
		return Result{}, ErrEmptyRange
	}

	startBTC, startUSD := r.Engine.Portfolio()

	for _, p := range series {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		if err := r.Engine.Tick(p); err != nil {
			return Result{}, err
		}
	}

	endBTC, endUSD := r.Engine.Portfolio()
	ledger := r.Engine.Ledger()

	return Result{
		StartBTC:              startBTC,
		StartUSD:              startUSD,
		EndBTC:                endBTC,
		EndUSD:                endUSD,
		Trades:                ledger,
		TotalTrades:           len(ledger),
		AssignedPuts:          r.Engine.AssignedPuts(),
		TotalPremiumCollected: r.Engine.TotalPremium(),
		Start:                 series[0].Time,
		End:                   series[len(series)-1].Time,
		FinalPrice:            series[len(series)-1].Price,
	}, nil
}
