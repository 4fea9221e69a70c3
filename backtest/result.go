package backtest

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/putsim/journal"
)

// Result is the immutable snapshot of one completed run.
type Result struct {
	StartBTC decimal.Decimal
	StartUSD decimal.Decimal
	EndBTC   decimal.Decimal
	EndUSD   decimal.Decimal

	// Trades is the engine's full append-only ledger.
	Trades []journal.TradeRecord

	TotalTrades           int
	AssignedPuts          int
	TotalPremiumCollected decimal.Decimal

	// Start/End are the effective range actually processed, after sorting
	// and filtering.
	Start time.Time
	End   time.Time

	// FinalPrice is the last processed price, the default reference spot
	// for metrics.
	FinalPrice float64
}
