// Package journal persists the engine's trade ledger and portfolio
// snapshots. Backends: SQLite, CSV, and a no-op for runs that only need the
// in-memory result.
package journal

import (
	"time"

	"github.com/shopspring/decimal"
)

// Action classifies a ledger entry.
type Action string

const (
	ActionSellPut     Action = "SELL_PUT"
	ActionPutExpired  Action = "PUT_EXPIRED"
	ActionPutAssigned Action = "PUT_ASSIGNED"
)

// TradeRecord is one append-only ledger entry. Strike and Premium refer to
// the contract the entry settles or opens; balances are the portfolio state
// immediately after the event.
//
// Balances are decimals so the persisted ledger is exact; BTCPrice is the
// raw market observation and stays float64.
type TradeRecord struct {
	Time       time.Time
	Action     Action
	BTCPrice   float64
	Strike     decimal.Decimal
	Premium    decimal.Decimal
	BTCBalance decimal.Decimal
	USDBalance decimal.Decimal
}

// Snapshot is the portfolio state after a tick, valued at that tick's price.
type Snapshot struct {
	Time       time.Time
	BTCPrice   float64
	BTCBalance decimal.Decimal
	USDBalance decimal.Decimal
	Value      decimal.Decimal // btc*price + usd
}

type Journal interface {
	RecordTrade(TradeRecord) error
	RecordSnapshot(Snapshot) error
	Close() error
}

// Nop discards everything. Used when a run doesn't need persistence.
type Nop struct{}

func (Nop) RecordTrade(TradeRecord) error { return nil }
func (Nop) RecordSnapshot(Snapshot) error { return nil }
func (Nop) Close() error                  { return nil }
