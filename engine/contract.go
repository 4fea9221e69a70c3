package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// Contract is a single cash-secured put sold by the engine.
//
// Lifecycle: ACTIVE at creation, then settled exactly once to either
// expired (Assigned=false) or assigned (Assigned=true). A settled contract
// is never reopened.
type Contract struct {
	ID        string
	Strike    decimal.Decimal
	Premium   decimal.Decimal
	CreatedAt time.Time
	ExpiresAt time.Time
	Active    bool
	Assigned  bool
}
