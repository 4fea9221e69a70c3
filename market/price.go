// Package market defines the price-series types consumed by the backtester
// and the codecs that produce them from CSV and JSON sources.
package market

import "time"

// PricePoint is a single observation of the underlying's price.
//
// The JSON form is the interchange format used in fixtures and exports:
// {"t": "2024-01-02T00:00:00Z", "p": 42000.5}
type PricePoint struct {
	Time  time.Time `json:"t"`
	Price float64   `json:"p"`
}

// Before reports whether p was observed strictly before q.
func (p PricePoint) Before(q PricePoint) bool {
	return p.Time.Before(q.Time)
}
