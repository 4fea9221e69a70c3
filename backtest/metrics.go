package backtest

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Metrics are derived from a Result and a reference spot price. Growth
// figures with a zero baseline are undefined; their Valid flags guard
// against dividing by zero rather than inventing a number.
type Metrics struct {
	StartValue float64 // startBTC*spot + startUSD
	EndValue   float64 // endBTC*spot + endUSD

	BTCGrowthPercent float64
	BTCGrowthValid   bool

	ValueGrowthPercent float64
	ValueGrowthValid   bool
}

// ComputeMetrics values both portfolio snapshots at the same reference spot
// and derives growth percentages.
func ComputeMetrics(res Result, referenceSpot float64) (Metrics, error) {
	if !(referenceSpot > 0) {
		return Metrics{}, fmt.Errorf("backtest: reference spot must be positive, got %v", referenceSpot)
	}

	spot := decimal.NewFromFloat(referenceSpot)
	startValue := res.StartBTC.Mul(spot).Add(res.StartUSD)
	endValue := res.EndBTC.Mul(spot).Add(res.EndUSD)

	m := Metrics{
		StartValue: startValue.InexactFloat64(),
		EndValue:   endValue.InexactFloat64(),
	}

	hundred := decimal.NewFromInt(100)

	if res.StartBTC.IsPositive() {
		growth := res.EndBTC.Sub(res.StartBTC).Div(res.StartBTC).Mul(hundred)
		m.BTCGrowthPercent = growth.InexactFloat64()
		m.BTCGrowthValid = true
	}

	if startValue.IsPositive() {
		growth := endValue.Sub(startValue).Div(startValue).Mul(hundred)
		m.ValueGrowthPercent = growth.InexactFloat64()
		m.ValueGrowthValid = true
	}

	return m, nil
}
