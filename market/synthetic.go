package market

import (
	"math"
	"math/rand"
	"time"
)

// SyntheticConfig parameterizes the sample-data generator.
type SyntheticConfig struct {
	Start      time.Time
	Days       int
	StartPrice float64
	DailyVol   float64 // per-day stddev of log returns, e.g. 0.03
	Drift      float64 // per-day log drift, e.g. 0.0005
	Seed       int64
}

// Synthetic generates a daily geometric random walk. The same seed always
// produces the same series, which keeps demos and tests reproducible.
func Synthetic(cfg SyntheticConfig) []PricePoint {
	rng := rand.New(rand.NewSource(cfg.Seed))

	price := cfg.StartPrice
	day := cfg.Start.UTC()

	points := make([]PricePoint, 0, cfg.Days)
	for i := 0; i < cfg.Days; i++ {
		points = append(points, PricePoint{Time: day, Price: price})

		r := cfg.Drift - 0.5*cfg.DailyVol*cfg.DailyVol + cfg.DailyVol*rng.NormFloat64()
		price *= math.Exp(r)
		day = day.AddDate(0, 0, 1)
	}
	return points
}
