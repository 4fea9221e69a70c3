package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(n int) time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func TestSortChronological(t *testing.T) {
	t.Parallel()

	in := []PricePoint{
		{Time: day(2), Price: 3},
		{Time: day(0), Price: 1},
		{Time: day(1), Price: 2},
	}

	got := SortChronological(in)

	assert.Equal(t, []float64{1, 2, 3}, prices(got))
	// Input untouched.
	assert.Equal(t, day(2), in[0].Time)
}

func TestSortChronologicalStable(t *testing.T) {
	t.Parallel()

	// Duplicate timestamps keep their input order.
	in := []PricePoint{
		{Time: day(1), Price: 10},
		{Time: day(0), Price: 1},
		{Time: day(1), Price: 20},
	}

	got := SortChronological(in)
	assert.Equal(t, []float64{1, 10, 20}, prices(got))
}

func TestFilterRange(t *testing.T) {
	t.Parallel()

	in := []PricePoint{
		{Time: day(0), Price: 1},
		{Time: day(1), Price: 2},
		{Time: day(2), Price: 3},
		{Time: day(3), Price: 4},
	}

	tests := []struct {
		name     string
		from, to time.Time
		want     []float64
	}{
		{"unbounded", time.Time{}, time.Time{}, []float64{1, 2, 3, 4}},
		{"inclusive both ends", day(1), day(2), []float64{2, 3}},
		{"from only", day(2), time.Time{}, []float64{3, 4}},
		{"to only", time.Time{}, day(0), []float64{1}},
		{"empty window", day(10), day(20), []float64{}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := FilterRange(in, tt.from, tt.to)
			assert.Equal(t, tt.want, prices(got))
		})
	}
}

func TestSyntheticDeterministic(t *testing.T) {
	t.Parallel()

	cfg := SyntheticConfig{
		Start:      day(0),
		Days:       50,
		StartPrice: 42000,
		DailyVol:   0.03,
		Seed:       7,
	}

	a := Synthetic(cfg)
	b := Synthetic(cfg)
	assert.Equal(t, a, b)

	assert.Len(t, a, 50)
	assert.Equal(t, 42000.0, a[0].Price)
	assert.Equal(t, day(0), a[0].Time)
	assert.Equal(t, day(49), a[49].Time)

	for i, p := range a {
		assert.Greater(t, p.Price, 0.0, "point %d", i)
	}

	cfg.Seed = 8
	c := Synthetic(cfg)
	assert.NotEqual(t, a, c)
}

func prices(points []PricePoint) []float64 {
	out := make([]float64, 0, len(points))
	for _, p := range points {
		out = append(out, p.Price)
	}
	return out
}
