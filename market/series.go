package market

import (
	"sort"
	"time"
)

// SortChronological returns a copy of points sorted ascending by timestamp.
// The sort is stable: points sharing a timestamp keep their original order.
// The input slice is never modified.
func SortChronological(points []PricePoint) []PricePoint {
	out := make([]PricePoint, len(points))
	copy(out, points)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Time.Before(out[j].Time)
	})
	return out
}

// FilterRange returns the points with from <= t <= to. A zero from or to
// leaves that side unbounded. Both bounds are inclusive.
func FilterRange(points []PricePoint, from, to time.Time) []PricePoint {
	out := make([]PricePoint, 0, len(points))
	for _, p := range points {
		if !inRange(p.Time, from, to) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func inRange(t, from, to time.Time) bool {
	if !from.IsZero() && t.Before(from) {
		return false
	}
	if !to.IsZero() && t.After(to) {
		return false
	}
	return true
}
