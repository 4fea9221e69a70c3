package indicators

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistVolDefaultBeforeWarmup(t *testing.T) {
	t.Parallel()

	hv := NewHistoricalVolatility(30)
	assert.Equal(t, 31, hv.Warmup())

	// Fewer than window+1 points must return exactly the default.
	for i := 0; i < 30; i++ {
		assert.False(t, hv.Ready())
		assert.Equal(t, DefaultVol, hv.Value())
		hv.Update(100 + float64(i))
	}

	hv.Update(130)
	assert.True(t, hv.Ready())
	assert.NotEqual(t, DefaultVol, hv.Value())
}

func TestHistVolKnownValue(t *testing.T) {
	t.Parallel()

	// window=2 needs three closes and two returns; compute the expected
	// sample stddev by hand.
	hv := NewHistoricalVolatility(2)
	hv.Update(100)
	hv.Update(110)
	hv.Update(105)

	r1 := math.Log(110.0 / 100.0)
	r2 := math.Log(105.0 / 110.0)
	mean := (r1 + r2) / 2
	variance := ((r1-mean)*(r1-mean) + (r2-mean)*(r2-mean)) / 1 // n-1 = 1
	want := math.Sqrt(variance) * math.Sqrt(365)

	assert.True(t, hv.Ready())
	assert.InDelta(t, want, hv.Value(), 1e-12)
}

func TestHistVolClampFloor(t *testing.T) {
	t.Parallel()

	// A constant window has zero stddev; the clamp floor applies.
	hv := NewHistoricalVolatility(5)
	for i := 0; i < 10; i++ {
		hv.Update(250)
	}
	assert.Equal(t, MinVol, hv.Value())
}

func TestHistVolClampCeiling(t *testing.T) {
	t.Parallel()

	// Wildly alternating prices blow past any sane annualized vol.
	hv := NewHistoricalVolatility(5)
	px := []float64{100, 300, 90, 280, 85, 310}
	for _, p := range px {
		hv.Update(p)
	}
	assert.Equal(t, MaxVol, hv.Value())
}

func TestHistVolBadPricesFallBack(t *testing.T) {
	t.Parallel()

	// A zero price produces -Inf log returns; the estimator degrades to the
	// default instead of propagating it.
	hv := NewHistoricalVolatility(2)
	hv.Update(100)
	hv.Update(0)
	hv.Update(105)
	assert.Equal(t, DefaultVol, hv.Value())

	hv.Reset()
	hv.Update(100)
	hv.Update(-5)
	hv.Update(105)
	assert.Equal(t, DefaultVol, hv.Value())
}

func TestHistVolSlidingWindow(t *testing.T) {
	t.Parallel()

	// Only the trailing window counts: an early spike must age out.
	hv := NewHistoricalVolatility(3)
	hv.Update(100)
	hv.Update(500) // spike
	for _, p := range []float64{100, 101, 102, 103} {
		hv.Update(p)
	}

	fresh := NewHistoricalVolatility(3)
	for _, p := range []float64{100, 101, 102, 103} {
		fresh.Update(p)
	}

	assert.Equal(t, fresh.Value(), hv.Value())
}

func TestHistVolReset(t *testing.T) {
	t.Parallel()

	hv := NewHistoricalVolatility(2)
	for _, p := range []float64{100, 110, 105} {
		hv.Update(p)
	}
	assert.True(t, hv.Ready())

	hv.Reset()
	assert.False(t, hv.Ready())
	assert.Equal(t, DefaultVol, hv.Value())
}
