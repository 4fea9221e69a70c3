package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/putsim/engine"
)

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()

	cfg := Default()
	assert.NoError(t, cfg.Validate())
}

func TestYAMLRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "putsim.yaml")

	cfg := Default()
	cfg.Strategy.PricingMode = engine.PricingBlackScholes
	cfg.Backtest.Start = "2024-01-01"
	cfg.Backtest.End = "2024-12-31"
	require.NoError(t, cfg.SaveToFile(path))

	got, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, engine.PricingBlackScholes, got.Strategy.PricingMode)
	assert.Equal(t, cfg.Strategy.InitialUSD, got.Strategy.InitialUSD)

	start, err := got.StartTime()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), start)
}

func TestLoadJSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "putsim.json")

	cfg := Default()
	require.NoError(t, cfg.SaveToFile(path))

	got, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Strategy.DaysToExpiration, got.Strategy.DaysToExpiration)
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.yaml")

	data := []byte(`
strategy:
  initial_usd: 1000
  put_premium_percent: 0.02
  strike_discount_percent: 0.05
  days_to_expiration: 0
journal:
  type: none
`)
	require.NoError(t, os.WriteFile(path, data, 0644))

	_, err := LoadFromFile(path)
	assert.ErrorIs(t, err, engine.ErrInvalidConfig)
}

func TestValidateJournal(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Journal = JournalConfig{Type: "csv"}
	assert.Error(t, cfg.Validate(), "csv journal needs file paths")

	cfg.Journal = JournalConfig{Type: "sqlite"}
	assert.Error(t, cfg.Validate(), "sqlite journal needs a db path")

	cfg.Journal = JournalConfig{Type: "bolt"}
	assert.Error(t, cfg.Validate())

	cfg.Journal = JournalConfig{Type: "none"}
	assert.NoError(t, cfg.Validate())
}

func TestBadDates(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Backtest.Start = "last tuesday"
	assert.Error(t, cfg.Validate())
}
