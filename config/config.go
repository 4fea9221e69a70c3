// Package config loads and validates the backtest configuration from YAML
// or JSON files.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/putsim/engine"
)

// Config is the complete run configuration.
type Config struct {
	Strategy engine.Config  `json:"strategy" yaml:"strategy"`
	Backtest BacktestConfig `json:"backtest" yaml:"backtest"`
	Journal  JournalConfig  `json:"journal" yaml:"journal"`
}

// BacktestConfig bounds the run. Empty dates leave the series unfiltered.
type BacktestConfig struct {
	Start string `json:"start,omitempty" yaml:"start,omitempty"` // RFC 3339 or YYYY-MM-DD
	End   string `json:"end,omitempty" yaml:"end,omitempty"`
}

// JournalConfig selects persistence for the run's ledger and snapshots.
type JournalConfig struct {
	Type          string `json:"type" yaml:"type"` // "none", "csv" or "sqlite"
	TradesFile    string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	SnapshotsFile string `json:"snapshots_file,omitempty" yaml:"snapshots_file,omitempty"`
	DBPath        string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// LoadFromFile loads configuration from a file (YAML first, JSON fallback).
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration, choosing the format by extension.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks the whole configuration, strategy parameters included.
func (c *Config) Validate() error {
	if err := c.Strategy.Validate(); err != nil {
		return err
	}

	if _, err := c.StartTime(); err != nil {
		return err
	}
	if _, err := c.EndTime(); err != nil {
		return err
	}

	switch c.Journal.Type {
	case "", "none":
	case "csv":
		if c.Journal.TradesFile == "" || c.Journal.SnapshotsFile == "" {
			return fmt.Errorf("journal trades_file and snapshots_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'none', 'csv' or 'sqlite', got %q", c.Journal.Type)
	}
	return nil
}

// StartTime parses Backtest.Start; zero when unset.
func (c *Config) StartTime() (time.Time, error) {
	return parseDate("backtest.start", c.Backtest.Start)
}

// EndTime parses Backtest.End; zero when unset.
func (c *Config) EndTime() (time.Time, error) {
	return parseDate("backtest.end", c.Backtest.End)
}

func parseDate(field, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("%s: bad date %q (want RFC 3339 or YYYY-MM-DD)", field, s)
}

// Default returns a configuration with sensible demo values.
func Default() *Config {
	return &Config{
		Strategy: engine.Config{
			InitialBTC:            0,
			InitialUSD:            100_000,
			PutPremiumPercent:     0.02,
			StrikeDiscountPercent: 0.05,
			DaysToExpiration:      7,
			PricingMode:           engine.PricingFlat,
			RiskFreeRate:          0.05,
		},
		Journal: JournalConfig{
			Type:   "sqlite",
			DBPath: "./putsim.sqlite",
		},
	}
}
