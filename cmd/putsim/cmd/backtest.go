package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/putsim/backtest"
	"github.com/rustyeddy/putsim/config"
	"github.com/rustyeddy/putsim/engine"
	"github.com/rustyeddy/putsim/internal/id"
	"github.com/rustyeddy/putsim/journal"
	"github.com/rustyeddy/putsim/market"
	"github.com/rustyeddy/putsim/report"
)

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Run the put-selling strategy over a historical price series",
	Long: `Backtest replays an OHLCV CSV (Timestamp,Open,High,Low,Close,Volume) through
the cash-secured put engine and prints the resulting holdings trajectory.

Premium pricing modes:
  flat           premium = strike * put_premium_percent
  black-scholes  Black-Scholes with historical volatility

Example:
  putsim backtest --csv data/btcusd.csv --mode black-scholes --db run.sqlite`,
	RunE: runBacktest,
}

var (
	btCSVPath    string
	btConfigPath string
	btStart      string
	btEnd        string

	btUSD      float64
	btBTC      float64
	btPremium  float64
	btDiscount float64
	btDTE      int
	btMode     string
	btRate     float64

	btJournalType string
	btDBPath      string
	btTradesFile  string
	btSnapsFile   string

	btShowTrades bool
	btJSONOut    string
	btCSVOut     string
)

func init() {
	rootCmd.AddCommand(backtestCmd)

	backtestCmd.Flags().StringVarP(&btCSVPath, "csv", "c", "", "path to OHLCV price CSV (required)")
	backtestCmd.Flags().StringVar(&btConfigPath, "config", "", "config file (overrides strategy/journal flags)")
	backtestCmd.Flags().StringVar(&btStart, "start", "", "start of date range (RFC 3339 or YYYY-MM-DD, inclusive)")
	backtestCmd.Flags().StringVar(&btEnd, "end", "", "end of date range (inclusive)")

	backtestCmd.Flags().Float64Var(&btUSD, "usd", 100_000, "initial USD balance")
	backtestCmd.Flags().Float64Var(&btBTC, "btc", 0, "initial BTC balance")
	backtestCmd.Flags().Float64Var(&btPremium, "premium", 0.02, "flat premium as fraction of strike")
	backtestCmd.Flags().Float64Var(&btDiscount, "discount", 0.05, "strike discount below spot")
	backtestCmd.Flags().IntVar(&btDTE, "dte", 7, "days to expiration per contract")
	backtestCmd.Flags().StringVar(&btMode, "mode", "flat", "premium pricing mode (flat, black-scholes)")
	backtestCmd.Flags().Float64Var(&btRate, "rate", 0.05, "annual risk-free rate (black-scholes mode)")

	backtestCmd.Flags().StringVar(&btJournalType, "journal", "none", "journal backend (none, csv, sqlite)")
	backtestCmd.Flags().StringVarP(&btDBPath, "db", "d", "./putsim.sqlite", "SQLite journal path")
	backtestCmd.Flags().StringVar(&btTradesFile, "trades-file", "./trades.csv", "CSV journal trades path")
	backtestCmd.Flags().StringVar(&btSnapsFile, "snapshots-file", "./snapshots.csv", "CSV journal snapshots path")

	backtestCmd.Flags().BoolVar(&btShowTrades, "trades", false, "print the full trade ledger")
	backtestCmd.Flags().StringVar(&btJSONOut, "json-out", "", "write the full result as JSON to this path")
	backtestCmd.Flags().StringVar(&btCSVOut, "csv-out", "", "export the ledger as CSV to this path")

	backtestCmd.MarkFlagRequired("csv")
}

func runBacktest(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	from, err := cfg.StartTime()
	if err != nil {
		return err
	}
	to, err := cfg.EndTime()
	if err != nil {
		return err
	}

	j, closeJournal, err := openJournal(cfg.Journal)
	if err != nil {
		return err
	}
	defer closeJournal()

	eng, err := engine.New(cfg.Strategy, j)
	if err != nil {
		return err
	}

	prices, err := market.LoadCSV(btCSVPath)
	if err != nil {
		return fmt.Errorf("load prices: %w", err)
	}
	slog.Debug("loaded price series", "points", len(prices), "path", btCSVPath)

	runner := &backtest.Runner{Engine: eng, From: from, To: to}
	res, err := runner.Run(context.Background(), prices)
	if err != nil {
		return fmt.Errorf("backtest: %w", err)
	}

	metrics, err := backtest.ComputeMetrics(res, res.FinalPrice)
	if err != nil {
		return err
	}

	report.PrintSummary(os.Stdout, res, metrics)
	if btShowTrades {
		report.PrintLedger(os.Stdout, res.Trades)
	}

	if btJSONOut != "" {
		if err := report.WriteJSON(btJSONOut, res); err != nil {
			return fmt.Errorf("write json: %w", err)
		}
	}
	if btCSVOut != "" {
		if err := report.WriteTradesCSV(btCSVOut, res.Trades); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
	}

	return nil
}

// buildConfig uses the config file when given, otherwise assembles one from
// flags. The date-range flags always win so a file-based config can be
// re-run over sub-ranges.
func buildConfig() (*config.Config, error) {
	var cfg *config.Config

	if btConfigPath != "" {
		loaded, err := config.LoadFromFile(btConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = &config.Config{
			Strategy: engine.Config{
				InitialBTC:            btBTC,
				InitialUSD:            btUSD,
				PutPremiumPercent:     btPremium,
				StrikeDiscountPercent: btDiscount,
				DaysToExpiration:      btDTE,
				PricingMode:           engine.PricingMode(btMode),
				RiskFreeRate:          btRate,
			},
			Journal: config.JournalConfig{
				Type:          btJournalType,
				TradesFile:    btTradesFile,
				SnapshotsFile: btSnapsFile,
				DBPath:        btDBPath,
			},
		}
	}

	if btStart != "" {
		cfg.Backtest.Start = btStart
	}
	if btEnd != "" {
		cfg.Backtest.End = btEnd
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func openJournal(jc config.JournalConfig) (journal.Journal, func(), error) {
	switch jc.Type {
	case "", "none":
		return journal.Nop{}, func() {}, nil

	case "csv":
		j, err := journal.NewCSV(jc.TradesFile, jc.SnapshotsFile)
		if err != nil {
			return nil, nil, fmt.Errorf("open csv journal: %w", err)
		}
		return j, func() { j.Close() }, nil

	case "sqlite":
		runID := id.New()
		j, err := journal.NewSQLite(jc.DBPath, runID)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite journal: %w", err)
		}
		slog.Info("journaling to sqlite", "path", jc.DBPath, "run_id", runID)
		return j, func() { j.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown journal type %q", jc.Type)
	}
}
