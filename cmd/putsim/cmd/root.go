package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "putsim",
	Short: "A cash-secured put-selling strategy backtester",
	Long: `Putsim simulates a recurring cash-secured put-selling strategy ("the wheel")
against a historical price series.

It provides tools for:
  - Backtesting the strategy over OHLCV CSV data
  - Flat-percentage or Black-Scholes premium pricing
  - Historical-volatility estimation from the price stream
  - Journaling trades and portfolio snapshots to SQLite or CSV
  - Generating reproducible synthetic sample data`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
		slog.SetDefault(slog.New(handler))
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
