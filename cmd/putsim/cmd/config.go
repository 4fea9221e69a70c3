package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/putsim/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Generate or validate configuration files",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default configuration file",
	RunE:  runConfigInit,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	RunE:  runConfigValidate,
}

var (
	configInitOutput   string
	configValidatePath string
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configValidateCmd)

	configInitCmd.Flags().StringVarP(&configInitOutput, "output", "o", "putsim.yaml", "output config file path")
	configValidateCmd.Flags().StringVarP(&configValidatePath, "file", "f", "", "path to config file (required)")
	configValidateCmd.MarkFlagRequired("file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if err := cfg.SaveToFile(configInitOutput); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	fmt.Printf("created default configuration: %s\n", configInitOutput)
	fmt.Println("\nEdit the file and run with:")
	fmt.Printf("  putsim backtest --csv prices.csv --config %s\n", configInitOutput)
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(configValidatePath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Printf("configuration valid: %s\n", configValidatePath)
	fmt.Printf("  Strategy: %s pricing, %.1f%% discount, %d DTE\n",
		cfg.Strategy.PricingMode, cfg.Strategy.StrikeDiscountPercent*100, cfg.Strategy.DaysToExpiration)
	fmt.Printf("  Balances: %.4f BTC / %.2f USD\n", cfg.Strategy.InitialBTC, cfg.Strategy.InitialUSD)
	fmt.Printf("  Journal:  %s\n", cfg.Journal.Type)
	return nil
}
