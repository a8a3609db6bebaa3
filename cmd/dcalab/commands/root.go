package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	dataFile string
	verbose  bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dcalab",
	Short: "dcalab - BTC capital deployment strategy lab",
	Long: `dcalab simulates capital deployment strategies against historical
BTC prices, analyzes their risk and return profiles, and sweeps
parameter grids to find the best-performing configurations.

Usage:
  go run ./cmd/dcalab [command]

Examples:
  go run ./cmd/dcalab fetch --days 365 --out data/btc_prices.csv
  go run ./cmd/dcalab backtest run --strategy dca --base 100
  go run ./cmd/dcalab sweep run --config config/sweep.yaml
  go run ./cmd/dcalab api`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&dataFile, "data", "", "price history CSV (default from config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
