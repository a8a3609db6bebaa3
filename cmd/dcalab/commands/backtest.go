package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmlee/dcalab/internal/analytics"
	"github.com/jmlee/dcalab/internal/strategy"
)

// backtestCmd represents the backtest command
var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Run a single strategy against historical prices",
	Long: `Simulates one capital deployment strategy over the loaded price
history and prints its performance report.

Example:
  go run ./cmd/dcalab backtest run --strategy dca --base 100
  go run ./cmd/dcalab backtest run --strategy dip --base 100 --dip-amount 1000 --dip-threshold 0.1 --holding 30
  go run ./cmd/dcalab backtest run --strategy lump_sum --total 36500 --export out/lump.json`,
}

var (
	backtestRunCmd = &cobra.Command{
		Use:   "run",
		Short: "Run a backtest",
		RunE:  runBacktest,
	}

	// Flags
	btStrategy     string
	btBase         float64
	btTotal        float64
	btDipAmount    float64
	btDipThreshold float64
	btHolding      int
	btDipTrigger   string
	btRSIPeriod    int
	btExport       string
)

func init() {
	rootCmd.AddCommand(backtestCmd)
	backtestCmd.AddCommand(backtestRunCmd)

	// Flags
	backtestRunCmd.Flags().StringVar(&btStrategy, "strategy", "dca", "strategy kind (dca|dip|lump_sum|rsi|ma_cross)")
	backtestRunCmd.Flags().Float64Var(&btBase, "base", 100, "base daily investment")
	backtestRunCmd.Flags().Float64Var(&btTotal, "total", 0, "total investment (lump_sum; default base * days)")
	backtestRunCmd.Flags().Float64Var(&btDipAmount, "dip-amount", 1000, "extra investment on dips")
	backtestRunCmd.Flags().Float64Var(&btDipThreshold, "dip-threshold", 0.1, "drop from rolling high that counts as a dip")
	backtestRunCmd.Flags().IntVar(&btHolding, "holding", 30, "rolling high lookback in days")
	backtestRunCmd.Flags().StringVar(&btDipTrigger, "dip-trigger", "rolling_high", "dip trigger (daily_return|rolling_high)")
	backtestRunCmd.Flags().IntVar(&btRSIPeriod, "rsi-period", 14, "oscillator lookback period")
	backtestRunCmd.Flags().StringVar(&btExport, "export", "", "write analysis JSON to this path")
}

func runBacktest(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	engine, analyzer, err := buildSimulation(cfg, log)
	if err != nil {
		return err
	}

	kind := strategy.Kind(btStrategy)
	params := strategy.Params{
		Base:            btBase,
		TotalInvestment: btTotal,
		DipAmount:       btDipAmount,
		DipThreshold:    btDipThreshold,
		HoldingPeriod:   btHolding,
		Trigger:         strategy.DipTrigger(btDipTrigger),
		RSIPeriod:       btRSIPeriod,
		RSIThresholds:   map[int]float64{30: 2000, 20: 5000},
		MAMultipliers:   map[int]float64{20: 2, 50: 3},
	}
	if kind == strategy.KindLumpSum && params.TotalInvestment == 0 {
		params.TotalInvestment = btBase * float64(engine.Series().Len())
	}

	strat, err := strategy.New(kind, params)
	if err != nil {
		return err
	}

	fmt.Printf("Running %s over %d days...\n\n", strat.Name(), engine.Series().Len())

	portfolio, err := engine.Run(cmd.Context(), strat)
	if err != nil {
		return fmt.Errorf("backtest failed: %w", err)
	}

	analysis, err := analyzer.Analyze(portfolio)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	fmt.Println(strings.TrimRight(analytics.Report(strat.Name(), analysis), "\n"))

	if btExport != "" {
		if err := analytics.WriteFile(btExport, analysis); err != nil {
			return fmt.Errorf("export analysis: %w", err)
		}
		fmt.Printf("\nAnalysis written to %s\n", btExport)
	}

	return nil
}
