package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmlee/dcalab/internal/analytics"
	"github.com/jmlee/dcalab/internal/strategy"
)

// compareCmd runs every strategy with default parameters over the same
// history and prints a side by side table
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare all strategies with default parameters",
	RunE:  runCompare,
}

var compareBase float64

func init() {
	backtestCmd.AddCommand(compareCmd)

	compareCmd.Flags().Float64Var(&compareBase, "base", 100, "base daily investment")
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	engine, analyzer, err := buildSimulation(cfg, log)
	if err != nil {
		return err
	}

	days := float64(engine.Series().Len())
	candidates := []struct {
		kind   strategy.Kind
		params strategy.Params
	}{
		{strategy.KindDCA, strategy.Params{Base: compareBase}},
		{strategy.KindLumpSum, strategy.Params{TotalInvestment: compareBase * days}},
		{strategy.KindDip, strategy.Params{
			Base: compareBase, DipAmount: 10 * compareBase,
			DipThreshold: 0.1, HoldingPeriod: 30,
			Trigger: strategy.TriggerRollingHigh,
		}},
		{strategy.KindRSI, strategy.Params{
			Base: compareBase, RSIPeriod: 14,
			RSIThresholds: map[int]float64{30: 20 * compareBase, 20: 50 * compareBase},
		}},
		{strategy.KindMACross, strategy.Params{
			Base: compareBase, MAMultipliers: map[int]float64{20: 2, 50: 3},
		}},
	}

	var named []analytics.NamedAnalysis
	for _, c := range candidates {
		strat, err := strategy.New(c.kind, c.params)
		if err != nil {
			return err
		}

		portfolio, err := engine.Run(cmd.Context(), strat)
		if err != nil {
			return fmt.Errorf("backtest %s: %w", strat.Name(), err)
		}

		analysis, err := analyzer.Analyze(portfolio)
		if err != nil {
			return fmt.Errorf("analyze %s: %w", strat.Name(), err)
		}

		named = append(named, analytics.NamedAnalysis{Name: strat.Name(), Analysis: analysis})
	}

	rows := analytics.Compare(named)

	fmt.Printf("%-22s %12s %12s %10s %8s %8s %8s\n",
		"Strategy", "Invested", "Final", "ROI%", "MDD%", "Sharpe", "Win%")
	for _, row := range rows {
		fmt.Printf("%-22s %12.2f %12.2f %10.2f %8.2f %8.2f %8.2f\n",
			row.Strategy, row.TotalInvested, row.FinalValue,
			row.ROI, row.MaxDrawdown, row.SharpeRatio, row.WinRate)
	}

	return nil
}
