package analytics

import (
	"fmt"
	"sort"
	"strings"
)

// Report renders a plain-text analysis report for one strategy
func Report(name string, a *StrategyAnalysis) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Strategy Analysis Report: %s\n", name)
	b.WriteString(strings.Repeat("=", 50))
	b.WriteString("\n\n")

	b.WriteString("Investment Summary:\n")
	fmt.Fprintf(&b, "- Total Invested: $%.2f\n", a.TotalInvested)
	fmt.Fprintf(&b, "- Final Value: $%.2f\n", a.FinalValue)
	fmt.Fprintf(&b, "- Asset Held: %.6f units\n", a.AssetHeld)
	fmt.Fprintf(&b, "- Return on Investment: %.2f%%\n", a.ROI)
	b.WriteString("\n")

	b.WriteString("Risk Metrics:\n")
	fmt.Fprintf(&b, "- Maximum Drawdown: %.2f%%\n", a.MaxDrawdown)
	fmt.Fprintf(&b, "- Annualized Volatility: %.2f%%\n", a.Volatility)
	fmt.Fprintf(&b, "- Sharpe Ratio: %.2f\n", a.SharpeRatio)
	fmt.Fprintf(&b, "- Sortino Ratio: %.2f\n", a.SortinoRatio)
	b.WriteString("\n")

	b.WriteString("Trading Performance:\n")
	fmt.Fprintf(&b, "- Win Rate: %.2f%%\n", a.WinRate)
	fmt.Fprintf(&b, "- Profit Factor: %.2f\n", a.ProfitFactor)
	fmt.Fprintf(&b, "- Max Consecutive Loss Days: %d\n", a.MaxConsecutiveLossDays)
	b.WriteString("\n")

	b.WriteString("Yearly Returns:\n")
	years := make([]int, 0, len(a.YearlyReturns))
	for year := range a.YearlyReturns {
		years = append(years, year)
	}
	sort.Ints(years)
	for _, year := range years {
		fmt.Fprintf(&b, "- %d: %.2f%%\n", year, a.YearlyReturns[year])
	}

	if len(a.DrawdownPeriods) > 0 {
		b.WriteString("\nSignificant Drawdown Periods:\n")
		for _, dd := range a.DrawdownPeriods {
			fmt.Fprintf(&b, "- %s to %s: %.2f%% (%d days)\n",
				dd.Start.Format(dateLayout), dd.End.Format(dateLayout), dd.Depth, dd.Duration)
		}
	}

	return b.String()
}
