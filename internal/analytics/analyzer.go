package analytics

import (
	"fmt"
	"math"

	"github.com/jmlee/dcalab/internal/backtest"
	"github.com/jmlee/dcalab/pkg/logger"
)

const tradingDaysPerYear = 252

// Analyzer derives a StrategyAnalysis from a portfolio trajectory
type Analyzer struct {
	riskFreeRate      float64 // annual, fraction
	drawdownThreshold float64 // fraction, negative
	logger            *logger.Logger
}

// NewAnalyzer creates an analyzer. riskFreeRate is the annual risk-free
// rate as a fraction (e.g. 0.04); drawdownThreshold is the segmentation
// cutoff as a negative fraction (e.g. -0.10).
func NewAnalyzer(riskFreeRate, drawdownThreshold float64, log *logger.Logger) *Analyzer {
	return &Analyzer{
		riskFreeRate:      riskFreeRate,
		drawdownThreshold: drawdownThreshold,
		logger:            log,
	}
}

// Analyze computes the full metric bundle for a portfolio. It is a pure
// function of the trajectory; degenerate statistics (zero variance,
// zero invested, no downside) fall back to documented values instead of
// propagating NaN or infinity.
func (a *Analyzer) Analyze(p *backtest.Portfolio) (*StrategyAnalysis, error) {
	if p == nil || p.Len() == 0 {
		return nil, fmt.Errorf("portfolio is empty")
	}

	final := p.Final()
	returns := dailyReturns(p.Values())

	analysis := &StrategyAnalysis{
		TotalInvested: final.Invested,
		FinalValue:    final.Value,
		AssetHeld:     final.AssetHeld,
		ROI:           roi(final.Value, final.Invested),

		MaxDrawdown:  maxDrawdown(p.Values()),
		Volatility:   stdev(returns) * math.Sqrt(tradingDaysPerYear) * 100,
		SharpeRatio:  a.sharpe(returns),
		SortinoRatio: a.sortino(returns),

		WinRate:                winRate(returns),
		ProfitFactor:           profitFactor(returns),
		MaxConsecutiveLossDays: maxConsecutiveLosses(returns),

		YearlyReturns:  yearlyReturns(p),
		MonthlyReturns: monthlyReturns(p),

		DrawdownPeriods: a.drawdownPeriods(p),
	}

	a.logger.WithFields(map[string]interface{}{
		"strategy":     p.Strategy,
		"roi":          analysis.ROI,
		"sharpe":       analysis.SharpeRatio,
		"max_drawdown": analysis.MaxDrawdown,
	}).Debug("Strategy analysis completed")

	return analysis, nil
}

// dailyReturns computes period-over-period value changes. The first
// period is undefined and excluded from all return-based statistics.
func dailyReturns(values []float64) []float64 {
	returns := make([]float64, 0, len(values))
	for i := 1; i < len(values); i++ {
		if values[i-1] == 0 {
			continue
		}
		returns = append(returns, values[i]/values[i-1]-1)
	}
	return returns
}

func roi(finalValue, totalInvested float64) float64 {
	if totalInvested == 0 {
		return 0
	}
	return (finalValue - totalInvested) / totalInvested * 100
}

func maxDrawdown(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	peak := values[0]
	minDD := 0.0
	for _, v := range values {
		if v > peak {
			peak = v
		}
		dd := (v - peak) / peak
		if dd < minDD {
			minDD = dd
		}
	}

	return minDD * 100
}

// mean returns the arithmetic mean; 0 for an empty slice
func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// stdev returns the sample standard deviation; 0 when undefined
func stdev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}

	m := mean(xs)
	var variance float64
	for _, x := range xs {
		diff := x - m
		variance += diff * diff
	}
	variance /= float64(len(xs) - 1)

	return math.Sqrt(variance)
}

func (a *Analyzer) excessReturns(returns []float64) []float64 {
	excess := make([]float64, len(returns))
	daily := a.riskFreeRate / tradingDaysPerYear
	for i, r := range returns {
		excess[i] = r - daily
	}
	return excess
}

// sharpe is 0 when the excess-return series has zero or undefined variance
func (a *Analyzer) sharpe(returns []float64) float64 {
	excess := a.excessReturns(returns)
	sd := stdev(excess)
	if len(excess) == 0 || sd == 0 {
		return 0
	}
	return math.Sqrt(tradingDaysPerYear) * mean(excess) / sd
}

// sortino is capped at RatioCap when there is no downside risk
func (a *Analyzer) sortino(returns []float64) float64 {
	excess := a.excessReturns(returns)
	if len(excess) == 0 {
		return 0
	}

	var downside []float64
	for _, r := range excess {
		if r < 0 {
			downside = append(downside, r)
		}
	}

	sd := stdev(downside)
	if len(downside) == 0 || sd == 0 {
		return RatioCap
	}

	return math.Sqrt(tradingDaysPerYear) * mean(excess) / sd
}

func winRate(returns []float64) float64 {
	if len(returns) == 0 {
		return 0
	}

	wins := 0
	for _, r := range returns {
		if r > 0 {
			wins++
		}
	}

	return float64(wins) / float64(len(returns)) * 100
}

// profitFactor is capped at RatioCap when there are gains but no losses
func profitFactor(returns []float64) float64 {
	var gains, losses float64
	for _, r := range returns {
		if r > 0 {
			gains += r
		} else if r < 0 {
			losses += -r
		}
	}

	if losses == 0 {
		if gains > 0 {
			return RatioCap
		}
		return 0
	}

	return gains / losses
}

func maxConsecutiveLosses(returns []float64) int {
	maxRun, run := 0, 0
	for _, r := range returns {
		if r < 0 {
			run++
			if run > maxRun {
				maxRun = run
			}
		} else {
			run = 0
		}
	}
	return maxRun
}
