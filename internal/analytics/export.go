package analytics

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"
)

// Persisted layout for a StrategyAnalysis: grouped metrics with all
// dates as "YYYY-MM-DD" strings.

// ExportRecord is the serialized form of a StrategyAnalysis
type ExportRecord struct {
	InvestmentMetrics InvestmentMetrics  `json:"investment_metrics"`
	RiskMetrics       RiskMetrics        `json:"risk_metrics"`
	TradingMetrics    TradingMetrics     `json:"trading_metrics"`
	YearlyReturns     map[string]float64 `json:"yearly_returns"`
	MonthlyReturns    map[string]float64 `json:"monthly_returns"`
	DrawdownPeriods   []ExportDrawdown   `json:"drawdown_periods"`
}

// InvestmentMetrics groups capital deployment results
type InvestmentMetrics struct {
	TotalInvested float64 `json:"total_invested"`
	FinalValue    float64 `json:"final_value"`
	AssetHeld     float64 `json:"asset_held"`
	ROI           float64 `json:"roi"`
}

// RiskMetrics groups risk statistics
type RiskMetrics struct {
	MaxDrawdown  float64 `json:"max_drawdown"`
	Volatility   float64 `json:"volatility"`
	SharpeRatio  float64 `json:"sharpe_ratio"`
	SortinoRatio float64 `json:"sortino_ratio"`
}

// TradingMetrics groups trading-behavior statistics
type TradingMetrics struct {
	WinRate                float64 `json:"win_rate"`
	ProfitFactor           float64 `json:"profit_factor"`
	MaxConsecutiveLossDays int     `json:"max_consecutive_loss_days"`
}

// ExportDrawdown is the serialized form of a DrawdownPeriod
type ExportDrawdown struct {
	Start    string  `json:"start"`
	End      string  `json:"end"`
	Depth    float64 `json:"depth"`
	Duration int     `json:"duration"`
}

const dateLayout = "2006-01-02"

// ToExport converts an analysis to its persisted layout
func ToExport(a *StrategyAnalysis) *ExportRecord {
	record := &ExportRecord{
		InvestmentMetrics: InvestmentMetrics{
			TotalInvested: a.TotalInvested,
			FinalValue:    a.FinalValue,
			AssetHeld:     a.AssetHeld,
			ROI:           a.ROI,
		},
		RiskMetrics: RiskMetrics{
			MaxDrawdown:  a.MaxDrawdown,
			Volatility:   a.Volatility,
			SharpeRatio:  a.SharpeRatio,
			SortinoRatio: a.SortinoRatio,
		},
		TradingMetrics: TradingMetrics{
			WinRate:                a.WinRate,
			ProfitFactor:           a.ProfitFactor,
			MaxConsecutiveLossDays: a.MaxConsecutiveLossDays,
		},
		YearlyReturns:   make(map[string]float64, len(a.YearlyReturns)),
		MonthlyReturns:  make(map[string]float64, len(a.MonthlyReturns)),
		DrawdownPeriods: make([]ExportDrawdown, 0, len(a.DrawdownPeriods)),
	}

	for year, ret := range a.YearlyReturns {
		record.YearlyReturns[strconv.Itoa(year)] = ret
	}
	for month, ret := range a.MonthlyReturns {
		record.MonthlyReturns[month] = ret
	}
	for _, dd := range a.DrawdownPeriods {
		record.DrawdownPeriods = append(record.DrawdownPeriods, ExportDrawdown{
			Start:    dd.Start.Format(dateLayout),
			End:      dd.End.Format(dateLayout),
			Depth:    dd.Depth,
			Duration: dd.Duration,
		})
	}

	return record
}

// FromExport converts a persisted record back to a StrategyAnalysis
func FromExport(record *ExportRecord) (*StrategyAnalysis, error) {
	analysis := &StrategyAnalysis{
		TotalInvested: record.InvestmentMetrics.TotalInvested,
		FinalValue:    record.InvestmentMetrics.FinalValue,
		AssetHeld:     record.InvestmentMetrics.AssetHeld,
		ROI:           record.InvestmentMetrics.ROI,

		MaxDrawdown:  record.RiskMetrics.MaxDrawdown,
		Volatility:   record.RiskMetrics.Volatility,
		SharpeRatio:  record.RiskMetrics.SharpeRatio,
		SortinoRatio: record.RiskMetrics.SortinoRatio,

		WinRate:                record.TradingMetrics.WinRate,
		ProfitFactor:           record.TradingMetrics.ProfitFactor,
		MaxConsecutiveLossDays: record.TradingMetrics.MaxConsecutiveLossDays,

		YearlyReturns:  make(map[int]float64, len(record.YearlyReturns)),
		MonthlyReturns: make(map[string]float64, len(record.MonthlyReturns)),
	}

	for yearStr, ret := range record.YearlyReturns {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			return nil, fmt.Errorf("invalid year %q: %w", yearStr, err)
		}
		analysis.YearlyReturns[year] = ret
	}
	for month, ret := range record.MonthlyReturns {
		analysis.MonthlyReturns[month] = ret
	}

	for _, dd := range record.DrawdownPeriods {
		start, err := time.Parse(dateLayout, dd.Start)
		if err != nil {
			return nil, fmt.Errorf("invalid drawdown start %q: %w", dd.Start, err)
		}
		end, err := time.Parse(dateLayout, dd.End)
		if err != nil {
			return nil, fmt.Errorf("invalid drawdown end %q: %w", dd.End, err)
		}
		analysis.DrawdownPeriods = append(analysis.DrawdownPeriods, DrawdownPeriod{
			Start:    start,
			End:      end,
			Depth:    dd.Depth,
			Duration: dd.Duration,
		})
	}

	// Preserve the deepest-first invariant regardless of source order
	sort.SliceStable(analysis.DrawdownPeriods, func(i, j int) bool {
		return analysis.DrawdownPeriods[i].Depth < analysis.DrawdownPeriods[j].Depth
	})

	return analysis, nil
}

// WriteFile exports an analysis as indented JSON
func WriteFile(path string, a *StrategyAnalysis) error {
	data, err := json.MarshalIndent(ToExport(a), "", "    ")
	if err != nil {
		return fmt.Errorf("marshal analysis: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write analysis: %w", err)
	}

	return nil
}

// ReadFile loads a previously exported analysis
func ReadFile(path string) (*StrategyAnalysis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read analysis: %w", err)
	}

	var record ExportRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("parse analysis: %w", err)
	}

	return FromExport(&record)
}
