package analytics

import (
	"time"
)

// RatioCap bounds Sortino and profit factor when there is no downside
// risk. A finite cap keeps scores comparable during optimization where
// an unbounded value would dominate every risk-adjusted ranking.
const RatioCap = 100.0

// DrawdownPeriod is one contiguous stretch where the portfolio traded
// at or below the drawdown threshold relative to its running peak.
type DrawdownPeriod struct {
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Trough   time.Time `json:"-"`
	Depth    float64   `json:"depth"`    // percent, <= 0
	Duration int       `json:"duration"` // calendar days
}

// StrategyAnalysis bundles the risk, return and trading statistics of a
// single strategy run. It is an immutable value object.
type StrategyAnalysis struct {
	TotalInvested float64 `json:"total_invested"`
	FinalValue    float64 `json:"final_value"`
	AssetHeld     float64 `json:"asset_held"`
	ROI           float64 `json:"roi"` // percent

	MaxDrawdown  float64 `json:"max_drawdown"` // percent, <= 0
	Volatility   float64 `json:"volatility"`   // annualized, percent
	SharpeRatio  float64 `json:"sharpe_ratio"`
	SortinoRatio float64 `json:"sortino_ratio"`

	WinRate                float64 `json:"win_rate"` // percent
	ProfitFactor           float64 `json:"profit_factor"`
	MaxConsecutiveLossDays int     `json:"max_consecutive_loss_days"`

	YearlyReturns  map[int]float64    `json:"yearly_returns"`  // year -> percent
	MonthlyReturns map[string]float64 `json:"monthly_returns"` // "YYYY-MM" -> percent

	DrawdownPeriods []DrawdownPeriod `json:"drawdown_periods"`
}
