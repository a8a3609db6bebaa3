package analytics

// ComparisonRow is one strategy's flattened metric set for side-by-side
// display by reporting collaborators.
type ComparisonRow struct {
	Strategy               string  `json:"strategy"`
	TotalInvested          float64 `json:"total_invested"`
	FinalValue             float64 `json:"final_value"`
	AssetHeld              float64 `json:"asset_held"`
	ROI                    float64 `json:"roi"`
	MaxDrawdown            float64 `json:"max_drawdown"`
	Volatility             float64 `json:"volatility"`
	SharpeRatio            float64 `json:"sharpe_ratio"`
	SortinoRatio           float64 `json:"sortino_ratio"`
	WinRate                float64 `json:"win_rate"`
	ProfitFactor           float64 `json:"profit_factor"`
	MaxConsecutiveLossDays int     `json:"max_consecutive_loss_days"`
}

// NamedAnalysis pairs a strategy name with its analysis
type NamedAnalysis struct {
	Name     string
	Analysis *StrategyAnalysis
}

// Compare flattens analyses into comparison rows, preserving input order
func Compare(items []NamedAnalysis) []ComparisonRow {
	rows := make([]ComparisonRow, 0, len(items))
	for _, item := range items {
		a := item.Analysis
		rows = append(rows, ComparisonRow{
			Strategy:               item.Name,
			TotalInvested:          a.TotalInvested,
			FinalValue:             a.FinalValue,
			AssetHeld:              a.AssetHeld,
			ROI:                    a.ROI,
			MaxDrawdown:            a.MaxDrawdown,
			Volatility:             a.Volatility,
			SharpeRatio:            a.SharpeRatio,
			SortinoRatio:           a.SortinoRatio,
			WinRate:                a.WinRate,
			ProfitFactor:           a.ProfitFactor,
			MaxConsecutiveLossDays: a.MaxConsecutiveLossDays,
		})
	}
	return rows
}
