package strategy

import (
	"github.com/jmlee/dcalab/internal/market"
)

// Kind identifies a decision rule
type Kind string

const (
	KindDCA     Kind = "dca"
	KindDip     Kind = "dip"
	KindLumpSum Kind = "lump_sum"
	KindRSI     Kind = "rsi"
	KindMACross Kind = "ma_cross"
)

// DipTrigger selects how the dip rule detects a buyable dip
type DipTrigger string

const (
	// TriggerDailyReturn buys extra on any negative one-day return
	TriggerDailyReturn DipTrigger = "daily_return"
	// TriggerRollingHigh buys extra when price has dropped at least
	// DipThreshold below the trailing HoldingPeriod-day high
	TriggerRollingHigh DipTrigger = "rolling_high"
)

// Params carries the knobs for every strategy kind. Each kind reads
// only the fields relevant to it; the factory validates the rest.
type Params struct {
	// Base periodic investment (dca, dip, rsi, ma_cross)
	Base float64 `json:"base,omitempty"`

	// Dip rule
	DipAmount     float64    `json:"dip_amount,omitempty"`
	DipThreshold  float64    `json:"dip_threshold,omitempty"` // fraction, e.g. 0.10
	HoldingPeriod int        `json:"holding_period,omitempty"`
	Trigger       DipTrigger `json:"trigger,omitempty"`

	// Lump sum
	TotalInvestment float64 `json:"total_investment,omitempty"`

	// RSI rule: oscillator threshold -> extra amount
	RSIPeriod     int             `json:"rsi_period,omitempty"`
	RSIThresholds map[int]float64 `json:"rsi_thresholds,omitempty"`

	// MA rule: window (days) -> investment multiplier
	MAMultipliers map[int]float64 `json:"ma_multipliers,omitempty"`
}

// Strategy is a capital-deployment decision rule. Prepare is called once
// per price series to precompute whatever indicators the rule needs;
// Amount is then called for every period in ascending date order.
type Strategy interface {
	Name() string
	Kind() Kind
	Prepare(s *market.Series) error
	Amount(i int) float64
}
