package simconfig

import (
	"github.com/jmlee/dcalab/internal/strategy"
	"github.com/jmlee/dcalab/internal/sweep"
)

// Config is the full declarative description of a sweep run: the data
// source, the analysis parameters, and the parameter grid itself.
type Config struct {
	Meta       Meta       `yaml:"meta" json:"meta"`
	Data       Data       `yaml:"data" json:"data"`
	Simulation Simulation `yaml:"simulation" json:"simulation"`
	Sweep      Sweep      `yaml:"sweep" json:"sweep"`
}

type Meta struct {
	Name    string `yaml:"name" json:"name"`
	Version string `yaml:"version" json:"version"`
}

type Data struct {
	File string `yaml:"file" json:"file"`
}

type Simulation struct {
	RiskFreeRate      float64 `yaml:"risk_free_rate" json:"risk_free_rate"`
	DrawdownThreshold float64 `yaml:"drawdown_threshold" json:"drawdown_threshold"`
	Workers           int     `yaml:"workers" json:"workers"`
}

// Sweep declares the grid. Map-valued knobs (RSI tiers, MA
// multipliers) are lists of complete maps, each one a candidate.
type Sweep struct {
	Strategies   []string `yaml:"strategies" json:"strategies"`
	Objective    string   `yaml:"objective" json:"objective"`
	RiskAdjusted bool     `yaml:"risk_adjusted" json:"risk_adjusted"`

	BaseInvestments []float64 `yaml:"base_investments" json:"base_investments"`

	DipInvestments []float64 `yaml:"dip_investments" json:"dip_investments"`
	DipThresholds  []float64 `yaml:"dip_thresholds" json:"dip_thresholds"`
	HoldingPeriods []int     `yaml:"holding_periods" json:"holding_periods"`
	DipTrigger     string    `yaml:"dip_trigger" json:"dip_trigger"`

	RSIPeriods    []int             `yaml:"rsi_periods" json:"rsi_periods"`
	RSIThresholds []map[int]float64 `yaml:"rsi_thresholds" json:"rsi_thresholds"`

	MAMultipliers []map[int]float64 `yaml:"ma_multipliers" json:"ma_multipliers"`
}

// Kinds returns the declared strategies as typed kinds
func (s Sweep) Kinds() []strategy.Kind {
	kinds := make([]strategy.Kind, 0, len(s.Strategies))
	for _, name := range s.Strategies {
		kinds = append(kinds, strategy.Kind(name))
	}
	return kinds
}

// Space converts the declared grid into a sweep parameter space
func (s Sweep) Space() sweep.Space {
	trigger := strategy.DipTrigger(s.DipTrigger)
	if trigger == "" {
		trigger = strategy.TriggerRollingHigh
	}
	return sweep.Space{
		BaseInvestments: s.BaseInvestments,
		DipInvestments:  s.DipInvestments,
		DipThresholds:   s.DipThresholds,
		HoldingPeriods:  s.HoldingPeriods,
		DipTrigger:      trigger,
		RSIPeriods:      s.RSIPeriods,
		RSIThresholds:   s.RSIThresholds,
		MAMultipliers:   s.MAMultipliers,
	}
}
