package simconfig

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	return &Config{
		Meta: Meta{Name: "btc-sweep", Version: "1.0"},
		Data: Data{File: "data/btc_daily.csv"},
		Simulation: Simulation{
			RiskFreeRate:      0.04,
			DrawdownThreshold: -0.10,
			Workers:           4,
		},
		Sweep: Sweep{
			Strategies:      []string{"dip", "rsi", "ma_cross"},
			Objective:       "roi",
			BaseInvestments: []float64{100},
			DipInvestments:  []float64{1000},
			DipThresholds:   []float64{0.1},
			HoldingPeriods:  []int{30},
			DipTrigger:      "rolling_high",
			RSIPeriods:      []int{14},
			RSIThresholds:   []map[int]float64{{30: 2000}},
			MAMultipliers:   []map[int]float64{{20: 2}},
		},
	}
}

func TestValidateAcceptsCompleteConfig(t *testing.T) {
	if err := Validate(validConfig()); err != nil {
		t.Errorf("Validate failed on a complete config: %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{
			"missing name",
			func(c *Config) { c.Meta.Name = "" },
			"meta.name",
		},
		{
			"missing data file",
			func(c *Config) { c.Data.File = "" },
			"data.file",
		},
		{
			"risk free rate too large",
			func(c *Config) { c.Simulation.RiskFreeRate = 1.0 },
			"simulation.risk_free_rate",
		},
		{
			"positive drawdown threshold",
			func(c *Config) { c.Simulation.DrawdownThreshold = 0.10 },
			"simulation.drawdown_threshold",
		},
		{
			"negative workers",
			func(c *Config) { c.Simulation.Workers = -1 },
			"simulation.workers",
		},
		{
			"no strategies",
			func(c *Config) { c.Sweep.Strategies = nil },
			"sweep.strategies",
		},
		{
			"non sweepable strategy",
			func(c *Config) { c.Sweep.Strategies = []string{"dca"} },
			"sweep.strategies[0]",
		},
		{
			"unknown objective",
			func(c *Config) { c.Sweep.Objective = "alpha" },
			"sweep.objective",
		},
		{
			"empty base investments",
			func(c *Config) { c.Sweep.BaseInvestments = nil },
			"sweep.base_investments",
		},
		{
			"negative base investment",
			func(c *Config) { c.Sweep.BaseInvestments = []float64{100, -50} },
			"sweep.base_investments[1]",
		},
		{
			"dip threshold out of range",
			func(c *Config) { c.Sweep.DipThresholds = []float64{1.5} },
			"sweep.dip_thresholds[0]",
		},
		{
			"missing holding periods",
			func(c *Config) { c.Sweep.HoldingPeriods = nil },
			"sweep.holding_periods",
		},
		{
			"unknown dip trigger",
			func(c *Config) { c.Sweep.DipTrigger = "volume_spike" },
			"sweep.dip_trigger",
		},
		{
			"rsi period too small",
			func(c *Config) { c.Sweep.RSIPeriods = []int{1} },
			"sweep.rsi_periods[0]",
		},
		{
			"rsi threshold out of range",
			func(c *Config) { c.Sweep.RSIThresholds = []map[int]float64{{120: 2000}} },
			"sweep.rsi_thresholds[0]",
		},
		{
			"rsi extra amount not positive",
			func(c *Config) { c.Sweep.RSIThresholds = []map[int]float64{{30: 0}} },
			"sweep.rsi_thresholds[0]",
		},
		{
			"empty ma multipliers entry",
			func(c *Config) { c.Sweep.MAMultipliers = []map[int]float64{{}} },
			"sweep.ma_multipliers[0]",
		},
		{
			"ma multiplier not positive",
			func(c *Config) { c.Sweep.MAMultipliers = []map[int]float64{{20: 0}} },
			"sweep.ma_multipliers[0]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if err == nil {
				t.Fatalf("expected validation error")
			}
			verr, ok := err.(ValidationError)
			if !ok {
				t.Fatalf("error type = %T, want ValidationError", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", verr.Field, tt.wantField)
			}
			if !strings.Contains(err.Error(), tt.wantField) {
				t.Errorf("Error() = %q, missing field name", err.Error())
			}
		})
	}
}

func TestValidateSkipsUndeclaredStrategyKnobs(t *testing.T) {
	cfg := validConfig()
	cfg.Sweep.Strategies = []string{"dip"}
	cfg.Sweep.RSIPeriods = nil
	cfg.Sweep.RSIThresholds = nil
	cfg.Sweep.MAMultipliers = nil

	if err := Validate(cfg); err != nil {
		t.Errorf("Validate failed with only dip declared: %v", err)
	}
}

func TestKindsAndSpace(t *testing.T) {
	cfg := validConfig()

	kinds := cfg.Sweep.Kinds()
	if len(kinds) != 3 {
		t.Fatalf("got %d kinds, want 3", len(kinds))
	}

	space := cfg.Sweep.Space()
	if len(space.BaseInvestments) != 1 || space.BaseInvestments[0] != 100 {
		t.Errorf("BaseInvestments = %v, want [100]", space.BaseInvestments)
	}
	if string(space.DipTrigger) != "rolling_high" {
		t.Errorf("DipTrigger = %q, want rolling_high", space.DipTrigger)
	}

	cfg.Sweep.DipTrigger = ""
	if trigger := cfg.Sweep.Space().DipTrigger; string(trigger) != "rolling_high" {
		t.Errorf("default DipTrigger = %q, want rolling_high", trigger)
	}
}
