package simconfig

import (
	"fmt"

	"github.com/jmlee/dcalab/internal/strategy"
	"github.com/jmlee/dcalab/internal/sweep"
)

// ValidationError names the offending field and what is wrong with it
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var sweepableKinds = map[strategy.Kind]bool{
	strategy.KindDip:     true,
	strategy.KindRSI:     true,
	strategy.KindMACross: true,
}

// Validate checks every constraint a sweep config must satisfy.
// The first violation is returned and aborts the run.
func Validate(cfg *Config) error {
	if cfg.Meta.Name == "" {
		return ValidationError{"meta.name", "required"}
	}

	if cfg.Data.File == "" {
		return ValidationError{"data.file", "required"}
	}

	sim := cfg.Simulation
	if sim.RiskFreeRate < 0 || sim.RiskFreeRate >= 1 {
		return ValidationError{"simulation.risk_free_rate", "must be in [0, 1)"}
	}
	if sim.DrawdownThreshold >= 0 {
		return ValidationError{"simulation.drawdown_threshold", "must be < 0"}
	}
	if sim.Workers < 0 {
		return ValidationError{"simulation.workers", "must be >= 0"}
	}

	sw := cfg.Sweep
	if len(sw.Strategies) == 0 {
		return ValidationError{"sweep.strategies", "required"}
	}
	for i, name := range sw.Strategies {
		if !sweepableKinds[strategy.Kind(name)] {
			return ValidationError{
				Field:   fmt.Sprintf("sweep.strategies[%d]", i),
				Message: fmt.Sprintf("%q is not a sweepable strategy", name),
			}
		}
	}

	if sw.Objective != "" {
		switch sw.Objective {
		case sweep.ObjectiveROI, sweep.ObjectiveSharpe, sweep.ObjectiveSortino,
			sweep.ObjectiveMaxDrawdown, sweep.ObjectiveWinRate:
		default:
			return ValidationError{"sweep.objective", fmt.Sprintf("unknown objective %q", sw.Objective)}
		}
	}

	if err := validatePositiveList("sweep.base_investments", sw.BaseInvestments, true); err != nil {
		return err
	}

	declared := func(kind strategy.Kind) bool {
		for _, name := range sw.Strategies {
			if strategy.Kind(name) == kind {
				return true
			}
		}
		return false
	}

	if declared(strategy.KindDip) {
		if err := validatePositiveList("sweep.dip_investments", sw.DipInvestments, true); err != nil {
			return err
		}
		for i, threshold := range sw.DipThresholds {
			if threshold <= 0 || threshold >= 1 {
				return ValidationError{
					Field:   fmt.Sprintf("sweep.dip_thresholds[%d]", i),
					Message: "must be in (0, 1)",
				}
			}
		}
		if len(sw.DipThresholds) == 0 {
			return ValidationError{"sweep.dip_thresholds", "required for dip strategy"}
		}
		if len(sw.HoldingPeriods) == 0 {
			return ValidationError{"sweep.holding_periods", "required for dip strategy"}
		}
		for i, period := range sw.HoldingPeriods {
			if period <= 0 {
				return ValidationError{
					Field:   fmt.Sprintf("sweep.holding_periods[%d]", i),
					Message: "must be > 0",
				}
			}
		}
		if sw.DipTrigger != "" {
			trigger := strategy.DipTrigger(sw.DipTrigger)
			if trigger != strategy.TriggerDailyReturn && trigger != strategy.TriggerRollingHigh {
				return ValidationError{"sweep.dip_trigger", fmt.Sprintf("unknown trigger %q", sw.DipTrigger)}
			}
		}
	}

	if declared(strategy.KindRSI) {
		if len(sw.RSIPeriods) == 0 {
			return ValidationError{"sweep.rsi_periods", "required for rsi strategy"}
		}
		for i, period := range sw.RSIPeriods {
			if period <= 1 {
				return ValidationError{
					Field:   fmt.Sprintf("sweep.rsi_periods[%d]", i),
					Message: "must be > 1",
				}
			}
		}
		if len(sw.RSIThresholds) == 0 {
			return ValidationError{"sweep.rsi_thresholds", "required for rsi strategy"}
		}
		for i, tiers := range sw.RSIThresholds {
			if len(tiers) == 0 {
				return ValidationError{
					Field:   fmt.Sprintf("sweep.rsi_thresholds[%d]", i),
					Message: "must not be empty",
				}
			}
			for threshold, extra := range tiers {
				if threshold < 0 || threshold > 100 {
					return ValidationError{
						Field:   fmt.Sprintf("sweep.rsi_thresholds[%d]", i),
						Message: fmt.Sprintf("threshold %d outside [0, 100]", threshold),
					}
				}
				if extra <= 0 {
					return ValidationError{
						Field:   fmt.Sprintf("sweep.rsi_thresholds[%d]", i),
						Message: fmt.Sprintf("extra amount for threshold %d must be > 0", threshold),
					}
				}
			}
		}
	}

	if declared(strategy.KindMACross) {
		if len(sw.MAMultipliers) == 0 {
			return ValidationError{"sweep.ma_multipliers", "required for ma_cross strategy"}
		}
		for i, multipliers := range sw.MAMultipliers {
			if len(multipliers) == 0 {
				return ValidationError{
					Field:   fmt.Sprintf("sweep.ma_multipliers[%d]", i),
					Message: "must not be empty",
				}
			}
			for window, mult := range multipliers {
				if window <= 0 {
					return ValidationError{
						Field:   fmt.Sprintf("sweep.ma_multipliers[%d]", i),
						Message: fmt.Sprintf("window %d must be > 0", window),
					}
				}
				if mult <= 0 {
					return ValidationError{
						Field:   fmt.Sprintf("sweep.ma_multipliers[%d]", i),
						Message: fmt.Sprintf("multiplier for MA%d must be > 0", window),
					}
				}
			}
		}
	}

	return nil
}

func validatePositiveList(field string, values []float64, required bool) error {
	if required && len(values) == 0 {
		return ValidationError{field, "must not be empty"}
	}
	for i, v := range values {
		if v <= 0 {
			return ValidationError{
				Field:   fmt.Sprintf("%s[%d]", field, i),
				Message: "must be > 0",
			}
		}
	}
	return nil
}
