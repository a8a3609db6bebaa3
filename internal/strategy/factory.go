package strategy

import (
	"fmt"
)

// New builds a strategy from a kind tag and params. Malformed params are
// rejected here with a descriptive error, before any simulation runs.
func New(kind Kind, p Params) (Strategy, error) {
	switch kind {
	case KindDCA:
		if p.Base <= 0 {
			return nil, fmt.Errorf("dca: base investment must be > 0, got %v", p.Base)
		}
		return NewDCA(p.Base), nil

	case KindDip:
		if p.Base <= 0 {
			return nil, fmt.Errorf("dip: base investment must be > 0, got %v", p.Base)
		}
		if p.DipAmount <= 0 {
			return nil, fmt.Errorf("dip: dip amount must be > 0, got %v", p.DipAmount)
		}
		trigger := p.Trigger
		if trigger == "" {
			trigger = TriggerDailyReturn
		}
		if trigger != TriggerDailyReturn && trigger != TriggerRollingHigh {
			return nil, fmt.Errorf("dip: unknown trigger %q", trigger)
		}
		if trigger == TriggerRollingHigh {
			if p.DipThreshold <= 0 || p.DipThreshold >= 1 {
				return nil, fmt.Errorf("dip: threshold must be in (0, 1), got %v", p.DipThreshold)
			}
			if p.HoldingPeriod <= 0 {
				return nil, fmt.Errorf("dip: holding period must be > 0, got %d", p.HoldingPeriod)
			}
		}
		return NewDip(p.Base, p.DipAmount, p.DipThreshold, p.HoldingPeriod, trigger), nil

	case KindLumpSum:
		if p.TotalInvestment <= 0 {
			return nil, fmt.Errorf("lump_sum: total investment must be > 0, got %v", p.TotalInvestment)
		}
		return NewLumpSum(p.TotalInvestment), nil

	case KindRSI:
		if p.Base <= 0 {
			return nil, fmt.Errorf("rsi: base investment must be > 0, got %v", p.Base)
		}
		if p.RSIPeriod <= 1 {
			return nil, fmt.Errorf("rsi: lookback period must be > 1, got %d", p.RSIPeriod)
		}
		if len(p.RSIThresholds) == 0 {
			return nil, fmt.Errorf("rsi: at least one threshold tier is required")
		}
		for threshold, extra := range p.RSIThresholds {
			if threshold < 0 || threshold > 100 {
				return nil, fmt.Errorf("rsi: threshold %v outside [0, 100]", threshold)
			}
			if extra <= 0 {
				return nil, fmt.Errorf("rsi: extra amount for threshold %v must be > 0", threshold)
			}
		}
		return NewRSI(p.Base, p.RSIPeriod, p.RSIThresholds), nil

	case KindMACross:
		if p.Base <= 0 {
			return nil, fmt.Errorf("ma_cross: base investment must be > 0, got %v", p.Base)
		}
		if len(p.MAMultipliers) == 0 {
			return nil, fmt.Errorf("ma_cross: at least one moving average is required")
		}
		for window, mult := range p.MAMultipliers {
			if window <= 0 {
				return nil, fmt.Errorf("ma_cross: window must be > 0, got %d", window)
			}
			if mult <= 0 {
				return nil, fmt.Errorf("ma_cross: multiplier for MA%d must be > 0, got %v", window, mult)
			}
		}
		return NewMACross(p.Base, p.MAMultipliers), nil

	default:
		return nil, fmt.Errorf("unknown strategy kind: %s", kind)
	}
}
