package strategy

import (
	"github.com/jmlee/dcalab/internal/market"
)

// Dip invests a fixed base every period plus an extra amount when the
// price dips. Two trigger modes exist: any negative one-day return, or a
// drop of at least DipThreshold from the trailing HoldingPeriod-day high.
type Dip struct {
	base      float64
	dipAmount float64
	threshold float64
	holding   int
	trigger   DipTrigger

	series *market.Series
	highs  []float64
}

// NewDip creates a periodic+dip rule
func NewDip(base, dipAmount, threshold float64, holding int, trigger DipTrigger) *Dip {
	return &Dip{
		base:      base,
		dipAmount: dipAmount,
		threshold: threshold,
		holding:   holding,
		trigger:   trigger,
	}
}

func (d *Dip) Name() string { return "DCA + Dips" }

func (d *Dip) Kind() Kind { return KindDip }

func (d *Dip) Prepare(s *market.Series) error {
	d.series = s
	if d.trigger == TriggerRollingHigh {
		d.highs = RollingHigh(s, d.holding)
	}
	return nil
}

func (d *Dip) Amount(i int) float64 {
	if d.dipTriggered(i) {
		return d.base + d.dipAmount
	}
	return d.base
}

func (d *Dip) dipTriggered(i int) bool {
	switch d.trigger {
	case TriggerRollingHigh:
		// First period has no prior high: drop is zero, no trigger.
		high := d.highs[i]
		drop := (high - d.series.Price(i)) / high
		return drop >= d.threshold
	default:
		ret, ok := d.series.DailyReturn(i)
		return ok && ret < 0
	}
}
