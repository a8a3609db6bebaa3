package strategy

import (
	"sort"

	"github.com/jmlee/dcalab/internal/market"
)

// RSIStrategy invests a fixed base every period plus a tiered extra
// amount when the oscillator signals oversold conditions. Tiers are
// evaluated from the largest extra amount down; the first tier whose
// threshold the current oscillator value is at or below wins.
type RSIStrategy struct {
	base   float64
	period int
	tiers  []rsiTier

	values []float64
	ok     []bool
}

type rsiTier struct {
	threshold float64
	extra     float64
}

// NewRSI creates an oscillator-triggered rule.
// thresholds maps oscillator threshold -> extra investment amount.
func NewRSI(base float64, period int, thresholds map[int]float64) *RSIStrategy {
	tiers := make([]rsiTier, 0, len(thresholds))
	for threshold, extra := range thresholds {
		tiers = append(tiers, rsiTier{threshold: float64(threshold), extra: extra})
	}
	// Largest extra first; threshold breaks ties deterministically
	sort.Slice(tiers, func(i, j int) bool {
		if tiers[i].extra != tiers[j].extra {
			return tiers[i].extra > tiers[j].extra
		}
		return tiers[i].threshold < tiers[j].threshold
	})

	return &RSIStrategy{base: base, period: period, tiers: tiers}
}

func (r *RSIStrategy) Name() string { return "RSI" }

func (r *RSIStrategy) Kind() Kind { return KindRSI }

func (r *RSIStrategy) Prepare(s *market.Series) error {
	r.values, r.ok = RSI(s, r.period)
	return nil
}

func (r *RSIStrategy) Amount(i int) float64 {
	// Insufficient history: base investment only
	if !r.ok[i] {
		return r.base
	}

	value := r.values[i]
	for _, tier := range r.tiers {
		if value <= tier.threshold {
			return r.base + tier.extra
		}
	}

	return r.base
}
