package strategy

import (
	"github.com/jmlee/dcalab/internal/market"
)

// LumpSum deploys the entire investment on the first date.
type LumpSum struct {
	total float64
}

// NewLumpSum creates a lump-sum rule
func NewLumpSum(total float64) *LumpSum {
	return &LumpSum{total: total}
}

func (l *LumpSum) Name() string { return "Lump Sum" }

func (l *LumpSum) Kind() Kind { return KindLumpSum }

func (l *LumpSum) Prepare(_ *market.Series) error { return nil }

func (l *LumpSum) Amount(i int) float64 {
	if i == 0 {
		return l.total
	}
	return 0
}
