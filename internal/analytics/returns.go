package analytics

import (
	"github.com/jmlee/dcalab/internal/backtest"
)

// Calendar-bucketed returns distinguish organic price return from
// return on newly deployed capital: a bucket with no new investment is
// measured start-to-end on value; a bucket where capital was added is
// measured against the capital deployed by its end.

func yearlyReturns(p *backtest.Portfolio) map[int]float64 {
	result := make(map[int]float64)

	first := p.States[0]
	last := first
	year := first.Date.Year()

	for _, s := range p.States[1:] {
		if y := s.Date.Year(); y != year {
			result[year] = bucketReturn(first, last)
			first, year = s, y
		}
		last = s
	}
	result[year] = bucketReturn(first, last)

	return result
}

func monthlyReturns(p *backtest.Portfolio) map[string]float64 {
	result := make(map[string]float64)

	first := p.States[0]
	last := first
	month := first.Date.Format("2006-01")

	for _, s := range p.States[1:] {
		if m := s.Date.Format("2006-01"); m != month {
			result[month] = bucketReturn(first, last)
			first, month = s, m
		}
		last = s
	}
	result[month] = bucketReturn(first, last)

	return result
}

func bucketReturn(first, last backtest.State) float64 {
	if first.Invested == last.Invested {
		// No new capital this bucket
		if first.Value > 0 {
			return (last.Value - first.Value) / first.Value * 100
		}
		return 0
	}

	// Capital was added: measure against capital deployed by bucket end
	return (last.Value - last.Invested) / last.Invested * 100
}
