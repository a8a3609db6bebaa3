package analytics

import (
	"sort"

	"github.com/jmlee/dcalab/internal/backtest"
)

// drawdownPeriods segments the trajectory into significant drawdown
// periods. The drawdown series is the running-peak-relative decline as
// a fraction; a period opens when it crosses at or below the threshold
// and closes when it recovers above it, or at the final date if still
// open. The returned list is sorted deepest first.
func (a *Analyzer) drawdownPeriods(p *backtest.Portfolio) []DrawdownPeriod {
	values := p.Values()
	n := len(values)

	dd := make([]float64, n)
	peak := values[0]
	for i, v := range values {
		if v > peak {
			peak = v
		}
		dd[i] = (v - peak) / peak
	}

	var periods []DrawdownPeriod
	inDrawdown := false
	start := 0

	for i := 0; i < n; i++ {
		if !inDrawdown {
			if dd[i] <= a.drawdownThreshold {
				inDrawdown = true
				start = i
				// A drawdown opening on the final date still counts,
				// as a single-date period of duration zero.
				if i == n-1 {
					periods = append(periods, buildPeriod(p, dd, start, i))
					inDrawdown = false
				}
			}
			continue
		}

		if dd[i] > a.drawdownThreshold {
			// Recovered: the period ends on the last date still below
			periods = append(periods, buildPeriod(p, dd, start, i-1))
			inDrawdown = false
		} else if i == n-1 {
			// Still open at the last observation: force-close there
			periods = append(periods, buildPeriod(p, dd, start, i))
			inDrawdown = false
		}
	}

	// Deepest first; chronological order within equal depths
	sort.SliceStable(periods, func(i, j int) bool {
		return periods[i].Depth < periods[j].Depth
	})

	return periods
}

func buildPeriod(p *backtest.Portfolio, dd []float64, start, end int) DrawdownPeriod {
	trough := start
	for i := start + 1; i <= end; i++ {
		// Ties break to the first occurrence
		if dd[i] < dd[trough] {
			trough = i
		}
	}

	startDate := p.States[start].Date
	endDate := p.States[end].Date

	return DrawdownPeriod{
		Start:    startDate,
		End:      endDate,
		Trough:   p.States[trough].Date,
		Depth:    dd[trough] * 100,
		Duration: int(endDate.Sub(startDate).Hours() / 24),
	}
}
