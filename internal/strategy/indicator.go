package strategy

import (
	"github.com/jmlee/dcalab/internal/market"
)

// Rolling indicators are computed once per series and shared read-only
// across the per-period decision calls.

// SMA computes a simple moving average over the given window.
// ok[i] is false until a full window of prices is available.
func SMA(s *market.Series, window int) (values []float64, ok []bool) {
	n := s.Len()
	values = make([]float64, n)
	ok = make([]bool, n)

	var sum float64
	for i := 0; i < n; i++ {
		sum += s.Price(i)
		if i >= window {
			sum -= s.Price(i - window)
		}
		if i >= window-1 {
			values[i] = sum / float64(window)
			ok[i] = true
		}
	}

	return values, ok
}

// RollingHigh computes the trailing maximum price over the given window,
// including the current observation. Early observations use the shorter
// prefix, so the first value is simply the first price.
func RollingHigh(s *market.Series, window int) []float64 {
	n := s.Len()
	values := make([]float64, n)

	for i := 0; i < n; i++ {
		start := i - window + 1
		if start < 0 {
			start = 0
		}
		high := s.Price(start)
		for j := start + 1; j <= i; j++ {
			if s.Price(j) > high {
				high = s.Price(j)
			}
		}
		values[i] = high
	}

	return values
}

// RSI computes a Wilder-smoothed relative strength index over the given
// lookback period. The seed is the simple average of the first period
// gains/losses; after that averages are smoothed with weight
// (period-1)/period. ok[i] is false while history is insufficient.
// When the smoothed average loss is zero the oscillator reads 100.
func RSI(s *market.Series, period int) (values []float64, ok []bool) {
	n := s.Len()
	values = make([]float64, n)
	ok = make([]bool, n)

	if n <= period {
		return values, ok
	}

	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		change := s.Price(i) - s.Price(i-1)
		if change > 0 {
			avgGain += change
		} else {
			avgLoss += -change
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	values[period] = rsiValue(avgGain, avgLoss)
	ok[period] = true

	for i := period + 1; i < n; i++ {
		change := s.Price(i) - s.Price(i-1)
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}

		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)

		values[i] = rsiValue(avgGain, avgLoss)
		ok[i] = true
	}

	return values, ok
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}
