package strategy

import (
	"math"
	"testing"
	"time"

	"github.com/jmlee/dcalab/internal/market"
)

func testSeries(t *testing.T, prices ...float64) *market.Series {
	t.Helper()

	points := make([]market.PricePoint, len(prices))
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, p := range prices {
		points[i] = market.PricePoint{Date: base.AddDate(0, 0, i), Price: p}
	}

	s, err := market.NewSeries(points)
	if err != nil {
		t.Fatalf("NewSeries failed: %v", err)
	}
	return s
}

func TestSMA(t *testing.T) {
	s := testSeries(t, 1, 2, 3, 4, 5)
	values, ok := SMA(s, 3)

	if ok[0] || ok[1] {
		t.Errorf("SMA defined before a full window")
	}

	want := []float64{0, 0, 2, 3, 4}
	for i := 2; i < len(want); i++ {
		if !ok[i] {
			t.Errorf("SMA undefined at %d", i)
		}
		if math.Abs(values[i]-want[i]) > 1e-12 {
			t.Errorf("SMA[%d] = %v, want %v", i, values[i], want[i])
		}
	}
}

func TestRollingHigh(t *testing.T) {
	s := testSeries(t, 100, 120, 90, 130)

	got := RollingHigh(s, 2)
	want := []float64{100, 120, 120, 130}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("RollingHigh[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	// Window longer than the series clamps to the available prefix
	got = RollingHigh(s, 30)
	want = []float64{100, 120, 120, 130}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("RollingHigh(30)[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestRSI(t *testing.T) {
	// Changes: +10, -5, +10, +5
	s := testSeries(t, 100, 110, 105, 115, 120)
	values, ok := RSI(s, 2)

	if ok[0] || ok[1] {
		t.Errorf("RSI defined before the lookback period")
	}

	// Seed: avgGain 5, avgLoss 2.5 -> RS 2 -> RSI 66.67
	if !ok[2] || math.Abs(values[2]-100.0*2/3) > 1e-9 {
		t.Errorf("RSI[2] = %v, want %v", values[2], 100.0*2/3)
	}

	// Smoothed: avgGain 7.5, avgLoss 1.25 -> RS 6 -> RSI 85.71
	if math.Abs(values[3]-600.0/7) > 1e-9 {
		t.Errorf("RSI[3] = %v, want %v", values[3], 600.0/7)
	}

	// avgGain 6.25, avgLoss 0.625 -> RS 10 -> RSI 90.91
	if math.Abs(values[4]-1000.0/11) > 1e-9 {
		t.Errorf("RSI[4] = %v, want %v", values[4], 1000.0/11)
	}
}

func TestRSIAllGains(t *testing.T) {
	s := testSeries(t, 1, 2, 3, 4)
	values, ok := RSI(s, 2)

	for i := 2; i < s.Len(); i++ {
		if !ok[i] || values[i] != 100 {
			t.Errorf("RSI[%d] = %v, want 100 with no losses", i, values[i])
		}
	}
}

func TestRSIInsufficientHistory(t *testing.T) {
	s := testSeries(t, 100, 110)
	_, ok := RSI(s, 14)

	for i := range ok {
		if ok[i] {
			t.Errorf("RSI defined at %d despite insufficient history", i)
		}
	}
}
