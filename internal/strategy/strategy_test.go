package strategy

import (
	"testing"
)

func amounts(t *testing.T, strat Strategy, prices ...float64) []float64 {
	t.Helper()

	s := testSeries(t, prices...)
	if err := strat.Prepare(s); err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}

	out := make([]float64, s.Len())
	for i := range out {
		out[i] = strat.Amount(i)
	}
	return out
}

func TestDCAInvestsBaseEveryPeriod(t *testing.T) {
	got := amounts(t, NewDCA(10), 100, 120, 90, 130)
	for i, a := range got {
		if a != 10 {
			t.Errorf("Amount(%d) = %v, want 10", i, a)
		}
	}
}

func TestLumpSumInvestsEverythingUpFront(t *testing.T) {
	got := amounts(t, NewLumpSum(1000), 100, 50, 75)
	want := []float64{1000, 0, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Amount(%d) = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDipRollingHighTrigger(t *testing.T) {
	// Trailing high: 100, 120, 120, 130. The 90 print is a 25% drop.
	strat := NewDip(10, 50, 0.25, 30, TriggerRollingHigh)
	got := amounts(t, strat, 100, 120, 90, 130)

	want := []float64{10, 10, 60, 10}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Amount(%d) = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDipRollingHighBelowThreshold(t *testing.T) {
	// 90 is a 25% drop from 120; a 30% threshold must not trigger
	strat := NewDip(10, 50, 0.30, 30, TriggerRollingHigh)
	got := amounts(t, strat, 100, 120, 90, 130)

	for i, a := range got {
		if a != 10 {
			t.Errorf("Amount(%d) = %v, want 10", i, a)
		}
	}
}

func TestDipDailyReturnTrigger(t *testing.T) {
	strat := NewDip(10, 50, 0, 0, TriggerDailyReturn)
	got := amounts(t, strat, 100, 110, 99, 130)

	want := []float64{10, 10, 60, 10}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Amount(%d) = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestRSIStrategyTiers(t *testing.T) {
	// Changes +10, -30: seed RSI(2) = 25 at the last period
	strat := NewRSI(10, 2, map[int]float64{30: 2000, 20: 5000})
	got := amounts(t, strat, 100, 110, 80)

	// Insufficient history invests base only; RSI 25 hits the 30 tier
	want := []float64{10, 10, 2010}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Amount(%d) = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestRSIStrategyDeepestTierWins(t *testing.T) {
	// Changes -10, -10: RSI 0, at or below both tiers. The larger
	// extra amount wins.
	strat := NewRSI(10, 2, map[int]float64{30: 2000, 20: 5000})
	got := amounts(t, strat, 100, 90, 80)

	if got[2] != 5010 {
		t.Errorf("Amount(2) = %v, want 5010", got[2])
	}
}

func TestMACrossMultiplier(t *testing.T) {
	// SMA2: -, 10, 7, 7; SMA3: -, -, 8, 8
	strat := NewMACross(100, map[int]float64{2: 2, 3: 3})
	got := amounts(t, strat, 10, 10, 4, 10)

	want := []float64{100, 100, 200, 100}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Amount(%d) = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestMACrossRequiresStrictlyBelow(t *testing.T) {
	// Flat prices sit exactly on the average; no multiplier applies
	strat := NewMACross(100, map[int]float64{2: 2})
	got := amounts(t, strat, 10, 10, 10)

	for i, a := range got {
		if a != 100 {
			t.Errorf("Amount(%d) = %v, want 100", i, a)
		}
	}
}
