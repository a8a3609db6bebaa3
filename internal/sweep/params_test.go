package sweep

import (
	"testing"

	"github.com/jmlee/dcalab/internal/strategy"
)

func TestCombinationsDipEnumerationOrder(t *testing.T) {
	space := Space{
		BaseInvestments: []float64{50, 100},
		DipInvestments:  []float64{500, 1000},
		DipThresholds:   []float64{0.1},
		HoldingPeriods:  []int{10, 20},
		DipTrigger:      strategy.TriggerRollingHigh,
	}

	combos, err := Combinations(space, strategy.KindDip)
	if err != nil {
		t.Fatalf("Combinations failed: %v", err)
	}
	if len(combos) != 8 {
		t.Fatalf("got %d combinations, want 8", len(combos))
	}

	// Innermost knob varies fastest
	want := []strategy.Params{
		{Base: 50, DipAmount: 500, DipThreshold: 0.1, HoldingPeriod: 10, Trigger: strategy.TriggerRollingHigh},
		{Base: 50, DipAmount: 500, DipThreshold: 0.1, HoldingPeriod: 20, Trigger: strategy.TriggerRollingHigh},
		{Base: 50, DipAmount: 1000, DipThreshold: 0.1, HoldingPeriod: 10, Trigger: strategy.TriggerRollingHigh},
	}
	for i, w := range want {
		got := combos[i].Params
		if got.Base != w.Base || got.DipAmount != w.DipAmount ||
			got.HoldingPeriod != w.HoldingPeriod || got.Trigger != w.Trigger {
			t.Errorf("combos[%d].Params = %+v, want %+v", i, got, w)
		}
	}
	if last := combos[7].Params; last.Base != 100 || last.DipAmount != 1000 || last.HoldingPeriod != 20 {
		t.Errorf("combos[7].Params = %+v, want the last grid corner", last)
	}
}

func TestCombinationsDefaultsDipTrigger(t *testing.T) {
	space := Space{
		BaseInvestments: []float64{100},
		DipInvestments:  []float64{1000},
		DipThresholds:   []float64{0.1},
		HoldingPeriods:  []int{30},
	}

	combos, err := Combinations(space, strategy.KindDip)
	if err != nil {
		t.Fatalf("Combinations failed: %v", err)
	}
	if combos[0].Params.Trigger != strategy.TriggerRollingHigh {
		t.Errorf("Trigger = %q, want rolling-high default", combos[0].Params.Trigger)
	}
}

func TestCombinationsRSICount(t *testing.T) {
	space := Space{
		BaseInvestments: []float64{50, 100},
		RSIPeriods:      []int{7, 14, 21},
		RSIThresholds:   []map[int]float64{{30: 2000}, {30: 2000, 20: 5000}},
	}

	combos, err := Combinations(space, strategy.KindRSI)
	if err != nil {
		t.Fatalf("Combinations failed: %v", err)
	}
	if len(combos) != 12 {
		t.Errorf("got %d combinations, want 12", len(combos))
	}
	if combos[0].Params.RSIPeriod != 7 || combos[1].Params.RSIPeriod != 14 {
		t.Errorf("period order = %d, %d, want 7, 14",
			combos[0].Params.RSIPeriod, combos[1].Params.RSIPeriod)
	}
}

func TestCombinationsMACrossCount(t *testing.T) {
	space := Space{
		BaseInvestments: []float64{100},
		MAMultipliers:   []map[int]float64{{20: 2}, {20: 2, 50: 3}, {50: 3, 200: 5}},
	}

	combos, err := Combinations(space, strategy.KindMACross)
	if err != nil {
		t.Fatalf("Combinations failed: %v", err)
	}
	if len(combos) != 3 {
		t.Errorf("got %d combinations, want 3", len(combos))
	}
}

func TestCombinationsRejectsNonSweepableKinds(t *testing.T) {
	for _, kind := range []strategy.Kind{strategy.KindDCA, strategy.KindLumpSum, strategy.Kind("martingale")} {
		if _, err := Combinations(DefaultSpace(), kind); err == nil {
			t.Errorf("kind %q: expected error", kind)
		}
	}
}

func TestCombinationsRejectsEmptySpace(t *testing.T) {
	if _, err := Combinations(Space{}, strategy.KindDip); err == nil {
		t.Errorf("expected error for empty parameter space")
	}
}

func TestKeyDeterministic(t *testing.T) {
	a := Combination{
		Kind: strategy.KindRSI,
		Params: strategy.Params{
			Base:          100,
			RSIPeriod:     14,
			RSIThresholds: map[int]float64{30: 2000, 20: 5000},
		},
	}
	b := Combination{
		Kind: strategy.KindRSI,
		Params: strategy.Params{
			Base:          100,
			RSIPeriod:     14,
			RSIThresholds: map[int]float64{20: 5000, 30: 2000},
		},
	}

	if a.Key() != b.Key() {
		t.Errorf("equal combinations produced different keys:\n%s\n%s", a.Key(), b.Key())
	}
}

func TestKeyDistinguishesCombinations(t *testing.T) {
	space := Space{
		BaseInvestments: []float64{100, 200},
		DipInvestments:  []float64{1000, 2000},
		DipThresholds:   []float64{0.1, 0.2},
		HoldingPeriods:  []int{30, 60},
	}
	combos, err := Combinations(space, strategy.KindDip)
	if err != nil {
		t.Fatalf("Combinations failed: %v", err)
	}

	seen := make(map[string]bool)
	for _, c := range combos {
		key := c.Key()
		if seen[key] {
			t.Errorf("duplicate key for distinct combination: %s", key)
		}
		seen[key] = true
	}
	if len(seen) != 16 {
		t.Errorf("got %d distinct keys, want 16", len(seen))
	}
}
