package strategy

import (
	"testing"
)

func TestNewBuildsEveryKind(t *testing.T) {
	tests := []struct {
		kind   Kind
		params Params
	}{
		{KindDCA, Params{Base: 100}},
		{KindLumpSum, Params{TotalInvestment: 1000}},
		{KindDip, Params{Base: 100, DipAmount: 500, DipThreshold: 0.1, HoldingPeriod: 30, Trigger: TriggerRollingHigh}},
		{KindDip, Params{Base: 100, DipAmount: 500, Trigger: TriggerDailyReturn}},
		{KindRSI, Params{Base: 100, RSIPeriod: 14, RSIThresholds: map[int]float64{30: 2000}}},
		{KindMACross, Params{Base: 100, MAMultipliers: map[int]float64{20: 2}}},
	}

	for _, tt := range tests {
		strat, err := New(tt.kind, tt.params)
		if err != nil {
			t.Errorf("New(%s) failed: %v", tt.kind, err)
			continue
		}
		if strat.Kind() != tt.kind {
			t.Errorf("Kind = %s, want %s", strat.Kind(), tt.kind)
		}
	}
}

func TestNewDefaultsDipTrigger(t *testing.T) {
	strat, err := New(KindDip, Params{Base: 100, DipAmount: 500})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	dip, ok := strat.(*Dip)
	if !ok {
		t.Fatalf("expected *Dip, got %T", strat)
	}
	if dip.trigger != TriggerDailyReturn {
		t.Errorf("default trigger = %q, want %q", dip.trigger, TriggerDailyReturn)
	}
}

func TestNewRejectsMalformedParams(t *testing.T) {
	tests := []struct {
		name   string
		kind   Kind
		params Params
	}{
		{"dca zero base", KindDCA, Params{}},
		{"lump sum zero total", KindLumpSum, Params{}},
		{"dip zero amount", KindDip, Params{Base: 100}},
		{"dip bad threshold", KindDip, Params{Base: 100, DipAmount: 500, DipThreshold: 1.5, HoldingPeriod: 30, Trigger: TriggerRollingHigh}},
		{"dip zero holding", KindDip, Params{Base: 100, DipAmount: 500, DipThreshold: 0.1, Trigger: TriggerRollingHigh}},
		{"dip unknown trigger", KindDip, Params{Base: 100, DipAmount: 500, Trigger: "sideways"}},
		{"rsi period too small", KindRSI, Params{Base: 100, RSIPeriod: 1, RSIThresholds: map[int]float64{30: 2000}}},
		{"rsi no tiers", KindRSI, Params{Base: 100, RSIPeriod: 14}},
		{"rsi threshold out of range", KindRSI, Params{Base: 100, RSIPeriod: 14, RSIThresholds: map[int]float64{120: 2000}}},
		{"rsi non-positive extra", KindRSI, Params{Base: 100, RSIPeriod: 14, RSIThresholds: map[int]float64{30: 0}}},
		{"ma no averages", KindMACross, Params{Base: 100}},
		{"ma bad window", KindMACross, Params{Base: 100, MAMultipliers: map[int]float64{0: 2}}},
		{"ma bad multiplier", KindMACross, Params{Base: 100, MAMultipliers: map[int]float64{20: -1}}},
		{"unknown kind", Kind("martingale"), Params{Base: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.kind, tt.params); err == nil {
				t.Errorf("expected error")
			}
		})
	}
}
