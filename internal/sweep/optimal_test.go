package sweep

import (
	"errors"
	"testing"

	"github.com/jmlee/dcalab/internal/analytics"
	"github.com/jmlee/dcalab/internal/strategy"
)

func fakeResult(base float64, a analytics.StrategyAnalysis) *Result {
	return &Result{
		Combination: Combination{
			Kind:   strategy.KindDCA,
			Params: strategy.Params{Base: base},
		},
		Analysis: &a,
	}
}

func TestSelectOptimalByObjective(t *testing.T) {
	results := []*Result{
		fakeResult(1, analytics.StrategyAnalysis{
			ROI: 40, SharpeRatio: 0.8, SortinoRatio: 1.1, MaxDrawdown: -35, WinRate: 48,
		}),
		fakeResult(2, analytics.StrategyAnalysis{
			ROI: 25, SharpeRatio: 1.6, SortinoRatio: 2.4, MaxDrawdown: -12, WinRate: 58,
		}),
		fakeResult(3, analytics.StrategyAnalysis{
			ROI: 32, SharpeRatio: 1.1, SortinoRatio: 1.5, MaxDrawdown: -20, WinRate: 52,
		}),
	}

	tests := []struct {
		objective string
		wantBase  float64
	}{
		{ObjectiveROI, 1},
		{ObjectiveSharpe, 2},
		{ObjectiveSortino, 2},
		{ObjectiveMaxDrawdown, 2}, // shallowest drawdown wins
		{ObjectiveWinRate, 2},
	}

	for _, tt := range tests {
		best, err := SelectOptimal(results, tt.objective, false)
		if err != nil {
			t.Errorf("%s: SelectOptimal failed: %v", tt.objective, err)
			continue
		}
		if best.Combination.Params.Base != tt.wantBase {
			t.Errorf("%s: selected base %v, want %v", tt.objective, best.Combination.Params.Base, tt.wantBase)
		}
	}
}

func TestSelectOptimalRiskAdjustedROI(t *testing.T) {
	// Highest raw ROI has a weak sharpe; the risk-adjusted score
	// (roi times sharpe) prefers the steadier candidate
	results := []*Result{
		fakeResult(1, analytics.StrategyAnalysis{ROI: 100, SharpeRatio: 0.5}),
		fakeResult(2, analytics.StrategyAnalysis{ROI: 60, SharpeRatio: 2.0}),
	}

	best, err := SelectOptimal(results, ObjectiveROI, true)
	if err != nil {
		t.Fatalf("SelectOptimal failed: %v", err)
	}
	if best.Combination.Params.Base != 2 {
		t.Errorf("selected base %v, want 2", best.Combination.Params.Base)
	}

	raw, err := SelectOptimal(results, ObjectiveROI, false)
	if err != nil {
		t.Fatalf("SelectOptimal failed: %v", err)
	}
	if raw.Combination.Params.Base != 1 {
		t.Errorf("raw ROI selected base %v, want 1", raw.Combination.Params.Base)
	}
}

func TestSelectOptimalTieKeepsEarliest(t *testing.T) {
	results := []*Result{
		fakeResult(1, analytics.StrategyAnalysis{ROI: 50}),
		fakeResult(2, analytics.StrategyAnalysis{ROI: 50}),
	}

	best, err := SelectOptimal(results, ObjectiveROI, false)
	if err != nil {
		t.Fatalf("SelectOptimal failed: %v", err)
	}
	if best.Combination.Params.Base != 1 {
		t.Errorf("tie selected base %v, want earliest (1)", best.Combination.Params.Base)
	}
}

func TestSelectOptimalEmpty(t *testing.T) {
	if _, err := SelectOptimal(nil, ObjectiveROI, false); !errors.Is(err, ErrNoCandidates) {
		t.Errorf("err = %v, want ErrNoCandidates", err)
	}
}

func TestSelectOptimalUnknownObjective(t *testing.T) {
	results := []*Result{fakeResult(1, analytics.StrategyAnalysis{ROI: 50})}

	if _, err := SelectOptimal(results, "alpha", false); err == nil {
		t.Errorf("expected error for unknown objective")
	}
}
