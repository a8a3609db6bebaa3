package sweep

import (
	"errors"
	"fmt"
)

// Objectives accepted by SelectOptimal
const (
	ObjectiveROI         = "roi"
	ObjectiveSharpe      = "sharpe_ratio"
	ObjectiveSortino     = "sortino_ratio"
	ObjectiveMaxDrawdown = "max_drawdown"
	ObjectiveWinRate     = "win_rate"
)

// ErrNoCandidates is returned when every combination in a sweep failed
var ErrNoCandidates = errors.New("no candidate results to select from")

// SelectOptimal picks the result maximizing the objective. With
// riskAdjusted set and the ROI objective, combinations are ranked by
// roi multiplied by sharpe so that leveraged-looking returns with poor
// risk profiles lose to steadier ones. Ties keep the earliest result
// in enumeration order.
func SelectOptimal(results []*Result, objective string, riskAdjusted bool) (*Result, error) {
	if len(results) == 0 {
		return nil, ErrNoCandidates
	}

	score, err := scoreFunc(objective, riskAdjusted)
	if err != nil {
		return nil, err
	}

	best := results[0]
	bestScore := score(best)
	for _, r := range results[1:] {
		if s := score(r); s > bestScore {
			best = r
			bestScore = s
		}
	}

	return best, nil
}

func scoreFunc(objective string, riskAdjusted bool) (func(*Result) float64, error) {
	switch objective {
	case ObjectiveROI:
		if riskAdjusted {
			return func(r *Result) float64 { return r.Analysis.ROI * r.Analysis.SharpeRatio }, nil
		}
		return func(r *Result) float64 { return r.Analysis.ROI }, nil
	case ObjectiveSharpe:
		return func(r *Result) float64 { return r.Analysis.SharpeRatio }, nil
	case ObjectiveSortino:
		return func(r *Result) float64 { return r.Analysis.SortinoRatio }, nil
	case ObjectiveMaxDrawdown:
		// Drawdowns are negative; the shallowest one wins
		return func(r *Result) float64 { return r.Analysis.MaxDrawdown }, nil
	case ObjectiveWinRate:
		return func(r *Result) float64 { return r.Analysis.WinRate }, nil
	default:
		return nil, fmt.Errorf("unknown objective %q", objective)
	}
}
