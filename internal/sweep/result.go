package sweep

import (
	"github.com/jmlee/dcalab/internal/analytics"
	"github.com/jmlee/dcalab/internal/backtest"
)

// Result is the outcome of simulating a single parameter combination.
// Portfolio may be nil when the result was reconstructed from a cache
// that stores only the analysis.
type Result struct {
	Combination Combination                 `json:"combination"`
	Portfolio   *backtest.Portfolio         `json:"-"`
	Analysis    *analytics.StrategyAnalysis `json:"analysis"`
}
