package backtest

import (
	"context"
	"fmt"

	"github.com/jmlee/dcalab/internal/market"
	"github.com/jmlee/dcalab/internal/strategy"
	"github.com/jmlee/dcalab/pkg/logger"
)

// Engine runs strategy simulations against a price series
type Engine struct {
	series *market.Series
	logger *logger.Logger
}

// NewEngine creates a new simulation engine. The series is shared
// read-only; the engine never mutates it.
func NewEngine(series *market.Series, log *logger.Logger) *Engine {
	return &Engine{
		series: series,
		logger: log,
	}
}

// Series returns the price series the engine simulates against
func (e *Engine) Series() *market.Series {
	return e.series
}

// Run simulates a strategy over the full series and returns its
// portfolio trajectory. The loop is inherently sequential: each period's
// state depends on the prior period's cumulative totals.
func (e *Engine) Run(ctx context.Context, strat strategy.Strategy) (*Portfolio, error) {
	if err := strat.Prepare(e.series); err != nil {
		return nil, fmt.Errorf("prepare %s: %w", strat.Name(), err)
	}

	n := e.series.Len()
	portfolio := &Portfolio{
		Strategy: strat.Name(),
		States:   make([]State, 0, n),
	}

	var invested, held float64
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		price := e.series.Price(i)
		if price <= 0 {
			return nil, fmt.Errorf("non-positive price %v at %s", price, e.series.Date(i).Format("2006-01-02"))
		}

		amount := strat.Amount(i)
		if amount < 0 {
			return nil, fmt.Errorf("strategy %s returned negative investment %v at %s",
				strat.Name(), amount, e.series.Date(i).Format("2006-01-02"))
		}

		bought := amount / price
		invested += amount
		held += bought

		portfolio.States = append(portfolio.States, State{
			Date:        e.series.Date(i),
			Investment:  amount,
			AssetBought: bought,
			AssetHeld:   held,
			Invested:    invested,
			Value:       held * price,
		})
	}

	e.logger.WithFields(map[string]interface{}{
		"strategy":       strat.Name(),
		"periods":        n,
		"total_invested": invested,
		"final_value":    portfolio.FinalValue(),
	}).Debug("Simulation completed")

	return portfolio, nil
}
