package sweep

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/jmlee/dcalab/internal/analytics"
	"github.com/jmlee/dcalab/internal/backtest"
	"github.com/jmlee/dcalab/internal/strategy"
	"github.com/jmlee/dcalab/pkg/logger"
)

// Progress describes the state of a running sweep after one
// combination finished. Callbacks may be invoked concurrently.
type Progress struct {
	Key       string `json:"key"`
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
	Failed    bool   `json:"failed"`
	Cached    bool   `json:"cached"`
}

// Engine runs every combination of a parameter space through the
// backtester and analyzer on a bounded worker pool.
type Engine struct {
	backtester *backtest.Engine
	analyzer   *analytics.Analyzer
	cache      Cache
	workers    int
	logger     *logger.Logger
	onProgress func(Progress)
}

func NewEngine(bt *backtest.Engine, analyzer *analytics.Analyzer, cache Cache, workers int, log *logger.Logger) *Engine {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if cache == nil {
		cache = NewMemoryCache()
	}
	return &Engine{
		backtester: bt,
		analyzer:   analyzer,
		cache:      cache,
		workers:    workers,
		logger:     log,
	}
}

// OnProgress registers a callback fired after each combination
// completes. Must be set before Run.
func (e *Engine) OnProgress(fn func(Progress)) {
	e.onProgress = fn
}

// Run simulates every combination of the space for the given strategy
// kind. Results are returned in enumeration order. A combination that
// fails is logged and excluded without aborting the sweep. Cancelling
// the context stops dispatching new work; in-flight combinations run
// to completion and their results are kept.
func (e *Engine) Run(ctx context.Context, space Space, kind strategy.Kind) ([]*Result, error) {
	combos, err := Combinations(space, kind)
	if err != nil {
		return nil, fmt.Errorf("enumerating sweep: %w", err)
	}

	e.logger.WithFields(map[string]interface{}{
		"strategy":     string(kind),
		"combinations": len(combos),
		"workers":      e.workers,
	}).Info("Starting parameter sweep")

	slots := make([]*Result, len(combos))

	jobs := make(chan int)
	var wg sync.WaitGroup

	var mu sync.Mutex
	completed := 0
	failed := 0

	finish := func(key string, ok, cached bool) {
		mu.Lock()
		completed++
		if !ok {
			failed++
		}
		done := completed
		mu.Unlock()

		if e.onProgress != nil {
			e.onProgress(Progress{
				Key:       key,
				Completed: done,
				Total:     len(combos),
				Failed:    !ok,
				Cached:    cached,
			})
		}
	}

	for w := 0; w < e.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				combo := combos[idx]
				result, cached, err := e.runOne(ctx, combo)
				if err != nil {
					e.logger.WithError(err).WithFields(map[string]interface{}{
						"strategy": string(combo.Kind),
						"key":      combo.Key(),
					}).Warn("Combination failed, excluding from results")
					finish(combo.Key(), false, false)
					continue
				}
				slots[idx] = result
				finish(combo.Key(), true, cached)
			}
		}()
	}

dispatch:
	for i := range combos {
		select {
		case <-ctx.Done():
			e.logger.WithField("dispatched", i).Warn("Sweep cancelled, draining in-flight work")
			break dispatch
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	results := make([]*Result, 0, len(combos))
	for _, r := range slots {
		if r != nil {
			results = append(results, r)
		}
	}

	e.logger.WithFields(map[string]interface{}{
		"strategy":  string(kind),
		"completed": len(results),
		"failed":    failed,
	}).Info("Parameter sweep finished")

	return results, nil
}

func (e *Engine) runOne(ctx context.Context, combo Combination) (*Result, bool, error) {
	key := combo.Key()

	if cached, ok := e.cache.Get(ctx, key); ok {
		return cached, true, nil
	}

	strat, err := strategy.New(combo.Kind, combo.Params)
	if err != nil {
		return nil, false, fmt.Errorf("building strategy: %w", err)
	}

	portfolio, err := e.backtester.Run(ctx, strat)
	if err != nil {
		return nil, false, fmt.Errorf("running backtest: %w", err)
	}

	analysis, err := e.analyzer.Analyze(portfolio)
	if err != nil {
		return nil, false, fmt.Errorf("analyzing portfolio: %w", err)
	}

	result := &Result{
		Combination: combo,
		Portfolio:   portfolio,
		Analysis:    analysis,
	}
	e.cache.Set(ctx, key, result)

	return result, false, nil
}
