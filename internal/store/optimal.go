package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jmlee/dcalab/internal/analytics"
	"github.com/jmlee/dcalab/internal/strategy"
	"github.com/jmlee/dcalab/internal/sweep"
)

// SavedOptimum records the winning combination of a sweep run,
// keyed by the grid's config hash so reruns of the same grid
// overwrite rather than accumulate.
type SavedOptimum struct {
	ID          int64
	Strategy    strategy.Kind
	Objective   string
	ConfigHash  string
	Combination sweep.Combination
	Analysis    *analytics.StrategyAnalysis
	CreatedAt   time.Time
}

// SaveOptimum upserts the winner of a sweep
func (r *Repository) SaveOptimum(ctx context.Context, objective, configHash string, result *sweep.Result) error {
	comboJSON, err := json.Marshal(result.Combination)
	if err != nil {
		return fmt.Errorf("failed to marshal combination: %w", err)
	}
	analysisJSON, err := json.Marshal(result.Analysis)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis: %w", err)
	}

	query := `
		INSERT INTO sim.optima (strategy, objective, config_hash, combination, analysis)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (strategy, objective, config_hash) DO UPDATE SET
			combination = EXCLUDED.combination,
			analysis = EXCLUDED.analysis,
			created_at = now()`

	_, err = r.pool.Exec(ctx, query,
		string(result.Combination.Kind), objective, configHash, comboJSON, analysisJSON)
	if err != nil {
		return fmt.Errorf("failed to save optimum: %w", err)
	}

	return nil
}

// GetOptimum returns the latest stored winner for a strategy and objective
func (r *Repository) GetOptimum(ctx context.Context, kind strategy.Kind, objective string) (*SavedOptimum, error) {
	query := `
		SELECT id, strategy, objective, config_hash, combination, analysis, created_at
		FROM sim.optima
		WHERE strategy = $1 AND objective = $2
		ORDER BY created_at DESC
		LIMIT 1`

	var saved SavedOptimum
	var kindStr string
	var comboJSON, analysisJSON []byte

	err := r.pool.QueryRow(ctx, query, string(kind), objective).Scan(
		&saved.ID, &kindStr, &saved.Objective, &saved.ConfigHash,
		&comboJSON, &analysisJSON, &saved.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("no optimum found for strategy %q objective %q", kind, objective)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get optimum: %w", err)
	}

	saved.Strategy = strategy.Kind(kindStr)
	if err := json.Unmarshal(comboJSON, &saved.Combination); err != nil {
		return nil, fmt.Errorf("failed to unmarshal combination: %w", err)
	}
	saved.Analysis = &analytics.StrategyAnalysis{}
	if err := json.Unmarshal(analysisJSON, saved.Analysis); err != nil {
		return nil, fmt.Errorf("failed to unmarshal analysis: %w", err)
	}

	return &saved, nil
}
