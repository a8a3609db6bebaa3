package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jmlee/dcalab/internal/analytics"
	"github.com/jmlee/dcalab/internal/strategy"
)

// SavedAnalysis is one persisted analysis row
type SavedAnalysis struct {
	ID        int64
	Strategy  strategy.Kind
	Params    strategy.Params
	Analysis  *analytics.StrategyAnalysis
	CreatedAt time.Time
}

// SaveAnalysis persists an analysis for a strategy run and returns
// the new row id
func (r *Repository) SaveAnalysis(ctx context.Context, kind strategy.Kind, params strategy.Params, analysis *analytics.StrategyAnalysis) (int64, error) {
	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal params: %w", err)
	}
	analysisJSON, err := json.Marshal(analysis)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal analysis: %w", err)
	}

	query := `
		INSERT INTO sim.analyses (strategy, params, analysis)
		VALUES ($1, $2, $3)
		RETURNING id`

	var id int64
	if err := r.pool.QueryRow(ctx, query, string(kind), paramsJSON, analysisJSON).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to save analysis: %w", err)
	}

	return id, nil
}

// GetLatestAnalysis returns the most recent analysis for a strategy
func (r *Repository) GetLatestAnalysis(ctx context.Context, kind strategy.Kind) (*SavedAnalysis, error) {
	query := `
		SELECT id, strategy, params, analysis, created_at
		FROM sim.analyses
		WHERE strategy = $1
		ORDER BY created_at DESC
		LIMIT 1`

	row := r.pool.QueryRow(ctx, query, string(kind))
	saved, err := scanAnalysis(row)
	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("no analysis found for strategy %q", kind)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}

	return saved, nil
}

// ListAnalyses returns recent analyses for a strategy, newest first
func (r *Repository) ListAnalyses(ctx context.Context, kind strategy.Kind, limit int) ([]SavedAnalysis, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, strategy, params, analysis, created_at
		FROM sim.analyses
		WHERE strategy = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.pool.Query(ctx, query, string(kind), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	var results []SavedAnalysis
	for rows.Next() {
		saved, err := scanAnalysis(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analysis row: %w", err)
		}
		results = append(results, *saved)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read analysis rows: %w", err)
	}

	return results, nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanAnalysis(row scannable) (*SavedAnalysis, error) {
	var saved SavedAnalysis
	var kind string
	var paramsJSON, analysisJSON []byte

	if err := row.Scan(&saved.ID, &kind, &paramsJSON, &analysisJSON, &saved.CreatedAt); err != nil {
		return nil, err
	}

	saved.Strategy = strategy.Kind(kind)
	if err := json.Unmarshal(paramsJSON, &saved.Params); err != nil {
		return nil, fmt.Errorf("failed to unmarshal params: %w", err)
	}
	saved.Analysis = &analytics.StrategyAnalysis{}
	if err := json.Unmarshal(analysisJSON, saved.Analysis); err != nil {
		return nil, fmt.Errorf("failed to unmarshal analysis: %w", err)
	}

	return &saved, nil
}
