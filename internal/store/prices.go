package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jmlee/dcalab/internal/market"
)

// SavePrices upserts a price history for a coin in one batch
func (r *Repository) SavePrices(ctx context.Context, coinID string, points []market.PricePoint) error {
	if len(points) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO sim.prices (coin_id, date, price)
		VALUES ($1, $2, $3)
		ON CONFLICT (coin_id, date) DO UPDATE SET
			price = EXCLUDED.price`

	for _, p := range points {
		batch.Queue(query, coinID, p.Date, p.Price)
	}

	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range points {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to save prices: %w", err)
		}
	}

	return nil
}

// LoadSeries reads the stored history for a coin into a price series.
// Zero time bounds mean unbounded.
func (r *Repository) LoadSeries(ctx context.Context, coinID string, from, to time.Time) (*market.Series, error) {
	query := `
		SELECT date, price
		FROM sim.prices
		WHERE coin_id = $1
		  AND ($2::timestamptz IS NULL OR date >= $2)
		  AND ($3::timestamptz IS NULL OR date <= $3)
		ORDER BY date ASC`

	var fromArg, toArg interface{}
	if !from.IsZero() {
		fromArg = from
	}
	if !to.IsZero() {
		toArg = to
	}

	rows, err := r.pool.Query(ctx, query, coinID, fromArg, toArg)
	if err != nil {
		return nil, fmt.Errorf("failed to load prices: %w", err)
	}
	defer rows.Close()

	var points []market.PricePoint
	for rows.Next() {
		var p market.PricePoint
		if err := rows.Scan(&p.Date, &p.Price); err != nil {
			return nil, fmt.Errorf("failed to scan price row: %w", err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read price rows: %w", err)
	}

	if len(points) == 0 {
		return nil, fmt.Errorf("no stored prices for coin %q", coinID)
	}

	return market.NewSeries(points)
}
