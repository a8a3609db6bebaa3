package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists price history, analysis results, and sweep
// optima. All simulation persistence goes through here.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const schema = `
CREATE SCHEMA IF NOT EXISTS sim;

CREATE TABLE IF NOT EXISTS sim.prices (
	coin_id    TEXT        NOT NULL,
	date       DATE        NOT NULL,
	price      DOUBLE PRECISION NOT NULL,
	PRIMARY KEY (coin_id, date)
);

CREATE TABLE IF NOT EXISTS sim.analyses (
	id          BIGSERIAL   PRIMARY KEY,
	strategy    TEXT        NOT NULL,
	params      JSONB       NOT NULL,
	analysis    JSONB       NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS sim.optima (
	id           BIGSERIAL   PRIMARY KEY,
	strategy     TEXT        NOT NULL,
	objective    TEXT        NOT NULL,
	config_hash  TEXT        NOT NULL,
	combination  JSONB       NOT NULL,
	analysis     JSONB       NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (strategy, objective, config_hash)
);
`

// EnsureSchema creates the simulation tables if they do not exist
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}
