package jobs

import (
	"context"
	"fmt"

	"github.com/jmlee/dcalab/internal/external/coingecko"
	"github.com/jmlee/dcalab/internal/market"
	"github.com/jmlee/dcalab/internal/store"
	"github.com/jmlee/dcalab/pkg/config"
	"github.com/jmlee/dcalab/pkg/logger"
)

// PriceRefreshJob fetches the latest daily prices and persists them.
// When a data file is configured it also rewrites the CSV snapshot so
// offline runs pick up fresh data.
type PriceRefreshJob struct {
	client *coingecko.Client
	repo   *store.Repository
	config *config.Config
	logger *logger.Logger
}

func NewPriceRefreshJob(client *coingecko.Client, repo *store.Repository, cfg *config.Config, log *logger.Logger) *PriceRefreshJob {
	return &PriceRefreshJob{
		client: client,
		repo:   repo,
		config: cfg,
		logger: log,
	}
}

func (j *PriceRefreshJob) Name() string {
	return "price_refresh"
}

// Schedule runs daily at 02:00 UTC, after the previous day closes
func (j *PriceRefreshJob) Schedule() string {
	return "0 0 2 * * *"
}

func (j *PriceRefreshJob) Run(ctx context.Context) error {
	coinID := j.config.CoinGecko.CoinID
	j.logger.WithField("coin_id", coinID).Info("Refreshing price history")

	points, err := j.client.FetchDailyPrices(ctx, coinID, j.config.CoinGecko.VsCurrency, 365)
	if err != nil {
		return fmt.Errorf("fetch prices: %w", err)
	}

	if j.repo != nil {
		if err := j.repo.SavePrices(ctx, coinID, points); err != nil {
			return fmt.Errorf("save prices: %w", err)
		}
	}

	if file := j.config.Simulation.DataFile; file != "" {
		if err := market.WriteCSV(file, points); err != nil {
			return fmt.Errorf("write snapshot: %w", err)
		}
	}

	j.logger.WithFields(map[string]interface{}{
		"coin_id": coinID,
		"count":   len(points),
	}).Info("Price history refreshed")

	return nil
}
