package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmlee/dcalab/internal/external/coinarchive"
	"github.com/jmlee/dcalab/internal/external/coingecko"
	"github.com/jmlee/dcalab/internal/market"
	"github.com/jmlee/dcalab/internal/store"
	"github.com/jmlee/dcalab/pkg/database"
	"github.com/jmlee/dcalab/pkg/httputil"
)

// fetchCmd represents the fetch command
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch historical prices",
	Long: `Downloads daily closing prices from the market data API and writes
them to a CSV snapshot. Falls back to scraping the published
historical table when the API is unavailable.

Example:
  go run ./cmd/dcalab fetch --days 365 --out data/btc_prices.csv
  go run ./cmd/dcalab fetch --days 730 --store`,
	RunE: runFetch,
}

var (
	fetchDays  int
	fetchOut   string
	fetchStore bool
)

func init() {
	rootCmd.AddCommand(fetchCmd)

	// Flags
	fetchCmd.Flags().IntVar(&fetchDays, "days", 365, "number of days to fetch")
	fetchCmd.Flags().StringVar(&fetchOut, "out", "", "output CSV path (default from config)")
	fetchCmd.Flags().BoolVar(&fetchStore, "store", false, "also persist prices to the database")
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	httpClient := httputil.New(log).WithRateLimit(cfg.CoinGecko.RateLimit)
	gecko := coingecko.NewClient(httpClient, log, cfg.CoinGecko.BaseURL)

	coinID := cfg.CoinGecko.CoinID
	points, err := gecko.FetchDailyPrices(ctx, coinID, cfg.CoinGecko.VsCurrency, fetchDays)
	if err != nil {
		log.WithError(err).Warn("API fetch failed, falling back to scraper")
		archive := coinarchive.NewClient(httpClient, log, "")
		points, err = archive.FetchHistorical(ctx, coinID)
		if err != nil {
			return fmt.Errorf("fetch prices: %w", err)
		}
	}

	out := fetchOut
	if out == "" {
		out = cfg.Simulation.DataFile
	}
	if out != "" {
		if err := market.WriteCSV(out, points); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		fmt.Printf("Wrote %d daily prices to %s\n", len(points), out)
	}

	if fetchStore {
		db, err := database.New(cfg)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer db.Close()

		repo := store.NewRepository(db.Pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			return err
		}
		if err := repo.SavePrices(ctx, coinID, points); err != nil {
			return err
		}
		fmt.Printf("Stored %d prices for %s\n", len(points), coinID)
	}

	return nil
}
