package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jmlee/dcalab/internal/external/coingecko"
	"github.com/jmlee/dcalab/internal/scheduler"
	"github.com/jmlee/dcalab/internal/scheduler/jobs"
	"github.com/jmlee/dcalab/internal/store"
	"github.com/jmlee/dcalab/internal/sweep"
	"github.com/jmlee/dcalab/pkg/database"
	"github.com/jmlee/dcalab/pkg/httputil"
	"github.com/jmlee/dcalab/pkg/redis"
)

// schedulerCmd represents the scheduler command
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Run the job scheduler",
	Long: `Runs the background job scheduler.

Jobs:
  price_refresh  - daily price history refresh (02:00 UTC)
  nightly_sweep  - parameter sweep over fresh data (03:00 UTC)

Example:
  go run ./cmd/dcalab scheduler
  go run ./cmd/dcalab scheduler --sweep-config config/sweep.yaml`,
	RunE: runScheduler,
}

var schedulerSweepConfig string

func init() {
	rootCmd.AddCommand(schedulerCmd)

	// Flags
	schedulerCmd.Flags().StringVar(&schedulerSweepConfig, "sweep-config", "config/sweep.yaml", "sweep config YAML")
}

func runScheduler(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	var repo *store.Repository
	if cfg.Database.URL != "" {
		db, err := database.New(cfg)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer db.Close()
		repo = store.NewRepository(db.Pool)
		if err := repo.EnsureSchema(cmd.Context()); err != nil {
			return err
		}
	}

	httpClient := httputil.New(log).WithRateLimit(cfg.CoinGecko.RateLimit)
	gecko := coingecko.NewClient(httpClient, log, cfg.CoinGecko.BaseURL)

	engine, analyzer, err := buildSimulation(cfg, log)
	if err != nil {
		return err
	}

	var cache sweep.Cache
	redisClient, err := redis.New(cfg)
	if err != nil {
		log.WithError(err).Warn("Redis unavailable, using in-memory cache")
	} else if redisClient.Enabled() {
		cache = sweep.NewRedisCache(redisClient, log)
		defer redisClient.Close()
	}
	sweeper := sweep.NewEngine(engine, analyzer, cache, cfg.Simulation.SweepWorkers, log)

	sched := scheduler.New(log)
	if err := sched.AddJob(jobs.NewPriceRefreshJob(gecko, repo, cfg, log)); err != nil {
		return err
	}
	if err := sched.AddJob(jobs.NewSweepJob(sweeper, repo, schedulerSweepConfig, log)); err != nil {
		return err
	}

	sched.Start()
	fmt.Println("Scheduler running. Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	sched.Stop()
	return nil
}
