package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmlee/dcalab/internal/api"
	"github.com/jmlee/dcalab/internal/api/handlers"
	"github.com/jmlee/dcalab/internal/store"
	"github.com/jmlee/dcalab/internal/sweep"
	"github.com/jmlee/dcalab/pkg/database"
	"github.com/jmlee/dcalab/pkg/redis"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the simulation API server",
	Long: `Starts the REST API server.

Endpoints:
  GET  /health                        - Health check
  POST /api/simulate                  - Run one strategy
  POST /api/simulate/compare          - Compare strategies
  GET  /api/prices/metrics            - Price history summary
  POST /api/sweep                     - Run a parameter sweep
  GET  /api/sweep/optimal/{strategy}  - Last persisted winner
  WS   /ws/progress                   - Live sweep progress

Example:
  go run ./cmd/dcalab api
  go run ./cmd/dcalab api --port 8087`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	// Flags
	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	if apiPort != "" {
		cfg.Port = apiPort
	}

	engine, analyzer, err := buildSimulation(cfg, log)
	if err != nil {
		return err
	}

	// Persistence is optional for the API
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
		log.Info("Connected to database")
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

	progress := api.NewProgressHub(log)
	sweeper.OnProgress(progress.Publish)

	simHandler := handlers.NewSimulationHandler(engine, analyzer, log)
	sweepHandler := handlers.NewSweepHandler(sweeper, repo, log)

	router := api.NewRouter(simHandler, sweepHandler, progress, log)
	server := api.New(cfg, log, router)

	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	fmt.Printf("Server running on http://localhost:%s\n", cfg.Port)
	fmt.Println("Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
