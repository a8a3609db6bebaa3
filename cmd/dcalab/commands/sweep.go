package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmlee/dcalab/internal/simconfig"
	"github.com/jmlee/dcalab/internal/store"
	"github.com/jmlee/dcalab/internal/sweep"
	"github.com/jmlee/dcalab/pkg/database"
	"github.com/jmlee/dcalab/pkg/redis"
)

// sweepCmd represents the sweep command
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Explore a strategy parameter grid",
	Long: `Runs every combination of a declared parameter grid through the
simulator and reports the best-performing configuration per strategy.

Example:
  go run ./cmd/dcalab sweep run --config config/sweep.yaml
  go run ./cmd/dcalab sweep run --config config/sweep.yaml --save`,
}

var (
	sweepRunCmd = &cobra.Command{
		Use:   "run",
		Short: "Run a parameter sweep",
		RunE:  runSweep,
	}

	// Flags
	sweepConfigFile string
	sweepSave       bool
)

func init() {
	rootCmd.AddCommand(sweepCmd)
	sweepCmd.AddCommand(sweepRunCmd)

	// Flags
	sweepRunCmd.Flags().StringVar(&sweepConfigFile, "config", "config/sweep.yaml", "sweep config YAML")
	sweepRunCmd.Flags().BoolVar(&sweepSave, "save", false, "persist winners to the database")
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	sweepCfg, _, err := simconfig.Load(sweepConfigFile)
	if err != nil {
		return fmt.Errorf("load sweep config: %w", err)
	}
	hash, err := simconfig.Hash(sweepCfg)
	if err != nil {
		return fmt.Errorf("hash sweep config: %w", err)
	}

	if sweepCfg.Data.File != "" && dataFile == "" {
		dataFile = sweepCfg.Data.File
	}
	if sweepCfg.Simulation.RiskFreeRate > 0 {
		cfg.Simulation.RiskFreeRate = sweepCfg.Simulation.RiskFreeRate
	}
	if sweepCfg.Simulation.DrawdownThreshold < 0 {
		cfg.Simulation.DrawdownThreshold = sweepCfg.Simulation.DrawdownThreshold
	}

	engine, analyzer, err := buildSimulation(cfg, log)
	if err != nil {
		return err
	}

	// Redis-backed memoization when available, in-process otherwise
	var cache sweep.Cache
	redisClient, err := redis.New(cfg)
	if err != nil {
		log.WithError(err).Warn("Redis unavailable, using in-memory cache")
	} else if redisClient.Enabled() {
		cache = sweep.NewRedisCache(redisClient, log)
		defer redisClient.Close()
	}

	workers := sweepCfg.Simulation.Workers
	if workers == 0 {
		workers = cfg.Simulation.SweepWorkers
	}
	sweeper := sweep.NewEngine(engine, analyzer, cache, workers, log)

	var repo *store.Repository
	if sweepSave {
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

	objective := sweepCfg.Sweep.Objective
	if objective == "" {
		objective = sweep.ObjectiveROI
	}
	space := sweepCfg.Sweep.Space()

	fmt.Printf("Sweep %q (hash %.12s) over %d days\n\n", sweepCfg.Meta.Name, hash, engine.Series().Len())

	for _, kind := range sweepCfg.Sweep.Kinds() {
		combos, err := sweep.Combinations(space, kind)
		if err != nil {
			return fmt.Errorf("sweep %s: %w", kind, err)
		}

		results, err := sweeper.Run(cmd.Context(), space, kind)
		if err != nil {
			return fmt.Errorf("sweep %s: %w", kind, err)
		}

		optimal, err := sweep.SelectOptimal(results, objective, sweepCfg.Sweep.RiskAdjusted)
		if err != nil {
			fmt.Printf("%-10s no viable combination (%v)\n", kind, err)
			continue
		}

		fmt.Printf("%-10s best: %s\n", kind, optimal.Combination.Key())
		fmt.Printf("           roi=%.2f%% sharpe=%.2f mdd=%.2f%% (%d/%d combinations)\n",
			optimal.Analysis.ROI, optimal.Analysis.SharpeRatio,
			optimal.Analysis.MaxDrawdown, len(results), len(combos))

		if repo != nil {
			if err := repo.SaveOptimum(cmd.Context(), objective, hash, optimal); err != nil {
				return fmt.Errorf("save optimum for %s: %w", kind, err)
			}
		}
	}

	return nil
}
