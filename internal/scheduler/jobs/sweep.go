package jobs

import (
	"context"
	"fmt"

	"github.com/jmlee/dcalab/internal/simconfig"
	"github.com/jmlee/dcalab/internal/store"
	"github.com/jmlee/dcalab/internal/sweep"
	"github.com/jmlee/dcalab/pkg/logger"
)

// SweepJob reruns the configured parameter grid nightly and persists
// the winner per strategy, so the stored optima track fresh data.
type SweepJob struct {
	engine     *sweep.Engine
	repo       *store.Repository
	configPath string
	logger     *logger.Logger
}

func NewSweepJob(engine *sweep.Engine, repo *store.Repository, configPath string, log *logger.Logger) *SweepJob {
	return &SweepJob{
		engine:     engine,
		repo:       repo,
		configPath: configPath,
		logger:     log,
	}
}

func (j *SweepJob) Name() string {
	return "nightly_sweep"
}

// Schedule runs daily at 03:00 UTC, after the price refresh
func (j *SweepJob) Schedule() string {
	return "0 0 3 * * *"
}

func (j *SweepJob) Run(ctx context.Context) error {
	cfg, _, err := simconfig.Load(j.configPath)
	if err != nil {
		return fmt.Errorf("load sweep config: %w", err)
	}

	hash, err := simconfig.Hash(cfg)
	if err != nil {
		return fmt.Errorf("hash sweep config: %w", err)
	}

	objective := cfg.Sweep.Objective
	if objective == "" {
		objective = sweep.ObjectiveROI
	}
	space := cfg.Sweep.Space()

	for _, kind := range cfg.Sweep.Kinds() {
		results, err := j.engine.Run(ctx, space, kind)
		if err != nil {
			return fmt.Errorf("sweep %s: %w", kind, err)
		}

		optimal, err := sweep.SelectOptimal(results, objective, cfg.Sweep.RiskAdjusted)
		if err != nil {
			j.logger.WithError(err).WithField("strategy", string(kind)).Warn("No optimum for strategy")
			continue
		}

		if j.repo != nil {
			if err := j.repo.SaveOptimum(ctx, objective, hash, optimal); err != nil {
				return fmt.Errorf("save optimum for %s: %w", kind, err)
			}
		}

		j.logger.WithFields(map[string]interface{}{
			"strategy": string(kind),
			"key":      optimal.Combination.Key(),
			"roi":      optimal.Analysis.ROI,
		}).Info("Stored sweep optimum")
	}

	return nil
}
