package commands

import (
	"fmt"

	"github.com/jmlee/dcalab/internal/analytics"
	"github.com/jmlee/dcalab/internal/backtest"
	"github.com/jmlee/dcalab/internal/market"
	"github.com/jmlee/dcalab/pkg/config"
	"github.com/jmlee/dcalab/pkg/logger"
)

// setup loads config and builds the logger shared by all commands
func setup() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	if verbose {
		cfg.LogLevel = "debug"
	}

	log := logger.New(cfg)
	return cfg, log, nil
}

// loadSeries reads the price history, preferring the --data flag over
// the configured data file
func loadSeries(cfg *config.Config) (*market.Series, error) {
	path := dataFile
	if path == "" {
		path = cfg.Simulation.DataFile
	}
	if path == "" {
		return nil, fmt.Errorf("no price data file configured (set --data or PRICE_DATA_FILE)")
	}

	series, err := market.LoadCSV(path)
	if err != nil {
		return nil, fmt.Errorf("load price history from %s: %w", path, err)
	}

	return series, nil
}

// buildSimulation wires the backtest engine and analyzer around a
// loaded price series
func buildSimulation(cfg *config.Config, log *logger.Logger) (*backtest.Engine, *analytics.Analyzer, error) {
	series, err := loadSeries(cfg)
	if err != nil {
		return nil, nil, err
	}

	engine := backtest.NewEngine(series, log)
	analyzer := analytics.NewAnalyzer(cfg.Simulation.RiskFreeRate, cfg.Simulation.DrawdownThreshold, log)
	return engine, analyzer, nil
}
