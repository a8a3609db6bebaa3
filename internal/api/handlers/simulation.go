package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/jmlee/dcalab/internal/analytics"
	"github.com/jmlee/dcalab/internal/backtest"
	"github.com/jmlee/dcalab/internal/strategy"
	"github.com/jmlee/dcalab/pkg/logger"
)

// SimulationHandler handles single-strategy simulation endpoints
type SimulationHandler struct {
	engine   *backtest.Engine
	analyzer *analytics.Analyzer
	logger   *logger.Logger
}

func NewSimulationHandler(engine *backtest.Engine, analyzer *analytics.Analyzer, log *logger.Logger) *SimulationHandler {
	return &SimulationHandler{
		engine:   engine,
		analyzer: analyzer,
		logger:   log,
	}
}

// SimulateRequest selects a strategy and its parameters
type SimulateRequest struct {
	Strategy string          `json:"strategy"`
	Params   strategy.Params `json:"params"`
}

// SimulateResponse carries the analysis and optionally the full
// portfolio track
type SimulateResponse struct {
	Strategy  string                      `json:"strategy"`
	Analysis  *analytics.StrategyAnalysis `json:"analysis"`
	Portfolio []backtest.State            `json:"portfolio,omitempty"`
}

// Run simulates one strategy over the loaded price history
// POST /api/simulate
func (h *SimulationHandler) Run(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SimulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	strat, err := strategy.New(strategy.Kind(req.Strategy), req.Params)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	portfolio, err := h.engine.Run(ctx, strat)
	if err != nil {
		h.logger.WithError(err).Error("Simulation failed")
		respondError(w, http.StatusInternalServerError, "Simulation failed")
		return
	}

	analysis, err := h.analyzer.Analyze(portfolio)
	if err != nil {
		h.logger.WithError(err).Error("Analysis failed")
		respondError(w, http.StatusInternalServerError, "Analysis failed")
		return
	}

	resp := SimulateResponse{
		Strategy: req.Strategy,
		Analysis: analysis,
	}
	if r.URL.Query().Get("include_portfolio") == "true" {
		resp.Portfolio = portfolio.States
	}

	respondJSON(w, http.StatusOK, resp)
}

// CompareRequest runs several strategies over the same history
type CompareRequest struct {
	Strategies []SimulateRequest `json:"strategies"`
}

// Compare simulates multiple strategies and returns a comparison table
// POST /api/simulate/compare
func (h *SimulationHandler) Compare(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CompareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Strategies) == 0 {
		respondError(w, http.StatusBadRequest, "At least one strategy is required")
		return
	}

	named := make([]analytics.NamedAnalysis, 0, len(req.Strategies))
	for _, entry := range req.Strategies {
		strat, err := strategy.New(strategy.Kind(entry.Strategy), entry.Params)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		portfolio, err := h.engine.Run(ctx, strat)
		if err != nil {
			h.logger.WithError(err).WithField("strategy", entry.Strategy).Error("Simulation failed")
			respondError(w, http.StatusInternalServerError, "Simulation failed")
			return
		}

		analysis, err := h.analyzer.Analyze(portfolio)
		if err != nil {
			h.logger.WithError(err).WithField("strategy", entry.Strategy).Error("Analysis failed")
			respondError(w, http.StatusInternalServerError, "Analysis failed")
			return
		}

		named = append(named, analytics.NamedAnalysis{Name: strat.Name(), Analysis: analysis})
	}

	respondJSON(w, http.StatusOK, analytics.Compare(named))
}

// PriceMetrics returns summary statistics of the loaded price history
// GET /api/prices/metrics
func (h *SimulationHandler) PriceMetrics(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.engine.Series().Metrics())
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
