package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jmlee/dcalab/internal/store"
	"github.com/jmlee/dcalab/internal/strategy"
	"github.com/jmlee/dcalab/internal/sweep"
	"github.com/jmlee/dcalab/pkg/logger"
)

// SweepHandler handles parameter sweep endpoints
type SweepHandler struct {
	engine *sweep.Engine
	logger *logger.Logger

	// nil when persistence is not configured
	optima *store.Repository
}

func NewSweepHandler(engine *sweep.Engine, optima *store.Repository, log *logger.Logger) *SweepHandler {
	return &SweepHandler{
		engine: engine,
		optima: optima,
		logger: log,
	}
}

// SweepRequest declares the grid and selection objective
type SweepRequest struct {
	Strategy     string      `json:"strategy"`
	Space        sweep.Space `json:"space"`
	Objective    string      `json:"objective"`
	RiskAdjusted bool        `json:"risk_adjusted"`
}

// SweepResponse reports the winner and the full ranking input
type SweepResponse struct {
	Strategy  string          `json:"strategy"`
	Total     int             `json:"total"`
	Completed int             `json:"completed"`
	Optimal   *sweep.Result   `json:"optimal"`
	Results   []*sweep.Result `json:"results,omitempty"`
}

// Run executes a sweep and returns the optimal combination
// POST /api/sweep
func (h *SweepHandler) Run(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SweepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Objective == "" {
		req.Objective = sweep.ObjectiveROI
	}

	kind := strategy.Kind(req.Strategy)
	combos, err := sweep.Combinations(req.Space, kind)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	results, err := h.engine.Run(ctx, req.Space, kind)
	if err != nil {
		h.logger.WithError(err).Error("Sweep failed")
		respondError(w, http.StatusInternalServerError, "Sweep failed")
		return
	}

	optimal, err := sweep.SelectOptimal(results, req.Objective, req.RiskAdjusted)
	if err != nil {
		if err == sweep.ErrNoCandidates {
			respondError(w, http.StatusUnprocessableEntity, "Every combination failed")
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp := SweepResponse{
		Strategy:  req.Strategy,
		Total:     len(combos),
		Completed: len(results),
		Optimal:   optimal,
	}
	if r.URL.Query().Get("include_results") == "true" {
		resp.Results = results
	}

	respondJSON(w, http.StatusOK, resp)
}

// GetOptimal returns the last persisted winner for a strategy
// GET /api/sweep/optimal/{strategy}
func (h *SweepHandler) GetOptimal(w http.ResponseWriter, r *http.Request) {
	if h.optima == nil {
		respondError(w, http.StatusNotImplemented, "Persistence is not configured")
		return
	}

	vars := mux.Vars(r)
	kind := strategy.Kind(vars["strategy"])
	objective := r.URL.Query().Get("objective")
	if objective == "" {
		objective = sweep.ObjectiveROI
	}

	optimum, err := h.optima.GetOptimum(r.Context(), kind, objective)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, optimum)
}
