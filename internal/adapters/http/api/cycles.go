package api

import (
	"net/http"
	"strconv"

	"github.com/nebellleben/capstone-polymarket-arbitrage-agent-sub000/internal/domain/model"
)

// Cycle listing limits.
const (
	defaultCycleLimit = 10
	maxCycleLimit     = 100
)

// CyclesHandler serves recent cycle summaries.
type CyclesHandler struct {
	deps Dependencies
}

// NewCyclesHandler creates a new cycles handler.
func NewCyclesHandler(deps Dependencies) *CyclesHandler {
	return &CyclesHandler{deps: deps}
}

type cyclesResponse struct {
	Cycles []model.CycleSummary `json:"cycles"`
	Count  int                  `json:"count"`
}

// HandleGetCycles handles GET /cycles?limit=N requests.
func (h *CyclesHandler) HandleGetCycles(w http.ResponseWriter, r *http.Request) {
	limit := defaultCycleLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "bad_limit", "limit must be a positive integer")
			return
		}
		if n > maxCycleLimit {
			n = maxCycleLimit
		}
		limit = n
	}

	cycles := h.deps.CycleSummaries(limit)
	if cycles == nil {
		cycles = []model.CycleSummary{}
	}
	writeJSON(w, http.StatusOK, cyclesResponse{Cycles: cycles, Count: len(cycles)})
}
