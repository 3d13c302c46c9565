// Package api declares HTTP contracts and route registration helpers. The
// surface is read-only; all writes happen inside the detection cycle.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/nebellleben/capstone-polymarket-arbitrage-agent-sub000/internal/domain/model"
	"github.com/nebellleben/capstone-polymarket-arbitrage-agent-sub000/pkg/metrics"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the application service.
type Dependencies interface {
	// RecentAlerts returns up to limit alerts, newest first, optionally
	// filtered by severity (empty severity means all).
	RecentAlerts(limit int, severity model.Severity) []model.Alert

	// CycleSummaries returns up to limit completed cycle summaries, newest first.
	CycleSummaries(limit int) []model.CycleSummary

	// Stats reports operational counters for the status endpoint.
	Stats() map[string]any
}

// Server wires HTTP routes for the operator API.
type Server struct {
	healthHandler *HealthHandler
	alertsHandler *AlertsHandler
	statusHandler *StatusHandler
	cyclesHandler *CyclesHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		healthHandler: NewHealthHandler(),
		alertsHandler: NewAlertsHandler(deps),
		statusHandler: NewStatusHandler(deps),
		cyclesHandler: NewCyclesHandler(deps),
	}
}

// Router builds the chi router with all routes attached.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)

	r.Get("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	r.Get("/alerts", MetricsMiddleware(s.alertsHandler.HandleGetAlerts, "alerts"))
	r.Get("/status", MetricsMiddleware(s.statusHandler.HandleGetStatus, "status"))
	r.Get("/cycles", MetricsMiddleware(s.cyclesHandler.HandleGetCycles, "cycles"))
	r.Handle("/metrics", metrics.Handler())

	return r
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, msg string) {
	if msg == "" {
		msg = http.StatusText(status)
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
