package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/nebellleben/capstone-polymarket-arbitrage-agent-sub000/internal/domain/model"
)

// Alert listing limits.
const (
	defaultAlertLimit = 20
	maxAlertLimit     = 100
)

// AlertsHandler serves the bounded alert history.
type AlertsHandler struct {
	deps Dependencies
}

// NewAlertsHandler creates a new alerts handler.
func NewAlertsHandler(deps Dependencies) *AlertsHandler {
	return &AlertsHandler{deps: deps}
}

type alertsResponse struct {
	Alerts []model.Alert `json:"alerts"`
	Count  int           `json:"count"`
}

// HandleGetAlerts handles GET /alerts?limit=N&severity=S requests.
func (h *AlertsHandler) HandleGetAlerts(w http.ResponseWriter, r *http.Request) {
	limit := defaultAlertLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "bad_limit", "limit must be a positive integer")
			return
		}
		if n > maxAlertLimit {
			n = maxAlertLimit
		}
		limit = n
	}

	var severity model.Severity
	if raw := r.URL.Query().Get("severity"); raw != "" {
		switch s := model.Severity(strings.ToUpper(raw)); s {
		case model.SeverityInfo, model.SeverityWarning, model.SeverityCritical:
			severity = s
		default:
			writeError(w, http.StatusBadRequest, "bad_severity", "severity must be INFO, WARNING or CRITICAL")
			return
		}
	}

	alerts := h.deps.RecentAlerts(limit, severity)
	if alerts == nil {
		alerts = []model.Alert{}
	}
	writeJSON(w, http.StatusOK, alertsResponse{Alerts: alerts, Count: len(alerts)})
}
