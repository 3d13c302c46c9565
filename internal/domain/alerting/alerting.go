// Package alerting turns opportunities into deduplicated, severity-classified,
// cooldown-gated alerts with a bounded in-memory history.
package alerting

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nebellleben/capstone-polymarket-arbitrage-agent-sub000/internal/domain/model"
)

// Default alert manager configuration constants.
const (
	defaultHistoryCapacity = 100
	defaultCooldown        = 5 * time.Minute
)

// Severity table thresholds, evaluated in order with first match winning.
const (
	criticalConfidence  = 0.8
	criticalDiscrepancy = 0.10
	warningConfidence   = 0.7
	warningDiscrepancy  = 0.05
)

// Manager owns the alert history and per-market cooldown table. Both are
// mutated only here, by the single active cycle.
type Manager struct {
	mu       sync.RWMutex
	history  []model.Alert
	lastSent map[string]time.Time
	capacity int
	cooldown time.Duration
	clock    func() time.Time
}

// New creates an alert manager with configuration options.
func New(opts ...Option) *Manager {
	m := &Manager{
		lastSent: make(map[string]time.Time),
		capacity: defaultHistoryCapacity,
		cooldown: defaultCooldown,
		clock:    time.Now,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Process gates the opportunity through the per-market cooldown, classifies
// severity, appends the alert to history and stamps the cooldown entry.
// Returns false when the cooldown suppresses the alert.
func (m *Manager) Process(opp model.Opportunity, news model.NewsItem, market model.MarketSnapshot) (model.Alert, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock()
	if last, ok := m.lastSent[opp.MarketID]; ok && now.Sub(last) < m.cooldown {
		return model.Alert{}, false
	}

	alert := model.Alert{
		ID:             uuid.NewString(),
		Severity:       Classify(opp.Confidence, opp.Discrepancy),
		MarketID:       opp.MarketID,
		MarketQuestion: market.Question,
		NewsURL:        news.URL,
		NewsHeadline:   news.Headline,
		Confidence:     opp.Confidence,
		Discrepancy:    opp.Discrepancy,
		CurrentPrice:   opp.CurrentPrice,
		ExpectedPrice:  opp.ExpectedPrice,
		Message:        message(opp, news),
		Reasoning:      opp.Reasoning,
		CreatedAt:      now,
	}

	m.history = append(m.history, alert)
	if len(m.history) > m.capacity {
		m.history = m.history[len(m.history)-m.capacity:]
	}
	m.lastSent[opp.MarketID] = now

	return alert, true
}

// Classify maps confidence and discrepancy onto the severity table.
// INFO is unreachable with the detector's default gates (they match the
// WARNING bar); it becomes reachable when a deployment relaxes the
// detector's thresholds, which is a supported configuration.
func Classify(confidence, discrepancy float64) model.Severity {
	switch {
	case confidence >= criticalConfidence && discrepancy >= criticalDiscrepancy:
		return model.SeverityCritical
	case confidence >= warningConfidence && discrepancy >= warningDiscrepancy:
		return model.SeverityWarning
	default:
		return model.SeverityInfo
	}
}

func message(opp model.Opportunity, news model.NewsItem) string {
	direction := "up"
	if opp.ExpectedPrice < opp.CurrentPrice {
		direction = "down"
	}
	return fmt.Sprintf("News %q suggests price should move %s from %.2f to %.2f (discrepancy %.1f%%)",
		news.Headline, direction, opp.CurrentPrice, opp.ExpectedPrice, opp.Discrepancy*100)
}

// Recent returns up to limit alerts, most recent first, optionally filtered
// by severity (empty severity means no filter).
func (m *Manager) Recent(limit int, severity model.Severity) []model.Alert {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]model.Alert, 0, limit)
	for i := len(m.history) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		if severity != "" && m.history[i].Severity != severity {
			continue
		}
		out = append(out, m.history[i])
	}
	return out
}

// HistorySize returns the current number of retained alerts.
func (m *Manager) HistorySize() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.history)
}

// ActiveCooldowns returns how many markets are still inside their window.
func (m *Manager) ActiveCooldowns() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	now := m.clock()
	n := 0
	for _, last := range m.lastSent {
		if now.Sub(last) < m.cooldown {
			n++
		}
	}
	return n
}

// Counts returns alert totals by severity for the retained history.
func (m *Manager) Counts() map[model.Severity]int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[model.Severity]int, 3)
	for _, a := range m.history {
		out[a.Severity]++
	}
	return out
}
