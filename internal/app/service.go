// Package app wires the domain components into the running detection
// service. The service owns both caches, the reasoner, the detector and
// the alert manager, and drives them from a single cycle loop.
package app

import (
	"context"
	"sync"
	"time"

	"github.com/nebellleben/capstone-polymarket-arbitrage-agent-sub000/internal/adapters/alertlog"
	"github.com/nebellleben/capstone-polymarket-arbitrage-agent-sub000/internal/adapters/marketdata"
	"github.com/nebellleben/capstone-polymarket-arbitrage-agent-sub000/internal/adapters/newsfeed"
	"github.com/nebellleben/capstone-polymarket-arbitrage-agent-sub000/internal/adapters/notify"
	"github.com/nebellleben/capstone-polymarket-arbitrage-agent-sub000/internal/domain/alerting"
	"github.com/nebellleben/capstone-polymarket-arbitrage-agent-sub000/internal/domain/detect"
	"github.com/nebellleben/capstone-polymarket-arbitrage-agent-sub000/internal/domain/marketcache"
	"github.com/nebellleben/capstone-polymarket-arbitrage-agent-sub000/internal/domain/model"
	"github.com/nebellleben/capstone-polymarket-arbitrage-agent-sub000/internal/domain/newscache"
	"github.com/nebellleben/capstone-polymarket-arbitrage-agent-sub000/internal/domain/reasoning"
	"github.com/nebellleben/capstone-polymarket-arbitrage-agent-sub000/pkg/logger"
)

// Default service configuration constants.
const (
	defaultSearchQuery     = "breaking news affecting prediction markets"
	defaultFreshness       = "pd"
	defaultCycleInterval   = 60 * time.Second
	defaultNewsInterval    = 60 * time.Second
	defaultMarketInterval  = 5 * time.Minute
	defaultConcurrency     = 4
	defaultSummaryCapacity = 100
)

// Service runs the detection pipeline and exposes read access for the API.
type Service struct {
	log   logger.Logger
	clock func() time.Time

	news     *newscache.Cache
	markets  *marketcache.Cache
	reasoner *reasoning.Reasoner
	detector *detect.Detector
	alerts   *alerting.Manager

	newsProvider   newsfeed.Provider
	marketProvider marketdata.Provider
	notifier       notify.Notifier
	journal        alertlog.Journal

	searchQuery string
	freshness   string

	cycleInterval  time.Duration
	newsInterval   time.Duration
	marketInterval time.Duration
	concurrency    int
	summaryCap     int

	mu              sync.RWMutex
	started         bool
	cancel          context.CancelFunc
	done            chan struct{}
	cycleCount      int
	lastNewsFetch   time.Time
	lastMarketFetch time.Time
	summaries       []model.CycleSummary
	totals          totals
}

// totals accumulates counters across all completed cycles.
type totals struct {
	newsProcessed int
	pairsAssessed int
	fallbackUsed  int
	opportunities int
	alertsEmitted int
	errors        int
}

// New creates a Service using provided options. Components not supplied
// are built with their package defaults.
func New(opts ...Option) *Service {
	s := &Service{
		log:            logger.Named("app"),
		clock:          time.Now,
		news:           newscache.New(),
		markets:        marketcache.New(),
		reasoner:       reasoning.New(nil),
		detector:       detect.New(),
		alerts:         alerting.New(),
		notifier:       notify.Nop{},
		journal:        alertlog.Nop{},
		searchQuery:    defaultSearchQuery,
		freshness:      defaultFreshness,
		cycleInterval:  defaultCycleInterval,
		newsInterval:   defaultNewsInterval,
		marketInterval: defaultMarketInterval,
		concurrency:    defaultConcurrency,
		summaryCap:     defaultSummaryCapacity,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start launches the cycle loop. It returns immediately; the loop runs
// until Stop is called or the parent context is cancelled.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return ErrAlreadyStarted
	}
	runCtx, cancel := context.WithCancel(ctx)
	s.started = true
	s.cancel = cancel
	s.done = make(chan struct{})
	done := s.done
	s.mu.Unlock()

	go s.run(runCtx, done)
	s.log.Info(ctx, "service started",
		logger.Duration("cycle_interval", s.cycleInterval),
		logger.Int("concurrency", s.concurrency),
	)
	return nil
}

// Stop cancels the loop and waits for the in-flight cycle to finish or
// the given context to expire.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return ErrNotStarted
	}
	cancel := s.cancel
	done := s.done
	s.started = false
	s.mu.Unlock()

	cancel()
	select {
	case <-done:
		s.log.Info(ctx, "service stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Service) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	for {
		s.RunCycle(ctx)

		select {
		case <-ctx.Done():
			return
		case <-time.After(s.cycleInterval):
		}
	}
}

// RecentAlerts returns up to limit alerts, newest first.
func (s *Service) RecentAlerts(limit int, severity model.Severity) []model.Alert {
	return s.alerts.Recent(limit, severity)
}

// CycleSummaries returns up to limit completed cycle summaries, newest first.
func (s *Service) CycleSummaries(limit int) []model.CycleSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || limit > len(s.summaries) {
		limit = len(s.summaries)
	}
	out := make([]model.CycleSummary, 0, limit)
	for i := len(s.summaries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.summaries[i])
	}
	return out
}

// Stats reports operational counters for the status endpoint.
func (s *Service) Stats() map[string]any {
	s.mu.RLock()
	started := s.started
	cycles := s.cycleCount
	t := s.totals
	var last *model.CycleSummary
	if len(s.summaries) > 0 {
		cp := s.summaries[len(s.summaries)-1]
		last = &cp
	}
	s.mu.RUnlock()

	counts := map[string]int{}
	for sev, n := range s.alerts.Counts() {
		counts[string(sev)] = n
	}

	return map[string]any{
		"started":             started,
		"cycles":              cycles,
		"news_cache_size":     s.news.Len(),
		"market_cache_size":   s.markets.Len(),
		"markets_stale":       s.markets.StaleCount(),
		"alert_history_size":  s.alerts.HistorySize(),
		"active_cooldowns":    s.alerts.ActiveCooldowns(),
		"alert_counts":        counts,
		"news_processed":      t.newsProcessed,
		"pairs_assessed":      t.pairsAssessed,
		"fallback_used":       t.fallbackUsed,
		"opportunities_found": t.opportunities,
		"alerts_emitted":      t.alertsEmitted,
		"errors":              t.errors,
		"last_cycle":          last,
	}
}
