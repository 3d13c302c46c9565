package app

import (
	"time"

	"github.com/nebellleben/capstone-polymarket-arbitrage-agent-sub000/internal/adapters/alertlog"
	"github.com/nebellleben/capstone-polymarket-arbitrage-agent-sub000/internal/adapters/marketdata"
	"github.com/nebellleben/capstone-polymarket-arbitrage-agent-sub000/internal/adapters/newsfeed"
	"github.com/nebellleben/capstone-polymarket-arbitrage-agent-sub000/internal/adapters/notify"
	"github.com/nebellleben/capstone-polymarket-arbitrage-agent-sub000/internal/domain/alerting"
	"github.com/nebellleben/capstone-polymarket-arbitrage-agent-sub000/internal/domain/detect"
	"github.com/nebellleben/capstone-polymarket-arbitrage-agent-sub000/internal/domain/marketcache"
	"github.com/nebellleben/capstone-polymarket-arbitrage-agent-sub000/internal/domain/newscache"
	"github.com/nebellleben/capstone-polymarket-arbitrage-agent-sub000/internal/domain/reasoning"
	"github.com/nebellleben/capstone-polymarket-arbitrage-agent-sub000/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger replaces the service logger.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithClock injects a time source for tests.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithNewsCache supplies a pre-built news cache.
func WithNewsCache(c *newscache.Cache) Option {
	return func(s *Service) {
		if c != nil {
			s.news = c
		}
	}
}

// WithMarketCache supplies a pre-built market cache.
func WithMarketCache(c *marketcache.Cache) Option {
	return func(s *Service) {
		if c != nil {
			s.markets = c
		}
	}
}

// WithReasoner supplies a pre-built impact reasoner.
func WithReasoner(r *reasoning.Reasoner) Option {
	return func(s *Service) {
		if r != nil {
			s.reasoner = r
		}
	}
}

// WithDetector supplies a pre-built discrepancy detector.
func WithDetector(d *detect.Detector) Option {
	return func(s *Service) {
		if d != nil {
			s.detector = d
		}
	}
}

// WithAlertManager supplies a pre-built alert manager.
func WithAlertManager(m *alerting.Manager) Option {
	return func(s *Service) {
		if m != nil {
			s.alerts = m
		}
	}
}

// WithNewsProvider sets the news search provider. A nil provider leaves
// the cycle running on cached news only.
func WithNewsProvider(p newsfeed.Provider) Option {
	return func(s *Service) {
		s.newsProvider = p
	}
}

// WithMarketProvider sets the market data provider.
func WithMarketProvider(p marketdata.Provider) Option {
	return func(s *Service) {
		s.marketProvider = p
	}
}

// WithNotifier sets the outbound alert channel.
func WithNotifier(n notify.Notifier) Option {
	return func(s *Service) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithJournal sets the durable alert journal.
func WithJournal(j alertlog.Journal) Option {
	return func(s *Service) {
		if j != nil {
			s.journal = j
		}
	}
}

// WithSearchQuery sets the news search query.
func WithSearchQuery(query string) Option {
	return func(s *Service) {
		if query != "" {
			s.searchQuery = query
		}
	}
}

// WithFreshness sets the news search recency hint.
func WithFreshness(freshness string) Option {
	return func(s *Service) {
		if freshness != "" {
			s.freshness = freshness
		}
	}
}

// WithCycleInterval sets the pause between cycles.
func WithCycleInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.cycleInterval = d
		}
	}
}

// WithNewsInterval sets the minimum gap between news fetches.
func WithNewsInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.newsInterval = d
		}
	}
}

// WithMarketInterval sets the minimum gap between market refreshes.
func WithMarketInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.marketInterval = d
		}
	}
}

// WithConcurrency bounds in-flight assessments within a cycle.
func WithConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithSummaryCapacity bounds how many cycle summaries are retained.
func WithSummaryCapacity(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.summaryCap = n
		}
	}
}
