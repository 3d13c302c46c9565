// Package newsfeed provides the news-search collaborators consumed by the
// detection cycle. All failures are recoverable; the orchestrator proceeds
// with whatever the news cache already holds.
package newsfeed

import (
	"context"

	"github.com/nebellleben/capstone-polymarket-arbitrage-agent-sub000/internal/domain/model"
)

// Provider searches breaking news. Freshness is a provider-specific window
// hint ("pd" day, "pw" week, "pm" month).
type Provider interface {
	Search(ctx context.Context, query, freshness string) ([]model.NewsItem, error)
}
