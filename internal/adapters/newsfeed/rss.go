package newsfeed

import (
	"context"
	"fmt"

	"github.com/mmcdole/gofeed"

	"github.com/nebellleben/capstone-polymarket-arbitrage-agent-sub000/internal/domain/model"
)

// RSSProvider reads news from a fixed set of RSS/Atom feeds. It lets the
// detector run without a paid search API; the query and freshness hints
// are ignored since feeds are already curated.
type RSSProvider struct {
	feeds  []string
	parser *gofeed.Parser
}

// NewRSSProvider creates a provider over the given feed URLs.
func NewRSSProvider(feeds []string) *RSSProvider {
	return &RSSProvider{
		feeds:  feeds,
		parser: gofeed.NewParser(),
	}
}

// Search fetches every configured feed. Individual feed failures are
// tolerated; an error is returned only when no feed could be read.
func (p *RSSProvider) Search(ctx context.Context, _, _ string) ([]model.NewsItem, error) {
	var items []model.NewsItem
	var lastErr error
	fetched := 0

	for _, feedURL := range p.feeds {
		feed, err := p.parser.ParseURLWithContext(feedURL, ctx)
		if err != nil {
			lastErr = err
			continue
		}
		fetched++
		for _, entry := range feed.Items {
			if entry.Link == "" || entry.Title == "" {
				continue
			}
			item := model.NewsItem{
				URL:      entry.Link,
				Headline: entry.Title,
				Summary:  entry.Description,
				Source:   feed.Title,
			}
			if entry.PublishedParsed != nil {
				item.PublishedAt = *entry.PublishedParsed
			}
			items = append(items, item)
		}
	}

	if fetched == 0 && lastErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, lastErr)
	}
	return items, nil
}
