// Package newscache provides the deduplicated, TTL-bounded store of news items.
package newscache

import (
	"sort"
	"sync"
	"time"

	"github.com/nebellleben/capstone-polymarket-arbitrage-agent-sub000/internal/domain/model"
)

// Default cache configuration constants.
const (
	defaultTTL      = 24 * time.Hour
	defaultCapacity = 1000
)

// Cache stores news items keyed by URL. Items are immutable after insertion
// except the consumed flag. The zero value is not usable; construct with New.
type Cache struct {
	mu       sync.RWMutex
	items    map[string]model.NewsItem
	ttl      time.Duration
	capacity int
	clock    func() time.Time
}

// New creates a news cache with configuration options.
func New(opts ...Option) *Cache {
	c := &Cache{
		items:    make(map[string]model.NewsItem),
		ttl:      defaultTTL,
		capacity: defaultCapacity,
		clock:    time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Put inserts or updates an item by URL key, refreshing its fetched-at
// timestamp. The latest write wins. When the cache exceeds capacity the
// single oldest item (by fetched-at) is evicted.
func (c *Cache) Put(item model.NewsItem) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item.FetchedAt = c.clock()
	item.Consumed = false
	c.items[item.URL] = item

	for len(c.items) > c.capacity {
		c.evictOldestLocked()
	}
}

// evictOldestLocked removes the entry with the earliest fetched-at.
// Must be called with c.mu held.
func (c *Cache) evictOldestLocked() {
	var oldestURL string
	var oldestAt time.Time
	for url, it := range c.items {
		if oldestURL == "" || it.FetchedAt.Before(oldestAt) ||
			(it.FetchedAt.Equal(oldestAt) && url < oldestURL) {
			oldestURL = url
			oldestAt = it.FetchedAt
		}
	}
	if oldestURL != "" {
		delete(c.items, oldestURL)
	}
}

// EvictExpired removes entries whose fetched-at is older than the TTL.
// Returns the number of evicted items.
func (c *Cache) EvictExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	cutoff := c.clock().Add(-c.ttl)
	evicted := 0
	for url, it := range c.items {
		if it.FetchedAt.Before(cutoff) {
			delete(c.items, url)
			evicted++
		}
	}
	return evicted
}

// Unconsumed returns items not yet paired with every active market, ordered
// oldest-fetched-first with URL as tiebreaker so pairing order is stable.
func (c *Cache) Unconsumed() []model.NewsItem {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]model.NewsItem, 0, len(c.items))
	for _, it := range c.items {
		if !it.Consumed {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].FetchedAt.Equal(out[j].FetchedAt) {
			return out[i].FetchedAt.Before(out[j].FetchedAt)
		}
		return out[i].URL < out[j].URL
	})
	return out
}

// MarkConsumed flags the item so later cycles skip it.
func (c *Cache) MarkConsumed(url string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if it, ok := c.items[url]; ok {
		it.Consumed = true
		c.items[url] = it
	}
}

// Get returns the item for url if present.
func (c *Cache) Get(url string) (model.NewsItem, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	it, ok := c.items[url]
	return it, ok
}

// Len returns the current number of cached items.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
