// Package marketcache provides the TTL-bounded store of market snapshots.
package marketcache

import (
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/nebellleben/capstone-polymarket-arbitrage-agent-sub000/internal/domain/model"
)

// Default cache configuration constants.
const (
	defaultTTL       = 5 * time.Minute
	defaultTolerance = 0.05
)

// Cache stores market snapshots keyed by market id. Entries are never
// explicitly deleted; staleness is reported so callers can refetch.
type Cache struct {
	mu        sync.RWMutex
	snapshots map[string]model.MarketSnapshot
	ttl       time.Duration
	tolerance float64
	clock     func() time.Time
}

// New creates a market cache with configuration options.
func New(opts ...Option) *Cache {
	c := &Cache{
		snapshots: make(map[string]model.MarketSnapshot),
		ttl:       defaultTTL,
		tolerance: defaultTolerance,
		clock:     time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Upsert validates and stores a snapshot, stamping refreshed-at. Prices
// outside [0,1], or a yes+no sum deviating from 1.0 by more than the
// tolerance, are rejected with ErrInvalidPriceData and the previous
// snapshot is retained.
func (c *Cache) Upsert(s model.MarketSnapshot) error {
	if s.YesPrice < 0 || s.YesPrice > 1 || s.NoPrice < 0 || s.NoPrice > 1 {
		return fmt.Errorf("market %s: yes=%.4f no=%.4f out of [0,1]: %w",
			s.MarketID, s.YesPrice, s.NoPrice, ErrInvalidPriceData)
	}
	if math.Abs(s.YesPrice+s.NoPrice-1.0) > c.tolerance {
		return fmt.Errorf("market %s: yes+no=%.4f deviates from 1.0 beyond tolerance %.2f: %w",
			s.MarketID, s.YesPrice+s.NoPrice, c.tolerance, ErrInvalidPriceData)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	s.RefreshedAt = c.clock()
	c.snapshots[s.MarketID] = s
	return nil
}

// GetOrStale returns the cached snapshot and whether its age exceeds the
// TTL. The caller decides whether staleness warrants a refetch.
func (c *Cache) GetOrStale(marketID string) (model.MarketSnapshot, bool, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s, ok := c.snapshots[marketID]
	if !ok {
		return model.MarketSnapshot{}, false, false
	}
	stale := c.clock().Sub(s.RefreshedAt) > c.ttl
	return s, stale, true
}

// Snapshots returns all cached markets ordered by market id.
func (c *Cache) Snapshots() []model.MarketSnapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]model.MarketSnapshot, 0, len(c.snapshots))
	for _, s := range c.snapshots {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MarketID < out[j].MarketID })
	return out
}

// StaleCount returns how many cached markets are older than the TTL.
func (c *Cache) StaleCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	cutoff := c.clock().Add(-c.ttl)
	n := 0
	for _, s := range c.snapshots {
		if s.RefreshedAt.Before(cutoff) {
			n++
		}
	}
	return n
}

// Len returns the current number of cached markets.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.snapshots)
}
