// Package marketdata provides read access to prediction-market listings
// and prices. Snapshots returned here are validated and cached by the
// market cache; this package only handles the wire format.
package marketdata

import (
	"context"

	"github.com/nebellleben/capstone-polymarket-arbitrage-agent-sub000/internal/domain/model"
)

// Provider lists tradeable markets with their current binary prices.
type Provider interface {
	ListMarkets(ctx context.Context, activeOnly bool) ([]model.MarketSnapshot, error)
}
