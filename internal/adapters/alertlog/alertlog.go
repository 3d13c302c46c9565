// Package alertlog journals emitted alerts to external storage so they
// survive process restarts. The journal is append-only and bounded; the
// in-process alert history remains the source of truth for the API.
package alertlog

import (
	"context"

	"github.com/nebellleben/capstone-polymarket-arbitrage-agent-sub000/internal/domain/model"
)

// Journal records alerts durably.
type Journal interface {
	Append(ctx context.Context, alert model.Alert) error
}

// Nop is a Journal that discards every alert. Used when no store is configured.
type Nop struct{}

// Append implements Journal.
func (Nop) Append(context.Context, model.Alert) error { return nil }
