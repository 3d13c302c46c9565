// Package notify delivers emitted alerts to external channels. Delivery is
// best effort; a failed send never blocks or fails the detection cycle.
package notify

import (
	"context"

	"github.com/nebellleben/capstone-polymarket-arbitrage-agent-sub000/internal/domain/model"
)

// Notifier pushes an alert to an outbound channel.
type Notifier interface {
	Send(ctx context.Context, alert model.Alert) error
}

// Nop is a Notifier that silently drops every alert.
type Nop struct{}

// Send implements Notifier.
func (Nop) Send(context.Context, model.Alert) error { return nil }
