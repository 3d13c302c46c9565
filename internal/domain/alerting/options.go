package alerting

import "time"

// Option applies a configuration option to the Manager.
type Option func(*Manager)

// WithHistoryCapacity bounds the in-memory alert history.
func WithHistoryCapacity(capacity int) Option {
	return func(m *Manager) {
		if capacity > 0 {
			m.capacity = capacity
		}
	}
}

// WithCooldown sets the per-market suppression window.
func WithCooldown(cooldown time.Duration) Option {
	return func(m *Manager) {
		if cooldown >= 0 {
			m.cooldown = cooldown
		}
	}
}

// WithClock injects the time source, letting tests control the cooldown.
func WithClock(clock func() time.Time) Option {
	return func(m *Manager) {
		if clock != nil {
			m.clock = clock
		}
	}
}
