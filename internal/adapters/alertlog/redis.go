package alertlog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nebellleben/capstone-polymarket-arbitrage-agent-sub000/internal/domain/model"
)

// Default Redis journal configuration constants.
const (
	defaultJournalKey = "arbitrage:alerts"
	defaultJournalCap = 1000
	pingTimeout       = 5 * time.Second
)

// ErrAppendFailed indicates the journal write did not complete.
var ErrAppendFailed = errors.New("alert journal append failed")

// RedisJournal keeps the most recent alerts in a capped Redis list.
type RedisJournal struct {
	client *redis.Client
	key    string
	cap    int64
}

// NewRedis connects to the Redis instance described by a redis:// URL and
// verifies the connection before returning.
func NewRedis(ctx context.Context, redisURL string, opts ...RedisOption) (*RedisJournal, error) {
	parsed, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	j := &RedisJournal{
		client: redis.NewClient(parsed),
		key:    defaultJournalKey,
		cap:    defaultJournalCap,
	}
	for _, opt := range opts {
		opt(j)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := j.client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return j, nil
}

// Append implements Journal. The newest alert sits at the head of the list
// and the tail is trimmed to the configured capacity.
func (j *RedisJournal) Append(ctx context.Context, alert model.Alert) error {
	payload, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrAppendFailed, err)
	}

	pipe := j.client.TxPipeline()
	pipe.LPush(ctx, j.key, payload)
	pipe.LTrim(ctx, j.key, 0, j.cap-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrAppendFailed, err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (j *RedisJournal) Close() error {
	return j.client.Close()
}

// RedisOption applies a configuration option to the RedisJournal.
type RedisOption func(*RedisJournal)

// WithJournalKey overrides the list key.
func WithJournalKey(key string) RedisOption {
	return func(j *RedisJournal) {
		if key != "" {
			j.key = key
		}
	}
}

// WithJournalCap bounds how many alerts the list retains.
func WithJournalCap(n int64) RedisOption {
	return func(j *RedisJournal) {
		if n > 0 {
			j.cap = n
		}
	}
}
