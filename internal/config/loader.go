package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if ARBITRAGE_CONFIG is set
//  3. env (prefix ARBITRAGE_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("ARBITRAGE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: ARBITRAGE_ADDR, ARBITRAGE_MIN_MARGIN, ...
	// Map env keys like ARBITRAGE_MIN_MARGIN -> min_margin (flat keys)
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("ARBITRAGE_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "arbitrage_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the pipeline cannot run with. Invalid
// threshold configuration is fatal at startup rather than patched at runtime.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	for name, v := range map[string]float64{
		"price_sum_tolerance":  c.PriceSumTolerance,
		"relevance_floor":      c.RelevanceFloor,
		"confidence_threshold": c.ConfidenceThreshold,
		"min_margin":           c.MinMargin,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: %s must be within [0, 1], got %v", ErrInvalidConfig, name, v)
		}
	}
	for name, v := range map[string]int{
		"news_ttl_seconds":          c.NewsTTLSeconds,
		"news_capacity":             c.NewsCapacity,
		"market_limit":              c.MarketLimit,
		"market_ttl_seconds":        c.MarketTTLSeconds,
		"reasoning_timeout_seconds": c.ReasoningTimeoutSeconds,
		"reasoning_concurrency":     c.ReasoningConcurrency,
		"alert_history":             c.AlertHistory,
		"cycle_interval_seconds":    c.CycleIntervalSeconds,
		"news_interval_seconds":     c.NewsIntervalSeconds,
		"market_interval_seconds":   c.MarketIntervalSeconds,
	} {
		if v <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidConfig, name, v)
		}
	}
	if c.CooldownSeconds < 0 {
		return fmt.Errorf("%w: cooldown_seconds must not be negative, got %d", ErrInvalidConfig, c.CooldownSeconds)
	}
	switch strings.ToUpper(c.TelegramMinSeverity) {
	case "INFO", "WARNING", "CRITICAL":
	default:
		return fmt.Errorf("%w: telegram_min_severity must be INFO, WARNING or CRITICAL, got %q",
			ErrInvalidConfig, c.TelegramMinSeverity)
	}
	return nil
}
