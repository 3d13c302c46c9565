// Package config defines service configuration structures and loading hooks.
//
// Conventions:
//   - Provide New() to build a Config with defaults, Load(ctx) to layer
//     file and environment overrides on top.
//   - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Durations are expressed in the
// unit named by the field to keep file and env overrides plain integers.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// SearchQuery is the news search issued every news-fetch interval.
	SearchQuery string `koanf:"search_query"`

	// NewsFreshness is the search recency window hint (pd, pw, pm).
	NewsFreshness string `koanf:"news_freshness"`

	// BraveAPIKey enables the Brave search provider when set.
	BraveAPIKey string `koanf:"brave_api_key"`

	// RSSFeeds lists feed URLs used when no search API key is configured.
	RSSFeeds []string `koanf:"rss_feeds"`

	// NewsMaxResults caps results requested per search.
	NewsMaxResults int `koanf:"news_max_results"`

	// NewsTTLSeconds bounds how long a news item stays actionable.
	NewsTTLSeconds int `koanf:"news_ttl_seconds"`

	// NewsCapacity bounds the news cache size.
	NewsCapacity int `koanf:"news_capacity"`

	// GammaEndpoint overrides the market data API host.
	GammaEndpoint string `koanf:"gamma_endpoint"`

	// MarketLimit caps markets fetched per refresh.
	MarketLimit int `koanf:"market_limit"`

	// MarketTTLSeconds is the staleness horizon for cached prices.
	MarketTTLSeconds int `koanf:"market_ttl_seconds"`

	// PriceSumTolerance allows |yes+no-1| up to this much before rejecting.
	PriceSumTolerance float64 `koanf:"price_sum_tolerance"`

	// LLMAPIKey enables the primary reasoning provider when set.
	LLMAPIKey string `koanf:"llm_api_key"`

	// LLMModel selects the completion model.
	LLMModel string `koanf:"llm_model"`

	// LLMRateLimit caps reasoning requests per minute.
	LLMRateLimit int `koanf:"llm_rate_limit"`

	// ReasoningTimeoutSeconds bounds a single primary reasoning call.
	ReasoningTimeoutSeconds int `koanf:"reasoning_timeout_seconds"`

	// ReasoningConcurrency bounds in-flight assessments within a cycle.
	ReasoningConcurrency int `koanf:"reasoning_concurrency"`

	// RelevanceFloor skips assessments below this relevance.
	RelevanceFloor float64 `koanf:"relevance_floor"`

	// ConfidenceThreshold gates opportunity emission.
	ConfidenceThreshold float64 `koanf:"confidence_threshold"`

	// MinMargin is the smallest discrepancy worth acting on.
	MinMargin float64 `koanf:"min_margin"`

	// CooldownSeconds suppresses repeat alerts per market.
	CooldownSeconds int `koanf:"cooldown_seconds"`

	// AlertHistory bounds the in-memory alert history.
	AlertHistory int `koanf:"alert_history"`

	// CycleIntervalSeconds is the pause between detection cycles.
	CycleIntervalSeconds int `koanf:"cycle_interval_seconds"`

	// NewsIntervalSeconds is the minimum gap between news fetches.
	NewsIntervalSeconds int `koanf:"news_interval_seconds"`

	// MarketIntervalSeconds is the minimum gap between market refreshes.
	MarketIntervalSeconds int `koanf:"market_interval_seconds"`

	// TelegramBotToken and TelegramChatID enable the Telegram notifier.
	TelegramBotToken string `koanf:"telegram_bot_token"`
	TelegramChatID   string `koanf:"telegram_chat_id"`

	// TelegramMinSeverity drops alerts below this severity: INFO, WARNING, CRITICAL.
	TelegramMinSeverity string `koanf:"telegram_min_severity"`

	// RedisURL enables the durable alert journal when set.
	RedisURL string `koanf:"redis_url"`

	// RedisAlertKey and RedisAlertCap shape the journal list.
	RedisAlertKey string `koanf:"redis_alert_key"`
	RedisAlertCap int    `koanf:"redis_alert_cap"`
}

// New creates a Config populated with production defaults.
func New() *Config {
	return &Config{
		LogLevel:                "info",
		Addr:                    ":8080",
		SearchQuery:             "breaking news affecting prediction markets",
		NewsFreshness:           "pd",
		NewsMaxResults:          10,
		NewsTTLSeconds:          86_400,
		NewsCapacity:            1_000,
		MarketLimit:             20,
		MarketTTLSeconds:        300,
		PriceSumTolerance:       0.05,
		LLMModel:                "gemini-2.0-flash",
		LLMRateLimit:            10,
		ReasoningTimeoutSeconds: 30,
		ReasoningConcurrency:    4,
		RelevanceFloor:          0.5,
		ConfidenceThreshold:     0.7,
		MinMargin:               0.05,
		CooldownSeconds:         300,
		AlertHistory:            100,
		CycleIntervalSeconds:    60,
		NewsIntervalSeconds:     60,
		MarketIntervalSeconds:   300,
		TelegramMinSeverity:     "WARNING",
		RedisAlertKey:           "arbitrage:alerts",
		RedisAlertCap:           1_000,
	}
}
