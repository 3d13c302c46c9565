package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/nebellleben/capstone-polymarket-arbitrage-agent-sub000/internal/adapters/alertlog"
	"github.com/nebellleben/capstone-polymarket-arbitrage-agent-sub000/internal/adapters/http/api"
	"github.com/nebellleben/capstone-polymarket-arbitrage-agent-sub000/internal/adapters/llm"
	"github.com/nebellleben/capstone-polymarket-arbitrage-agent-sub000/internal/adapters/marketdata"
	"github.com/nebellleben/capstone-polymarket-arbitrage-agent-sub000/internal/adapters/newsfeed"
	"github.com/nebellleben/capstone-polymarket-arbitrage-agent-sub000/internal/adapters/notify"
	"github.com/nebellleben/capstone-polymarket-arbitrage-agent-sub000/internal/app"
	"github.com/nebellleben/capstone-polymarket-arbitrage-agent-sub000/internal/config"
	"github.com/nebellleben/capstone-polymarket-arbitrage-agent-sub000/internal/domain/alerting"
	"github.com/nebellleben/capstone-polymarket-arbitrage-agent-sub000/internal/domain/detect"
	"github.com/nebellleben/capstone-polymarket-arbitrage-agent-sub000/internal/domain/marketcache"
	"github.com/nebellleben/capstone-polymarket-arbitrage-agent-sub000/internal/domain/model"
	"github.com/nebellleben/capstone-polymarket-arbitrage-agent-sub000/internal/domain/newscache"
	"github.com/nebellleben/capstone-polymarket-arbitrage-agent-sub000/internal/domain/reasoning"
	"github.com/nebellleben/capstone-polymarket-arbitrage-agent-sub000/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	// Local development convenience; missing .env is not an error.
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	svc := app.New(buildOptions(ctx, cfg, log)...)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		return
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := svc.Stop(stopCtx); err != nil {
			log.Error(ctx, "service stop failed", logger.Error(err))
		}
	}()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.NewServer(svc).Router(),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			return
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
}

// buildOptions assembles the service from configuration. Providers that
// are not configured are simply left out; the cycle degrades gracefully
// around the gaps.
func buildOptions(ctx context.Context, cfg *config.Config, log logger.Logger) []app.Option {
	opts := []app.Option{
		app.WithLogger(log.Named("app")),
		app.WithSearchQuery(cfg.SearchQuery),
		app.WithFreshness(cfg.NewsFreshness),
		app.WithCycleInterval(time.Duration(cfg.CycleIntervalSeconds) * time.Second),
		app.WithNewsInterval(time.Duration(cfg.NewsIntervalSeconds) * time.Second),
		app.WithMarketInterval(time.Duration(cfg.MarketIntervalSeconds) * time.Second),
		app.WithConcurrency(cfg.ReasoningConcurrency),
		app.WithNewsCache(newscache.New(
			newscache.WithTTL(time.Duration(cfg.NewsTTLSeconds)*time.Second),
			newscache.WithCapacity(cfg.NewsCapacity),
		)),
		app.WithMarketCache(marketcache.New(
			marketcache.WithTTL(time.Duration(cfg.MarketTTLSeconds)*time.Second),
			marketcache.WithTolerance(cfg.PriceSumTolerance),
		)),
		app.WithDetector(detect.New(
			detect.WithRelevanceFloor(cfg.RelevanceFloor),
			detect.WithConfidenceThreshold(cfg.ConfidenceThreshold),
			detect.WithMinMargin(cfg.MinMargin),
		)),
		app.WithAlertManager(alerting.New(
			alerting.WithHistoryCapacity(cfg.AlertHistory),
			alerting.WithCooldown(time.Duration(cfg.CooldownSeconds)*time.Second),
		)),
	}

	switch {
	case cfg.BraveAPIKey != "":
		opts = append(opts, app.WithNewsProvider(newsfeed.NewBraveClient(
			cfg.BraveAPIKey,
			newsfeed.WithBraveMaxResults(cfg.NewsMaxResults),
		)))
	case len(cfg.RSSFeeds) > 0:
		opts = append(opts, app.WithNewsProvider(newsfeed.NewRSSProvider(cfg.RSSFeeds)))
	default:
		log.Warn(ctx, "no news provider configured; running on cached news only")
	}

	marketOpts := []marketdata.GammaOption{marketdata.WithGammaLimit(cfg.MarketLimit)}
	if cfg.GammaEndpoint != "" {
		marketOpts = append(marketOpts, marketdata.WithGammaEndpoint(cfg.GammaEndpoint))
	}
	opts = append(opts, app.WithMarketProvider(marketdata.NewGammaClient(marketOpts...)))

	var primary reasoning.Provider
	if cfg.LLMAPIKey != "" {
		primary = llm.New(cfg.LLMAPIKey,
			llm.WithModel(cfg.LLMModel),
			llm.WithRateLimit(cfg.LLMRateLimit),
		)
	} else {
		log.Warn(ctx, "no reasoning api key configured; using keyword fallback only")
	}
	opts = append(opts, app.WithReasoner(reasoning.New(primary,
		reasoning.WithTimeout(time.Duration(cfg.ReasoningTimeoutSeconds)*time.Second),
	)))

	if cfg.TelegramBotToken != "" && cfg.TelegramChatID != "" {
		opts = append(opts, app.WithNotifier(notify.NewTelegram(
			cfg.TelegramBotToken,
			cfg.TelegramChatID,
			notify.WithMinSeverity(model.Severity(strings.ToUpper(cfg.TelegramMinSeverity))),
		)))
	}

	if cfg.RedisURL != "" {
		journal, err := alertlog.NewRedis(ctx, cfg.RedisURL,
			alertlog.WithJournalKey(cfg.RedisAlertKey),
			alertlog.WithJournalCap(int64(cfg.RedisAlertCap)),
		)
		if err != nil {
			log.Warn(ctx, "alert journal disabled", logger.Error(err))
		} else {
			opts = append(opts, app.WithJournal(journal))
		}
	}

	return opts
}
