package app

import (
	"context"
	"sync"

	"github.com/nebellleben/capstone-polymarket-arbitrage-agent-sub000/internal/domain/model"
	"github.com/nebellleben/capstone-polymarket-arbitrage-agent-sub000/pkg/logger"
	"github.com/nebellleben/capstone-polymarket-arbitrage-agent-sub000/pkg/metrics"
)

// pair is one news/market combination queued for assessment.
type pair struct {
	news   model.NewsItem
	market model.MarketSnapshot
}

// candidate is an opportunity together with the inputs that produced it.
type candidate struct {
	opp    model.Opportunity
	news   model.NewsItem
	market model.MarketSnapshot
}

// RunCycle executes one full detection pass: fetch news, refresh markets,
// assess pairs, detect discrepancies, emit alerts. Shutdown is honored at
// stage boundaries; a cancelled context yields a partial summary.
func (s *Service) RunCycle(ctx context.Context) model.CycleSummary {
	started := s.clock()

	s.mu.Lock()
	s.cycleCount++
	cycle := s.cycleCount
	s.mu.Unlock()

	summary := model.CycleSummary{Cycle: cycle, StartedAt: started}
	s.log.Debug(ctx, "cycle started", logger.Int("cycle", cycle))

	s.fetchNews(ctx, &summary)

	var cands []candidate
	if ctx.Err() == nil {
		s.refreshMarkets(ctx, &summary)
	}
	if ctx.Err() == nil {
		cands = s.assess(ctx, &summary)
	}
	if ctx.Err() == nil {
		s.emitAlerts(ctx, cands, &summary)
	}

	summary.FinishedAt = s.clock()
	s.record(ctx, summary)
	return summary
}

// fetchNews evicts expired items and, when the fetch interval has elapsed,
// pulls fresh headlines into the cache. Provider failures degrade to the
// cached view.
func (s *Service) fetchNews(ctx context.Context, summary *model.CycleSummary) {
	if evicted := s.news.EvictExpired(); evicted > 0 {
		metrics.RecordNewsEvicted(evicted)
		s.log.Debug(ctx, "expired news evicted", logger.Int("count", evicted))
	}

	if s.newsProvider == nil {
		return
	}

	now := s.clock()
	s.mu.Lock()
	due := s.lastNewsFetch.IsZero() || now.Sub(s.lastNewsFetch) >= s.newsInterval
	if due {
		s.lastNewsFetch = now
	}
	s.mu.Unlock()
	if !due {
		return
	}

	items, err := s.newsProvider.Search(ctx, s.searchQuery, s.freshness)
	if err != nil {
		metrics.RecordProviderError("news")
		summary.Errors++
		s.log.Warn(ctx, "news fetch failed", logger.Error(err))
		return
	}

	for _, item := range items {
		s.news.Put(item)
	}
	metrics.RecordNewsFetched(len(items))
	metrics.UpdateNewsCacheSize(s.news.Len())
	s.log.Info(ctx, "news fetched",
		logger.Int("results", len(items)),
		logger.Int("cache_size", s.news.Len()),
	)
}

// refreshMarkets pulls current market listings when the refresh interval
// has elapsed. Invalid price data is rejected per market; the prior
// snapshot stays served as stale.
func (s *Service) refreshMarkets(ctx context.Context, summary *model.CycleSummary) {
	if s.marketProvider == nil {
		return
	}

	now := s.clock()
	s.mu.Lock()
	due := s.lastMarketFetch.IsZero() || now.Sub(s.lastMarketFetch) >= s.marketInterval
	if due {
		s.lastMarketFetch = now
	}
	s.mu.Unlock()
	if !due {
		return
	}

	snaps, err := s.marketProvider.ListMarkets(ctx, true)
	if err != nil {
		metrics.RecordProviderError("market")
		summary.Errors++
		s.log.Warn(ctx, "market refresh failed", logger.Error(err))
		return
	}

	for _, snap := range snaps {
		if err := s.markets.Upsert(snap); err != nil {
			metrics.RecordMarketValidationError()
			summary.Errors++
			s.log.Warn(ctx, "market snapshot rejected",
				logger.String("market_id", snap.MarketID),
				logger.Error(err),
			)
			continue
		}
		metrics.RecordMarketRefreshed()
	}
	metrics.UpdateMarketCacheSize(s.markets.Len())
	metrics.UpdateMarketsStale(s.markets.StaleCount())
	s.log.Info(ctx, "markets refreshed",
		logger.Int("fetched", len(snaps)),
		logger.Int("cache_size", s.markets.Len()),
	)
}

// assess pairs every unconsumed news item with every cached market and
// runs the reasoner over the pairs with bounded concurrency. Results are
// applied in pairing order so alert and cooldown sequencing stays
// deterministic regardless of goroutine scheduling.
func (s *Service) assess(ctx context.Context, summary *model.CycleSummary) []candidate {
	newsItems := s.news.Unconsumed()
	marketSnaps := s.markets.Snapshots()
	summary.NewsProcessed = len(newsItems)
	summary.MarketsEvaluated = len(marketSnaps)

	if len(newsItems) == 0 || len(marketSnaps) == 0 {
		return nil
	}

	pairs := make([]pair, 0, len(newsItems)*len(marketSnaps))
	for _, n := range newsItems {
		for _, m := range marketSnaps {
			pairs = append(pairs, pair{news: n, market: m})
		}
	}
	summary.PairsAssessed = len(pairs)

	assessments := make([]model.ImpactAssessment, len(pairs))
	sem := make(chan struct{}, s.concurrency)
	var wg sync.WaitGroup
	for i := range pairs {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			assessments[i] = s.reasoner.Assess(ctx, pairs[i].news, pairs[i].market)
		}(i)
	}
	wg.Wait()

	// A news item is consumed once assessed, even when nothing came of it.
	for _, n := range newsItems {
		s.news.MarkConsumed(n.URL)
	}

	var cands []candidate
	for i, a := range assessments {
		metrics.RecordAssessment(string(a.Source))
		if a.Source == model.SourceFallback {
			summary.FallbackUsed++
		}
		opp, ok := s.detector.Evaluate(a, pairs[i].market)
		if !ok {
			continue
		}
		metrics.RecordOpportunity()
		cands = append(cands, candidate{opp: opp, news: pairs[i].news, market: pairs[i].market})
	}
	summary.OpportunitiesFound = len(cands)
	return cands
}

// emitAlerts runs every opportunity through the alert manager and pushes
// emitted alerts to the notifier and journal. Delivery failures are
// logged and counted but never abort the cycle.
func (s *Service) emitAlerts(ctx context.Context, cands []candidate, summary *model.CycleSummary) {
	for _, c := range cands {
		alert, ok := s.alerts.Process(c.opp, c.news, c.market)
		if !ok {
			metrics.RecordAlertSuppressed()
			continue
		}
		summary.AlertsEmitted++
		metrics.RecordAlert(string(alert.Severity))
		s.log.Info(ctx, "alert emitted",
			logger.String("alert_id", alert.ID),
			logger.String("severity", string(alert.Severity)),
			logger.String("market_id", alert.MarketID),
			logger.Float64("discrepancy", alert.Discrepancy),
		)

		if err := s.notifier.Send(ctx, alert); err != nil {
			metrics.RecordProviderError("notify")
			summary.Errors++
			s.log.Warn(ctx, "alert delivery failed", logger.Error(err))
		}
		if err := s.journal.Append(ctx, alert); err != nil {
			metrics.RecordProviderError("journal")
			summary.Errors++
			s.log.Warn(ctx, "alert journaling failed", logger.Error(err))
		}
	}

	metrics.UpdateAlertHistorySize(s.alerts.HistorySize())
	metrics.UpdateCooldownsActive(s.alerts.ActiveCooldowns())
}

// record appends the summary to the bounded history and rolls the totals.
func (s *Service) record(ctx context.Context, summary model.CycleSummary) {
	s.mu.Lock()
	s.summaries = append(s.summaries, summary)
	if len(s.summaries) > s.summaryCap {
		s.summaries = s.summaries[len(s.summaries)-s.summaryCap:]
	}
	s.totals.newsProcessed += summary.NewsProcessed
	s.totals.pairsAssessed += summary.PairsAssessed
	s.totals.fallbackUsed += summary.FallbackUsed
	s.totals.opportunities += summary.OpportunitiesFound
	s.totals.alertsEmitted += summary.AlertsEmitted
	s.totals.errors += summary.Errors
	s.mu.Unlock()

	metrics.RecordCycle(summary.FinishedAt.Sub(summary.StartedAt).Seconds())
	if summary.Errors > 0 {
		metrics.RecordCycleError()
	}
	s.log.Info(ctx, "cycle finished",
		logger.Int("cycle", summary.Cycle),
		logger.Int("pairs_assessed", summary.PairsAssessed),
		logger.Int("opportunities", summary.OpportunitiesFound),
		logger.Int("alerts", summary.AlertsEmitted),
		logger.Int("errors", summary.Errors),
	)
}
