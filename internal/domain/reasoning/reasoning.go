// Package reasoning produces directional price-impact assessments for
// news/market pairs. A primary provider (an external reasoning service) is
// always tried first; any failure degrades to the deterministic keyword
// fallback, never to an error.
package reasoning

import (
	"context"
	"time"

	"github.com/nebellleben/capstone-polymarket-arbitrage-agent-sub000/internal/domain/model"
)

// Default reasoner configuration constants.
const (
	defaultTimeout = 30 * time.Second
)

// Verdict is the raw output of a reasoning strategy, before the expected
// price is derived from the market's current price.
type Verdict struct {
	Relevance  float64
	Direction  model.Direction
	Confidence float64
	Magnitude  float64
	Reasoning  string
}

// Provider is the primary reasoning collaborator contract.
type Provider interface {
	Assess(ctx context.Context, news model.NewsItem, market model.MarketSnapshot) (Verdict, error)
}

// Reasoner composes the primary provider with the keyword fallback.
// Assess never fails; reasoning failures surface only as the fallback tag.
type Reasoner struct {
	primary  Provider
	fallback *Fallback
	timeout  time.Duration
}

// New creates a Reasoner. A nil primary provider means every assessment
// uses the fallback (unconfigured mode).
func New(primary Provider, opts ...Option) *Reasoner {
	r := &Reasoner{
		primary:  primary,
		fallback: NewFallback(),
		timeout:  defaultTimeout,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Assess evaluates one news item against one market. The result is derived
// fresh on every call since the market price moves between cycles.
func (r *Reasoner) Assess(ctx context.Context, news model.NewsItem, market model.MarketSnapshot) model.ImpactAssessment {
	if r.primary != nil {
		cctx, cancel := context.WithTimeout(ctx, r.timeout)
		v, err := r.primary.Assess(cctx, news, market)
		cancel()
		if err == nil && validVerdict(v) {
			return r.build(news, market, v, model.SourcePrimary)
		}
	}

	return r.build(news, market, r.fallback.Assess(news, market), model.SourceFallback)
}

// build derives the expected price from the market's current yes-price,
// shifted by the signed magnitude and clamped to [0,1].
func (r *Reasoner) build(news model.NewsItem, market model.MarketSnapshot, v Verdict, src model.AssessmentSource) model.ImpactAssessment {
	return model.ImpactAssessment{
		NewsURL:       news.URL,
		MarketID:      market.MarketID,
		Relevance:     clamp01(v.Relevance),
		Direction:     v.Direction,
		Confidence:    clamp01(v.Confidence),
		Magnitude:     clamp01(v.Magnitude),
		ExpectedPrice: ExpectedPrice(market.YesPrice, v.Direction, v.Magnitude),
		Reasoning:     v.Reasoning,
		Source:        src,
	}
}

// ExpectedPrice shifts the current price by magnitude in the assessed
// direction, clamped to [0,1].
func ExpectedPrice(current float64, direction model.Direction, magnitude float64) float64 {
	switch direction {
	case model.DirectionUp:
		return clamp01(current + magnitude)
	case model.DirectionDown:
		return clamp01(current - magnitude)
	default:
		return clamp01(current)
	}
}

// validVerdict rejects malformed provider output so it degrades to the
// fallback instead of polluting downstream gates.
func validVerdict(v Verdict) bool {
	if v.Relevance < 0 || v.Relevance > 1 || v.Confidence < 0 || v.Confidence > 1 ||
		v.Magnitude < 0 || v.Magnitude > 1 {
		return false
	}
	switch v.Direction {
	case model.DirectionUp, model.DirectionDown, model.DirectionNeutral:
		return true
	default:
		return false
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
