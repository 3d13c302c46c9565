// Package detect decides whether an impact assessment and a live market
// price diverge enough to constitute an actionable opportunity.
package detect

import (
	"math"

	"github.com/nebellleben/capstone-polymarket-arbitrage-agent-sub000/internal/domain/model"
)

// Default detection thresholds.
const (
	defaultRelevanceFloor      = 0.5
	defaultConfidenceThreshold = 0.7
	defaultMinMargin           = 0.05
)

// RecommendedAction is attached to every emitted opportunity.
const RecommendedAction = "watch"

// Detector applies the relevance floor and the confidence/margin gates.
type Detector struct {
	relevanceFloor      float64
	confidenceThreshold float64
	minMargin           float64
}

// New creates a Detector with configuration options.
func New(opts ...Option) *Detector {
	d := &Detector{
		relevanceFloor:      defaultRelevanceFloor,
		confidenceThreshold: defaultConfidenceThreshold,
		minMargin:           defaultMinMargin,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Evaluate returns an Opportunity when the pair is worth acting on.
// Pairs below the relevance floor are skipped outright. Otherwise the
// discrepancy is |expected - current| and an opportunity is emitted only
// when confidence AND discrepancy both meet their thresholds. A highly
// confident but small-magnitude prediction produces nothing, and so does a
// wide but low-confidence one.
func (d *Detector) Evaluate(a model.ImpactAssessment, market model.MarketSnapshot) (model.Opportunity, bool) {
	if a.Relevance < d.relevanceFloor {
		return model.Opportunity{}, false
	}

	discrepancy := math.Abs(a.ExpectedPrice - market.YesPrice)
	meetsConfidence := a.Confidence >= d.confidenceThreshold
	meetsMargin := discrepancy >= d.minMargin

	if !meetsConfidence || !meetsMargin {
		return model.Opportunity{}, false
	}

	return model.Opportunity{
		NewsURL:         a.NewsURL,
		MarketID:        a.MarketID,
		CurrentPrice:    market.YesPrice,
		ExpectedPrice:   a.ExpectedPrice,
		Discrepancy:     discrepancy,
		Confidence:      a.Confidence,
		MeetsConfidence: meetsConfidence,
		MeetsMargin:     meetsMargin,
		Action:          RecommendedAction,
		Reasoning:       a.Reasoning,
	}, true
}
