// Package model contains domain models passed between layers.
package model

import "time"

// Direction is the expected price movement for a market.
type Direction string

const (
	DirectionUp      Direction = "up"
	DirectionDown    Direction = "down"
	DirectionNeutral Direction = "neutral"
)

// Severity classifies emitted alerts.
type Severity string

const (
	SeverityInfo     Severity = "INFO"
	SeverityWarning  Severity = "WARNING"
	SeverityCritical Severity = "CRITICAL"
)

// AssessmentSource tags which reasoning strategy produced an assessment.
type AssessmentSource string

const (
	SourcePrimary  AssessmentSource = "primary"
	SourceFallback AssessmentSource = "fallback"
)

// NewsItem is a news record keyed by its source URL.
// Immutable after creation except the Consumed flag.
type NewsItem struct {
	URL         string    `json:"url"`
	Headline    string    `json:"headline"`
	Summary     string    `json:"summary"`
	Source      string    `json:"source,omitempty"`
	PublishedAt time.Time `json:"published_at,omitempty"`
	FetchedAt   time.Time `json:"fetched_at"`
	Consumed    bool      `json:"consumed"`
}

// MarketSnapshot is the cached view of one prediction market.
// YesPrice and NoPrice are constrained to [0,1] and should sum to ~1.0.
type MarketSnapshot struct {
	MarketID    string    `json:"market_id"`
	Question    string    `json:"question"`
	EndDate     time.Time `json:"end_date,omitempty"`
	YesPrice    float64   `json:"yes_price"`
	NoPrice     float64   `json:"no_price"`
	RefreshedAt time.Time `json:"refreshed_at"`
}

// ImpactAssessment relates one news item to one market. Created fresh each
// cycle and never cached, since the market price it derives from moves.
type ImpactAssessment struct {
	NewsURL       string           `json:"news_url"`
	MarketID      string           `json:"market_id"`
	Relevance     float64          `json:"relevance"`
	Direction     Direction        `json:"direction"`
	Confidence    float64          `json:"confidence"`
	Magnitude     float64          `json:"expected_magnitude"`
	ExpectedPrice float64          `json:"expected_price"`
	Reasoning     string           `json:"reasoning"`
	Source        AssessmentSource `json:"source"`
}

// Opportunity is an assessment whose expected price diverges from the
// market's current price enough to act on. Ephemeral within one cycle.
type Opportunity struct {
	NewsURL         string  `json:"news_url"`
	MarketID        string  `json:"market_id"`
	CurrentPrice    float64 `json:"current_price"`
	ExpectedPrice   float64 `json:"expected_price"`
	Discrepancy     float64 `json:"discrepancy"`
	Confidence      float64 `json:"confidence"`
	MeetsConfidence bool    `json:"meets_confidence"`
	MeetsMargin     bool    `json:"meets_margin"`
	Action          string  `json:"recommended_action"`
	Reasoning       string  `json:"reasoning"`
}

// Alert is an immutable record of a surfaced opportunity.
type Alert struct {
	ID             string    `json:"id"`
	Severity       Severity  `json:"severity"`
	MarketID       string    `json:"market_id"`
	MarketQuestion string    `json:"market_question"`
	NewsURL        string    `json:"news_url"`
	NewsHeadline   string    `json:"news_headline"`
	Confidence     float64   `json:"confidence"`
	Discrepancy    float64   `json:"discrepancy"`
	CurrentPrice   float64   `json:"current_price"`
	ExpectedPrice  float64   `json:"expected_price"`
	Message        string    `json:"message"`
	Reasoning      string    `json:"reasoning"`
	CreatedAt      time.Time `json:"created_at"`
}

// CycleSummary holds the counters recorded when a detection cycle finishes.
type CycleSummary struct {
	Cycle              int       `json:"cycle"`
	StartedAt          time.Time `json:"started_at"`
	FinishedAt         time.Time `json:"finished_at"`
	NewsProcessed      int       `json:"news_processed"`
	MarketsEvaluated   int       `json:"markets_evaluated"`
	PairsAssessed      int       `json:"pairs_assessed"`
	FallbackUsed       int       `json:"fallback_used"`
	OpportunitiesFound int       `json:"opportunities_found"`
	AlertsEmitted      int       `json:"alerts_emitted"`
	Errors             int       `json:"errors"`
}
