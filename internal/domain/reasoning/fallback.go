package reasoning

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/nebellleben/capstone-polymarket-arbitrage-agent-sub000/internal/domain/model"
)

// Default fallback heuristic constants.
const (
	defaultFallbackConfidence = 0.4
	defaultFallbackMagnitude  = 0.1
	defaultStrongOverlap      = 0.6
)

// Fallback is the deterministic keyword-overlap heuristic used when the
// primary reasoning call fails or is unconfigured. Given identical inputs
// and keyword tables it always returns the same verdict.
type Fallback struct {
	positive      map[string]struct{}
	negative      map[string]struct{}
	strongOverlap float64
	confidence    float64
	magnitude     float64
}

// NewFallback creates the heuristic with the default polarity tables.
func NewFallback(opts ...FallbackOption) *Fallback {
	f := &Fallback{
		positive:      wordSet("win", "gain", "success", "approve", "pass", "yes", "up", "raise", "rise"),
		negative:      wordSet("lose", "fail", "reject", "down", "no", "fall", "drop", "cut", "crash"),
		strongOverlap: defaultStrongOverlap,
		confidence:    defaultFallbackConfidence,
		magnitude:     defaultFallbackMagnitude,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Assess tokenizes headline+summary and the market question, uses the token
// overlap ratio as relevance, and only infers a direction when the overlap
// clears the strong threshold. Confidence is a fixed low constant to
// reflect reduced trust in the heuristic.
func (f *Fallback) Assess(news model.NewsItem, market model.MarketSnapshot) Verdict {
	questionTokens := tokenize(market.Question)
	newsTokens := tokenize(news.Headline + " " + news.Summary)

	overlap := 0
	for tok := range questionTokens {
		if _, ok := newsTokens[tok]; ok {
			overlap++
		}
	}

	relevance := 0.0
	if len(questionTokens) > 0 {
		relevance = float64(overlap) / float64(len(questionTokens))
	}
	if relevance > 1 {
		relevance = 1
	}

	direction := model.DirectionNeutral
	if relevance > f.strongOverlap {
		direction = f.polarity(newsTokens)
	}

	return Verdict{
		Relevance:  relevance,
		Direction:  direction,
		Confidence: f.confidence,
		Magnitude:  f.magnitude,
		Reasoning: fmt.Sprintf(
			"keyword overlap heuristic: %d/%d question tokens matched (relevance %.2f), direction %s",
			overlap, len(questionTokens), relevance, direction),
	}
}

// polarity counts positive and negative keywords in the news tokens.
// Ambiguous matches (ties, or no polarity words at all) default to up.
func (f *Fallback) polarity(newsTokens map[string]struct{}) model.Direction {
	pos, neg := 0, 0
	for tok := range newsTokens {
		if _, ok := f.positive[tok]; ok {
			pos++
		}
		if _, ok := f.negative[tok]; ok {
			neg++
		}
	}
	if neg > pos {
		return model.DirectionDown
	}
	return model.DirectionUp
}

// tokenize lowercases and splits on non-alphanumeric runes.
func tokenize(s string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, tok := range strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		out[tok] = struct{}{}
	}
	return out
}

func wordSet(words ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(words))
	for _, w := range words {
		out[w] = struct{}{}
	}
	return out
}
