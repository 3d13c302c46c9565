// Package llm implements the primary impact-reasoning provider on top of a
// generateContent-style text completion API. The model is asked for a JSON
// verdict; anything that cannot be parsed into one surfaces as an error so
// the reasoner can fall back to the keyword heuristic.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/nebellleben/capstone-polymarket-arbitrage-agent-sub000/internal/domain/model"
	"github.com/nebellleben/capstone-polymarket-arbitrage-agent-sub000/internal/domain/reasoning"
)

// Default client configuration constants.
const (
	defaultEndpoint       = "https://generativelanguage.googleapis.com"
	defaultModel          = "gemini-2.0-flash"
	defaultRequestTimeout = 30 * time.Second
	defaultMaxPerMinute   = 10
	defaultMaxTokens      = 512
	rateWindow            = time.Minute
)

// Client calls the completion API and parses verdicts from its replies.
type Client struct {
	apiKey       string
	endpoint     string
	model        string
	maxTokens    int
	maxPerMinute int
	httpc        *http.Client
	clock        func() time.Time

	mu    sync.Mutex
	calls []time.Time
}

// New creates a reasoning client with configuration options.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:       apiKey,
		endpoint:     defaultEndpoint,
		model:        defaultModel,
		maxTokens:    defaultMaxTokens,
		maxPerMinute: defaultMaxPerMinute,
		httpc:        &http.Client{Timeout: defaultRequestTimeout},
		clock:        time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type generateRequest struct {
	Contents []content `json:"contents"`
	Config   genConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type genConfig struct {
	MaxOutputTokens int     `json:"maxOutputTokens"`
	Temperature     float64 `json:"temperature"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// verdictPayload is the JSON shape the prompt instructs the model to emit.
type verdictPayload struct {
	Relevance         float64 `json:"relevance"`
	Direction         string  `json:"direction"`
	Confidence        float64 `json:"confidence"`
	ExpectedMagnitude float64 `json:"expected_magnitude"`
	Reasoning         string  `json:"reasoning"`
}

// Assess implements reasoning.Provider.
func (c *Client) Assess(ctx context.Context, news model.NewsItem, market model.MarketSnapshot) (reasoning.Verdict, error) {
	if c.apiKey == "" {
		return reasoning.Verdict{}, ErrNoAPIKey
	}
	if err := c.waitForSlot(ctx); err != nil {
		return reasoning.Verdict{}, err
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: buildPrompt(news, market)}}}},
		Config:   genConfig{MaxOutputTokens: c.maxTokens, Temperature: 0.2},
	})
	if err != nil {
		return reasoning.Verdict{}, fmt.Errorf("encode request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.endpoint, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return reasoning.Verdict{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return reasoning.Verdict{}, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return reasoning.Verdict{}, fmt.Errorf("%w: status %d", ErrRequestFailed, resp.StatusCode)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return reasoning.Verdict{}, fmt.Errorf("%w: decode: %v", ErrRequestFailed, err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return reasoning.Verdict{}, fmt.Errorf("%w: empty completion", ErrBadVerdict)
	}

	return parseVerdict(out.Candidates[0].Content.Parts[0].Text)
}

// waitForSlot enforces a sliding-window request budget. It blocks until a
// slot frees up or the context is cancelled.
func (c *Client) waitForSlot(ctx context.Context) error {
	for {
		c.mu.Lock()
		now := c.clock()
		kept := c.calls[:0]
		for _, t := range c.calls {
			if now.Sub(t) < rateWindow {
				kept = append(kept, t)
			}
		}
		c.calls = kept

		if len(c.calls) < c.maxPerMinute {
			c.calls = append(c.calls, now)
			c.mu.Unlock()
			return nil
		}
		wait := rateWindow - now.Sub(c.calls[0])
		c.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

func buildPrompt(news model.NewsItem, market model.MarketSnapshot) string {
	var b strings.Builder
	b.WriteString("You assess how a news item affects a binary prediction market.\n\n")
	fmt.Fprintf(&b, "News headline: %s\n", news.Headline)
	if news.Summary != "" {
		fmt.Fprintf(&b, "News summary: %s\n", news.Summary)
	}
	fmt.Fprintf(&b, "\nMarket question: %s\n", market.Question)
	fmt.Fprintf(&b, "Current YES price: %.2f\n\n", market.YesPrice)
	b.WriteString("Respond with only a JSON object containing these keys:\n")
	b.WriteString(`{"relevance": 0.0-1.0, "direction": "up"|"down"|"neutral", ` +
		`"confidence": 0.0-1.0, "expected_magnitude": 0.0-1.0, "reasoning": "one sentence"}`)
	return b.String()
}

// parseVerdict extracts the JSON object from a completion, tolerating
// markdown code fences and surrounding prose.
func parseVerdict(text string) (reasoning.Verdict, error) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start < 0 || end <= start {
		return reasoning.Verdict{}, fmt.Errorf("%w: no JSON object in completion", ErrBadVerdict)
	}

	var payload verdictPayload
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &payload); err != nil {
		return reasoning.Verdict{}, fmt.Errorf("%w: %v", ErrBadVerdict, err)
	}

	return reasoning.Verdict{
		Relevance:  payload.Relevance,
		Direction:  model.Direction(strings.ToLower(payload.Direction)),
		Confidence: payload.Confidence,
		Magnitude:  payload.ExpectedMagnitude,
		Reasoning:  payload.Reasoning,
	}, nil
}
