package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/nebellleben/capstone-polymarket-arbitrage-agent-sub000/internal/domain/model"
)

// Default Gamma client configuration constants.
const (
	defaultGammaEndpoint = "https://gamma-api.polymarket.com"
	defaultMarketLimit   = 20
	defaultClientTimeout = 30 * time.Second
)

// GammaClient reads market listings from the Polymarket Gamma API.
type GammaClient struct {
	endpoint string
	limit    int
	httpc    *http.Client
}

// NewGammaClient creates a Gamma API client with configuration options.
func NewGammaClient(opts ...GammaOption) *GammaClient {
	c := &GammaClient{
		endpoint: defaultGammaEndpoint,
		limit:    defaultMarketLimit,
		httpc:    &http.Client{Timeout: defaultClientTimeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type gammaMarket struct {
	MarketID string `json:"market_id"`
	ID       string `json:"id"`
	Question string `json:"question"`
	EndDate  string `json:"end_date"`
	Active   bool   `json:"active"`
	// Gamma reports the two outcome prices as a JSON-encoded string array,
	// e.g. "[\"0.62\", \"0.38\"]".
	OutcomePrices string `json:"outcomePrices"`
}

// ListMarkets fetches up to the configured limit of markets. Entries whose
// prices cannot be parsed are skipped; downstream validation handles the
// price-sum invariant.
func (c *GammaClient) ListMarkets(ctx context.Context, activeOnly bool) ([]model.MarketSnapshot, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(c.limit))
	if activeOnly {
		q.Set("active", "true")
		q.Set("closed", "false")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/markets?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrListFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrListFailed, resp.StatusCode)
	}

	var markets []gammaMarket
	if err := json.NewDecoder(resp.Body).Decode(&markets); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrListFailed, err)
	}

	snapshots := make([]model.MarketSnapshot, 0, len(markets))
	for _, m := range markets {
		id := m.MarketID
		if id == "" {
			id = m.ID
		}
		if id == "" || m.Question == "" {
			continue
		}

		yes, no, err := parseOutcomePrices(m.OutcomePrices)
		if err != nil {
			continue
		}

		snap := model.MarketSnapshot{
			MarketID: id,
			Question: m.Question,
			YesPrice: yes,
			NoPrice:  no,
		}
		if ts, err := time.Parse(time.RFC3339, m.EndDate); err == nil {
			snap.EndDate = ts
		}
		snapshots = append(snapshots, snap)
	}
	return snapshots, nil
}

// parseOutcomePrices decodes the nested string-array price encoding.
func parseOutcomePrices(raw string) (yes, no float64, err error) {
	var prices []string
	if err := json.Unmarshal([]byte(raw), &prices); err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrPriceFailed, err)
	}
	if len(prices) < 2 {
		return 0, 0, fmt.Errorf("%w: expected two outcomes, got %d", ErrPriceFailed, len(prices))
	}
	yes, err = strconv.ParseFloat(prices[0], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: yes price: %v", ErrPriceFailed, err)
	}
	no, err = strconv.ParseFloat(prices[1], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: no price: %v", ErrPriceFailed, err)
	}
	return yes, no, nil
}

// GammaOption applies a configuration option to the GammaClient.
type GammaOption func(*GammaClient)

// WithGammaEndpoint overrides the API endpoint (used by tests).
func WithGammaEndpoint(endpoint string) GammaOption {
	return func(c *GammaClient) {
		if endpoint != "" {
			c.endpoint = endpoint
		}
	}
}

// WithGammaLimit sets how many markets to request per listing.
func WithGammaLimit(n int) GammaOption {
	return func(c *GammaClient) {
		if n > 0 {
			c.limit = n
		}
	}
}

// WithGammaHTTPClient replaces the underlying HTTP client.
func WithGammaHTTPClient(httpc *http.Client) GammaOption {
	return func(c *GammaClient) {
		if httpc != nil {
			c.httpc = httpc
		}
	}
}
