package newsfeed

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

// Default Brave client configuration constants.
const (
	defaultBraveEndpoint = "https://api.search.brave.com/res/v1/web/search"
	defaultMaxResults    = 10
	defaultSearchTimeout = 30 * time.Second
	maxBraveResults      = 50
)

// BraveClient is a thin wrapper over the Brave web-search API.
type BraveClient struct {
	apiKey     string
	endpoint   string
	maxResults int
	httpc      *http.Client
}

// NewBraveClient creates a Brave search client with configuration options.
func NewBraveClient(apiKey string, opts ...BraveOption) *BraveClient {
	c := &BraveClient{
		apiKey:     apiKey,
		endpoint:   defaultBraveEndpoint,
		maxResults: defaultMaxResults,
		httpc:      &http.Client{Timeout: defaultSearchTimeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// braveResponse mirrors the subset of the search payload we consume.
type braveResponse struct {
	Web struct {
		Results []braveResult `json:"results"`
	} `json:"web"`
	News struct {
		Results []braveResult `json:"results"`
	} `json:"news"`
}

type braveResult struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	PageAge     string `json:"page_age"`
}

// Search queries the API and maps results onto news items.
func (c *BraveClient) Search(ctx context.Context, query, freshness string) ([]model.NewsItem, error) {
	if c.apiKey == "" {
		return nil, ErrNoAPIKey
	}

	count := c.maxResults
	if count > maxBraveResults {
		count = maxBraveResults
	}

	q := url.Values{}
	q.Set("q", query)
	q.Set("count", strconv.Itoa(count))
	q.Set("search_lang", "en")
	q.Set("result_filter", "news")
	q.Set("freshness", freshness)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", c.apiKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrSearchFailed, resp.StatusCode)
	}

	var body braveResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrSearchFailed, err)
	}

	results := body.News.Results
	if len(results) == 0 {
		results = body.Web.Results
	}

	items := make([]model.NewsItem, 0, len(results))
	for _, r := range results {
		if r.URL == "" || r.Title == "" {
			continue
		}
		item := model.NewsItem{
			URL:      r.URL,
			Headline: r.Title,
			Summary:  r.Description,
			Source:   hostOf(r.URL),
		}
		if ts, err := time.Parse(time.RFC3339, r.PageAge); err == nil {
			item.PublishedAt = ts
		}
		items = append(items, item)
	}
	return items, nil
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// BraveOption applies a configuration option to the BraveClient.
type BraveOption func(*BraveClient)

// WithBraveEndpoint overrides the API endpoint (used by tests).
func WithBraveEndpoint(endpoint string) BraveOption {
	return func(c *BraveClient) {
		if endpoint != "" {
			c.endpoint = endpoint
		}
	}
}

// WithBraveMaxResults sets how many results to request per search.
func WithBraveMaxResults(n int) BraveOption {
	return func(c *BraveClient) {
		if n > 0 {
			c.maxResults = n
		}
	}
}

// WithBraveHTTPClient replaces the underlying HTTP client.
func WithBraveHTTPClient(httpc *http.Client) BraveOption {
	return func(c *BraveClient) {
		if httpc != nil {
			c.httpc = httpc
		}
	}
}
