package notify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nebellleben/capstone-polymarket-arbitrage-agent-sub000/internal/domain/model"
)

// Default Telegram notifier configuration constants.
const (
	defaultTelegramBaseURL = "https://api.telegram.org"
	defaultSendTimeout     = 10 * time.Second
)

// ErrSendFailed indicates the Telegram API rejected or never received the message.
var ErrSendFailed = errors.New("telegram send failed")

// Telegram posts alerts to a chat via the bot API. Alerts below the
// configured minimum severity are dropped without a network call.
type Telegram struct {
	botToken    string
	chatID      string
	minSeverity model.Severity
	baseURL     string
	httpc       *http.Client
}

// NewTelegram creates a Telegram notifier with configuration options.
func NewTelegram(botToken, chatID string, opts ...TelegramOption) *Telegram {
	n := &Telegram{
		botToken:    botToken,
		chatID:      chatID,
		minSeverity: model.SeverityWarning,
		baseURL:     defaultTelegramBaseURL,
		httpc:       &http.Client{Timeout: defaultSendTimeout},
	}

	for _, opt := range opts {
		opt(n)
	}

	return n
}

// Send implements Notifier.
func (n *Telegram) Send(ctx context.Context, alert model.Alert) error {
	if severityRank(alert.Severity) < severityRank(n.minSeverity) {
		return nil
	}

	form := url.Values{}
	form.Set("chat_id", n.chatID)
	form.Set("text", Format(alert))

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", n.baseURL, n.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := n.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrSendFailed, resp.StatusCode)
	}
	return nil
}

// Format renders an alert as the plain-text message body.
func Format(alert model.Alert) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] Market discrepancy detected\n\n", alert.Severity)
	fmt.Fprintf(&b, "Market: %s\n", alert.MarketQuestion)
	fmt.Fprintf(&b, "News: %s\n", alert.NewsHeadline)
	fmt.Fprintf(&b, "Current price: %.2f\n", alert.CurrentPrice)
	fmt.Fprintf(&b, "Expected price: %.2f\n", alert.ExpectedPrice)
	fmt.Fprintf(&b, "Discrepancy: %.1f%%\n", alert.Discrepancy*100)
	fmt.Fprintf(&b, "Confidence: %.0f%%\n", alert.Confidence*100)
	if alert.Reasoning != "" {
		fmt.Fprintf(&b, "\n%s", alert.Reasoning)
	}
	return b.String()
}

func severityRank(s model.Severity) int {
	switch s {
	case model.SeverityCritical:
		return 2
	case model.SeverityWarning:
		return 1
	default:
		return 0
	}
}

// TelegramOption applies a configuration option to the Telegram notifier.
type TelegramOption func(*Telegram)

// WithMinSeverity drops alerts below the given severity.
func WithMinSeverity(s model.Severity) TelegramOption {
	return func(n *Telegram) {
		if s != "" {
			n.minSeverity = s
		}
	}
}

// WithTelegramBaseURL overrides the API base URL (used by tests).
func WithTelegramBaseURL(baseURL string) TelegramOption {
	return func(n *Telegram) {
		if baseURL != "" {
			n.baseURL = baseURL
		}
	}
}

// WithTelegramHTTPClient replaces the underlying HTTP client.
func WithTelegramHTTPClient(httpc *http.Client) TelegramOption {
	return func(n *Telegram) {
		if httpc != nil {
			n.httpc = httpc
		}
	}
}
