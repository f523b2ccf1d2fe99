// Package notify delivers order notifications to an external Telegram bot
// endpoint. Delivery is best-effort and at-most-once: no retries, and
// callers are expected to tolerate failure.
package notify

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/skypants/storefront/internal/domain/order"
)

// TelegramConfig holds the bot credentials and endpoint. Credentials are
// injected configuration, never literals.
type TelegramConfig struct {
	BotToken string
	ChatID   string
	// BaseURL overrides the Telegram API host, used by tests.
	BaseURL string
	Timeout time.Duration
}

// Telegram posts order notifications to the Telegram Bot API.
type Telegram struct {
	cfg    TelegramConfig
	client *http.Client
}

var _ order.Notifier = (*Telegram)(nil)

// NewTelegram creates a Telegram notifier with a hard request timeout.
func NewTelegram(cfg TelegramConfig) *Telegram {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.telegram.org"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Telegram{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// OrderCreated renders the order into the fixed message template and sends
// it via the bot's sendMessage method. A non-2xx response is an error.
func (t *Telegram) OrderCreated(ctx context.Context, o *order.Order) error {
	payload := t.encodePayload(RenderOrderMessage(o))

	url := fmt.Sprintf("%s/bot%s/sendMessage", t.cfg.BaseURL, t.cfg.BotToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "send message")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return errors.Errorf("telegram api: status %d: %s", resp.StatusCode, body)
	}
	return nil
}

// encodePayload builds the sendMessage JSON body.
func (t *Telegram) encodePayload(text string) []byte {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("chat_id", func(e *jx.Encoder) { e.Str(t.cfg.ChatID) })
		e.Field("text", func(e *jx.Encoder) { e.Str(text) })
		e.Field("parse_mode", func(e *jx.Encoder) { e.Str("Markdown") })
	})
	return e.Bytes()
}

// RenderOrderMessage produces the operator-facing order summary: identity,
// shipping address, itemized lines with per-line subtotals, and the grand
// total.
func RenderOrderMessage(o *order.Order) string {
	var b strings.Builder

	b.WriteString("🛍️ *NEW ORDER RECEIVED*\n\n")
	fmt.Fprintf(&b, "*Order ID:* %s\n", o.ID)
	fmt.Fprintf(&b, "*Customer:* %s\n", o.CustomerName)
	fmt.Fprintf(&b, "*Email:* %s\n", o.CustomerEmail)
	fmt.Fprintf(&b, "*Phone:* %s\n\n", o.CustomerPhone)

	b.WriteString("*Shipping Address:*\n")
	fmt.Fprintf(&b, "%s\n%s, %s\n\n", o.ShippingAddress, o.City, o.PostalCode)

	b.WriteString("*Items:*\n")
	for _, li := range o.Items {
		fmt.Fprintf(&b, "• %s (%dx) - $%s\n", li.Name, li.Quantity, li.Subtotal().StringFixed(2))
	}

	fmt.Fprintf(&b, "\n*Total:* $%s\n", o.Total.StringFixed(2))
	fmt.Fprintf(&b, "\n*Order Date:* %s\n", o.CreatedAt.Format(time.RFC1123))

	return b.String()
}

// Noop is used when Telegram is not configured; it reports every delivery
// as failed so the telegramSent flag stays down.
type Noop struct{}

var _ order.Notifier = Noop{}

var errNotConfigured = errors.New("notifier not configured")

// OrderCreated always fails with a not-configured error.
func (Noop) OrderCreated(context.Context, *order.Order) error {
	return errNotConfigured
}
