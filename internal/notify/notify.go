// Package notify delivers deal announcements to a chat webhook.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const requestTimeout = 30 * time.Second

// HTTPClient is the interface for performing HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Webhook posts messages to a Discord-compatible webhook URL.
type Webhook struct {
	client HTTPClient
	url    string
	log    *slog.Logger
}

// NewWebhook creates a Webhook notifier for the given URL.
func NewWebhook(client HTTPClient, url string, log *slog.Logger) *Webhook {
	return &Webhook{client: client, url: url, log: log}
}

type webhookPayload struct {
	Content string `json:"content"`
}

// Send posts a message to the webhook. Delivery is best effort: failures
// are logged and never retried.
func (w *Webhook) Send(ctx context.Context, message string) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	payload, err := json.Marshal(webhookPayload{Content: message})
	if err != nil {
		w.log.Error("encode webhook payload", "error", err)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(payload))
	if err != nil {
		w.log.Error("create webhook request", "error", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		w.log.Error("post to webhook", "error", err)
		return
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		w.log.Error("post to webhook", "status", resp.StatusCode, "body", string(body))
	}
}
