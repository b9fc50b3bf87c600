// Package summary generates short blurbs for deals.
package summary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"dealbot/internal/model"
)

const (
	openAIChatURL  = "https://api.openai.com/v1/chat/completions"
	openAIModel    = "gpt-3.5-turbo"
	requestTimeout = 30 * time.Second
)

// HTTPClient is the interface for performing HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Generator produces a one-line blurb per deal. With an API key configured
// it calls the OpenAI chat completions API once per deal; without a key, or
// when the call fails, it falls back to a deterministic template.
type Generator struct {
	client HTTPClient
	apiKey string
	log    *slog.Logger
}

// New creates a Generator. An empty apiKey disables the API call entirely.
func New(client HTTPClient, apiKey string, log *slog.Logger) *Generator {
	return &Generator{client: client, apiKey: apiKey, log: log}
}

// Summarize returns a short blurb for the deal. It never fails: any API
// error is logged and the template fallback is used instead.
func (g *Generator) Summarize(ctx context.Context, deal model.Deal) string {
	if g.apiKey != "" {
		blurb, err := g.complete(ctx, deal.Description)
		if err != nil {
			g.log.Error("openai summary", "deal", deal.Key(), "error", err)
		} else if blurb != "" {
			return blurb
		}
	}
	return Fallback(deal)
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (g *Generator) complete(ctx context.Context, text string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	payload, err := json.Marshal(chatRequest{
		Model: openAIModel,
		Messages: []chatMessage{
			{Role: "system", Content: "You are a helpful assistant that summarizes video games."},
			{Role: "user", Content: "Summarize this game description in two sentences: " + text},
		},
		Temperature: 0.7,
		MaxTokens:   100,
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, openAIChatURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("http post: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1024*1024))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	var chat chatResponse
	if err := json.Unmarshal(body, &chat); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(chat.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}
	return strings.TrimSpace(chat.Choices[0].Message.Content), nil
}

// Fallback builds a deterministic blurb from the deal fields alone: the
// first two sentences of the description, or a fixed line when the deal
// has no description.
func Fallback(deal model.Deal) string {
	text := strings.ReplaceAll(deal.Description, "\n", " ")

	parts := strings.SplitN(text, ".", 3)
	if len(parts) > 2 {
		parts = parts[:2]
	}
	var sentences []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			sentences = append(sentences, p)
		}
	}
	if len(sentences) == 0 {
		if deal.Free() {
			return fmt.Sprintf("%s is free to grab on %s right now.", deal.Title, deal.Store)
		}
		return fmt.Sprintf("%s is %d%% off on %s.", deal.Title, deal.DiscountPercent, deal.Store)
	}
	return strings.Join(sentences, ". ") + "."
}
