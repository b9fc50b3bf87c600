package summary

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"dealbot/internal/model"
)

type mockTransport struct {
	body       string
	statusCode int
	err        error
	gotReq     *http.Request
	gotBody    []byte
}

func (m *mockTransport) Do(req *http.Request) (*http.Response, error) {
	m.gotReq = req
	if req.Body != nil {
		m.gotBody, _ = io.ReadAll(req.Body)
	}
	if m.err != nil {
		return nil, m.err
	}
	status := m.statusCode
	if status == 0 {
		status = http.StatusOK
	}
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(m.body)),
	}, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const chatBody = `{"choices": [{"message": {"role": "assistant", "content": "  A gripping survival adventure.  "}}]}`

func TestSummarize(t *testing.T) {
	deal := model.Deal{
		Store:           "Epic",
		ID:              "abc123",
		Title:           "Mystery Vale",
		DiscountPercent: 100,
		Description:     "Explore a forgotten valley. Uncover its secrets. Survive the night.",
	}

	tests := []struct {
		name      string
		apiKey    string
		transport *mockTransport
		want      string
	}{
		{
			name:      "api success returns trimmed content",
			apiKey:    "sk-test",
			transport: &mockTransport{body: chatBody},
			want:      "A gripping survival adventure.",
		},
		{
			name:      "no key skips api and falls back",
			apiKey:    "",
			transport: &mockTransport{body: chatBody},
			want:      "Explore a forgotten valley. Uncover its secrets.",
		},
		{
			name:      "api transport error falls back",
			apiKey:    "sk-test",
			transport: &mockTransport{err: io.ErrUnexpectedEOF},
			want:      "Explore a forgotten valley. Uncover its secrets.",
		},
		{
			name:      "api error status falls back",
			apiKey:    "sk-test",
			transport: &mockTransport{body: `{"error": {"message": "rate limited"}}`, statusCode: http.StatusTooManyRequests},
			want:      "Explore a forgotten valley. Uncover its secrets.",
		},
		{
			name:      "empty choices falls back",
			apiKey:    "sk-test",
			transport: &mockTransport{body: `{"choices": []}`},
			want:      "Explore a forgotten valley. Uncover its secrets.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(tt.transport, tt.apiKey, testLogger())
			got := g.Summarize(context.Background(), deal)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("blurb mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSummarizeRequestShape(t *testing.T) {
	transport := &mockTransport{body: chatBody}
	g := New(transport, "sk-test", testLogger())

	g.Summarize(context.Background(), model.Deal{Title: "Mystery Vale", Description: "A valley."})

	if transport.gotReq == nil {
		t.Fatal("no request sent")
	}
	if got := transport.gotReq.Header.Get("Authorization"); got != "Bearer sk-test" {
		t.Errorf("Authorization = %q", got)
	}
	if got := transport.gotReq.Header.Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q", got)
	}
	body := string(transport.gotBody)
	for _, want := range []string{
		`"model":"gpt-3.5-turbo"`,
		"Summarize this game description in two sentences: A valley.",
		`"max_tokens":100`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("request body missing %q:\n%s", want, body)
		}
	}
}

func TestFallback(t *testing.T) {
	tests := []struct {
		name string
		deal model.Deal
		want string
	}{
		{
			name: "first two sentences",
			deal: model.Deal{Description: "One. Two. Three. Four."},
			want: "One. Two.",
		},
		{
			name: "single sentence without period",
			deal: model.Deal{Description: "Just one sentence"},
			want: "Just one sentence.",
		},
		{
			name: "newlines flattened",
			deal: model.Deal{Description: "Line one.\nLine two.\nLine three."},
			want: "Line one. Line two.",
		},
		{
			name: "empty description of free deal",
			deal: model.Deal{Title: "Team Siege", Store: "Steam", FinalPrice: 0, DiscountPercent: 100},
			want: "Team Siege is free to grab on Steam right now.",
		},
		{
			name: "empty description of discounted deal",
			deal: model.Deal{Title: "Portal Blast", Store: "Steam", FinalPrice: 1.99, DiscountPercent: 90},
			want: "Portal Blast is 90% off on Steam.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Fallback(tt.deal)); diff != "" {
				t.Errorf("fallback mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
