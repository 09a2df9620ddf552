package telegram

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/kaduregel/matchday/internal/platform/resilience"
	"github.com/kaduregel/matchday/internal/usecase"
)

func newTestClient(t *testing.T, baseURL string, breaker resilience.CircuitBreakerConfig) *Client {
	t.Helper()

	client, err := NewClient(ClientConfig{
		BaseURL:        baseURL,
		Token:          "123:abc",
		ChatID:         "-100200300",
		CircuitBreaker: breaker,
	}, nil)
	if err != nil {
		t.Fatalf("create client: %v", err)
	}

	return client
}

func TestClientSendMessage(t *testing.T) {
	var gotPath string
	var gotBody sendMessageRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, resilience.CircuitBreakerConfig{})
	if err := client.SendMessage(context.Background(), "שיהיה בהצלחה!"); err != nil {
		t.Fatalf("send message: %v", err)
	}

	if gotPath != "/bot123:abc/sendMessage" {
		t.Fatalf("unexpected path: got=%s", gotPath)
	}
	if gotBody.ChatID != "-100200300" {
		t.Fatalf("unexpected chat id: got=%s", gotBody.ChatID)
	}
	if gotBody.Text != "שיהיה בהצלחה!" {
		t.Fatalf("unexpected text: got=%q", gotBody.Text)
	}
}

func TestClientSendMessageRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"ok":false,"description":"chat not found"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, resilience.CircuitBreakerConfig{})
	err := client.SendMessage(context.Background(), "הודעה")
	if err == nil || !strings.Contains(err.Error(), "chat not found") {
		t.Fatalf("expected rejection error, got %v", err)
	}
}

func TestClientSendMessageNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, resilience.CircuitBreakerConfig{})
	err := client.SendMessage(context.Background(), "הודעה")
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestClientCircuitBreakerOpensAfterFailures(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 2,
	})

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if err := client.SendMessage(ctx, "הודעה"); err == nil {
			t.Fatal("expected an error from the failing server")
		}
	}

	err := client.SendMessage(ctx, "הודעה")
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
	if got := atomic.LoadInt32(&hits); got != 2 {
		t.Fatalf("expected the open breaker to block the third call, hits=%d", got)
	}
}

func TestNewClientValidation(t *testing.T) {
	if _, err := NewClient(ClientConfig{BaseURL: "ftp://host", Token: "t", ChatID: "c"}, nil); err == nil {
		t.Fatal("expected an error for unsupported scheme")
	}
	if _, err := NewClient(ClientConfig{BaseURL: "https://api.telegram.org", ChatID: "c"}, nil); err == nil {
		t.Fatal("expected an error for missing token")
	}
	if _, err := NewClient(ClientConfig{BaseURL: "https://api.telegram.org", Token: "t"}, nil); err == nil {
		t.Fatal("expected an error for missing chat id")
	}
}

func TestBuildSendMessageCurlPreview(t *testing.T) {
	preview := buildSendMessageCurlPreview("https://api.telegram.org/bot***/sendMessage", `{"chat_id":"1","text":"hi"}`)

	if !strings.HasPrefix(preview, "curl -X POST") {
		t.Fatalf("unexpected preview prefix: %s", preview)
	}
	if !strings.Contains(preview, "/bot***/") {
		t.Fatalf("expected redacted token in preview: %s", preview)
	}
	if strings.Contains(preview, "123:abc") {
		t.Fatalf("token leaked into preview: %s", preview)
	}
}

func TestShellQuote(t *testing.T) {
	if got := shellQuote("a'b"); got != `'a'"'"'b'` {
		t.Fatalf("unexpected quoting: %s", got)
	}
}

func TestTruncateForLog(t *testing.T) {
	if got := truncateForLog("abcdef", 4); got != "abcd...(truncated)" {
		t.Fatalf("unexpected truncation: %s", got)
	}
	if got := truncateForLog("abc", 10); got != "abc" {
		t.Fatalf("unexpected truncation: %s", got)
	}
}
