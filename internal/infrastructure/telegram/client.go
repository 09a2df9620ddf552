package telegram

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/kaduregel/matchday/internal/platform/resilience"
	"github.com/kaduregel/matchday/internal/usecase"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type ClientConfig struct {
	BaseURL        string
	Token          string
	ChatID         string
	Timeout        time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client pushes rendered messages to a Telegram group chat through the Bot
// API sendMessage endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	chatID     string
	breaker    *resilience.CircuitBreaker
	logger     *slog.Logger
}

func NewClient(cfg ClientConfig, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	baseURL, err := validateHTTPBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid TELEGRAM_BASE_URL: %w", err)
	}
	token := strings.TrimSpace(cfg.Token)
	if token == "" {
		return nil, fmt.Errorf("telegram token is required")
	}
	chatID := strings.TrimSpace(cfg.ChatID)
	if chatID == "" {
		return nil, fmt.Errorf("telegram chat id is required")
	}

	var breaker *resilience.CircuitBreaker
	if cfg.CircuitBreaker.Enabled {
		normalized := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)
		breaker = resilience.NewCircuitBreaker(
			normalized.FailureThreshold,
			normalized.OpenTimeout,
			normalized.HalfOpenMaxReq,
		)
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		token:      token,
		chatID:     chatID,
		breaker:    breaker,
		logger:     logger,
	}, nil
}

type sendMessageRequest struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

func (c *Client) SendMessage(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("message text is required")
	}

	if c.breaker != nil {
		if err := c.breaker.Allow(); err != nil {
			return fmt.Errorf("%w: telegram: %v", usecase.ErrDependencyUnavailable, err)
		}
	}

	err := c.sendMessage(ctx, text)
	if c.breaker != nil {
		if err != nil {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
	}

	return err
}

func (c *Client) sendMessage(ctx context.Context, text string) error {
	sendURL := c.baseURL + "/bot" + c.token + "/sendMessage"

	body, err := sonic.Marshal(sendMessageRequest{ChatID: c.chatID, Text: text})
	if err != nil {
		return fmt.Errorf("marshal send message request: %w", err)
	}

	curlPreview := buildSendMessageCurlPreview(c.baseURL+"/bot***/sendMessage", truncateForLog(string(body), 2048))

	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(
			attribute.String("telegram.chat_id", c.chatID),
			attribute.Int("telegram.text_length", len(text)),
			attribute.String("telegram.request_curl_preview", curlPreview),
		)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sendURL, strings.NewReader(string(body)))
	if err != nil {
		return fmt.Errorf("create send message request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: send telegram message curl=%s: %v", usecase.ErrDependencyUnavailable, curlPreview, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read send message response: %w", err)
	}

	if resp.StatusCode/100 != 2 {
		c.logger.WarnContext(ctx, "telegram send message non-2xx",
			"status_code", resp.StatusCode,
			"body", truncateForLog(strings.TrimSpace(string(raw)), 1024),
		)
		return fmt.Errorf("%w: telegram send message status=%d", usecase.ErrDependencyUnavailable, resp.StatusCode)
	}

	var decoded sendMessageResponse
	if err := sonic.Unmarshal(raw, &decoded); err != nil {
		return fmt.Errorf("unmarshal send message response: %w", err)
	}
	if !decoded.OK {
		return fmt.Errorf("telegram send message rejected: %s", decoded.Description)
	}

	c.logger.InfoContext(ctx, "telegram message sent", "chat_id", c.chatID, "text_length", len(text))
	return nil
}

func buildSendMessageCurlPreview(sendURL, body string) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	appendPart := func(part string) {
		if buf.Len() > 0 {
			_ = buf.WriteByte(' ')
		}
		_, _ = buf.WriteString(part)
	}

	appendPart("curl")
	appendPart("-X")
	appendPart("POST")
	appendPart(shellQuote(sendURL))
	appendPart("-H")
	appendPart(shellQuote("Content-Type: application/json"))
	appendPart("-d")
	appendPart(shellQuote(body))

	return buf.String()
}

func shellQuote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "'\"'\"'") + "'"
}

func validateHTTPBaseURL(raw string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", fmt.Errorf("value is empty")
	}

	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", fmt.Errorf("parse %q: %w", candidate, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("%q uses unsupported scheme=%q; expected http or https", candidate, parsed.Scheme)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return "", fmt.Errorf("%q has empty host", candidate)
	}

	return strings.TrimRight(candidate, "/"), nil
}

func truncateForLog(value string, max int) string {
	if max <= 0 || len(value) <= max {
		return value
	}
	return value[:max] + "...(truncated)"
}
