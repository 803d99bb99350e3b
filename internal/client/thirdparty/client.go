// Package thirdparty базовый JSON клиент для сторонних HTTP API.
package thirdparty

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/shestoi/prospect-agent/platform/observability"
	"github.com/shestoi/prospect-agent/platform/tracectx"
)

const (
	defaultTimeout     = 30 * time.Second
	defaultTraceHeader = "X-Request-Id"
	tracerName         = "thirdparty"
	// maxErrorBody сколько байт тела ошибки сохраняется в HTTPError
	maxErrorBody = 64 << 10
)

// DefaultHeaders используются, если при создании клиента заголовки не переданы
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Accept":       "application/json",
		"Content-Type": "application/json",
	}
}

// Client отправляет JSON запросы на baseURL + endpoint.
// Повторов нет: ошибка транспорта или статус вне 2xx сразу возвращается вызывающему.
type Client struct {
	baseURL     string
	headers     http.Header
	httpClient  *http.Client
	timeout     time.Duration
	logger      *zap.Logger
	traceHeader string
}

// Option настраивает Client
type Option func(*Client)

// WithHTTPClient задаёт http.Client (например, для тестов). nil игнорируется.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout задаёт таймаут одного запроса.
// Применяется к копии http.Client, переданный через WithHTTPClient клиент не меняется.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithLogger задаёт logger для диагностики запросов
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithTraceHeader задаёт заголовок, в котором передаётся correlation id запроса
func WithTraceHeader(name string) Option {
	return func(c *Client) {
		if name != "" {
			c.traceHeader = name
		}
	}
}

// New создаёт клиент. headers полностью заменяют DefaultHeaders; nil или пустая map означает DefaultHeaders.
func New(baseURL string, headers map[string]string, opts ...Option) *Client {
	if len(headers) == 0 {
		headers = DefaultHeaders()
	}
	h := make(http.Header, len(headers))
	for k, v := range headers {
		h.Set(k, v)
	}

	c := &Client{
		baseURL:     baseURL,
		headers:     h,
		httpClient:  &http.Client{Timeout: defaultTimeout},
		logger:      zap.NewNop(),
		traceHeader: defaultTraceHeader,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c
}

// Get выполняет GET baseURL+endpoint?params и декодирует JSON ответ в out (если out != nil)
func (c *Client) Get(ctx context.Context, endpoint string, params url.Values, out any) error {
	return c.do(ctx, http.MethodGet, endpoint, params, nil, out)
}

// Post выполняет POST с JSON телом data (nil = без тела) и декодирует JSON ответ в out (если out != nil)
func (c *Client) Post(ctx context.Context, endpoint string, data any, params url.Values, out any) error {
	var body io.Reader
	if data != nil {
		payload, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("failed to marshal payload: %w", err)
		}
		body = bytes.NewReader(payload)
	}
	return c.do(ctx, http.MethodPost, endpoint, params, body, out)
}

func (c *Client) buildURL(endpoint string, params url.Values) string {
	u := c.baseURL + endpoint
	if len(params) == 0 {
		return u
	}
	sep := "?"
	if strings.Contains(u, "?") {
		sep = "&"
	}
	return u + sep + params.Encode()
}

func (c *Client) do(ctx context.Context, method, endpoint string, params url.Values, body io.Reader, out any) error {
	target := c.buildURL(endpoint, params)

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	for k, v := range c.headers {
		req.Header[k] = append([]string(nil), v...)
	}
	if id, ok := tracectx.TraceID(ctx); ok {
		req.Header.Set(c.traceHeader, id)
	}

	ctx, span := observability.StartClientSpan(ctx, tracerName, req)
	log := observability.L(ctx, c.logger)

	start := time.Now()
	resp, err := c.httpClient.Do(req.WithContext(ctx))
	if err != nil {
		observability.EndClientSpan(span, 0, err)
		log.Warn("third-party request failed",
			zap.String("method", method),
			zap.String("url", req.URL.Redacted()),
			zap.Error(err))
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()
	observability.EndClientSpan(span, resp.StatusCode, nil)

	log.Debug("third-party request completed",
		zap.String("method", method),
		zap.String("url", req.URL.Redacted()),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &HTTPError{
			Method:     method,
			URL:        req.URL.Redacted(),
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(respBody)),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to decode response: empty body")
		}
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
