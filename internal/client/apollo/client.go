// Package apollo клиент Apollo.io API (поиск людей и компаний).
package apollo

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/shestoi/prospect-agent/internal/client/thirdparty"
)

const (
	// DefaultBaseURL базовый адрес Apollo API
	DefaultBaseURL = "https://api.apollo.io/api/v1/"

	PeopleSearchEndpoint        = "mixed_people/search"
	OrganizationsSearchEndpoint = "mixed_companies/search"
	AuthHealthEndpoint          = "auth/health"
)

// Config настройки клиента
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
	// TraceIDHeader заголовок, в котором Apollo получает correlation id запроса
	TraceIDHeader string
}

// Client работает с Apollo API поверх thirdparty.Client
type Client struct {
	api *thirdparty.Client
}

// Headers заголовки всех запросов к Apollo
func Headers(apiKey string) map[string]string {
	return map[string]string{
		"Accept":        "application/json",
		"Cache-Control": "no-cache",
		"Content-Type":  "application/json",
		"x-api-key":     apiKey,
	}
}

// New создаёт клиент Apollo
func New(cfg Config, logger *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	opts := []thirdparty.Option{thirdparty.WithTraceHeader(cfg.TraceIDHeader)}
	if cfg.Timeout > 0 {
		opts = append(opts, thirdparty.WithTimeout(cfg.Timeout))
	}
	if logger != nil {
		opts = append(opts, thirdparty.WithLogger(logger.Named("apollo")))
	}
	return &Client{api: thirdparty.New(cfg.BaseURL, Headers(cfg.APIKey), opts...)}
}

// PeopleSearch поиск людей (POST mixed_people/search).
// Интеграция пока не реализована: всегда возвращает ошибку, совместимую с thirdparty.ErrNotImplemented.
// Формат ответа Apollo не фиксируется, тело отдаётся как есть.
func (c *Client) PeopleSearch(ctx context.Context, req PeopleSearchRequest) (json.RawMessage, error) {
	return nil, thirdparty.NotImplemented("apollo people search")
}

// OrganizationsSearch поиск компаний (POST mixed_companies/search).
// Интеграция пока не реализована: всегда возвращает ошибку, совместимую с thirdparty.ErrNotImplemented.
func (c *Client) OrganizationsSearch(ctx context.Context, req OrganizationsSearchRequest) (json.RawMessage, error) {
	return nil, thirdparty.NotImplemented("apollo organizations search")
}

// AuthHealth проверяет, что API ключ принимается Apollo (GET auth/health).
// Вызывается при старте приложения.
func (c *Client) AuthHealth(ctx context.Context) (*AuthHealthResponse, error) {
	var resp AuthHealthResponse
	if err := c.api.Get(ctx, AuthHealthEndpoint, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
