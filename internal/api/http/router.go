package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/shestoi/prospect-agent/internal/api/http/apierror"
	"github.com/shestoi/prospect-agent/internal/api/http/middleware"
	platformhealth "github.com/shestoi/prospect-agent/platform/health/http"
	"github.com/shestoi/prospect-agent/platform/metrics"
	platformobservability "github.com/shestoi/prospect-agent/platform/observability"
)

// RouterConfig зависимости роутера
type RouterConfig struct {
	// ServiceName имя сервиса для span'ов
	ServiceName string
	// TraceIDHeader заголовок с correlation id (default X-Request-Id)
	TraceIDHeader string
	Logger        *zap.Logger
	// Metrics если nil, /metrics не регистрируется
	Metrics *metrics.Collector
	// Readiness проверка зависимостей для /ready; nil означает "всегда готов"
	Readiness func(context.Context) error
}

// NewRouter создаёт и настраивает HTTP роутер.
// Порядок middleware: correlation id -> span и итоговый debug лог -> метрики -> recoverer.
func NewRouter(handler *Handler, cfg RouterConfig) chi.Router {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := chi.NewRouter()
	router.Use(middleware.TraceID(cfg.TraceIDHeader, nil))
	router.Use(platformobservability.HTTPMiddleware(cfg.ServiceName, logger))
	if cfg.Metrics != nil {
		router.Use(cfg.Metrics.Middleware)
	}
	router.Use(middleware.Recoverer(logger))

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		apierror.WriteRouteError(w, http.StatusNotFound, r.URL.Path)
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		apierror.WriteRouteError(w, http.StatusMethodNotAllowed, r.URL.Path)
	})

	router.Get("/health", platformhealth.Handler(nil))
	router.Get("/ready", platformhealth.Handler(cfg.Readiness))
	if cfg.Metrics != nil {
		router.Method(http.MethodGet, "/metrics", cfg.Metrics.Handler())
	}

	router.Route("/prospects", func(r chi.Router) {
		r.Get("/people/search", wrap(handler.logger, handler.SearchPeople))
		r.Get("/organizations/search", wrap(handler.logger, handler.SearchOrganizations))
	})

	return router
}
