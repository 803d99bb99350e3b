package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	httpapi "github.com/shestoi/prospect-agent/internal/api/http"
	"github.com/shestoi/prospect-agent/internal/client/apollo"
	"github.com/shestoi/prospect-agent/internal/config"
	"github.com/shestoi/prospect-agent/internal/service"
	"github.com/shestoi/prospect-agent/internal/vectorstore/pgvector"
	platformlogging "github.com/shestoi/prospect-agent/platform/logging"
	"github.com/shestoi/prospect-agent/platform/metrics"
	"github.com/shestoi/prospect-agent/platform/observability"
	platformshutdown "github.com/shestoi/prospect-agent/platform/shutdown"
	"github.com/shestoi/prospect-agent/platform/tracectx"
)

const (
	// loggerName имя корневого logger'а сервиса
	loggerName = "prospect"
	// apolloCheckTimeout ограничивает проверку API ключа Apollo при старте
	apolloCheckTimeout = 5 * time.Second
)

// Version версия сборки (-ldflags "-X .../internal/app.Version=...")
var Version = "dev"

// App содержит все зависимости для запуска и корректного shutdown сервиса
type App struct {
	logger      *zap.Logger
	httpServer  *http.Server
	shutdownMgr *platformshutdown.Manager
	wg          sync.WaitGroup
}

// Build создаёт и настраивает все зависимости сервиса
func Build(ctx context.Context, settings *config.Settings) (*App, error) {
	logger, err := platformlogging.New(platformlogging.Config{
		ServiceName: loggerName,
		Level:       string(settings.Logging.Level),
		Format:      settings.Logging.Format,
	})
	if err != nil {
		return nil, err
	}

	// у старта нет входящего запроса: свой correlation id
	startupCtx := tracectx.NewContext(ctx)
	log := observability.L(startupCtx, logger)
	log.Info("Configure startup dependencies", zap.String("version", Version))
	settings.Log(log)

	shutdownMgr := platformshutdown.New(settings.API.ShutdownTimeout, logger)

	// Трассировка (OTLP gRPC) только при llm_tracing.enabled
	tracingShutdown, err := observability.Init(startupCtx, observability.Config{
		Enabled:        settings.LLMTracing.Enabled,
		OTLPEndpoint:   settings.LLMTracing.OTLPEndpoint,
		SamplingRatio:  settings.LLMTracing.SamplingRatio,
		ServiceName:    settings.LLMTracing.ServiceName,
		ServiceVersion: Version,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}
	shutdownMgr.Add("tracer_provider", tracingShutdown)

	var readiness func(context.Context) error
	switch vs := settings.VectorStore.(type) {
	case *config.PGVectorStoreSettings:
		store, err := pgvector.New(startupCtx, vs)
		if err != nil {
			_ = shutdownMgr.Shutdown()
			return nil, err
		}
		log.Info("Vector store configured", zap.String("provider", string(vs.Provider())), zap.String("table", store.Table()))
		readiness = store.Ready
		shutdownMgr.Add("vector_store_pool", platformshutdown.ClosePool(store))
	default:
		_ = shutdownMgr.Shutdown()
		return nil, fmt.Errorf("unsupported vector store settings %T", vs)
	}

	apolloClient := apollo.New(apollo.Config{
		APIKey:        settings.ApolloAPI.APIKey,
		BaseURL:       settings.ApolloAPI.BaseURL,
		Timeout:       settings.ApolloAPI.Timeout,
		TraceIDHeader: settings.Logging.TraceIDHeader,
	}, logger)
	checkApolloAuth(startupCtx, apolloClient, log)
	prospectService := service.NewProspectService(apollo.NewProspectSourceAdapter(apolloClient), logger)

	handler := httpapi.NewHandler(prospectService, logger)
	router := httpapi.NewRouter(handler, httpapi.RouterConfig{
		ServiceName:   settings.LLMTracing.ServiceName,
		TraceIDHeader: settings.Logging.TraceIDHeader,
		Logger:        logger,
		Metrics:       metrics.NewCollector(nil),
		Readiness:     readiness,
	})

	httpServer := &http.Server{
		Addr:              settings.API.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	// выполняется первым: сначала перестаём принимать запросы
	shutdownMgr.Add("http_server", platformshutdown.ShutdownHTTPServer(httpServer))

	return &App{
		logger:      logger,
		httpServer:  httpServer,
		shutdownMgr: shutdownMgr,
	}, nil
}

// checkApolloAuth проверяет API ключ Apollo. Ошибка не фатальна: сервис стартует, проблема видна в логе.
func checkApolloAuth(ctx context.Context, client *apollo.Client, log *zap.Logger) {
	ctx, cancel := context.WithTimeout(ctx, apolloCheckTimeout)
	defer cancel()

	resp, err := client.AuthHealth(ctx)
	if err != nil {
		log.Warn("Apollo API key check failed", zap.Error(err))
		return
	}
	if !resp.IsLoggedIn {
		log.Warn("Apollo API key is not accepted", zap.Bool("healthy", resp.Healthy))
		return
	}
	log.Info("Apollo API key accepted", zap.Bool("healthy", resp.Healthy))
}

// Handler возвращает корневой HTTP handler
func (a *App) Handler() http.Handler {
	return a.httpServer.Handler
}

// Run запускает HTTP сервер и блокируется до SIGINT/SIGTERM, отмены ctx или ошибки сервера
func (a *App) Run(ctx context.Context) error {
	defer platformlogging.Sync(a.logger)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.logger.Info("Starting HTTP server", zap.String("addr", a.httpServer.Addr))

	var serveErr error
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("HTTP server error", zap.Error(err))
			serveErr = err
			cancel()
		}
	}()

	shutdownErr := a.shutdownMgr.Wait(ctx)
	a.wg.Wait()

	a.logger.Info("Service stopped")
	return errors.Join(serveErr, shutdownErr)
}
