package shutdown

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// Manager управляет graceful shutdown сервиса.
// Перехватывает SIGINT/SIGTERM и выполняет зарегистрированные shutdown функции в обратном порядке.
type Manager struct {
	timeout time.Duration
	logger  *zap.Logger
	funcs   []shutdownFunc
	mu      sync.Mutex
	once    sync.Once
	err     error
}

type shutdownFunc struct {
	name string
	fn   func(context.Context) error
}

// New создаёт новый Manager с указанным таймаутом и logger
func New(timeout time.Duration, logger *zap.Logger) *Manager {
	return &Manager{
		timeout: timeout,
		logger:  logger,
		funcs:   make([]shutdownFunc, 0),
	}
}

// Add регистрирует shutdown функцию с указанным именем.
// Функции выполняются в порядке, обратном регистрации.
func (m *Manager) Add(name string, fn func(context.Context) error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.funcs = append(m.funcs, shutdownFunc{name: name, fn: fn})
}

// Wait блокирует выполнение до получения SIGINT/SIGTERM или отмены ctx,
// затем выполняет Shutdown.
func (m *Manager) Wait(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	m.logger.Info("Received shutdown signal, starting graceful shutdown")
	return m.Shutdown()
}

// Shutdown выполняет все зарегистрированные функции (один раз за время жизни Manager).
// Каждая функция выполняется с context.WithTimeout; ошибки собираются через errors.Join.
func (m *Manager) Shutdown() error {
	m.once.Do(func() {
		m.mu.Lock()
		funcs := make([]shutdownFunc, len(m.funcs))
		copy(funcs, m.funcs)
		m.mu.Unlock()

		var errs []error
		for i := len(funcs) - 1; i >= 0; i-- {
			fn := funcs[i]
			m.logger.Info("Executing shutdown function", zap.String("name", fn.name))

			ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
			start := time.Now()
			err := fn.fn(ctx)
			cancel()

			duration := time.Since(start)
			if err != nil {
				errs = append(errs, err)
				m.logger.Error("Shutdown function failed",
					zap.String("name", fn.name),
					zap.Error(err),
					zap.Duration("duration", duration))
			} else {
				m.logger.Info("Shutdown function completed",
					zap.String("name", fn.name),
					zap.Duration("duration", duration))
			}
		}

		m.err = errors.Join(errs...)
		m.logger.Info("Graceful shutdown completed")
	})
	return m.err
}

// ShutdownHTTPServer возвращает shutdown функцию для http.Server
func ShutdownHTTPServer(srv interface {
	Shutdown(context.Context) error
}) func(context.Context) error {
	return func(ctx context.Context) error {
		return srv.Shutdown(ctx)
	}
}

// ClosePool возвращает shutdown функцию для закрытия connection pool
func ClosePool(pool interface {
	Close()
}) func(context.Context) error {
	return func(ctx context.Context) error {
		pool.Close()
		return nil
	}
}
