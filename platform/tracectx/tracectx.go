// Package tracectx хранит correlation id (trace id) запроса в context.Context.
//
// Значение привязано к контексту конкретного запроса, поэтому конкурентные
// запросы не видят идентификаторы друг друга, а всё, что вызывается с этим
// контекстом (сервисы, исходящие HTTP-вызовы, логирование), читает один и тот же id.
package tracectx

import (
	"context"

	"github.com/google/uuid"
)

type ctxKeyTraceID struct{}

var traceIDKey = ctxKeyTraceID{}

// WithTraceID возвращает контекст с установленным trace id
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

// TraceID возвращает trace id из контекста, если он был установлен.
// Вне запроса (например, при старте сервиса) возвращает "", false.
func TraceID(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(traceIDKey).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// NewID генерирует новый trace id (UUID v4)
func NewID() string {
	return uuid.NewString()
}

// NewContext привязывает к контексту свежесгенерированный trace id.
// Используется для фоновых операций, у которых нет входящего запроса.
func NewContext(ctx context.Context) context.Context {
	return WithTraceID(ctx, NewID())
}
