package observability

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/shestoi/prospect-agent/platform/logging"
	"github.com/shestoi/prospect-agent/platform/tracectx"
)

// TraceFields возвращает zap-поля корреляции из контекста:
// trace_id (correlation id запроса) и otel_trace_id/span_id, если есть активный span.
func TraceFields(ctx context.Context) []zap.Field {
	var fields []zap.Field
	if id, ok := tracectx.TraceID(ctx); ok {
		fields = append(fields, zap.String(logging.TraceIDKey, id))
	}
	sc := trace.SpanFromContext(ctx).SpanContext()
	if sc.IsValid() {
		fields = append(fields,
			zap.String("otel_trace_id", sc.TraceID().String()),
			zap.String("span_id", sc.SpanID().String()),
		)
	}
	return fields
}

// L возвращает base с полями корреляции из ctx.
// Имя и поля base сохраняются: компонентные логгеры (Named) различимы и внутри запроса.
// Использовать в хендлерах и сервисах: observability.L(ctx, logger).Info(...)
func L(ctx context.Context, base *zap.Logger) *zap.Logger {
	if ctx == nil {
		return base
	}
	fields := TraceFields(ctx)
	if len(fields) == 0 {
		return base
	}
	return base.With(fields...)
}
