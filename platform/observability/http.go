package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// HTTPMiddleware возвращает chi/http middleware: извлекает trace context и создаёт span на запрос.
// По завершении пишет debug запись с маршрутом и статусом.
// Должен стоять после middleware, выставляющего correlation id (tracectx).
func HTTPMiddleware(serviceName string, logger *zap.Logger) func(http.Handler) http.Handler {
	tracer := otel.Tracer(serviceName)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			prop := otel.GetTextMapPropagator()
			ctx := prop.Extract(r.Context(), propagation.HeaderCarrier(r.Header))
			ctx, span := tracer.Start(ctx, "HTTP "+r.Method+" "+r.URL.Path,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("http.method", r.Method),
					attribute.String("http.target", r.URL.Path),
				),
			)
			defer span.End()

			start := time.Now()
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(wrapped, r.WithContext(ctx))

			// шаблон маршрута известен только после роутинга
			route := r.URL.Path
			if rctx := chi.RouteContext(ctx); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					route = pattern
					span.SetName("HTTP " + r.Method + " " + route)
					span.SetAttributes(attribute.String("http.route", route))
				}
			}

			statusCode := wrapped.statusCode
			span.SetAttributes(attribute.Int("http.status_code", statusCode))
			if statusCode >= 500 {
				span.SetStatus(codes.Error, strconv.Itoa(statusCode))
			}

			L(ctx, logger).Debug("Request completed",
				zap.String("method", r.Method),
				zap.String("route", route),
				zap.Int("status", statusCode),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}

type responseWriter struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
}

// WriteHeader запоминает статус код ответа
func (rw *responseWriter) WriteHeader(code int) {
	if !rw.wroteHeader {
		rw.statusCode = code
		rw.wroteHeader = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.wroteHeader = true
	return rw.ResponseWriter.Write(b)
}
