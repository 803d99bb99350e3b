package middleware

import (
	"net/http"

	"github.com/shestoi/prospect-agent/platform/tracectx"
)

// DefaultTraceIDHeader заголовок с correlation id, если другой не задан в настройках
const DefaultTraceIDHeader = "X-Request-Id"

// TraceID HTTP middleware: читает correlation id из заголовка header,
// при отсутствии генерирует новый через newID, кладёт id в context запроса.
// В ответ заголовок не пишется.
func TraceID(header string, newID func() string) func(http.Handler) http.Handler {
	if header == "" {
		header = DefaultTraceIDHeader
	}
	if newID == nil {
		newID = tracectx.NewID
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(header)
			if id == "" {
				id = newID()
			}
			ctx := tracectx.WithTraceID(r.Context(), id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
