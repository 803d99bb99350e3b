package middleware

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/shestoi/prospect-agent/internal/api/http/apierror"
	"github.com/shestoi/prospect-agent/platform/observability"
)

// Recoverer HTTP middleware: перехватывает panic в хендлере,
// логирует её с trace_id и отвечает 500 в формате apierror.
// Если хендлер уже начал ответ, тело не дописывается.
func Recoverer(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := &headerTracker{ResponseWriter: w}
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				observability.L(r.Context(), logger).Error("Unhandled exception",
					zap.Error(fmt.Errorf("panic: %v", rec)),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Bool("headers_sent", rw.wroteHeader),
				)
				if rw.wroteHeader {
					return
				}
				apierror.WriteInternal(w)
			}()
			next.ServeHTTP(rw, r)
		})
	}
}

// headerTracker запоминает, были ли уже отправлены заголовки ответа
type headerTracker struct {
	http.ResponseWriter
	wroteHeader bool
}

func (t *headerTracker) WriteHeader(code int) {
	t.wroteHeader = true
	t.ResponseWriter.WriteHeader(code)
}

func (t *headerTracker) Write(b []byte) (int, error) {
	t.wroteHeader = true
	return t.ResponseWriter.Write(b)
}

// Unwrap нужен http.ResponseController
func (t *headerTracker) Unwrap() http.ResponseWriter {
	return t.ResponseWriter
}
