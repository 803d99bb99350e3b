package httpapi

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/shestoi/prospect-agent/internal/api/http/apierror"
	"github.com/shestoi/prospect-agent/internal/client/thirdparty"
	"github.com/shestoi/prospect-agent/platform/observability"
)

// handlerFunc HTTP обработчик, возвращающий ошибку вместо записи ответа об ошибке
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

// wrap переводит ошибку обработчика в ответ apierror:
// ValidationError -> 422, NotImplementedError -> 501, остальное -> 500 с логом.
func wrap(logger *zap.Logger, fn handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			writeError(logger, w, r, err)
		}
	}
}

func writeError(logger *zap.Logger, w http.ResponseWriter, r *http.Request, err error) {
	var verr *apierror.ValidationError
	var notImpl *thirdparty.NotImplementedError
	switch {
	case errors.As(err, &verr):
		apierror.WriteValidation(w, verr)
	case errors.As(err, &notImpl):
		observability.L(r.Context(), logger).Warn("Operation is not implemented",
			zap.String("operation", notImpl.Operation))
		apierror.WriteNotImplemented(w, notImpl.Operation)
	default:
		observability.L(r.Context(), logger).Error("Unhandled exception",
			zap.Error(err),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
		)
		apierror.WriteInternal(w)
	}
}
