package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

const (
	// StatusUp сервис работает
	StatusUp = "UP"
	// StatusDown зависимость недоступна
	StatusDown = "DOWN"
)

// DefaultReadinessTimeout сколько ждать ответа readiness функции
const DefaultReadinessTimeout = 2 * time.Second

// Response тело ответа health endpoint'ов
type Response struct {
	Status string `json:"status"`
}

// Handler возвращает HTTP handler для health check endpoint.
// Возвращает 200 OK с JSON телом {"status":"UP"} если readiness функция не указана
// или если readiness функция вернула nil за DefaultReadinessTimeout.
// Иначе 503 Service Unavailable с {"status":"DOWN"}.
func Handler(readiness func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if readiness != nil {
			ctx, cancel := context.WithTimeout(r.Context(), DefaultReadinessTimeout)
			err := readiness(ctx)
			cancel()
			if err != nil {
				write(w, http.StatusServiceUnavailable, StatusDown)
				return
			}
		}
		write(w, http.StatusOK, StatusUp)
	}
}

func write(w http.ResponseWriter, code int, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(Response{Status: status})
}
