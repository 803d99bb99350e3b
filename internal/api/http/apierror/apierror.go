// Package apierror формирует единый JSON-конверт ошибок API:
// {"message": "...", "details": [{"field": "...", "value": "...", "info": "..."}]}
package apierror

import (
	"encoding/json"
	"net/http"
	"strings"
)

const (
	MessageValidation     = "Validation error"
	MessageInternal       = "Internal server error"
	MessageNotImplemented = "Not implemented"
)

// ErrorItem одна деталь ошибки
type ErrorItem struct {
	Field string `json:"field"`
	Value string `json:"value"`
	Info  string `json:"info"`
}

// ErrorResponse тело любого не-2xx ответа
type ErrorResponse struct {
	Message string      `json:"message"`
	Details []ErrorItem `json:"details"`
}

// FieldError проблема с одним входным полем запроса
type FieldError struct {
	// Field путь к полю через точку (для query параметров это имя параметра)
	Field string
	// Value исходное значение, "" если поле не передано
	Value string
	Info  string
}

// ValidationError возвращается хендлером, если запрос не прошёл валидацию (422)
type ValidationError struct {
	Fields []FieldError
}

// Add добавляет проблему с полем
func (e *ValidationError) Add(field, value, info string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Value: value, Info: info})
}

// ErrOrNil возвращает e, если есть хотя бы одна проблема, иначе nil
func (e *ValidationError) ErrOrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Info)
	}
	return "validation error: " + strings.Join(parts, "; ")
}

// WriteJSON пишет v как JSON с указанным статусом
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteValidation пишет 422 с одной деталью на каждое поле
func WriteValidation(w http.ResponseWriter, verr *ValidationError) {
	details := make([]ErrorItem, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		details = append(details, ErrorItem{Field: f.Field, Value: f.Value, Info: f.Info})
	}
	WriteJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Message: MessageValidation, Details: details})
}

// WriteInternal пишет 500. Детали ошибки клиенту не раскрываются.
func WriteInternal(w http.ResponseWriter) {
	WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
		Message: MessageInternal,
		Details: []ErrorItem{{Field: "error", Value: "", Info: MessageInternal}},
	})
}

// WriteNotImplemented пишет 501 для операции, интеграция которой ещё не реализована
func WriteNotImplemented(w http.ResponseWriter, operation string) {
	WriteJSON(w, http.StatusNotImplemented, ErrorResponse{
		Message: MessageNotImplemented,
		Details: []ErrorItem{{Field: "error", Value: "", Info: operation + " is not implemented"}},
	})
}

// WriteRouteError пишет 404/405 для неизвестного маршрута или метода
func WriteRouteError(w http.ResponseWriter, status int, path string) {
	text := http.StatusText(status)
	WriteJSON(w, status, ErrorResponse{
		Message: text,
		Details: []ErrorItem{{Field: "path", Value: path, Info: text}},
	})
}
