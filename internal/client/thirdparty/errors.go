package thirdparty

import (
	"errors"
	"fmt"
)

// ErrNotImplemented возвращается операциями интеграции, которые ещё не реализованы.
// Проверять через errors.Is.
var ErrNotImplemented = errors.New("not implemented")

// NotImplementedError сообщает, какая именно операция не реализована
type NotImplementedError struct {
	Operation string
}

// NotImplemented создаёт ошибку для нереализованной операции
func NotImplemented(operation string) error {
	return &NotImplementedError{Operation: operation}
}

func (e *NotImplementedError) Error() string {
	return e.Operation + ": " + ErrNotImplemented.Error()
}

func (e *NotImplementedError) Is(target error) bool {
	return target == ErrNotImplemented
}

// HTTPError ответ стороннего API со статусом вне 2xx
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}
