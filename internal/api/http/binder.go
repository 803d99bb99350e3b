package httpapi

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/oapi-codegen/runtime"

	"github.com/shestoi/prospect-agent/internal/api/http/apierror"
)

// queryBinder разбирает query параметры (style=form, explode=true) и копит ошибки валидации
type queryBinder struct {
	query url.Values
	verr  apierror.ValidationError
}

func newQueryBinder(r *http.Request) *queryBinder {
	return &queryBinder{query: r.URL.Query()}
}

func (b *queryBinder) bind(name string, dest any) bool {
	if err := runtime.BindQueryParameter("form", true, false, name, b.query, dest); err != nil {
		b.verr.Add(name, b.query.Get(name), err.Error())
		return false
	}
	return true
}

// String необязательный строковый параметр
func (b *queryBinder) String(name string) string {
	var v *string
	if b.bind(name, &v) && v != nil {
		return *v
	}
	return ""
}

// Strings необязательный параметр-массив: ?name=a&name=b
func (b *queryBinder) Strings(name string) []string {
	var v *[]string
	if b.bind(name, &v) && v != nil {
		return *v
	}
	return nil
}

// IntInRange необязательный целый параметр в [min, max], def если параметр не передан
func (b *queryBinder) IntInRange(name string, def, min, max int) int {
	var v *int
	if err := runtime.BindQueryParameter("form", true, false, name, b.query, &v); err != nil {
		b.verr.Add(name, b.query.Get(name), "value is not a valid integer")
		return def
	}
	if v == nil {
		return def
	}
	if *v < min || *v > max {
		b.verr.Add(name, b.query.Get(name), fmt.Sprintf("value must be between %d and %d", min, max))
		return def
	}
	return *v
}

// Err возвращает *apierror.ValidationError, если хотя бы один параметр невалиден
func (b *queryBinder) Err() error {
	return b.verr.ErrOrNil()
}
