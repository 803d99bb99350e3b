package config

import (
	"fmt"
	"strings"
)

// IssueKind тип проблемы в конфигурации
type IssueKind string

const (
	// IssueMissing обязательная переменная не задана
	IssueMissing IssueKind = "missing"
	// IssueInvalid значение не приводится к типу поля или не проходит проверку
	IssueInvalid IssueKind = "invalid value"
	// IssueUnknownProvider значение provider не совпадает ни с одним вариантом
	IssueUnknownProvider IssueKind = "unknown provider"
)

// Issue описывает одну проблему в конфигурации
type Issue struct {
	Kind IssueKind
	// Field путь к полю в Settings, например "llm.api_key"
	Field string
	// Key имя переменной окружения, например "LLM__API_KEY"
	Key string
	// Value исходное значение (пусто для IssueMissing)
	Value  string
	Reason string
}

func (i Issue) String() string {
	switch i.Kind {
	case IssueMissing:
		return fmt.Sprintf("%s (%s) is required", i.Field, i.Key)
	case IssueUnknownProvider:
		return fmt.Sprintf("unknown provider %q for %s (%s): %s", i.Value, i.Field, i.Key, i.Reason)
	default:
		return fmt.Sprintf("invalid value %q for %s (%s): %s", i.Value, i.Field, i.Key, i.Reason)
	}
}

// ConfigurationError возвращается Load, если конфигурация неполна или некорректна.
// Сервис с такой ошибкой стартовать не должен.
type ConfigurationError struct {
	Issues []Issue
}

func (e *ConfigurationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.String())
	}
	return "configuration error: " + strings.Join(parts, "; ")
}

// Issue возвращает проблему по пути поля (например "vector_store.provider")
func (e *ConfigurationError) Issue(field string) (Issue, bool) {
	for _, issue := range e.Issues {
		if issue.Field == field {
			return issue, true
		}
	}
	return Issue{}, false
}
