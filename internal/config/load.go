package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"sync"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// nestedDelimiter разделяет секцию и поле в имени переменной: API__PORT
const nestedDelimiter = "__"

const dotEnvFile = ".env"

var (
	cacheMu sync.Mutex
	cached  *Settings
)

// Load загружает конфигурацию один раз за время жизни процесса.
// Первый успешный результат кэшируется: последующие вызовы возвращают тот же
// *Settings и окружение повторно не читают. Неуспешная загрузка не кэшируется.
//
// Перед чтением окружения подгружается .env из рабочей директории
// (уже заданные переменные не перезаписываются).
func Load() (*Settings, error) {
	cacheMu.Lock()
	defer cacheMu.Unlock()

	if cached != nil {
		return cached, nil
	}

	if err := loadDotEnv(dotEnvFile); err != nil {
		return nil, err
	}

	settings, err := LoadFromEnviron(os.Environ())
	if err != nil {
		return nil, err
	}
	cached = settings
	return cached, nil
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// LoadFromEnviron разбирает конфигурацию из списка "KEY=value" (формат os.Environ).
// Имена переменных регистронезависимы. Результат не кэшируется.
// Все найденные проблемы возвращаются одной *ConfigurationError.
func LoadFromEnviron(environ []string) (*Settings, error) {
	l := &loader{vars: normalizeEnviron(environ)}

	s := &Settings{}
	l.parse("api", &s.API)
	s.LLM = l.llm()
	s.Embeddings = l.embeddings()
	s.VectorStore = l.vectorStore()
	l.parse("logging", &s.Logging)
	l.parse("llm_tracing", &s.LLMTracing)
	l.parse("apollo_api", &s.ApolloAPI)

	if len(l.issues) == 0 {
		l.validate(s)
	}
	if len(l.issues) > 0 {
		return nil, &ConfigurationError{Issues: l.issues}
	}
	return s, nil
}

func normalizeEnviron(environ []string) map[string]string {
	vars := make(map[string]string, len(environ))
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		vars[strings.ToUpper(key)] = value
	}
	return vars
}

type loader struct {
	vars   map[string]string
	issues []Issue
}

func sectionPrefix(section string) string {
	return strings.ToUpper(section) + nestedDelimiter
}

// fieldPath переводит имя переменной в путь поля: LLM__API_KEY -> llm.api_key
func fieldPath(key string) string {
	return strings.ToLower(strings.ReplaceAll(key, nestedDelimiter, "."))
}

func (l *loader) add(issue Issue) {
	l.issues = append(l.issues, issue)
}

// parse заполняет target из переменных с префиксом секции
func (l *loader) parse(section string, target any) {
	prefix := sectionPrefix(section)
	err := env.ParseWithOptions(target, env.Options{
		Environment: l.vars,
		Prefix:      prefix,
	})
	if err != nil {
		l.collect(section, prefix, target, err)
	}
}

// collect раскладывает ошибки caarlos0/env на отдельные Issue
func (l *loader) collect(section, prefix string, target any, err error) {
	errs := []error{err}
	var agg env.AggregateError
	if errors.As(err, &agg) {
		errs = agg.Errors
	}

	for _, e := range errs {
		var notSet env.EnvVarIsNotSetError
		var parseErr env.ParseError
		switch {
		case errors.As(e, &notSet):
			key := notSet.Key
			if !strings.HasPrefix(key, prefix) {
				key = prefix + key
			}
			l.add(Issue{Kind: IssueMissing, Field: fieldPath(key), Key: key})
		case errors.As(e, &parseErr):
			key := prefix + envTagKey(target, parseErr.Name)
			reason := e.Error()
			if parseErr.Err != nil {
				reason = parseErr.Err.Error()
			}
			l.add(Issue{Kind: IssueInvalid, Field: fieldPath(key), Key: key, Value: l.vars[key], Reason: reason})
		default:
			l.add(Issue{Kind: IssueInvalid, Field: section, Key: prefix + "*", Reason: e.Error()})
		}
	}
}

// envTagKey возвращает имя переменной из тега env для поля структуры
func envTagKey(target any, fieldName string) string {
	t := reflect.TypeOf(target)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	sf, ok := t.FieldByName(fieldName)
	if !ok {
		return strings.ToUpper(fieldName)
	}
	key, _, _ := strings.Cut(sf.Tag.Get("env"), ",")
	return key
}

// provider читает discriminator секции. false, если он не задан.
func (l *loader) provider(section string) (ProviderType, bool) {
	key := sectionPrefix(section) + "PROVIDER"
	value := strings.TrimSpace(l.vars[key])
	if value == "" {
		l.add(Issue{Kind: IssueMissing, Field: fieldPath(key), Key: key})
		return "", false
	}
	return ProviderType(value), true
}

func (l *loader) unknownProvider(section string, value ProviderType, known ...ProviderType) {
	key := sectionPrefix(section) + "PROVIDER"
	names := make([]string, 0, len(known))
	for _, k := range known {
		names = append(names, string(k))
	}
	l.add(Issue{
		Kind:   IssueUnknownProvider,
		Field:  fieldPath(key),
		Key:    key,
		Value:  string(value),
		Reason: "expected one of " + strings.Join(names, ", "),
	})
}

func (l *loader) llm() LLMSettings {
	const section = "llm"
	provider, ok := l.provider(section)
	if !ok {
		return nil
	}
	switch provider {
	case ProviderOpenAI:
		s := &LLMOpenAISettings{}
		l.parse(section, s)
		return s
	default:
		l.unknownProvider(section, provider, ProviderOpenAI)
		return nil
	}
}

func (l *loader) embeddings() EmbeddingsSettings {
	const section = "embeddings"
	provider, ok := l.provider(section)
	if !ok {
		return nil
	}
	switch provider {
	case ProviderOpenAI:
		s := &EmbeddingsOpenAISettings{}
		l.parse(section, s)
		return s
	default:
		l.unknownProvider(section, provider, ProviderOpenAI)
		return nil
	}
}

func (l *loader) vectorStore() VectorStoreSettings {
	const section = "vector_store"
	provider, ok := l.provider(section)
	if !ok {
		return nil
	}
	switch provider {
	case ProviderPGVector:
		s := &PGVectorStoreSettings{}
		l.parse(section, s)
		return s
	default:
		l.unknownProvider(section, provider, ProviderPGVector)
		return nil
	}
}

// validate проверяет значения, которые разобрались по типу, но не имеют смысла
func (l *loader) validate(s *Settings) {
	invalid := func(key, value, reason string) {
		l.add(Issue{Kind: IssueInvalid, Field: fieldPath(key), Key: key, Value: value, Reason: reason})
	}

	if s.API.Port < 1 || s.API.Port > 65535 {
		invalid("API__PORT", fmt.Sprint(s.API.Port), "must be in [1, 65535]")
	}
	if s.API.ShutdownTimeout <= 0 {
		invalid("API__SHUTDOWN_TIMEOUT", s.API.ShutdownTimeout.String(), "must be positive")
	}
	if llm, ok := s.LLM.(*LLMOpenAISettings); ok && (llm.Temperature < 0 || llm.Temperature > 2) {
		invalid("LLM__TEMPERATURE", fmt.Sprint(llm.Temperature), "must be in [0, 2]")
	}
	if strings.TrimSpace(s.Logging.TraceIDHeader) == "" {
		invalid("LOGGING__TRACE_ID_HEADER", s.Logging.TraceIDHeader, "must not be empty")
	}
	if s.Logging.Format != "text" && s.Logging.Format != "json" {
		invalid("LOGGING__FORMAT", s.Logging.Format, "must be one of text, json")
	}
	if s.LLMTracing.SamplingRatio < 0 || s.LLMTracing.SamplingRatio > 1 {
		invalid("LLM_TRACING__SAMPLING_RATIO", fmt.Sprint(s.LLMTracing.SamplingRatio), "must be in [0, 1]")
	}
	if s.ApolloAPI.Timeout <= 0 {
		invalid("APOLLO_API__TIMEOUT", s.ApolloAPI.Timeout.String(), "must be positive")
	}
}
