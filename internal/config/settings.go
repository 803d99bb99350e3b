package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// Settings содержит конфигурацию сервиса.
// Создаётся один раз при старте (см. Load) и дальше только читается.
type Settings struct {
	API         APISettings
	LLM         LLMSettings
	Embeddings  EmbeddingsSettings
	VectorStore VectorStoreSettings
	Logging     LoggingSettings
	LLMTracing  LLMTracingSettings
	ApolloAPI   ApolloAPISettings
}

// APISettings настройки HTTP сервера (API__*)
type APISettings struct {
	Host            string        `env:"HOST" envDefault:"0.0.0.0"`
	Port            int           `env:"PORT" envDefault:"5000"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// ProviderType значение discriminator-поля provider
type ProviderType string

const (
	// ProviderOpenAI OpenAI (LLM и embeddings)
	ProviderOpenAI ProviderType = "OPENAI"
	// ProviderPGVector PostgreSQL + pgvector (vector store)
	ProviderPGVector ProviderType = "PG_VECTOR"
)

// LLMSettings настройки LLM провайдера (LLM__*).
// Закрытое множество вариантов: *LLMOpenAISettings.
type LLMSettings interface {
	Provider() ProviderType
	isLLMSettings()
}

// LLMOpenAISettings вариант LLM__PROVIDER=OPENAI
type LLMOpenAISettings struct {
	APIKey      string  `env:"API_KEY,required"`
	APIVersion  string  `env:"API_VERSION,required"`
	Model       string  `env:"MODEL,required"`
	BaseURL     string  `env:"BASE_URL"`
	Temperature float64 `env:"TEMPERATURE" envDefault:"0.7"`
}

func (*LLMOpenAISettings) Provider() ProviderType { return ProviderOpenAI }
func (*LLMOpenAISettings) isLLMSettings()         {}

// EmbeddingsSettings настройки провайдера embeddings (EMBEDDINGS__*).
// Закрытое множество вариантов: *EmbeddingsOpenAISettings.
type EmbeddingsSettings interface {
	Provider() ProviderType
	isEmbeddingsSettings()
}

// EmbeddingsOpenAISettings вариант EMBEDDINGS__PROVIDER=OPENAI
type EmbeddingsOpenAISettings struct {
	APIKey     string `env:"API_KEY,required"`
	APIVersion string `env:"API_VERSION,required"`
	Model      string `env:"MODEL,required"`
	BaseURL    string `env:"BASE_URL"`
}

func (*EmbeddingsOpenAISettings) Provider() ProviderType { return ProviderOpenAI }
func (*EmbeddingsOpenAISettings) isEmbeddingsSettings()  {}

// VectorStoreSettings настройки vector store (VECTOR_STORE__*).
// Закрытое множество вариантов: *PGVectorStoreSettings.
type VectorStoreSettings interface {
	Provider() ProviderType
	isVectorStoreSettings()
}

// PGVectorStoreSettings вариант VECTOR_STORE__PROVIDER=PG_VECTOR
type PGVectorStoreSettings struct {
	ConnectionString   string `env:"CONNECTION_STRING,required"`
	SchemaName         string `env:"SCHEMA_NAME,required"`
	TableName          string `env:"TABLE_NAME,required"`
	IDColumn           string `env:"ID_COLUMN,required"`
	MetadataJSONColumn string `env:"METADATA_JSON_COLUMN,required"`
}

func (*PGVectorStoreSettings) Provider() ProviderType { return ProviderPGVector }
func (*PGVectorStoreSettings) isVectorStoreSettings()  {}

// LogLevel уровень логирования в терминах NOTSET..CRITICAL
type LogLevel string

const (
	LogLevelNotSet   LogLevel = "NOTSET"
	LogLevelDebug    LogLevel = "DEBUG"
	LogLevelInfo     LogLevel = "INFO"
	LogLevelWarning  LogLevel = "WARNING"
	LogLevelError    LogLevel = "ERROR"
	LogLevelCritical LogLevel = "CRITICAL"
)

var logLevels = []LogLevel{LogLevelNotSet, LogLevelDebug, LogLevelInfo, LogLevelWarning, LogLevelError, LogLevelCritical}

// UnmarshalText вызывается caarlos0/env при разборе LOGGING__LEVEL
func (l *LogLevel) UnmarshalText(text []byte) error {
	value := LogLevel(strings.ToUpper(strings.TrimSpace(string(text))))
	for _, known := range logLevels {
		if value == known {
			*l = value
			return nil
		}
	}
	names := make([]string, 0, len(logLevels))
	for _, known := range logLevels {
		names = append(names, string(known))
	}
	return fmt.Errorf("must be one of %s", strings.Join(names, ", "))
}

// LoggingSettings настройки логирования (LOGGING__*)
type LoggingSettings struct {
	Level         LogLevel `env:"LEVEL" envDefault:"INFO"`
	TraceIDHeader string   `env:"TRACE_ID_HEADER" envDefault:"X-Request-Id"`
	Format        string   `env:"FORMAT" envDefault:"text"`
}

// LLMTracingSettings настройки трассировки (LLM_TRACING__*)
type LLMTracingSettings struct {
	Enabled       bool    `env:"ENABLED" envDefault:"false"`
	OTLPEndpoint  string  `env:"OTLP_ENDPOINT" envDefault:"127.0.0.1:4317"`
	SamplingRatio float64 `env:"SAMPLING_RATIO" envDefault:"1.0"`
	ServiceName   string  `env:"SERVICE_NAME" envDefault:"prospect-acquisition-agent"`
}

// ApolloAPISettings настройки клиента Apollo (APOLLO_API__*)
type ApolloAPISettings struct {
	APIKey  string        `env:"API_KEY,required"`
	BaseURL string        `env:"BASE_URL" envDefault:"https://api.apollo.io/api/v1/"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"30s"`
}

// Addr возвращает адрес для http.Server
func (a APISettings) Addr() string {
	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}
