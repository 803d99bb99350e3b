package config

import (
	"net/url"

	"go.uber.org/zap"
)

// Log выводит конфигурацию в лог (с маскировкой ключей и паролей)
func (s *Settings) Log(logger *zap.Logger) {
	fields := []zap.Field{
		zap.String("api.addr", s.API.Addr()),
		zap.Duration("api.shutdown_timeout", s.API.ShutdownTimeout),
		zap.String("logging.level", string(s.Logging.Level)),
		zap.String("logging.trace_id_header", s.Logging.TraceIDHeader),
		zap.Bool("llm_tracing.enabled", s.LLMTracing.Enabled),
		zap.String("apollo_api.base_url", s.ApolloAPI.BaseURL),
		zap.String("apollo_api.api_key", maskToken(s.ApolloAPI.APIKey)),
	}

	switch llm := s.LLM.(type) {
	case *LLMOpenAISettings:
		fields = append(fields,
			zap.String("llm.provider", string(llm.Provider())),
			zap.String("llm.model", llm.Model),
			zap.String("llm.api_version", llm.APIVersion),
			zap.String("llm.api_key", maskToken(llm.APIKey)),
			zap.Float64("llm.temperature", llm.Temperature),
		)
	}

	switch emb := s.Embeddings.(type) {
	case *EmbeddingsOpenAISettings:
		fields = append(fields,
			zap.String("embeddings.provider", string(emb.Provider())),
			zap.String("embeddings.model", emb.Model),
			zap.String("embeddings.api_key", maskToken(emb.APIKey)),
		)
	}

	switch vs := s.VectorStore.(type) {
	case *PGVectorStoreSettings:
		fields = append(fields,
			zap.String("vector_store.provider", string(vs.Provider())),
			zap.String("vector_store.connection_string", maskDSN(vs.ConnectionString)),
			zap.String("vector_store.table", vs.SchemaName+"."+vs.TableName),
		)
	}

	logger.Info("Config loaded", fields...)
}

// maskDSN маскирует пароль в DSN для безопасного логирования
func maskDSN(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil || u.User == nil {
		return dsn
	}
	return u.Redacted()
}

// maskToken маскирует токен для безопасного логирования
func maskToken(token string) string {
	if len(token) == 0 {
		return ""
	}
	if len(token) <= 8 {
		return "***"
	}
	return token[:4] + "***" + token[len(token)-4:]
}
