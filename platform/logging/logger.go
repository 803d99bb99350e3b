package logging

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// TraceIDKey имя поля, в котором логируется correlation id запроса
const TraceIDKey = "trace_id"

const (
	// FormatText строковый формат: "<ts> <LEVEL> [trace_id=<id>] <logger>: <msg> {fields}"
	FormatText = "text"
	// FormatJSON структурированный JSON (для сбора логов)
	FormatJSON = "json"
)

// Config содержит конфигурацию для создания logger
type Config struct {
	// ServiceName имя корневого logger'а
	ServiceName string
	// Level уровень логирования: NOTSET/DEBUG/INFO/WARNING/ERROR/CRITICAL
	// (регистр не важен, также принимаются debug/info/warn/error), default "INFO"
	Level string
	// Format формат вывода ("text"|"json"), default "text"
	Format string
	// AddCaller добавлять ли информацию о вызывающем коде (только для json)
	AddCaller bool
	// Output куда писать логи, default os.Stdout
	Output zapcore.WriteSyncer
}

// New создаёт новый zap.Logger с указанной конфигурацией.
// Ошибки уровня error и выше пишутся со stacktrace.
func New(cfg Config) (*zap.Logger, error) {
	if cfg.Level == "" {
		cfg.Level = "INFO"
	}
	if cfg.Format == "" {
		cfg.Format = FormatText
	}
	if cfg.Output == nil {
		cfg.Output = zapcore.Lock(os.Stdout)
	}

	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	var encoder zapcore.Encoder
	switch cfg.Format {
	case FormatText:
		encoder = newTextEncoder()
	case FormatJSON:
		encoder = zapcore.NewJSONEncoder(zapcore.EncoderConfig{
			TimeKey:        "ts",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			MessageKey:     "msg",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
			EncodeDuration: zapcore.SecondsDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		})
	default:
		return nil, fmt.Errorf("invalid log format: %s (must be text/json)", cfg.Format)
	}

	core := zapcore.NewCore(encoder, cfg.Output, level)

	opts := []zap.Option{zap.AddStacktrace(zapcore.ErrorLevel)}
	if cfg.AddCaller && cfg.Format == FormatJSON {
		opts = append(opts, zap.AddCaller())
	}

	logger := zap.New(core, opts...)
	if cfg.ServiceName != "" {
		logger = logger.Named(cfg.ServiceName)
	}
	return logger, nil
}

// ParseLevel переводит имя уровня в zapcore.Level.
// CRITICAL соответствует DPanic: выше error в zap только panic/fatal.
func ParseLevel(name string) (zapcore.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "NOTSET", "DEBUG":
		return zapcore.DebugLevel, nil
	case "INFO":
		return zapcore.InfoLevel, nil
	case "WARNING", "WARN":
		return zapcore.WarnLevel, nil
	case "ERROR":
		return zapcore.ErrorLevel, nil
	case "CRITICAL":
		return zapcore.DPanicLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("invalid log level: %s (must be NOTSET/DEBUG/INFO/WARNING/ERROR/CRITICAL)", name)
	}
}

// Sync безопасно вызывает log.Sync(), игнорируя harmless ошибки
// (например, "sync /dev/stdout: invalid argument" на некоторых системах)
func Sync(log *zap.Logger) {
	_ = log.Sync()
}
