package logging

import (
	"bytes"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func newBufferLogger(t *testing.T, cfg Config) (*zap.Logger, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	cfg.Output = zapcore.AddSync(buf)
	logger, err := New(cfg)
	require.NoError(t, err)
	return logger, buf
}

func TestNew_TextFormatLine(t *testing.T) {
	logger, buf := newBufferLogger(t, Config{ServiceName: "prospect", Level: "DEBUG"})

	logger.Named("http").With(zap.String(TraceIDKey, "abc-123")).Info("request completed", zap.Int("status", 200))

	line := strings.TrimSpace(buf.String())
	pattern := regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2} INFO \[trace_id=abc-123\] prospect\.http: request completed \{"status":200\}$`)
	assert.Regexp(t, pattern, line)
}

func TestNew_TextFormatWithoutTraceID(t *testing.T) {
	logger, buf := newBufferLogger(t, Config{ServiceName: "prospect"})

	logger.Info("Configure startup dependencies")

	line := strings.TrimSpace(buf.String())
	assert.Contains(t, line, " INFO [trace_id=] prospect: Configure startup dependencies")
	assert.NotContains(t, line, "{}")
}

func TestNew_TraceIDAsEntryField(t *testing.T) {
	logger, buf := newBufferLogger(t, Config{ServiceName: "prospect"})

	logger.Warn("slow upstream", zap.String(TraceIDKey, "xyz"), zap.String("upstream", "apollo"))

	line := strings.TrimSpace(buf.String())
	assert.Contains(t, line, "WARNING [trace_id=xyz] prospect: slow upstream")
	assert.Contains(t, line, `{"upstream":"apollo"}`)
	assert.Equal(t, 1, strings.Count(line, "xyz"))
}

func TestNew_ErrorIncludesStacktrace(t *testing.T) {
	logger, buf := newBufferLogger(t, Config{ServiceName: "prospect"})

	logger.Error("Unhandled exception", zap.Error(errors.New("boom")))

	out := buf.String()
	assert.Contains(t, out, `ERROR [trace_id=] prospect: Unhandled exception {"error":"boom"}`)
	assert.Contains(t, out, "logger_test.go")
}

func TestNew_LevelFiltering(t *testing.T) {
	logger, buf := newBufferLogger(t, Config{ServiceName: "prospect", Level: "warning"})

	logger.Info("hidden")
	logger.Warn("visible")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "visible")
}

func TestNew_JSONFormat(t *testing.T) {
	logger, buf := newBufferLogger(t, Config{ServiceName: "prospect", Format: FormatJSON})

	logger.With(zap.String(TraceIDKey, "abc")).Info("hello")

	out := buf.String()
	assert.Contains(t, out, `"trace_id":"abc"`)
	assert.Contains(t, out, `"logger":"prospect"`)
	assert.Contains(t, out, `"msg":"hello"`)
}

func TestNew_InvalidConfig(t *testing.T) {
	_, err := New(Config{Level: "verbose"})
	assert.Error(t, err)

	_, err = New(Config{Format: "xml"})
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"NOTSET":   zapcore.DebugLevel,
		"DEBUG":    zapcore.DebugLevel,
		"info":     zapcore.InfoLevel,
		"WARNING":  zapcore.WarnLevel,
		"warn":     zapcore.WarnLevel,
		"ERROR":    zapcore.ErrorLevel,
		"CRITICAL": zapcore.DPanicLevel,
	}
	for name, want := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := ParseLevel(name)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}
