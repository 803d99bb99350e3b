package logging

import (
	"bytes"
	"time"

	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

var bufferPool = buffer.NewPool()

// textEncoder пишет строку вида
//
//	2006-01-02 15:04:05 INFO [trace_id=abc] prospect.http: message {"key":"value"}
//
// Поле trace_id выносится в префикс, остальные поля кодируются вложенным JSON encoder'ом.
type textEncoder struct {
	zapcore.Encoder
	traceID string
}

func newTextEncoder() *textEncoder {
	// все служебные ключи пустые: вложенный encoder пишет только поля
	return &textEncoder{
		Encoder: zapcore.NewJSONEncoder(zapcore.EncoderConfig{
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
		}),
	}
}

// AddString перехватывает trace_id, добавленный через logger.With
func (e *textEncoder) AddString(key, value string) {
	if key == TraceIDKey {
		e.traceID = value
		return
	}
	e.Encoder.AddString(key, value)
}

func (e *textEncoder) Clone() zapcore.Encoder {
	return &textEncoder{
		Encoder: e.Encoder.Clone(),
		traceID: e.traceID,
	}
}

func (e *textEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	traceID := e.traceID
	rest := make([]zapcore.Field, 0, len(fields))
	for _, f := range fields {
		if f.Key == TraceIDKey && f.Type == zapcore.StringType {
			traceID = f.String
			continue
		}
		rest = append(rest, f)
	}

	structured, err := e.Encoder.EncodeEntry(zapcore.Entry{}, rest)
	if err != nil {
		return nil, err
	}
	defer structured.Free()

	line := bufferPool.Get()
	line.AppendString(ent.Time.Format(time.DateTime))
	line.AppendByte(' ')
	line.AppendString(levelName(ent.Level))
	line.AppendString(" [trace_id=")
	line.AppendString(traceID)
	line.AppendString("] ")
	line.AppendString(ent.LoggerName)
	line.AppendString(": ")
	line.AppendString(ent.Message)

	if fieldsJSON := bytes.TrimSpace(structured.Bytes()); len(fieldsJSON) > 0 && string(fieldsJSON) != "{}" {
		line.AppendByte(' ')
		_, _ = line.Write(fieldsJSON)
	}
	if ent.Stack != "" {
		line.AppendByte('\n')
		line.AppendString(ent.Stack)
	}
	line.AppendString(zapcore.DefaultLineEnding)
	return line, nil
}

func levelName(l zapcore.Level) string {
	switch l {
	case zapcore.DebugLevel:
		return "DEBUG"
	case zapcore.InfoLevel:
		return "INFO"
	case zapcore.WarnLevel:
		return "WARNING"
	case zapcore.ErrorLevel:
		return "ERROR"
	default:
		return "CRITICAL"
	}
}
