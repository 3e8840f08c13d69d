package logger

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Fields map[string]any

var sensitiveKeys = map[string]struct{}{
	"pin":            {},
	"pinhash":        {},
	"pin_hash":       {},
	"transactionpin": {},
	"password":       {},
	"channelkey":     {},
}

var base atomic.Pointer[zap.Logger]

func init() {
	base.Store(zap.NewNop())
}

// Init builds the process logger. An empty level means info.
func Init(level string) error {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "json"
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.DisableStacktrace = true

	if strings.TrimSpace(level) != "" {
		var parsed zapcore.Level
		if err := parsed.Set(strings.TrimSpace(level)); err != nil {
			return fmt.Errorf("invalid log level %q: %w", level, err)
		}
		cfg.Level = zap.NewAtomicLevelAt(parsed)
	}

	built, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}

	SetLogger(built)
	return nil
}

// SetLogger swaps the underlying zap logger. A nil logger disables output.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	base.Store(l)
}

func Sync() {
	_ = base.Load().Sync()
}

func Info(message string, fields Fields) {
	base.Load().Info(message, toZap(fields)...)
}

func Warn(message string, fields Fields) {
	base.Load().Warn(message, toZap(fields)...)
}

func Error(message string, err error, fields Fields) {
	out := toZap(fields)
	if err != nil {
		out = append(out, zap.String("error", err.Error()))
	}

	base.Load().Error(message, out...)
}

func SanitizePayload(payload any) any {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "<unavailable>"
	}

	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return "<unavailable>"
	}

	return sanitizeValue(data)
}

func toZap(fields Fields) []zap.Field {
	if len(fields) == 0 {
		return nil
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		if isSensitiveKey(k) {
			out = append(out, zap.String(k, "******"))
			continue
		}
		out = append(out, zap.Any(k, sanitizeValue(fields[k])))
	}

	return out
}

func sanitizeValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, inner := range typed {
			if isSensitiveKey(key) {
				out[key] = "******"
				continue
			}
			out[key] = sanitizeValue(inner)
		}
		return out
	case Fields:
		return sanitizeValue(map[string]any(typed))
	case []any:
		out := make([]any, 0, len(typed))
		for _, item := range typed {
			out = append(out, sanitizeValue(item))
		}
		return out
	default:
		return value
	}
}

func isSensitiveKey(key string) bool {
	normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(key), "-", ""))
	_, ok := sensitiveKeys[normalized]
	return ok
}
