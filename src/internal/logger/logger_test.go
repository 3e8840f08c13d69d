package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observe(t *testing.T) *observer.ObservedLogs {
	t.Helper()

	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(nil) })

	return logs
}

func TestInfoMasksPinField(t *testing.T) {
	logs := observe(t)

	Info("session login request", Fields{"pin": "1234", "phase": "Authenticating"})

	require.Equal(t, 1, logs.Len())
	ctx := logs.All()[0].ContextMap()
	assert.Equal(t, "******", ctx["pin"])
	assert.Equal(t, "Authenticating", ctx["phase"])
}

func TestErrorAppendsErrorField(t *testing.T) {
	logs := observe(t)

	Error("account service lookup failed", errors.New("boom"), nil)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.ErrorLevel, entry.Level)
	assert.Equal(t, "boom", entry.ContextMap()["error"])
}

func TestSanitizePayloadMasksNestedKeys(t *testing.T) {
	payload := map[string]any{
		"value": "12",
		"login": map[string]any{"Pin": "4321"},
	}

	sanitized, ok := SanitizePayload(payload).(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "12", sanitized["value"])
	assert.Equal(t, map[string]any{"Pin": "******"}, sanitized["login"])
}

func TestInitRejectsUnknownLevel(t *testing.T) {
	err := Init("loud")
	assert.Error(t, err)
}
