package utils

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"print-bridge/internal/config"
)

func TestNewLogger_Stdout(t *testing.T) {
	logger, err := NewLogger(&config.LoggingConfig{Level: "debug", Format: "console", Output: "stdout"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	_, err := NewLogger(&config.LoggingConfig{Level: "loud", Output: "stdout"})
	assert.Error(t, err)
}

func TestNewLogger_FileOutputCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "bridge.log")

	logger, err := NewLogger(&config.LoggingConfig{Level: "info", Format: "json", Output: path, MaxSize: 1})
	require.NoError(t, err)

	logger.Info("hello")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"hello"`)
}

func TestOperationLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	ol := NewOperationLogger(zap.New(core), "print_raw", "job-1")

	ol.Start(zap.String("printer", "Kitchen"))
	ol.Progress("downloading", 0.5)
	ol.Error(errors.New("boom"))

	require.Equal(t, 3, logs.Len())
	entries := logs.All()
	assert.Equal(t, "Operation started", entries[0].Message)
	assert.Equal(t, "job-1", entries[0].ContextMap()["operation_id"])
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	assert.Equal(t, false, entries[2].ContextMap()["success"])
}

func TestServiceLogger_LogAPIRequestLevels(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	sl := NewServiceLogger(zap.New(core), "http-server")

	sl.LogAPIRequest("GET", "/health", "test", "127.0.0.1", 200, 0)
	sl.LogAPIRequest("POST", "/api/v1/printers/print", "test", "127.0.0.1", 404, 0)
	sl.LogAPIRequest("POST", "/api/v1/printers/print", "test", "127.0.0.1", 502, 0)

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	assert.Equal(t, "http-server", entries[0].ContextMap()["service"])
}

func TestLoggerFromContext(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	base := zap.New(core)

	ctx := ContextWithRequestID(context.Background(), "req-42")
	assert.Equal(t, "req-42", RequestIDFromContext(ctx))
	LoggerFromContext(ctx, base).Info("tagged")
	LoggerFromContext(context.Background(), base).Info("untagged")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "req-42", entries[0].ContextMap()["request_id"])
	assert.NotContains(t, entries[1].ContextMap(), "request_id")
}
