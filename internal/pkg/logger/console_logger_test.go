//go:build unit
// +build unit

package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/MGTheTrain/pkcs11-spy/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleLogger_LogsToOutput(t *testing.T) {
	var buf bytes.Buffer

	// Create logger with custom output for testing
	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}
	handler := slog.NewTextHandler(&buf, opts)
	logger := &ConsoleLogger{logger: slog.New(handler)}

	// Log messages at different levels
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	// Verify output contains all messages
	output := buf.String()
	assert.Contains(t, output, "info message")
	assert.Contains(t, output, "warn message")
	assert.Contains(t, output, "error message")
}

func TestNewConsoleLogger(t *testing.T) {
	logger := NewConsoleLogger(config.LogLevelInfo)
	require.NotNil(t, logger)

	// Verify it satisfies the Logger interface and doesn't panic
	require.NotPanics(t, func() {
		logger.Info("test")
		logger.Warn("test")
		logger.Error("test")
	})
}

func TestNewConsoleLogger_WritesToGivenWriter(t *testing.T) {
	var buf bytes.Buffer
	logger := newConsoleLogger(config.LogLevelWarning, &buf)

	logger.Info("hidden")
	logger.Warn("module unloaded")

	output := buf.String()
	assert.NotContains(t, output, "hidden")
	assert.Contains(t, output, "module unloaded")
	assert.Contains(t, output, "component=pkcs11-spy")
}

func TestNewNopLogger(t *testing.T) {
	logger := NewNopLogger()
	require.NotPanics(t, func() {
		logger.Info("test")
		logger.Error("test")
	})
}
