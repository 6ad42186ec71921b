package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewReturnsUsableLogger(t *testing.T) {
	logger := New(false)
	defer logger.Sync() //nolint:errcheck

	logger.Info("test message")
	logger.Debug("should be suppressed at info level")
}

func TestNewVerboseEnablesDebug(t *testing.T) {
	logger := New(true)
	defer logger.Sync() //nolint:errcheck

	logger.Debug("debug message at verbose level")

	if !logger.Core().Enabled(zapcore.DebugLevel) {
		t.Error("expected debug level to be enabled for a verbose logger")
	}
}

func TestNewLSPWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "modsweep-lsp.log")

	logger := NewLSP(path)
	defer logger.Sync() //nolint:errcheck

	logger.Info("hello")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}

	if !strings.Contains(string(data), "hello") {
		t.Errorf("expected log file to contain the logged message, got %q", data)
	}
}
