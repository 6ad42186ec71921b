// Package logging wraps zap for modsweep's error taxonomy: input errors,
// resolution gaps, structural inconsistencies, and linker misses all flow
// through one structured logger instead of fmt.Printf, reaching for
// go.uber.org/zap over the standard
// library's log package.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the process-wide logger. verbose enables debug-level output,
// which is where resolution gaps are logged — silently tolerated from the
// analysis's point of view, but still worth a trace for someone debugging
// a false negative.
func New(verbose bool) *zap.Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := cfg.Build()
	if err != nil {
		// zap.Config.Build only fails on a malformed config; ours is
		// static, so fall back to a no-op logger rather than panicking a
		// CLI over a logging setup bug.
		return zap.NewNop()
	}

	return logger
}

// NewLSP builds the logger the LSP server uses. LSP diagnostics and
// structured logs would otherwise both compete for stdout, which is
// reserved for the JSON-RPC stream, so this logger writes to the file at
// path instead (created if missing, appended to otherwise). If the file
// cannot be opened it returns a no-op logger.
func NewLSP(path string) *zap.Logger {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zap.NewNop()
	}

	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), zapcore.AddSync(f), zapcore.DebugLevel)

	return zap.New(core)
}
