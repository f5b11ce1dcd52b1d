// Package logutil holds the process-wide zap logger. It is a no-op logger
// until a binary installs one with SetLogger.
package logutil

import (
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger atomic.Pointer[zap.Logger]

func init() {
	logger.Store(zap.NewNop())
}

// Logger returns the current logger.
func Logger() *zap.Logger {
	return logger.Load()
}

// SetLogger installs l as the process logger. A nil l restores the no-op logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger.Store(l)
}

// NewProduction builds the logger binaries install, writing JSON to stderr at
// the given level ("debug", "info", "warn", "error").
func NewProduction(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}
