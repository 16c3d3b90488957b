// Package logger wraps zap construction behind a level-configurable
// application logger.
package logger

import (
	"go.uber.org/zap"
)

// Logger carries the application zap logger.
type Logger struct {
	Log *zap.Logger
}

// New returns a Logger with a no-op zap instance until Init is called.
func New() *Logger {
	return &Logger{Log: zap.NewNop()}
}

// Init builds the production logger at the given level ("Debug", "Info",
// "Warn", "Error").
func (l *Logger) Init(level string) error {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl

	logger, err := cfg.Build()
	if err != nil {
		return err
	}

	l.Log = logger
	return nil
}
