package log

import (
	"context"

	"go.uber.org/zap"
)

// Logger is the context-aware structured logger used across the service.
// Implementations are safe for concurrent use.
type Logger interface {
	Debug(ctx context.Context, arg ...any)
	Debugf(ctx context.Context, template string, arg ...any)
	Info(ctx context.Context, arg ...any)
	Infof(ctx context.Context, template string, arg ...any)
	Warn(ctx context.Context, arg ...any)
	Warnf(ctx context.Context, template string, arg ...any)
	Error(ctx context.Context, arg ...any)
	Errorf(ctx context.Context, template string, arg ...any)
	Fatal(ctx context.Context, arg ...any)
	Fatalf(ctx context.Context, template string, arg ...any)

	// With returns a child logger that attaches the given key/value pairs
	// to every entry, e.g. With("connection_id", id).
	With(keysAndValues ...any) Logger

	// Sync flushes buffered entries. Call before process exit.
	Sync() error
}

// Init builds a zap-backed Logger from cfg.
func Init(cfg ZapConfig) Logger {
	logger := &zapLogger{cfg: &cfg}
	logger.init()
	return logger
}

// NewNop returns a Logger that discards everything. Handy in tests.
func NewNop() Logger {
	return &zapLogger{cfg: &ZapConfig{}, sugarLogger: zap.NewNop().Sugar()}
}
