package logging

import (
	"context"

	"github.com/charmbracelet/log"
)

type loggerKey struct{}

// WithLogger attaches logger to ctx. A nil ctx starts from Background.
func WithLogger(ctx context.Context, logger *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the logger attached to ctx, or Default.
func FromContext(ctx context.Context) *log.Logger {
	if ctx != nil {
		if logger, _ := ctx.Value(loggerKey{}).(*log.Logger); logger != nil {
			return logger
		}
	}
	return Default()
}

// WithFields attaches a child of the ctx logger that adds keyvals to
// every entry, e.g. the file a worker is processing.
func WithFields(ctx context.Context, keyvals ...any) context.Context {
	return WithLogger(ctx, FromContext(ctx).With(keyvals...))
}
