package logging

import (
	"context"
	"log/slog"
	"strconv"
)

type ctxKey struct{}

var defaultLogger = slog.Default()

// FromContext extracts the logger from context.
// Returns the default logger if no logger is found or ctx is nil.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return defaultLogger
	}

	if logger, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return logger
	}

	return defaultLogger
}

// WithContext stores a logger in the context.
func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// WithBatchID adds a batch run ID to the logger in context.
// Returns a new context with the enriched logger.
func WithBatchID(ctx context.Context, batchID string) context.Context {
	logger := FromContext(ctx).With(slog.String("batch_id", batchID))

	return WithContext(ctx, logger)
}

// WithQuoteIndex adds the quote's file position to the logger in
// context. Returns a new context with the enriched logger.
func WithQuoteIndex(ctx context.Context, index int) context.Context {
	logger := FromContext(ctx).With(slog.String("quote_index", strconv.Itoa(index)))

	return WithContext(ctx, logger)
}

// SetDefault sets the default logger used when no logger is in context.
func SetDefault(logger *slog.Logger) {
	defaultLogger = logger
	slog.SetDefault(logger)
}
