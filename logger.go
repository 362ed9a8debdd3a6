package morpholm

import (
	"context"
	"log/slog"
	"os"

	"github.com/ieee0824/morpholm-go/language"
)

// Logger wraps slog.Logger with scorer-specific helpers.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithStrategy adds the strategy field.
func (l *Logger) WithStrategy(s Strategy) *Logger {
	return &Logger{
		Logger: l.Logger.With("strategy", string(s)),
	}
}

// LogLoad logs the outcome of a model load.
func (l *Logger) LogLoad(ctx context.Context, path string, stats language.LoadStats, err error) {
	if err != nil {
		l.ErrorContext(ctx, "model load failed",
			"path", path,
			"error", err,
		)
		return
	}
	if stats.Skipped > 0 {
		l.WarnContext(ctx, "model loaded with skipped lines",
			"path", path,
			"entries", stats.Entries,
			"skipped", stats.Skipped,
		)
	}
	if !stats.OOV {
		l.WarnContext(ctx, "model has no <unk> entry, using default penalty",
			"path", path,
			"penalty", language.DefaultOOVPenalty,
		)
	}
}

// LogScorer logs the construction of a scorer. The strategy comes from
// WithStrategy.
func (l *Logger) LogScorer(ctx context.Context, cfg Config, modelOrder int) {
	l.InfoContext(ctx, "scorer ready",
		"name", cfg.Name,
		"order", cfg.Order,
		"model_order", modelOrder,
		"marker", cfg.Marker,
		"factor", cfg.Factor,
	)
	if modelOrder > cfg.Order {
		l.WarnContext(ctx, "model holds longer n-grams than the configured order",
			"order", cfg.Order,
			"model_order", modelOrder,
		)
	}
}
