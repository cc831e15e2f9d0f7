package clusteval

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/hupe1980/clusteval/evaluate"
)

// Logger wraps slog.Logger with clusteval-specific fields.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger with the given handler.
// If handler is nil, a text handler writing to stderr at info level is used.
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

// NewJSONLogger creates a Logger that writes JSON to stderr.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that writes text to stderr.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all output.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithK adds the cluster count.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// WithDataset adds the dataset shape.
func (l *Logger) WithDataset(points, dimension int) *Logger {
	return &Logger{
		Logger: l.Logger.With("points", points, "dimension", dimension),
	}
}

// LogStage logs the outcome of a pipeline stage.
func (l *Logger) LogStage(ctx context.Context, stage Stage, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "stage failed",
			"stage", stage.String(),
			"duration", duration,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "stage completed",
			"stage", stage.String(),
			"duration", duration,
		)
	}
}

// LogScore logs a computed score.
func (l *Logger) LogScore(ctx context.Context, method string, score evaluate.Score) {
	l.InfoContext(ctx, "score computed",
		"method", method,
		"score", score.String(),
	)
}

// LogKMeans logs the end of a K-means run.
func (l *Logger) LogKMeans(ctx context.Context, iterations int, converged bool) {
	if converged {
		l.DebugContext(ctx, "kmeans converged", "iterations", iterations)
	} else {
		l.WarnContext(ctx, "kmeans hit iteration cap", "iterations", iterations)
	}
}
