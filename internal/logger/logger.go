package logger

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/lmittmann/tint"
)

type Logger = *slog.Logger

func NewLogger(level slog.Level) Logger {
	return slog.New(newTintHandler(level))
}

// NewLoggerWithSentry initialises the Sentry SDK and returns a logger that
// reports error-level records to it. Call sentry.Flush before exiting.
func NewLoggerWithSentry(level slog.Level, dsn, release string) (Logger, error) {
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Release:          release,
		AttachStacktrace: true,
	})
	if err != nil {
		return nil, fmt.Errorf("init sentry: %w", err)
	}
	return slog.New(NewSentryHandler(newTintHandler(level))), nil
}

func newTintHandler(level slog.Level) slog.Handler {
	return tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
	})
}
