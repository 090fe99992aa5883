// Package logger implements a zerolog-backed application logger with
// printf-style level methods and context-aware variants that pick up the
// correlation ID.
package logger

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"paymux/pkg/correlation"
)

type Logger struct {
	logger zerolog.Logger
}

// New builds a JSON logger writing to stdout. Unknown levels fall back to info.
func New(level string) *Logger {
	zerolog.SetGlobalLevel(parseLevel(level))

	l := zerolog.New(os.Stdout).With().Timestamp().Logger()

	return &Logger{logger: l}
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func (l *Logger) Debug(format string, args ...any) {
	msg(l.logger.Debug(), format, args...)
}

func (l *Logger) Info(format string, args ...any) {
	msg(l.logger.Info(), format, args...)
}

func (l *Logger) Warn(format string, args ...any) {
	msg(l.logger.Warn(), format, args...)
}

func (l *Logger) Error(format string, args ...any) {
	msg(l.logger.Error(), format, args...)
}

// Fatal logs the error and exits the process.
func (l *Logger) Fatal(err error) {
	l.logger.Fatal().Err(err).Msg("fatal error")
}

func (l *Logger) DebugCtx(ctx context.Context, format string, args ...any) {
	msg(l.withCorrelation(ctx, l.logger.Debug()), format, args...)
}

func (l *Logger) InfoCtx(ctx context.Context, format string, args ...any) {
	msg(l.withCorrelation(ctx, l.logger.Info()), format, args...)
}

func (l *Logger) WarnCtx(ctx context.Context, format string, args ...any) {
	msg(l.withCorrelation(ctx, l.logger.Warn()), format, args...)
}

func (l *Logger) ErrorCtx(ctx context.Context, format string, args ...any) {
	msg(l.withCorrelation(ctx, l.logger.Error()), format, args...)
}

func (l *Logger) withCorrelation(ctx context.Context, e *zerolog.Event) *zerolog.Event {
	if corrID := correlation.FromContext(ctx); corrID != "" {
		return e.Str("correlation_id", corrID)
	}
	return e
}

func msg(e *zerolog.Event, format string, args ...any) {
	if len(args) == 0 {
		e.Msg(format)
		return
	}
	e.Msg(fmt.Sprintf(format, args...))
}
