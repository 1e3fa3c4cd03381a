package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

type contextKey struct{}

var loggerKey = contextKey{}

// Level picks the minimum level from the --debug and --verbose flags.
func Level(debug, verbose bool) slog.Level {
	switch {
	case debug:
		return slog.LevelDebug
	case verbose:
		return slog.LevelInfo
	default:
		return slog.LevelWarn
	}
}

// Initialize installs the colored CLI handler writing to w as the default logger.
func Initialize(w io.Writer, debug, verbose bool) *slog.Logger {
	l := slog.New(NewPrettyHandler(w, &slog.HandlerOptions{
		Level:     Level(debug, verbose),
		AddSource: debug,
	}))
	slog.SetDefault(l)
	return l
}

// InitializeFile sends logs to a plain text file. The terminal UI uses it so
// log lines do not corrupt the screen. The returned closer must be called on exit.
func InitializeFile(path string, debug, verbose bool) (*slog.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, err
	}

	l := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{
		Level:     Level(debug, verbose),
		AddSource: debug,
	}))
	slog.SetDefault(l)
	return l, f, nil
}

func FromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

func With(ctx context.Context, args ...any) context.Context {
	l := FromContext(ctx).With(args...)
	return WithLogger(ctx, l)
}

func Debug(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Debug(msg, args...)
}

func Info(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Info(msg, args...)
}

func Warn(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Warn(msg, args...)
}

func Error(ctx context.Context, msg string, err error, args ...any) {
	if err != nil {
		args = append(args, slog.Any("error", err))
	}
	FromContext(ctx).Error(msg, args...)
}
