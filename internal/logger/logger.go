package logger

import (
	"errors"
	"io"
	"log/slog"
	"runtime"
)

var ErrUnknownEnvironment = errors.New("environment can only be dev or prod")

type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type SlogLogger struct {
	logger *slog.Logger
}

// New builds the process logger for env. dev writes human readable text, prod
// writes one JSON object per line. Every record carries the build attributes.
func New(env string, w io.Writer, version string) (*SlogLogger, error) {
	var handler slog.Handler

	switch env {
	case "dev":
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	case "prod":
		handler = slog.NewJSONHandler(w, nil)
	default:
		return nil, ErrUnknownEnvironment
	}

	base := slog.New(handler).With(
		slog.String("app", "library"),
		slog.String("runtime", runtime.Version()),
		slog.String("os", runtime.GOOS),
		slog.String("architecture", runtime.GOARCH),
		slog.String("version", version),
	)

	return NewSlogLogger(base), nil
}

func NewSlogLogger(logger *slog.Logger) *SlogLogger {
	return &SlogLogger{
		logger: logger,
	}
}

// With returns a logger that adds args to every record, e.g. the command name.
func (l *SlogLogger) With(args ...any) *SlogLogger {
	return &SlogLogger{logger: l.logger.With(args...)}
}

func (l *SlogLogger) Info(msg string, args ...any) {
	l.logger.Info(msg, args...)
}

func (l *SlogLogger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, args...)
}

func (l *SlogLogger) Error(msg string, args ...any) {
	l.logger.Error(msg, args...)
}

// Nop discards everything.
type Nop struct{}

func (Nop) Info(msg string, args ...any)  {}
func (Nop) Warn(msg string, args ...any)  {}
func (Nop) Error(msg string, args ...any) {}
