package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger emits structured JSON log lines. Every entry carries the service
// name, hostname, a short machine-readable action, and the request id of
// the operation it belongs to ("startup" outside request handling). The
// timestamp comes from slog's own time field.
type Logger struct {
	service  string
	hostname string
	handler  *slog.Logger
}

func New(service string) *Logger {
	return newLogger(service, os.Stdout)
}

func newLogger(service string, w io.Writer) *Logger {
	hostname, _ := os.Hostname()

	handler := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	return &Logger{
		service:  service,
		hostname: hostname,
		handler:  handler,
	}
}

func (l *Logger) Info(action, requestID, message string) {
	l.log(slog.LevelInfo, action, requestID, message)
}

func (l *Logger) Debug(action, requestID, message string) {
	l.log(slog.LevelDebug, action, requestID, message)
}

func (l *Logger) Error(action, requestID, message string, err error) {
	attrs := l.attrs(action, requestID)
	if err != nil {
		attrs = append(attrs, slog.Group("error", slog.String("msg", err.Error())))
	}
	l.handler.LogAttrs(context.TODO(), slog.LevelError, message, attrs...)
}

func (l *Logger) log(level slog.Level, action, requestID, message string) {
	l.handler.LogAttrs(context.TODO(), level, message, l.attrs(action, requestID)...)
}

func (l *Logger) attrs(action, requestID string) []slog.Attr {
	return []slog.Attr{
		slog.String("service", l.service),
		slog.String("hostname", l.hostname),
		slog.String("action", action),
		slog.String("request_id", requestID),
	}
}
