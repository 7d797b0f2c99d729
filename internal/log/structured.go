package log

import (
	"context"
	"log/slog"
	"net/http"
)

type contextKey string

const loggerContextKey contextKey = "logger"

// NewContext returns ctx carrying logger.
func NewContext(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey, logger)
}

// FromContext returns the request logger, or one over slog.Default.
func FromContext(ctx context.Context) *Logger {
	if logger, ok := ctx.Value(loggerContextKey).(*Logger); ok {
		return logger
	}
	return &Logger{Logger: slog.Default(), component: "unknown"}
}

// StructuredLogger writes the dashboard's recurring log events.
type StructuredLogger struct {
	logger *Logger
}

func NewStructuredLogger(logger *Logger) *StructuredLogger {
	return &StructuredLogger{logger: logger}
}

// LogHTTPEnd logs a finished request at a level derived from its status.
func (sl *StructuredLogger) LogHTTPEnd(ctx context.Context, r *http.Request, statusCode int, durationMs int64, clientIP string) {
	level := slog.LevelInfo
	switch {
	case statusCode >= 500:
		level = slog.LevelError
	case statusCode >= 400:
		level = slog.LevelWarn
	}
	fields := NewFields().
		WithHTTPRequest(r.Method, r.URL.Path, r.URL.RawQuery, r.Header.Get("User-Agent")).
		WithHTTPResponse(statusCode, durationMs).
		WithClientIP(clientIP)
	sl.logger.WithComponent(ComponentHTTP).Log(ctx, level, "HTTP request completed", fields.ToSlice()...)
}

// LogDatasetLoaded records which backend produced the dataset and its size.
func (sl *StructuredLogger) LogDatasetLoaded(ctx context.Context, backend string, apiaries, hives, harvests, tasks int) {
	fields := NewFields().
		WithDatasetCounts(apiaries, hives, harvests, tasks).
		WithOperation(OpLoad)
	fields[FieldBackend] = backend
	sl.logger.WithComponent(ComponentDataset).InfoContext(ctx, "Dataset loaded", fields.ToSlice()...)
}

// LogTransition records a UI state change.
func (sl *StructuredLogger) LogTransition(ctx context.Context, event, tab string, dialogOpen bool) {
	fields := NewFields().
		WithViewState(tab, dialogOpen).
		WithOperation(OpTransition)
	fields[FieldEvent] = event
	sl.logger.WithComponent(ComponentView).DebugContext(ctx, "View state changed", fields.ToSlice()...)
}

func (sl *StructuredLogger) LogError(ctx context.Context, msg string, err error, component, operation string) {
	fields := NewFields().WithError(err).WithOperation(operation)
	sl.logger.WithComponent(component).ErrorContext(ctx, msg, fields.ToSlice()...)
}
