// Package logger provides structured logging using log/slog.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/zapponejosh/panchang-api/internal/config"
)

type contextKey string

const (
	// RequestIDKey is the context key for request IDs
	RequestIDKey contextKey = "request_id"

	locationKey contextKey = "location"
	loggerKey   contextKey = "logger"
)

// ServiceName is attached to every record.
const ServiceName = "panchang-api"

// Setup initializes the global logger based on configuration.
// Call this once at application startup.
func Setup(cfg *config.Config) *slog.Logger {
	logger := New(cfg, os.Stdout)
	slog.SetDefault(logger)
	return logger
}

// New builds a logger writing to w without touching the global default.
func New(cfg *config.Config, w io.Writer) *slog.Logger {
	level := parseLevel(cfg.LogLevel)
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler).With(
		slog.String("service", ServiceName),
		slog.String("env", cfg.Env),
	)
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithRequestID adds a request ID to the logger context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// RequestID extracts the request ID from context.
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}

// location is the observer a request is asking about.
type location struct {
	lat, lon float64
	date     string
}

// WithLocation tags the context with the observer coordinates and date so
// every record for the request carries them.
func WithLocation(ctx context.Context, lat, lon float64, date string) context.Context {
	return context.WithValue(ctx, locationKey, location{lat: lat, lon: lon, date: date})
}

// Attrs returns the request-scoped attributes stored in ctx, ready to pass
// to slog.Logger.With.
func Attrs(ctx context.Context) []any {
	var attrs []any
	if requestID := RequestID(ctx); requestID != "" {
		attrs = append(attrs, slog.String("request_id", requestID))
	}
	if loc, ok := ctx.Value(locationKey).(location); ok {
		group := []any{slog.Float64("lat", loc.lat), slog.Float64("lon", loc.lon)}
		if loc.date != "" {
			group = append(group, slog.String("date", loc.date))
		}
		attrs = append(attrs, slog.Group("observer", group...))
	}
	return attrs
}

// WithLogger scopes l to ctx. Records written through FromContext and the
// helpers below go to the innermost logger set this way.
func WithLogger(ctx context.Context, l *slog.Logger) context.Context {
	if l == nil {
		return ctx
	}
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext returns the logger scoped to ctx, or the default logger, with
// request-scoped attributes attached.
func FromContext(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(loggerKey).(*slog.Logger)
	if !ok {
		logger = slog.Default()
	}
	if attrs := Attrs(ctx); len(attrs) > 0 {
		logger = logger.With(attrs...)
	}
	return logger
}

// Error logs an error with context.
func Error(ctx context.Context, msg string, err error, args ...any) {
	logger := FromContext(ctx)
	allArgs := append([]any{slog.Any("error", err)}, args...)
	logger.ErrorContext(ctx, msg, allArgs...)
}

// Debug logs a debug message with context.
func Debug(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).DebugContext(ctx, msg, args...)
}

// Warn logs a warning message with context.
func Warn(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).WarnContext(ctx, msg, args...)
}
