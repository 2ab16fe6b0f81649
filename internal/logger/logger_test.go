package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapponejosh/panchang-api/internal/config"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(&config.Config{Env: config.EnvStaging, LogLevel: "info", LogFormat: "json"}, &buf)

	l.Debug("hidden")
	l.Info("shown", slog.Int("n", 3))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "shown", rec["msg"])
	assert.Equal(t, ServiceName, rec["service"])
	assert.Equal(t, "staging", rec["env"])
	assert.EqualValues(t, 3, rec["n"])
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"loud", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRequestID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, RequestID(ctx))

	ctx = WithRequestID(ctx, "abc-123")
	assert.Equal(t, "abc-123", RequestID(ctx))
}

func TestFromContext_Attributes(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(New(&config.Config{LogLevel: "debug", LogFormat: "json"}, &buf))
	defer slog.SetDefault(prev)

	ctx := WithRequestID(context.Background(), "req-1")
	ctx = WithLocation(ctx, 28.6139, 77.209, "2026-01-16")
	Error(ctx, "calculation failed", errors.New("boom"))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "req-1", rec["request_id"])
	assert.Equal(t, "boom", rec["error"])

	observer, ok := rec["observer"].(map[string]any)
	require.True(t, ok, "observer group missing: %v", rec)
	assert.InDelta(t, 28.6139, observer["lat"], 1e-9)
	assert.Equal(t, "2026-01-16", observer["date"])
}

func TestFromContext_ScopedLogger(t *testing.T) {
	var global, scoped bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(New(&config.Config{LogLevel: "debug", LogFormat: "json"}, &global))
	defer slog.SetDefault(prev)

	ctx := WithRequestID(context.Background(), "req-2")
	Warn(ctx, "to default")
	assert.Contains(t, global.String(), "to default")

	ctx = WithLogger(ctx, New(&config.Config{LogLevel: "debug", LogFormat: "json"}, &scoped))
	Debug(ctx, "to scoped", slog.String("body", "moon"))

	assert.NotContains(t, global.String(), "to scoped")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(scoped.Bytes(), &rec))
	assert.Equal(t, "to scoped", rec["msg"])
	assert.Equal(t, "req-2", rec["request_id"])
	assert.Equal(t, "moon", rec["body"])

	// A nil logger leaves the context unchanged.
	assert.Equal(t, ctx, WithLogger(ctx, nil))
}
