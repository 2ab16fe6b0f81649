package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapponejosh/panchang-api/internal/config"
	"github.com/zapponejosh/panchang-api/internal/ephemeris"
	"github.com/zapponejosh/panchang-api/internal/metrics"
	"github.com/zapponejosh/panchang-api/internal/panchang"
)

// =============================================================================
// TEST SETUP HELPERS
// =============================================================================

// fixedNow is 01:30 IST on 2026-01-16.
var fixedNow = time.Date(2026, time.January, 15, 20, 0, 0, 0, time.UTC)

type testEnv struct {
	cfg     *config.Config
	metrics *metrics.Metrics
	router  http.Handler
}

func testConfig() *config.Config {
	return &config.Config{
		Port:             8080,
		Env:              config.EnvDevelopment,
		RequestTimeout:   30 * time.Second,
		DefaultLatitude:  28.6139,
		DefaultLongitude: 77.2090,
		CacheMaxAge:      3600,
		MetricsEnabled:   true,
		LogLevel:         "error",
		LogFormat:        "text",
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// setupTest wires the real engine and ephemeris behind the router.
func setupTest(t *testing.T) *testEnv {
	t.Helper()

	cfg := testConfig()
	m := metrics.New()
	log := quietLogger()
	engine := panchang.NewEngine(ephemeris.NewProvider(), log,
		panchang.WithClock(func() time.Time { return fixedNow }),
		panchang.WithMetrics(m))

	return &testEnv{
		cfg:     cfg,
		metrics: m,
		router:  SetupRoutes(NewHandlers(engine, cfg, log), cfg, m, log),
	}
}

// setupWithCalculator puts a fake engine behind the router.
func setupWithCalculator(t *testing.T, calc Calculator) *testEnv {
	t.Helper()

	cfg := testConfig()
	log := quietLogger()
	return &testEnv{
		cfg:    cfg,
		router: SetupRoutes(NewHandlers(calc, cfg, log), cfg, nil, log),
	}
}

func (e *testEnv) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// envelope mirrors Response with the data left raw.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *ErrorInfo      `json:"error"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), "body: %s", rec.Body.String())
	return env
}

func decodeReport(t *testing.T, rec *httptest.ResponseRecorder) panchang.Report {
	t.Helper()
	env := decode(t, rec)
	require.True(t, env.Success, "body: %s", rec.Body.String())
	var report panchang.Report
	require.NoError(t, json.Unmarshal(env.Data, &report))
	return report
}

// fakeCalculator returns a fixed error and counts calls.
type fakeCalculator struct {
	err   error
	calls atomic.Int32
}

func (f *fakeCalculator) Calculate(_ context.Context, _ panchang.Request) (*panchang.Report, error) {
	f.calls.Add(1)
	return nil, f.err
}

// blockingCalculator waits for the request context to end.
type blockingCalculator struct {
	hadDeadline atomic.Bool
}

func (b *blockingCalculator) Calculate(ctx context.Context, _ panchang.Request) (*panchang.Report, error) {
	_, ok := ctx.Deadline()
	b.hadDeadline.Store(ok)
	<-ctx.Done()
	return nil, ctx.Err()
}

// =============================================================================
// HEALTH
// =============================================================================

func TestHealthCheck(t *testing.T) {
	env := setupTest(t)

	rec := env.get(t, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	body := decode(t, rec)
	assert.True(t, body.Success)
	assert.Contains(t, string(body.Data), `"status":"healthy"`)
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}

// =============================================================================
// PANCHANG
// =============================================================================

func TestGetDatePanchang(t *testing.T) {
	env := setupTest(t)

	rec := env.get(t, "/api/v1/panchang/date/2026-01-16?lat=28.6139&lon=77.2090")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "public, s-maxage=3600", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	report := decodeReport(t, rec)
	assert.Equal(t, "2026-01-16", report.Date)
	assert.Equal(t, "Friday", report.Weekday)
	assert.Equal(t, "IST", report.Location.Timezone)
	assert.Equal(t, 330, report.Location.UTCOffsetMinutes)
	require.NotNil(t, report.SunMoon.Sunrise)
	require.NotNil(t, report.SunMoon.Sunset)
	require.NotNil(t, report.AuspiciousTimes)
	require.NotNil(t, report.InauspiciousTimes)
	assert.Len(t, report.Panchaka, 14)
	assert.True(t, report.CalculatedAt.Equal(fixedNow))
}

func TestGetPanchang_DefaultsLocation(t *testing.T) {
	env := setupTest(t)

	rec := env.get(t, "/api/v1/panchang?date=2026-01-16")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	report := decodeReport(t, rec)
	assert.Equal(t, env.cfg.DefaultLatitude, report.Location.Latitude)
	assert.Equal(t, env.cfg.DefaultLongitude, report.Location.Longitude)

	// Only lon given: lat still defaults.
	rec = env.get(t, "/api/v1/panchang?date=2026-01-16&lon=72.8777")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	report = decodeReport(t, rec)
	assert.Equal(t, env.cfg.DefaultLatitude, report.Location.Latitude)
	assert.Equal(t, 72.8777, report.Location.Longitude)
}

func TestGetTodayPanchang(t *testing.T) {
	env := setupTest(t)

	// 20:00 UTC on the 15th is already the 16th in India but still the 15th
	// in New York.
	tests := []struct {
		name     string
		path     string
		wantDate string
	}{
		{"india", "/api/v1/panchang/today", "2026-01-16"},
		{"new york", "/api/v1/panchang/today?lat=40.7128&lon=-74.0060", "2026-01-15"},
		{"no date on root", "/api/v1/panchang", "2026-01-16"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.get(t, tt.path)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Equal(t, tt.wantDate, decodeReport(t, rec).Date)
		})
	}
}

func TestPanchang_Deterministic(t *testing.T) {
	env := setupTest(t)

	path := "/api/v1/panchang/date/2026-03-03?lat=19.0760&lon=72.8777"
	first := env.get(t, path)
	second := env.get(t, path)
	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, http.StatusOK, second.Code)
	assert.JSONEq(t, first.Body.String(), second.Body.String())
}

func TestPanchang_ValidationErrors(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		wantCode string
	}{
		{"latitude too high", "/api/v1/panchang?lat=95&lon=77", CodeInvalidCoordinates},
		{"longitude too low", "/api/v1/panchang?lat=28&lon=-181", CodeInvalidCoordinates},
		{"latitude not a number", "/api/v1/panchang?lat=north", CodeInvalidCoordinates},
		{"latitude NaN", "/api/v1/panchang?lat=NaN", CodeInvalidCoordinates},
		{"impossible date", "/api/v1/panchang/date/2024-13-45", CodeInvalidDate},
		{"wrong date layout", "/api/v1/panchang?date=16-01-2026", CodeInvalidDate},
		{"coordinates checked on today", "/api/v1/panchang/today?lon=200", CodeInvalidCoordinates},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTest(t)

			rec := env.get(t, tt.path)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusBadRequest, rec.Body.String())
			}

			body := decode(t, rec)
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.wantCode, body.Error.Code)
			assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
		})
	}
}

func TestPanchang_InternalErrorIsGeneric(t *testing.T) {
	calc := &fakeCalculator{err: errors.New("sqrt of negative in moonrise solver")}
	env := setupWithCalculator(t, calc)

	rec := env.get(t, "/api/v1/panchang/date/2026-01-16")
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	body := decode(t, rec)
	require.NotNil(t, body.Error)
	assert.Equal(t, CodeInternal, body.Error.Code)
	assert.NotContains(t, body.Error.Message, "sqrt")
	assert.Empty(t, body.Data, "no partial report on failure")
}

func TestPanchang_InternalErrorIsLogged(t *testing.T) {
	cfg := testConfig()
	var buf bytes.Buffer
	handlers := NewHandlers(&fakeCalculator{err: errors.New("solver diverged")}, cfg,
		slog.New(slog.NewJSONHandler(&buf, nil)))
	router := SetupRoutes(handlers, cfg, nil, quietLogger())

	const id = "9b2c4f0e-3a51-4d7e-8a36-0f1c2d3e4b5a"
	req := httptest.NewRequest(http.MethodGet, "/api/v1/panchang/date/2026-01-16?lat=12.5&lon=77.5", nil)
	req.Header.Set(RequestIDHeader, id)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), "log output: %s", buf.String())
	assert.Equal(t, "failed to calculate panchang", entry["msg"])
	assert.Equal(t, "solver diverged", entry["error"])
	assert.Equal(t, id, entry["request_id"])

	observer, ok := entry["observer"].(map[string]any)
	require.True(t, ok, "observer group missing: %v", entry)
	assert.InDelta(t, 12.5, observer["lat"], 1e-9)
	assert.Equal(t, "2026-01-16", observer["date"])
}

func TestPanchang_InvariantViolationIsInternal(t *testing.T) {
	calc := &fakeCalculator{err: panchang.ErrInvariant}
	env := setupWithCalculator(t, calc)

	rec := env.get(t, "/api/v1/panchang/today")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestPanchang_Timeout(t *testing.T) {
	calc := &fakeCalculator{err: context.DeadlineExceeded}
	env := setupWithCalculator(t, calc)

	rec := env.get(t, "/api/v1/panchang/today")
	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
	assert.Equal(t, CodeTimeout, decode(t, rec).Error.Code)
}

func TestPanchang_RequestDeadline(t *testing.T) {
	cfg := testConfig()
	cfg.RequestTimeout = 50 * time.Millisecond
	calc := &blockingCalculator{}
	router := SetupRoutes(NewHandlers(calc, cfg, quietLogger()), cfg, nil, quietLogger())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/panchang/today", nil))

	assert.True(t, calc.hadDeadline.Load(), "calculation ran without a deadline")
	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	// Exactly one envelope is written.
	dec := json.NewDecoder(rec.Body)
	var env envelope
	require.NoError(t, dec.Decode(&env))
	require.NotNil(t, env.Error)
	assert.Equal(t, CodeTimeout, env.Error.Code)
	assert.False(t, dec.More(), "trailing output after the envelope")
}

func TestTimeoutMiddleware_Disabled(t *testing.T) {
	var hadDeadline bool
	h := TimeoutMiddleware(0)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hadDeadline = r.Context().Deadline()
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, hadDeadline)
}

// =============================================================================
// RANGE
// =============================================================================

func TestGetRangePanchang(t *testing.T) {
	env := setupTest(t)

	rec := env.get(t, "/api/v1/panchang/range?start=2026-01-14&end=2026-01-17&lat=12.9716&lon=77.5946")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "public, s-maxage=3600", rec.Header().Get("Cache-Control"))

	body := decode(t, rec)
	var result RangeResult
	require.NoError(t, json.Unmarshal(body.Data, &result))

	assert.Equal(t, 4, result.Count)
	require.Len(t, result.Reports, 4)
	for i, want := range []string{"2026-01-14", "2026-01-15", "2026-01-16", "2026-01-17"} {
		assert.Equal(t, want, result.Reports[i].Date, "reports must stay in date order")
		assert.Equal(t, 12.9716, result.Reports[i].Location.Latitude)
	}
}

func TestGetRangePanchang_Errors(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		wantCode string
	}{
		{"missing end", "start=2026-01-01", CodeBadRequest},
		{"bad start", "start=2026-1-1&end=2026-01-02", CodeInvalidDate},
		{"bad end", "start=2026-01-01&end=tomorrow", CodeInvalidDate},
		{"reversed", "start=2026-01-05&end=2026-01-01", CodeBadRequest},
		{"too long", "start=2026-01-01&end=2026-02-01", CodeBadRequest},
		{"bad latitude", "start=2026-01-01&end=2026-01-02&lat=-91", CodeInvalidCoordinates},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := &fakeCalculator{}
			env := setupWithCalculator(t, calc)

			rec := env.get(t, "/api/v1/panchang/range?"+tt.query)
			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			assert.Equal(t, tt.wantCode, decode(t, rec).Error.Code)
			assert.Zero(t, calc.calls.Load(), "nothing is calculated for a rejected range")
		})
	}
}

func TestGetRangePanchang_MaxLength(t *testing.T) {
	// 31 days inclusive is allowed.
	env := setupWithCalculator(t, &fakeCalculator{err: errors.New("boom")})
	rec := env.get(t, "/api/v1/panchang/range?start=2026-01-01&end=2026-01-31")
	assert.Equal(t, http.StatusInternalServerError, rec.Code, "range should pass validation and reach the engine")
}

func TestGetRangePanchang_AllOrNothing(t *testing.T) {
	calc := &fakeCalculator{err: errors.New("boom")}
	env := setupWithCalculator(t, calc)

	rec := env.get(t, "/api/v1/panchang/range?start=2026-01-01&end=2026-01-03")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Empty(t, decode(t, rec).Data)
}

// =============================================================================
// ROUTING AND MIDDLEWARE
// =============================================================================

func TestNotFoundUsesEnvelope(t *testing.T) {
	env := setupTest(t)

	rec := env.get(t, "/api/v1/readings/today")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, CodeNotFound, decode(t, rec).Error.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	env := setupTest(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/panchang/today", strings.NewReader("{}"))
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, CodeMethodNotAllowed, decode(t, rec).Error.Code)
}

func TestCORSPreflight(t *testing.T) {
	env := setupTest(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/panchang/today", nil)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodGet)
}

func TestRequestID(t *testing.T) {
	env := setupTest(t)

	t.Run("generated", func(t *testing.T) {
		a := env.get(t, "/health").Header().Get(RequestIDHeader)
		b := env.get(t, "/health").Header().Get(RequestIDHeader)
		assert.Len(t, a, 36)
		assert.NotEqual(t, a, b)
	})

	t.Run("caller uuid kept", func(t *testing.T) {
		const id = "5f2b6c1e-8a3d-4b7e-9c0f-1d2e3f4a5b6c"
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set(RequestIDHeader, id)
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)
		assert.Equal(t, id, rec.Header().Get(RequestIDHeader))
	})

	t.Run("junk replaced", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set(RequestIDHeader, "<script>")
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)
		assert.NotEqual(t, "<script>", rec.Header().Get(RequestIDHeader))
	})
}

func TestRecoveryMiddleware(t *testing.T) {
	h := RecoveryMiddleware(quietLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, CodeInternal, decode(t, rec).Error.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	env := setupTest(t)

	require.Equal(t, http.StatusOK, env.get(t, "/api/v1/panchang/date/2026-01-16").Code)
	require.Equal(t, http.StatusBadRequest, env.get(t, "/api/v1/panchang/date/2026-02-30").Code)

	rec := env.get(t, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "panchang_http_requests_total")

	expected := `
# HELP panchang_calculations_total Panchang calculations by outcome.
# TYPE panchang_calculations_total counter
panchang_calculations_total{outcome="ok"} 1
panchang_calculations_total{outcome="validation_error"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(env.metrics.Registry(),
		strings.NewReader(expected), "panchang_calculations_total"))

	// Route patterns keep the label set bounded.
	assert.Equal(t, 2.0, requestsFor(t, env.metrics, "/api/v1/panchang/date/{date}"))
}

// requestsFor sums panchang_http_requests_total across status codes.
func requestsFor(t *testing.T, m *metrics.Metrics, route string) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)

	var total float64
	for _, mf := range families {
		if mf.GetName() != "panchang_http_requests_total" {
			continue
		}
		for _, metric := range mf.GetMetric() {
			for _, l := range metric.GetLabel() {
				if l.GetName() == "route" && l.GetValue() == route {
					total += metric.GetCounter().GetValue()
				}
			}
		}
	}
	return total
}

func TestMetricsDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.MetricsEnabled = false
	router := SetupRoutes(NewHandlers(&fakeCalculator{}, cfg, quietLogger()), cfg, metrics.New(), quietLogger())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
