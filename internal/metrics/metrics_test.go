package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveRequest(http.MethodGet, "/health", http.StatusOK, time.Millisecond)
		m.ObserveCalculation(OutcomeOK, time.Millisecond)
		m.EphemerisGap("Sun", "Rising")
		m.InvariantViolation()
	})
}

func TestCounters(t *testing.T) {
	m := New()

	m.ObserveCalculation(OutcomeOK, 10*time.Millisecond)
	m.ObserveCalculation(OutcomeOK, 20*time.Millisecond)
	m.ObserveCalculation(OutcomeValidation, time.Millisecond)
	m.EphemerisGap("Moon", "Setting")
	m.InvariantViolation()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.calculations.WithLabelValues(OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.calculations.WithLabelValues(OutcomeValidation)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ephemerisGaps.WithLabelValues("Moon", "Setting")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.invariantViolations))
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveRequest(http.MethodGet, "/api/v1/panchang", http.StatusOK, 5*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	out := string(body)
	if !strings.Contains(out, `panchang_http_requests_total{method="GET",route="/api/v1/panchang",status="200"} 1`) {
		t.Errorf("metrics output missing request counter:\n%s", out)
	}
	if !strings.Contains(out, "go_goroutines") {
		t.Error("metrics output missing Go runtime collector")
	}
}
