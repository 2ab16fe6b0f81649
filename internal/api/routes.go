package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/zapponejosh/panchang-api/internal/config"
	"github.com/zapponejosh/panchang-api/internal/metrics"
)

// SetupRoutes configures all HTTP routes and returns the router.
//
// Route structure:
//
//	GET /health
//	GET /metrics                              Prometheus exposition, when enabled
//	GET /api/v1/panchang?lat=&lon=&date=      date defaults to today at the location
//	GET /api/v1/panchang/today?lat=&lon=
//	GET /api/v1/panchang/date/{date}?lat=&lon=
//	GET /api/v1/panchang/range?start=&end=&lat=&lon=
//
// lat and lon default to the configured location.
func SetupRoutes(handlers *Handlers, cfg *config.Config, m *metrics.Metrics, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Outermost first. The request id must be set before anything logs.
	stack := ChainMiddleware(
		RecoveryMiddleware(logger),
		RequestIDMiddleware(),
		LoggingMiddleware(logger),
		MetricsMiddleware(m),
		CORSMiddleware(),
		TimeoutMiddleware(cfg.RequestTimeout),
	)
	r.Use(middleware.RealIP, stack)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteNotFound(w, "No route for "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, "Method "+r.Method+" not allowed", CodeMethodNotAllowed)
	})

	// ==========================================================================
	// Operational
	// ==========================================================================
	r.Get("/health", handlers.HealthCheck)
	if cfg.MetricsEnabled && m != nil {
		r.Method(http.MethodGet, "/metrics", m.Handler())
	}

	// ==========================================================================
	// Panchang
	// ==========================================================================
	r.Route("/api/v1/panchang", func(r chi.Router) {
		r.Get("/", handlers.GetPanchang)
		r.Get("/today", handlers.GetTodayPanchang)
		r.Get("/date/{date}", handlers.GetDatePanchang)
		r.Get("/range", handlers.GetRangePanchang)
	})

	return r
}
