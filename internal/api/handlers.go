package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/zapponejosh/panchang-api/internal/calendar"
	"github.com/zapponejosh/panchang-api/internal/config"
	"github.com/zapponejosh/panchang-api/internal/logger"
	"github.com/zapponejosh/panchang-api/internal/panchang"
)

// MaxRangeDays bounds GET /api/v1/panchang/range, inclusive of both ends.
const MaxRangeDays = 31

// rangeWorkers caps concurrent calculations for one range request.
const rangeWorkers = 4

// Calculator produces a report for one date and place.
type Calculator interface {
	Calculate(ctx context.Context, req panchang.Request) (*panchang.Report, error)
}

// Handlers contains all HTTP handlers and their dependencies.
type Handlers struct {
	engine  Calculator
	cfg     *config.Config
	logger  *slog.Logger
	started time.Time
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(engine Calculator, cfg *config.Config, log *slog.Logger) *Handlers {
	if log == nil {
		log = slog.Default()
	}
	return &Handlers{
		engine:  engine,
		cfg:     cfg,
		logger:  log,
		started: time.Now(),
	}
}

// RangeResult is the data payload of the range endpoint.
type RangeResult struct {
	Start   string             `json:"start"`
	End     string             `json:"end"`
	Count   int                `json:"count"`
	Reports []*panchang.Report `json:"reports"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, map[string]string{
		"status": "healthy",
		"uptime": time.Since(h.started).Truncate(time.Second).String(),
	})
}

// GetPanchang handles GET /api/v1/panchang?lat=&lon=&date=
func (h *Handlers) GetPanchang(w http.ResponseWriter, r *http.Request) {
	h.serveReport(w, r, r.URL.Query().Get("date"))
}

// GetTodayPanchang handles GET /api/v1/panchang/today
func (h *Handlers) GetTodayPanchang(w http.ResponseWriter, r *http.Request) {
	h.serveReport(w, r, "")
}

// GetDatePanchang handles GET /api/v1/panchang/date/{YYYY-MM-DD}
func (h *Handlers) GetDatePanchang(w http.ResponseWriter, r *http.Request) {
	h.serveReport(w, r, chi.URLParam(r, "date"))
}

func (h *Handlers) serveReport(w http.ResponseWriter, r *http.Request, date string) {
	lat, lon, err := h.parseLocation(r)
	if err != nil {
		h.writeCalculationError(w, r, err)
		return
	}

	ctx := logger.WithLocation(r.Context(), lat, lon, date)
	report, err := h.engine.Calculate(ctx, panchang.Request{
		Latitude:  lat,
		Longitude: lon,
		Date:      date,
	})
	if err != nil {
		h.writeCalculationError(w, r.WithContext(ctx), err)
		return
	}

	h.setCacheHeaders(w)
	WriteSuccess(w, report)
}

// GetRangePanchang handles GET /api/v1/panchang/range?start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *Handlers) GetRangePanchang(w http.ResponseWriter, r *http.Request) {
	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")

	if startStr == "" || endStr == "" {
		WriteBadRequest(w, "Both start and end date parameters are required")
		return
	}

	startDate, err := calendar.ParseDateString(startStr)
	if err != nil {
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("Invalid start date format: %s. Use YYYY-MM-DD", startStr), CodeInvalidDate)
		return
	}
	endDate, err := calendar.ParseDateString(endStr)
	if err != nil {
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("Invalid end date format: %s. Use YYYY-MM-DD", endStr), CodeInvalidDate)
		return
	}

	if startDate.After(endDate) {
		WriteBadRequest(w, "Start date must be before or equal to end date")
		return
	}

	days := int(endDate.Sub(startDate).Hours()/24) + 1
	if days > MaxRangeDays {
		WriteBadRequest(w, fmt.Sprintf("Date range cannot exceed %d days", MaxRangeDays))
		return
	}

	lat, lon, err := h.parseLocation(r)
	if err != nil {
		h.writeCalculationError(w, r, err)
		return
	}

	reports := make([]*panchang.Report, days)
	g, ctx := errgroup.WithContext(r.Context())
	g.SetLimit(rangeWorkers)

	for i := range days {
		date := calendar.FormatDate(startDate.AddDate(0, 0, i))
		g.Go(func() error {
			report, err := h.engine.Calculate(logger.WithLocation(ctx, lat, lon, date), panchang.Request{
				Latitude:  lat,
				Longitude: lon,
				Date:      date,
			})
			if err != nil {
				return fmt.Errorf("calculate %s: %w", date, err)
			}
			reports[i] = report
			return nil
		})
	}

	// A range is all or nothing.
	if err := g.Wait(); err != nil {
		h.writeCalculationError(w, r, err)
		return
	}

	h.setCacheHeaders(w)
	WriteSuccess(w, RangeResult{
		Start:   startStr,
		End:     endStr,
		Count:   days,
		Reports: reports,
	})
}

// parseLocation reads lat and lon, each falling back to the configured
// default when absent.
func (h *Handlers) parseLocation(r *http.Request) (lat, lon float64, err error) {
	q := r.URL.Query()

	lat, err = parseCoordinate(q.Get("lat"), h.cfg.DefaultLatitude)
	if err != nil {
		return 0, 0, err
	}
	lon, err = parseCoordinate(q.Get("lon"), h.cfg.DefaultLongitude)
	if err != nil {
		return 0, 0, err
	}
	return lat, lon, panchang.ValidateCoordinates(lat, lon)
}

func parseCoordinate(raw string, fallback float64) (float64, error) {
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", panchang.ErrInvalidCoordinates, raw)
	}
	return v, nil
}

// writeCalculationError maps engine errors onto the response envelope.
// Internal details are logged, never returned.
func (h *Handlers) writeCalculationError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := logger.WithLogger(r.Context(), h.logger)

	switch {
	case errors.Is(err, panchang.ErrInvalidCoordinates):
		WriteError(w, http.StatusBadRequest,
			"Invalid coordinates: latitude must be within [-90, 90] and longitude within [-180, 180]",
			CodeInvalidCoordinates)
	case errors.Is(err, panchang.ErrInvalidDate):
		WriteError(w, http.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD", CodeInvalidDate)
	case errors.Is(err, context.DeadlineExceeded):
		logger.Warn(ctx, "panchang calculation timed out", slog.Any("error", err))
		WriteError(w, http.StatusGatewayTimeout, "Calculation timed out", CodeTimeout)
	case errors.Is(err, context.Canceled):
		logger.Debug(ctx, "client went away", slog.Any("error", err))
	default:
		logger.Error(ctx, "failed to calculate panchang", err)
		WriteInternalError(w, "Failed to calculate panchang")
	}
}

func (h *Handlers) setCacheHeaders(w http.ResponseWriter) {
	if h.cfg.CacheMaxAge > 0 {
		w.Header().Set("Cache-Control", fmt.Sprintf("public, s-maxage=%d", h.cfg.CacheMaxAge))
	}
}
