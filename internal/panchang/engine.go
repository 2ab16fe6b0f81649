// Package panchang computes the Vedic calendar report for a civil date and
// location: the five limbs (tithi, nakshatra, yoga, karana, weekday), the
// auspicious and inauspicious windows of the day, and the derived summary.
package panchang

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/zapponejosh/panchang-api/internal/calendar"
	"github.com/zapponejosh/panchang-api/internal/ephemeris"
	"github.com/zapponejosh/panchang-api/internal/logger"
	"github.com/zapponejosh/panchang-api/internal/metrics"
)

// Ephemeris supplies solar and lunar positions and rise/set instants.
type Ephemeris interface {
	Positions(ctx context.Context, t time.Time, obs ephemeris.Observer) (ephemeris.Positions, error)
	RiseSet(ctx context.Context, body ephemeris.Body, dir ephemeris.Direction, t time.Time, obs ephemeris.Observer) (time.Time, bool, error)
}

// Request selects the date and place of a report.
type Request struct {
	Latitude  float64
	Longitude float64
	Date      string // YYYY-MM-DD; empty means today at the location
}

// Engine computes reports. It holds no per-request state and is safe for
// concurrent use.
type Engine struct {
	eph     Ephemeris
	logger  *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces time.Now, which feeds CalculatedAt and the default date.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithMetrics records calculation outcomes.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// NewEngine creates an engine backed by eph.
func NewEngine(eph Ephemeris, log *slog.Logger, opts ...Option) *Engine {
	if log == nil {
		log = slog.Default()
	}
	e := &Engine{
		eph:    eph,
		logger: log,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ValidateCoordinates rejects non-finite or out-of-range coordinates.
func ValidateCoordinates(lat, lon float64) error {
	if math.IsNaN(lat) || math.IsNaN(lon) || math.IsInf(lat, 0) || math.IsInf(lon, 0) ||
		lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return fmt.Errorf("%w: latitude %v, longitude %v", ErrInvalidCoordinates, lat, lon)
	}
	return nil
}

// Calculate builds the report for req. Validation failures return before
// any ephemeris call. Either a complete report or an error is returned.
func (e *Engine) Calculate(ctx context.Context, req Request) (*Report, error) {
	started := time.Now()
	ctx = logger.WithLogger(ctx, e.logger)

	report, err := e.calculate(ctx, req)

	outcome := metrics.OutcomeOK
	switch {
	case err == nil:
	case IsValidation(err):
		outcome = metrics.OutcomeValidation
	case errors.Is(err, ErrInvariant):
		outcome = metrics.OutcomeInvariant
		e.metrics.InvariantViolation()
		logger.Error(ctx, "panchang invariant violated", err,
			slog.Float64("latitude", req.Latitude),
			slog.Float64("longitude", req.Longitude),
			slog.String("date", req.Date))
	default:
		outcome = metrics.OutcomeError
	}
	e.metrics.ObserveCalculation(outcome, time.Since(started))

	return report, err
}

func (e *Engine) calculate(ctx context.Context, req Request) (*Report, error) {
	if err := ValidateCoordinates(req.Latitude, req.Longitude); err != nil {
		return nil, err
	}

	norm := calendar.NewNormalizer(req.Latitude, req.Longitude)

	var date time.Time
	if req.Date == "" {
		date = norm.Today(e.now())
	} else {
		d, err := calendar.ParseDateString(req.Date)
		if err != nil {
			return nil, err
		}
		date = d
	}

	obs := ephemeris.Observer{Latitude: req.Latitude, Longitude: req.Longitude}
	midnight := norm.Midnight(date)

	sky, err := e.observe(ctx, midnight, obs)
	if err != nil {
		return nil, err
	}

	times := SunMoonTimes{
		Sunrise:  norm.ToLocalPtr(sky.sunrise),
		Sunset:   norm.ToLocalPtr(sky.sunset),
		Moonrise: norm.ToLocalPtr(sky.moonrise),
		Moonset:  norm.ToLocalPtr(sky.moonset),
	}
	if times.Sunrise != nil && times.Sunset != nil && !times.Sunrise.Before(*times.Sunset) {
		return nil, fmt.Errorf("%w: sunrise %s is not before sunset %s",
			ErrInvariant, times.Sunrise.Format(time.RFC3339), times.Sunset.Format(time.RFC3339))
	}

	_, offset := midnight.Zone()
	loc := Location{
		Latitude:         req.Latitude,
		Longitude:        req.Longitude,
		Timezone:         norm.Location().String(),
		UTCOffsetMinutes: offset / 60,
	}

	report, err := compose(composeInput{
		date:         date,
		location:     loc,
		times:        times,
		positions:    sky.positions,
		nextMidnight: midnight.AddDate(0, 0, 1),
	})
	if err != nil {
		return nil, err
	}
	report.CalculatedAt = e.now().UTC()
	return report, nil
}

// skyState is the raw ephemeris output for one query instant.
type skyState struct {
	positions ephemeris.Positions
	sunrise   *time.Time
	sunset    *time.Time
	moonrise  *time.Time
	moonset   *time.Time
}

// observe runs the position query and the four rise/set searches
// concurrently. A missing crossing leaves its field nil.
func (e *Engine) observe(ctx context.Context, at time.Time, obs ephemeris.Observer) (skyState, error) {
	var s skyState
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		pos, err := e.eph.Positions(gctx, at, obs)
		if err != nil {
			return fmt.Errorf("positions: %w", err)
		}
		s.positions = pos
		return nil
	})

	searches := []struct {
		body ephemeris.Body
		dir  ephemeris.Direction
		dst  **time.Time
	}{
		{ephemeris.Sun, ephemeris.Rising, &s.sunrise},
		{ephemeris.Sun, ephemeris.Setting, &s.sunset},
		{ephemeris.Moon, ephemeris.Rising, &s.moonrise},
		{ephemeris.Moon, ephemeris.Setting, &s.moonset},
	}
	for _, q := range searches {
		g.Go(func() error {
			t, ok, err := e.eph.RiseSet(gctx, q.body, q.dir, at, obs)
			if err != nil {
				return fmt.Errorf("%s %s: %w", q.body, q.dir, err)
			}
			if !ok {
				e.metrics.EphemerisGap(q.body.String(), q.dir.String())
				logger.Debug(ctx, "no crossing in search window",
					slog.String("body", q.body.String()),
					slog.String("direction", q.dir.String()),
					slog.Time("from", at))
				return nil
			}
			*q.dst = &t
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return skyState{}, err
	}
	return s, nil
}

// composeInput is the normalized data the report is assembled from.
type composeInput struct {
	date         time.Time // civil date, UTC midnight
	location     Location
	times        SunMoonTimes
	positions    ephemeris.Positions
	nextMidnight time.Time
}

func compose(in composeInput) (*Report, error) {
	sun, moon := in.positions.SunLongitude, in.positions.MoonLongitude
	sunrise := in.times.Sunrise
	weekday := in.date.Weekday()

	tithi := CalculateTithi(sun, moon, sunrise)
	nakshatra := CalculateNakshatra(moon, sunrise)
	yoga := CalculateYoga(sun, moon, sunrise)
	karanas := CalculateKaranas(tithi, sunrise)

	r := &Report{
		Date:         calendar.FormatDate(in.date),
		Weekday:      calendar.DayName(in.date),
		WeekdayHindi: calendar.DayNameHindi(in.date),
		Location:     in.location,
		SunMoon:      in.times,
		Tithi:        tithi,
		Nakshatra:    nakshatra,
		Yoga:         yoga,
		Karanas:      karanas,
		Rashis: Rashis{
			Moon:         CalculateRashi(moon),
			Sun:          CalculateRashi(sun),
			SunNakshatra: NakshatraOf(sun),
		},
		Samvats: Samvats{
			VikramSamvat: calendar.VikramSamvat(in.date),
			ShakaSamvat:  calendar.ShakaSamvat(in.date),
		},
		Months:       CalculateMonths(sun),
		RituAyana:    CalculateRituAyana(sun),
		SpecialYogas: CalculateSpecialYogas(weekday, tithi, nakshatra, yoga),
		Festivals:    CalculateFestivals(in.date, tithi),
	}

	if in.times.Sunrise != nil && in.times.Sunset != nil {
		frame := dayFrame{
			sunrise:      *in.times.Sunrise,
			sunset:       *in.times.Sunset,
			nextMidnight: in.nextMidnight,
			weekday:      weekday,
			nakshatra0:   nakshatra.Index - 1,
			karanas:      karanas,
		}

		var err error
		if r.AuspiciousTimes, err = calculateAuspicious(frame); err != nil {
			return nil, err
		}
		if r.InauspiciousTimes, err = calculateInauspicious(frame); err != nil {
			return nil, err
		}
		if r.Panchaka, err = calculatePanchaka(frame, tithi.Index); err != nil {
			return nil, err
		}
		r.DayNight = calculateDayNight(frame)
	}

	r.Recommendations = CalculateRecommendations(tithi, nakshatra, r.AuspiciousTimes, r.InauspiciousTimes)
	r.Summary = Summarize(r.Recommendations, r.SpecialYogas, tithi)

	return r, nil
}
