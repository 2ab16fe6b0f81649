// Package ephemeris wraps the meeus solar and lunar theories behind the small
// contract the panchang engine needs: apparent ecliptic longitudes of the Sun
// and Moon at an instant, and the next rise or set of either body within a
// one-day window.
//
// Longitudes are topocentric for the observer and referred to the true equinox
// of date. Rise and set are found by sampling the body's altitude and bisecting
// the crossing of its standard horizon altitude.
package ephemeris

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/coord"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/moonposition"
	"github.com/soniakeys/meeus/v3/nutation"
	"github.com/soniakeys/meeus/v3/parallax"
	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/meeus/v3/solar"
	"github.com/soniakeys/unit"
)

// Body is a celestial body the provider can track.
type Body int

const (
	Sun Body = iota
	Moon
)

func (b Body) String() string {
	switch b {
	case Sun:
		return "sun"
	case Moon:
		return "moon"
	default:
		return fmt.Sprintf("body(%d)", int(b))
	}
}

// Direction selects a rising or setting crossing of the horizon.
type Direction int

const (
	Rising Direction = iota
	Setting
)

func (d Direction) String() string {
	if d == Rising {
		return "rise"
	}
	return "set"
}

// Observer is a location on the Earth's surface.
type Observer struct {
	Latitude  float64 `json:"latitude"`  // degrees, north positive
	Longitude float64 `json:"longitude"` // degrees, east positive
}

// Positions holds apparent ecliptic longitudes in degrees, in [0, 360).
type Positions struct {
	SunLongitude  float64 `json:"sunLongitude"`
	MoonLongitude float64 `json:"moonLongitude"`
}

// Search parameters for rise/set. The window is fixed at one day.
const (
	SearchWindow = 24 * time.Hour
	sampleStep   = 30 * time.Minute
	tolerance    = 10 * time.Second
)

// Standard horizon altitudes (degrees) of the body's centre at rise/set.
const (
	// SunHorizon accounts for refraction and the solar semi-diameter.
	SunHorizon = -0.8333

	earthRadiusKm = 6378.14

	// Semidiameters: the Sun's in arcseconds at 1 AU, the Moon's in
	// arcseconds times km of geocentric distance (Meeus ch. 55).
	sunSemidiameterSec    = 959.63
	moonSemidiameterKmSec = 358473400
)

// Provider computes positions and rise/set times from the meeus theories.
// It holds no state and is safe for concurrent use.
type Provider struct{}

// NewProvider returns a meeus-backed ephemeris provider.
func NewProvider() *Provider {
	return &Provider{}
}

// Positions returns the apparent ecliptic longitudes of the Sun and Moon at t
// as seen from obs. Lunar parallax shifts the Moon by up to about a degree
// from its geocentric longitude.
func (p *Provider) Positions(ctx context.Context, t time.Time, obs Observer) (Positions, error) {
	if err := ctx.Err(); err != nil {
		return Positions{}, err
	}

	jde := julian.TimeToJD(t.UTC())
	ε := trueObliquity(jde)
	θ := localSidereal(jde, obs)
	φ := unit.AngleFromDeg(obs.Latitude)

	T := base.J2000Century(jde)
	R := solar.Radius(T)
	sunLon, _, _ := parallax.TopocentricEcliptical(
		solar.ApparentLongitude(T), 0, unit.AngleFromSec(sunSemidiameterSec/R),
		φ, 0, ε, θ, parallax.Horizontal(R))

	λ, β, Δ := apparentMoon(jde)
	moonLon, _, _ := parallax.TopocentricEcliptical(
		λ, β, unit.AngleFromSec(moonSemidiameterKmSec/Δ),
		φ, 0, ε, θ, moonposition.Parallax(Δ))

	return Positions{
		SunLongitude:  Normalize360(sunLon.Deg()),
		MoonLongitude: Normalize360(moonLon.Deg()),
	}, nil
}

// RiseSet returns the first instant in [t, t+24h] at which body crosses its
// horizon altitude in direction dir. ok is false when no such crossing exists
// in the window, which happens near the poles and, for the Moon, about once a
// month everywhere.
func (p *Provider) RiseSet(ctx context.Context, body Body, dir Direction, t time.Time, obs Observer) (time.Time, bool, error) {
	if err := ctx.Err(); err != nil {
		return time.Time{}, false, err
	}

	var f altitudeFunc
	switch body {
	case Sun:
		f = func(t time.Time) float64 {
			return sunAltitude(julian.TimeToJD(t.UTC()), obs) - SunHorizon
		}
	case Moon:
		f = func(t time.Time) float64 {
			alt, horizon := moonAltitude(julian.TimeToJD(t.UTC()), obs)
			return alt - horizon
		}
	default:
		return time.Time{}, false, fmt.Errorf("unknown body %v", body)
	}

	at, ok := findCrossing(f, t, t.Add(SearchWindow), dir, sampleStep, tolerance)
	if !ok {
		return time.Time{}, false, nil
	}
	return at.UTC().Round(time.Second), true, nil
}

// apparentMoon returns the Moon's apparent longitude and latitude and its
// distance in km.
func apparentMoon(jde float64) (λ, β unit.Angle, Δ float64) {
	λ, β, Δ = moonposition.Position(jde)
	Δψ, _ := nutation.Nutation(jde)
	return λ + Δψ, β, Δ
}

// trueObliquity returns the obliquity of the ecliptic including nutation.
func trueObliquity(jde float64) unit.Angle {
	_, Δε := nutation.Nutation(jde)
	return nutation.MeanObliquity(jde) + Δε
}

func sunAltitude(jde float64, obs Observer) float64 {
	λ := solar.ApparentLongitude(base.J2000Century(jde))
	ε := trueObliquity(jde)
	α, δ := coord.EclToEq(λ, 0, math.Sin(ε.Rad()), math.Cos(ε.Rad()))
	return altitude(jde, α, δ, obs)
}

// moonAltitude returns the geocentric altitude of the Moon's centre and the
// altitude at which it rises or sets: 0.7275π − 0°34′ (Meeus ch. 15).
func moonAltitude(jde float64, obs Observer) (alt, horizon float64) {
	λ, β, Δ := apparentMoon(jde)
	ε := trueObliquity(jde)
	α, δ := coord.EclToEq(λ, β, math.Sin(ε.Rad()), math.Cos(ε.Rad()))

	parallax := math.Asin(earthRadiusKm/Δ) * 180 / math.Pi
	return altitude(jde, α, δ, obs), 0.7275*parallax - 0.5667
}

// altitude converts equatorial coordinates to altitude in degrees for the
// observer at jde.
func altitude(jde float64, α unit.RA, δ unit.Angle, obs Observer) float64 {
	φ := obs.Latitude * math.Pi / 180
	H := localSidereal(jde, obs).Rad() - α.Rad()

	sinAlt := math.Sin(φ)*math.Sin(δ.Rad()) + math.Cos(φ)*math.Cos(δ.Rad())*math.Cos(H)
	return math.Asin(sinAlt) * 180 / math.Pi
}

// localSidereal returns apparent sidereal time at the observer's meridian.
func localSidereal(jde float64, obs Observer) unit.Time {
	return sidereal.Apparent(jde) + unit.AngleFromDeg(obs.Longitude).Time()
}

// Normalize360 folds an angle in degrees into [0, 360).
func Normalize360(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		deg = 0
	}
	return deg
}
