package panchang

import (
	"math"
	"time"

	"github.com/zapponejosh/panchang-api/internal/ephemeris"
)

// Angular spans and the fixed mean daily rates used to project end times.
const (
	tithiSpan     = 12.0
	nakshatraSpan = 360.0 / 27
	rashiSpan     = 30.0

	tithiRate     = 13.0  // Moon gains on the Sun, degrees per day
	nakshatraRate = 13.33 // Moon, degrees per day
	yogaRate      = 14.67 // Sun + Moon, degrees per day
)

// cycleIndex returns floor(lon/span) clamped to [0, n).
func cycleIndex(lon, span float64, n int) int {
	i := int(math.Floor(lon / span))
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// progressPercent is the elapsed share of the current span, floored to one
// decimal so that it never reaches 100.
func progressPercent(lon, span float64) float64 {
	return math.Floor(math.Mod(lon, span)/span*1000) / 10
}

// projectEnd adds the time the remaining degrees take at rate degrees/day to
// sunrise. A nil sunrise yields a nil end.
func projectEnd(sunrise *time.Time, remainingDeg, rate float64) *time.Time {
	if sunrise == nil {
		return nil
	}
	d := time.Duration(remainingDeg / rate * float64(24*time.Hour))
	end := sunrise.Add(d)
	return &end
}

// CalculateTithi derives the lunar day from the Moon-Sun elongation.
func CalculateTithi(sunLon, moonLon float64, sunrise *time.Time) Tithi {
	diff := ephemeris.Normalize360(moonLon - sunLon)
	idx := cycleIndex(diff, tithiSpan, len(tithis))
	within := math.Mod(diff, tithiSpan)

	paksha := PakshaShukla
	if idx >= 15 {
		paksha = PakshaKrishna
	}

	return Tithi{
		Index:           idx + 1,
		Name:            tithis[idx].Name,
		Hindi:           tithis[idx].Hindi,
		Paksha:          paksha,
		PakshaHindi:     pakshaHindi[paksha],
		ProgressPercent: progressPercent(diff, tithiSpan),
		EndsAt:          projectEnd(sunrise, tithiSpan-within, tithiRate),
		fraction:        within / tithiSpan,
	}
}

// CalculateNakshatra derives the Moon's mansion.
func CalculateNakshatra(moonLon float64, sunrise *time.Time) Nakshatra {
	lon := ephemeris.Normalize360(moonLon)
	idx := cycleIndex(lon, nakshatraSpan, len(nakshatras))
	row := nakshatras[idx]

	return Nakshatra{
		Index:           idx + 1,
		Name:            row.Name,
		Hindi:           row.Hindi,
		Lord:            row.Lord,
		Deity:           row.Deity,
		ProgressPercent: progressPercent(lon, nakshatraSpan),
		EndsAt:          projectEnd(sunrise, nakshatraSpan-math.Mod(lon, nakshatraSpan), nakshatraRate),
	}
}

// NakshatraOf names the mansion holding any ecliptic longitude.
func NakshatraOf(lon float64) NakshatraRef {
	idx := cycleIndex(ephemeris.Normalize360(lon), nakshatraSpan, len(nakshatras))
	return NakshatraRef{
		Index: idx + 1,
		Name:  nakshatras[idx].Name,
		Hindi: nakshatras[idx].Hindi,
	}
}

// CalculateYoga derives the yoga from the sum of both longitudes.
func CalculateYoga(sunLon, moonLon float64, sunrise *time.Time) Yoga {
	sum := ephemeris.Normalize360(sunLon + moonLon)
	idx := cycleIndex(sum, nakshatraSpan, len(yogas))

	return Yoga{
		Index:           idx + 1,
		Name:            yogas[idx].Name,
		Hindi:           yogas[idx].Hindi,
		ProgressPercent: progressPercent(sum, nakshatraSpan),
		EndsAt:          projectEnd(sunrise, nakshatraSpan-math.Mod(sum, nakshatraSpan), yogaRate),
	}
}

// CalculateKaranas returns the two halves of the tithi.
//
// The first half ends where the tithi crosses 50%, found by scaling the
// sunrise-to-tithi-end duration. When the tithi is already past its midpoint
// that instant lies before sunrise. The second half ends with the tithi.
func CalculateKaranas(t Tithi, sunrise *time.Time) [2]Karana {
	first := ((t.Index - 1) * 2) % len(karanas)
	second := (first + 1) % len(karanas)

	var firstEnd *time.Time
	if sunrise != nil && t.EndsAt != nil {
		remaining := t.EndsAt.Sub(*sunrise)
		share := (0.5 - t.fraction) / (1 - t.fraction)
		end := sunrise.Add(time.Duration(float64(remaining) * share))
		firstEnd = &end
	}

	return [2]Karana{
		{
			Index:       first + 1,
			Name:        karanas[first].Name,
			Hindi:       karanas[first].Hindi,
			EndsAt:      firstEnd,
			IsFirstHalf: true,
		},
		{
			Index:       second + 1,
			Name:        karanas[second].Name,
			Hindi:       karanas[second].Hindi,
			EndsAt:      t.EndsAt,
			IsFirstHalf: false,
		},
	}
}

// CalculateRashi derives the zodiac sign holding lon.
func CalculateRashi(lon float64) Rashi {
	idx := cycleIndex(ephemeris.Normalize360(lon), rashiSpan, len(rashis))
	row := rashis[idx]
	return Rashi{
		Index:   idx + 1,
		Name:    row.Name,
		English: row.English,
		Hindi:   row.Hindi,
	}
}

// CalculateMonths names the lunar month from the Sun's sign.
func CalculateMonths(sunLon float64) Months {
	idx := cycleIndex(ephemeris.Normalize360(sunLon), rashiSpan, len(months))
	amanta := months[idx]
	purnimanta := months[(idx+1)%len(months)]
	return Months{
		Amanta:          amanta.Name,
		AmantaHindi:     amanta.Hindi,
		Purnimanta:      purnimanta.Name,
		PurnimantaHindi: purnimanta.Hindi,
	}
}

// CalculateRituAyana derives the season (two signs each) and the half-year.
func CalculateRituAyana(sunLon float64) RituAyana {
	lon := ephemeris.Normalize360(sunLon)
	ritu := ritus[cycleIndex(lon, rashiSpan, len(months))/2]

	ayana, half := dakshinayana, HalfYearDescending
	if lon >= 270 || lon < 90 {
		ayana, half = uttarayana, HalfYearAscending
	}

	return RituAyana{
		Ritu:       ritu.Name,
		RituHindi:  ritu.Hindi,
		Season:     ritu.Season,
		Ayana:      ayana.Name,
		AyanaHindi: ayana.Hindi,
		HalfYear:   half,
	}
}
