package calendar

import (
	"fmt"
	"math"
	"time"
)

// Indian Standard Time applies to every observer inside this box.
const (
	istOffsetMinutes = 330

	istMinLongitude = 68.0
	istMaxLongitude = 97.0
	istMinLatitude  = 8.0
	istMaxLatitude  = 35.0
)

// OffsetMinutes returns the observer's civil offset from UTC in minutes.
//
// Inside the Indian subcontinent box the fixed +05:30 offset is used.
// Everywhere else the offset is the nominal solar one, 15° of longitude per
// hour, rounded to the minute. Daylight saving and political zone borders are
// not modelled.
func OffsetMinutes(lat, lon float64) int {
	if InIndia(lat, lon) {
		return istOffsetMinutes
	}
	return int(math.Round(lon / 15 * 60))
}

// InIndia reports whether the location falls inside the IST bounding box.
func InIndia(lat, lon float64) bool {
	return lon >= istMinLongitude && lon <= istMaxLongitude &&
		lat >= istMinLatitude && lat <= istMaxLatitude
}

// Zone returns a fixed time zone for the observer.
func Zone(lat, lon float64) *time.Location {
	offset := OffsetMinutes(lat, lon)
	if InIndia(lat, lon) {
		return time.FixedZone("IST", offset*60)
	}
	return time.FixedZone(zoneName(offset), offset*60)
}

// zoneName renders an offset as UTC±hh:mm.
func zoneName(offsetMinutes int) string {
	sign := '+'
	if offsetMinutes < 0 {
		sign = '-'
		offsetMinutes = -offsetMinutes
	}
	return fmt.Sprintf("UTC%c%02d:%02d", sign, offsetMinutes/60, offsetMinutes%60)
}

// Normalizer converts absolute instants into one observer's civil time.
// All downstream arithmetic must use instants produced by the same
// Normalizer.
type Normalizer struct {
	loc *time.Location
}

// NewNormalizer returns the normalizer for an observer location.
func NewNormalizer(lat, lon float64) *Normalizer {
	return &Normalizer{loc: Zone(lat, lon)}
}

// Location returns the observer's fixed zone.
func (n *Normalizer) Location() *time.Location {
	return n.loc
}

// ToLocal converts t into the observer's civil time.
func (n *Normalizer) ToLocal(t time.Time) time.Time {
	return t.In(n.loc)
}

// ToLocalPtr converts an optional instant, propagating absence.
func (n *Normalizer) ToLocalPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	local := n.ToLocal(*t)
	return &local
}

// Midnight returns 00:00 of the civil date in the observer's zone. Only the
// year, month and day of date are used.
func (n *Normalizer) Midnight(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, n.loc)
}

// Today returns the current civil date in the observer's zone.
func (n *Normalizer) Today(now time.Time) time.Time {
	return CivilDate(now.In(n.loc))
}
