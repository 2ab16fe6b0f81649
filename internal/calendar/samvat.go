package calendar

import "time"

// Year-count epochs relative to the Gregorian year. Both eras begin in the
// lunar month of Chaitra; the civil month is used as a stand-in for the
// actual lunar new year.
const (
	// VikramOffsetAfterNewYear applies from April onward.
	VikramOffsetAfterNewYear = 57
	// VikramOffsetBeforeNewYear applies January through March.
	VikramOffsetBeforeNewYear = 56

	// ShakaOffsetAfterNewYear applies from March onward.
	ShakaOffsetAfterNewYear = -78
	// ShakaOffsetBeforeNewYear applies in January and February.
	ShakaOffsetBeforeNewYear = -79
)

// VikramSamvat returns the Vikram era year for a civil date.
//
// Examples:
//   - 2026-01-16: 2082 (before April, +56)
//   - 2026-04-01: 2083 (April onward, +57)
func VikramSamvat(date time.Time) int {
	if date.Month() >= time.April {
		return date.Year() + VikramOffsetAfterNewYear
	}
	return date.Year() + VikramOffsetBeforeNewYear
}

// ShakaSamvat returns the Shaka era year for a civil date.
//
// Examples:
//   - 2026-02-28: 1947 (before March, −79)
//   - 2026-03-01: 1948 (March onward, −78)
func ShakaSamvat(date time.Time) int {
	if date.Month() >= time.March {
		return date.Year() + ShakaOffsetAfterNewYear
	}
	return date.Year() + ShakaOffsetBeforeNewYear
}
