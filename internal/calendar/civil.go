// Package calendar provides civil-calendar helpers for the panchang engine:
// strict date parsing, weekday names in both scripts, the observer's
// approximate civil time zone, and the Vikram and Shaka year counts.
package calendar

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the only accepted date format.
const DateLayout = "2006-01-02"

// ErrInvalidDate is returned when a date string is not a real YYYY-MM-DD date.
var ErrInvalidDate = errors.New("invalid date")

var dayNames = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

var dayNamesHindi = [7]string{"रविवार", "सोमवार", "मंगलवार", "बुधवार", "गुरुवार", "शुक्रवार", "शनिवार"}

// DayName returns the day of week name (Sunday, Monday, etc.)
func DayName(date time.Time) string {
	return dayNames[date.Weekday()]
}

// DayNameHindi returns the Devanagari day of week name.
func DayNameHindi(date time.Time) string {
	return dayNamesHindi[date.Weekday()]
}

// ParseDateString parses a date string in YYYY-MM-DD format.
// The result is midnight UTC of that civil date.
func ParseDateString(dateStr string) (time.Time, error) {
	d, err := time.Parse(DateLayout, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q, use YYYY-MM-DD", ErrInvalidDate, dateStr)
	}
	return d, nil
}

// FormatDate formats a date as YYYY-MM-DD
func FormatDate(date time.Time) string {
	return date.Format(DateLayout)
}

// CivilDate strips the clock and zone from t, keeping its calendar date as
// seen in t's own location.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
