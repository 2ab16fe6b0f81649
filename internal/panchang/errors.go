package panchang

import (
	"errors"

	"github.com/zapponejosh/panchang-api/internal/calendar"
)

// ErrInvalidCoordinates is returned when latitude or longitude is not a
// finite number inside its valid range.
var ErrInvalidCoordinates = errors.New("invalid coordinates")

// ErrInvalidDate is returned when the requested date does not parse.
var ErrInvalidDate = calendar.ErrInvalidDate

// ErrInvariant signals an internal defect, such as a sunrise that does not
// precede the sunset after time zone normalization.
var ErrInvariant = errors.New("panchang invariant violated")

// IsValidation checks if an error was caused by bad client input.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidCoordinates) || errors.Is(err, ErrInvalidDate)
}
