package ephemeris

import (
	"time"
)

// altitudeFunc returns a body's altitude in degrees at time t, already offset
// by the horizon altitude so that the event of interest is a zero crossing.
type altitudeFunc func(t time.Time) float64

// findCrossing searches [start, end] for the first zero crossing of f in the
// given direction. It samples every step to find a bracket and then bisects
// the bracket down to tol.
func findCrossing(f altitudeFunc, start, end time.Time, dir Direction, step, tol time.Duration) (time.Time, bool) {
	if !start.Before(end) || step <= 0 {
		return time.Time{}, false
	}

	steps := int((end.Sub(start) + step - 1) / step)

	prevT := start
	prevAlt := f(prevT)

	for i := 1; i <= steps; i++ {
		t := start.Add(time.Duration(i) * step)
		if t.After(end) {
			t = end
		}
		alt := f(t)

		if crosses(prevAlt, alt, dir) {
			return bisect(f, prevT, t, prevAlt, dir, tol), true
		}

		prevT, prevAlt = t, alt
	}

	return time.Time{}, false
}

func crosses(a1, a2 float64, dir Direction) bool {
	if dir == Rising {
		return a1 < 0 && a2 >= 0
	}
	return a1 > 0 && a2 <= 0
}

func bisect(f altitudeFunc, a, b time.Time, altA float64, dir Direction, tol time.Duration) time.Time {
	for b.Sub(a) > tol {
		mid := a.Add(b.Sub(a) / 2)
		altM := f(mid)

		if crosses(altA, altM, dir) {
			b = mid
		} else {
			a, altA = mid, altM
		}
	}
	return a.Add(b.Sub(a) / 2)
}
