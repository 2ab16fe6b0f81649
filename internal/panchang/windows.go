package panchang

import (
	"fmt"
	"math"
	"time"
)

// TimeWindow is a named period of the day in local civil time.
type TimeWindow struct {
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	DurationMinutes int       `json:"durationMinutes"`
}

// NewTimeWindow builds a window, rejecting empty or inverted spans.
func NewTimeWindow(start, end time.Time) (TimeWindow, error) {
	if !start.Before(end) {
		return TimeWindow{}, fmt.Errorf("%w: window start %s is not before end %s",
			ErrInvariant, start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return TimeWindow{
		Start:           start,
		End:             end,
		DurationMinutes: int(math.Round(end.Sub(start).Minutes())),
	}, nil
}

// Fixed window lengths.
const (
	muhurta         = 48 * time.Minute
	halfMuhurta     = 24 * time.Minute
	sandhya         = 81 * time.Minute
	vijayaLength    = 42 * time.Minute
	varjyamLength   = 72 * time.Minute
	vijayaAfterNoon = 120 * time.Minute
	panchakaParts   = 14
	kaalParts       = 8
)

// Varjyam offsets from sunrise: base minutes plus a per-nakshatra step.
const (
	varjyamFirstBase  = 480
	varjyamFirstStep  = 20
	varjyamSecondBase = 1320
	varjyamSecondStep = 15
)

// dayFrame is everything the window calculator reads. Sunrise and sunset are
// guaranteed present and ordered.
type dayFrame struct {
	sunrise      time.Time
	sunset       time.Time
	nextMidnight time.Time
	weekday      time.Weekday
	nakshatra0   int // 0-based
	karanas      [2]Karana
}

func (f dayFrame) length() time.Duration {
	return f.sunset.Sub(f.sunrise)
}

func (f dayFrame) noon() time.Time {
	return f.sunrise.Add(f.length() / 2)
}

func (f dayFrame) afterSunrise(minutes int) time.Time {
	return f.sunrise.Add(time.Duration(minutes) * time.Minute)
}

// windowBuilder collects windows and remembers the first failure.
type windowBuilder struct {
	err error
}

func (b *windowBuilder) span(start, end time.Time) TimeWindow {
	w, err := NewTimeWindow(start, end)
	if err != nil && b.err == nil {
		b.err = err
	}
	return w
}

func (b *windowBuilder) fixed(start time.Time, d time.Duration) TimeWindow {
	return b.span(start, start.Add(d))
}

func (b *windowBuilder) around(center time.Time, half time.Duration) TimeWindow {
	return b.span(center.Add(-half), center.Add(half))
}

// eighth returns the 0-based segment of the day split into kaalParts.
func (b *windowBuilder) eighth(f dayFrame, segment int) TimeWindow {
	part := f.length() / kaalParts
	start := f.sunrise.Add(part * time.Duration(segment))
	return b.span(start, start.Add(part))
}

// calculateAuspicious derives the eight muhurtas.
func calculateAuspicious(f dayFrame) (*AuspiciousTimes, error) {
	var b windowBuilder
	noon := f.noon()

	t := &AuspiciousTimes{
		BrahmaMuhurta:  b.span(f.sunrise.Add(-2*muhurta), f.sunrise.Add(-muhurta)),
		PratahSandhya:  b.span(f.sunrise.Add(-sandhya), f.sunrise),
		AbhijitMuhurta: b.around(noon, halfMuhurta),
		VijayaMuhurta:  b.fixed(noon.Add(vijayaAfterNoon), vijayaLength),
		GodhuliMuhurta: b.around(f.sunset, halfMuhurta),
		SayahnaSandhya: b.fixed(f.sunset, sandhya),
		NishitaMuhurta: b.around(f.nextMidnight, halfMuhurta),
		AmritKaal:      b.fixed(f.afterSunrise(amritKaalStarts[f.weekday]-nominalSunriseMinutes), muhurta),
	}
	if b.err != nil {
		return nil, b.err
	}
	return t, nil
}

// calculateInauspicious derives the six kaal categories.
func calculateInauspicious(f dayFrame) (*InauspiciousTimes, error) {
	var b windowBuilder
	wd := f.weekday

	dur := durMuhurtamStarts[wd]
	t := &InauspiciousTimes{
		RahuKaal:   b.eighth(f, rahuKaalPositions[wd]-1),
		GulikaKaal: b.eighth(f, gulikaKaalPositions[wd]),
		YamaGhanta: b.eighth(f, yamaGhantaPositions[wd]),
		DurMuhurtam: []TimeWindow{
			b.fixed(f.afterSunrise(dur[0]-nominalSunriseMinutes), muhurta),
			b.fixed(f.afterSunrise(dur[1]-nominalSunriseMinutes), muhurta),
		},
		Varjyam: []TimeWindow{
			b.fixed(f.afterSunrise(varjyamFirstBase+f.nakshatra0*varjyamFirstStep), varjyamLength),
			b.fixed(f.afterSunrise(varjyamSecondBase+f.nakshatra0*varjyamSecondStep), varjyamLength),
		},
		Bhadra: bhadra(&b, f.karanas),
	}
	if b.err != nil {
		return nil, b.err
	}
	return t, nil
}

// bhadra spans from the end of the preceding karana to the end of the Vishti
// karana. Vishti in the first half has no predecessor, so there is no window.
func bhadra(b *windowBuilder, k [2]Karana) *TimeWindow {
	if k[1].Index-1 != vishtiKarana {
		return nil
	}
	if k[0].EndsAt == nil || k[1].EndsAt == nil {
		return nil
	}
	w := b.span(*k[0].EndsAt, *k[1].EndsAt)
	return &w
}

// calculateDayNight splits 24 hours into daytime and night.
func calculateDayNight(f dayFrame) *DayNight {
	day := int(math.Round(f.length().Minutes()))
	night := 24*60 - day
	return &DayNight{
		DayDurationMinutes:   day,
		NightDurationMinutes: night,
		Dinamana:             newDuration(day),
		Ratrimana:            newDuration(night),
	}
}

func newDuration(total int) Duration {
	return Duration{
		Hours:        total / 60,
		Minutes:      total % 60,
		TotalMinutes: total,
		Formatted:    fmt.Sprintf("%dh %dm", total/60, total%60),
	}
}

// calculatePanchaka splits the daytime into 14 equal segments.
func calculatePanchaka(f dayFrame, tithiIndex int) ([]PanchakaSegment, error) {
	var b windowBuilder
	part := f.length() / panchakaParts

	segments := make([]PanchakaSegment, panchakaParts)
	for i := range segments {
		start := f.sunrise.Add(part * time.Duration(i))
		end := start.Add(part)
		if i == panchakaParts-1 {
			end = f.sunset
		}
		kind := (i + tithiIndex) % len(panchakaTypes)
		segments[i] = PanchakaSegment{
			Index:      i + 1,
			TimeWindow: b.span(start, end),
			Type:       panchakaTypes[kind].Name,
			TypeHindi:  panchakaTypes[kind].Hindi,
			IsGood:     kind == 0,
		}
	}
	if b.err != nil {
		return nil, b.err
	}
	return segments, nil
}
