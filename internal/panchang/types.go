package panchang

import (
	"time"
)

// Report is the complete panchang for one civil date and location. It is a
// snapshot: nothing mutates it after Calculate returns.
type Report struct {
	Date              string             `json:"date"`    // YYYY-MM-DD
	Weekday           string             `json:"weekday"` // Sunday..Saturday
	WeekdayHindi      string             `json:"weekdayHindi"`
	Location          Location           `json:"location"`
	SunMoon           SunMoonTimes       `json:"sunMoon"`
	Tithi             Tithi              `json:"tithi"`
	Nakshatra         Nakshatra          `json:"nakshatra"`
	Yoga              Yoga               `json:"yoga"`
	Karanas           [2]Karana          `json:"karanas"`
	Rashis            Rashis             `json:"rashis"`
	Samvats           Samvats            `json:"samvats"`
	Months            Months             `json:"months"`
	RituAyana         RituAyana          `json:"rituAyana"`
	DayNight          *DayNight          `json:"dayNight"`          // nil without sunrise and sunset
	AuspiciousTimes   *AuspiciousTimes   `json:"auspiciousTimes"`   // nil without sunrise and sunset
	InauspiciousTimes *InauspiciousTimes `json:"inauspiciousTimes"` // nil without sunrise and sunset
	SpecialYogas      SpecialYogas       `json:"specialYogas"`
	Panchaka          []PanchakaSegment  `json:"panchaka"` // nil without sunrise and sunset
	Festivals         []Festival         `json:"festivals"`
	Recommendations   Recommendations    `json:"recommendations"`
	Summary           Summary            `json:"summary"`

	// CalculatedAt is the only field that differs between identical requests.
	CalculatedAt time.Time `json:"calculatedAt"`
}

// Location echoes the observer and the civil zone used for every instant.
type Location struct {
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	Timezone         string  `json:"timezone"`
	UTCOffsetMinutes int     `json:"utcOffsetMinutes"`
}

// SunMoonTimes holds the day's rise and set instants in local civil time.
// Any of them may be nil near the poles.
type SunMoonTimes struct {
	Sunrise  *time.Time `json:"sunrise"`
	Sunset   *time.Time `json:"sunset"`
	Moonrise *time.Time `json:"moonrise"`
	Moonset  *time.Time `json:"moonset"`
}

// Paksha is the waxing (Shukla) or waning (Krishna) fortnight.
type Paksha string

const (
	PakshaShukla  Paksha = "Shukla"
	PakshaKrishna Paksha = "Krishna"
)

// Tithi is the lunar day, one of 30.
type Tithi struct {
	Index           int        `json:"index"` // 1..30
	Name            string     `json:"name"`
	Hindi           string     `json:"hindi"`
	Paksha          Paksha     `json:"paksha"`
	PakshaHindi     string     `json:"pakshaHindi"`
	ProgressPercent float64    `json:"progressPercent"`
	EndsAt          *time.Time `json:"endsAt"`

	// fraction of the current tithi already elapsed at the query instant, unrounded
	fraction float64
}

// Nakshatra is the lunar mansion, one of 27.
type Nakshatra struct {
	Index           int        `json:"index"` // 1..27
	Name            string     `json:"name"`
	Hindi           string     `json:"hindi"`
	Lord            string     `json:"lord"`
	Deity           string     `json:"deity"`
	ProgressPercent float64    `json:"progressPercent"`
	EndsAt          *time.Time `json:"endsAt"`
}

// Yoga is one of 27 combinations of the solar and lunar longitudes.
type Yoga struct {
	Index           int        `json:"index"` // 1..27
	Name            string     `json:"name"`
	Hindi           string     `json:"hindi"`
	ProgressPercent float64    `json:"progressPercent"`
	EndsAt          *time.Time `json:"endsAt"`
}

// Karana is half of a tithi.
type Karana struct {
	Index       int        `json:"index"` // 1..11
	Name        string     `json:"name"`
	Hindi       string     `json:"hindi"`
	EndsAt      *time.Time `json:"endsAt"`
	IsFirstHalf bool       `json:"isFirstHalf"`
}

// Rashi is a 30° zodiac sign.
type Rashi struct {
	Index   int    `json:"index"` // 1..12
	Name    string `json:"name"`
	English string `json:"english"`
	Hindi   string `json:"hindi"`
}

// NakshatraRef names a mansion without timing.
type NakshatraRef struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Hindi string `json:"hindi"`
}

// Rashis holds the signs of the Moon and the Sun, plus the Sun's mansion.
type Rashis struct {
	Moon         Rashi        `json:"moon"`
	Sun          Rashi        `json:"sun"`
	SunNakshatra NakshatraRef `json:"sunNakshatra"`
}

// Samvats holds the two lunisolar year counts.
type Samvats struct {
	VikramSamvat int `json:"vikramSamvat"`
	ShakaSamvat  int `json:"shakaSamvat"`
}

// Months names the lunar month under both month-boundary conventions.
type Months struct {
	Amanta          string `json:"amanta"` // month ends at new moon
	AmantaHindi     string `json:"amantaHindi"`
	Purnimanta      string `json:"purnimanta"` // month ends at full moon
	PurnimantaHindi string `json:"purnimantaHindi"`
}

// HalfYear is the solar direction of the ayana.
type HalfYear string

const (
	HalfYearAscending  HalfYear = "ascending"
	HalfYearDescending HalfYear = "descending"
)

// RituAyana holds the season and the solar half-year.
type RituAyana struct {
	Ritu       string   `json:"ritu"`
	RituHindi  string   `json:"rituHindi"`
	Season     string   `json:"season"`
	Ayana      string   `json:"ayana"`
	AyanaHindi string   `json:"ayanaHindi"`
	HalfYear   HalfYear `json:"halfYear"`
}

// Duration is a whole-minute span in display-friendly parts.
type Duration struct {
	Hours        int    `json:"hours"`
	Minutes      int    `json:"minutes"`
	TotalMinutes int    `json:"totalMinutes"`
	Formatted    string `json:"formatted"` // e.g. "10h 32m"
}

// DayNight splits the 24 hours into daytime (dinamana) and night (ratrimana).
// DayDurationMinutes + NightDurationMinutes is always 1440.
type DayNight struct {
	DayDurationMinutes   int      `json:"dayDurationMinutes"`
	NightDurationMinutes int      `json:"nightDurationMinutes"`
	Dinamana             Duration `json:"dinamana"`
	Ratrimana            Duration `json:"ratrimana"`
}

// AuspiciousTimes holds the eight muhurtas of the day.
type AuspiciousTimes struct {
	BrahmaMuhurta  TimeWindow `json:"brahmaMuhurta"`
	PratahSandhya  TimeWindow `json:"pratahSandhya"`
	AbhijitMuhurta TimeWindow `json:"abhijitMuhurta"`
	VijayaMuhurta  TimeWindow `json:"vijayaMuhurta"`
	GodhuliMuhurta TimeWindow `json:"godhuliMuhurta"`
	SayahnaSandhya TimeWindow `json:"sayahnaSandhya"`
	NishitaMuhurta TimeWindow `json:"nishitaMuhurta"`
	AmritKaal      TimeWindow `json:"amritKaal"`
}

// InauspiciousTimes holds the six kaal categories. Bhadra is optional.
type InauspiciousTimes struct {
	RahuKaal    TimeWindow   `json:"rahuKaal"`
	GulikaKaal  TimeWindow   `json:"gulikaKaal"`
	YamaGhanta  TimeWindow   `json:"yamaGhanta"`
	DurMuhurtam []TimeWindow `json:"durMuhurtam"` // always 2
	Varjyam     []TimeWindow `json:"varjyam"`     // always 2
	Bhadra      *TimeWindow  `json:"bhadra"`
}

// SpecialYogas are independent flags; several may hold on the same day.
type SpecialYogas struct {
	SarvarthaSiddhi    bool `json:"sarvarthaSiddhi"`
	AmritSiddhi        bool `json:"amritSiddhi"`
	RaviPushya         bool `json:"raviPushya"`
	GuruPushya         bool `json:"guruPushya"`
	Dwipushkar         bool `json:"dwipushkar"`
	Tripushkar         bool `json:"tripushkar"`
	GandaMool          bool `json:"gandaMool"`
	VyatipataVaidhriti bool `json:"vyatipataVaidhriti"`
}

// PanchakaSegment is one of 14 equal parts of the daytime.
type PanchakaSegment struct {
	Index int `json:"index"` // 1..14
	TimeWindow
	Type      string `json:"type"`
	TypeHindi string `json:"typeHindi"`
	IsGood    bool   `json:"isGood"`
}

// FestivalKind distinguishes lunar observances from fixed civil dates.
type FestivalKind string

const (
	FestivalTithi FestivalKind = "tithi"
	FestivalFixed FestivalKind = "fixed"
)

// Festival is an observance that falls on the date.
type Festival struct {
	Name  string       `json:"name"`
	Hindi string       `json:"hindi"`
	Kind  FestivalKind `json:"kind"`
}

// WindowRef points at a named window of the day. Window is nil when the day
// has no windows.
type WindowRef struct {
	Key    string      `json:"key"`
	Window *TimeWindow `json:"window"`
}

// Recommendation scores one activity for the day.
type Recommendation struct {
	Activity      string    `json:"activity"`
	ActivityHindi string    `json:"activityHindi"`
	Score         int       `json:"score"` // 0..100
	Suitable      bool      `json:"suitable"`
	Reason        string    `json:"reason"`
	ReasonHindi   string    `json:"reasonHindi"`
	BestTime      WindowRef `json:"bestTime"`
	AvoidTime     WindowRef `json:"avoidTime"`
}

// Recommendations holds one entry per activity category.
type Recommendations struct {
	PropertyAndHome       Recommendation `json:"propertyAndHome"`
	ReligiousAndSpiritual Recommendation `json:"religiousAndSpiritual"`
	GeneralActivities     Recommendation `json:"generalActivities"`
	Marriage              Recommendation `json:"marriage"`
	Business              Recommendation `json:"business"`
}

// All returns the entries in a fixed order.
func (r Recommendations) All() []Recommendation {
	return []Recommendation{
		r.PropertyAndHome,
		r.ReligiousAndSpiritual,
		r.GeneralActivities,
		r.Marriage,
		r.Business,
	}
}

// DayType classifies the day as a whole.
type DayType string

const (
	DayAuspicious   DayType = "Auspicious"
	DayInauspicious DayType = "Inauspicious"
	DayMixed        DayType = "Mixed"
)

// Summary is the one-glance verdict for the day.
type Summary struct {
	DayType          DayType  `json:"dayType"`
	DayTypeHindi     string   `json:"dayTypeHindi"`
	GoodFor          []string `json:"goodFor"`
	AvoidFor         []string `json:"avoidFor"`
	SpecialNote      string   `json:"specialNote,omitempty"`
	SpecialNoteHindi string   `json:"specialNoteHindi,omitempty"`
}
