package panchang

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// -----------------------------------------------------------------------------
// Special yogas
// -----------------------------------------------------------------------------

// sarvarthaSiddhiDays lists the weekdays on which each nakshatra forms
// Sarvartha Siddhi yoga.
var sarvarthaSiddhiDays = map[string][]time.Weekday{
	"Ashwini":           {time.Sunday, time.Tuesday, time.Thursday, time.Friday},
	"Krittika":          {time.Tuesday, time.Wednesday},
	"Rohini":            {time.Monday, time.Wednesday, time.Saturday},
	"Mrigashira":        {time.Monday, time.Wednesday},
	"Punarvasu":         {time.Thursday, time.Friday},
	"Pushya":            {time.Sunday, time.Monday, time.Thursday},
	"Ashlesha":          {time.Tuesday},
	"Uttara Phalguni":   {time.Sunday},
	"Hasta":             {time.Sunday, time.Wednesday},
	"Swati":             {time.Saturday},
	"Anuradha":          {time.Monday, time.Wednesday, time.Thursday, time.Friday},
	"Mula":              {time.Sunday},
	"Uttara Ashadha":    {time.Sunday},
	"Shravana":          {time.Monday, time.Friday, time.Saturday},
	"Uttara Bhadrapada": {time.Sunday, time.Tuesday},
	"Revati":            {time.Thursday, time.Friday},
}

// amritSiddhiNakshatra is the single nakshatra per weekday forming Amrit
// Siddhi yoga.
var amritSiddhiNakshatra = [7]string{
	"Hasta",      // Sunday
	"Mrigashira", // Monday
	"Ashwini",    // Tuesday
	"Anuradha",   // Wednesday
	"Pushya",     // Thursday
	"Revati",     // Friday
	"Rohini",     // Saturday
}

var (
	pushkarTithis   = []string{"Dwitiya", "Saptami", "Dwadashi"}
	pushkarWeekdays = []time.Weekday{time.Sunday, time.Tuesday, time.Saturday}

	dwipushkarNakshatras = []string{"Mrigashira", "Chitra", "Dhanishta"}
	tripushkarNakshatras = []string{
		"Krittika", "Punarvasu", "Uttara Phalguni",
		"Vishakha", "Uttara Ashadha", "Purva Bhadrapada",
	}

	gandaMoolNakshatras = []string{"Ashwini", "Ashlesha", "Magha", "Jyeshtha", "Mula", "Revati"}
)

// CalculateSpecialYogas evaluates each flag independently.
func CalculateSpecialYogas(wd time.Weekday, t Tithi, n Nakshatra, y Yoga) SpecialYogas {
	pushkarDay := slices.Contains(pushkarTithis, t.Name) && slices.Contains(pushkarWeekdays, wd)

	return SpecialYogas{
		SarvarthaSiddhi:    slices.Contains(sarvarthaSiddhiDays[n.Name], wd),
		AmritSiddhi:        amritSiddhiNakshatra[wd] == n.Name,
		RaviPushya:         wd == time.Sunday && n.Name == "Pushya",
		GuruPushya:         wd == time.Thursday && n.Name == "Pushya",
		Dwipushkar:         pushkarDay && slices.Contains(dwipushkarNakshatras, n.Name),
		Tripushkar:         pushkarDay && slices.Contains(tripushkarNakshatras, n.Name),
		GandaMool:          slices.Contains(gandaMoolNakshatras, n.Name),
		VyatipataVaidhriti: y.Name == "Vyatipata" || y.Name == "Vaidhriti",
	}
}

// -----------------------------------------------------------------------------
// Recommendations
// -----------------------------------------------------------------------------

type activityRule struct {
	name  string
	hindi string

	shuklaWeight    int
	tithiWeight     int
	tithis          []string
	nakshatraWeight int
	nakshatras      []string

	bestTime  string
	avoidTime string
}

// Weights within a rule sum to 100.
var (
	propertyRule = activityRule{
		name: "Property & Home", hindi: "संपत्ति और गृह",
		shuklaWeight: 20,
		tithiWeight:  30, tithis: []string{"Dwitiya", "Tritiya", "Panchami", "Saptami", "Dashami", "Ekadashi", "Trayodashi"},
		nakshatraWeight: 50, nakshatras: []string{
			"Rohini", "Mrigashira", "Pushya", "Uttara Phalguni", "Hasta",
			"Chitra", "Anuradha", "Uttara Ashadha", "Uttara Bhadrapada", "Revati",
		},
		bestTime: "abhijitMuhurta", avoidTime: "rahuKaal",
	}
	religiousRule = activityRule{
		name: "Religious & Spiritual", hindi: "धार्मिक और आध्यात्मिक",
		tithiWeight: 50, tithis: []string{"Ashtami", "Ekadashi", "Trayodashi", "Chaturdashi", "Purnima", "Amavasya"},
		nakshatraWeight: 50, nakshatras: []string{"Ashwini", "Punarvasu", "Pushya", "Anuradha", "Shravana", "Revati"},
		bestTime: "brahmaMuhurta", avoidTime: "rahuKaal",
	}
	generalRule = activityRule{
		name: "General Activities", hindi: "सामान्य कार्य",
		shuklaWeight:    50,
		nakshatraWeight: 50, nakshatras: []string{
			"Ashwini", "Mrigashira", "Punarvasu", "Pushya", "Hasta", "Chitra",
			"Swati", "Anuradha", "Shravana", "Dhanishta", "Revati",
		},
		bestTime: "abhijitMuhurta", avoidTime: "yamaGhanta",
	}
	marriageRule = activityRule{
		name: "Marriage", hindi: "विवाह",
		shuklaWeight: 20,
		tithiWeight:  30, tithis: []string{"Dwitiya", "Tritiya", "Panchami", "Saptami", "Ekadashi", "Trayodashi"},
		nakshatraWeight: 50, nakshatras: []string{
			"Rohini", "Mrigashira", "Magha", "Uttara Phalguni", "Hasta", "Swati",
			"Anuradha", "Mula", "Uttara Ashadha", "Uttara Bhadrapada", "Revati",
		},
		bestTime: "godhuliMuhurta", avoidTime: "rahuKaal",
	}
	businessRule = activityRule{
		name: "Business", hindi: "व्यापार",
		shuklaWeight: 30,
		tithiWeight:  20, tithis: []string{"Dwitiya", "Tritiya", "Panchami", "Saptami", "Dashami", "Ekadashi", "Trayodashi"},
		nakshatraWeight: 50, nakshatras: []string{
			"Ashwini", "Rohini", "Pushya", "Uttara Phalguni", "Hasta", "Chitra", "Anuradha", "Revati",
		},
		bestTime: "abhijitMuhurta", avoidTime: "gulikaKaal",
	}
)

// suitableScore is the minimum score for an activity to count as suitable.
const suitableScore = 50

// windowLookup resolves window keys for a day. Every key misses when the day
// has no windows.
type windowLookup struct {
	auspicious   *AuspiciousTimes
	inauspicious *InauspiciousTimes
}

func (l windowLookup) ref(key string) WindowRef {
	ref := WindowRef{Key: key}
	var w TimeWindow
	switch {
	case l.auspicious == nil || l.inauspicious == nil:
		return ref
	case key == "abhijitMuhurta":
		w = l.auspicious.AbhijitMuhurta
	case key == "brahmaMuhurta":
		w = l.auspicious.BrahmaMuhurta
	case key == "godhuliMuhurta":
		w = l.auspicious.GodhuliMuhurta
	case key == "rahuKaal":
		w = l.inauspicious.RahuKaal
	case key == "gulikaKaal":
		w = l.inauspicious.GulikaKaal
	case key == "yamaGhanta":
		w = l.inauspicious.YamaGhanta
	default:
		return ref
	}
	ref.Window = &w
	return ref
}

func (r activityRule) evaluate(t Tithi, n Nakshatra, windows windowLookup) Recommendation {
	score := 0
	var met, metHindi []string

	if r.shuklaWeight > 0 && t.Paksha == PakshaShukla {
		score += r.shuklaWeight
		met = append(met, "Shukla paksha")
		metHindi = append(metHindi, t.PakshaHindi)
	}
	if r.tithiWeight > 0 && slices.Contains(r.tithis, t.Name) {
		score += r.tithiWeight
		met = append(met, t.Name+" tithi")
		metHindi = append(metHindi, t.Hindi)
	}
	if r.nakshatraWeight > 0 && slices.Contains(r.nakshatras, n.Name) {
		score += r.nakshatraWeight
		met = append(met, n.Name+" nakshatra")
		metHindi = append(metHindi, n.Hindi)
	}

	suitable := score >= suitableScore

	var reason, reasonHindi string
	switch {
	case suitable:
		reason = "Favourable: " + strings.Join(met, ", ")
		reasonHindi = "अनुकूल: " + strings.Join(metHindi, ", ")
	case len(met) > 0:
		reason = "Partly supported by " + strings.Join(met, ", ")
		reasonHindi = "आंशिक रूप से अनुकूल: " + strings.Join(metHindi, ", ")
	default:
		reason = fmt.Sprintf("%s tithi and %s nakshatra do not support this", t.Name, n.Name)
		reasonHindi = "प्रतिकूल समय"
	}

	return Recommendation{
		Activity:      r.name,
		ActivityHindi: r.hindi,
		Score:         score,
		Suitable:      suitable,
		Reason:        reason,
		ReasonHindi:   reasonHindi,
		BestTime:      windows.ref(r.bestTime),
		AvoidTime:     windows.ref(r.avoidTime),
	}
}

// CalculateRecommendations scores every activity category.
func CalculateRecommendations(t Tithi, n Nakshatra, a *AuspiciousTimes, i *InauspiciousTimes) Recommendations {
	w := windowLookup{auspicious: a, inauspicious: i}
	return Recommendations{
		PropertyAndHome:       propertyRule.evaluate(t, n, w),
		ReligiousAndSpiritual: religiousRule.evaluate(t, n, w),
		GeneralActivities:     generalRule.evaluate(t, n, w),
		Marriage:              marriageRule.evaluate(t, n, w),
		Business:              businessRule.evaluate(t, n, w),
	}
}

// -----------------------------------------------------------------------------
// Summary
// -----------------------------------------------------------------------------

var dayTypeHindi = map[DayType]string{
	DayAuspicious:   "शुभ",
	DayInauspicious: "अशुभ",
	DayMixed:        "मिश्रित",
}

type specialNote struct {
	applies func(SpecialYogas, Tithi) bool
	text    string
	hindi   string
}

// specialNotes are checked in priority order; the first match wins.
var specialNotes = []specialNote{
	{func(s SpecialYogas, _ Tithi) bool { return s.AmritSiddhi },
		"Amrit Siddhi Yoga: highly auspicious for new undertakings", "अमृत सिद्धि योग: नए कार्यों के लिए अति शुभ"},
	{func(s SpecialYogas, _ Tithi) bool { return s.SarvarthaSiddhi },
		"Sarvartha Siddhi Yoga: favourable for all endeavours", "सर्वार्थ सिद्धि योग: सभी कार्यों में सफलता"},
	{func(s SpecialYogas, _ Tithi) bool { return s.GuruPushya },
		"Guru Pushya Yoga: ideal for purchases and investments", "गुरु पुष्य योग: खरीदारी और निवेश के लिए उत्तम"},
	{func(s SpecialYogas, _ Tithi) bool { return s.RaviPushya },
		"Ravi Pushya Yoga: good for starting studies and rituals", "रवि पुष्य योग: विद्या और अनुष्ठान के लिए शुभ"},
	{func(_ SpecialYogas, t Tithi) bool { return t.Name == "Ekadashi" },
		"Ekadashi: a day for fasting and devotion", "एकादशी: व्रत और भक्ति का दिन"},
	{func(s SpecialYogas, _ Tithi) bool { return s.Tripushkar },
		"Tripushkar Yoga: results of actions are tripled", "त्रिपुष्कर योग: कार्यों का फल तीन गुना"},
	{func(s SpecialYogas, _ Tithi) bool { return s.Dwipushkar },
		"Dwipushkar Yoga: results of actions are doubled", "द्विपुष्कर योग: कार्यों का फल दो गुना"},
	{func(s SpecialYogas, _ Tithi) bool { return s.GandaMool },
		"Ganda Mool Nakshatra: avoid new beginnings", "गण्ड मूल नक्षत्र: नए कार्य आरम्भ न करें"},
	{func(s SpecialYogas, _ Tithi) bool { return s.VyatipataVaidhriti },
		"Vyatipata/Vaidhriti Yoga: avoid auspicious ceremonies", "व्यतीपात/वैधृति योग: शुभ कार्य वर्जित"},
}

// Summarize classifies the day from the recommendation verdicts.
func Summarize(recs Recommendations, yogas SpecialYogas, t Tithi) Summary {
	goodFor := []string{}
	avoidFor := []string{}
	for _, r := range recs.All() {
		if r.Suitable {
			goodFor = append(goodFor, r.Activity)
		} else {
			avoidFor = append(avoidFor, r.Activity)
		}
	}

	dayType := DayMixed
	switch good, bad := len(goodFor), len(avoidFor); {
	case good > 2*bad:
		dayType = DayAuspicious
	case bad > 2*good:
		dayType = DayInauspicious
	}

	s := Summary{
		DayType:      dayType,
		DayTypeHindi: dayTypeHindi[dayType],
		GoodFor:      goodFor,
		AvoidFor:     avoidFor,
	}
	for _, note := range specialNotes {
		if note.applies(yogas, t) {
			s.SpecialNote = note.text
			s.SpecialNoteHindi = note.hindi
			break
		}
	}
	return s
}

// -----------------------------------------------------------------------------
// Festivals
// -----------------------------------------------------------------------------

type tithiFestival struct {
	tithi  string
	paksha Paksha // empty matches both
	label
}

var tithiFestivals = []tithiFestival{
	{"Ekadashi", "", label{"Ekadashi", "एकादशी"}},
	{"Purnima", "", label{"Purnima", "पूर्णिमा"}},
	{"Amavasya", "", label{"Amavasya", "अमावस्या"}},
	{"Chaturdashi", PakshaKrishna, label{"Masik Shivaratri", "मासिक शिवरात्रि"}},
	{"Chaturthi", PakshaShukla, label{"Vinayaka Chaturthi", "विनायक चतुर्थी"}},
	{"Chaturthi", PakshaKrishna, label{"Sankashti Chaturthi", "संकष्टी चतुर्थी"}},
	{"Trayodashi", "", label{"Pradosh Vrat", "प्रदोष व्रत"}},
}

type fixedFestival struct {
	month time.Month
	day   int
	label
}

var fixedFestivals = []fixedFestival{
	{time.January, 13, label{"Lohri", "लोहड़ी"}},
	{time.January, 14, label{"Makar Sankranti", "मकर संक्रान्ति"}},
	{time.January, 26, label{"Republic Day", "गणतंत्र दिवस"}},
	{time.April, 14, label{"Baisakhi", "बैसाखी"}},
	{time.August, 15, label{"Independence Day", "स्वतंत्रता दिवस"}},
	{time.October, 2, label{"Gandhi Jayanti", "गांधी जयंती"}},
}

// CalculateFestivals lists the observances for a civil date and tithi.
func CalculateFestivals(date time.Time, t Tithi) []Festival {
	festivals := []Festival{}
	for _, f := range tithiFestivals {
		if f.tithi == t.Name && (f.paksha == "" || f.paksha == t.Paksha) {
			festivals = append(festivals, Festival{Name: f.Name, Hindi: f.Hindi, Kind: FestivalTithi})
		}
	}
	for _, f := range fixedFestivals {
		if date.Month() == f.month && date.Day() == f.day {
			festivals = append(festivals, Festival{Name: f.Name, Hindi: f.Hindi, Kind: FestivalFixed})
		}
	}
	return festivals
}
