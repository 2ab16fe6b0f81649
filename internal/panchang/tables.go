package panchang

// =============================================================================
// Static lookup tables
//
// Every named entity carries its Latin-script and Devanagari labels in the
// same row. Tables are read-only after package initialization.
// =============================================================================

type label struct {
	Name  string
	Hindi string
}

type nakshatraRow struct {
	Name  string
	Hindi string
	Lord  string
	Deity string
}

var nakshatras = [27]nakshatraRow{
	{"Ashwini", "अश्विनी", "Ketu", "Ashwini Kumaras"},
	{"Bharani", "भरणी", "Venus", "Yama"},
	{"Krittika", "कृत्तिका", "Sun", "Agni"},
	{"Rohini", "रोहिणी", "Moon", "Brahma"},
	{"Mrigashira", "मृगशिरा", "Mars", "Soma"},
	{"Ardra", "आर्द्रा", "Rahu", "Rudra"},
	{"Punarvasu", "पुनर्वसु", "Jupiter", "Aditi"},
	{"Pushya", "पुष्य", "Saturn", "Brihaspati"},
	{"Ashlesha", "आश्लेषा", "Mercury", "Nagas"},
	{"Magha", "मघा", "Ketu", "Pitris"},
	{"Purva Phalguni", "पूर्व फाल्गुनी", "Venus", "Bhaga"},
	{"Uttara Phalguni", "उत्तर फाल्गुनी", "Sun", "Aryaman"},
	{"Hasta", "हस्त", "Moon", "Savitar"},
	{"Chitra", "चित्रा", "Mars", "Tvashtar"},
	{"Swati", "स्वाति", "Rahu", "Vayu"},
	{"Vishakha", "विशाखा", "Jupiter", "Indra-Agni"},
	{"Anuradha", "अनुराधा", "Saturn", "Mitra"},
	{"Jyeshtha", "ज्येष्ठा", "Mercury", "Indra"},
	{"Mula", "मूल", "Ketu", "Nirriti"},
	{"Purva Ashadha", "पूर्वाषाढ़ा", "Venus", "Apas"},
	{"Uttara Ashadha", "उत्तराषाढ़ा", "Sun", "Vishvadevas"},
	{"Shravana", "श्रवण", "Moon", "Vishnu"},
	{"Dhanishta", "धनिष्ठा", "Mars", "Vasus"},
	{"Shatabhisha", "शतभिषा", "Rahu", "Varuna"},
	{"Purva Bhadrapada", "पूर्व भाद्रपद", "Jupiter", "Aja Ekapada"},
	{"Uttara Bhadrapada", "उत्तर भाद्रपद", "Saturn", "Ahir Budhnya"},
	{"Revati", "रेवती", "Mercury", "Pushan"},
}

// tithis holds the 30 lunar days. Rows 15 and 30 are the full and new moon.
var tithis = [30]label{
	{"Pratipada", "प्रतिपदा"},
	{"Dwitiya", "द्वितीया"},
	{"Tritiya", "तृतीया"},
	{"Chaturthi", "चतुर्थी"},
	{"Panchami", "पंचमी"},
	{"Shashthi", "षष्ठी"},
	{"Saptami", "सप्तमी"},
	{"Ashtami", "अष्टमी"},
	{"Navami", "नवमी"},
	{"Dashami", "दशमी"},
	{"Ekadashi", "एकादशी"},
	{"Dwadashi", "द्वादशी"},
	{"Trayodashi", "त्रयोदशी"},
	{"Chaturdashi", "चतुर्दशी"},
	{"Purnima", "पूर्णिमा"},
	{"Pratipada", "प्रतिपदा"},
	{"Dwitiya", "द्वितीया"},
	{"Tritiya", "तृतीया"},
	{"Chaturthi", "चतुर्थी"},
	{"Panchami", "पंचमी"},
	{"Shashthi", "षष्ठी"},
	{"Saptami", "सप्तमी"},
	{"Ashtami", "अष्टमी"},
	{"Navami", "नवमी"},
	{"Dashami", "दशमी"},
	{"Ekadashi", "एकादशी"},
	{"Dwadashi", "द्वादशी"},
	{"Trayodashi", "त्रयोदशी"},
	{"Chaturdashi", "चतुर्दशी"},
	{"Amavasya", "अमावस्या"},
}

var yogas = [27]label{
	{"Vishkumbha", "विष्कुम्भ"},
	{"Preeti", "प्रीति"},
	{"Ayushman", "आयुष्मान"},
	{"Saubhagya", "सौभाग्य"},
	{"Shobhana", "शोभन"},
	{"Atiganda", "अतिगण्ड"},
	{"Sukarma", "सुकर्मा"},
	{"Dhriti", "धृति"},
	{"Shoola", "शूल"},
	{"Ganda", "गण्ड"},
	{"Vriddhi", "वृद्धि"},
	{"Dhruva", "ध्रुव"},
	{"Vyaghata", "व्याघात"},
	{"Harshana", "हर्षण"},
	{"Vajra", "वज्र"},
	{"Siddhi", "सिद्धि"},
	{"Vyatipata", "व्यतीपात"},
	{"Variyan", "वरीयान"},
	{"Parigha", "परिघ"},
	{"Shiva", "शिव"},
	{"Siddha", "सिद्ध"},
	{"Sadhya", "साध्य"},
	{"Shubha", "शुभ"},
	{"Shukla", "शुक्ल"},
	{"Brahma", "ब्रह्म"},
	{"Indra", "इन्द्र"},
	{"Vaidhriti", "वैधृति"},
}

// vishtiKarana is the karana that produces a Bhadra window.
const vishtiKarana = 6

var karanas = [11]label{
	{"Bava", "बव"},
	{"Balava", "बालव"},
	{"Kaulava", "कौलव"},
	{"Taitila", "तैतिल"},
	{"Garaja", "गर"},
	{"Vanija", "वणिज"},
	{"Vishti", "विष्टि"},
	{"Shakuni", "शकुनि"},
	{"Chatushpada", "चतुष्पद"},
	{"Naga", "नाग"},
	{"Kimstughna", "किंस्तुघ्न"},
}

type rashiRow struct {
	Name    string
	English string
	Hindi   string
}

var rashis = [12]rashiRow{
	{"Mesha", "Aries", "मेष"},
	{"Vrishabha", "Taurus", "वृषभ"},
	{"Mithuna", "Gemini", "मिथुन"},
	{"Karka", "Cancer", "कर्क"},
	{"Simha", "Leo", "सिंह"},
	{"Kanya", "Virgo", "कन्या"},
	{"Tula", "Libra", "तुला"},
	{"Vrishchika", "Scorpio", "वृश्चिक"},
	{"Dhanu", "Sagittarius", "धनु"},
	{"Makara", "Capricorn", "मकर"},
	{"Kumbha", "Aquarius", "कुम्भ"},
	{"Meena", "Pisces", "मीन"},
}

var months = [12]label{
	{"Chaitra", "चैत्र"},
	{"Vaishakha", "वैशाख"},
	{"Jyeshtha", "ज्येष्ठ"},
	{"Ashadha", "आषाढ़"},
	{"Shravana", "श्रावण"},
	{"Bhadrapada", "भाद्रपद"},
	{"Ashwin", "आश्विन"},
	{"Kartik", "कार्तिक"},
	{"Margashirsha", "मार्गशीर्ष"},
	{"Pausha", "पौष"},
	{"Magha", "माघ"},
	{"Phalguna", "फाल्गुन"},
}

type rituRow struct {
	Name   string
	Hindi  string
	Season string
}

var ritus = [6]rituRow{
	{"Vasant", "वसन्त", "Spring"},
	{"Grishma", "ग्रीष्म", "Summer"},
	{"Varsha", "वर्षा", "Monsoon"},
	{"Sharad", "शरद", "Autumn"},
	{"Hemant", "हेमन्त", "Pre-winter"},
	{"Shishir", "शिशिर", "Winter"},
}

var (
	uttarayana   = label{"Uttarayana", "उत्तरायण"}
	dakshinayana = label{"Dakshinayana", "दक्षिणायन"}
)

var pakshaHindi = map[Paksha]string{
	PakshaShukla:  "शुक्ल पक्ष",
	PakshaKrishna: "कृष्ण पक्ष",
}

// panchakaTypes is indexed by (segment + tithi number) mod 6. Only the first
// entry is favourable.
var panchakaTypes = [6]label{
	{"Good", "शुभ"},
	{"Mrityu", "मृत्यु"},
	{"Agni", "अग्नि"},
	{"Raja", "राज"},
	{"Chora", "चोर"},
	{"Roga", "रोग"},
}

// -----------------------------------------------------------------------------
// Weekday tables, indexed 0=Sunday through 6=Saturday
// -----------------------------------------------------------------------------

// rahuKaalPositions are 1-based eighths of the day: the window is segment
// position-1. Do not rebase to match the other two tables.
var rahuKaalPositions = [7]int{7, 1, 7, 5, 3, 4, 2}

// gulikaKaalPositions are 0-based eighths of the day.
var gulikaKaalPositions = [7]int{6, 5, 4, 3, 2, 1, 0}

// yamaGhantaPositions are 0-based eighths of the day.
var yamaGhantaPositions = [7]int{4, 2, 1, 3, 0, 6, 5}

// durMuhurtamStarts are minutes since a nominal 06:00 sunrise. They are
// rebased onto the actual sunrise by subtracting nominalSunriseMinutes.
var durMuhurtamStarts = [7][2]int{
	{720, 768},
	{780, 828},
	{900, 948},
	{660, 708},
	{360, 408},
	{540, 588},
	{420, 468},
}

// amritKaalStarts are minutes since a nominal 06:00 sunrise.
var amritKaalStarts = [7]int{360, 420, 480, 540, 300, 600, 660}

const nominalSunriseMinutes = 360
