package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// =============================================================================
// Response Types - the subset of the report the smoke run inspects
// =============================================================================

type APIResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *ErrorInfo      `json:"error,omitempty"`
}

type ErrorInfo struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type Element struct {
	Index           int     `json:"index"`
	Name            string  `json:"name"`
	ProgressPercent float64 `json:"progressPercent"`
}

type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type Report struct {
	Date     string `json:"date"`
	Weekday  string `json:"weekday"`
	Location struct {
		Timezone         string `json:"timezone"`
		UTCOffsetMinutes int    `json:"utcOffsetMinutes"`
	} `json:"location"`
	SunMoon struct {
		Sunrise *time.Time `json:"sunrise"`
		Sunset  *time.Time `json:"sunset"`
	} `json:"sunMoon"`
	Tithi     Element `json:"tithi"`
	Nakshatra Element `json:"nakshatra"`
	Yoga      Element `json:"yoga"`
	DayNight  *struct {
		DayDurationMinutes   int `json:"dayDurationMinutes"`
		NightDurationMinutes int `json:"nightDurationMinutes"`
	} `json:"dayNight"`
	InauspiciousTimes *struct {
		RahuKaal Window `json:"rahuKaal"`
	} `json:"inauspiciousTimes"`
	Panchaka []Window `json:"panchaka"`
	Summary  struct {
		DayType string `json:"dayType"`
	} `json:"summary"`
}

type RangeResponse struct {
	Start   string   `json:"start"`
	End     string   `json:"end"`
	Count   int      `json:"count"`
	Reports []Report `json:"reports"`
}

type city struct {
	name     string
	lat, lon float64
}

var cities = []city{
	{"New Delhi", 28.6139, 77.2090},
	{"Mumbai", 19.0760, 72.8777},
	{"Chennai", 13.0827, 80.2707},
	{"London", 51.5074, -0.1278},
	{"New York", 40.7128, -74.0060},
	{"Sydney", -33.8688, 151.2093},
}

// =============================================================================
// Test Runner
// =============================================================================

type TestRunner struct {
	baseURL      string
	client       *http.Client
	verbose      bool
	successCount int
	errorCount   int
	errors       []string
}

func NewTestRunner(baseURL string, verbose bool) *TestRunner {
	return &TestRunner{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		verbose: verbose,
	}
}

func (tr *TestRunner) Run() {
	fmt.Println("==============================================")
	fmt.Println("Panchang API Smoke Test")
	fmt.Println("==============================================")
	fmt.Printf("Base URL: %s\n", tr.baseURL)
	fmt.Println()

	tr.testHealth()
	tr.testToday()
	tr.testCities()
	tr.testDateRange()
	tr.testEdgeCases()
	tr.testPolar()

	tr.printSummary()
}

// =============================================================================
// Test Groups
// =============================================================================

func (tr *TestRunner) testHealth() {
	tr.printSection("Health Check")

	var health HealthResponse
	if err := tr.getData("/health", &health); err != nil {
		tr.recordError("Health", err.Error())
		return
	}

	if health.Status == "healthy" {
		tr.recordSuccess("Health check passed")
	} else {
		tr.recordError("Health", fmt.Sprintf("Unexpected status: %s", health.Status))
	}
}

func (tr *TestRunner) testToday() {
	tr.printSection("Today")

	var report Report
	if err := tr.getData("/api/v1/panchang/today", &report); err != nil {
		tr.recordError("Today", err.Error())
		return
	}
	tr.checkReport("Today (default location)", report)
}

func (tr *TestRunner) testCities() {
	tr.printSection("Cities")

	dates := []string{"2024-01-01", "2024-06-21", "2024-12-21", "2026-01-16"}
	for _, c := range cities {
		for _, date := range dates {
			var report Report
			path := fmt.Sprintf("/api/v1/panchang/date/%s?%s", date, coords(c.lat, c.lon))
			if err := tr.getData(path, &report); err != nil {
				tr.recordError(c.name+" "+date, err.Error())
				continue
			}
			tr.checkReport(fmt.Sprintf("%s %s", c.name, date), report)
		}
	}
}

func (tr *TestRunner) testDateRange() {
	tr.printSection("Date Range")

	var rng RangeResponse
	if err := tr.getData("/api/v1/panchang/range?start=2026-01-10&end=2026-01-16", &rng); err != nil {
		tr.recordError("Range (week)", err.Error())
		return
	}

	if rng.Count == 7 && len(rng.Reports) == 7 {
		tr.recordSuccess(fmt.Sprintf("Week range returned %d days", rng.Count))
	} else {
		tr.recordError("Range (week)", fmt.Sprintf("Expected 7 days, got %d", rng.Count))
	}

	tr.expectStatus("Range limit enforced (>31 days rejected)",
		"/api/v1/panchang/range?start=2026-01-01&end=2026-03-01", http.StatusBadRequest, "BAD_REQUEST")
	tr.expectStatus("Invalid range rejected (end before start)",
		"/api/v1/panchang/range?start=2026-01-31&end=2026-01-01", http.StatusBadRequest, "BAD_REQUEST")
}

func (tr *TestRunner) testEdgeCases() {
	tr.printSection("Edge Cases")

	tr.expectStatus("Latitude 95 rejected", "/api/v1/panchang?lat=95&lon=77", http.StatusBadRequest, "INVALID_COORDINATES")
	tr.expectStatus("Longitude -181 rejected", "/api/v1/panchang?lat=28&lon=-181", http.StatusBadRequest, "INVALID_COORDINATES")
	tr.expectStatus("Impossible date rejected", "/api/v1/panchang/date/2024-13-45", http.StatusBadRequest, "INVALID_DATE")
	tr.expectStatus("Missing end parameter rejected", "/api/v1/panchang/range?start=2026-01-01", http.StatusBadRequest, "BAD_REQUEST")

	var report Report
	if err := tr.getData("/api/v1/panchang/date/2024-02-29", &report); err != nil {
		tr.recordError("Leap year", err.Error())
	} else {
		tr.recordSuccess("Leap year date (2024-02-29) handled")
	}
}

func (tr *TestRunner) testPolar() {
	tr.printSection("Polar Night")

	var report Report
	if err := tr.getData("/api/v1/panchang/date/2024-12-21?lat=69.6492&lon=18.9553", &report); err != nil {
		tr.recordError("Tromsø", err.Error())
		return
	}

	switch {
	case report.SunMoon.Sunrise != nil || report.SunMoon.Sunset != nil:
		tr.recordError("Tromsø", "expected no sunrise or sunset")
	case report.DayNight != nil || report.InauspiciousTimes != nil || len(report.Panchaka) != 0:
		tr.recordError("Tromsø", "windows present without a sunrise")
	case report.Tithi.Index < 1:
		tr.recordError("Tromsø", "elements missing")
	default:
		tr.recordSuccess(fmt.Sprintf("Tromsø polar night: %s %s, no windows", report.Tithi.Name, report.Nakshatra.Name))
	}
}

// checkReport applies the invariants every report must satisfy.
func (tr *TestRunner) checkReport(label string, r Report) {
	var problems []string

	if r.Tithi.Index < 1 || r.Tithi.Index > 30 {
		problems = append(problems, fmt.Sprintf("tithi index %d", r.Tithi.Index))
	}
	if r.Nakshatra.Index < 1 || r.Nakshatra.Index > 27 {
		problems = append(problems, fmt.Sprintf("nakshatra index %d", r.Nakshatra.Index))
	}
	if r.Yoga.Index < 1 || r.Yoga.Index > 27 {
		problems = append(problems, fmt.Sprintf("yoga index %d", r.Yoga.Index))
	}
	for _, e := range []Element{r.Tithi, r.Nakshatra, r.Yoga} {
		if e.ProgressPercent < 0 || e.ProgressPercent >= 100 {
			problems = append(problems, fmt.Sprintf("%s progress %.1f", e.Name, e.ProgressPercent))
		}
	}
	if r.SunMoon.Sunrise != nil && r.SunMoon.Sunset != nil {
		if !r.SunMoon.Sunrise.Before(*r.SunMoon.Sunset) {
			problems = append(problems, "sunrise not before sunset")
		}
		if r.DayNight == nil || r.DayNight.DayDurationMinutes+r.DayNight.NightDurationMinutes != 1440 {
			problems = append(problems, "day and night do not sum to 1440")
		}
		if r.InauspiciousTimes != nil {
			rk := r.InauspiciousTimes.RahuKaal
			if rk.Start.Before(*r.SunMoon.Sunrise) || rk.End.After(*r.SunMoon.Sunset) {
				problems = append(problems, "rahu kaal outside daylight")
			}
		}
		if len(r.Panchaka) != 14 {
			problems = append(problems, fmt.Sprintf("%d panchaka segments", len(r.Panchaka)))
		}
	}

	if len(problems) > 0 {
		tr.recordError(label, strings.Join(problems, "; "))
		return
	}

	tr.recordSuccess(fmt.Sprintf("%s: %s %s, %s, %s [%s]",
		label, r.Weekday, r.Tithi.Name, r.Nakshatra.Name, r.Location.Timezone, r.Summary.DayType))
	if tr.verbose && r.SunMoon.Sunrise != nil && r.SunMoon.Sunset != nil {
		fmt.Printf("    Sunrise %s  Sunset %s\n",
			r.SunMoon.Sunrise.Format("15:04"), r.SunMoon.Sunset.Format("15:04"))
	}
}

// =============================================================================
// Helper Methods
// =============================================================================

func coords(lat, lon float64) string {
	v := url.Values{}
	v.Set("lat", fmt.Sprint(lat))
	v.Set("lon", fmt.Sprint(lon))
	return v.Encode()
}

func (tr *TestRunner) get(path string) (*APIResponse, int, error) {
	resp, err := tr.client.Get(tr.baseURL + path)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read error: %w", err)
	}

	var apiResp APIResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("parse error: %w", err)
	}
	return &apiResp, resp.StatusCode, nil
}

func (tr *TestRunner) getData(path string, target any) error {
	resp, _, err := tr.get(path)
	if err != nil {
		return err
	}
	if !resp.Success {
		errMsg := "unknown error"
		if resp.Error != nil {
			errMsg = resp.Error.Message
		}
		return fmt.Errorf("API error: %s", errMsg)
	}
	return json.Unmarshal(resp.Data, target)
}

func (tr *TestRunner) expectStatus(label, path string, status int, code string) {
	resp, got, err := tr.get(path)
	if err != nil {
		tr.recordError(label, err.Error())
		return
	}
	if got != status || resp.Error == nil || resp.Error.Code != code {
		tr.recordError(label, fmt.Sprintf("want HTTP %d %s, got %d", status, code, got))
		return
	}
	tr.recordSuccess(label)
}

func (tr *TestRunner) printSection(name string) {
	fmt.Println()
	fmt.Printf("--- %s ---\n", name)
	fmt.Println()
}

func (tr *TestRunner) recordSuccess(msg string) {
	tr.successCount++
	fmt.Printf("  ✓ %s\n", msg)
}

func (tr *TestRunner) recordError(context, msg string) {
	tr.errorCount++
	errStr := fmt.Sprintf("%s: %s", context, msg)
	tr.errors = append(tr.errors, errStr)
	fmt.Printf("  ✗ %s\n", errStr)
}

func (tr *TestRunner) printSummary() {
	fmt.Println()
	fmt.Println("==============================================")
	fmt.Println("Summary")
	fmt.Println("==============================================")
	fmt.Printf("  Passed: %d\n", tr.successCount)
	fmt.Printf("  Failed: %d\n", tr.errorCount)
	fmt.Println()

	if tr.errorCount > 0 {
		fmt.Println("Failures:")
		for _, err := range tr.errors {
			fmt.Printf("  • %s\n", err)
		}
		fmt.Println()
		fmt.Printf("Tests completed with %d failure(s)\n", tr.errorCount)
		return
	}
	fmt.Println("All tests passed! ✓")
}

// =============================================================================
// Main
// =============================================================================

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the API")
	verbose := flag.Bool("v", false, "Verbose output (show sunrise and sunset)")
	flag.Parse()

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(*baseURL + "/health")
	if err != nil {
		fmt.Printf("Error: Cannot connect to %s\n", *baseURL)
		fmt.Println("Make sure the API server is running.")
		os.Exit(1)
	}
	resp.Body.Close()

	runner := NewTestRunner(*baseURL, *verbose)
	runner.Run()

	if runner.errorCount > 0 {
		os.Exit(1)
	}
}
