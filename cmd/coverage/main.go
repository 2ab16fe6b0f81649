// Command coverage sweeps every day of one or more years for a location
// through the range endpoint and reports failures, element coverage and
// ephemeris gaps (days with no sunrise, sunset, moonrise or moonset).
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"time"
)

// APIResponse matches the API response structure
type APIResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *ErrorInfo      `json:"error,omitempty"`
}

type ErrorInfo struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type Element struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
}

type Report struct {
	Date    string `json:"date"`
	SunMoon struct {
		Sunrise  *time.Time `json:"sunrise"`
		Sunset   *time.Time `json:"sunset"`
		Moonrise *time.Time `json:"moonrise"`
		Moonset  *time.Time `json:"moonset"`
	} `json:"sunMoon"`
	Tithi     Element `json:"tithi"`
	Nakshatra Element `json:"nakshatra"`
	Yoga      Element `json:"yoga"`
	Summary   struct {
		DayType string `json:"dayType"`
	} `json:"summary"`
}

type RangeResponse struct {
	Count   int      `json:"count"`
	Reports []Report `json:"reports"`
}

// ChunkResult holds the outcome of one range request.
type ChunkResult struct {
	Start   string   `json:"start"`
	End     string   `json:"end"`
	Days    int      `json:"days"`
	Error   string   `json:"error,omitempty"`
	Reports []Report `json:"-"`
}

// Gaps counts days on which a rise or set did not happen.
type Gaps struct {
	Sunrise  []string `json:"sunrise"`
	Sunset   []string `json:"sunset"`
	Moonrise []string `json:"moonrise"`
	Moonset  []string `json:"moonset"`
}

// Analysis holds the analyzed results
type Analysis struct {
	TotalDays    int                `json:"total_days"`
	TotalSuccess int                `json:"total_success"`
	TotalFailed  int                `json:"total_failed"`
	Tithis       map[int]int        `json:"tithis"`
	Nakshatras   map[int]int        `json:"nakshatras"`
	Yogas        map[int]int        `json:"yogas"`
	DayTypes     map[string]int     `json:"day_types"`
	Gaps         Gaps               `json:"gaps"`
	Failures     []ChunkResult      `json:"failures"`
	ByYear       map[int]*YearStats `json:"by_year"`
}

type YearStats struct {
	Year        int `json:"year"`
	TotalDays   int `json:"total_days"`
	SuccessDays int `json:"success_days"`
}

const chunkDays = 31

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the API")
	startYear := flag.Int("start", 2024, "Start year")
	years := flag.Int("years", 1, "Number of years to sweep")
	lat := flag.Float64("lat", 28.6139, "Observer latitude")
	lon := flag.Float64("lon", 77.2090, "Observer longitude")
	verbose := flag.Bool("v", false, "Verbose output (show each day)")
	outputFile := flag.String("o", "", "Output results to JSON file")
	flag.Parse()

	endYear := *startYear + *years - 1

	fmt.Println("================================================================")
	fmt.Println("Panchang API - Full Coverage Sweep")
	fmt.Println("================================================================")
	fmt.Printf("Base URL:    %s\n", *baseURL)
	fmt.Printf("Location:    %.4f, %.4f\n", *lat, *lon)
	fmt.Printf("Date Range:  %d-01-01 to %d-12-31\n", *startYear, endYear)
	fmt.Println()

	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Get(*baseURL + "/health")
	if err != nil {
		fmt.Printf("Error: Cannot connect to %s\n", *baseURL)
		fmt.Println("Make sure the API server is running.")
		os.Exit(1)
	}
	resp.Body.Close()

	results := sweep(client, *baseURL, *lat, *lon, *startYear, endYear, *verbose)
	analysis := analyzeResults(results)

	printSummary(analysis, *startYear, endYear)
	printCoverage(analysis)
	printGaps(analysis)
	printFailures(analysis)

	if *outputFile != "" {
		saveResults(*outputFile, analysis)
	}

	if analysis.TotalFailed > 0 {
		os.Exit(1)
	}
}

func sweep(client *http.Client, baseURL string, lat, lon float64, startYear, endYear int, verbose bool) []ChunkResult {
	var results []ChunkResult

	start := time.Date(startYear, 1, 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(endYear, 12, 31, 0, 0, 0, 0, time.UTC)
	totalDays := int(last.Sub(start).Hours()/24) + 1
	fmt.Printf("Sweeping %d days in chunks of %d...\n\n", totalDays, chunkDays)

	done := 0
	for current := start; !current.After(last); current = current.AddDate(0, 0, chunkDays) {
		end := current.AddDate(0, 0, chunkDays-1)
		if end.After(last) {
			end = last
		}

		result := fetchChunk(client, baseURL, lat, lon, current, end)
		results = append(results, result)
		done += result.Days

		fmt.Printf("  Progress: %d%% (%d/%d)\n", done*100/totalDays, done, totalDays)
		if verbose {
			for _, r := range result.Reports {
				fmt.Printf("    %s: %-12s %-16s %s\n", r.Date, r.Tithi.Name, r.Nakshatra.Name, r.Summary.DayType)
			}
		}
	}

	fmt.Println()
	return results
}

func fetchChunk(client *http.Client, baseURL string, lat, lon float64, start, end time.Time) ChunkResult {
	result := ChunkResult{
		Start: start.Format("2006-01-02"),
		End:   end.Format("2006-01-02"),
		Days:  int(end.Sub(start).Hours()/24) + 1,
	}

	url := fmt.Sprintf("%s/api/v1/panchang/range?start=%s&end=%s&lat=%v&lon=%v",
		baseURL, result.Start, result.End, lat, lon)
	resp, err := client.Get(url)
	if err != nil {
		result.Error = fmt.Sprintf("Connection error: %v", err)
		return result
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		result.Error = fmt.Sprintf("Read error: %v", err)
		return result
	}

	var apiResp APIResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		result.Error = fmt.Sprintf("Parse error: %v", err)
		return result
	}
	if !apiResp.Success {
		result.Error = "Unknown error"
		if apiResp.Error != nil {
			result.Error = fmt.Sprintf("%s (%s)", apiResp.Error.Message, apiResp.Error.Code)
		}
		return result
	}

	var data RangeResponse
	if err := json.Unmarshal(apiResp.Data, &data); err != nil {
		result.Error = fmt.Sprintf("Data parse error: %v", err)
		return result
	}
	if data.Count != result.Days || len(data.Reports) != result.Days {
		result.Error = fmt.Sprintf("Expected %d days, got %d", result.Days, len(data.Reports))
		return result
	}

	result.Reports = data.Reports
	return result
}

func analyzeResults(results []ChunkResult) *Analysis {
	analysis := &Analysis{
		Tithis:     make(map[int]int),
		Nakshatras: make(map[int]int),
		Yogas:      make(map[int]int),
		DayTypes:   make(map[string]int),
		ByYear:     make(map[int]*YearStats),
	}

	for _, chunk := range results {
		analysis.TotalDays += chunk.Days
		if chunk.Error != "" {
			analysis.TotalFailed += chunk.Days
			analysis.Failures = append(analysis.Failures, chunk)
			continue
		}

		for _, r := range chunk.Reports {
			analysis.TotalSuccess++

			date, _ := time.Parse("2006-01-02", r.Date)
			year := date.Year()
			if _, ok := analysis.ByYear[year]; !ok {
				analysis.ByYear[year] = &YearStats{Year: year}
			}
			analysis.ByYear[year].SuccessDays++

			analysis.Tithis[r.Tithi.Index]++
			analysis.Nakshatras[r.Nakshatra.Index]++
			analysis.Yogas[r.Yoga.Index]++
			analysis.DayTypes[r.Summary.DayType]++

			if r.SunMoon.Sunrise == nil {
				analysis.Gaps.Sunrise = append(analysis.Gaps.Sunrise, r.Date)
			}
			if r.SunMoon.Sunset == nil {
				analysis.Gaps.Sunset = append(analysis.Gaps.Sunset, r.Date)
			}
			if r.SunMoon.Moonrise == nil {
				analysis.Gaps.Moonrise = append(analysis.Gaps.Moonrise, r.Date)
			}
			if r.SunMoon.Moonset == nil {
				analysis.Gaps.Moonset = append(analysis.Gaps.Moonset, r.Date)
			}
		}
	}

	for y := range analysis.ByYear {
		start := time.Date(y, 1, 1, 0, 0, 0, 0, time.UTC)
		analysis.ByYear[y].TotalDays = int(start.AddDate(1, 0, 0).Sub(start).Hours() / 24)
	}

	return analysis
}

func printSummary(analysis *Analysis, startYear, endYear int) {
	fmt.Println("================================================================")
	fmt.Println("SUMMARY")
	fmt.Println("================================================================")
	fmt.Printf("Total Days:  %d\n", analysis.TotalDays)
	fmt.Printf("Successful:  %d (%.1f%%)\n", analysis.TotalSuccess,
		float64(analysis.TotalSuccess)/float64(analysis.TotalDays)*100)
	fmt.Printf("Failed:      %d\n", analysis.TotalFailed)
	fmt.Println()

	fmt.Println("By Year:")
	for year := startYear; year <= endYear; year++ {
		stats, ok := analysis.ByYear[year]
		if !ok {
			fmt.Printf("  ✗ %d: no data\n", year)
			continue
		}
		status := "✓"
		if stats.SuccessDays < stats.TotalDays {
			status = "✗"
		}
		fmt.Printf("  %s %d: %d/%d days\n", status, year, stats.SuccessDays, stats.TotalDays)
	}
	fmt.Println()

	fmt.Println("Day types:")
	for _, k := range sortedKeys(analysis.DayTypes) {
		fmt.Printf("  %-14s %d\n", k, analysis.DayTypes[k])
	}
	fmt.Println()
}

// printCoverage flags element indexes never seen. A year at one place should
// reach every tithi, nakshatra and yoga.
func printCoverage(analysis *Analysis) {
	fmt.Println("================================================================")
	fmt.Println("ELEMENT COVERAGE")
	fmt.Println("================================================================")

	for _, c := range []struct {
		name  string
		seen  map[int]int
		count int
	}{
		{"Tithi", analysis.Tithis, 30},
		{"Nakshatra", analysis.Nakshatras, 27},
		{"Yoga", analysis.Yogas, 27},
	} {
		var missing []int
		for i := 1; i <= c.count; i++ {
			if c.seen[i] == 0 {
				missing = append(missing, i)
			}
		}
		if len(missing) == 0 {
			fmt.Printf("  ✓ %s: all %d seen\n", c.name, c.count)
		} else {
			fmt.Printf("  ✗ %s: %d/%d seen, missing %v\n", c.name, c.count-len(missing), c.count, missing)
		}
	}
	fmt.Println()
}

func printGaps(analysis *Analysis) {
	fmt.Println("================================================================")
	fmt.Println("EPHEMERIS GAPS (no crossing that day)")
	fmt.Println("================================================================")

	for _, g := range []struct {
		name  string
		dates []string
	}{
		{"Sunrise", analysis.Gaps.Sunrise},
		{"Sunset", analysis.Gaps.Sunset},
		{"Moonrise", analysis.Gaps.Moonrise},
		{"Moonset", analysis.Gaps.Moonset},
	} {
		fmt.Printf("  %-9s %d", g.name, len(g.dates))
		if len(g.dates) > 0 {
			shown := g.dates
			if len(shown) > 5 {
				shown = shown[:5]
			}
			fmt.Printf("  e.g. %v", shown)
		}
		fmt.Println()
	}
	fmt.Println()
}

func printFailures(analysis *Analysis) {
	if len(analysis.Failures) == 0 {
		fmt.Println("No failures! 🎉")
		return
	}

	fmt.Println("================================================================")
	fmt.Println("FAILURES (Range | Error)")
	fmt.Println("================================================================")
	for _, f := range analysis.Failures {
		fmt.Printf("  %s..%s | %s\n", f.Start, f.End, f.Error)
	}
	fmt.Println()
}

func saveResults(filename string, analysis *Analysis) {
	output := struct {
		GeneratedAt string    `json:"generated_at"`
		Analysis    *Analysis `json:"analysis"`
	}{
		GeneratedAt: time.Now().Format(time.RFC3339),
		Analysis:    analysis,
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		fmt.Printf("Error marshaling results: %v\n", err)
		return
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		fmt.Printf("Error writing file: %v\n", err)
		return
	}

	fmt.Printf("Results saved to: %s\n", filename)
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
