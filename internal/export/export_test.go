package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tripledger/tripledger/internal/calendar"
	"github.com/tripledger/tripledger/internal/geo"
)

const testTableYAML = `
United States:
  California:
    Los Angeles: [34.0522, -118.2437]
Japan:
  Tokyo: [35.6762, 139.6503]
`

const home = "United States/California/Los Angeles"

// marchCalendar builds a one-month distance calendar with a three-night
// Tokyo stay checking out March 10.
func marchCalendar(t *testing.T) *calendar.Calendar {
	t.Helper()

	path := filepath.Join(t.TempDir(), "coordinates.yaml")
	if err := os.WriteFile(path, []byte(testTableYAML), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	table, err := geo.LoadTable(path)
	if err != nil {
		t.Fatalf("Failed to load table: %v", err)
	}

	homeCoords, err := table.Resolve(home)
	if err != nil {
		t.Fatalf("Failed to resolve home: %v", err)
	}

	cal, err := calendar.New(
		time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC),
		table, home, calendar.HomeDistance{Home: homeCoords})
	if err != nil {
		t.Fatalf("Failed to build calendar: %v", err)
	}

	checkout := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)
	if err := cal.SetLocation(checkout, 3, "Japan/Tokyo"); err != nil {
		t.Fatalf("SetLocation failed: %v", err)
	}

	return cal
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, marchCalendar(t)); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	var doc struct {
		Start string `json:"start"`
		End   string `json:"end"`
		Days  []struct {
			Date     string  `json:"date"`
			City     string  `json:"city"`
			Distance float64 `json:"distance"`
		} `json:"days"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}

	if doc.Start != "2024-03-01" || doc.End != "2024-03-31" {
		t.Errorf("Wrong span: %s to %s", doc.Start, doc.End)
	}
	if len(doc.Days) != 31 {
		t.Fatalf("Expected 31 days, got %d", len(doc.Days))
	}
	if doc.Days[0].Date != "2024-03-01" {
		t.Errorf("Days not date-sorted, first is %s", doc.Days[0].Date)
	}

	tokyoDays := 0
	for _, d := range doc.Days {
		if d.City == "Japan/Tokyo" {
			tokyoDays++
			if d.Distance <= 0 {
				t.Errorf("Date %s: Tokyo distance should be positive, got %f", d.Date, d.Distance)
			}
		}
	}
	if tokyoDays != 3 {
		t.Errorf("Expected 3 Tokyo days, got %d", tokyoDays)
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, marchCalendar(t)); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	if lines[0] != "date,city,lat,lon,distance_miles" {
		t.Errorf("Wrong header: %q", lines[0])
	}
	if len(lines) != 32 { // header + 31 days
		t.Errorf("Expected 32 lines, got %d", len(lines))
	}
	if !strings.Contains(out, "2024-03-09,Japan/Tokyo,35.6762,139.6503,") {
		t.Error("Missing Tokyo row for 2024-03-09")
	}
	if !strings.Contains(out, "2024-03-01,United States/California/Los Angeles,34.0522,-118.2437,0.0") {
		t.Error("Missing home row for 2024-03-01")
	}
}

func TestWriteICS(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteICS(&buf, marchCalendar(t), "Travel 2024", home); err != nil {
		t.Fatalf("WriteICS failed: %v", err)
	}

	out := buf.String()

	requiredFields := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"METHOD:PUBLISH",
		"X-WR-CALNAME:Travel 2024",
		"END:VCALENDAR",
	}
	for _, field := range requiredFields {
		if !strings.Contains(out, field) {
			t.Errorf("ICS output missing required field: %s", field)
		}
	}

	// The whole stay collapses into one all-day event block
	if n := strings.Count(out, "BEGIN:VEVENT"); n != 1 {
		t.Errorf("Expected 1 event, got %d", n)
	}
	if !strings.Contains(out, "DTSTART;VALUE=DATE:20240308") {
		t.Error("Event should start on the first morning")
	}
	if !strings.Contains(out, "DTEND;VALUE=DATE:20240311") {
		t.Error("All-day event should end the day after checkout")
	}
	if !strings.Contains(out, "SUMMARY:Tokyo") {
		t.Error("Event summary should use the place's last segment")
	}
	if strings.Contains(out, "BEGIN:VALARM") {
		t.Error("Subscription feed should not carry alarms")
	}
}

func TestCollectGeoJSON(t *testing.T) {
	fc := Collect(marchCalendar(t))

	if fc.Type != "FeatureCollection" {
		t.Errorf("Wrong type: %q", fc.Type)
	}
	if len(fc.Features) != 2 { // home and Tokyo
		t.Fatalf("Expected 2 features, got %d", len(fc.Features))
	}

	tokyo := fc.Features[1]
	if tokyo.Properties["name"] != "Tokyo" {
		t.Errorf("Wrong feature name: %v", tokyo.Properties["name"])
	}
	if tokyo.Properties["days"] != 3 {
		t.Errorf("Expected 3 Tokyo days, got %v", tokyo.Properties["days"])
	}

	// GeoJSON is [lon, lat]
	coords := tokyo.Geometry.Coordinates
	if len(coords) != 2 || coords[0] != 139.6503 || coords[1] != 35.6762 {
		t.Errorf("Wrong coordinate order: %v", coords)
	}
}

func TestWriteGeoJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteGeoJSON(&buf, marchCalendar(t)); err != nil {
		t.Fatalf("WriteGeoJSON failed: %v", err)
	}

	var fc FeatureCollection
	if err := json.Unmarshal(buf.Bytes(), &fc); err != nil {
		t.Fatalf("Output is not valid GeoJSON: %v", err)
	}
	if len(fc.Features) != 2 {
		t.Errorf("Expected 2 features, got %d", len(fc.Features))
	}
}

func TestWriteHTML(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteHTML(&buf, marchCalendar(t), "Travel 2024", home); err != nil {
		t.Fatalf("WriteHTML failed: %v", err)
	}

	out := buf.String()

	if !strings.Contains(out, "Travel 2024") {
		t.Error("Report should carry its title")
	}
	if !strings.Contains(out, "Japan/Tokyo") {
		t.Error("Report should list the Tokyo stay")
	}
	if !strings.Contains(out, "3 days away from home") {
		t.Error("Report should count away days")
	}
	if strings.Contains(out, "\n  ") {
		t.Error("Report should be minified")
	}
}
