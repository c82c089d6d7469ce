package govuk

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/paydrift/waterfall/date"
)

const feed = `{
  "england-and-wales": {
    "division": "england-and-wales",
    "events": [
      {"title": "Christmas Day", "date": "2025-12-25", "notes": "", "bunting": true},
      {"title": "Boxing Day", "date": "2025-12-26", "notes": "", "bunting": true}
    ]
  },
  "scotland": {
    "division": "scotland",
    "events": [
      {"title": "2nd January", "date": "2026-01-02", "notes": "", "bunting": true}
    ]
  }
}`

func TestDecode(t *testing.T) {
	cal, err := Decode(strings.NewReader(feed), EnglandAndWales)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if cal.Len() != 2 {
		t.Errorf("calendar has %d holidays, want 2", cal.Len())
	}
	if !cal.Holiday(date.MustParse("2025-12-25")) {
		t.Error("Christmas Day should be a holiday")
	}
	if cal.Holiday(date.MustParse("2026-01-02")) {
		t.Error("a Scottish holiday leaked into england-and-wales")
	}
}

func TestDecodeUnknownDivision(t *testing.T) {
	if _, err := Decode(strings.NewReader(feed), "mars"); err == nil {
		t.Error("unknown division should fail")
	}
}

func TestLoad(t *testing.T) {
	file := filepath.Join(t.TempDir(), "bank-holidays.json")
	if err := os.WriteFile(file, []byte(feed), 0644); err != nil {
		t.Fatal(err)
	}
	cal, err := Load(file, Scotland)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cal.Holiday(date.MustParse("2026-01-02")) {
		t.Error("2nd January should be a Scottish holiday")
	}
}
