// Package govuk loads UK bank holidays from the GOV.UK public feed into a
// waterfall.HolidayCalendar. The feed covers all three divisions; a run uses
// exactly one of them.
package govuk

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/paydrift/waterfall"
	"github.com/paydrift/waterfall/date"
)

// FeedURL is the GOV.UK bank holidays feed.
const FeedURL = "https://www.gov.uk/bank-holidays.json"

// Divisions of the feed.
const (
	EnglandAndWales = "england-and-wales"
	Scotland        = "scotland"
	NorthernIreland = "northern-ireland"
)

// jevent is one holiday entry in the feed.
type jevent struct {
	Title string    `json:"title"`
	Date  date.Date `json:"date"`
}

// jdivision is one region's section of the feed.
type jdivision struct {
	Division string   `json:"division"`
	Events   []jevent `json:"events"`
}

// Decode parses the feed from r and returns the calendar for the given division.
func Decode(r io.Reader, division string) (waterfall.HolidayCalendar, error) {
	var feed map[string]jdivision
	if err := json.NewDecoder(r).Decode(&feed); err != nil {
		return waterfall.HolidayCalendar{}, fmt.Errorf("cannot decode bank holidays feed: %w", err)
	}
	div, ok := feed[division]
	if !ok {
		return waterfall.HolidayCalendar{}, fmt.Errorf("unknown division %q in bank holidays feed", division)
	}
	days := make([]date.Date, 0, len(div.Events))
	for _, e := range div.Events {
		days = append(days, e.Date)
	}
	return waterfall.NewHolidayCalendar(days...), nil
}

// Load reads the feed from a local file, for offline or pinned holiday data.
func Load(filename, division string) (waterfall.HolidayCalendar, error) {
	f, err := os.Open(filename)
	if err != nil {
		return waterfall.HolidayCalendar{}, err
	}
	defer f.Close()
	cal, err := Decode(f, division)
	if err != nil {
		return waterfall.HolidayCalendar{}, fmt.Errorf("in %q: %w", filename, err)
	}
	return cal, nil
}

// Fetch downloads the feed and returns the calendar for the given division.
func Fetch(division string) (waterfall.HolidayCalendar, error) {
	client := &http.Client{Timeout: 30 * time.Second}
	log.Println("Downloading bank holidays from", FeedURL)
	resp, err := client.Get(FeedURL)
	if err != nil {
		return waterfall.HolidayCalendar{}, fmt.Errorf("cannot fetch bank holidays: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return waterfall.HolidayCalendar{}, fmt.Errorf("cannot fetch bank holidays: %s", resp.Status)
	}
	return Decode(resp.Body, division)
}
