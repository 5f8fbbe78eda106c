package scraper

import (
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/mkarpinski/stadiums/internal/stadium"
)

// stubFetcher serves canned fixture pages keyed by URL.
type stubFetcher struct {
	pages map[string]string
}

func (f *stubFetcher) FetchDocument(url string) (*goquery.Document, error) {
	html, ok := f.pages[url]
	if !ok {
		return nil, fmt.Errorf("no stub page for %s", url)
	}
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

func (f *stubFetcher) FetchJSON(url string, v any) error {
	return fmt.Errorf("no stub JSON for %s", url)
}

func loadFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile("../../testdata/fixtures/" + name)
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}
	return string(data)
}

func TestScrapeOne(t *testing.T) {
	url := "http://stadiumdb.com/stadiums/pol/stadion_slaski"
	fetcher := &stubFetcher{pages: map[string]string{
		url: loadFixture(t, "stadium_details.html"),
	}}
	s := New(fetcher, NewDiagnostics(), Throttle{})

	got, err := s.ScrapeOne(stadium.BasicStadium{
		Name:     "Stadion Śląski",
		URL:      url,
		Country:  "Poland",
		Town:     "Chorzów",
		Capacity: 54_378,
	})
	if err != nil {
		t.Fatalf("ScrapeOne failed: %v", err)
	}

	if got.Address != "ul. Katowicka 10, Chorzów" {
		t.Errorf("address = %q", got.Address)
	}

	if len(got.OtherNames) != 2 {
		t.Fatalf("other names = %+v", got.OtherNames)
	}
	if got.OtherNames[0].Name != "Kocioł Czarownic" || got.OtherNames[0].Period != nil {
		t.Errorf("first nickname = %+v", got.OtherNames[0])
	}
	if got.OtherNames[1].Period == nil || !got.OtherNames[1].Period.IsRange() {
		t.Errorf("second nickname period = %+v", got.OtherNames[1].Period)
	}

	if len(got.CapacityDetails) != 2 {
		t.Fatalf("capacity details = %+v", got.CapacityDetails)
	}
	if got.CapacityDetails[0].Capacity != 10_000 || got.CapacityDetails[0].Designation != "north stand" {
		t.Errorf("first sub-capacity = %+v", got.CapacityDetails[0])
	}
	if got.CapacityDetails[0].Note != "" {
		t.Errorf("note duplicating designation kept: %+v", got.CapacityDetails[0])
	}
	if got.CapacityDetails[1].Capacity != 7_500 {
		t.Errorf("additive sub-capacity = %+v", got.CapacityDetails[1])
	}

	if got.FloodlightsLux == nil || *got.FloodlightsLux != 2_000 {
		t.Errorf("floodlights = %v", got.FloodlightsLux)
	}

	if got.RecordAttendance == nil || *got.RecordAttendance != 120_000 {
		t.Errorf("record attendance = %v", got.RecordAttendance)
	}
	if got.RecordAttendanceDetails != "Poland - England, 1973" {
		t.Errorf("record attendance details = %q", got.RecordAttendanceDetails)
	}

	// Two Cost rows: the first is garbage, so the second parseable one wins.
	if got.Cost == nil {
		t.Fatal("cost not parsed")
	}
	if got.Cost.Amount != 45_000_000 || got.Cost.Currency != "€" {
		t.Errorf("cost = %+v", got.Cost)
	}

	if got.Design == nil || !got.Design.Start.Equal(stadium.NewDate(1951, time.January, 1).Time) {
		t.Errorf("design = %+v", got.Design)
	}
	if got.Construction == nil || !got.Construction.IsRange() {
		t.Fatalf("construction = %+v", got.Construction)
	}
	if !got.Construction.End.Equal(stadium.NewDate(1956, time.January, 1).Time) {
		t.Errorf("construction end = %v", got.Construction.End)
	}

	if got.Inauguration == nil || !got.Inauguration.Equal(stadium.NewDate(1956, time.July, 22).Time) {
		t.Errorf("inauguration = %v", got.Inauguration)
	}
	if got.InaugurationDetails != "Poland - East Germany" {
		t.Errorf("inauguration details = %q", got.InaugurationDetails)
	}

	if len(got.Renovations) != 3 {
		t.Errorf("renovations = %+v", got.Renovations)
	}

	if got.Designer != "Julian Brzuchowski" {
		t.Errorf("designer = %q", got.Designer)
	}
	if got.Contractor != "Budimex" {
		t.Errorf("contractor = %q", got.Contractor)
	}
	if got.Investor != "Województwo Śląskie" {
		t.Errorf("investor = %q", got.Investor)
	}

	if got.Note != "Hosted speedway finals, national team venue until 2012" {
		t.Errorf("note = %q", got.Note)
	}

	if !strings.HasPrefix(got.Description, "Stadion Śląski\n") {
		t.Errorf("description = %q", got.Description)
	}
	if !strings.Contains(got.Description, "fully covered bowl") {
		t.Errorf("description missing paragraph: %q", got.Description)
	}

	if !got.IsModern() {
		t.Error("stadium with a 2011 renovation should be modern")
	}

	unknown := s.Diagnostics().Unknown()
	urls, ok := unknown["Capacity of beer stands"]
	if !ok || len(urls) != 1 || urls[0] != url {
		t.Errorf("unrecognized header not recorded: %+v", unknown)
	}
}

func TestScrapeOneDuplicateRows(t *testing.T) {
	url := "http://stadiumdb.com/stadiums/pol/stadion_miejski"
	fetcher := &stubFetcher{pages: map[string]string{
		url: loadFixture(t, "stadium_duplicate_rows.html"),
	}}
	s := New(fetcher, NewDiagnostics(), Throttle{})

	got, err := s.ScrapeOne(stadium.BasicStadium{Name: "Stadion Miejski", URL: url})
	if err != nil {
		t.Fatalf("ScrapeOne failed: %v", err)
	}

	// Each label appears twice with a parseable first row; later duplicates
	// are ignored, never overwrite.
	if got.Cost == nil {
		t.Fatal("cost not parsed")
	}
	if got.Cost.Amount != 45_000_000 || got.Cost.Currency != "€" {
		t.Errorf("cost = %+v, want the first row's value", got.Cost)
	}

	if got.Construction == nil || !got.Construction.IsRange() {
		t.Fatalf("construction = %+v", got.Construction)
	}
	if !got.Construction.Start.Equal(stadium.NewDate(1953, time.January, 1).Time) ||
		!got.Construction.End.Equal(stadium.NewDate(1956, time.January, 1).Time) {
		t.Errorf("construction = %+v, want the first row's range", got.Construction)
	}

	if got.Inauguration == nil || !got.Inauguration.Equal(stadium.NewDate(1956, time.July, 22).Time) {
		t.Errorf("inauguration = %v, want the first row's date", got.Inauguration)
	}
}

func TestScrapeOneMissingTable(t *testing.T) {
	url := "http://stadiumdb.com/stadiums/eng/missing"
	fetcher := &stubFetcher{pages: map[string]string{
		url: loadFixture(t, "stadium_no_table.html"),
	}}
	s := New(fetcher, NewDiagnostics(), Throttle{})

	_, err := s.ScrapeOne(stadium.BasicStadium{Name: "Missing", URL: url})
	if err == nil {
		t.Fatal("expected an error for a page without the details table")
	}
	serr, ok := err.(*ScrapingError)
	if !ok {
		t.Fatalf("error is %T, want *ScrapingError", err)
	}
	if serr.URL != url {
		t.Errorf("error URL = %q", serr.URL)
	}
}

func TestParseInauguration(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		wantDate    stadium.Date
		wantDetails string
		wantNil     bool
	}{
		{
			name:     "bare date",
			text:     "21.07.1955",
			wantDate: stadium.NewDate(1955, time.July, 21),
		},
		{
			name:        "date with aside",
			text:        "21.07.1955 (Poland - USSR)",
			wantDate:    stadium.NewDate(1955, time.July, 21),
			wantDetails: "Poland - USSR",
		},
		{
			name:        "date inside the aside",
			text:        "friendly match (21.07.1955)",
			wantDate:    stadium.NewDate(1955, time.July, 21),
			wantDetails: "friendly match",
		},
		{
			name:     "alternates keep first",
			text:     "21.07.1955, 30.08.1999",
			wantDate: stadium.NewDate(1955, time.July, 21),
		},
		{
			name:     "alternate before aside",
			text:     "1955, 1999 (reopening)",
			wantDate: stadium.NewDate(1955, time.January, 1),
		},
		{
			name:    "no date",
			text:    "unknown",
			wantNil: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, details := parseInauguration(tt.text)
			if tt.wantNil {
				if got != nil {
					t.Fatalf("parseInauguration(%q) = %v, want nil", tt.text, got)
				}
				return
			}
			if got == nil {
				t.Fatalf("parseInauguration(%q) = nil", tt.text)
			}
			if !got.Equal(tt.wantDate.Time) {
				t.Errorf("parseInauguration(%q) date = %v, want %v", tt.text, got, tt.wantDate)
			}
			if details != tt.wantDetails {
				t.Errorf("parseInauguration(%q) details = %q, want %q", tt.text, details, tt.wantDetails)
			}
		})
	}
}
