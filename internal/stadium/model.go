// Package stadium defines the typed records produced by the scraper and the
// free-text parsers that populate them: the cost parser, the date/duration
// parser, and the smaller field parsers they feed. Records are built once by
// the assembler and never mutated afterwards; every optional field left nil
// means "could not be determined", never zero.
package stadium

import (
	"fmt"
	"strings"

	"github.com/mkarpinski/stadiums/internal/parse"
)

// Country identifies one country on the listing site.
type Country struct {
	Name          string `json:"name"`
	ID            string `json:"id"`
	Confederation string `json:"confederation"`
}

var (
	Poland  = Country{Name: "Poland", ID: "pol", Confederation: "UEFA"}
	England = Country{Name: "England", ID: "eng", Confederation: "UEFA"}
	USA     = Country{Name: "United States of America", ID: "usa", Confederation: "CONCACAF"}
)

// Town carries the statistical data scraped for Polish towns.
type Town struct {
	Name       string `json:"name"`
	County     string `json:"county"`
	Province   string `json:"province"`
	Population int    `json:"population"`
	AreaHa     int    `json:"area_ha,omitempty"`
}

// League is a competition a stadium hosts. Tier 0 marks a national stadium;
// nil means the listing groups it under "Other".
type League struct {
	Name string `json:"name"`
	Tier *int   `json:"tier,omitempty"`
}

// BasicStadium is the identity scraped from a country listing page, before
// the detail page has been visited.
type BasicStadium struct {
	Name     string   `json:"name"`
	URL      string   `json:"url"`
	Country  string   `json:"country"`
	Town     string   `json:"town"`
	TownInfo *Town    `json:"town_info,omitempty"`
	Clubs    []string `json:"clubs"`
	League   League   `json:"league"`
	Capacity int      `json:"capacity"`
}

// tierSteps maps capacity thresholds to tiers I..XI; anything below the last
// threshold is tier XII.
var tierSteps = []int{75_000, 50_000, 34_000, 23_000, 15_550, 10_500, 7_100, 4_800, 3_250, 2_200, 1_500}

var romans = []string{"I", "II", "III", "IV", "V", "VI", "VII", "VIII", "IX", "X", "XI", "XII"}

// Tier buckets the stadium by capacity into roman-numeral tiers. The steps
// approximate a geometric ladder with factor ~1.48 starting at 1000.
func (b BasicStadium) Tier() string {
	for i, step := range tierSteps {
		if b.Capacity >= step {
			return romans[i]
		}
	}
	return romans[len(romans)-1]
}

// Cost is a monetary amount with its currency token (a symbol or ISO-like
// code). The amount is already expanded by any magnitude qualifier.
type Cost struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency,omitempty"`
}

// Add sums two costs. Summed costs must share a currency. Note that
// compound-cost parsing drops a term that fails this check (the first
// currency wins) instead of failing the whole parse; see ParseCost.
func (c Cost) Add(other Cost) (Cost, error) {
	if c.Currency != other.Currency {
		return Cost{}, fmt.Errorf("cannot add costs with different currencies: %q vs %q", c.Currency, other.Currency)
	}
	return Cost{Amount: c.Amount + other.Amount, Currency: c.Currency}, nil
}

// Nickname is a display name with an optional period it was in use.
type Nickname struct {
	Name   string `json:"name"`
	Period *Span  `json:"duration,omitempty"`
}

// ParseNicknames splits a comma-delimited list of names, attaching a parsed
// period when a parenthesized aside carries one ("Old Name (1960-1975)").
func ParseNicknames(text string) []Nickname {
	var names []Nickname
	for _, token := range strings.Split(text, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		main, detail := parse.SplitParenthesized(token)
		if main == "" {
			continue
		}
		var period *Span
		if detail != "" {
			period = ParseSpan(detail)
		}
		names = append(names, Nickname{Name: main, Period: period})
	}
	return names
}

// SubCapacity is a partial seating count for one designated section of the
// venue, as distinct from total capacity.
type SubCapacity struct {
	Capacity    int    `json:"capacity"`
	Designation string `json:"designation,omitempty"`
	Note        string `json:"note,omitempty"`
}

// Stadium is the complete record assembled from one detail page. All detail
// fields are optional; nil/empty means the page did not yield the value.
type Stadium struct {
	BasicStadium
	CapacityDetails         []SubCapacity `json:"capacity_details,omitempty"`
	Address                 string        `json:"address,omitempty"`
	OtherNames              []Nickname    `json:"other_names,omitempty"`
	FloodlightsLux          *int          `json:"floodlights_lux,omitempty"`
	RecordAttendance        *int          `json:"record_attendance,omitempty"`
	RecordAttendanceDetails string        `json:"record_attendance_details,omitempty"`
	Cost                    *Cost         `json:"cost,omitempty"`
	Design                  *Span         `json:"design,omitempty"`
	Construction            *Span         `json:"construction,omitempty"`
	Inauguration            *Date         `json:"inauguration,omitempty"`
	InaugurationDetails     string        `json:"inauguration_details,omitempty"`
	Renovations             []Span        `json:"renovations,omitempty"`
	Designer                string        `json:"designer,omitempty"`
	StructuralEngineer      string        `json:"structural_engineer,omitempty"`
	Contractor              string        `json:"contractor,omitempty"`
	Investor                string        `json:"investor,omitempty"`
	Note                    string        `json:"note,omitempty"`
	TrackLengthMetres       *int          `json:"track_length_metres,omitempty"`
	Description             string        `json:"description,omitempty"`
}

// modernEra is the inauguration of Korona Kielce's arena, taken as the start
// of the current stadium-building wave.
var modernEra = NewDate(2006, 4, 1)

// IsModern reports whether the latest known lifecycle date (design end,
// construction end, inauguration, or last renovation end) falls on or after
// the modern-era threshold. Records with no temporal fields are not modern.
func (s *Stadium) IsModern() bool {
	var candidates []Date
	if s.Design != nil {
		candidates = append(candidates, s.Design.Latest())
	}
	if s.Construction != nil {
		candidates = append(candidates, s.Construction.Latest())
	}
	if s.Inauguration != nil {
		candidates = append(candidates, *s.Inauguration)
	}
	if len(s.Renovations) > 0 {
		candidates = append(candidates, s.Renovations[len(s.Renovations)-1].Latest())
	}
	if len(candidates) == 0 {
		return false
	}
	latest := candidates[0]
	for _, d := range candidates[1:] {
		if d.After(latest.Time) {
			latest = d
		}
	}
	return !latest.Before(modernEra.Time)
}

// CountryStadiumsData groups one country's scraped stadiums with the listing
// URL they came from.
type CountryStadiumsData struct {
	Country  Country    `json:"country"`
	URL      string     `json:"url"`
	Stadiums []*Stadium `json:"stadiums"`
}

// AvgCapacity averages capacity over all stadiums.
func (d *CountryStadiumsData) AvgCapacity() float64 {
	if len(d.Stadiums) == 0 {
		return 0
	}
	var total int
	for _, s := range d.Stadiums {
		total += s.Capacity
	}
	return float64(total) / float64(len(d.Stadiums))
}

// AvgCapacityAtTier averages capacity over stadiums whose league sits at the
// given tier; ok is false when the country has none.
func (d *CountryStadiumsData) AvgCapacityAtTier(tier int) (float64, bool) {
	var total, count int
	for _, s := range d.Stadiums {
		if s.League.Tier != nil && *s.League.Tier == tier {
			total += s.Capacity
			count++
		}
	}
	if count == 0 {
		return 0, false
	}
	return float64(total) / float64(count), true
}
