package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/mkarpinski/stadiums/internal/stadium"
)

// OutputFormat specifies the output format.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// DumpSummary describes a completed dump run.
type DumpSummary struct {
	Path      string
	Countries []*stadium.CountryStadiumsData
	Elapsed   time.Duration
}

// WriteDumpSummary prints a human-readable summary of a dump run.
func WriteDumpSummary(w io.Writer, summary *DumpSummary) {
	total := 0
	for _, c := range summary.Countries {
		total += len(c.Stadiums)
	}
	fmt.Fprintf(w, "Dumped %d stadiums across %d countries in %s\n",
		total, len(summary.Countries), summary.Elapsed.Round(time.Second))
	for _, c := range summary.Countries {
		fmt.Fprintf(w, "  %s: %d stadiums (avg capacity %.0f)\n",
			c.Country.Name, len(c.Stadiums), c.AvgCapacity())
	}
	fmt.Fprintf(w, "Written to %s\n", summary.Path)
}

// WriteCountries prints the available countries in the given format.
func WriteCountries(w io.Writer, countries []stadium.Country, format OutputFormat) error {
	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(countries)
	case FormatText:
		for _, c := range countries {
			fmt.Fprintf(w, "%-5s %-12s %s\n", c.ID, c.Confederation, c.Name)
		}
		fmt.Fprintf(w, "\nTotal: %d countries\n", len(countries))
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
