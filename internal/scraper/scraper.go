package scraper

import (
	"fmt"
	"iter"
	"strings"
	"time"

	"github.com/mkarpinski/stadiums/internal/locale"
	"github.com/mkarpinski/stadiums/internal/logger"
	"github.com/mkarpinski/stadiums/internal/stadium"
)

const (
	listingURL   = "http://stadiumdb.com/stadiums/%s"
	listingURLPL = "http://stadiony.net/stadiony/%s"
	countriesURL = "http://stadiumdb.com/stadiums"
)

// Scraper drives the fetch-dispatch-assemble pipeline for stadium pages.
// It is single-threaded by design: one detail page at a time, with a
// throttling delay between fetches.
type Scraper struct {
	fetcher  Fetcher
	diag     *Diagnostics
	throttle Throttle
}

// New creates a Scraper. A nil fetcher gets the default HTTP one.
func New(fetcher Fetcher, diag *Diagnostics, throttle Throttle) *Scraper {
	if fetcher == nil {
		fetcher = NewHTTPFetcher(DefaultTimeout, DefaultRPS)
	}
	if diag == nil {
		diag = NewDiagnostics()
	}
	return &Scraper{fetcher: fetcher, diag: diag, throttle: throttle}
}

// Diagnostics returns the accumulator for unrecognized headers.
func (s *Scraper) Diagnostics() *Diagnostics {
	return s.diag
}

// normalize maps the typographic glyph variants the source pages mix freely
// onto their plain ASCII forms.
func normalize(text string) string {
	r := strings.NewReplacer("–", "-", "−", "-", "’", "'")
	return r.Replace(text)
}

// ScrapeOne fetches one stadium's detail page and assembles its record.
// It fails with *ScrapingError when the page lacks the details table; any
// single field failing to parse only leaves that field unset.
func (s *Scraper) ScrapeOne(basic stadium.BasicStadium) (*stadium.Stadium, error) {
	doc, err := s.fetcher.FetchDocument(basic.URL)
	if err != nil || doc == nil {
		return nil, newScrapingError("no page document", "details", basic.URL)
	}
	table := doc.Find("table.stadium-info")
	if table.Length() == 0 {
		return nil, newScrapingError(
			"page contains no 'table' tag of class 'stadium-info'", "details", basic.URL)
	}

	a := newAssembler(basic, locale.ForURL(basic.URL), s.diag)
	return a.assemble(doc, table), nil
}

// Stadiums returns a lazy sequence over one country's stadium records.
// An entity whose detail page fails structurally is logged and skipped, so
// the sequence always runs to the end of the listing. Re-ranging the
// sequence re-scrapes.
func (s *Scraper) Stadiums(country stadium.Country) (iter.Seq[*stadium.Stadium], error) {
	basics, err := s.BasicStadiums(country)
	if err != nil {
		return nil, err
	}
	logger.Info("stadiums to scrape", logger.Fields{
		"country": country.Name,
		"count":   len(basics),
	})
	return func(yield func(*stadium.Stadium) bool) {
		for _, basic := range basics {
			st, err := s.ScrapeOne(basic)
			s.throttle.Sleep()
			if err != nil {
				logger.Error("scraping failed", logger.Fields{
					"stadium": basic.Name,
					"url":     basic.URL,
				}, err)
				continue
			}
			if !yield(st) {
				return
			}
		}
	}, nil
}

// CountryStadiums scrapes one country end to end. Returns nil data (not an
// error) when the listing yielded stadiums but none could be scraped.
func (s *Scraper) CountryStadiums(country stadium.Country) (*stadium.CountryStadiumsData, error) {
	started := time.Now()
	defer func() {
		logger.RecordTiming("scraper.country", time.Since(started))
	}()
	logger.Info("country scraping started", logger.Fields{"country": country.Name})

	seq, err := s.Stadiums(country)
	if err != nil {
		return nil, err
	}
	var stadiums []*stadium.Stadium
	for st := range seq {
		stadiums = append(stadiums, st)
	}
	url := fmt.Sprintf(listingURL, country.ID)
	if len(stadiums) == 0 {
		logger.Warn("nothing has been scraped", logger.Fields{"url": url})
		return nil, nil
	}
	return &stadium.CountryStadiumsData{Country: country, URL: url, Stadiums: stadiums}, nil
}
