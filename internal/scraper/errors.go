package scraper

import (
	"fmt"
	"strings"
)

// ScrapingError reports that a structural precondition of a page was not
// met: the page could not be fetched at all, or it lacks the anchor element
// a scraper needs. It aborts one entity, never a whole batch.
type ScrapingError struct {
	Msg     string
	Scraper string
	URL     string
}

func (e *ScrapingError) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = "no page document"
	}
	var details []string
	if e.Scraper != "" {
		details = append(details, e.Scraper)
	}
	if e.URL != "" {
		details = append(details, e.URL)
	}
	if len(details) > 0 {
		return fmt.Sprintf("%s [%s]", msg, strings.Join(details, ", "))
	}
	return msg
}

func newScrapingError(msg, scraper, url string) *ScrapingError {
	return &ScrapingError{Msg: msg, Scraper: scraper, URL: url}
}
