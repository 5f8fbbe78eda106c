package scraper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"

	"github.com/mkarpinski/stadiums/internal/logger"
)

const (
	// UserAgent identifies the scraper to the source sites.
	UserAgent = "stadiums-cli/1.0 (github.com/mkarpinski/stadiums)"

	// DefaultTimeout bounds one HTTP request.
	DefaultTimeout = 15 * time.Second

	// DefaultRPS is the fetch rate ceiling. The sites are hand-maintained
	// hobby projects; stay polite.
	DefaultRPS = 1.0

	maxFetchRetries = 4
)

// Fetcher produces parsed page content for a URL. A nil document with a nil
// error means the page had no usable content; callers treat both the same.
type Fetcher interface {
	FetchDocument(url string) (*goquery.Document, error)
	FetchJSON(url string, v any) error
}

// HTTPFetcher fetches over plain HTTP with a token-bucket rate limit and
// exponential-backoff retry of transient failures (connection errors and
// 5xx responses; other non-200 statuses fail immediately).
type HTTPFetcher struct {
	client  *http.Client
	limiter *rate.Limiter
}

// NewHTTPFetcher creates a fetcher with the given request timeout and
// requests-per-second ceiling.
func NewHTTPFetcher(timeout time.Duration, rps float64) *HTTPFetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if rps <= 0 {
		rps = DefaultRPS
	}
	return &HTTPFetcher{
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// FetchDocument fetches a URL and parses the body into a document tree.
func (f *HTTPFetcher) FetchDocument(url string) (*goquery.Document, error) {
	body, err := f.get(url)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, nil
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return doc, nil
}

// FetchJSON fetches a URL and decodes the body into v.
func (f *HTTPFetcher) FetchJSON(url string, v any) error {
	body, err := f.get(url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decoding JSON: %w", err)
	}
	return nil
}

func (f *HTTPFetcher) get(url string) ([]byte, error) {
	if err := f.limiter.Wait(context.Background()); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}
	logger.Debug("fetching", logger.Fields{"url": url})

	var body []byte
	attempt := func() error {
		req, err := http.NewRequest(http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("creating request: %w", err))
		}
		req.Header.Set("User-Agent", UserAgent)

		logger.IncrCounter("scraper.http_requests")
		resp, err := f.client.Do(req)
		if err != nil {
			return fmt.Errorf("fetching page: %w", err)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode >= 500:
			return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		case resp.StatusCode != http.StatusOK:
			return backoff.Permanent(fmt.Errorf("unexpected status code: %d", resp.StatusCode))
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("reading body: %w", err)
		}
		return nil
	}

	err := backoff.Retry(attempt, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxFetchRetries))
	if err != nil {
		return nil, err
	}
	return body, nil
}
