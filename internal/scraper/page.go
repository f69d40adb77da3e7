package scraper

import (
	"context"
	"errors"

	"github.com/webharvest/review-scraper/internal/models"
)

var (
	ErrPageCreate = errors.New("failed to create page")
	ErrNavigation = errors.New("failed to navigate to initial url")
)

// Page is the browser capability the harvest pipeline needs from a live
// page. The playwright adapter in internal/browser implements it; tests
// drive the pipeline with fakes.
type Page interface {
	// URL returns the page's current address.
	URL() string
	// Content returns the full HTML snapshot of the page.
	Content() (string, error)
	// Evaluate runs a script in the page and returns its value.
	Evaluate(script string, args ...any) (any, error)
	// Navigate loads a url waiting for DOM content only. A non-OK
	// response is an error.
	Navigate(url string) error
	// WaitForTimeout sleeps for the given number of milliseconds.
	WaitForTimeout(ms float64)
	// WaitForNetworkIdle waits for the network-idle load state, erroring
	// after timeoutMs.
	WaitForNetworkIdle(timeoutMs float64) error
	// First returns the first visible element matching selector, or
	// nil when nothing visible matches.
	First(selector string) (Element, error)
	// Close releases the page.
	Close() error
}

// Element is a visible element located on a Page.
type Element interface {
	Click() error
	ScrollIntoView() error
}

// Session creates pages; one harvest run owns one page exclusively.
type Session interface {
	NewPage() (Page, error)
}

// attemptResult is the outcome of a single pagination strategy attempt.
// Strategy errors are consumed by the fallback chain, never propagated.
type attemptResult int

const (
	attemptNoMatch attemptResult = iota
	attemptFailed
	attemptAdvanced
)

// Extractor produces the review batch for one page visit.
type Extractor interface {
	Extract(ctx context.Context, pageURL, html string) []models.Review
}
