package scraper

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/webharvest/review-scraper/internal/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeElement struct {
	clickErr  error
	scrollErr error
	onClick   func()
	clicks    int
}

func (e *fakeElement) Click() error {
	e.clicks++
	if e.onClick != nil {
		e.onClick()
	}
	return e.clickErr
}

func (e *fakeElement) ScrollIntoView() error {
	return e.scrollErr
}

type fakePage struct {
	url            string
	html           string
	contentErr     error
	elements       map[string]*fakeElement
	evaluateFn     func(script string, args ...any) (any, error)
	navigateFn     func(url string) error
	networkIdleErr error
	closed         bool
	navigations    []string
}

func (p *fakePage) URL() string { return p.url }

func (p *fakePage) Content() (string, error) { return p.html, p.contentErr }

func (p *fakePage) Evaluate(script string, args ...any) (any, error) {
	if p.evaluateFn != nil {
		return p.evaluateFn(script, args...)
	}
	return nil, nil
}

func (p *fakePage) Navigate(url string) error {
	p.navigations = append(p.navigations, url)
	if p.navigateFn != nil {
		return p.navigateFn(url)
	}
	p.url = url
	return nil
}

func (p *fakePage) WaitForTimeout(ms float64) {}

func (p *fakePage) WaitForNetworkIdle(timeoutMs float64) error { return p.networkIdleErr }

func (p *fakePage) First(selector string) (Element, error) {
	el, ok := p.elements[selector]
	if !ok || el == nil {
		return nil, nil
	}
	return el, nil
}

func (p *fakePage) Close() error {
	p.closed = true
	return nil
}

type fakeSession struct {
	page    *fakePage
	pageErr error
}

func (s *fakeSession) NewPage() (Page, error) {
	if s.pageErr != nil {
		return nil, s.pageErr
	}
	return s.page, nil
}

// fakeExtractor returns one batch per page visit, keyed by call order.
type fakeExtractor struct {
	batches [][]models.Review
	calls   int
}

func (e *fakeExtractor) Extract(_ context.Context, _, _ string) []models.Review {
	i := e.calls
	e.calls++
	if i >= len(e.batches) {
		return nil
	}
	return e.batches[i]
}

type noopLoader struct{}

func (noopLoader) Load(Page) {}

// fakePager advances until the site runs out of pages.
type fakePager struct {
	totalPages int
	calls      int
}

func (p *fakePager) Advance(_ Page, currentPage int) bool {
	p.calls++
	return currentPage < p.totalPages
}

func reviewBatch(prefix string, n int) []models.Review {
	batch := make([]models.Review, n)
	for i := range batch {
		batch[i] = models.Review{
			Title:    "Review",
			Text:     fmt.Sprintf("%s body %d with enough words", prefix, i+1),
			UserName: models.AnonymousReviewer,
		}
	}
	return batch
}
