package scraper

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

var pageParamRe = regexp.MustCompile(`page=\d+`)

const (
	preClickSettleMs = 1000
	networkIdleMs    = 5000
	clickFallbackMs  = 2000
	postNavigateMs   = 2000
)

// Paginator advances a page to the next result page. One Advance call
// is one attempted advance: click strategies in priority order, then a
// page= URL rewrite as last resort.
type Paginator struct {
	logger *slog.Logger
}

func NewPaginator(logger *slog.Logger) *Paginator {
	return &Paginator{logger: logger.With("component", "paginator")}
}

// nextPageSelectors mixes page-number-specific targets for the wanted
// page with generic next controls, most specific first.
func nextPageSelectors(next int) []string {
	return []string{
		fmt.Sprintf(`[class*="pagination"] [aria-label="Page %d"]`, next),
		fmt.Sprintf(`[class*="pagination"] a:text("%d")`, next),
		fmt.Sprintf(`button:text("%d")`, next),
		fmt.Sprintf(`a[href*="page=%d"]`, next),
		`[class*="pagination"] [aria-label*="next"]`,
		`[class*="pagination"] button:has-text(">")`,
		`[class*="pagination"] a:has-text(">")`,
		`.next a`,
		`a[rel="next"]`,
		`.pagination__next`,
		`.pagination__item--next`,
		`[class*="pagination"] button:not([disabled])`,
		`[class*="pagination"] a:not([class*="disabled"])`,
		`li.next a`,
	}
}

// Advance tries to reach page currentPage+1 and reports whether it got
// there. A false return means pagination is exhausted for this site.
func (p *Paginator) Advance(page Page, currentPage int) bool {
	for _, selector := range nextPageSelectors(currentPage + 1) {
		switch p.tryClick(page, selector) {
		case attemptAdvanced:
			p.logger.Debug("advanced via click", "selector", selector, "page", currentPage+1)
			return true
		case attemptFailed, attemptNoMatch:
			continue
		}
	}

	if p.tryURLRewrite(page, currentPage) {
		p.logger.Debug("advanced via url rewrite", "page", currentPage+1)
		return true
	}

	return false
}

// tryClick attempts one selector: locate a visible control, click it,
// and treat any URL or HTML change as a successful advance. Errors are
// consumed as "this selector did not work".
func (p *Paginator) tryClick(page Page, selector string) attemptResult {
	control, err := page.First(selector)
	if err != nil {
		return attemptFailed
	}
	if control == nil {
		return attemptNoMatch
	}

	beforeURL := page.URL()
	beforeHTML, err := page.Content()
	if err != nil {
		return attemptFailed
	}

	if err := control.ScrollIntoView(); err != nil {
		return attemptFailed
	}
	page.WaitForTimeout(preClickSettleMs)

	if err := control.Click(); err != nil {
		return attemptFailed
	}

	if err := page.WaitForNetworkIdle(networkIdleMs); err != nil {
		page.WaitForTimeout(clickFallbackMs)
	}

	afterURL := page.URL()
	afterHTML, err := page.Content()
	if err != nil {
		return attemptFailed
	}

	if beforeURL != afterURL || beforeHTML != afterHTML {
		return attemptAdvanced
	}
	return attemptNoMatch
}

// tryURLRewrite navigates to the current URL with page= bumped to the
// next page, appending the parameter when absent.
func (p *Paginator) tryURLRewrite(page Page, currentPage int) bool {
	current := page.URL()

	var next string
	if pageParamRe.MatchString(current) {
		next = pageParamRe.ReplaceAllString(current, fmt.Sprintf("page=%d", currentPage+1))
	} else {
		separator := "?"
		if strings.Contains(current, "?") {
			separator = "&"
		}
		next = fmt.Sprintf("%s%spage=%d", current, separator, currentPage+1)
	}

	if err := page.Navigate(next); err != nil {
		p.logger.Debug("url rewrite navigation failed", "url", next, "error", err)
		return false
	}
	page.WaitForTimeout(postNavigateMs)
	return true
}
