package scraper

import (
	"log/slog"
)

const scrollToBottomScript = `() => {
	window.scrollTo({
		top: document.body.scrollHeight,
		behavior: 'smooth'
	});
}`

const scrollHeightScript = `document.body.scrollHeight`

// loadMoreSelectors locate "show more" style controls that hide lazy
// review content. Text matchers use playwright's text-is engine.
var loadMoreSelectors = []string{
	`button:text-is("Show More")`,
	`button:text-is("Load More")`,
	`a:text-is("Show More")`,
	`a:text-is("Load More")`,
	`[class*="load-more"]`,
	`[class*="show-more"]`,
}

const (
	scrollIterations = 3
	scrollSettleMs   = 3000
	postScrollMs     = 2000
	postClickMs      = 3000
)

// DynamicLoader forces lazily loaded content to materialize before
// extraction: scroll-to-bottom passes until the page height stops
// growing, then "load more" control clicks.
type DynamicLoader struct {
	// maxClicks bounds clicks per load-more selector so a control that
	// stays visible after clicking cannot spin the loop forever.
	maxClicks int
	logger    *slog.Logger
}

func NewDynamicLoader(maxClicks int, logger *slog.Logger) *DynamicLoader {
	if maxClicks < 1 {
		maxClicks = 1
	}
	return &DynamicLoader{
		maxClicks: maxClicks,
		logger:    logger.With("component", "dynamic_loader"),
	}
}

// Load runs the scroll and click loops. Every failure here is soft:
// extraction proceeds with whatever the page managed to render.
func (d *DynamicLoader) Load(page Page) {
	var currentHeight float64

	for i := 0; i < scrollIterations; i++ {
		if _, err := page.Evaluate(scrollToBottomScript); err != nil {
			d.logger.Debug("scroll failed", "error", err)
			page.WaitForTimeout(postScrollMs)
			break
		}
		page.WaitForTimeout(scrollSettleMs)

		raw, err := page.Evaluate(scrollHeightScript)
		if err != nil {
			page.WaitForTimeout(postScrollMs)
			break
		}
		newHeight := toFloat(raw)
		if newHeight == currentHeight {
			page.WaitForTimeout(postScrollMs)
			break
		}
		currentHeight = newHeight
	}

	page.WaitForTimeout(postScrollMs)

	for _, selector := range loadMoreSelectors {
		for clicks := 0; clicks < d.maxClicks; clicks++ {
			control, err := page.First(selector)
			if err != nil || control == nil {
				break
			}
			if err := control.Click(); err != nil {
				d.logger.Debug("load-more click failed", "selector", selector, "error", err)
				break
			}
			page.WaitForTimeout(postClickMs)
		}
	}
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return 0
}
