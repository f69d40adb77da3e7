package browser

import (
	"fmt"

	"github.com/playwright-community/playwright-go"

	"github.com/webharvest/review-scraper/internal/scraper"
)

const clickTimeoutMs = 5000

// harvestPage adapts a playwright page to the narrow scraper.Page
// capability surface.
type harvestPage struct {
	page playwright.Page
}

func (p *harvestPage) URL() string {
	return p.page.URL()
}

func (p *harvestPage) Content() (string, error) {
	return p.page.Content()
}

func (p *harvestPage) Evaluate(script string, args ...any) (any, error) {
	return p.page.Evaluate(script, args...)
}

// Navigate loads url waiting for DOM content only; a non-OK response is
// an error.
func (p *harvestPage) Navigate(url string) error {
	resp, err := p.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	})
	if err != nil {
		return fmt.Errorf("goto %s: %w", url, err)
	}
	if resp != nil && !resp.Ok() {
		return fmt.Errorf("goto %s: status %d", url, resp.Status())
	}
	return nil
}

func (p *harvestPage) WaitForTimeout(ms float64) {
	p.page.WaitForTimeout(ms)
}

func (p *harvestPage) WaitForNetworkIdle(timeoutMs float64) error {
	return p.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   playwright.LoadStateNetworkidle,
		Timeout: playwright.Float(timeoutMs),
	})
}

// First returns the first visible match for selector, nil when nothing
// visible matches.
func (p *harvestPage) First(selector string) (scraper.Element, error) {
	locator := p.page.Locator(selector).First()
	count, err := locator.Count()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}
	visible, err := locator.IsVisible()
	if err != nil || !visible {
		return nil, err
	}
	return &harvestElement{locator: locator}, nil
}

func (p *harvestPage) Close() error {
	return p.page.Close()
}

type harvestElement struct {
	locator playwright.Locator
}

// Click tries a normal click and falls back to a script-dispatched one
// when the element will not accept it (overlays, sticky headers).
func (e *harvestElement) Click() error {
	err := e.locator.Click(playwright.LocatorClickOptions{
		Timeout: playwright.Float(clickTimeoutMs),
	})
	if err == nil {
		return nil
	}
	if _, evalErr := e.locator.Evaluate("el => el.click()", nil); evalErr != nil {
		return fmt.Errorf("click failed: %w", err)
	}
	return nil
}

func (e *harvestElement) ScrollIntoView() error {
	return e.locator.ScrollIntoViewIfNeeded()
}
