package scraper

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDynamicLoaderStopsWhenHeightSettles(t *testing.T) {
	heights := []any{float64(1000), float64(2000), float64(2000)}
	scrolls := 0
	page := &fakePage{
		url: "https://shop.example",
		evaluateFn: func(script string, args ...any) (any, error) {
			if strings.Contains(script, "scrollTo") {
				scrolls++
				return nil, nil
			}
			h := heights[0]
			if len(heights) > 1 {
				heights = heights[1:]
			}
			return h, nil
		},
	}

	NewDynamicLoader(10, testLogger()).Load(page)

	// Third pass sees an unchanged height and exits early.
	assert.Equal(t, 3, scrolls)
}

func TestDynamicLoaderClicksLoadMoreUntilGone(t *testing.T) {
	page := &fakePage{url: "https://shop.example", elements: map[string]*fakeElement{}}
	remaining := 3
	el := &fakeElement{}
	el.onClick = func() {
		remaining--
		if remaining == 0 {
			delete(page.elements, `button:text-is("Load More")`)
		}
	}
	page.elements[`button:text-is("Load More")`] = el

	NewDynamicLoader(10, testLogger()).Load(page)

	assert.Equal(t, 3, el.clicks)
}

func TestDynamicLoaderClickCapBoundsStickyControls(t *testing.T) {
	// A control that never disappears must not spin the loop forever.
	page := &fakePage{
		url:      "https://shop.example",
		elements: map[string]*fakeElement{`[class*="load-more"]`: {}},
	}

	NewDynamicLoader(4, testLogger()).Load(page)

	assert.Equal(t, 4, page.elements[`[class*="load-more"]`].clicks)
}
