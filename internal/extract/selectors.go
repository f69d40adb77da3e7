package extract

import "strings"

// SelectorLibraryVersion identifies the built-in heuristic selector
// library. Bump it when groups below change so harvest logs can tell
// which library produced a result.
const SelectorLibraryVersion = "2025-06"

// SelectorGroup is an ordered set of CSS selectors serving one concern.
// Groups are tried in order; vendor-specific widget classes come before
// generic patterns.
type SelectorGroup struct {
	Name      string
	Selectors []string
}

// Query returns the group's selectors as a single comma-joined CSS
// selector.
func (g SelectorGroup) Query() string {
	return strings.Join(g.Selectors, ", ")
}

// containerGroups locate review container elements.
var containerGroups = []SelectorGroup{
	{
		Name: "vendor-widgets",
		Selectors: []string{
			".jdgm-rev",
			".yotpo-review",
			".spr-review",
			".stamped-review",
			".loox-review",
			".reviewsio-review",
			".okendo-review",
			".trustpilot-review",
			".okeReviews-review-item",
		},
	},
	{
		Name: "generic",
		Selectors: []string{
			".review-item",
			".review-content",
			"[data-review-id]",
			`[class*="review-container"]`,
			`[class*="review_container"]`,
			"[data-reviews-target]",
			`[class*="ReviewCard"]`,
			`[class*="review-card"]`,
			"[data-review]",
		},
	},
}

// titleSelectors locate a review title inside a container.
var titleSelectors = SelectorGroup{
	Name: "titles",
	Selectors: []string{
		`[class*="review-title"]`,
		`[class*="review_title"]`,
		`[class*="ReviewTitle"]`,
		`[class*="review-header"]`,
		"h3",
		"h4",
		".review-title",
	},
}

// contentSelectors locate the review body inside a container.
var contentSelectors = SelectorGroup{
	Name: "content",
	Selectors: []string{
		`[class*="review-content"]`,
		`[class*="review-body"]`,
		`[class*="review_content"]`,
		`[class*="ReviewContent"]`,
		`[class*="review-text"]`,
		".jdgm-rev__body",
		".yotpo-review-content",
		".spr-review-content-body",
		`[class*="ReviewText"]`,
		"p",
	},
}

// reviewerSelectors locate the author name inside a container.
var reviewerSelectors = SelectorGroup{
	Name: "reviewers",
	Selectors: []string{
		`[class*="review-author"]`,
		`[class*="reviewer-name"]`,
		`[class*="author"]`,
		`[class*="customer-name"]`,
		".jdgm-rev__author",
		".yotpo-user-name",
		".spr-review-header-byline",
		`[class*="ReviewAuthor"]`,
	},
}

// strippableSelector matches interactive and boilerplate sub-elements
// removed before falling back to a container's own text.
const strippableSelector = `button, input, select, option, [class*="more"], [class*="truncate"], [class*="toggle"], [class*="expand"], script, style, [aria-hidden="true"]`

// narrowContentSelector is the last-resort body source when the
// stripped container text is still too short.
const narrowContentSelector = `[class*="content"], [class*="body"], [class*="text"]`
