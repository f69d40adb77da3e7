package extract

import (
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/webharvest/review-scraper/internal/models"
)

// HeuristicExtractor scans a page snapshot for review-shaped elements
// using the built-in selector library, falling back to a "looks like a
// review" scan when no library selector matches.
type HeuristicExtractor struct {
	logger *slog.Logger
}

func NewHeuristicExtractor(logger *slog.Logger) *HeuristicExtractor {
	return &HeuristicExtractor{
		logger: logger.With("component", "heuristic_extractor"),
	}
}

// Extract returns the reviews found in doc, deduplicated by body text
// within this call.
func (e *HeuristicExtractor) Extract(doc *goquery.Document) []models.Review {
	containers := e.findContainers(doc)

	seen := make(map[string]struct{})
	var reviews []models.Review

	containers.Each(func(_ int, box *goquery.Selection) {
		text := e.extractBody(box)
		if !IsReviewText(text) {
			return
		}
		if _, dup := seen[text]; dup {
			return
		}
		seen[text] = struct{}{}

		review := models.Review{
			Title:    firstNonEmpty(box, titleSelectors),
			Text:     text,
			UserName: firstNonEmpty(box, reviewerSelectors),
		}
		if review.Title == "" {
			review.Title = "Review"
		}
		if review.UserName == "" {
			review.UserName = models.AnonymousReviewer
		}
		if stars, ok := StarsFrom(box); ok {
			review.Stars = models.Stars(stars)
		}
		reviews = append(reviews, review)
	})

	e.logger.Debug("heuristic extraction finished",
		"containers", containers.Length(),
		"reviews", len(reviews),
		"library", SelectorLibraryVersion)

	return reviews
}

// findContainers queries the selector library groups in priority order.
// When nothing matches it degrades to scanning for elements whose
// class or id mentions "review".
func (e *HeuristicExtractor) findContainers(doc *goquery.Document) *goquery.Selection {
	var queries []string
	for _, group := range containerGroups {
		queries = append(queries, group.Query())
	}
	matches := doc.Find(strings.Join(queries, ", "))
	if matches.Length() > 0 {
		return matches
	}

	e.logger.Debug("no library selector matched, scanning for review-like elements")

	candidates := doc.Find("*").FilterFunction(func(_ int, s *goquery.Selection) bool {
		if s.Children().Length() == 0 {
			return false
		}
		class, _ := s.Attr("class")
		id, _ := s.Attr("id")
		hay := strings.ToLower(class + " " + id)
		if !strings.Contains(hay, "review") {
			return false
		}
		// A container whose whole text is a call-to-action phrase is
		// chrome, not a review.
		return !isBoilerplate(Normalize(s.Text()))
	})

	// Keep only the deepest matches; an ancestor that merely wraps the
	// real containers would otherwise swallow every review on the page
	// into one body.
	return candidates.FilterFunction(func(_ int, s *goquery.Selection) bool {
		nested := false
		candidates.Each(func(_ int, other *goquery.Selection) {
			if other.Nodes[0] != s.Nodes[0] && s.Contains(other.Nodes[0]) {
				nested = true
			}
		})
		return !nested
	})
}

// extractBody pulls the review text out of a container: first matching
// content selector, else the container's own text with interactive and
// boilerplate sub-elements stripped, narrowed to a generic content
// element when still too short.
func (e *HeuristicExtractor) extractBody(box *goquery.Selection) string {
	if text := firstNonEmpty(box, contentSelectors); text != "" {
		return text
	}

	clone := box.Clone()
	clone.Find(strippableSelector).Remove()
	text := Normalize(clone.Text())

	if len(text) < 10 {
		if narrowed := box.Find(narrowContentSelector).First(); narrowed.Length() > 0 {
			text = Normalize(narrowed.Text())
		}
	}
	return text
}

// firstNonEmpty tries each selector of a group in order and returns the
// first non-empty normalized text.
func firstNonEmpty(box *goquery.Selection, group SelectorGroup) string {
	for _, selector := range group.Selectors {
		if text := Normalize(box.Find(selector).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

func isBoilerplate(text string) bool {
	if text == "" {
		return true
	}
	for _, pattern := range boilerplatePatterns {
		if pattern.MatchString(text) {
			return true
		}
	}
	return false
}
