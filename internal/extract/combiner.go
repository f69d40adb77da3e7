package extract

import (
	"context"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/webharvest/review-scraper/internal/models"
)

// Discoverer produces a SelectorSet for a page. Implementations must
// degrade softly: a failed model call yields an empty set, not an
// error that aborts extraction.
type Discoverer interface {
	Discover(ctx context.Context, pageURL, html string) (models.SelectorSet, error)
}

// Combiner merges heuristic extraction with discovered-selector
// extraction, deduplicating by review body. Heuristic results come
// first; the discovered-selector pass only contributes bodies the
// heuristics missed.
type Combiner struct {
	heuristic  *HeuristicExtractor
	discoverer Discoverer
	logger     *slog.Logger
}

// NewCombiner builds a Combiner. discoverer may be nil, in which case
// only the heuristic path runs.
func NewCombiner(discoverer Discoverer, logger *slog.Logger) *Combiner {
	return &Combiner{
		heuristic:  NewHeuristicExtractor(logger),
		discoverer: discoverer,
		logger:     logger.With("component", "combiner"),
	}
}

// Extract runs both strategies over a page snapshot. Any failure in the
// discovery path is logged and swallowed; the heuristic results are
// returned regardless.
func (c *Combiner) Extract(ctx context.Context, pageURL, html string) []models.Review {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		c.logger.Warn("failed to parse page html", "error", err)
		return nil
	}

	reviews := c.heuristic.Extract(doc)

	if c.discoverer == nil {
		return reviews
	}

	seen := make(map[string]struct{}, len(reviews))
	for _, r := range reviews {
		seen[r.Text] = struct{}{}
	}

	set, err := c.discoverer.Discover(ctx, pageURL, html)
	if err != nil {
		c.logger.Warn("selector discovery failed", "error", err, "url", pageURL)
		return reviews
	}
	if set.Empty() {
		return reviews
	}

	guided := ExtractWithSelectors(doc, set)
	novel := 0
	for _, r := range guided {
		if _, dup := seen[r.Text]; dup {
			continue
		}
		seen[r.Text] = struct{}{}
		reviews = append(reviews, r)
		novel++
	}

	c.logger.Debug("combined extraction",
		"heuristic", len(reviews)-novel,
		"guided", len(guided),
		"guided_novel", novel)

	return reviews
}
