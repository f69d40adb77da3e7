package scraper

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/webharvest/review-scraper/internal/models"
	"github.com/webharvest/review-scraper/internal/ratelimit"
)

const initialSettleMs = 2000

// contentLoader and pager let tests drive the harvest loop without a
// browser; DynamicLoader and Paginator are the real implementations.
type contentLoader interface {
	Load(page Page)
}

type pager interface {
	Advance(page Page, currentPage int) bool
}

// Options bound a harvest run.
type Options struct {
	// MaxPages caps how many pages one run may visit.
	MaxPages int
	// LoadMoreMaxClicks caps clicks per load-more control.
	LoadMoreMaxClicks int
}

// Harvester drives the page-by-page review harvest: realize dynamic
// content, extract, deduplicate against the run, paginate, repeat until
// a stop condition. One run owns one page, released unconditionally on
// exit.
type Harvester struct {
	session   Session
	extractor Extractor
	loader    contentLoader
	paginator pager
	limiter   ratelimit.RateLimiter
	maxPages  int
	logger    *slog.Logger
}

func NewHarvester(session Session, extractor Extractor, limiter ratelimit.RateLimiter, opts Options, logger *slog.Logger) *Harvester {
	if opts.MaxPages < 1 {
		opts.MaxPages = 50
	}
	return &Harvester{
		session:   session,
		extractor: extractor,
		loader:    NewDynamicLoader(opts.LoadMoreMaxClicks, logger),
		paginator: NewPaginator(logger),
		limiter:   limiter,
		maxPages:  opts.MaxPages,
		logger:    logger.With("component", "harvester"),
	}
}

// Harvest scrapes reviews from targetURL until maxCount is reached, the
// page cap is hit, a page yields nothing new, or pagination is
// exhausted. A batch is always appended whole, so the result may exceed
// maxCount by at most one page's batch.
func (h *Harvester) Harvest(ctx context.Context, targetURL string, maxCount int) (*models.HarvestResult, error) {
	logger := h.logger.With("run_id", uuid.NewString(), "url", targetURL)

	page, err := h.session.NewPage()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer func() {
		if err := page.Close(); err != nil {
			logger.Warn("failed to close page", "error", err)
		}
	}()

	logger.Info("loading page")
	if err := page.Navigate(targetURL); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNavigation, err)
	}
	page.WaitForTimeout(initialSettleMs)

	var collected []models.Review
	seen := make(map[string]struct{})
	currentPage := 1
	successfulPages := 0

	for len(collected) < maxCount && currentPage <= h.maxPages {
		select {
		case <-ctx.Done():
			logger.Info("harvest cancelled", "pages", currentPage-1)
			return result(collected, successfulPages), nil
		default:
		}

		logger.Info("scraping page", "page", currentPage)

		h.loader.Load(page)

		html, err := page.Content()
		if err != nil {
			logger.Warn("failed to read page content, stopping", "error", err)
			break
		}

		batch := h.extractor.Extract(ctx, page.URL(), html)
		if len(batch) == 0 {
			logger.Info("no reviews found on current page, stopping")
			break
		}

		novel := 0
		for _, review := range batch {
			if _, dup := seen[review.Text]; dup {
				continue
			}
			seen[review.Text] = struct{}{}
			collected = append(collected, review)
			novel++
		}

		if novel == 0 {
			logger.Info("no new unique reviews found, stopping")
			break
		}
		successfulPages++
		logger.Info("found new unique reviews", "count", novel, "page", currentPage, "total", len(collected))

		if len(collected) >= maxCount {
			break
		}

		if h.limiter != nil {
			if err := h.limiter.Wait(ctx); err != nil {
				return result(collected, successfulPages), nil
			}
		}

		if !h.paginator.Advance(page, currentPage) {
			logger.Info("no more pages available")
			break
		}
		currentPage++
	}

	logger.Info("harvest finished", "reviews", len(collected), "successful_pages", successfulPages)
	return result(collected, successfulPages), nil
}

func result(reviews []models.Review, successfulPages int) *models.HarvestResult {
	return &models.HarvestResult{
		Reviews:         reviews,
		SuccessfulPages: successfulPages,
	}
}
