package scraper

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webharvest/review-scraper/internal/models"
)

func newTestHarvester(session Session, extractor Extractor, paginator pager) *Harvester {
	return &Harvester{
		session:   session,
		extractor: extractor,
		loader:    noopLoader{},
		paginator: paginator,
		maxPages:  50,
		logger:    testLogger(),
	}
}

func TestHarvestThreePagesUntilPaginationExhausted(t *testing.T) {
	page := &fakePage{url: "https://shop.example/p/1", html: "<html/>"}
	extractor := &fakeExtractor{batches: [][]models.Review{
		reviewBatch("p1", 5),
		reviewBatch("p2", 5),
		reviewBatch("p3", 5),
	}}
	pager := &fakePager{totalPages: 3}

	h := newTestHarvester(&fakeSession{page: page}, extractor, pager)
	result, err := h.Harvest(context.Background(), "https://shop.example/p/1", 100)

	require.NoError(t, err)
	assert.Len(t, result.Reviews, 15)
	assert.Equal(t, 3, result.SuccessfulPages)
	assert.Equal(t, 3, extractor.calls)
	// The third advance attempt reports exhaustion.
	assert.Equal(t, 3, pager.calls)
	assert.True(t, page.closed)
}

func TestHarvestAppendsFullBatchBeyondMaxCount(t *testing.T) {
	page := &fakePage{url: "https://shop.example/p/1", html: "<html/>"}
	extractor := &fakeExtractor{batches: [][]models.Review{
		reviewBatch("p1", 5),
		reviewBatch("p2", 5),
		reviewBatch("p3", 5),
	}}
	pager := &fakePager{totalPages: 10}

	h := newTestHarvester(&fakeSession{page: page}, extractor, pager)
	result, err := h.Harvest(context.Background(), "https://shop.example/p/1", 8)

	require.NoError(t, err)
	// Page 2's batch crosses the cap but is appended whole; the loop
	// stops before paginating again.
	assert.Len(t, result.Reviews, 10)
	assert.Equal(t, 2, result.SuccessfulPages)
	assert.Equal(t, 2, extractor.calls)
	assert.Equal(t, 1, pager.calls)
}

func TestHarvestCountsOnlyNovelReviews(t *testing.T) {
	p1 := reviewBatch("p1", 5)
	p2 := append(reviewBatch("p2", 3), p1[0], p1[1])
	page := &fakePage{url: "https://shop.example/p/1", html: "<html/>"}
	extractor := &fakeExtractor{batches: [][]models.Review{p1, p2, {}}}
	pager := &fakePager{totalPages: 10}

	h := newTestHarvester(&fakeSession{page: page}, extractor, pager)
	result, err := h.Harvest(context.Background(), "https://shop.example/p/1", 100)

	require.NoError(t, err)
	assert.Len(t, result.Reviews, 8)
	assert.Equal(t, 2, result.SuccessfulPages)
}

func TestHarvestStopsWhenPageYieldsNoNovelReviews(t *testing.T) {
	p1 := reviewBatch("p1", 5)
	page := &fakePage{url: "https://shop.example/p/1", html: "<html/>"}
	// Page 2 repeats page 1 entirely.
	extractor := &fakeExtractor{batches: [][]models.Review{p1, p1, reviewBatch("p3", 5)}}
	pager := &fakePager{totalPages: 10}

	h := newTestHarvester(&fakeSession{page: page}, extractor, pager)
	result, err := h.Harvest(context.Background(), "https://shop.example/p/1", 100)

	require.NoError(t, err)
	assert.Len(t, result.Reviews, 5)
	assert.Equal(t, 1, result.SuccessfulPages)
	// Extraction ran on page 2 but never on page 3.
	assert.Equal(t, 2, extractor.calls)
}

func TestHarvestStopsOnEmptyFirstPage(t *testing.T) {
	page := &fakePage{url: "https://shop.example/p/1", html: "<html/>"}
	extractor := &fakeExtractor{}
	pager := &fakePager{totalPages: 10}

	h := newTestHarvester(&fakeSession{page: page}, extractor, pager)
	result, err := h.Harvest(context.Background(), "https://shop.example/p/1", 100)

	require.NoError(t, err)
	assert.Empty(t, result.Reviews)
	assert.Equal(t, 0, result.SuccessfulPages)
	assert.Equal(t, 0, pager.calls)
	assert.True(t, page.closed)
}

func TestHarvestRespectsPageCap(t *testing.T) {
	page := &fakePage{url: "https://shop.example/p/1", html: "<html/>"}
	batches := make([][]models.Review, 10)
	for i := range batches {
		batches[i] = reviewBatch(string(rune('a'+i)), 2)
	}
	extractor := &fakeExtractor{batches: batches}
	pager := &fakePager{totalPages: 100}

	h := newTestHarvester(&fakeSession{page: page}, extractor, pager)
	h.maxPages = 3
	result, err := h.Harvest(context.Background(), "https://shop.example/p/1", 1000)

	require.NoError(t, err)
	assert.Len(t, result.Reviews, 6)
	assert.Equal(t, 3, result.SuccessfulPages)
}

func TestHarvestNavigationFailureIsFatal(t *testing.T) {
	page := &fakePage{
		url:        "https://shop.example/p/1",
		navigateFn: func(string) error { return errors.New("status 503") },
	}
	h := newTestHarvester(&fakeSession{page: page}, &fakeExtractor{}, &fakePager{})

	_, err := h.Harvest(context.Background(), "https://shop.example/p/1", 100)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNavigation)
	assert.True(t, page.closed, "page must be released on failure")
}

func TestHarvestSessionFailureIsFatal(t *testing.T) {
	h := newTestHarvester(&fakeSession{pageErr: errors.New("browser gone")}, &fakeExtractor{}, &fakePager{})

	_, err := h.Harvest(context.Background(), "https://shop.example/p/1", 100)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPageCreate)
}

func TestHarvestStopsOnCancelledContext(t *testing.T) {
	page := &fakePage{url: "https://shop.example/p/1", html: "<html/>"}
	extractor := &fakeExtractor{batches: [][]models.Review{reviewBatch("p1", 5)}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	h := newTestHarvester(&fakeSession{page: page}, extractor, &fakePager{totalPages: 10})
	result, err := h.Harvest(ctx, "https://shop.example/p/1", 100)

	require.NoError(t, err)
	assert.Empty(t, result.Reviews)
	assert.Equal(t, 0, extractor.calls)
}
