package selectorcache

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webharvest/review-scraper/internal/models"
)

type memoryStore struct {
	sets map[string]models.SelectorSet
}

func newMemoryStore() *memoryStore {
	return &memoryStore{sets: make(map[string]models.SelectorSet)}
}

func (s *memoryStore) Get(_ context.Context, host string) (models.SelectorSet, bool) {
	set, ok := s.sets[host]
	return set, ok
}

func (s *memoryStore) Put(_ context.Context, host string, set models.SelectorSet) {
	s.sets[host] = set
}

type countingDiscoverer struct {
	set   models.SelectorSet
	calls int
}

func (d *countingDiscoverer) Discover(_ context.Context, _, _ string) (models.SelectorSet, error) {
	d.calls++
	return d.set, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCachingDiscovererCachesPerHost(t *testing.T) {
	inner := &countingDiscoverer{set: models.SelectorSet{Containers: []string{".review"}}}
	store := newMemoryStore()
	d := NewCachingDiscoverer(inner, store, testLogger())

	ctx := context.Background()

	first, err := d.Discover(ctx, "https://shop.example/p/1?page=1", "<html/>")
	require.NoError(t, err)
	second, err := d.Discover(ctx, "https://shop.example/p/1?page=2", "<html/>")
	require.NoError(t, err)

	assert.Equal(t, 1, inner.calls)
	assert.Equal(t, first, second)

	// A different host misses the cache.
	_, err = d.Discover(ctx, "https://other.example/items", "<html/>")
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}

func TestCachingDiscovererSkipsEmptySets(t *testing.T) {
	inner := &countingDiscoverer{}
	store := newMemoryStore()
	d := NewCachingDiscoverer(inner, store, testLogger())

	ctx := context.Background()

	_, err := d.Discover(ctx, "https://shop.example", "<html/>")
	require.NoError(t, err)
	_, err = d.Discover(ctx, "https://shop.example", "<html/>")
	require.NoError(t, err)

	// Empty discovery results are not cached, so both calls reach the
	// model.
	assert.Equal(t, 2, inner.calls)
	assert.Empty(t, store.sets)
}
