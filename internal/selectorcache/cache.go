// Package selectorcache provides an optional per-domain cache for
// discovered selector sets. Without it, discovery re-asks the model on
// every page of a harvest; the cache short-circuits that for later
// pages of the same site at the cost of staleness bounded by the TTL.
package selectorcache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/webharvest/review-scraper/internal/extract"
	"github.com/webharvest/review-scraper/internal/models"
)

// Store holds selector sets keyed by host.
type Store interface {
	Get(ctx context.Context, host string) (models.SelectorSet, bool)
	Put(ctx context.Context, host string, set models.SelectorSet)
}

// RedisStore keeps selector sets in Redis with a TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewRedisStore(client *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
		logger: logger.With("component", "selector_cache"),
	}
}

func cacheKey(host string) string {
	return fmt.Sprintf("selectors:%s", host)
}

func (s *RedisStore) Get(ctx context.Context, host string) (models.SelectorSet, bool) {
	raw, err := s.client.Get(ctx, cacheKey(host)).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("selector cache read failed", "host", host, "error", err)
		}
		return models.SelectorSet{}, false
	}
	var set models.SelectorSet
	if err := json.Unmarshal(raw, &set); err != nil {
		s.logger.Warn("selector cache entry corrupt", "host", host, "error", err)
		return models.SelectorSet{}, false
	}
	return set, true
}

func (s *RedisStore) Put(ctx context.Context, host string, set models.SelectorSet) {
	raw, err := json.Marshal(set)
	if err != nil {
		return
	}
	if err := s.client.Set(ctx, cacheKey(host), raw, s.ttl).Err(); err != nil {
		s.logger.Warn("selector cache write failed", "host", host, "error", err)
	}
}

// CachingDiscoverer decorates a Discoverer with a per-host cache. Only
// non-empty sets are cached; an empty discovery result is usually a
// transient model failure and should be retried on the next page.
type CachingDiscoverer struct {
	inner  extract.Discoverer
	store  Store
	logger *slog.Logger
}

func NewCachingDiscoverer(inner extract.Discoverer, store Store, logger *slog.Logger) *CachingDiscoverer {
	return &CachingDiscoverer{
		inner:  inner,
		store:  store,
		logger: logger.With("component", "caching_discoverer"),
	}
}

func (c *CachingDiscoverer) Discover(ctx context.Context, pageURL, html string) (models.SelectorSet, error) {
	host := hostOf(pageURL)
	if host != "" {
		if set, ok := c.store.Get(ctx, host); ok {
			c.logger.Debug("selector cache hit", "host", host)
			return set, nil
		}
	}

	set, err := c.inner.Discover(ctx, pageURL, html)
	if err != nil {
		return set, err
	}
	if host != "" && !set.Empty() {
		c.store.Put(ctx, host, set)
	}
	return set, nil
}

func hostOf(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	return u.Host
}
