package view

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/umputun/tubefeed/pkg/cache"
	"github.com/umputun/tubefeed/pkg/domain"
	"github.com/umputun/tubefeed/pkg/feed"
)

//go:generate moq -out mocks/aggregator.go -pkg mocks -skip-ensure -fmt goimports . Aggregator
//go:generate moq -out mocks/source.go -pkg mocks -skip-ensure -fmt goimports . Source

// Aggregator fetches and merges a feed list
type Aggregator interface {
	Aggregate(ctx context.Context, feedURLs []string, proxy domain.ProxyStrategy) ([]domain.FeedItem, error)
}

// EntryCache is the cache the loader reads and writes
type EntryCache interface {
	Get(ctx context.Context, key string) (domain.CacheEntry, bool)
	Put(ctx context.Context, key string, entry domain.CacheEntry)
	Invalidate(ctx context.Context, key string)
}

// Source provides items for a load request
type Source interface {
	Load(ctx context.Context, req LoadRequest) ([]domain.FeedItem, error)
}

// LoadRequest describes a single load
type LoadRequest struct {
	Feeds           []string
	Proxy           domain.ProxyStrategy
	RefreshInterval time.Duration
	Force           bool // skip the cache read
	ClearCache      bool // drop the cache entry before anything else
}

// Loader serves items from a fresh cache entry or aggregates and stores them
type Loader struct {
	cache      EntryCache
	aggregator Aggregator
	now        func() time.Time
}

// NewLoader makes a loader
func NewLoader(c EntryCache, aggregator Aggregator) *Loader {
	return &Loader{cache: c, aggregator: aggregator, now: time.Now}
}

// Load returns merged items, newest first
func (l *Loader) Load(ctx context.Context, req LoadRequest) ([]domain.FeedItem, error) {
	key := cache.Key(req.Feeds, req.Proxy)
	if req.ClearCache {
		l.cache.Invalidate(ctx, key)
	}

	if !req.Force {
		if entry, ok := l.cache.Get(ctx, key); ok && entry.Fresh(l.now(), req.RefreshInterval) {
			items := slices.Clone(entry.Items)
			feed.SortNewestFirst(items)
			return items, nil
		}
	}

	items, err := l.aggregator.Aggregate(ctx, req.Feeds, req.Proxy)
	if err != nil {
		return nil, fmt.Errorf("aggregate %d feeds: %w", len(req.Feeds), err)
	}
	l.cache.Put(ctx, key, domain.CacheEntry{FetchedAtMs: l.now().UnixMilli(), Items: items})
	return items, nil
}
