package view

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/tubefeed/pkg/cache"
	"github.com/umputun/tubefeed/pkg/domain"
)

type aggregatorFunc func(ctx context.Context, feedURLs []string, proxy domain.ProxyStrategy) ([]domain.FeedItem, error)

func (f aggregatorFunc) Aggregate(ctx context.Context, feedURLs []string, proxy domain.ProxyStrategy) ([]domain.FeedItem, error) {
	return f(ctx, feedURLs, proxy)
}

func TestLoader_Freshness(t *testing.T) {
	var calls atomic.Int32
	agg := aggregatorFunc(func(ctx context.Context, feedURLs []string, proxy domain.ProxyStrategy) ([]domain.FeedItem, error) {
		calls.Add(1)
		return []domain.FeedItem{{Link: "fresh", PublishedTS: 1}}, nil
	})

	T := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	R := 30 * time.Minute
	req := LoadRequest{Feeds: []string{"f1"}, Proxy: domain.ProxyNone, RefreshInterval: R}

	c := cache.New(cache.NewMemoryStore())
	c.Put(context.Background(), cache.Key(req.Feeds, req.Proxy),
		domain.CacheEntry{FetchedAtMs: T.UnixMilli(), Items: []domain.FeedItem{{Link: "cached"}}})

	l := NewLoader(c, agg)

	l.now = func() time.Time { return T.Add(R - time.Millisecond) }
	items, err := l.Load(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "cached", items[0].Link)
	assert.Equal(t, int32(0), calls.Load())

	l.now = func() time.Time { return T.Add(R) }
	items, err = l.Load(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "fresh", items[0].Link)
	assert.Equal(t, int32(1), calls.Load())

	entry, ok := c.Get(context.Background(), cache.Key(req.Feeds, req.Proxy))
	require.True(t, ok)
	assert.Equal(t, T.Add(R).UnixMilli(), entry.FetchedAtMs, "result written back")
}

func TestLoader_ForceAndClear(t *testing.T) {
	var calls atomic.Int32
	agg := aggregatorFunc(func(ctx context.Context, feedURLs []string, proxy domain.ProxyStrategy) ([]domain.FeedItem, error) {
		calls.Add(1)
		return []domain.FeedItem{{Link: "net"}}, nil
	})
	now := time.Now()
	req := LoadRequest{Feeds: []string{"f1"}, Proxy: domain.ProxyAllOrigins, RefreshInterval: time.Hour}
	key := cache.Key(req.Feeds, req.Proxy)

	store := cache.NewMemoryStore()
	c := cache.New(store)
	c.Put(context.Background(), key, domain.CacheEntry{FetchedAtMs: now.UnixMilli(), Items: []domain.FeedItem{{Link: "cached"}}})
	l := NewLoader(c, agg)

	req.Force = true
	items, err := l.Load(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "net", items[0].Link)
	assert.Equal(t, int32(1), calls.Load())

	t.Run("clear without force still aggregates", func(t *testing.T) {
		c.Put(context.Background(), key, domain.CacheEntry{FetchedAtMs: now.UnixMilli(), Items: []domain.FeedItem{{Link: "cached"}}})
		items, err := l.Load(context.Background(), LoadRequest{Feeds: req.Feeds, Proxy: req.Proxy, RefreshInterval: time.Hour, ClearCache: true})
		require.NoError(t, err)
		assert.Equal(t, "net", items[0].Link)
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("different proxy misses cache", func(t *testing.T) {
		_, err := l.Load(context.Background(), LoadRequest{Feeds: req.Feeds, Proxy: domain.ProxyNone, RefreshInterval: time.Hour})
		require.NoError(t, err)
		assert.Equal(t, int32(3), calls.Load())
	})
}

func TestLoader_CachedItemsSorted(t *testing.T) {
	req := LoadRequest{Feeds: []string{"f"}, RefreshInterval: time.Hour}
	c := cache.New(cache.NewMemoryStore())
	c.Put(context.Background(), cache.Key(req.Feeds, req.Proxy), domain.CacheEntry{
		FetchedAtMs: time.Now().UnixMilli(),
		Items:       []domain.FeedItem{{Link: "a", PublishedTS: 5}, {Link: "b", PublishedTS: 3}, {Link: "c", PublishedTS: 3}, {Link: "d", PublishedTS: 9}},
	})
	l := NewLoader(c, aggregatorFunc(func(context.Context, []string, domain.ProxyStrategy) ([]domain.FeedItem, error) {
		t.Fatal("aggregator should not be called")
		return nil, nil
	}))

	items, err := l.Load(context.Background(), req)
	require.NoError(t, err)
	links := []string{}
	for _, it := range items {
		links = append(links, it.Link)
	}
	assert.Equal(t, []string{"d", "a", "b", "c"}, links)
}

func TestLoader_AggregateError(t *testing.T) {
	store := cache.NewMemoryStore()
	l := NewLoader(cache.New(store), aggregatorFunc(func(context.Context, []string, domain.ProxyStrategy) ([]domain.FeedItem, error) {
		return nil, errors.New("boom")
	}))
	_, err := l.Load(context.Background(), LoadRequest{Feeds: []string{"f"}})
	require.Error(t, err)
	assert.EqualError(t, err, "aggregate 1 feeds: boom")

	v, _ := store.Get(context.Background(), cache.Key([]string{"f"}, ""))
	assert.Empty(t, v, "nothing cached on failure")
}
