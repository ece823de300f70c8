package feed

import (
	"context"
	"log"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/umputun/tubefeed/pkg/domain"
)

//go:generate moq -out mocks/fetcher.go -pkg mocks -skip-ensure -fmt goimports . Fetcher

// Fetcher retrieves a single feed and returns its normalized items
type Fetcher interface {
	Fetch(ctx context.Context, feedURL string, proxy domain.ProxyStrategy) ([]domain.FeedItem, error)
}

// Aggregator fetches a list of feeds concurrently and merges them into one list
type Aggregator struct {
	fetcher Fetcher
}

// NewAggregator creates a new feed aggregator
func NewAggregator(fetcher Fetcher) *Aggregator {
	return &Aggregator{fetcher: fetcher}
}

// Aggregate fetches all feeds and returns their items merged, newest first.
// A failed feed is logged and contributes nothing; it never fails the whole call.
// Items with equal timestamps keep feed order, then document order.
func (a *Aggregator) Aggregate(ctx context.Context, feedURLs []string, proxy domain.ProxyStrategy) ([]domain.FeedItem, error) {
	results := make([][]domain.FeedItem, len(feedURLs))

	var g errgroup.Group
	for i, feedURL := range feedURLs {
		g.Go(func() error {
			items, err := a.fetcher.Fetch(ctx, feedURL, proxy)
			if err != nil {
				log.Printf("[WARN] failed to fetch %s: %v", feedURL, err)
				return nil
			}
			log.Printf("[DEBUG] fetched %d items from %s", len(items), feedURL)
			results[i] = items
			return nil
		})
	}
	_ = g.Wait() // per-feed errors are absorbed above

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	merged := make([]domain.FeedItem, 0, len(feedURLs)*15)
	for _, items := range results {
		merged = append(merged, items...)
	}
	SortNewestFirst(merged)
	return merged, nil
}

// SortNewestFirst orders items by publish time descending, keeping the relative order of ties
func SortNewestFirst(items []domain.FeedItem) {
	slices.SortStableFunc(items, func(a, b domain.FeedItem) int {
		switch {
		case a.PublishedTS > b.PublishedTS:
			return -1
		case a.PublishedTS < b.PublishedTS:
			return 1
		default:
			return 0
		}
	})
}
