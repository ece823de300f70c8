package domain

import (
	"strings"
	"time"
)

// UntitledItem is the title used for entries without one
const UntitledItem = "Untitled"

// FeedItem represents a single normalized video entry from a feed.
// Values are treated as immutable once produced by the fetcher.
type FeedItem struct {
	Title        string `json:"title"`
	Link         string `json:"link"`
	Channel      string `json:"channel"`
	PublishedRaw string `json:"published"`
	PublishedTS  int64  `json:"published_ts"` // epoch milliseconds, 0 if unknown
	Thumbnail    string `json:"thumbnail"`
}

// IsShort reports whether the item link points to short-form content
func (f FeedItem) IsShort() bool {
	return strings.Contains(strings.ToLower(f.Link), "/shorts/")
}

// Published returns publication time, zero time if unknown
func (f FeedItem) Published() time.Time {
	if f.PublishedTS <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(f.PublishedTS)
}

// CacheEntry is a merged aggregation result with the time it was fetched
type CacheEntry struct {
	FetchedAtMs int64      `json:"ts"`
	Items       []FeedItem `json:"items"`
}

// Fresh reports whether the entry is younger than the refresh interval.
// The interval has a floor of one minute.
func (e CacheEntry) Fresh(now time.Time, interval time.Duration) bool {
	interval = max(interval, time.Minute)
	return now.UnixMilli()-e.FetchedAtMs < interval.Milliseconds()
}
