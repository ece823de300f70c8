// Package cache keeps the last merged feed snapshot so reloads within the refresh
// interval are served without network traffic. Storage is pluggable, a failing
// store degrades to a cache miss.
package cache

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/umputun/tubefeed/pkg/domain"
)

//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store

// KeyPrefix is prepended to every cache key
const KeyPrefix = "tubefeed:"

// Store is a string key/value storage. Get returns an empty string for absent keys.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Cache stores domain.CacheEntry values as json on top of a Store
type Cache struct {
	store Store
}

// New makes a cache backed by the store
func New(store Store) *Cache {
	return &Cache{store: store}
}

// Key derives the cache key from the ordered feed list and the proxy strategy.
// The same feeds in a different order produce a different key.
func Key(feedURLs []string, proxy domain.ProxyStrategy) string {
	payload := struct {
		Feeds []string `json:"feeds"`
		Proxy string   `json:"proxy"`
	}{Feeds: feedURLs, Proxy: strings.ToLower(string(proxy))}
	if payload.Feeds == nil {
		payload.Feeds = []string{}
	}
	data, _ := json.Marshal(payload) // strings only, can't fail
	return KeyPrefix + strconv.FormatUint(xxhash.Sum64(data), 16)
}

// Get returns the stored entry. Storage failures and corrupt content are reported as absent.
func (c *Cache) Get(ctx context.Context, key string) (domain.CacheEntry, bool) {
	raw, err := c.store.Get(ctx, key)
	if err != nil {
		log.Printf("[WARN] cache read %s: %v", key, err)
		return domain.CacheEntry{}, false
	}
	if raw == "" {
		return domain.CacheEntry{}, false
	}

	var entry domain.CacheEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		log.Printf("[WARN] corrupt cache entry %s: %v", key, err)
		return domain.CacheEntry{}, false
	}
	if entry.Items == nil {
		entry.Items = []domain.FeedItem{}
	}
	return entry, true
}

// Put stores the entry, failures are logged and dropped
func (c *Cache) Put(ctx context.Context, key string, entry domain.CacheEntry) {
	data, err := json.Marshal(entry)
	if err != nil {
		log.Printf("[WARN] encode cache entry %s: %v", key, err)
		return
	}
	if err := c.store.Set(ctx, key, string(data)); err != nil {
		log.Printf("[WARN] cache write %s: %v", key, err)
	}
}

// Invalidate removes the entry, failures are logged and dropped
func (c *Cache) Invalidate(ctx context.Context, key string) {
	if err := c.store.Remove(ctx, key); err != nil {
		log.Printf("[WARN] cache remove %s: %v", key, err)
	}
}
