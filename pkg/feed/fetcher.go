package feed

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/net/html/charset"

	"github.com/umputun/tubefeed/pkg/domain"
)

const maxFeedSize = 10 * 1024 * 1024

// HTTPFetcher fetches RSS/Atom feeds via HTTP and normalizes their entries
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
}

// NewHTTPFetcher creates a new feed fetcher
func NewHTTPFetcher(timeout time.Duration, userAgent string) *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent: userAgent,
	}
}

// Fetch retrieves a feed through the proxy strategy and returns its items.
// Entries without a resolvable link are dropped.
func (f *HTTPFetcher) Fetch(ctx context.Context, feedURL string, proxy domain.ProxyStrategy) ([]domain.FeedItem, error) {
	body, err := f.fetch(ctx, feedURL, Resolve(feedURL, proxy))
	if err != nil {
		return nil, err
	}
	defer body.Close()

	data, err := io.ReadAll(io.LimitReader(body, maxFeedSize))
	if err != nil {
		return nil, &FetchError{URL: feedURL, Err: fmt.Errorf("read body: %w", err)}
	}

	// gofeed recovers from broken markup, a feed must be well-formed xml to count
	if err = wellFormed(data); err != nil {
		return nil, &ParseError{URL: feedURL, Err: err}
	}

	// parser is not safe for concurrent use, make one per feed
	parsed, err := gofeed.NewParser().Parse(bytes.NewReader(data))
	if err != nil {
		return nil, &ParseError{URL: feedURL, Err: err}
	}

	items := make([]domain.FeedItem, 0, len(parsed.Items))
	for _, entry := range parsed.Items {
		if item, ok := toFeedItem(entry); ok {
			items = append(items, item)
		}
	}
	return items, nil
}

// wellFormed runs a strict token pass over the document
func wellFormed(data []byte) error {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Strict = true
	dec.CharsetReader = charset.NewReaderLabel
	for {
		_, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// fetch issues an uncached, credential-less GET and returns the response body
func (f *HTTPFetcher) fetch(ctx context.Context, feedURL, requestURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, http.NoBody)
	if err != nil {
		return nil, &FetchError{URL: feedURL, Err: fmt.Errorf("create request: %w", err)}
	}

	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: feedURL, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, &FetchError{URL: feedURL, Status: resp.StatusCode}
	}

	return resp.Body, nil
}
