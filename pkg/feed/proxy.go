package feed

import (
	"net/url"
	"strings"

	"github.com/umputun/tubefeed/pkg/domain"
)

// relay endpoints, the original URL is appended query-escaped
const (
	allOriginsEndpoint = "https://api.allorigins.win/raw?url="
	corsProxyEndpoint  = "https://corsproxy.io/?"
)

// Resolve maps a feed URL to the URL that should actually be requested.
// Unknown strategies fall back to the identity mapping.
func Resolve(feedURL string, strategy domain.ProxyStrategy) string {
	switch domain.ProxyStrategy(strings.ToLower(string(strategy))) {
	case domain.ProxyAllOrigins:
		return allOriginsEndpoint + url.QueryEscape(feedURL)
	case domain.ProxyCorsProxy:
		return corsProxyEndpoint + url.QueryEscape(feedURL)
	default:
		return feedURL
	}
}
