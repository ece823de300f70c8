package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/umputun/tubefeed/pkg/domain"
)

func TestResolve(t *testing.T) {
	feedURL := "https://www.youtube.com/feeds/videos.xml?channel_id=UC1&x=a b"

	tests := []struct {
		name     string
		strategy domain.ProxyStrategy
		want     string
	}{
		{"none", domain.ProxyNone, feedURL},
		{"empty", "", feedURL},
		{"unknown", "something", feedURL},
		{"allorigins", domain.ProxyAllOrigins,
			"https://api.allorigins.win/raw?url=https%3A%2F%2Fwww.youtube.com%2Ffeeds%2Fvideos.xml%3Fchannel_id%3DUC1%26x%3Da+b"},
		{"corsproxy", domain.ProxyCorsProxy,
			"https://corsproxy.io/?https%3A%2F%2Fwww.youtube.com%2Ffeeds%2Fvideos.xml%3Fchannel_id%3DUC1%26x%3Da+b"},
		{"case insensitive", "AllOrigins",
			"https://api.allorigins.win/raw?url=https%3A%2F%2Fwww.youtube.com%2Ffeeds%2Fvideos.xml%3Fchannel_id%3DUC1%26x%3Da+b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(feedURL, tt.strategy))
		})
	}
}
