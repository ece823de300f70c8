package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// ChannelFeedTemplate builds a feed URL from a channel identifier
const ChannelFeedTemplate = "https://www.youtube.com/feeds/videos.xml?channel_id=%s"

// ProxyStrategy selects how feed requests are relayed
type ProxyStrategy string

// supported relay strategies, unknown values behave like ProxyNone
const (
	ProxyNone       ProxyStrategy = "none"
	ProxyAllOrigins ProxyStrategy = "allorigins"
	ProxyCorsProxy  ProxyStrategy = "corsproxy"
)

// ContentFilter selects videos, shorts or both
type ContentFilter string

// content filters
const (
	ContentBoth   ContentFilter = "both"
	ContentVideos ContentFilter = "videos"
	ContentShorts ContentFilter = "shorts"
)

// Accept reports whether the item passes the content filter.
// Unknown filter values accept everything.
func (c ContentFilter) Accept(item FeedItem) bool {
	switch c {
	case ContentShorts:
		return item.IsShort()
	case ContentVideos:
		return !item.IsShort()
	default:
		return true
	}
}

// PlayerMode defines what happens when a video is selected
type PlayerMode string

// player modes
const (
	PlayerExternal PlayerMode = "external"
	PlayerInline   PlayerMode = "inline"
	PlayerDialog   PlayerMode = "dialog"
)

// Layout of the rendered panel
type Layout string

// layouts
const (
	LayoutList Layout = "list"
	LayoutGrid Layout = "grid"
)

// ChannelFeedURL returns the feed URL for a channel id
func ChannelFeedURL(channelID string) string {
	return fmt.Sprintf(ChannelFeedTemplate, url.QueryEscape(strings.TrimSpace(channelID)))
}
