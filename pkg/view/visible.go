package view

import (
	"strings"
	"time"

	"github.com/samber/lo"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/umputun/tubefeed/pkg/domain"
)

// Options are the configuration values the view model depends on
type Options struct {
	Feeds           []string
	Proxy           domain.ProxyStrategy
	RefreshInterval time.Duration
	Locale          string
	ContentFilter   domain.ContentFilter
	Collapsible     bool
	ShowExpand      bool
	MaxItems        int
	ItemsCollapsed  int
	ItemsExpanded   int
}

// VisibleCount returns how many items to show. With collapsing enabled the expanded
// count never goes below the collapsed one, otherwise MaxItems applies.
func VisibleCount(opts Options, expanded bool) int {
	if !opts.Collapsible {
		return max(1, opts.MaxItems)
	}
	collapsed := max(1, opts.ItemsCollapsed)
	if expanded {
		return max(collapsed, opts.ItemsExpanded)
	}
	return collapsed
}

// Filtered applies the channel filter and then the content filter, without truncation
func Filtered(s State, opts Options) []domain.FeedItem {
	return lo.Filter(s.LastItems, func(item domain.FeedItem, _ int) bool {
		if s.SelectedChannel != AllChannels && item.Channel != s.SelectedChannel {
			return false
		}
		return opts.ContentFilter.Accept(item)
	})
}

// Visible returns the items to display
func Visible(s State, opts Options) []domain.FeedItem {
	items := Filtered(s, opts)
	if n := VisibleCount(opts, s.Expanded); len(items) > n {
		items = items[:n]
	}
	return items
}

// Channels returns distinct non-empty channel names sorted for the locale.
// Unknown or empty locale sorts with english collation.
func Channels(items []domain.FeedItem, locale string) []string {
	names := lo.Uniq(lo.FilterMap(items, func(item domain.FeedItem, _ int) (string, bool) {
		name := strings.TrimSpace(item.Channel)
		return name, name != ""
	}))

	tag := language.English
	if locale != "" {
		if t, err := language.Parse(locale); err == nil {
			tag = t
		}
	}
	collate.New(tag).SortStrings(names)
	return names
}
