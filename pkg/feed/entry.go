package feed

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"

	"github.com/umputun/tubefeed/pkg/domain"
)

// toFeedItem normalizes a parsed entry. Returns false if the entry has no link.
func toFeedItem(entry *gofeed.Item) (domain.FeedItem, bool) {
	if entry == nil {
		return domain.FeedItem{}, false
	}

	link := strings.TrimSpace(entry.Link)
	if link == "" && len(entry.Links) > 0 {
		link = strings.TrimSpace(entry.Links[0])
	}
	if link == "" {
		return domain.FeedItem{}, false
	}

	title := strings.TrimSpace(entry.Title)
	if title == "" {
		title = domain.UntitledItem
	}

	raw, ts := entryDate(entry)
	return domain.FeedItem{
		Title:        title,
		Link:         link,
		Channel:      entryChannel(entry),
		PublishedRaw: raw,
		PublishedTS:  ts,
		Thumbnail:    entryThumbnail(entry),
	}, true
}

// entryDate returns the raw published (or updated) text and its epoch ms, 0 if not parseable.
// gofeed backfills PublishedParsed from the updated date, so published text is parsed here.
func entryDate(entry *gofeed.Item) (raw string, ts int64) {
	raw = strings.TrimSpace(entry.Published)
	var parsed *time.Time
	if raw == "" {
		raw, parsed = strings.TrimSpace(entry.Updated), entry.UpdatedParsed
	}
	if raw == "" {
		return "", 0
	}

	if parsed == nil {
		t, err := dateparse.ParseAny(raw)
		if err != nil {
			return raw, 0
		}
		parsed = &t
	}
	return raw, max(parsed.UnixMilli(), 0)
}

func entryChannel(entry *gofeed.Item) string {
	for _, a := range entry.Authors {
		if a != nil && strings.TrimSpace(a.Name) != "" {
			return strings.TrimSpace(a.Name)
		}
	}
	if entry.Author != nil {
		return strings.TrimSpace(entry.Author.Name)
	}
	return ""
}

// entryThumbnail checks thumbnail locations in order and returns the first url found:
// media:group/media:thumbnail, media:thumbnail, any namespaced thumbnail, then the entry image.
func entryThumbnail(entry *gofeed.Item) string {
	media := entry.Extensions["media"]
	for _, group := range media["group"] {
		if u := thumbnailURL(group.Children["thumbnail"]); u != "" {
			return u
		}
	}
	if u := thumbnailURL(media["thumbnail"]); u != "" {
		return u
	}
	for prefix, elems := range entry.Extensions {
		if prefix == "media" {
			continue
		}
		if u := thumbnailURL(elems["thumbnail"]); u != "" {
			return u
		}
	}
	if entry.Image != nil {
		return strings.TrimSpace(entry.Image.URL)
	}
	return ""
}

func thumbnailURL(elems []ext.Extension) string {
	for _, e := range elems {
		if u := strings.TrimSpace(e.Attrs["url"]); u != "" {
			return u
		}
		if u := strings.TrimSpace(e.Value); u != "" {
			return u
		}
	}
	return ""
}
