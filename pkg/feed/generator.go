package feed

import (
	"fmt"
	"strings"
	"time"

	"github.com/gorilla/feeds"

	"github.com/umputun/tubefeed/pkg/domain"
)

// Generator re-publishes the merged item list as RSS 2.0 or Atom
type Generator struct {
	baseURL string
	title   string
	now     func() time.Time
}

// NewGenerator creates a new feed generator
func NewGenerator(baseURL, title string) *Generator {
	if title == "" {
		title = "Tubefeed"
	}
	return &Generator{baseURL: strings.TrimRight(baseURL, "/"), title: title, now: time.Now}
}

// GenerateRSS creates an RSS 2.0 document, channel narrows the title only, items are used as given
func (g *Generator) GenerateRSS(items []domain.FeedItem, channel string) (string, error) {
	res, err := g.build(items, channel, "/rss").ToRss()
	if err != nil {
		return "", fmt.Errorf("generate rss: %w", err)
	}
	return res, nil
}

// GenerateAtom creates an Atom 1.0 document
func (g *Generator) GenerateAtom(items []domain.FeedItem, channel string) (string, error) {
	res, err := g.build(items, channel, "/atom").ToAtom()
	if err != nil {
		return "", fmt.Errorf("generate atom: %w", err)
	}
	return res, nil
}

func (g *Generator) build(items []domain.FeedItem, channel, path string) *feeds.Feed {
	title := g.title
	if channel != "" {
		title = fmt.Sprintf("%s - %s", g.title, channel)
	}

	now := g.now()
	res := &feeds.Feed{
		Title:       title,
		Link:        &feeds.Link{Href: g.baseURL + "/"},
		Description: fmt.Sprintf("latest videos from %s", title),
		Id:          g.baseURL + path,
		Created:     now,
		Updated:     now,
		Items:       make([]*feeds.Item, 0, len(items)),
	}

	for _, item := range items {
		entry := &feeds.Item{
			Title:   item.Title,
			Link:    &feeds.Link{Href: item.Link},
			Id:      item.Link,
			Created: item.Published(),
		}
		if item.Channel != "" {
			entry.Author = &feeds.Author{Name: item.Channel}
		}
		if item.Thumbnail != "" {
			entry.Enclosure = &feeds.Enclosure{Url: item.Thumbnail, Type: "image/jpeg", Length: "0"}
		}
		res.Items = append(res.Items, entry)
	}
	return res
}
