package server

import (
	"log"
	"net/http"
	"strconv"

	"github.com/samber/lo"

	"github.com/umputun/tubefeed/pkg/domain"
	"github.com/umputun/tubefeed/pkg/feed"
)

const defaultFeedLimit = 100

// rssHandler serves loaded items as RSS 2.0.
// Supports ?channel=... to narrow to one channel and ?limit=N.
func (s *Server) rssHandler(w http.ResponseWriter, r *http.Request) {
	s.serveFeed(w, r, "application/rss+xml; charset=utf-8", (*feed.Generator).GenerateRSS)
}

// atomHandler serves loaded items as Atom 1.0, same parameters as rss
func (s *Server) atomHandler(w http.ResponseWriter, r *http.Request) {
	s.serveFeed(w, r, "application/atom+xml; charset=utf-8", (*feed.Generator).GenerateAtom)
}

type generateFunc func(g *feed.Generator, items []domain.FeedItem, channel string) (string, error)

func (s *Server) serveFeed(w http.ResponseWriter, r *http.Request, contentType string, generate generateFunc) {
	channel := r.URL.Query().Get("channel")
	limit := defaultFeedLimit
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}

	// content filter applies to the output feed, the channel filter only if requested
	wc := s.cfg().GetWidget()
	items := lo.Filter(s.view.Items(), func(item domain.FeedItem, _ int) bool {
		return (channel == "" || item.Channel == channel) && wc.ContentFilter.Accept(item)
	})
	if len(items) > limit {
		items = items[:limit]
	}

	generator := feed.NewGenerator(s.cfg().GetBaseURL(), wc.Title)
	res, err := generate(generator, items, channel)
	if err != nil {
		log.Printf("[ERROR] failed to generate feed: %v", err)
		http.Error(w, "Failed to generate feed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	if _, err := w.Write([]byte(res)); err != nil {
		log.Printf("[ERROR] failed to write feed response: %v", err)
	}
}
