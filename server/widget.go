package server

import (
	"context"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/umputun/tubefeed/pkg/config"
	"github.com/umputun/tubefeed/pkg/domain"
	"github.com/umputun/tubefeed/pkg/player"
	"github.com/umputun/tubefeed/pkg/view"
)

const dateLayout = "Jan 2, 2006"

// widgetData is everything the widget template needs for one render
type widgetData struct {
	Snap    view.Snapshot
	Widget  config.Widget
	Rows    []itemRow
	All     string        // channel value meaning "all channels"
	Player  *inlinePlayer // set when a video plays in place of the list
	Style   template.CSS
	Grid    template.CSS
	Empty   bool
	Version string
}

// itemRow is a rendered item with its pre-decided activation
type itemRow struct {
	Item     domain.FeedItem
	Date     string
	Navigate bool   // render as a plain link
	Target   string // link target for navigation
}

// chipData is a channel filter chip
type chipData struct {
	Value  string
	Label  string
	Active bool
}

// tileData pairs a row with the options controlling its meta line
type tileData struct {
	Row    itemRow
	Widget config.Widget
}

var templateFuncs = template.FuncMap{
	"chip": func(value, label, selected string) chipData {
		return chipData{Value: value, Label: label, Active: value == selected}
	},
	"tile": func(row itemRow, wc config.Widget) tileData {
		return tileData{Row: row, Widget: wc}
	},
}

type inlinePlayer struct {
	Title    string
	Channel  string
	EmbedURL string
}

// pageHandler renders the host page with the widget inside
func (s *Server) pageHandler(w http.ResponseWriter, r *http.Request) {
	s.render(w, "page.html", s.widgetData(r, s.view.Snapshot()))
}

// widgetHandler renders the widget fragment, used by the page on every pushed snapshot
func (s *Server) widgetHandler(w http.ResponseWriter, r *http.Request) {
	s.renderWidget(w, r, s.view.Snapshot())
}

// widgetRefreshHandler runs a forced load with cache invalidation.
// A refresh is ignored while another load is in flight.
func (s *Server) widgetRefreshHandler(w http.ResponseWriter, r *http.Request) {
	if snap := s.view.Snapshot(); snap.Loading {
		log.Printf("[DEBUG] refresh ignored, load in progress")
		s.renderWidget(w, r, snap)
		return
	}
	// the load outlives a disconnected client, its result goes to every subscriber
	if err := s.view.Load(context.WithoutCancel(r.Context()), true, true); err != nil {
		log.Printf("[WARN] refresh failed: %v", err)
	}
	s.renderWidget(w, r, s.view.Snapshot())
}

func (s *Server) widgetChannelHandler(w http.ResponseWriter, r *http.Request) {
	s.renderWidget(w, r, s.view.Dispatch(view.SelectChannel{Name: r.FormValue("channel")}))
}

func (s *Server) widgetExpandHandler(w http.ResponseWriter, r *http.Request) {
	s.renderWidget(w, r, s.view.Dispatch(view.ToggleExpand{}))
}

func (s *Server) widgetBackHandler(w http.ResponseWriter, r *http.Request) {
	s.renderWidget(w, r, s.view.Dispatch(view.CloseVideo{}))
}

// widgetSelectHandler activates an item. Inline playback re-renders the widget,
// dialog mode retargets the response into the overlay container and navigation
// is delegated to htmx with a redirect header.
func (s *Server) widgetSelectHandler(w http.ResponseWriter, r *http.Request) {
	link := r.FormValue("link")
	item, ok := s.view.Find(link)
	if !ok {
		http.Error(w, "video not found", http.StatusNotFound)
		return
	}

	action := player.Decide(item, s.playerConfig(r))
	switch action.Kind {
	case player.ActionInline:
		s.renderWidget(w, r, s.view.Dispatch(view.SelectVideo{Item: item}))
	case player.ActionDialog:
		w.Header().Set("HX-Retarget", "#overlay")
		w.Header().Set("HX-Reswap", "innerHTML")
		s.render(w, "overlay", inlinePlayer{Title: item.Title, Channel: item.Channel, EmbedURL: action.EmbedURL})
	default:
		w.Header().Set("HX-Redirect", action.URL)
		w.WriteHeader(http.StatusOK)
	}
}

func (s *Server) renderWidget(w http.ResponseWriter, r *http.Request, snap view.Snapshot) {
	s.render(w, "widget", s.widgetData(r, snap))
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("[ERROR] failed to render %s: %v", name, err)
		http.Error(w, "failed to render", http.StatusInternalServerError)
	}
}

// widgetData builds the render model from a snapshot and current widget options
func (s *Server) widgetData(r *http.Request, snap view.Snapshot) widgetData {
	wc := s.cfg().GetWidget()
	pc := s.playerConfig(r)
	now := time.Now()

	res := widgetData{
		Snap:    snap,
		Widget:  wc,
		All:     view.AllChannels,
		Rows:    make([]itemRow, 0, len(snap.Items)),
		Style:   panelStyle(wc),
		Grid:    gridStyle(wc),
		Empty:   snap.Loaded && !snap.Loading && snap.Error == "" && len(snap.Items) == 0,
		Version: s.version,
	}

	for _, item := range snap.Items {
		action := player.Decide(item, pc)
		res.Rows = append(res.Rows, itemRow{
			Item:     item,
			Date:     formatDate(item, wc.RelativeDates, now),
			Navigate: action.Kind == player.ActionNavigate,
			Target:   action.Target,
		})
	}

	if v := snap.SelectedVideo; v != nil {
		if id, ok := player.VideoID(v.Link); ok {
			res.Player = &inlinePlayer{Title: v.Title, Channel: v.Channel, EmbedURL: player.EmbedURL(id, pc)}
		}
	}
	return res
}

// playerConfig returns player options, origin is the configured base url or the request's own
func (s *Server) playerConfig(r *http.Request) player.Config {
	wc := s.cfg().GetWidget()
	return player.Config{
		Mode:     wc.PlayerMode,
		Autoplay: wc.PlayerAutoplay,
		Mute:     wc.PlayerMute,
		NewTab:   wc.OpenInNewTab,
		Origin:   s.origin(r),
	}
}

func (s *Server) origin(r *http.Request) string {
	if base := s.cfg().GetBaseURL(); base != "" {
		if u, err := url.Parse(base); err == nil && u.Scheme != "" && u.Host != "" {
			return u.Scheme + "://" + u.Host
		}
	}
	if r == nil || r.Host == "" {
		return ""
	}
	scheme := "http"
	if r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https") {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

func panelStyle(wc config.Widget) template.CSS {
	if !wc.FixedHeight {
		return ""
	}
	overflow := "hidden"
	if wc.Scroll {
		overflow = "auto"
	}
	return template.CSS(fmt.Sprintf("height:%dpx;overflow-y:%s", wc.Height.Int(), overflow)) //nolint:gosec // values are clamped ints
}

func gridStyle(wc config.Widget) template.CSS {
	return template.CSS(fmt.Sprintf("grid-template-columns:repeat(%d,minmax(0,1fr));gap:%dpx", //nolint:gosec // values are clamped ints
		wc.GridColumns.Int(), wc.GridGap.Int()))
}

// formatDate renders the item date pill, raw feed text is used when the date was not parseable
func formatDate(item domain.FeedItem, relative bool, now time.Time) string {
	if item.PublishedTS <= 0 {
		return item.PublishedRaw
	}
	t := item.Published()
	if relative {
		return humanize.RelTime(t, now, "ago", "from now")
	}
	return t.UTC().Format(dateLayout)
}
