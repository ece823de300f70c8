// Package player decides what happens when a video is activated: navigate to the
// watch page, play it inline, or open it in a dialog.
package player

import (
	"net/url"
	"strings"

	"github.com/umputun/tubefeed/pkg/domain"
)

const embedBase = "https://www.youtube-nocookie.com/embed/"

// ActionKind is the result of activating an item
type ActionKind string

// action kinds
const (
	ActionNavigate ActionKind = "navigate"
	ActionInline   ActionKind = "inline"
	ActionDialog   ActionKind = "dialog"
)

// Config holds player related widget options
type Config struct {
	Mode     domain.PlayerMode
	Autoplay bool
	Mute     bool
	NewTab   bool
	Origin   string // embedding page origin passed to the player
}

// Action describes how to present an activated item
type Action struct {
	Kind     ActionKind `json:"kind"`
	URL      string     `json:"url,omitempty"`    // navigation target for ActionNavigate
	Target   string     `json:"target,omitempty"` // _blank or _self
	VideoID  string     `json:"video_id,omitempty"`
	EmbedURL string     `json:"embed_url,omitempty"`
}

// VideoID extracts the video id from a youtube link.
// Supports watch?v=, /shorts/<id> and youtu.be/<id> forms.
func VideoID(link string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil || u.Host == "" {
		return "", false
	}

	host := strings.ToLower(u.Hostname())
	switch {
	case host == "youtu.be":
		id := strings.Trim(u.Path, "/")
		if i := strings.Index(id, "/"); i >= 0 {
			id = id[:i]
		}
		return id, id != ""
	case host == "youtube.com" || strings.HasSuffix(host, ".youtube.com"):
		if v := u.Query().Get("v"); v != "" {
			return v, true
		}
		parts := strings.Split(strings.Trim(u.Path, "/"), "/")
		if len(parts) >= 2 && strings.EqualFold(parts[0], "shorts") && parts[1] != "" {
			return parts[1], true
		}
	}
	return "", false
}

// EmbedURL builds the privacy-enhanced embed url for the video
func EmbedURL(id string, cfg Config) string {
	q := make([]string, 0, 3)
	q = append(q, "autoplay="+boolParam(cfg.Autoplay), "mute="+boolParam(cfg.Mute))
	if cfg.Origin != "" {
		q = append(q, "origin="+url.QueryEscape(cfg.Origin))
	}
	return embedBase + url.PathEscape(id) + "?" + strings.Join(q, "&")
}

// Decide returns the action for the activated item. Links without a recognizable
// video id always navigate, whatever the mode.
func Decide(item domain.FeedItem, cfg Config) Action {
	id, ok := VideoID(item.Link)
	mode := domain.PlayerMode(strings.ToLower(string(cfg.Mode)))
	if !ok || (mode != domain.PlayerInline && mode != domain.PlayerDialog) {
		return Action{Kind: ActionNavigate, URL: item.Link, Target: target(cfg.NewTab)}
	}

	kind := ActionInline
	if mode == domain.PlayerDialog {
		kind = ActionDialog
	}
	return Action{Kind: kind, VideoID: id, EmbedURL: EmbedURL(id, cfg)}
}

func target(newTab bool) string {
	if newTab {
		return "_blank"
	}
	return "_self"
}

func boolParam(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
