package player

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/umputun/tubefeed/pkg/domain"
)

func TestVideoID(t *testing.T) {
	tests := []struct {
		link   string
		wantID string
		wantOK bool
	}{
		{"https://www.youtube.com/watch?v=abc123", "abc123", true},
		{"https://youtube.com/watch?v=abc123&t=10", "abc123", true},
		{"https://m.youtube.com/watch?v=mob", "mob", true},
		{"https://www.youtube.com/shorts/sh0rt", "sh0rt", true},
		{"https://www.youtube.com/shorts/sh0rt/", "sh0rt", true},
		{"https://youtu.be/xyz", "xyz", true},
		{"https://youtu.be/xyz?t=5", "xyz", true},
		{"https://youtu.be/xyz/", "xyz", true},
		{"https://youtu.be/xyz/extra", "xyz", true},
		{"https://youtu.be//xyz", "xyz", true},
		{"https://youtu.be/", "", false},
		{"https://www.youtube.com/channel/UC1", "", false},
		{"https://example.com/watch?v=abc", "", false},
		{"https://notyoutube.com/watch?v=abc", "", false},
		{"not a url", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.link, func(t *testing.T) {
			id, ok := VideoID(tt.link)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestEmbedURL(t *testing.T) {
	assert.Equal(t, "https://www.youtube-nocookie.com/embed/abc?autoplay=0&mute=0",
		EmbedURL("abc", Config{}))
	assert.Equal(t, "https://www.youtube-nocookie.com/embed/abc?autoplay=1&mute=1&origin=https%3A%2F%2Fexample.com%3A8080",
		EmbedURL("abc", Config{Autoplay: true, Mute: true, Origin: "https://example.com:8080"}))
}

func TestDecide(t *testing.T) {
	video := domain.FeedItem{Link: "https://www.youtube.com/watch?v=abc"}
	other := domain.FeedItem{Link: "https://vimeo.com/123"}

	t.Run("external new tab", func(t *testing.T) {
		a := Decide(video, Config{Mode: domain.PlayerExternal, NewTab: true})
		assert.Equal(t, Action{Kind: ActionNavigate, URL: video.Link, Target: "_blank"}, a)
	})

	t.Run("external same tab", func(t *testing.T) {
		a := Decide(video, Config{Mode: domain.PlayerExternal})
		assert.Equal(t, "_self", a.Target)
	})

	t.Run("inline", func(t *testing.T) {
		a := Decide(video, Config{Mode: domain.PlayerInline, Autoplay: true})
		assert.Equal(t, ActionInline, a.Kind)
		assert.Equal(t, "abc", a.VideoID)
		assert.Equal(t, "https://www.youtube-nocookie.com/embed/abc?autoplay=1&mute=0", a.EmbedURL)
		assert.Empty(t, a.URL)
	})

	t.Run("dialog", func(t *testing.T) {
		a := Decide(video, Config{Mode: "Dialog"})
		assert.Equal(t, ActionDialog, a.Kind)
		assert.Equal(t, "abc", a.VideoID)
	})

	t.Run("no id always navigates", func(t *testing.T) {
		for _, mode := range []domain.PlayerMode{domain.PlayerInline, domain.PlayerDialog, domain.PlayerExternal} {
			a := Decide(other, Config{Mode: mode, NewTab: true})
			assert.Equal(t, ActionNavigate, a.Kind, string(mode))
			assert.Equal(t, other.Link, a.URL)
		}
	})

	t.Run("unknown mode navigates", func(t *testing.T) {
		assert.Equal(t, ActionNavigate, Decide(video, Config{Mode: "popup"}).Kind)
	})
}
