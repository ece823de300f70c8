package feed

import (
	"strings"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/tubefeed/pkg/domain"
)

func TestGenerator(t *testing.T) {
	pub := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	items := []domain.FeedItem{
		{Title: "Video <One>", Link: "https://www.youtube.com/watch?v=1", Channel: "Chan", PublishedTS: pub.UnixMilli(),
			Thumbnail: "https://i.ytimg.com/vi/1/hq.jpg"},
		{Title: "Short", Link: "https://www.youtube.com/shorts/2"},
	}

	gen := NewGenerator("https://feeds.example.com/", "")
	gen.now = func() time.Time { return pub }

	t.Run("rss", func(t *testing.T) {
		out, err := gen.GenerateRSS(items, "")
		require.NoError(t, err)
		assert.Contains(t, out, "<rss")
		assert.Contains(t, out, "Video &lt;One&gt;")

		parsed, err := gofeed.NewParser().ParseString(out)
		require.NoError(t, err)
		assert.Equal(t, "Tubefeed", parsed.Title)
		require.Len(t, parsed.Items, 2)
		assert.Equal(t, "Video <One>", parsed.Items[0].Title)
		assert.Equal(t, "https://www.youtube.com/watch?v=1", parsed.Items[0].Link)
		require.Len(t, parsed.Items[0].Enclosures, 1)
		assert.Equal(t, "https://i.ytimg.com/vi/1/hq.jpg", parsed.Items[0].Enclosures[0].URL)
	})

	t.Run("atom with channel title", func(t *testing.T) {
		out, err := gen.GenerateAtom(items[:1], "Chan")
		require.NoError(t, err)
		assert.True(t, strings.Contains(out, "http://www.w3.org/2005/Atom"))

		parsed, err := gofeed.NewParser().ParseString(out)
		require.NoError(t, err)
		assert.Equal(t, "Tubefeed - Chan", parsed.Title)
		require.Len(t, parsed.Items, 1)
		assert.Equal(t, "https://www.youtube.com/watch?v=1", parsed.Items[0].Link)
	})
}
