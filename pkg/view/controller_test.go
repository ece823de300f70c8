package view_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/tubefeed/pkg/cache"
	"github.com/umputun/tubefeed/pkg/domain"
	"github.com/umputun/tubefeed/pkg/view"
	"github.com/umputun/tubefeed/pkg/view/mocks"
)

func testOptions() view.Options {
	return view.Options{
		Feeds:           []string{"f1", "f2"},
		Proxy:           domain.ProxyNone,
		RefreshInterval: 30 * time.Minute,
		ContentFilter:   domain.ContentBoth,
		Collapsible:     true,
		ShowExpand:      true,
		ItemsCollapsed:  1,
		ItemsExpanded:   3,
	}
}

func TestController_Load(t *testing.T) {
	items := []domain.FeedItem{
		{Title: "one", Link: "https://youtu.be/1", Channel: "B", PublishedTS: 2},
		{Title: "two", Link: "https://youtu.be/2", Channel: "A", PublishedTS: 1},
	}
	source := &mocks.SourceMock{LoadFunc: func(ctx context.Context, req view.LoadRequest) ([]domain.FeedItem, error) {
		return items, nil
	}}
	surface := &mocks.SurfaceMock{PushFunc: func(snap view.Snapshot) {}}

	c := view.NewController(source, surface, testOptions())
	require.NoError(t, c.Load(context.Background(), true, false))

	require.Len(t, source.LoadCalls(), 1)
	req := source.LoadCalls()[0].Req
	assert.True(t, req.Force)
	assert.False(t, req.ClearCache)
	assert.Equal(t, []string{"f1", "f2"}, req.Feeds)
	assert.Equal(t, 30*time.Minute, req.RefreshInterval)

	pushes := surface.PushCalls()
	require.Len(t, pushes, 2)
	assert.True(t, pushes[0].Snap.Loading)
	assert.False(t, pushes[1].Snap.Loading)

	snap := c.Snapshot()
	assert.True(t, snap.Loaded)
	assert.Equal(t, []string{"A", "B"}, snap.Channels)
	assert.Len(t, snap.Items, 1, "collapsed count")
	assert.Equal(t, 2, snap.Filtered)
	assert.Equal(t, 2, snap.Sources)
	assert.True(t, snap.CanExpand)

	snap = c.Dispatch(view.ToggleExpand{})
	assert.Len(t, snap.Items, 2)

	item, ok := c.Find("https://youtu.be/2")
	assert.True(t, ok)
	assert.Equal(t, "two", item.Title)
	_, ok = c.Find("https://youtu.be/none")
	assert.False(t, ok)

	all := c.Items()
	assert.Equal(t, items, all)
	all[0].Title = "changed"
	assert.Equal(t, "one", c.Items()[0].Title, "items are copied")
}

func TestController_LoadFailure(t *testing.T) {
	fail := false
	source := &mocks.SourceMock{LoadFunc: func(ctx context.Context, req view.LoadRequest) ([]domain.FeedItem, error) {
		if fail {
			return nil, errors.New("network down")
		}
		return []domain.FeedItem{{Title: "kept", Link: "https://youtu.be/k"}}, nil
	}}
	c := view.NewController(source, nil, testOptions())
	require.NoError(t, c.Load(context.Background(), false, false))

	fail = true
	err := c.Load(context.Background(), true, true)
	require.Error(t, err)
	var aggErr *view.AggregationError
	require.ErrorAs(t, err, &aggErr)
	assert.Contains(t, aggErr.Hint(), "allorigins")

	snap := c.Snapshot()
	assert.False(t, snap.Loading)
	assert.Contains(t, snap.Error, "network down")
	assert.Equal(t, view.AggregationHint, snap.ErrorHint)
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "kept", snap.Items[0].Title)
}

func TestController_LoadCanceled(t *testing.T) {
	source := &mocks.SourceMock{LoadFunc: func(ctx context.Context, req view.LoadRequest) ([]domain.FeedItem, error) {
		if req.Force {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("aggregate 2 feeds: %w", ctx.Err())
			case <-time.After(time.Second):
			}
		}
		return []domain.FeedItem{{Title: "kept", Link: "https://youtu.be/k"}}, nil
	}}
	surface := &mocks.SurfaceMock{PushFunc: func(snap view.Snapshot) {}}
	c := view.NewController(source, surface, testOptions())
	require.NoError(t, c.Load(context.Background(), false, false))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err := c.Load(ctx, true, false)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	var aggErr *view.AggregationError
	assert.False(t, errors.As(err, &aggErr), "cancellation is not an aggregation failure")

	snap := c.Snapshot()
	assert.False(t, snap.Loading)
	assert.Empty(t, snap.Error)
	assert.Empty(t, snap.ErrorHint)
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "kept", snap.Items[0].Title)

	pushes := surface.PushCalls()
	for _, p := range pushes {
		assert.Empty(t, p.Snap.Error)
	}
	assert.False(t, pushes[len(pushes)-1].Snap.Loading)
}

func TestController_SupersededLoadDiscarded(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	var mu sync.Mutex
	call := 0
	source := &mocks.SourceMock{LoadFunc: func(ctx context.Context, req view.LoadRequest) ([]domain.FeedItem, error) {
		mu.Lock()
		call++
		n := call
		mu.Unlock()
		if n == 1 {
			close(started)
			<-release
			return []domain.FeedItem{{Title: "stale", Link: "s"}}, nil
		}
		return []domain.FeedItem{{Title: "latest", Link: "l"}}, nil
	}}
	c := view.NewController(source, nil, testOptions())

	done := make(chan error)
	go func() { done <- c.Load(context.Background(), true, false) }()
	<-started

	require.NoError(t, c.Load(context.Background(), true, false))
	close(release)
	require.NoError(t, <-done)

	snap := c.Snapshot()
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "latest", snap.Items[0].Title)
	assert.False(t, snap.Loading)
}

func TestController_DispatchIgnoresLifecycleEvents(t *testing.T) {
	c := view.NewController(&mocks.SourceMock{}, nil, testOptions())
	before := c.Snapshot()
	assert.Equal(t, before, c.Dispatch(view.Refresh{}))
	assert.Equal(t, before, c.Dispatch(view.Reset{}))
	assert.Equal(t, before, c.Dispatch(view.Loaded{Generation: before.Generation, Items: []domain.FeedItem{{Link: "x"}}}))
}

func TestController_Reconfigure(t *testing.T) {
	source := &mocks.SourceMock{LoadFunc: func(ctx context.Context, req view.LoadRequest) ([]domain.FeedItem, error) {
		return []domain.FeedItem{{Title: "x", Link: "x", Channel: "A"}}, nil
	}}
	surface := &mocks.SurfaceMock{PushFunc: func(snap view.Snapshot) {}}
	c := view.NewController(source, surface, testOptions())
	require.NoError(t, c.Load(context.Background(), false, false))
	c.Dispatch(view.SelectChannel{Name: "A"})

	opts := testOptions()
	opts.Feeds = []string{"other"}
	c.Reconfigure(opts)

	snap := c.Snapshot()
	assert.False(t, snap.Loaded)
	assert.Equal(t, view.AllChannels, snap.SelectedChannel)
	assert.Equal(t, 1, snap.Sources)

	require.NoError(t, c.Load(context.Background(), false, false))
	calls := source.LoadCalls()
	assert.Equal(t, []string{"other"}, calls[len(calls)-1].Req.Feeds)
}

func TestController_WithLoaderAndCache(t *testing.T) {
	agg := &mocks.AggregatorMock{AggregateFunc: func(ctx context.Context, feedURLs []string, proxy domain.ProxyStrategy) ([]domain.FeedItem, error) {
		return []domain.FeedItem{{Title: "a", Link: "a", PublishedTS: 1}}, nil
	}}
	loader := view.NewLoader(cache.New(cache.NewMemoryStore()), agg)
	c := view.NewController(loader, nil, testOptions())

	require.NoError(t, c.Load(context.Background(), false, false))
	require.NoError(t, c.Load(context.Background(), false, false))
	assert.Len(t, agg.AggregateCalls(), 1, "second load served from cache")

	require.NoError(t, c.Load(context.Background(), true, true))
	assert.Len(t, agg.AggregateCalls(), 2)
}
