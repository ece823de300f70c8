package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/tubefeed/pkg/domain"
)

func TestReduce_LoadLifecycle(t *testing.T) {
	items := []domain.FeedItem{{Title: "a", Link: "l1", Channel: "A"}, {Title: "b", Link: "l2", Channel: "B"}}

	s := NewState()
	assert.Equal(t, AllChannels, s.SelectedChannel)
	assert.Nil(t, s.LastItems)

	s = Reduce(s, Refresh{})
	assert.True(t, s.Loading)
	assert.Equal(t, uint64(1), s.Generation)

	s = Reduce(s, Loaded{Generation: 1, Items: items, Channels: []string{"A", "B"}})
	assert.False(t, s.Loading)
	assert.Equal(t, items, s.LastItems)
	assert.Equal(t, []string{"A", "B"}, s.LastChannels)

	t.Run("failure keeps prior items", func(t *testing.T) {
		st := Reduce(s, Refresh{})
		st = Reduce(st, LoadFailed{Generation: st.Generation, Err: "boom"})
		assert.False(t, st.Loading)
		assert.Equal(t, "boom", st.Err)
		assert.Equal(t, items, st.LastItems)

		st = Reduce(st, Refresh{})
		st = Reduce(st, Loaded{Generation: st.Generation, Items: items, Channels: []string{"A", "B"}})
		assert.Empty(t, st.Err, "success clears error")
	})

	t.Run("empty result is loaded, not nil", func(t *testing.T) {
		st := Reduce(Reduce(NewState(), Refresh{}), Loaded{Generation: 1})
		require.NotNil(t, st.LastItems)
		assert.Empty(t, st.LastItems)
	})
}

func TestReduce_StaleGenerationDiscarded(t *testing.T) {
	s := Reduce(NewState(), Refresh{}) // gen 1, slow
	s = Reduce(s, Refresh{})           // gen 2, fast

	s = Reduce(s, Loaded{Generation: 2, Items: []domain.FeedItem{{Link: "new"}}})
	assert.False(t, s.Loading)

	before := s
	s = Reduce(s, Loaded{Generation: 1, Items: []domain.FeedItem{{Link: "old"}}})
	assert.Equal(t, before, s)
	assert.Equal(t, "new", s.LastItems[0].Link)

	s = Reduce(s, LoadFailed{Generation: 1, Err: "late"})
	assert.Empty(t, s.Err)
}

func TestReduce_ChannelResetOnReload(t *testing.T) {
	s := Reduce(NewState(), Refresh{})
	s = Reduce(s, Loaded{Generation: s.Generation, Items: []domain.FeedItem{{Link: "1", Channel: "Channel X"}}, Channels: []string{"Channel X"}})
	s = Reduce(s, SelectChannel{Name: "Channel X"})
	assert.Equal(t, "Channel X", s.SelectedChannel)

	s = Reduce(s, Refresh{})
	s = Reduce(s, Loaded{Generation: s.Generation, Items: []domain.FeedItem{{Link: "2", Channel: "Y"}}, Channels: []string{"Y"}})
	assert.Equal(t, AllChannels, s.SelectedChannel)

	t.Run("kept when still present", func(t *testing.T) {
		st := Reduce(s, SelectChannel{Name: "Y"})
		st = Reduce(st, Refresh{})
		st = Reduce(st, Loaded{Generation: st.Generation, Channels: []string{"X", "Y"}})
		assert.Equal(t, "Y", st.SelectedChannel)
	})
}

func TestReduce_Interaction(t *testing.T) {
	video := domain.FeedItem{Title: "v", Link: "https://youtu.be/v"}

	s := Reduce(NewState(), SelectVideo{Item: video})
	require.NotNil(t, s.SelectedVideo)
	assert.Equal(t, video, *s.SelectedVideo)

	s = Reduce(s, CloseVideo{})
	assert.Nil(t, s.SelectedVideo)

	s = Reduce(s, SelectVideo{Item: video})
	s = Reduce(s, SelectChannel{Name: "A"})
	assert.Nil(t, s.SelectedVideo, "channel change clears the video")
	assert.Equal(t, "A", s.SelectedChannel)

	s = Reduce(s, SelectChannel{})
	assert.Equal(t, AllChannels, s.SelectedChannel)

	s = Reduce(s, ToggleExpand{})
	assert.True(t, s.Expanded)
	s = Reduce(s, ToggleExpand{})
	assert.False(t, s.Expanded)
}

func TestReduce_Reset(t *testing.T) {
	s := Reduce(NewState(), Refresh{})
	s = Reduce(s, Loaded{Generation: 1, Items: []domain.FeedItem{{Link: "1"}}, Channels: []string{"A"}})
	s = Reduce(s, SelectChannel{Name: "A"})
	s = Reduce(s, ToggleExpand{})

	s = Reduce(s, Reset{})
	assert.Equal(t, State{Generation: 2, SelectedChannel: AllChannels}, s)

	s = Reduce(s, Loaded{Generation: 1, Items: []domain.FeedItem{{Link: "late"}}})
	assert.Nil(t, s.LastItems, "load started before reset is stale")
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	s := NewState()
	_ = Reduce(s, ToggleExpand{})
	_ = Reduce(s, Refresh{})
	assert.Equal(t, NewState(), s)
}

func TestReduce_LoadCanceled(t *testing.T) {
	items := []domain.FeedItem{{Title: "a", Link: "l1", Channel: "A"}}
	s := Reduce(Reduce(NewState(), Refresh{}), Loaded{Generation: 1, Items: items, Channels: []string{"A"}})
	s = Reduce(s, SelectChannel{Name: "A"})

	s = Reduce(s, Refresh{})
	s = Reduce(s, LoadCanceled{Generation: s.Generation})
	assert.False(t, s.Loading)
	assert.Empty(t, s.Err)
	assert.Equal(t, items, s.LastItems)
	assert.Equal(t, "A", s.SelectedChannel)

	t.Run("superseded cancel ignored", func(t *testing.T) {
		st := Reduce(s, Refresh{})
		st = Reduce(st, LoadCanceled{Generation: st.Generation - 1})
		assert.True(t, st.Loading)
	})
}
