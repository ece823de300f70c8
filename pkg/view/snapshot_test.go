package view

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/umputun/tubefeed/pkg/domain"
)

func TestNewSnapshot_CanExpand(t *testing.T) {
	items := []domain.FeedItem{
		{Title: "a", Link: "l1", Channel: "A"},
		{Title: "b", Link: "l2", Channel: "A"},
		{Title: "c", Link: "l3", Channel: "B"},
	}
	opts := Options{ContentFilter: domain.ContentBoth, Collapsible: true, ShowExpand: true, ItemsCollapsed: 2, ItemsExpanded: 5}
	loaded := Reduce(Reduce(NewState(), Refresh{}), Loaded{Generation: 1, Items: items, Channels: []string{"A", "B"}})

	tbl := []struct {
		name  string
		state State
		opts  func(Options) Options
		want  bool
	}{
		{"more than collapsed", loaded, nil, true},
		{"expanded keeps collapse control", Reduce(loaded, ToggleExpand{}), nil, true},
		{"filter leaves nothing to reveal", Reduce(loaded, SelectChannel{Name: "A"}), nil, false},
		{"exactly collapsed count", loaded, func(o Options) Options { o.ItemsCollapsed = 3; return o }, false},
		{"not collapsible", loaded, func(o Options) Options { o.Collapsible = false; return o }, false},
		{"expand hidden", loaded, func(o Options) Options { o.ShowExpand = false; return o }, false},
		{"nothing loaded", NewState(), nil, false},
	}
	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			o := opts
			if tt.opts != nil {
				o = tt.opts(o)
			}
			assert.Equal(t, tt.want, NewSnapshot(tt.state, o).CanExpand)
		})
	}
}
