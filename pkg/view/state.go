// Package view holds the widget view model. State is an immutable value changed
// only through Reduce, the Controller owns the single live instance.
package view

import (
	"slices"

	"github.com/umputun/tubefeed/pkg/domain"
)

// AllChannels is the channel selection meaning "no channel filter"
const AllChannels = "__all__"

// State is the transient widget state. Treat values as immutable, Reduce returns a new one.
type State struct {
	Generation      uint64 // bumped on every load start and reset, load results carry it back
	SelectedChannel string
	SelectedVideo   *domain.FeedItem // set only by inline playback
	Expanded        bool
	Loading         bool
	Err             string // last aggregation failure, cleared by a successful load
	LastItems       []domain.FeedItem
	LastChannels    []string
}

// NewState returns the initial state
func NewState() State {
	return State{SelectedChannel: AllChannels}
}

// Event is a view model input
type Event interface {
	event()
}

// Refresh marks the start of a load and opens a new generation
type Refresh struct{}

// Loaded delivers a load result for the generation it was started in
type Loaded struct {
	Generation uint64
	Items      []domain.FeedItem
	Channels   []string
}

// LoadFailed delivers a load failure for the generation it was started in
type LoadFailed struct {
	Generation uint64
	Err        string
}

// LoadCanceled ends a load whose context was canceled, prior state stays as is
type LoadCanceled struct {
	Generation uint64
}

// SelectChannel changes the channel filter, empty name selects all channels
type SelectChannel struct {
	Name string
}

// ToggleExpand flips the collapsed/expanded list
type ToggleExpand struct{}

// SelectVideo switches to the inline player for the item
type SelectVideo struct {
	Item domain.FeedItem
}

// CloseVideo returns from the inline player to the list
type CloseVideo struct{}

// Reset drops all state, used when configuration changes
type Reset struct{}

func (Refresh) event()       {}
func (Loaded) event()        {}
func (LoadFailed) event()    {}
func (LoadCanceled) event()  {}
func (SelectChannel) event() {}
func (ToggleExpand) event()  {}
func (SelectVideo) event()   {}
func (CloseVideo) event()    {}
func (Reset) event()         {}

// Reduce applies the event to the state and returns the new state.
// Load results from a superseded generation are discarded.
func Reduce(s State, ev Event) State {
	switch e := ev.(type) {
	case Refresh:
		s.Generation++
		s.Loading = true
	case Loaded:
		if e.Generation != s.Generation {
			return s
		}
		s.Loading = false
		s.Err = ""
		s.LastItems = e.Items
		if s.LastItems == nil {
			s.LastItems = []domain.FeedItem{}
		}
		s.LastChannels = e.Channels
		if s.SelectedChannel != AllChannels && !slices.Contains(s.LastChannels, s.SelectedChannel) {
			s.SelectedChannel = AllChannels
		}
	case LoadFailed:
		if e.Generation != s.Generation {
			return s
		}
		s.Loading = false
		s.Err = e.Err
	case LoadCanceled:
		if e.Generation != s.Generation {
			return s
		}
		s.Loading = false
	case SelectChannel:
		s.SelectedChannel = e.Name
		if s.SelectedChannel == "" {
			s.SelectedChannel = AllChannels
		}
		s.SelectedVideo = nil
	case ToggleExpand:
		s.Expanded = !s.Expanded
	case SelectVideo:
		item := e.Item
		s.SelectedVideo = &item
	case CloseVideo:
		s.SelectedVideo = nil
	case Reset:
		return State{Generation: s.Generation + 1, SelectedChannel: AllChannels}
	}
	return s
}
