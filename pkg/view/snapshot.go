package view

import "github.com/umputun/tubefeed/pkg/domain"

// Snapshot is the declarative view pushed to the rendering surface
type Snapshot struct {
	Generation      uint64            `json:"generation"`
	Items           []domain.FeedItem `json:"items"`
	SelectedChannel string            `json:"selected_channel"`
	Channels        []string          `json:"channels"`
	Expanded        bool              `json:"expanded"`
	Loading         bool              `json:"loading"`
	SelectedVideo   *domain.FeedItem  `json:"selected_video"`
	Error           string            `json:"error,omitempty"`
	ErrorHint       string            `json:"error_hint,omitempty"`
	Loaded          bool              `json:"loaded"`   // at least one load finished
	Filtered        int               `json:"filtered"` // matching items before truncation
	CanExpand       bool              `json:"can_expand"`
	Sources         int               `json:"sources"`
}

// NewSnapshot derives the snapshot from state and options
func NewSnapshot(s State, opts Options) Snapshot {
	filtered := Filtered(s, opts)
	items := Visible(s, opts)
	channels := s.LastChannels
	if channels == nil {
		channels = []string{}
	}

	res := Snapshot{
		Generation:      s.Generation,
		Items:           items,
		SelectedChannel: s.SelectedChannel,
		Channels:        channels,
		Expanded:        s.Expanded,
		Loading:         s.Loading,
		Error:           s.Err,
		Loaded:          s.LastItems != nil,
		Filtered:        len(filtered),
		CanExpand:       opts.Collapsible && opts.ShowExpand && len(filtered) > VisibleCount(opts, false),
		Sources:         len(opts.Feeds),
	}
	if s.Err != "" {
		res.ErrorHint = AggregationHint
	}
	if s.SelectedVideo != nil {
		v := *s.SelectedVideo
		res.SelectedVideo = &v
	}
	return res
}
