package view

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/tubefeed/pkg/domain"
)

//go:generate moq -out mocks/surface.go -pkg mocks -skip-ensure -fmt goimports . Surface

// AggregationHint is shown next to a load failure, cross-origin blocking is the usual cause
const AggregationHint = "try proxy: allorigins if the feed host blocks requests"

// AggregationError is returned when a load fails as a whole
type AggregationError struct {
	Err error
}

func (e *AggregationError) Error() string {
	return fmt.Sprintf("load failed: %v", e.Err)
}

func (e *AggregationError) Unwrap() error { return e.Err }

// Hint returns the user-facing suggestion for the failure
func (e *AggregationError) Hint() string { return AggregationHint }

// Surface receives a snapshot after every state change
type Surface interface {
	Push(snap Snapshot)
}

// Controller owns the live view state and drives loads
type Controller struct {
	source  Source
	surface Surface

	mu    sync.Mutex
	opts  Options
	state State
}

// NewController makes a controller, surface may be nil
func NewController(source Source, surface Surface, opts Options) *Controller {
	return &Controller{source: source, surface: surface, opts: opts, state: NewState()}
}

// Load runs a load in a new generation. The result is applied only if no other
// load or reset started in between.
func (c *Controller) Load(ctx context.Context, force, clearCache bool) error {
	c.mu.Lock()
	c.state = Reduce(c.state, Refresh{})
	gen, opts := c.state.Generation, c.opts
	snap := NewSnapshot(c.state, c.opts)
	c.mu.Unlock()
	c.push(snap)

	items, err := c.source.Load(ctx, LoadRequest{
		Feeds:           opts.Feeds,
		Proxy:           opts.Proxy,
		RefreshInterval: opts.RefreshInterval,
		Force:           force,
		ClearCache:      clearCache,
	})
	if err != nil && ctx.Err() != nil {
		lgr.Printf("[WARN] load canceled, generation %d: %v", gen, ctx.Err())
		c.apply(LoadCanceled{Generation: gen})
		return fmt.Errorf("load canceled: %w", ctx.Err())
	}
	if err != nil {
		aggErr := &AggregationError{Err: err}
		lgr.Printf("[ERROR] %v", aggErr)
		c.apply(LoadFailed{Generation: gen, Err: aggErr.Error()})
		return aggErr
	}

	lgr.Printf("[DEBUG] loaded %d items, generation %d", len(items), gen)
	c.apply(Loaded{Generation: gen, Items: items, Channels: Channels(items, opts.Locale)})
	return nil
}

// Dispatch applies an interaction event and returns the resulting snapshot.
// Load lifecycle events are owned by Load and Reconfigure and ignored here.
func (c *Controller) Dispatch(ev Event) Snapshot {
	switch ev.(type) {
	case Refresh, Loaded, LoadFailed, LoadCanceled, Reset:
		return c.Snapshot()
	}
	return c.apply(ev)
}

// Snapshot returns the current snapshot
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return NewSnapshot(c.state, c.opts)
}

// Find returns the loaded item with the given link
func (c *Controller) Find(link string) (domain.FeedItem, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, item := range c.state.LastItems {
		if item.Link == link {
			return item, true
		}
	}
	return domain.FeedItem{}, false
}

// Items returns a copy of all loaded items, newest first, ignoring filters
func (c *Controller) Items() []domain.FeedItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.state.LastItems)
}

// Reconfigure replaces options and resets the state, in-flight loads become stale
func (c *Controller) Reconfigure(opts Options) {
	c.mu.Lock()
	c.opts = opts
	c.state = Reduce(c.state, Reset{})
	snap := NewSnapshot(c.state, c.opts)
	c.mu.Unlock()
	c.push(snap)
}

func (c *Controller) apply(ev Event) Snapshot {
	c.mu.Lock()
	c.state = Reduce(c.state, ev)
	snap := NewSnapshot(c.state, c.opts)
	c.mu.Unlock()
	c.push(snap)
	return snap
}

func (c *Controller) push(snap Snapshot) {
	if c.surface != nil {
		c.surface.Push(snap)
	}
}
