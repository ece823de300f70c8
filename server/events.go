package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/umputun/tubefeed/pkg/view"
)

const keepAliveInterval = 30 * time.Second

// Broadcaster fans snapshots out to connected event stream clients.
// It is the rendering surface of the view controller. Push never blocks,
// a slow subscriber only ever sees the latest snapshot.
type Broadcaster struct {
	mu   sync.Mutex
	subs map[chan view.Snapshot]struct{}
}

// NewBroadcaster makes an empty broadcaster
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[chan view.Snapshot]struct{})}
}

// Push delivers the snapshot to every subscriber, replacing any undelivered one
func (b *Broadcaster) Push(snap view.Snapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- snap:
			continue
		default:
		}
		// drop the stale pending snapshot and retry once
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}

// Subscribe registers a new subscriber, the returned func unsubscribes it
func (b *Broadcaster) Subscribe() (updates <-chan view.Snapshot, unsubscribe func()) {
	ch := make(chan view.Snapshot, 1)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, ch)
			b.mu.Unlock()
		})
	}
}

// Subscribers returns the number of connected subscribers
func (b *Broadcaster) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// eventsHandler streams snapshots as server-sent events until the client goes away
func (s *Server) eventsHandler(w http.ResponseWriter, r *http.Request) {
	rc := http.NewResponseController(w)
	// the stream outlives the server write timeout
	_ = rc.SetWriteDeadline(time.Time{})

	updates, unsubscribe := s.events.Subscribe()
	defer unsubscribe()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	if err := writeEvent(w, rc, s.view.Snapshot()); err != nil {
		log.Printf("[DEBUG] event stream closed: %v", err)
		return
	}

	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case snap := <-updates:
			if err := writeEvent(w, rc, snap); err != nil {
				log.Printf("[DEBUG] event stream closed: %v", err)
				return
			}
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
				return
			}
			if err := rc.Flush(); err != nil {
				return
			}
		}
	}
}

func writeEvent(w http.ResponseWriter, rc *http.ResponseController, snap view.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if _, err := fmt.Fprintf(w, "event: snapshot\nid: %d\ndata: %s\n\n", snap.Generation, data); err != nil {
		return fmt.Errorf("write event: %w", err)
	}
	if err := rc.Flush(); err != nil {
		return fmt.Errorf("flush event: %w", err)
	}
	return nil
}
