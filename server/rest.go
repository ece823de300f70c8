package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/umputun/tubefeed/pkg/player"
	"github.com/umputun/tubefeed/pkg/view"
)

// refreshRequest is the optional body of the refresh endpoint, missing fields force a reload
type refreshRequest struct {
	Force      *bool `json:"force"`
	ClearCache bool  `json:"clear_cache"`
}

type channelRequest struct {
	Channel string `json:"channel"`
}

type selectRequest struct {
	Link string `json:"link"`
}

// selectResponse tells the client how to present the activated item
type selectResponse struct {
	Action   player.Action `json:"action"`
	Snapshot view.Snapshot `json:"snapshot"`
}

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	snap := s.view.Snapshot()
	status := map[string]any{
		"status":     "ok",
		"version":    s.version,
		"time":       time.Now().UTC(),
		"loaded":     snap.Loaded,
		"loading":    snap.Loading,
		"generation": snap.Generation,
		"sources":    snap.Sources,
	}
	if s.events != nil {
		status["subscribers"] = s.events.Subscribers()
	}
	RenderJSON(w, r, http.StatusOK, status)
}

// snapshotHandler returns the current view snapshot
func (s *Server) snapshotHandler(w http.ResponseWriter, r *http.Request) {
	RenderJSON(w, r, http.StatusOK, s.view.Snapshot())
}

// refreshHandler runs a load and returns the resulting snapshot.
// A failed load responds with 502 and the error hint.
func (s *Server) refreshHandler(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeOptional(r, &req); err != nil {
		RenderError(w, r, fmt.Errorf("invalid request: %w", err), http.StatusBadRequest)
		return
	}
	force := req.Force == nil || *req.Force

	if err := s.view.Load(context.WithoutCancel(r.Context()), force, req.ClearCache); err != nil {
		resp := map[string]string{"error": err.Error()}
		var aggErr *view.AggregationError
		if errors.As(err, &aggErr) {
			resp["hint"] = aggErr.Hint()
		}
		RenderJSON(w, r, http.StatusBadGateway, resp)
		return
	}
	RenderJSON(w, r, http.StatusOK, s.view.Snapshot())
}

// channelHandler selects a channel, empty or unknown name falls back to all channels on next load
func (s *Server) channelHandler(w http.ResponseWriter, r *http.Request) {
	var req channelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RenderError(w, r, fmt.Errorf("invalid request: %w", err), http.StatusBadRequest)
		return
	}
	RenderJSON(w, r, http.StatusOK, s.view.Dispatch(view.SelectChannel{Name: req.Channel}))
}

func (s *Server) expandHandler(w http.ResponseWriter, r *http.Request) {
	RenderJSON(w, r, http.StatusOK, s.view.Dispatch(view.ToggleExpand{}))
}

func (s *Server) backHandler(w http.ResponseWriter, r *http.Request) {
	RenderJSON(w, r, http.StatusOK, s.view.Dispatch(view.CloseVideo{}))
}

// selectHandler decides the player action for a loaded item. Only inline playback changes the view.
func (s *Server) selectHandler(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RenderError(w, r, fmt.Errorf("invalid request: %w", err), http.StatusBadRequest)
		return
	}
	if req.Link == "" {
		RenderError(w, r, errors.New("link is required"), http.StatusBadRequest)
		return
	}

	item, ok := s.view.Find(req.Link)
	if !ok {
		RenderError(w, r, fmt.Errorf("video %q not found", req.Link), http.StatusNotFound)
		return
	}

	action := player.Decide(item, s.playerConfig(r))
	snap := s.view.Snapshot()
	if action.Kind == player.ActionInline {
		snap = s.view.Dispatch(view.SelectVideo{Item: item})
	}
	log.Printf("[DEBUG] select %s, action %s", item.Link, action.Kind)
	RenderJSON(w, r, http.StatusOK, selectResponse{Action: action, Snapshot: snap})
}

// decodeOptional decodes a json body if there is one
func decodeOptional(r *http.Request, v any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
