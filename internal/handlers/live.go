package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/playmaker-live/playmaker/internal/live"
	"github.com/playmaker-live/playmaker/internal/log"
	"github.com/playmaker-live/playmaker/pkg/models"
)

// LiveHandler serves the live scoreboard and its SSE stream
type LiveHandler struct {
	cache             *live.Cache
	broadcaster       *live.Broadcaster
	heartbeatInterval time.Duration
}

// NewLiveHandler creates a live-data handler
func NewLiveHandler(cache *live.Cache, broadcaster *live.Broadcaster, heartbeatInterval time.Duration) *LiveHandler {
	if heartbeatInterval <= 0 {
		heartbeatInterval = 10 * time.Second
	}
	return &LiveHandler{
		cache:             cache,
		broadcaster:       broadcaster,
		heartbeatInterval: heartbeatInterval,
	}
}

// HandleScoreboard returns today's scoreboard snapshot
// GET /api/live/nba
func (h *LiveHandler) HandleScoreboard(w http.ResponseWriter, r *http.Request) {
	snap, err := h.cache.Get(r.Context(), live.TodayKey)
	if err != nil {
		respondJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"games": []models.GameSnapshot{},
			"error": "live data unavailable",
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"games":       snap.Games,
		"lastUpdated": snap.FetchedAt.UTC().Format(time.RFC3339),
		"source":      "espn",
		"stale":       snap.Stale,
		"liveCount":   snap.LiveCount(),
	})
}

// HandleStream serves the live update stream over server-sent events
// GET /api/live/nba/stream
//
// A connected event goes out immediately, update events arrive per
// broadcast tick, and comment-only heartbeats keep intermediaries from
// reaping idle connections. Everything stops when the client goes away.
func (h *LiveHandler) HandleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		respondError(w, http.StatusInternalServerError, "streaming unsupported", nil)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	sub := h.broadcaster.Subscribe()
	defer h.broadcaster.Unsubscribe(sub)

	writeSSE(w, models.StreamEvent{
		Type:      models.EventConnected,
		Timestamp: time.Now().UTC(),
	})
	flusher.Flush()

	heartbeat := time.NewTicker(h.heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return

		case ev, ok := <-sub.C:
			if !ok {
				// Broadcaster dropped us (slow consumer or shutdown)
				return
			}
			if err := writeSSE(w, ev); err != nil {
				return
			}
			flusher.Flush()

		case <-heartbeat.C:
			if _, err := fmt.Fprint(w, ": heartbeat\n\n"); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

// writeSSE writes one event in SSE framing with the type carried in
// the JSON payload.
func writeSSE(w http.ResponseWriter, ev models.StreamEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Error("error encoding stream event", zap.Error(err))
		return err
	}

	_, err = fmt.Fprintf(w, "data: %s\n\n", data)
	return err
}
