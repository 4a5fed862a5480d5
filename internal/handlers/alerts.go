package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/playmaker-live/playmaker/internal/alerts"
	"github.com/playmaker-live/playmaker/internal/log"
)

// AlertsHandler manages game alert subscriptions
type AlertsHandler struct {
	manager *alerts.Manager
}

func NewAlertsHandler(manager *alerts.Manager) *AlertsHandler {
	return &AlertsHandler{manager: manager}
}

type subscribeRequest struct {
	Phone  string `json:"phone"`
	GameID string `json:"gameId"` // empty subscribes to all games
}

// HandleSubscribe registers a phone number for score and status alerts
// POST /api/alerts/subscribe
func (h *AlertsHandler) HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	if h.manager == nil {
		respondError(w, http.StatusInternalServerError, "alerts are not configured", nil)
		return
	}

	var req subscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.manager.Subscribe(req.Phone, req.GameID); err != nil {
		respondAppError(w, "failed to subscribe", err)
		return
	}

	log.Info("alert subscription added",
		zap.String("game_id", req.GameID),
		zap.Int("subscribers", h.manager.SubscriberCount()))

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "subscribed",
		"subscribers": h.manager.SubscriberCount(),
	})
}
