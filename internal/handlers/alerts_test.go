package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/playmaker-live/playmaker/internal/alerts"
	"github.com/playmaker-live/playmaker/internal/handlers"
)

func TestHandleSubscribe_Success(t *testing.T) {
	manager := alerts.NewManager(&recordingSender{}, nil)
	handler := handlers.NewAlertsHandler(manager)

	req := httptest.NewRequest("POST", "/api/alerts/subscribe",
		strings.NewReader(`{"phone": "+15551234567", "gameId": "401585601"}`))
	w := httptest.NewRecorder()

	handler.HandleSubscribe(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var response map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response["status"] != "subscribed" {
		t.Errorf("unexpected status: %v", response["status"])
	}
	if manager.SubscriberCount() != 1 {
		t.Errorf("expected 1 subscription, got %d", manager.SubscriberCount())
	}
}

func TestHandleSubscribe_MissingPhone(t *testing.T) {
	manager := alerts.NewManager(&recordingSender{}, nil)
	handler := handlers.NewAlertsHandler(manager)

	req := httptest.NewRequest("POST", "/api/alerts/subscribe", strings.NewReader(`{"gameId": "g1"}`))
	w := httptest.NewRecorder()

	handler.HandleSubscribe(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestHandleSubscribe_NotConfigured(t *testing.T) {
	handler := handlers.NewAlertsHandler(nil)

	req := httptest.NewRequest("POST", "/api/alerts/subscribe",
		strings.NewReader(`{"phone": "+15551234567"}`))
	w := httptest.NewRecorder()

	handler.HandleSubscribe(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", w.Code)
	}
}
