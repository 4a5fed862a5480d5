package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/playmaker-live/playmaker/internal/cache"
	"github.com/playmaker-live/playmaker/internal/handlers"
	"github.com/playmaker-live/playmaker/pkg/apperr"
	"github.com/playmaker-live/playmaker/pkg/models"
)

type mockSummaryFetcher struct {
	payload map[string]interface{}
	err     error
}

func (m *mockSummaryFetcher) FetchGameSummary(ctx context.Context, gameID string) (map[string]interface{}, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.payload, nil
}

func summaryPayload(t *testing.T) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	payload := `{
		"header": {
			"id": "401585601",
			"competitions": [{
				"date": "2026-01-15T00:30Z",
				"status": {"period": 4, "type": {"name": "STATUS_FINAL", "state": "post", "completed": true}},
				"competitors": [
					{"homeAway": "home", "score": "112", "team": {"abbreviation": "LAL", "displayName": "Los Angeles Lakers"}},
					{"homeAway": "away", "score": "109", "team": {"abbreviation": "BOS", "displayName": "Boston Celtics"}}
				]
			}]
		},
		"boxscore": {"players": []}
	}`
	if err := json.Unmarshal([]byte(payload), &m); err != nil {
		t.Fatalf("failed to unmarshal fixture: %v", err)
	}
	return m
}

func gamesRouter(h *handlers.GamesHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/api/games/{id}", h.HandleGetGame)
	return r
}

func TestHandleGetGame_Success(t *testing.T) {
	fetcher := &mockSummaryFetcher{payload: summaryPayload(t)}
	handler := handlers.NewGamesHandler(fetcher, cache.NewGameCache(nil))

	req := httptest.NewRequest("GET", "/api/games/401585601", nil)
	w := httptest.NewRecorder()

	gamesRouter(handler).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var detail models.GameDetail
	if err := json.NewDecoder(w.Body).Decode(&detail); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if detail.Game.GameID != "401585601" {
		t.Errorf("expected game id 401585601, got %s", detail.Game.GameID)
	}
	if detail.Game.HomeTeam.Score != 112 {
		t.Errorf("expected home score 112, got %d", detail.Game.HomeTeam.Score)
	}
}

func TestHandleGetGame_NotFound(t *testing.T) {
	fetcher := &mockSummaryFetcher{err: fmt.Errorf("summary: %w", apperr.ErrNotFound)}
	handler := handlers.NewGamesHandler(fetcher, cache.NewGameCache(nil))

	req := httptest.NewRequest("GET", "/api/games/nonexistent", nil)
	w := httptest.NewRecorder()

	gamesRouter(handler).ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}

func TestHandleGetGame_UpstreamUnavailable(t *testing.T) {
	fetcher := &mockSummaryFetcher{err: fmt.Errorf("summary: %w", apperr.ErrUpstreamUnavailable)}
	handler := handlers.NewGamesHandler(fetcher, cache.NewGameCache(nil))

	req := httptest.NewRequest("GET", "/api/games/401585601", nil)
	w := httptest.NewRecorder()

	gamesRouter(handler).ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", w.Code)
	}

	var errResp models.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&errResp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if errResp.Code != http.StatusInternalServerError {
		t.Errorf("expected error code 500, got %d", errResp.Code)
	}
}
