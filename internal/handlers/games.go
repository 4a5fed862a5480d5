package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/playmaker-live/playmaker/internal/cache"
	"github.com/playmaker-live/playmaker/internal/log"
	"github.com/playmaker-live/playmaker/internal/nba"
)

// GameSummaryFetcher is the slice of the provider client the games
// handler needs; the test suite fakes it.
type GameSummaryFetcher interface {
	FetchGameSummary(ctx context.Context, gameID string) (map[string]interface{}, error)
}

// GamesHandler serves full game detail views
type GamesHandler struct {
	provider  GameSummaryFetcher
	gameCache *cache.GameCache
}

// NewGamesHandler creates a games handler
func NewGamesHandler(provider GameSummaryFetcher, gameCache *cache.GameCache) *GamesHandler {
	return &GamesHandler{
		provider:  provider,
		gameCache: gameCache,
	}
}

// HandleGetGame returns full game detail with computed team totals
// GET /api/games/{id}
func (h *GamesHandler) HandleGetGame(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "id")
	if gameID == "" {
		respondError(w, http.StatusBadRequest, "game id is required", nil)
		return
	}

	ctx := r.Context()

	// Redis first so concurrent detail requests share one summary fetch
	if cached, err := h.gameCache.ReadGameDetail(ctx, gameID); err != nil {
		log.Warn("game cache read failed", zap.String("game_id", gameID), zap.Error(err))
	} else if cached != nil {
		respondJSON(w, http.StatusOK, cached)
		return
	}

	raw, err := h.provider.FetchGameSummary(ctx, gameID)
	if err != nil {
		respondAppError(w, "failed to retrieve game", err)
		return
	}

	detail, err := nba.ParseGameDetail(raw)
	if err != nil {
		respondAppError(w, "game not found", err)
		return
	}

	if err := h.gameCache.WriteGameDetail(ctx, detail); err != nil {
		log.Warn("game cache write failed", zap.String("game_id", gameID), zap.Error(err))
	}

	respondJSON(w, http.StatusOK, detail)
}
