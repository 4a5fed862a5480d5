package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/playmaker-live/playmaker/internal/log"
	"github.com/playmaker-live/playmaker/internal/nba"
	"github.com/playmaker-live/playmaker/internal/store"
	"github.com/playmaker-live/playmaker/pkg/apperr"
	"github.com/playmaker-live/playmaker/pkg/models"
)

// minSearchLength gates search: under two characters nothing is
// queried, upstream or local.
const minSearchLength = 2

// maxRecentGames caps the game log attached to a player profile
const maxRecentGames = 10

// AthleteFetcher is the slice of the provider client the players
// handler needs; the test suite fakes it.
type AthleteFetcher interface {
	FetchAthlete(ctx context.Context, athleteID string) (map[string]interface{}, error)
	FetchAthleteGameLog(ctx context.Context, athleteID string) (map[string]interface{}, error)
	SearchAthletes(ctx context.Context, query string, limit int) (map[string]interface{}, error)
}

// PlayerStore is the slice of the relational mirror the players
// handler needs.
type PlayerStore interface {
	SearchPlayers(ctx context.Context, query string, limit int) ([]models.Player, error)
	GetPlayer(ctx context.Context, playerID string) (*models.Player, error)
}

// PlayersHandler serves player search and profiles: database-first
// for search, provider-first for profiles, each falling back to the
// other side.
type PlayersHandler struct {
	provider AthleteFetcher
	store    PlayerStore
}

// NewPlayersHandler creates a players handler.
// The store may be nil when no database is configured; search then
// goes straight to the provider.
func NewPlayersHandler(provider AthleteFetcher, st PlayerStore) *PlayersHandler {
	return &PlayersHandler{
		provider: provider,
		store:    st,
	}
}

// HandleSearch returns a ranked player list
// GET /api/players/search?q=&limit=
func (h *PlayersHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	limit := parseIntParam(r, "limit", 25)
	if limit > 100 {
		limit = 100
	}

	if len(query) < minSearchLength {
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"players": []models.Player{},
			"count":   0,
		})
		return
	}

	ctx := r.Context()

	players, source := h.search(ctx, query, limit)
	players = store.RankPlayers(players, query)
	if len(players) > limit {
		players = players[:limit]
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"players": players,
		"count":   len(players),
		"source":  source,
	})
}

// search runs the database-first, provider-fallback sequence.
// A database failure degrades to the provider rather than failing
// the request.
func (h *PlayersHandler) search(ctx context.Context, query string, limit int) ([]models.Player, string) {
	if h.store != nil {
		players, err := h.store.SearchPlayers(ctx, query, limit)
		if err != nil {
			log.Warn("player search query failed", zap.Error(err))
		} else if len(players) > 0 {
			return players, "database"
		}
	}

	raw, err := h.provider.SearchAthletes(ctx, query, limit)
	if err != nil {
		log.Warn("provider athlete search failed", zap.Error(err))
		return []models.Player{}, "none"
	}

	return nba.ParseAthleteSearch(raw), "espn"
}

// HandleGetPlayer returns a player profile with season stats and
// recent game logs
// GET /api/players/{id}
func (h *PlayersHandler) HandleGetPlayer(w http.ResponseWriter, r *http.Request) {
	playerID := chi.URLParam(r, "id")
	if playerID == "" {
		respondError(w, http.StatusBadRequest, "player id is required", nil)
		return
	}

	ctx := r.Context()

	profile, err := h.fetchProfile(ctx, playerID)
	if err == nil {
		respondJSON(w, http.StatusOK, profile)
		return
	}

	// Provider miss or outage: fall back to the mirror
	if h.store != nil {
		player, dbErr := h.store.GetPlayer(ctx, playerID)
		if dbErr == nil {
			respondJSON(w, http.StatusOK, models.PlayerProfile{
				Player: *player,
				Source: "database",
			})
			return
		}
		if !errors.Is(dbErr, apperr.ErrNotFound) {
			log.Warn("player mirror lookup failed", zap.String("player_id", playerID), zap.Error(dbErr))
		}
	}

	respondAppError(w, "player not found", err)
}

// fetchProfile retrieves and parses the provider athlete payload,
// then attaches the recent game log. A gamelog failure degrades to a
// profile without recent games rather than failing the request.
func (h *PlayersHandler) fetchProfile(ctx context.Context, playerID string) (*models.PlayerProfile, error) {
	raw, err := h.provider.FetchAthlete(ctx, playerID)
	if err != nil {
		return nil, err
	}

	profile, err := nba.ParseAthlete(raw)
	if err != nil {
		return nil, err
	}

	rawLog, err := h.provider.FetchAthleteGameLog(ctx, playerID)
	if err != nil {
		log.Warn("athlete gamelog fetch failed", zap.String("player_id", playerID), zap.Error(err))
		return profile, nil
	}

	games := nba.ParseGameLog(rawLog)
	if len(games) > maxRecentGames {
		games = games[:maxRecentGames]
	}
	profile.RecentGames = games

	return profile, nil
}
