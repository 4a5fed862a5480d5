package chat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/playmaker-live/playmaker/internal/config"
	"github.com/playmaker-live/playmaker/internal/live"
	"github.com/playmaker-live/playmaker/pkg/apperr"
	"github.com/playmaker-live/playmaker/pkg/models"
)

func geminiResponse(text string) map[string]interface{} {
	return map[string]interface{}{
		"candidates": []map[string]interface{}{
			{"content": map[string]interface{}{
				"parts": []map[string]string{{"text": text}},
			}},
		},
	}
}

func scoreboardCache(games []models.GameSnapshot) *live.Cache {
	return live.NewCache(func(ctx context.Context, dateKey string) ([]models.GameSnapshot, error) {
		return games, nil
	}, time.Minute)
}

func TestGeminiOracle_Enabled(t *testing.T) {
	if NewGeminiOracle(config.Gemini{}, nil).Enabled() {
		t.Error("expected disabled without API key")
	}
	if !NewGeminiOracle(config.Gemini{APIKey: "k", Model: "gemini-1.5-flash"}, nil).Enabled() {
		t.Error("expected enabled with API key")
	}
}

func TestGeminiOracle_AskIncludesScoreboard(t *testing.T) {
	var prompt string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		prompt = payload.Contents[0].Parts[0].Text

		json.NewEncoder(w).Encode(geminiResponse("The Lakers lead 80 to 78."))
	}))
	defer srv.Close()

	games := []models.GameSnapshot{{
		GameID:      "g1",
		Status:      models.StatusLive,
		PeriodLabel: "Q3",
		Clock:       "4:37",
		HomeTeam:    models.TeamSide{Abbr: "LAL", Score: 80},
		AwayTeam:    models.TeamSide{Abbr: "BOS", Score: 78},
	}}

	oracle := NewGeminiOracle(config.Gemini{APIKey: "k", Model: "gemini-1.5-flash"}, scoreboardCache(games))
	oracle.baseURL = srv.URL

	answer, err := oracle.Ask(context.Background(), "who is winning")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer != "The Lakers lead 80 to 78." {
		t.Errorf("unexpected answer: %q", answer)
	}

	if !strings.Contains(prompt, "BOS 78 @ LAL 80") {
		t.Errorf("expected scoreboard in prompt, got %q", prompt)
	}
	if !strings.Contains(prompt, "Question: who is winning") {
		t.Errorf("expected question in prompt, got %q", prompt)
	}
}

func TestGeminiOracle_EmptyQuery(t *testing.T) {
	oracle := NewGeminiOracle(config.Gemini{APIKey: "k"}, nil)

	_, err := oracle.Ask(context.Background(), "  ")
	if !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestGeminiOracle_NotConfigured(t *testing.T) {
	oracle := NewGeminiOracle(config.Gemini{}, nil)

	_, err := oracle.Ask(context.Background(), "who is winning")
	if !errors.Is(err, apperr.ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}
}

func TestGeminiOracle_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	oracle := NewGeminiOracle(config.Gemini{APIKey: "k", Model: "gemini-1.5-flash"}, nil)
	oracle.baseURL = srv.URL

	_, err := oracle.Ask(context.Background(), "who is winning")
	if !errors.Is(err, apperr.ErrUpstreamUnavailable) {
		t.Errorf("expected upstream error, got %v", err)
	}
}

func TestGeminiOracle_NoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"candidates": []interface{}{}})
	}))
	defer srv.Close()

	oracle := NewGeminiOracle(config.Gemini{APIKey: "k", Model: "gemini-1.5-flash"}, nil)
	oracle.baseURL = srv.URL

	_, err := oracle.Ask(context.Background(), "who is winning")
	if !errors.Is(err, apperr.ErrUpstreamUnavailable) {
		t.Errorf("expected upstream error for empty candidates, got %v", err)
	}
}
