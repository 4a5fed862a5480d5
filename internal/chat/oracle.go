package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/playmaker-live/playmaker/internal/config"
	"github.com/playmaker-live/playmaker/internal/live"
	"github.com/playmaker-live/playmaker/pkg/apperr"
)

// Oracle answers natural-language questions about the current slate.
// The webhook layer only sees this interface, never the vendor API.
type Oracle interface {
	Ask(ctx context.Context, query string) (string, error)
	Enabled() bool
}

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

// GeminiOracle answers questions via the Gemini generateContent API,
// grounding each answer in the current live scoreboard.
type GeminiOracle struct {
	cfg        config.Gemini
	cache      *live.Cache
	httpClient *http.Client
	baseURL    string
}

// NewGeminiOracle creates a Gemini-backed oracle. With no API key the
// oracle reports disabled and every query fails with ErrNotConfigured.
func NewGeminiOracle(cfg config.Gemini, cache *live.Cache) *GeminiOracle {
	return &GeminiOracle{
		cfg:   cfg,
		cache: cache,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: geminiBaseURL,
	}
}

// Enabled reports whether the Gemini API key is present
func (o *GeminiOracle) Enabled() bool {
	return o.cfg.APIKey != ""
}

// Ask sends the query with scoreboard context and returns the answer text
func (o *GeminiOracle) Ask(ctx context.Context, query string) (string, error) {
	if !o.Enabled() {
		return "", fmt.Errorf("chat: %w", apperr.ErrNotConfigured)
	}
	if strings.TrimSpace(query) == "" {
		return "", fmt.Errorf("query required: %w", apperr.ErrValidation)
	}

	payload := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]string{
					{"text": o.buildPrompt(ctx, query)},
				},
			},
		},
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat payload: %w", err)
	}

	u := fmt.Sprintf("%s/%s:generateContent?key=%s", o.baseURL, o.cfg.Model, o.cfg.APIKey)

	req, err := http.NewRequestWithContext(ctx, "POST", u, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request: %v: %w", err, apperr.ErrUpstreamUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini returned status %d: %w", resp.StatusCode, apperr.ErrUpstreamUnavailable)
	}

	var result struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decoding gemini response: %w", err)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no candidates: %w", apperr.ErrUpstreamUnavailable)
	}

	return result.Candidates[0].Content.Parts[0].Text, nil
}

// buildPrompt prefixes the query with today's scoreboard so answers
// reflect live state. A scoreboard fetch failure degrades to the bare
// question rather than failing the chat.
func (o *GeminiOracle) buildPrompt(ctx context.Context, query string) string {
	var sb strings.Builder
	sb.WriteString("You are Playmaker, an NBA assistant. Answer concisely using the scoreboard below when relevant.\n\n")

	if o.cache != nil {
		if snap, err := o.cache.Get(ctx, live.TodayKey); err == nil {
			sb.WriteString("Today's games:\n")
			for _, g := range snap.Games {
				fmt.Fprintf(&sb, "- %s %d @ %s %d (%s %s %s)\n",
					g.AwayTeam.Abbr, g.AwayTeam.Score,
					g.HomeTeam.Abbr, g.HomeTeam.Score,
					g.Status, g.PeriodLabel, g.Clock)
			}
			sb.WriteString("\n")
		}
	}

	sb.WriteString("Question: ")
	sb.WriteString(query)
	return sb.String()
}
