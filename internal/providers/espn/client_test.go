package espn_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/playmaker-live/playmaker/internal/providers/espn"
	"github.com/playmaker-live/playmaker/pkg/apperr"
)

func jsonServer(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(handler))
}

func TestFetchScoreboard_Today(t *testing.T) {
	srv := jsonServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/basketball/nba/scoreboard" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("dates") != "" {
			t.Errorf("today's scoreboard must not carry a dates param, got %q", r.URL.RawQuery)
		}
		if ua := r.Header.Get("User-Agent"); ua == "" {
			t.Error("expected a user agent header")
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"events": []interface{}{}})
	})
	defer srv.Close()

	client := espn.New(srv.URL, srv.URL, time.Second)

	raw, err := client.FetchScoreboard(context.Background(), time.Time{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := raw["events"]; !ok {
		t.Error("expected events key in payload")
	}
}

func TestFetchScoreboard_Dated(t *testing.T) {
	srv := jsonServer(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("dates"); got != "20260115" {
			t.Errorf("expected dates=20260115, got %q", got)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"events": []interface{}{}})
	})
	defer srv.Close()

	client := espn.New(srv.URL, srv.URL, time.Second)

	date := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	if _, err := client.FetchScoreboard(context.Background(), date); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFetch_NotFound(t *testing.T) {
	srv := jsonServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	defer srv.Close()

	client := espn.New(srv.URL, srv.URL, time.Second)

	_, err := client.FetchGameSummary(context.Background(), "nonexistent")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestFetch_ServerError(t *testing.T) {
	srv := jsonServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	})
	defer srv.Close()

	client := espn.New(srv.URL, srv.URL, time.Second)

	_, err := client.FetchTeams(context.Background())
	if !errors.Is(err, apperr.ErrUpstreamUnavailable) {
		t.Errorf("expected ErrUpstreamUnavailable, got %v", err)
	}
}

func TestFetch_NetworkError(t *testing.T) {
	srv := jsonServer(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close() // Refused connection

	client := espn.New(srv.URL, srv.URL, time.Second)

	_, err := client.FetchTeams(context.Background())
	if !errors.Is(err, apperr.ErrUpstreamUnavailable) {
		t.Errorf("expected ErrUpstreamUnavailable, got %v", err)
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("expected the transport cause in the error, got %v", err)
	}
}

func TestSearchAthletes_QueryEncoding(t *testing.T) {
	srv := jsonServer(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("displayName"); got != "lebron james" {
			t.Errorf("expected displayName=lebron james, got %q", got)
		}
		if got := r.URL.Query().Get("limit"); got != "10" {
			t.Errorf("expected default limit 10, got %q", got)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"items": []interface{}{}})
	})
	defer srv.Close()

	client := espn.New(srv.URL, srv.URL, time.Second)

	if _, err := client.SearchAthletes(context.Background(), "lebron james", 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
