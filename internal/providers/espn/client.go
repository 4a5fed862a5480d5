package espn

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/playmaker-live/playmaker/pkg/apperr"
)

const (
	// DefaultBaseURL serves scoreboards, game summaries, and rosters
	DefaultBaseURL = "https://site.api.espn.com/apis/site/v2/sports"

	// DefaultWebBaseURL serves athlete profiles and athlete search
	DefaultWebBaseURL = "https://site.web.api.espn.com/apis/common/v3/sports"

	sportPath = "basketball/nba"
)

// Client handles ESPN API requests for NBA data
type Client struct {
	baseURL    string
	webBaseURL string
	httpClient *http.Client
	userAgent  string
}

// New creates a new ESPN API client with a bounded request timeout
func New(baseURL, webBaseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if webBaseURL == "" {
		webBaseURL = DefaultWebBaseURL
	}
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		webBaseURL: webBaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		userAgent: "Mozilla/5.0 (compatible; PlaymakerBot/1.0)",
	}
}

// FetchScoreboard fetches games for a date.
// If date is zero, fetches whatever ESPN considers "today".
func (c *Client) FetchScoreboard(ctx context.Context, date time.Time) (map[string]interface{}, error) {
	var u string
	if date.IsZero() {
		u = fmt.Sprintf("%s/%s/scoreboard", c.baseURL, sportPath)
	} else {
		u = fmt.Sprintf("%s/%s/scoreboard?dates=%s", c.baseURL, sportPath, date.Format("20060102"))
	}

	return c.fetch(ctx, u)
}

// FetchGameSummary fetches detailed game summary with box scores
func (c *Client) FetchGameSummary(ctx context.Context, gameID string) (map[string]interface{}, error) {
	u := fmt.Sprintf("%s/%s/summary?event=%s", c.baseURL, sportPath, url.QueryEscape(gameID))

	return c.fetch(ctx, u)
}

// FetchTeams fetches the league's team list with records
func (c *Client) FetchTeams(ctx context.Context) (map[string]interface{}, error) {
	u := fmt.Sprintf("%s/%s/teams", c.baseURL, sportPath)

	return c.fetch(ctx, u)
}

// FetchTeamRoster fetches a team's current roster
func (c *Client) FetchTeamRoster(ctx context.Context, teamID string) (map[string]interface{}, error) {
	u := fmt.Sprintf("%s/%s/teams/%s/roster", c.baseURL, sportPath, url.PathEscape(teamID))

	return c.fetch(ctx, u)
}

// FetchAthlete fetches a player profile with season statistics
func (c *Client) FetchAthlete(ctx context.Context, athleteID string) (map[string]interface{}, error) {
	u := fmt.Sprintf("%s/%s/athletes/%s", c.webBaseURL, sportPath, url.PathEscape(athleteID))

	return c.fetch(ctx, u)
}

// FetchAthleteGameLog fetches a player's recent game log
func (c *Client) FetchAthleteGameLog(ctx context.Context, athleteID string) (map[string]interface{}, error) {
	u := fmt.Sprintf("%s/%s/athletes/%s/gamelog", c.webBaseURL, sportPath, url.PathEscape(athleteID))

	return c.fetch(ctx, u)
}

// SearchAthletes queries ESPN's athlete search
func (c *Client) SearchAthletes(ctx context.Context, query string, limit int) (map[string]interface{}, error) {
	if limit <= 0 {
		limit = 10
	}
	u := fmt.Sprintf("%s/%s/athletes?displayName=%s&limit=%d", c.webBaseURL, sportPath, url.QueryEscape(query), limit)

	return c.fetch(ctx, u)
}

// fetch makes an HTTP GET request and returns parsed JSON.
// Single attempt per logical request; errors surface to the caller.
func (c *Client) fetch(ctx context.Context, u string) (map[string]interface{}, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request: %v: %w", err, apperr.ErrUpstreamUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("ESPN API: %w", apperr.ErrNotFound)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("ESPN API error: status=%d, body=%s: %w", resp.StatusCode, string(body), apperr.ErrUpstreamUnavailable)
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return result, nil
}
