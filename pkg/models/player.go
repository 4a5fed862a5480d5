package models

import (
	"fmt"
	"time"
)

// Player is a provider-sourced player record, mirrored in postgres
// for fast substring search.
type Player struct {
	PlayerID    string `json:"player_id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	FullName    string `json:"full_name"`
	Position    string `json:"position,omitempty"`
	Jersey      string `json:"jersey,omitempty"`
	Height      string `json:"height,omitempty"`
	Weight      string `json:"weight,omitempty"`
	TeamID      string `json:"team_id,omitempty"`
	TeamAbbr    string `json:"team_abbr,omitempty"`
	HeadshotURL string `json:"headshot_url,omitempty"`
}

// Shooting is a made/attempted pair parsed from the provider's
// "made-attempted" strings.
type Shooting struct {
	Made      int `json:"made"`
	Attempted int `json:"attempted"`
}

// String renders the provider's display form, e.g. "5-10".
func (s Shooting) String() string {
	return fmt.Sprintf("%d-%d", s.Made, s.Attempted)
}

// PlayerGameStats are per-game counting stats and shooting splits
type PlayerGameStats struct {
	Minutes       string   `json:"minutes,omitempty"` // "33:15" as displayed
	Points        int      `json:"points"`
	Rebounds      int      `json:"rebounds"`
	Assists       int      `json:"assists"`
	Steals        int      `json:"steals"`
	Blocks        int      `json:"blocks"`
	Turnovers     int      `json:"turnovers"`
	FieldGoals    Shooting `json:"field_goals"`
	ThreePointers Shooting `json:"three_pointers"`
	FreeThrows    Shooting `json:"free_throws"`
	PlusMinus     int      `json:"plus_minus"`
}

// PlayerLine is one player's box score row within a game
type PlayerLine struct {
	Player   Player          `json:"player"`
	TeamAbbr string          `json:"team_abbr"`
	Starter  bool            `json:"starter,omitempty"`
	Played   bool            `json:"played"`
	Stats    PlayerGameStats `json:"stats"`
}

// GameLogEntry is one game from a player's recent game log
type GameLogEntry struct {
	GameID   string          `json:"game_id"`
	GameDate time.Time       `json:"game_date,omitempty"`
	Opponent string          `json:"opponent,omitempty"` // opponent abbreviation
	HomeAway string          `json:"home_away,omitempty"` // "vs" or "@"
	Result   string          `json:"result,omitempty"` // e.g. "W 112-104"
	Stats    PlayerGameStats `json:"stats"`
}

// PlayerProfile is the full player view served by /api/players/{id}
type PlayerProfile struct {
	Player      Player            `json:"player"`
	SeasonStats map[string]string `json:"season_stats,omitempty"` // label -> display value
	RecentGames []GameLogEntry    `json:"recent_games,omitempty"`
	Source      string            `json:"source"` // "espn" or "database"
}
