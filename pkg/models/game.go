package models

import "time"

// GameStatus represents the current state of a game
type GameStatus string

const (
	StatusScheduled GameStatus = "scheduled"
	StatusLive      GameStatus = "live"
	StatusHalftime  GameStatus = "halftime"
	StatusFinal     GameStatus = "final"
	StatusPostponed GameStatus = "postponed"
)

// TeamSide is one side of a game snapshot
type TeamSide struct {
	TeamID  string `json:"team_id"`
	Abbr    string `json:"abbr"`    // "LAL"
	Name    string `json:"name"`    // Full team name
	Score   int    `json:"score"`
	Record  string `json:"record,omitempty"`  // "42-30"
	LogoURL string `json:"logo_url,omitempty"`
}

// GameSnapshot is one game's state as of a single fetch cycle.
// Superseded by the next cycle, never persisted.
type GameSnapshot struct {
	GameID      string     `json:"game_id"`
	Status      GameStatus `json:"status"`
	HomeTeam    TeamSide   `json:"home_team"`
	AwayTeam    TeamSide   `json:"away_team"`
	Period      int        `json:"period"`
	PeriodLabel string     `json:"period_label,omitempty"` // "Q4", "OT1"
	Clock       string     `json:"clock,omitempty"`        // "4:37"
	StartTime   time.Time  `json:"start_time"`
	Venue       string     `json:"venue,omitempty"`
	Broadcast   string     `json:"broadcast,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// GameDiff records which observable fields changed for one game
// between two consecutive snapshots.
type GameDiff struct {
	GameID        string `json:"game_id"`
	ScoreChanged  bool   `json:"score_changed"`
	StatusChanged bool   `json:"status_changed"`
	PeriodChanged bool   `json:"period_changed"`
	Added         bool   `json:"added,omitempty"`   // Present only in current snapshot
	Removed       bool   `json:"removed,omitempty"` // Present only in previous snapshot
}

// Changed reports whether any flag on the diff is set.
func (d GameDiff) Changed() bool {
	return d.ScoreChanged || d.StatusChanged || d.PeriodChanged || d.Added || d.Removed
}

// TeamTotals holds computed team statistics for one side of a game
type TeamTotals struct {
	Points        int      `json:"points"`
	Rebounds      int      `json:"rebounds"`
	Assists       int      `json:"assists"`
	Steals        int      `json:"steals"`
	Blocks        int      `json:"blocks"`
	Turnovers     int      `json:"turnovers"`
	FieldGoals    Shooting `json:"field_goals"`
	ThreePointers Shooting `json:"three_pointers"`
	FreeThrows    Shooting `json:"free_throws"`
}

// GameDetail is the full game view served by /api/games/{id}
type GameDetail struct {
	Game        GameSnapshot `json:"game"`
	HomeTotals  TeamTotals   `json:"home_totals"`
	AwayTotals  TeamTotals   `json:"away_totals"`
	HomePlayers []PlayerLine `json:"home_players"`
	AwayPlayers []PlayerLine `json:"away_players"`
}
