package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/playmaker-live/playmaker/pkg/apperr"
	"github.com/playmaker-live/playmaker/pkg/models"
)

// Store defines the relational mirror of provider data. The mirror
// exists for search and display fallback; the live path never writes
// to it.
type Store interface {
	UpsertTeam(ctx context.Context, team models.Team) error
	GetTeams(ctx context.Context) ([]models.Team, error)
	GetTeamByAbbr(ctx context.Context, abbr string) (*models.Team, error)

	UpsertPlayer(ctx context.Context, player models.Player) error
	GetPlayer(ctx context.Context, playerID string) (*models.Player, error)
	SearchPlayers(ctx context.Context, query string, limit int) ([]models.Player, error)

	InsertScheduledGame(ctx context.Context, game models.GameSnapshot) error

	Ping(ctx context.Context) error
	Close() error
}

// Postgres implements Store over lib/pq
type Postgres struct {
	db *sql.DB
}

// New opens a postgres connection with pooling configured and the
// connection verified.
func New(dsn string) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Postgres{db: db}, nil
}

// Migrate creates the mirror tables if they do not exist.
// Idempotent; run at server startup and by the seed tool.
func (p *Postgres) Migrate(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS teams (
			team_id         TEXT PRIMARY KEY,
			abbr            TEXT NOT NULL UNIQUE,
			name            TEXT NOT NULL,
			conference      TEXT,
			division        TEXT,
			primary_color   TEXT,
			secondary_color TEXT,
			logo_url        TEXT,
			wins            INT NOT NULL DEFAULT 0,
			losses          INT NOT NULL DEFAULT 0,
			updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS players (
			player_id    TEXT PRIMARY KEY,
			first_name   TEXT,
			last_name    TEXT,
			full_name    TEXT NOT NULL,
			position     TEXT,
			jersey       TEXT,
			height       TEXT,
			weight       TEXT,
			team_id      TEXT,
			team_abbr    TEXT,
			headshot_url TEXT,
			updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_players_full_name ON players (lower(full_name))`,
		`CREATE TABLE IF NOT EXISTS games (
			game_id    TEXT PRIMARY KEY,
			status     TEXT NOT NULL,
			home_abbr  TEXT NOT NULL,
			away_abbr  TEXT NOT NULL,
			home_score INT NOT NULL DEFAULT 0,
			away_score INT NOT NULL DEFAULT 0,
			start_time TIMESTAMPTZ,
			venue      TEXT,
			broadcast  TEXT,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	}

	for _, stmt := range statements {
		if _, err := p.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// UpsertTeam inserts or refreshes a team row
func (p *Postgres) UpsertTeam(ctx context.Context, team models.Team) error {
	query := `
		INSERT INTO teams (team_id, abbr, name, conference, division,
		                   primary_color, secondary_color, logo_url, wins, losses, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now())
		ON CONFLICT (team_id) DO UPDATE SET
			abbr = EXCLUDED.abbr,
			name = EXCLUDED.name,
			conference = EXCLUDED.conference,
			division = EXCLUDED.division,
			primary_color = EXCLUDED.primary_color,
			secondary_color = EXCLUDED.secondary_color,
			logo_url = EXCLUDED.logo_url,
			wins = EXCLUDED.wins,
			losses = EXCLUDED.losses,
			updated_at = now()
	`

	_, err := p.db.ExecContext(ctx, query,
		team.TeamID, team.Abbr, team.Name, team.Conference, team.Division,
		team.PrimaryColor, team.SecondaryColor, team.LogoURL, team.Wins, team.Losses,
	)
	if err != nil {
		return fmt.Errorf("upsert team %s: %w", team.Abbr, err)
	}
	return nil
}

// GetTeams returns all mirrored teams
func (p *Postgres) GetTeams(ctx context.Context) ([]models.Team, error) {
	query := `
		SELECT team_id, abbr, name, conference, division,
		       primary_color, secondary_color, logo_url, wins, losses
		FROM teams
		ORDER BY name ASC
	`

	rows, err := p.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query teams: %w", err)
	}
	defer rows.Close()

	var teams []models.Team
	for rows.Next() {
		var t models.Team
		if err := rows.Scan(
			&t.TeamID, &t.Abbr, &t.Name, &t.Conference, &t.Division,
			&t.PrimaryColor, &t.SecondaryColor, &t.LogoURL, &t.Wins, &t.Losses,
		); err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		teams = append(teams, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate teams: %w", err)
	}

	return teams, nil
}

// GetTeamByAbbr returns one team by abbreviation
func (p *Postgres) GetTeamByAbbr(ctx context.Context, abbr string) (*models.Team, error) {
	query := `
		SELECT team_id, abbr, name, conference, division,
		       primary_color, secondary_color, logo_url, wins, losses
		FROM teams
		WHERE abbr = $1
	`

	var t models.Team
	err := p.db.QueryRowContext(ctx, query, abbr).Scan(
		&t.TeamID, &t.Abbr, &t.Name, &t.Conference, &t.Division,
		&t.PrimaryColor, &t.SecondaryColor, &t.LogoURL, &t.Wins, &t.Losses,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("team %s: %w", abbr, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query team %s: %w", abbr, err)
	}

	return &t, nil
}

// UpsertPlayer inserts or refreshes a player row
func (p *Postgres) UpsertPlayer(ctx context.Context, player models.Player) error {
	query := `
		INSERT INTO players (player_id, first_name, last_name, full_name, position,
		                     jersey, height, weight, team_id, team_abbr, headshot_url, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now())
		ON CONFLICT (player_id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			full_name = EXCLUDED.full_name,
			position = EXCLUDED.position,
			jersey = EXCLUDED.jersey,
			height = EXCLUDED.height,
			weight = EXCLUDED.weight,
			team_id = EXCLUDED.team_id,
			team_abbr = EXCLUDED.team_abbr,
			headshot_url = EXCLUDED.headshot_url,
			updated_at = now()
	`

	_, err := p.db.ExecContext(ctx, query,
		player.PlayerID, player.FirstName, player.LastName, player.FullName, player.Position,
		player.Jersey, player.Height, player.Weight, player.TeamID, player.TeamAbbr, player.HeadshotURL,
	)
	if err != nil {
		return fmt.Errorf("upsert player %s: %w", player.PlayerID, err)
	}
	return nil
}

// GetPlayer returns one mirrored player by ID
func (p *Postgres) GetPlayer(ctx context.Context, playerID string) (*models.Player, error) {
	query := `
		SELECT player_id, first_name, last_name, full_name, position,
		       jersey, height, weight, team_id, team_abbr, headshot_url
		FROM players
		WHERE player_id = $1
	`

	var pl models.Player
	err := p.db.QueryRowContext(ctx, query, playerID).Scan(
		&pl.PlayerID, &pl.FirstName, &pl.LastName, &pl.FullName, &pl.Position,
		&pl.Jersey, &pl.Height, &pl.Weight, &pl.TeamID, &pl.TeamAbbr, &pl.HeadshotURL,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("player %s: %w", playerID, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query player %s: %w", playerID, err)
	}

	return &pl, nil
}

// SearchPlayers runs a substring prefilter against the mirror; callers
// rank the result with RankPlayers.
func (p *Postgres) SearchPlayers(ctx context.Context, query string, limit int) ([]models.Player, error) {
	if limit <= 0 || limit > 100 {
		limit = 25
	}

	sqlQuery := `
		SELECT player_id, first_name, last_name, full_name, position,
		       jersey, height, weight, team_id, team_abbr, headshot_url
		FROM players
		WHERE full_name ILIKE '%' || $1 || '%'
		ORDER BY full_name ASC
		LIMIT $2
	`

	rows, err := p.db.QueryContext(ctx, sqlQuery, query, limit)
	if err != nil {
		return nil, fmt.Errorf("search players: %w", err)
	}
	defer rows.Close()

	var players []models.Player
	for rows.Next() {
		var pl models.Player
		if err := rows.Scan(
			&pl.PlayerID, &pl.FirstName, &pl.LastName, &pl.FullName, &pl.Position,
			&pl.Jersey, &pl.Height, &pl.Weight, &pl.TeamID, &pl.TeamAbbr, &pl.HeadshotURL,
		); err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		players = append(players, pl)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate players: %w", err)
	}

	return players, nil
}

// InsertScheduledGame writes an illustrative scheduled game.
// Seed/demo path only; the live feed is never persisted.
func (p *Postgres) InsertScheduledGame(ctx context.Context, game models.GameSnapshot) error {
	query := `
		INSERT INTO games (game_id, status, home_abbr, away_abbr,
		                   home_score, away_score, start_time, venue, broadcast, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())
		ON CONFLICT (game_id) DO NOTHING
	`

	_, err := p.db.ExecContext(ctx, query,
		game.GameID, string(game.Status), game.HomeTeam.Abbr, game.AwayTeam.Abbr,
		game.HomeTeam.Score, game.AwayTeam.Score, game.StartTime, game.Venue, game.Broadcast,
	)
	if err != nil {
		return fmt.Errorf("insert game %s: %w", game.GameID, err)
	}
	return nil
}

// Ping verifies database connectivity
func (p *Postgres) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

// Close closes the database connection
func (p *Postgres) Close() error {
	return p.db.Close()
}
