package jobs

import (
	"context"
	"fmt"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"

	"github.com/playmaker-live/playmaker/internal/log"
	"github.com/playmaker-live/playmaker/internal/nba"
	"github.com/playmaker-live/playmaker/internal/providers/espn"
	"github.com/playmaker-live/playmaker/internal/store"
	"github.com/playmaker-live/playmaker/pkg/models"
)

// Refresher keeps the relational mirror in step with the upstream
// provider: team records daily, rosters alongside them. The live path
// never touches the mirror, so a slow refresh cannot affect it.
type Refresher struct {
	s      gocron.Scheduler
	client *espn.Client
	store  store.Store
}

// NewRefresher creates the refresh scheduler
func NewRefresher(client *espn.Client, st store.Store) (*Refresher, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Refresher{
		s:      s,
		client: client,
		store:  st,
	}, nil
}

// Start schedules the daily refresh at 09:00 UTC, before the first US
// game tips off.
func (r *Refresher) Start() error {
	_, err := r.s.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(9, 0, 0))),
		gocron.NewTask(r.RefreshAll),
	)
	if err != nil {
		return fmt.Errorf("failed to create refresh job: %w", err)
	}

	r.s.Start()
	return nil
}

// Stop shuts the scheduler down
func (r *Refresher) Stop() error {
	return r.s.Shutdown()
}

// RefreshAll refreshes team records and rosters. Also runnable by an
// operator through the seed tool.
func (r *Refresher) RefreshAll() {
	ctx := context.Background()

	teams, err := r.RefreshTeams(ctx)
	if err != nil {
		log.Error("team refresh failed", zap.Error(err))
		return
	}

	players := 0
	for _, team := range teams {
		n, err := r.RefreshRoster(ctx, team)
		if err != nil {
			log.Warn("roster refresh failed", zap.String("abbr", team.Abbr), zap.Error(err))
			continue
		}
		players += n
	}

	log.Info("mirror refresh complete", zap.Int("teams", len(teams)), zap.Int("players", players))
}

// RefreshTeams upserts the league team list and returns the teams
func (r *Refresher) RefreshTeams(ctx context.Context) ([]models.Team, error) {
	raw, err := r.client.FetchTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching teams: %w", err)
	}

	teams := nba.ParseTeams(raw)
	upserted := make([]models.Team, 0, len(teams))
	for _, t := range teams {
		if err := r.store.UpsertTeam(ctx, t); err != nil {
			log.Warn("team upsert failed", zap.String("abbr", t.Abbr), zap.Error(err))
			continue
		}
		upserted = append(upserted, t)
	}

	return upserted, nil
}

// RefreshRoster upserts one team's roster and returns the player count
func (r *Refresher) RefreshRoster(ctx context.Context, team models.Team) (int, error) {
	raw, err := r.client.FetchTeamRoster(ctx, team.TeamID)
	if err != nil {
		return 0, fmt.Errorf("fetching roster: %w", err)
	}

	players := nba.ParseRoster(raw, team.TeamID, team.Abbr)
	n := 0
	for _, p := range players {
		if err := r.store.UpsertPlayer(ctx, p); err != nil {
			log.Warn("player upsert failed", zap.String("player_id", p.PlayerID), zap.Error(err))
			continue
		}
		n++
	}

	return n, nil
}
