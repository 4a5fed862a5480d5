// Command seed populates the relational mirror: team records and
// rosters from the upstream provider, optionally a handful of demo
// games for local frontend work without live data.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/playmaker-live/playmaker/internal/config"
	"github.com/playmaker-live/playmaker/internal/jobs"
	"github.com/playmaker-live/playmaker/internal/log"
	"github.com/playmaker-live/playmaker/internal/nba"
	"github.com/playmaker-live/playmaker/internal/providers/espn"
	"github.com/playmaker-live/playmaker/internal/store"
	"github.com/playmaker-live/playmaker/pkg/models"
)

func main() {
	var (
		teamsOnly = flag.Bool("teams-only", false, "seed team records without rosters")
		static    = flag.Bool("static", false, "seed the static team list without calling upstream")
		demo      = flag.Bool("demo", false, "insert demo scheduled games")
	)
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.New()
	if err != nil {
		os.Stderr.WriteString("failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := log.Init(cfg.Development); err != nil {
		os.Stderr.WriteString("failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer log.Sync()

	if cfg.Postgres.DSN == "" {
		log.Fatal("DATABASE_URL is required for seeding")
	}

	st, err := store.New(cfg.Postgres.DSN)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer st.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	if err := st.Migrate(ctx); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	switch {
	case *static:
		seedStatic(ctx, st)
	case *teamsOnly:
		seedTeams(ctx, cfg, st)
	default:
		seedAll(cfg, st)
	}

	if *demo {
		seedDemoGames(ctx, st)
	}

	log.Info("seed complete")
}

// seedStatic loads the built-in team list. Useful offline; records and
// logos stay empty until a full refresh runs.
func seedStatic(ctx context.Context, st store.Store) {
	n := 0
	for _, name := range nba.AllTeams() {
		abbr := nba.TeamAbbreviation(name)
		team := models.Team{
			TeamID: abbr,
			Abbr:   abbr,
			Name:   name,
		}
		if conf, div, ok := nba.TeamDivision(abbr); ok {
			team.Conference = conf
			team.Division = div
		}
		if err := st.UpsertTeam(ctx, team); err != nil {
			log.Warn("team upsert failed", zap.String("abbr", abbr), zap.Error(err))
			continue
		}
		n++
	}
	log.Info("static teams seeded", zap.Int("teams", n))
}

func seedTeams(ctx context.Context, cfg *config.Config, st store.Store) {
	r := newRefresher(cfg, st)
	teams, err := r.RefreshTeams(ctx)
	if err != nil {
		log.Fatal("team refresh failed", zap.Error(err))
	}
	log.Info("teams seeded", zap.Int("teams", len(teams)))
}

func seedAll(cfg *config.Config, st store.Store) {
	r := newRefresher(cfg, st)
	r.RefreshAll()
}

func newRefresher(cfg *config.Config, st store.Store) *jobs.Refresher {
	client := espn.New(cfg.Provider.BaseURL, cfg.Provider.WebBaseURL, cfg.Provider.Timeout)
	r, err := jobs.NewRefresher(client, st)
	if err != nil {
		log.Fatal("failed to create refresher", zap.Error(err))
	}
	return r
}

// seedDemoGames inserts a few scheduled games so the frontend has
// something to render outside game hours.
func seedDemoGames(ctx context.Context, st store.Store) {
	tipoff := time.Now().UTC().Truncate(time.Hour).Add(24 * time.Hour)

	matchups := []struct {
		id         string
		home, away string
	}{
		{"demo-401", "LAL", "BOS"},
		{"demo-402", "GSW", "DEN"},
		{"demo-403", "NYK", "MIA"},
	}

	n := 0
	for i, m := range matchups {
		game := models.GameSnapshot{
			GameID:    m.id,
			Status:    models.StatusScheduled,
			HomeTeam:  models.TeamSide{TeamID: m.home, Abbr: m.home, Name: nba.TeamName(m.home)},
			AwayTeam:  models.TeamSide{TeamID: m.away, Abbr: m.away, Name: nba.TeamName(m.away)},
			StartTime: tipoff.Add(time.Duration(i) * 30 * time.Minute),
			Venue:     "Demo Arena",
			Broadcast: "PMK",
			UpdatedAt: time.Now().UTC(),
		}
		if err := st.InsertScheduledGame(ctx, game); err != nil {
			log.Warn("demo game insert failed", zap.String("game_id", m.id), zap.Error(err))
			continue
		}
		n++
	}
	log.Info("demo games seeded", zap.Int("games", n))
}
