package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/playmaker-live/playmaker/internal/alerts"
	gamecache "github.com/playmaker-live/playmaker/internal/cache"
	"github.com/playmaker-live/playmaker/internal/chat"
	"github.com/playmaker-live/playmaker/internal/config"
	"github.com/playmaker-live/playmaker/internal/handlers"
	"github.com/playmaker-live/playmaker/internal/jobs"
	"github.com/playmaker-live/playmaker/internal/live"
	"github.com/playmaker-live/playmaker/internal/log"
	"github.com/playmaker-live/playmaker/internal/nba"
	"github.com/playmaker-live/playmaker/internal/notify"
	"github.com/playmaker-live/playmaker/internal/providers/espn"
	"github.com/playmaker-live/playmaker/internal/store"
	"github.com/playmaker-live/playmaker/pkg/models"
)

const dedupTTL = 6 * time.Hour

func main() {
	// .env is optional; real deployments use the environment directly
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

	log.Info("starting playmaker", zap.String("addr", cfg.Server.Addr))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Upstream provider
	client := espn.New(cfg.Provider.BaseURL, cfg.Provider.WebBaseURL, cfg.Provider.Timeout)

	// Relational mirror, optional
	var st *store.Postgres
	if cfg.Postgres.DSN != "" {
		st, err = store.New(cfg.Postgres.DSN)
		if err != nil {
			log.Fatal("failed to connect to postgres", zap.Error(err))
		}
		defer st.Close()

		if err := st.Migrate(ctx); err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}
		log.Info("connected to postgres")
	} else {
		log.Warn("DATABASE_URL not set, player mirror disabled")
	}

	// Redis, optional
	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatal("invalid redis url", zap.Error(err))
		}
		redisClient = redis.NewClient(opts)
		defer redisClient.Close()

		pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Fatal("failed to connect to redis", zap.Error(err))
		}
		pingCancel()
		log.Info("connected to redis")
	} else {
		log.Warn("REDIS_URL not set, game detail cache and alert dedup disabled")
	}

	// Live scoreboard pipeline
	liveCache := live.NewCache(scoreboardFetcher(client), cfg.Live.CacheTTL)
	broadcaster := live.NewBroadcaster(liveCache, cfg.Live.PollInterval)
	go broadcaster.Run(ctx)

	// Notifications
	smsChain := notify.NewSenderChain(
		notify.NewSMTPGateway(cfg.SMTP),
		notify.NewTwilioSender(cfg.Twilio),
	)
	caller := notify.NewVapiCaller(cfg.Vapi)
	oracle := chat.NewGeminiOracle(cfg.Gemini, liveCache)

	// Alert fan-out rides the same broadcast loop as the stream clients
	var alertManager *alerts.Manager
	if smsChain.Enabled() {
		alertManager = alerts.NewManager(smsChain, gamecache.NewDeduplicator(redisClient, dedupTTL))
		alertSub := broadcaster.Subscribe()
		go alertManager.Run(ctx, alertSub.C)
	} else {
		log.Warn("no SMS sender configured, game alerts disabled")
	}

	// Daily roster refresh
	if st != nil {
		refresher, err := jobs.NewRefresher(client, st)
		if err != nil {
			log.Fatal("failed to create refresh scheduler", zap.Error(err))
		}
		if err := refresher.Start(); err != nil {
			log.Fatal("failed to start refresh scheduler", zap.Error(err))
		}
		defer refresher.Stop()
	}

	// Handlers
	healthHandler := &handlers.HealthHandler{}
	liveHandler := handlers.NewLiveHandler(liveCache, broadcaster, cfg.Live.HeartbeatInterval)
	wsHandler := handlers.NewWSHandler(broadcaster)
	gamesHandler := handlers.NewGamesHandler(client, gamecache.NewGameCache(redisClient))
	playersHandler := handlers.NewPlayersHandler(client, playerStore(st))
	vapiHandler := handlers.NewVapiHandler(oracle, caller, smsChain)
	alertsHandler := handlers.NewAlertsHandler(alertManager)

	// Router
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Long-lived stream connections stay outside the request timeout
	r.Get("/api/live/nba/stream", liveHandler.HandleStream)
	r.Get("/api/live/nba/ws", wsHandler.HandleWS)

	r.Group(func(r chi.Router) {
		r.Use(chimiddleware.Timeout(30 * time.Second))

		r.Get("/health", healthHandler.HealthCheck)

		r.Get("/api/live/nba", liveHandler.HandleScoreboard)
		r.Get("/api/games/{id}", gamesHandler.HandleGetGame)

		r.Get("/api/players/search", playersHandler.HandleSearch)
		r.Get("/api/players/{id}", playersHandler.HandleGetPlayer)

		r.Post("/api/vapi/webhook", vapiHandler.HandleWebhook)
		r.Post("/api/vapi/call", vapiHandler.HandleStartCall)
		r.Post("/api/ai-assistant/vapi/call", vapiHandler.HandleStartCall)
		r.Post("/api/vapi/sms", vapiHandler.HandleSendSMS)
		r.Post("/api/notifications/sms", vapiHandler.HandleSendSMS)

		r.Post("/api/alerts/subscribe", alertsHandler.HandleSubscribe)
	})

	// WriteTimeout stays zero so SSE and WebSocket connections are not
	// severed mid-stream; the timeout middleware covers plain requests.
	srv := &http.Server{
		Addr:        cfg.Server.Addr,
		Handler:     r,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("http server listening", zap.String("addr", cfg.Server.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		log.Fatal("server error", zap.Error(err))

	case sig := <-shutdown:
		log.Info("shutdown signal received", zap.String("signal", sig.String()))
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn("graceful shutdown failed", zap.Error(err))
			if err := srv.Close(); err != nil {
				log.Error("could not stop server", zap.Error(err))
			}
		}
	}

	log.Info("shutdown complete")
}

// scoreboardFetcher adapts the provider client to the live cache.
// The "today" key maps to the provider's default scoreboard; any other
// key is a YYYYMMDD date.
func scoreboardFetcher(client *espn.Client) live.FetchFunc {
	return func(ctx context.Context, dateKey string) ([]models.GameSnapshot, error) {
		var date time.Time
		if dateKey != live.TodayKey {
			parsed, err := time.Parse("20060102", dateKey)
			if err != nil {
				return nil, err
			}
			date = parsed
		}

		raw, err := client.FetchScoreboard(ctx, date)
		if err != nil {
			return nil, err
		}
		return nba.ParseScoreboard(raw)
	}
}

// playerStore avoids handing a typed-nil *Postgres to the handler's
// interface field.
func playerStore(st *store.Postgres) handlers.PlayerStore {
	if st == nil {
		return nil
	}
	return st
}
