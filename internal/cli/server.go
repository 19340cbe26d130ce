package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"quizdesk-service/internal/app"
	"quizdesk-service/internal/auth"
	"quizdesk-service/internal/config"
	"quizdesk-service/internal/domain"
	"quizdesk-service/internal/infra/memory"
	pgloader "quizdesk-service/internal/infra/postgres"
	redisinfra "quizdesk-service/internal/infra/redis"
	transport "quizdesk-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	sessionTTL := config.TTLDuration(cfg.Redis.TTL, 10*time.Minute)

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
	}

	var loader memory.GroupLoader = memory.NewStaticGroupLoader(sampleGroups())
	var history app.HistoryRecorder = memory.NewHistoryRecorder()
	if pool != nil {
		loader = pgloader.NewGroupLoader(pool)
		history = pgloader.NewHistoryRecorder(pool)
	}

	groupTTL := config.TTLDuration(cfg.Groups.TTL, 10*time.Minute)
	var groups app.GroupRepository
	if redisClient != nil {
		groups = redisinfra.NewGroupRepository(redisClient, loader, groupTTL)
	} else {
		groups = memory.NewGroupRepository(loader, groupTTL)
	}

	var sessions app.SessionStore
	if redisClient != nil {
		sessions = redisinfra.NewSessionStore(redisClient, sessionTTL)
	} else {
		sessions = memory.NewSessionStore()
	}

	secret := cfg.Auth.Secret
	if secret == "" {
		secret = os.Getenv("AUTH_SECRET")
	}
	tokens := auth.NewTokenService(secret, config.TTLDuration(cfg.Auth.TokenTTL, 8*time.Hour))

	service := app.NewSessionService(groups, history, tokens, sessions)
	wsHandler := transport.NewWSHandler(service)
	apiHandler := transport.NewAPIHandler(service, tokens)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/login", apiHandler.Login)
	mux.HandleFunc("/groups", apiHandler.Groups)
	mux.HandleFunc("/history", apiHandler.History)
	mux.HandleFunc("/ws", wsHandler.ServeWS)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting quizdesk service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// sampleGroups provides a minimal question-group set; swap the loader with
// the Postgres-backed one in production.
func sampleGroups() map[string]domain.QuestionGroup {
	return map[string]domain.QuestionGroup{
		"group-1": {
			Info: domain.GroupInfo{
				ID:          "group-1",
				Name:        "Networking basics",
				Description: "Multi-select warmup set",
				PassLine:    75,
				TotalCount:  2,
			},
			Questions: []domain.Question{
				{
					ID:            "q1",
					Prompt:        "Which of these are transport-layer protocols?",
					Selections:    []string{"TCP", "IP", "UDP", "HTTP"},
					CorrectAnswer: []int{0, 2},
					Commentary:    "TCP and UDP sit on layer 4; IP is layer 3, HTTP layer 7.",
				},
				{
					ID:            "q2",
					Prompt:        "Which address is a loopback?",
					Selections:    []string{"127.0.0.1", "10.0.0.1", "192.168.0.1"},
					CorrectAnswer: []int{0},
					Commentary:    "127.0.0.0/8 is reserved for loopback.",
				},
			},
		},
	}
}
