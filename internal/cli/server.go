package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quizhost/internal/app"
	"quizhost/internal/config"
	"quizhost/internal/domain"
	"quizhost/internal/infra/memory"
	pgstore "quizhost/internal/infra/postgres"
	rediscache "quizhost/internal/infra/redis"
	transport "quizhost/internal/transport/http"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
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

	var store app.QuizStore = seededMemoryStore()
	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
		store = pgstore.NewQuizStore(pool)
	}

	quizTTL := config.Duration(cfg.Quiz.TTL, 10*time.Minute)
	var reader app.QuizReader = memory.NewQuizCache(store, quizTTL)
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		reader = rediscache.NewQuizCache(redisClient, store, quizTTL)
	}

	service := app.NewQuizService(store, reader)
	tickInterval := config.Duration(cfg.Play.TickInterval, time.Second)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      transport.NewRouter(service, tickInterval),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting quizhost on :%s", finalPort)
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

// seededMemoryStore backs the server without Postgres; handy for demos and
// local development.
func seededMemoryStore() *memory.QuizStore {
	store := memory.NewQuizStore()
	_, err := store.CreateQuiz(context.Background(), domain.Quiz{
		Title:       "Quick arithmetic",
		Description: "Warm-up sums against the clock",
		Topic:       "math",
		Questions: []domain.Question{
			{Text: "What is 2 + 2?", OptionA: "3", OptionB: "4", OptionC: "5", OptionD: "6", Correct: domain.OptionB, TimeLimit: 20},
			{Text: "What is 7 * 8?", OptionA: "54", OptionB: "63", OptionC: "56", OptionD: "48", Correct: domain.OptionC, TimeLimit: 20},
		},
	})
	if err != nil {
		log.Printf("seed quiz: %v", err)
	}
	return store
}
