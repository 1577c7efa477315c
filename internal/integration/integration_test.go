package integration

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"
	"time"

	"quizhost/internal/app"
	"quizhost/internal/domain"
	pgstore "quizhost/internal/infra/postgres"
	pgmigrations "quizhost/internal/infra/postgres/migrations"
	rediscache "quizhost/internal/infra/redis"
	"quizhost/internal/session"
	"github.com/jackc/pgx/v4/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
)

func TestCreateAndPlayEndToEnd(t *testing.T) {
	ctx := context.Background()

	pgURL, pgCleanup := startPostgres(t, ctx)
	defer pgCleanup()
	redisURL, redisCleanup := startRedis(t, ctx)
	defer redisCleanup()

	migrateDB(t, ctx, pgURL)

	pool, err := pgxpool.Connect(ctx, pgURL)
	if err != nil {
		t.Fatalf("connect pg: %v", err)
	}
	defer pool.Close()

	redisClient, err := redisClientFromURL(redisURL)
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}

	store := pgstore.NewQuizStore(pool)
	reader := rediscache.NewQuizCache(redisClient, store, 5*time.Minute)
	service := app.NewQuizService(store, reader)

	created, err := service.CreateQuiz(ctx, app.NewQuizInput{
		Title:       "Capitals",
		Description: "European capitals",
		Topic:       "geography",
		Questions: []app.NewQuestionInput{
			{Text: "Capital of France?", OptionA: "Paris", OptionB: "Lyon", OptionC: "Nice", OptionD: "Lille", Correct: domain.OptionA, TimeLimit: 20},
			{Text: "Capital of Spain?", OptionA: "Seville", OptionB: "Madrid", OptionC: "Bilbao", OptionD: "Valencia", Correct: domain.OptionB, TimeLimit: 30},
		},
	})
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}

	// First read fills Redis, second one must come out of it.
	quiz, err := service.GetQuiz(ctx, created.ID)
	if err != nil {
		t.Fatalf("get quiz: %v", err)
	}
	if len(quiz.Questions) != 2 || quiz.Questions[0].Text != "Capital of France?" {
		t.Fatalf("question order lost through pg+redis: %+v", quiz.Questions)
	}
	if _, err := service.GetQuiz(ctx, created.ID); err != nil {
		t.Fatalf("cached get quiz: %v", err)
	}

	// Play the loaded quiz to game over.
	s := session.New(quiz)
	s.Dispatch(session.Start{})
	for i := 0; i < 5; i++ {
		s.Dispatch(session.Tick{})
	}
	snap := s.Dispatch(session.Answer{Option: domain.OptionA})
	if snap.Score != 1250 {
		t.Fatalf("expected 1250 after answering with 15/20s left, got %d", snap.Score)
	}
	s.Dispatch(session.Advance{})
	s.Dispatch(session.Answer{Option: domain.OptionD})
	snap = s.Dispatch(session.Advance{})
	if snap.Phase != session.PhaseGameOver || snap.Score != 1250 {
		t.Fatalf("unexpected final state: %+v", snap)
	}

	if _, err := service.GetQuiz(ctx, created.ID+1000); err != domain.ErrQuizNotFound {
		t.Fatalf("expected ErrQuizNotFound, got %v", err)
	}
}

func migrateDB(t *testing.T, ctx context.Context, dsn string) {
	t.Helper()
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		t.Fatalf("migrator init: %v", err)
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
}

func startPostgres(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_USER": "quiz", "POSTGRES_PASSWORD": "quizpass", "POSTGRES_DB": "quizdb"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start postgres: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	dsn := fmt.Sprintf("postgres://quiz:quizpass@%s:%s/quizdb?sslmode=disable", host, port.Port())
	return dsn, func() {
		_ = container.Terminate(ctx)
	}
}

func startRedis(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start redis: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("redis host: %v", err)
	}
	port, err := container.MappedPort(ctx, "6379/tcp")
	if err != nil {
		t.Fatalf("redis port: %v", err)
	}
	url := fmt.Sprintf("redis://%s:%s", host, port.Port())
	return url, func() {
		_ = container.Terminate(ctx)
	}
}

func redisClientFromURL(url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return goredis.NewClient(opts), nil
}
