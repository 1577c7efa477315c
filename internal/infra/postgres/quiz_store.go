package postgres

import (
	"context"
	"errors"
	"fmt"

	"quizhost/internal/domain"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// QuizStore persists quizzes and questions in Postgres. Question order is
// kept in an explicit position column so play order survives storage.
type QuizStore struct {
	pool *pgxpool.Pool
}

func NewQuizStore(pool *pgxpool.Pool) *QuizStore {
	return &QuizStore{pool: pool}
}

func (s *QuizStore) ListQuizzes(ctx context.Context) ([]domain.Quiz, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, title, description, topic, created_at FROM quizzes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	defer rows.Close()

	var quizzes []domain.Quiz
	for rows.Next() {
		var q domain.Quiz
		if err := rows.Scan(&q.ID, &q.Title, &q.Description, &q.Topic, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan quiz: %w", err)
		}
		quizzes = append(quizzes, q)
	}
	return quizzes, rows.Err()
}

func (s *QuizStore) GetQuiz(ctx context.Context, id int64) (domain.Quiz, error) {
	var quiz domain.Quiz
	err := s.pool.QueryRow(ctx,
		`SELECT id, title, description, topic, created_at FROM quizzes WHERE id = $1`, id).
		Scan(&quiz.ID, &quiz.Title, &quiz.Description, &quiz.Topic, &quiz.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Quiz{}, domain.ErrQuizNotFound
	}
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("load quiz: %w", err)
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, text, option_a, option_b, option_c, option_d, correct_option, time_limit
		 FROM questions WHERE quiz_id = $1 ORDER BY position`, id)
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("load questions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			q       domain.Question
			correct string
		)
		if err := rows.Scan(&q.ID, &q.Text, &q.OptionA, &q.OptionB, &q.OptionC, &q.OptionD, &correct, &q.TimeLimit); err != nil {
			return domain.Quiz{}, fmt.Errorf("scan question: %w", err)
		}
		q.Correct = domain.Option(correct)
		quiz.Questions = append(quiz.Questions, q)
	}
	return quiz, rows.Err()
}

// CreateQuiz inserts the quiz and all its questions in one transaction, so a
// partially written quiz is never observable.
func (s *QuizStore) CreateQuiz(ctx context.Context, quiz domain.Quiz) (domain.Quiz, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO quizzes (title, description, topic) VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		quiz.Title, quiz.Description, quiz.Topic).
		Scan(&quiz.ID, &quiz.CreatedAt)
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("insert quiz: %w", err)
	}

	for i := range quiz.Questions {
		q := &quiz.Questions[i]
		err := tx.QueryRow(ctx,
			`INSERT INTO questions (quiz_id, position, text, option_a, option_b, option_c, option_d, correct_option, time_limit)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			 RETURNING id`,
			quiz.ID, i, q.Text, q.OptionA, q.OptionB, q.OptionC, q.OptionD, string(q.Correct), q.TimeLimit).
			Scan(&q.ID)
		if err != nil {
			return domain.Quiz{}, fmt.Errorf("insert question %d: %w", i, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Quiz{}, fmt.Errorf("commit: %w", err)
	}
	return quiz, nil
}
