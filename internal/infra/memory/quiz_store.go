package memory

import (
	"context"
	"sync"
	"time"

	"quizhost/internal/domain"
)

// QuizStore is an in-memory implementation of app.QuizStore, useful for
// tests and for running the server without Postgres.
type QuizStore struct {
	mu      sync.RWMutex
	nextID  int64
	quizzes map[int64]domain.Quiz
	order   []int64
	clock   func() time.Time
}

func NewQuizStore() *QuizStore {
	return &QuizStore{
		nextID:  1,
		quizzes: make(map[int64]domain.Quiz),
		clock:   time.Now,
	}
}

// NewQuizStoreWithClock is test-only for deterministic timestamps.
func NewQuizStoreWithClock(now func() time.Time) *QuizStore {
	s := NewQuizStore()
	s.clock = now
	return s
}

func (s *QuizStore) ListQuizzes(_ context.Context) ([]domain.Quiz, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Quiz, 0, len(s.order))
	for _, id := range s.order {
		quiz := s.quizzes[id]
		quiz.Questions = nil
		out = append(out, quiz)
	}
	return out, nil
}

func (s *QuizStore) GetQuiz(_ context.Context, id int64) (domain.Quiz, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	quiz, ok := s.quizzes[id]
	if !ok {
		return domain.Quiz{}, domain.ErrQuizNotFound
	}
	// Copy the question slice so callers cannot mutate stored state.
	questions := make([]domain.Question, len(quiz.Questions))
	copy(questions, quiz.Questions)
	quiz.Questions = questions
	return quiz, nil
}

func (s *QuizStore) CreateQuiz(_ context.Context, quiz domain.Quiz) (domain.Quiz, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	quiz.ID = s.nextID
	s.nextID++
	quiz.CreatedAt = s.clock()
	for i := range quiz.Questions {
		quiz.Questions[i].ID = int64(i + 1)
	}
	s.quizzes[quiz.ID] = quiz
	s.order = append(s.order, quiz.ID)
	return quiz, nil
}
