package app

import (
	"context"
	"strings"

	"quizhost/internal/domain"
)

// QuizStore persists quizzes and their questions (Postgres, in-memory, etc).
type QuizStore interface {
	ListQuizzes(ctx context.Context) ([]domain.Quiz, error)
	GetQuiz(ctx context.Context, id int64) (domain.Quiz, error)
	CreateQuiz(ctx context.Context, quiz domain.Quiz) (domain.Quiz, error)
}

// QuizReader serves quiz reads, possibly through a cache in front of the store.
type QuizReader interface {
	GetQuiz(ctx context.Context, id int64) (domain.Quiz, error)
}

// NewQuestionInput is the unvalidated shape accepted from clients.
type NewQuestionInput struct {
	Text      string        `json:"text"`
	OptionA   string        `json:"optionA"`
	OptionB   string        `json:"optionB"`
	OptionC   string        `json:"optionC"`
	OptionD   string        `json:"optionD"`
	Correct   domain.Option `json:"correctOption"`
	TimeLimit int           `json:"timeLimit"`
}

// NewQuizInput is the unvalidated quiz creation payload.
type NewQuizInput struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Topic       string             `json:"topic"`
	Questions   []NewQuestionInput `json:"questions"`
}

// QuizService contains the quiz hosting use cases.
type QuizService struct {
	store  QuizStore
	reader QuizReader
}

// NewQuizService wires the service to its store and read path. A nil reader
// means reads go straight to the store.
func NewQuizService(store QuizStore, reader QuizReader) *QuizService {
	if reader == nil {
		reader = store
	}
	return &QuizService{store: store, reader: reader}
}

// ListQuizzes returns all quizzes without their questions.
func (s *QuizService) ListQuizzes(ctx context.Context) ([]domain.Quiz, error) {
	return s.store.ListQuizzes(ctx)
}

// GetQuiz returns one quiz with questions in play order.
func (s *QuizService) GetQuiz(ctx context.Context, id int64) (domain.Quiz, error) {
	return s.reader.GetQuiz(ctx, id)
}

// CreateQuiz validates the payload through the domain constructors and
// persists quiz and questions in one transaction. Question order in the
// input is the play order.
func (s *QuizService) CreateQuiz(ctx context.Context, input NewQuizInput) (domain.Quiz, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return domain.Quiz{}, domain.ErrInvalidQuiz
	}

	questions := make([]domain.Question, 0, len(input.Questions))
	for _, in := range input.Questions {
		q, err := domain.NewQuestion(in.Text, in.OptionA, in.OptionB, in.OptionC, in.OptionD, in.Correct, in.TimeLimit)
		if err != nil {
			return domain.Quiz{}, err
		}
		questions = append(questions, q)
	}

	return s.store.CreateQuiz(ctx, domain.Quiz{
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Topic:       strings.TrimSpace(input.Topic),
		Questions:   questions,
	})
}
