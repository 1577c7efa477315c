package domain

import "errors"

var (
	// ErrQuizNotFound indicates the requested quiz does not exist in the store.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrEmptyQuiz is returned when a session is started on a quiz with no questions.
	ErrEmptyQuiz = errors.New("quiz has no questions")
	// ErrMalformedQuestion indicates a non-positive time limit or an unknown correct option.
	ErrMalformedQuestion = errors.New("malformed question")
	// ErrInvalidQuiz indicates quiz-level input that cannot be persisted (e.g. missing title).
	ErrInvalidQuiz = errors.New("invalid quiz")
)
