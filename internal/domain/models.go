package domain

import "time"

// Option identifies one of the four answer choices of a question.
type Option string

const (
	OptionA Option = "A"
	OptionB Option = "B"
	OptionC Option = "C"
	OptionD Option = "D"

	// NoAnswer marks a timed-out or skipped question.
	NoAnswer Option = ""
)

// Valid reports whether o is one of the four answerable letters.
func (o Option) Valid() bool {
	switch o {
	case OptionA, OptionB, OptionC, OptionD:
		return true
	}
	return false
}

// Question is one multiple-choice item. Immutable once loaded into a session.
type Question struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	OptionA   string `json:"optionA"`
	OptionB   string `json:"optionB"`
	OptionC   string `json:"optionC"`
	OptionD   string `json:"optionD"`
	Correct   Option `json:"correctOption"`
	TimeLimit int    `json:"timeLimit"` // seconds, always > 0
}

// NewQuestion validates and builds a question. The time limit must be a
// positive number of seconds and the correct option one of A-D; anything
// else is ErrMalformedQuestion.
func NewQuestion(text, optionA, optionB, optionC, optionD string, correct Option, timeLimit int) (Question, error) {
	if timeLimit <= 0 {
		return Question{}, ErrMalformedQuestion
	}
	if !correct.Valid() {
		return Question{}, ErrMalformedQuestion
	}
	return Question{
		Text:      text,
		OptionA:   optionA,
		OptionB:   optionB,
		OptionC:   optionC,
		OptionD:   optionD,
		Correct:   correct,
		TimeLimit: timeLimit,
	}, nil
}

// OptionText returns the text behind an option letter, or "" for NoAnswer.
func (q Question) OptionText(o Option) string {
	switch o {
	case OptionA:
		return q.OptionA
	case OptionB:
		return q.OptionB
	case OptionC:
		return q.OptionC
	case OptionD:
		return q.OptionD
	}
	return ""
}

// Quiz is a named collection of questions. The slice order is the play
// order: it mirrors insertion order in the store and carries no sort key.
type Quiz struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Topic       string     `json:"topic"`
	CreatedAt   time.Time  `json:"createdAt"`
	Questions   []Question `json:"questions"`
}
