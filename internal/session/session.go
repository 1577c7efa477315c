// Package session implements the quiz-play state machine: a single player's
// progression through a quiz's questions with a per-question countdown and
// speed-based scoring.
package session

import (
	"math"

	"quizhost/internal/domain"
)

// Phase is the current stage of a play session.
type Phase string

const (
	PhaseLobby    Phase = "lobby"
	PhaseQuestion Phase = "question"
	PhaseResult   Phase = "result"
	PhaseGameOver Phase = "gameOver"
)

// Event is a single input into the state machine. All mutation goes through
// Dispatch, so the machine is synchronously testable without a wall clock.
type Event interface {
	isEvent()
}

// Start begins play from the lobby.
type Start struct{}

// Tick is one elapsed second of the active question's countdown.
type Tick struct{}

// Answer submits an option for the active question. domain.NoAnswer models
// a timeout or deliberate skip.
type Answer struct {
	Option domain.Option
}

// Advance acknowledges a result and moves to the next question or game over.
type Advance struct{}

func (Start) isEvent()   {}
func (Tick) isEvent()    {}
func (Answer) isEvent()  {}
func (Advance) isEvent() {}

// Snapshot is the observable state handed to the presentation layer after
// every dispatch.
type Snapshot struct {
	Phase          Phase            `json:"phase"`
	CurrentIndex   int              `json:"currentIndex"`
	QuestionCount  int              `json:"questionCount"`
	TimeRemaining  int              `json:"timeRemaining"`
	Score          int              `json:"score"`
	SelectedAnswer domain.Option    `json:"selectedAnswer"`
	Question       *domain.Question `json:"question,omitempty"`
}

// Session drives one player's attempt at a quiz. It lives only in memory and
// is discarded on restart; a finished session is never resumed.
type Session struct {
	quiz      domain.Quiz
	phase     Phase
	index     int
	remaining int
	score     int
	selected  domain.Option
}

// New creates a session in the lobby over a read-only quiz snapshot.
func New(quiz domain.Quiz) *Session {
	return &Session{
		quiz:  quiz,
		phase: PhaseLobby,
		index: -1,
	}
}

// Dispatch applies one event and returns the resulting snapshot. Events that
// arrive outside their valid phase are silent no-ops: with a single local
// actor driving the machine, an out-of-phase event is a benign double
// trigger, not a fault.
func (s *Session) Dispatch(ev Event) Snapshot {
	switch ev := ev.(type) {
	case Start:
		s.start()
	case Tick:
		s.tick()
	case Answer:
		s.submit(ev.Option)
	case Advance:
		s.advance()
	}
	return s.Snapshot()
}

// Snapshot returns the current observable state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Phase:          s.phase,
		CurrentIndex:   s.index,
		QuestionCount:  len(s.quiz.Questions),
		TimeRemaining:  s.remaining,
		Score:          s.score,
		SelectedAnswer: s.selected,
	}
	if s.index >= 0 && s.index < len(s.quiz.Questions) {
		q := s.quiz.Questions[s.index]
		snap.Question = &q
	}
	return snap
}

func (s *Session) start() {
	if s.phase != PhaseLobby || len(s.quiz.Questions) == 0 {
		return
	}
	s.phase = PhaseQuestion
	s.index = 0
	s.remaining = s.quiz.Questions[0].TimeLimit
}

func (s *Session) tick() {
	if s.phase != PhaseQuestion {
		return
	}
	s.remaining--
	if s.remaining <= 0 {
		s.remaining = 0
		// Running out the clock counts as answering nothing.
		s.submit(domain.NoAnswer)
	}
}

func (s *Session) submit(option domain.Option) {
	if s.phase != PhaseQuestion {
		return
	}
	s.selected = option
	if option == s.quiz.Questions[s.index].Correct {
		s.score += points(s.remaining, s.quiz.Questions[s.index].TimeLimit)
	}
	s.phase = PhaseResult
}

func (s *Session) advance() {
	if s.phase != PhaseResult {
		return
	}
	if s.index == len(s.quiz.Questions)-1 {
		s.phase = PhaseGameOver
		return
	}
	s.index++
	s.remaining = s.quiz.Questions[s.index].TimeLimit
	s.selected = domain.NoAnswer
	s.phase = PhaseQuestion
}

// points rewards faster correct answers: a full-speed answer is worth 1500,
// decaying linearly to the 500 floor as the clock runs down. The store
// guarantees limit > 0.
func points(remaining, limit int) int {
	return int(math.Round(1000*float64(remaining)/float64(limit))) + 500
}
