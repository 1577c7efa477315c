package session

import (
	"context"
	"time"
)

const defaultTickInterval = time.Second

// Runner owns one Session and serializes all mutation onto a single
// goroutine: user intents arrive through Dispatch and the countdown is
// reduced to one Tick event per interval. The ticker runs only while the
// session is in the question phase and is stopped before any later state
// change can be observed, so a stale countdown can never fire against the
// next question.
type Runner struct {
	session   *Session
	interval  time.Duration
	events    chan Event
	snapshots chan Snapshot
	done      chan struct{}
}

// RunnerOption customizes a Runner.
type RunnerOption func(*Runner)

// WithTickInterval overrides the 1s countdown interval; tests use short
// intervals to exercise timeouts without real waits.
func WithTickInterval(d time.Duration) RunnerOption {
	return func(r *Runner) {
		if d > 0 {
			r.interval = d
		}
	}
}

// NewRunner wraps a fresh session over the given session state machine.
func NewRunner(s *Session, opts ...RunnerOption) *Runner {
	r := &Runner{
		session:   s,
		interval:  defaultTickInterval,
		events:    make(chan Event, 16),
		snapshots: make(chan Snapshot, 16),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Snapshots delivers one snapshot per applied event. The channel is closed
// when the run loop exits (game over or context cancellation).
func (r *Runner) Snapshots() <-chan Snapshot {
	return r.snapshots
}

// Dispatch queues a user intent. It is safe to call from any goroutine and
// becomes a no-op once the run loop has exited.
func (r *Runner) Dispatch(ev Event) {
	select {
	case r.events <- ev:
	case <-r.done:
	}
}

// Run drives the session until game over or context cancellation. It must
// be called exactly once.
func (r *Runner) Run(ctx context.Context) {
	defer close(r.done)
	defer close(r.snapshots)

	var (
		ticker *time.Ticker
		tick   <-chan time.Time
	)
	stopTicker := func() {
		if ticker != nil {
			ticker.Stop()
			ticker = nil
			tick = nil
		}
	}
	defer stopTicker()

	emit := func(snap Snapshot) bool {
		// The ticker tracks the phase: fresh per question, stopped the
		// moment the phase leaves Question.
		if snap.Phase == PhaseQuestion {
			if ticker == nil {
				ticker = time.NewTicker(r.interval)
				tick = ticker.C
			}
		} else {
			stopTicker()
		}
		select {
		case r.snapshots <- snap:
		case <-ctx.Done():
			return false
		}
		return snap.Phase != PhaseGameOver
	}

	if !emit(r.session.Snapshot()) {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-r.events:
			if !emit(r.session.Dispatch(ev)) {
				return
			}
		case <-tick:
			if !emit(r.session.Dispatch(Tick{})) {
				return
			}
		}
	}
}
