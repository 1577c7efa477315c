package http

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"quizhost/internal/app"
	"quizhost/internal/domain"
	"quizhost/internal/session"
	"github.com/gorilla/websocket"
)

// PlayHandler hosts one solo play session per websocket connection. The
// connection is the presentation layer's uplink: it forwards start/answer/
// next intents into the state machine and receives a state snapshot for
// every transition, countdown ticks included.
type PlayHandler struct {
	service      *app.QuizService
	upgrader     websocket.Upgrader
	tickInterval time.Duration
}

func NewPlayHandler(service *app.QuizService, tickInterval time.Duration) *PlayHandler {
	if tickInterval <= 0 {
		tickInterval = time.Second
	}
	return &PlayHandler{
		service:      service,
		tickInterval: tickInterval,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type playIntent struct {
	Type   string        `json:"type"` // start | answer | next
	Option domain.Option `json:"option,omitempty"`
}

type stateMessage struct {
	Type    string           `json:"type"`
	Payload session.Snapshot `json:"payload"`
}

// ServePlay upgrades the request and drives a fresh session over the quiz
// named by the quizId query parameter.
func (h *PlayHandler) ServePlay(w http.ResponseWriter, r *http.Request) {
	quizID, err := strconv.ParseInt(r.URL.Query().Get("quizId"), 10, 64)
	if err != nil {
		http.Error(w, "missing or invalid quizId", http.StatusBadRequest)
		return
	}

	quiz, err := h.service.GetQuiz(r.Context(), quizID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	runner := session.NewRunner(session.New(quiz), session.WithTickInterval(h.tickInterval))
	go runner.Run(ctx)

	// Single writer: only this goroutine touches the connection's write side.
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		for snap := range runner.Snapshots() {
			if err := conn.WriteJSON(stateMessage{Type: "state", Payload: snap}); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
		deadline := time.Now().Add(time.Second)
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "game over"), deadline)
	}()

	for {
		var intent playIntent
		if err := conn.ReadJSON(&intent); err != nil {
			break
		}
		switch intent.Type {
		case "start":
			runner.Dispatch(session.Start{})
		case "answer":
			runner.Dispatch(session.Answer{Option: intent.Option})
		case "next":
			runner.Dispatch(session.Advance{})
		default:
			// Unknown intents are dropped, same as out-of-phase events.
		}
	}

	cancel()
	<-writerDone
}
