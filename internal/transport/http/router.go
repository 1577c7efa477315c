package http

import (
	"net/http"
	"time"

	"quizhost/internal/app"
)

// NewRouter assembles the REST API and the websocket play endpoint.
func NewRouter(service *app.QuizService, tickInterval time.Duration) http.Handler {
	api := NewAPI(service)
	play := NewPlayHandler(service, tickInterval)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /quizzes", api.HandleListQuizzes)
	mux.HandleFunc("POST /quizzes", api.HandleCreateQuiz)
	mux.HandleFunc("GET /quizzes/{id}", api.HandleGetQuiz)
	mux.HandleFunc("GET /play", play.ServePlay)
	return mux
}
