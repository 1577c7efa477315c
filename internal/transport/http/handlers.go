package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"quizhost/internal/app"
)

// API exposes the quiz REST surface: list, fetch-by-id, create.
type API struct {
	service *app.QuizService
}

func NewAPI(service *app.QuizService) *API {
	return &API{service: service}
}

type quizListResponse struct {
	Quizzes []quizSummary `json:"quizzes"`
}

type quizSummary struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Topic       string `json:"topic"`
	CreatedAt   string `json:"createdAt"`
}

func (a *API) HandleListQuizzes(w http.ResponseWriter, r *http.Request) {
	quizzes, err := a.service.ListQuizzes(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := quizListResponse{Quizzes: make([]quizSummary, 0, len(quizzes))}
	for _, q := range quizzes {
		out.Quizzes = append(out.Quizzes, quizSummary{
			ID:          q.ID,
			Title:       q.Title,
			Description: q.Description,
			Topic:       q.Topic,
			CreatedAt:   q.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *API) HandleGetQuiz(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid quiz id"})
		return
	}

	quiz, err := a.service.GetQuiz(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quiz)
}

func (a *API) HandleCreateQuiz(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var input app.NewQuizInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	quiz, err := a.service.CreateQuiz(r.Context(), input)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, quiz)
}
