package app_test

import (
	"context"
	"testing"
	"time"

	"quizhost/internal/app"
	"quizhost/internal/domain"
	"quizhost/internal/infra/memory"
)

func TestCreateAndGetQuiz(t *testing.T) {
	ctx := context.Background()
	service := app.NewQuizService(memory.NewQuizStore(), nil)

	created, err := service.CreateQuiz(ctx, app.NewQuizInput{
		Title:       "  Capitals  ",
		Description: "European capitals",
		Topic:       "geography",
		Questions: []app.NewQuestionInput{
			{Text: "Capital of France?", OptionA: "Paris", OptionB: "Lyon", OptionC: "Nice", OptionD: "Lille", Correct: domain.OptionA, TimeLimit: 15},
			{Text: "Capital of Spain?", OptionA: "Seville", OptionB: "Madrid", OptionC: "Bilbao", OptionD: "Valencia", Correct: domain.OptionB, TimeLimit: 15},
		},
	})
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	if created.Title != "Capitals" {
		t.Fatalf("expected trimmed title, got %q", created.Title)
	}

	got, err := service.GetQuiz(ctx, created.ID)
	if err != nil {
		t.Fatalf("get quiz: %v", err)
	}
	if len(got.Questions) != 2 || got.Questions[0].Text != "Capital of France?" {
		t.Fatalf("question order or content lost: %+v", got.Questions)
	}
}

func TestCreateQuizValidation(t *testing.T) {
	ctx := context.Background()
	service := app.NewQuizService(memory.NewQuizStore(), nil)

	if _, err := service.CreateQuiz(ctx, app.NewQuizInput{Title: "   "}); err != domain.ErrInvalidQuiz {
		t.Fatalf("expected ErrInvalidQuiz, got %v", err)
	}

	_, err := service.CreateQuiz(ctx, app.NewQuizInput{
		Title: "Bad",
		Questions: []app.NewQuestionInput{
			{Text: "q", OptionA: "a", OptionB: "b", OptionC: "c", OptionD: "d", Correct: domain.OptionA, TimeLimit: 0},
		},
	})
	if err != domain.ErrMalformedQuestion {
		t.Fatalf("expected ErrMalformedQuestion, got %v", err)
	}
}

func TestGetQuizGoesThroughReader(t *testing.T) {
	ctx := context.Background()
	store := memory.NewQuizStore()
	created, err := store.CreateQuiz(ctx, domain.Quiz{
		Title: "Arithmetic",
		Questions: []domain.Question{
			{Text: "2+2?", OptionA: "3", OptionB: "4", OptionC: "5", OptionD: "6", Correct: domain.OptionB, TimeLimit: 20},
		},
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	cache := memory.NewQuizCache(store, time.Minute)
	service := app.NewQuizService(store, cache)

	if _, err := service.GetQuiz(ctx, created.ID); err != nil {
		t.Fatalf("get through cache: %v", err)
	}
	if _, err := service.GetQuiz(ctx, 404); err != domain.ErrQuizNotFound {
		t.Fatalf("expected ErrQuizNotFound, got %v", err)
	}
}
