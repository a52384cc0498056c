package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/cetprep/cetprep-backend/internal/model"
	"github.com/cetprep/cetprep-backend/internal/repository"
)

func TestResultBreakdown(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryResultStore()
	svc := NewResultService(store)

	questions := repository.SeedTests(time.Now())[0].Questions
	answers := model.AnswerMap{
		questions[0].ID.String(): questions[0].CorrectAnswer, // correct
		questions[1].ID.String(): "14",                       // wrong
	}
	stored := &model.Result{
		TestID:         uuid.New(),
		TestTitle:      "MHT-CET Mock Test 1",
		Score:          17,
		TotalQuestions: 6,
		CorrectAnswers: 1,
		Attempted:      2,
		Answers:        answers,
		Questions:      questions,
	}
	if err := store.Save(ctx, stored); err != nil {
		t.Fatalf("Save: %v", err)
	}

	b, err := svc.Get(ctx, stored.TestID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	if b.IncorrectAnswers != 1 {
		t.Errorf("incorrect = %d, want 1", b.IncorrectAnswers)
	}
	if b.Unattempted != 4 {
		t.Errorf("unattempted = %d, want 4", b.Unattempted)
	}
	if len(b.Review) != 6 {
		t.Fatalf("review has %d lines, want 6", len(b.Review))
	}

	first := b.Review[0]
	if first.Number != 1 || !first.Attempted || !first.Correct {
		t.Errorf("review[0] = %+v, want attempted correct #1", first)
	}

	second := b.Review[1]
	if second.Correct || !second.Attempted || second.YourAnswer != "14" {
		t.Errorf("review[1] = %+v, want attempted incorrect", second)
	}

	third := b.Review[2]
	if third.Attempted || third.YourAnswer != "" || third.Correct {
		t.Errorf("review[2] = %+v, want unattempted", third)
	}
	if third.CorrectAnswer == "" {
		t.Error("review line missing correct answer")
	}
}

func TestResultBreakdownNotFound(t *testing.T) {
	svc := NewResultService(repository.NewMemoryResultStore())
	if _, err := svc.Get(context.Background(), uuid.New()); !errors.Is(err, repository.ErrResultNotFound) {
		t.Errorf("err = %v, want ErrResultNotFound", err)
	}
}
