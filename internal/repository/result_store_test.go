package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/cetprep/cetprep-backend/internal/model"
)

func TestResultStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryResultStore()

	q := model.Question{
		ID:            uuid.New(),
		Text:          "The pH of a neutral solution is:",
		Options:       []string{"0", "7", "14", "1"},
		CorrectAnswer: "7",
		Section:       model.SectionPhysicsChemistry,
	}
	original := &model.Result{
		TestID:         uuid.New(),
		TestTitle:      "MHT-CET Mock Test 1",
		Score:          67,
		TotalQuestions: 6,
		CorrectAnswers: 4,
		Attempted:      5,
		Answers:        model.AnswerMap{q.ID.String(): "7"},
		Questions:      []model.Question{q},
	}

	if err := store.Save(ctx, original); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Get(ctx, original.TestID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	if got.Score != original.Score {
		t.Errorf("score = %d, want %d", got.Score, original.Score)
	}
	if got.CorrectAnswers != original.CorrectAnswers {
		t.Errorf("correct = %d, want %d", got.CorrectAnswers, original.CorrectAnswers)
	}
	if got.Attempted != original.Attempted {
		t.Errorf("attempted = %d, want %d", got.Attempted, original.Attempted)
	}
	if len(got.Answers) != len(original.Answers) {
		t.Fatalf("answers size = %d, want %d", len(got.Answers), len(original.Answers))
	}
	for k, v := range original.Answers {
		if got.Answers[k] != v {
			t.Errorf("answers[%s] = %q, want %q", k, got.Answers[k], v)
		}
	}
}

func TestResultStoreMissingAndMalformed(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryResultStore()

	if _, err := store.Get(ctx, uuid.New()); !errors.Is(err, ErrResultNotFound) {
		t.Errorf("missing record err = %v, want ErrResultNotFound", err)
	}

	r := &model.Result{TestID: uuid.New(), TestTitle: "t", Answers: model.AnswerMap{}}
	if err := store.Save(ctx, r); err != nil {
		t.Fatalf("Save: %v", err)
	}
	store.Corrupt(r.TestID)

	if _, err := store.Get(ctx, r.TestID); !errors.Is(err, ErrResultNotFound) {
		t.Errorf("malformed record err = %v, want ErrResultNotFound", err)
	}
}
