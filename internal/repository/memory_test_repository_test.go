package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/cetprep/cetprep-backend/internal/model"
)

func TestMemoryTestRepositoryOrdering(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryTestRepository(SeedTests(time.Now()))

	added := &model.Test{
		ID:        uuid.New(),
		Title:     "Weekly Mock Test",
		StartTime: time.Now(),
		EndTime:   time.Now().Add(3 * time.Hour),
		CreatedAt: time.Now(),
	}
	if err := repo.Add(ctx, added); err != nil {
		t.Fatalf("Add: %v", err)
	}

	tests, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(tests) != 4 {
		t.Fatalf("got %d tests, want 4", len(tests))
	}
	// Most recently added first.
	if tests[0].ID != added.ID {
		t.Errorf("first listed test = %q, want the newly added one", tests[0].Title)
	}
}

func TestMemoryTestRepositoryGetByID(t *testing.T) {
	ctx := context.Background()
	seed := SeedTests(time.Now())
	repo := NewMemoryTestRepository(seed)

	got, err := repo.GetByID(ctx, seed[1].ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != seed[1].Title {
		t.Errorf("title = %q, want %q", got.Title, seed[1].Title)
	}

	if _, err := repo.GetByID(ctx, uuid.New()); !errors.Is(err, ErrTestNotFound) {
		t.Errorf("unknown ID err = %v, want ErrTestNotFound", err)
	}
}

func TestSeedTestsWindows(t *testing.T) {
	now := time.Now()
	seed := SeedTests(now)
	if len(seed) != 3 {
		t.Fatalf("seed has %d tests, want 3", len(seed))
	}

	wants := []model.WindowStatus{model.WindowActive, model.WindowUpcoming, model.WindowFinished}
	for i, want := range wants {
		if got := seed[i].Window(now); got != want {
			t.Errorf("seed[%d] window = %q, want %q", i, got, want)
		}
		if len(seed[i].Questions) != 6 {
			t.Errorf("seed[%d] has %d questions, want 6", i, len(seed[i].Questions))
		}
	}
}
