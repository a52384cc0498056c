package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/cetprep/cetprep-backend/internal/config"
	"github.com/cetprep/cetprep-backend/internal/model"
	"github.com/cetprep/cetprep-backend/internal/repository"
)

func testConfig() *config.Config {
	return &config.Config{
		AttemptTokenSecret: "test-secret",
		AttemptTokenGrace:  30 * time.Minute,
		LowTimeThreshold:   5 * time.Minute,
		TestWindowDuration: 3 * time.Hour,
	}
}

func newTestService(repo repository.TestRepository) *TestService {
	return NewTestService(repo, testConfig(), zerolog.Nop())
}

func TestTestServiceList(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(repository.NewMemoryTestRepository(repository.SeedTests(time.Now())))

	summaries, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(summaries) != 3 {
		t.Fatalf("got %d summaries, want 3", len(summaries))
	}

	windows := map[model.WindowStatus]int{}
	for _, sum := range summaries {
		windows[sum.Window]++
		if sum.QuestionCount != 6 {
			t.Errorf("%s question count = %d, want 6", sum.Title, sum.QuestionCount)
		}
	}
	for _, w := range []model.WindowStatus{model.WindowActive, model.WindowUpcoming, model.WindowFinished} {
		if windows[w] != 1 {
			t.Errorf("window %q appears %d times, want 1", w, windows[w])
		}
	}
}

func TestTestServiceCreate(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryTestRepository(nil)
	svc := newTestService(repo)

	req := &model.CreateTestRequest{
		Title:         "Unit Test Mock Exam",
		StartDate:     "2026-09-01",
		StartTime:     "10:30",
		QuestionsText: sampleQuestionText,
	}

	created, err := svc.Create(ctx, req)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if got := created.EndTime.Sub(created.StartTime); got != 3*time.Hour {
		t.Errorf("window length = %v, want 3h", got)
	}
	if created.StartTime.Hour() != 10 || created.StartTime.Minute() != 30 {
		t.Errorf("start time = %v, want 10:30", created.StartTime)
	}
	if len(created.Questions) != 3 {
		t.Errorf("parsed %d questions, want 3", len(created.Questions))
	}

	stored, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("created test not in repository: %v", err)
	}
	if stored.Title != req.Title {
		t.Errorf("stored title = %q", stored.Title)
	}
}

func TestTestServiceCreateRejectsEmptyQuestions(t *testing.T) {
	svc := newTestService(repository.NewMemoryTestRepository(nil))

	req := &model.CreateTestRequest{
		Title:         "Empty Question Exam",
		StartDate:     "2026-09-01",
		StartTime:     "10:30",
		QuestionsText: "---\n---",
	}
	if _, err := svc.Create(context.Background(), req); !errors.Is(err, ErrNoQuestions) {
		t.Errorf("err = %v, want ErrNoQuestions", err)
	}
}

func TestTestServiceCreateRejectsBadSchedule(t *testing.T) {
	svc := newTestService(repository.NewMemoryTestRepository(nil))

	req := &model.CreateTestRequest{
		Title:         "Bad Schedule Exam",
		StartDate:     "2026-13-40",
		StartTime:     "10:30",
		QuestionsText: sampleQuestionText,
	}
	if _, err := svc.Create(context.Background(), req); !errors.Is(err, ErrInvalidStartTime) {
		t.Errorf("err = %v, want ErrInvalidStartTime", err)
	}
}
