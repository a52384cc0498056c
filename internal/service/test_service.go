package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cetprep/cetprep-backend/internal/config"
	"github.com/cetprep/cetprep-backend/internal/model"
	"github.com/cetprep/cetprep-backend/internal/repository"
)

// Test catalog errors.
var (
	ErrNoQuestions      = errors.New("no questions parsed from input")
	ErrInvalidStartTime = errors.New("invalid start date or time")
)

// TestService handles the test catalog: the scheduled-test dashboard and
// test creation.
type TestService struct {
	repo repository.TestRepository
	cfg  *config.Config
	log  zerolog.Logger
}

// NewTestService creates a new TestService.
func NewTestService(repo repository.TestRepository, cfg *config.Config, log zerolog.Logger) *TestService {
	return &TestService{repo: repo, cfg: cfg, log: log}
}

// List returns dashboard summaries for every test, newest first, with the
// window status computed against the current clock.
func (s *TestService) List(ctx context.Context) ([]model.TestSummary, error) {
	tests, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tests: %w", err)
	}

	now := time.Now()
	summaries := make([]model.TestSummary, len(tests))
	for i, t := range tests {
		summaries[i] = model.TestSummary{
			ID:            t.ID,
			Title:         t.Title,
			StartTime:     t.StartTime,
			EndTime:       t.EndTime,
			QuestionCount: len(t.Questions),
			Window:        t.Window(now),
		}
	}
	return summaries, nil
}

// GetByID returns one test with its full question list.
func (s *TestService) GetByID(ctx context.Context, id uuid.UUID) (*model.Test, error) {
	return s.repo.GetByID(ctx, id)
}

// Create schedules a new test from the creation payload. The window opens at
// the combined start date and time and closes a fixed duration later. The
// questions text must parse to at least one question.
func (s *TestService) Create(ctx context.Context, req *model.CreateTestRequest) (*model.Test, error) {
	start, err := time.ParseInLocation("2006-01-02 15:04", req.StartDate+" "+req.StartTime, time.Local)
	if err != nil {
		return nil, ErrInvalidStartTime
	}

	questions := ParseManualQuestions(req.QuestionsText)
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	test := &model.Test{
		ID:        uuid.New(),
		Title:     req.Title,
		StartTime: start,
		EndTime:   start.Add(s.cfg.TestWindowDuration),
		Questions: questions,
		CreatedAt: time.Now(),
	}

	if err := s.repo.Add(ctx, test); err != nil {
		return nil, fmt.Errorf("add test: %w", err)
	}

	s.log.Info().
		Str("test_id", test.ID.String()).
		Str("title", test.Title).
		Int("questions", len(test.Questions)).
		Time("start_time", test.StartTime).
		Msg("Test created")

	return test, nil
}
