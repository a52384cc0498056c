package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/cetprep/cetprep-backend/internal/config"
	"github.com/cetprep/cetprep-backend/internal/exam"
	"github.com/cetprep/cetprep-backend/internal/model"
	"github.com/cetprep/cetprep-backend/internal/repository"
)

// Attempt lifecycle errors.
var (
	ErrTestNotStarted  = errors.New("test has not started yet")
	ErrTestFinished    = errors.New("test window has closed")
	ErrAttemptNotFound = errors.New("attempt not found")
	ErrInvalidSection  = errors.New("unknown section")
)

// attempt is one live exam run: the engine plus its countdown. The mutex
// serializes every engine operation, standing in for the single event loop
// the exam interface runs on.
type attempt struct {
	id        uuid.UUID
	testID    uuid.UUID
	engine    *exam.Engine
	countdown *exam.Countdown
	cancel    context.CancelFunc
	mu        sync.Mutex
}

// StartedAttempt is the response to starting an attempt: the capability
// token, the sanitized paper and the initial countdown reading.
type StartedAttempt struct {
	AttemptID uuid.UUID     `json:"attempt_id"`
	Token     string        `json:"token"`
	Deadline  time.Time     `json:"deadline"`
	Timer     exam.Snapshot `json:"timer"`
	Paper     *model.Paper  `json:"paper"`
}

// AttemptState is the full view of a live attempt after an operation: the
// navigation position, the displayed question, palette statuses, progress
// and the countdown reading.
type AttemptState struct {
	AttemptID       uuid.UUID                       `json:"attempt_id"`
	TestID          uuid.UUID                       `json:"test_id"`
	ActiveSection   model.Section                   `json:"active_section"`
	QuestionIndex   int                             `json:"question_index"`
	SectionSize     int                             `json:"section_size"`
	Question        *model.PaperQuestion            `json:"question,omitempty"`
	SelectedAnswer  string                          `json:"selected_answer,omitempty"`
	MarkedForReview bool                            `json:"marked_for_review"`
	Statuses        map[string]model.QuestionStatus `json:"statuses"`
	Progress        float64                         `json:"progress"`
	Timer           exam.Snapshot                   `json:"timer"`
}

// AttemptService owns every live attempt. Attempts exist only in process
// memory; submission moves their outcome into the result store and drops
// them.
type AttemptService struct {
	tests   repository.TestRepository
	results repository.ResultStore
	tokens  *TokenService
	rdb     *redis.Client
	cfg     *config.Config
	log     zerolog.Logger

	mu       sync.RWMutex
	attempts map[uuid.UUID]*attempt
}

// NewAttemptService creates a new AttemptService. rdb may be nil, which
// disables the archive queue and the deadline cache but nothing else.
func NewAttemptService(
	tests repository.TestRepository,
	results repository.ResultStore,
	tokens *TokenService,
	rdb *redis.Client,
	cfg *config.Config,
	log zerolog.Logger,
) *AttemptService {
	return &AttemptService{
		tests:    tests,
		results:  results,
		tokens:   tokens,
		rdb:      rdb,
		cfg:      cfg,
		log:      log,
		attempts: make(map[uuid.UUID]*attempt),
	}
}

// Start opens a new attempt on a test. The test window must be active and the
// test must carry at least one question. The attempt's deadline is the test's
// window end; a countdown goroutine auto-submits when it is reached.
func (s *AttemptService) Start(ctx context.Context, testID uuid.UUID) (*StartedAttempt, error) {
	test, err := s.tests.GetByID(ctx, testID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	switch test.Window(now) {
	case model.WindowUpcoming:
		return nil, ErrTestNotStarted
	case model.WindowFinished:
		return nil, ErrTestFinished
	}
	if len(test.Questions) == 0 {
		return nil, ErrNoQuestions
	}

	attemptID := uuid.New()
	deadline := test.EndTime

	token, err := s.tokens.GenerateAttemptToken(attemptID, testID, deadline)
	if err != nil {
		return nil, fmt.Errorf("generate attempt token: %w", err)
	}

	countdown := exam.NewCountdown(deadline, s.cfg.LowTimeThreshold, 0)
	timerCtx, cancel := context.WithCancel(context.Background())

	a := &attempt{
		id:        attemptID,
		testID:    testID,
		engine:    exam.NewEngine(test),
		countdown: countdown,
		cancel:    cancel,
	}

	s.mu.Lock()
	s.attempts[attemptID] = a
	s.mu.Unlock()

	go countdown.Run(timerCtx, nil, func() {
		s.autoSubmit(attemptID)
	})

	s.cacheDeadline(ctx, attemptID, deadline)

	s.log.Info().
		Str("attempt_id", attemptID.String()).
		Str("test_id", testID.String()).
		Time("deadline", deadline).
		Msg("Attempt started")

	return &StartedAttempt{
		AttemptID: attemptID,
		Token:     token,
		Deadline:  deadline,
		Timer:     countdown.Snapshot(now),
		Paper:     model.PaperFromTest(test),
	}, nil
}

// cacheDeadline mirrors the attempt deadline into Redis so operators can
// inspect live attempts. Best-effort.
func (s *AttemptService) cacheDeadline(ctx context.Context, attemptID uuid.UUID, deadline time.Time) {
	if s.rdb == nil {
		return
	}
	key := config.StoreKey.AttemptDeadlineKey(attemptID.String())
	ttl := time.Until(deadline.Add(s.cfg.AttemptTokenGrace))
	if err := s.rdb.Set(ctx, key, deadline.Format(time.RFC3339), ttl).Err(); err != nil {
		s.log.Warn().Err(err).Str("attempt_id", attemptID.String()).Msg("Failed to cache attempt deadline")
	}
}

// get looks up a live attempt.
func (s *AttemptService) get(attemptID uuid.UUID) (*attempt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.attempts[attemptID]
	if !ok {
		return nil, ErrAttemptNotFound
	}
	return a, nil
}

// apply runs one engine operation under the attempt's lock and returns the
// resulting state view.
func (s *AttemptService) apply(attemptID uuid.UUID, op func(e *exam.Engine)) (*AttemptState, error) {
	a, err := s.get(attemptID)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if op != nil {
		op(a.engine)
	}
	return s.stateLocked(a), nil
}

// stateLocked builds the state view. Caller holds a.mu.
func (s *AttemptService) stateLocked(a *attempt) *AttemptState {
	e := a.engine
	state := &AttemptState{
		AttemptID:     a.id,
		TestID:        a.testID,
		ActiveSection: e.ActiveSection(),
		QuestionIndex: e.CurrentIndex(),
		SectionSize:   len(e.SectionQuestions()),
		Statuses:      e.Statuses(),
		Progress:      e.Progress(),
		Timer:         a.countdown.Snapshot(time.Now()),
	}

	if q, ok := e.Current(); ok {
		state.Question = &model.PaperQuestion{
			ID:      q.ID,
			Text:    q.Text,
			Options: q.Options,
			Section: q.Section,
		}
		answers := e.Answers()
		state.SelectedAnswer = answers[q.ID.String()]
		st := e.StatusOf(q)
		state.MarkedForReview = st == model.StatusReview || st == model.StatusAnsweredReview
	}

	return state
}

// State returns the current view of an attempt without mutating it.
func (s *AttemptService) State(attemptID uuid.UUID) (*AttemptState, error) {
	return s.apply(attemptID, nil)
}

// SelectSection switches the active section, resetting the position to the
// section's first question.
func (s *AttemptService) SelectSection(attemptID uuid.UUID, section string) (*AttemptState, error) {
	if !model.ValidSection(section) {
		return nil, ErrInvalidSection
	}
	return s.apply(attemptID, func(e *exam.Engine) {
		e.SelectSection(model.Section(section))
	})
}

// Next advances to the next question within the active section.
func (s *AttemptService) Next(attemptID uuid.UUID) (*AttemptState, error) {
	return s.apply(attemptID, func(e *exam.Engine) { e.Next() })
}

// Previous steps back within the active section.
func (s *AttemptService) Previous(attemptID uuid.UUID) (*AttemptState, error) {
	return s.apply(attemptID, func(e *exam.Engine) { e.Previous() })
}

// SelectQuestion jumps to a question index within the active section.
func (s *AttemptService) SelectQuestion(attemptID uuid.UUID, index int) (*AttemptState, error) {
	return s.apply(attemptID, func(e *exam.Engine) { e.SelectQuestion(index) })
}

// Answer records an option for the currently displayed question.
func (s *AttemptService) Answer(attemptID uuid.UUID, option string) (*AttemptState, error) {
	return s.apply(attemptID, func(e *exam.Engine) { e.SetAnswer(option) })
}

// ClearAnswer removes the current question's answer.
func (s *AttemptService) ClearAnswer(attemptID uuid.UUID) (*AttemptState, error) {
	return s.apply(attemptID, func(e *exam.Engine) { e.ClearAnswer() })
}

// ToggleReview flips the current question's review mark and advances.
func (s *AttemptService) ToggleReview(attemptID uuid.UUID) (*AttemptState, error) {
	return s.apply(attemptID, func(e *exam.Engine) { e.ToggleReview() })
}

// Deadline returns the attempt's absolute deadline.
func (s *AttemptService) Deadline(attemptID uuid.UUID) (time.Time, error) {
	a, err := s.get(attemptID)
	if err != nil {
		return time.Time{}, err
	}
	return a.countdown.Deadline(), nil
}

// TimerSnapshot returns the attempt's current countdown reading.
func (s *AttemptService) TimerSnapshot(attemptID uuid.UUID) (exam.Snapshot, error) {
	a, err := s.get(attemptID)
	if err != nil {
		return exam.Snapshot{}, err
	}
	return a.countdown.Snapshot(time.Now()), nil
}

// Submit performs the terminal transition of an attempt: grade, store the
// result, queue the archive record, stop the countdown and drop the attempt.
// Storage failures are logged and swallowed so the candidate still receives
// their graded result.
func (s *AttemptService) Submit(ctx context.Context, attemptID uuid.UUID) (*model.Result, error) {
	a, err := s.get(attemptID)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	result, err := a.engine.Submit()
	a.mu.Unlock()
	if err != nil {
		return nil, err
	}

	if err := s.results.Save(ctx, result); err != nil {
		s.log.Warn().Err(err).
			Str("attempt_id", attemptID.String()).
			Str("test_id", result.TestID.String()).
			Msg("Failed to store result, continuing with in-memory copy")
	}

	s.enqueueArchive(ctx, attemptID, result)

	a.cancel()
	s.mu.Lock()
	delete(s.attempts, attemptID)
	s.mu.Unlock()

	s.log.Info().
		Str("attempt_id", attemptID.String()).
		Str("test_id", result.TestID.String()).
		Int("score", result.Score).
		Int("attempted", result.Attempted).
		Msg("Attempt submitted")

	return result, nil
}

// autoSubmit is the countdown expiry path. Races with a manual submit are
// benign: whichever runs second finds the attempt gone or already submitted.
func (s *AttemptService) autoSubmit(attemptID uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := s.Submit(ctx, attemptID)
	if err != nil {
		if !errors.Is(err, ErrAttemptNotFound) && !errors.Is(err, exam.ErrSubmitted) {
			s.log.Error().Err(err).Str("attempt_id", attemptID.String()).Msg("Auto-submit failed")
		}
		return
	}

	s.log.Info().
		Str("attempt_id", attemptID.String()).
		Int("score", result.Score).
		Msg("Attempt auto-submitted at deadline")
}

// enqueueArchive pushes the submitted attempt onto the persistence queue for
// the archive worker. Best-effort; skipped entirely without Redis.
func (s *AttemptService) enqueueArchive(ctx context.Context, attemptID uuid.UUID, r *model.Result) {
	if s.rdb == nil {
		return
	}

	archive := model.AttemptArchive{
		AttemptID:      attemptID,
		TestID:         r.TestID,
		Score:          r.Score,
		TotalQuestions: r.TotalQuestions,
		CorrectAnswers: r.CorrectAnswers,
		Attempted:      r.Attempted,
		SubmittedAt:    time.Now(),
		Answers:        r.Answers,
	}

	payload, err := json.Marshal(archive)
	if err != nil {
		s.log.Error().Err(err).Str("attempt_id", attemptID.String()).Msg("Failed to marshal attempt archive")
		return
	}
	if err := s.rdb.RPush(ctx, config.WorkerKey.PersistResultsQueue, payload).Err(); err != nil {
		s.log.Warn().Err(err).Str("attempt_id", attemptID.String()).Msg("Failed to enqueue attempt archive")
	}
}

// Shutdown cancels every live countdown. Live attempts are abandoned, not
// submitted: an unfinished attempt has no result.
func (s *AttemptService) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, a := range s.attempts {
		a.cancel()
		delete(s.attempts, id)
	}
}
