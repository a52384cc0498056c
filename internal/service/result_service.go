package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/cetprep/cetprep-backend/internal/model"
	"github.com/cetprep/cetprep-backend/internal/repository"
)

// ResultService serves the results view for submitted tests.
type ResultService struct {
	results repository.ResultStore
}

// NewResultService creates a new ResultService.
func NewResultService(results repository.ResultStore) *ResultService {
	return &ResultService{results: results}
}

// Get reads a test's stored result and derives the breakdown: score card
// counts plus one review line per question in paper order.
func (s *ResultService) Get(ctx context.Context, testID uuid.UUID) (*model.ResultBreakdown, error) {
	r, err := s.results.Get(ctx, testID)
	if err != nil {
		return nil, err
	}

	review := make([]model.QuestionReview, len(r.Questions))
	for i, q := range r.Questions {
		answer, attempted := r.Answers[q.ID.String()]
		review[i] = model.QuestionReview{
			Number:        i + 1,
			Text:          q.Text,
			Attempted:     attempted,
			YourAnswer:    answer,
			Correct:       attempted && answer == q.CorrectAnswer,
			CorrectAnswer: q.CorrectAnswer,
		}
	}

	return &model.ResultBreakdown{
		TestID:           r.TestID,
		TestTitle:        r.TestTitle,
		Score:            r.Score,
		TotalQuestions:   r.TotalQuestions,
		CorrectAnswers:   r.CorrectAnswers,
		IncorrectAnswers: r.Attempted - r.CorrectAnswers,
		Attempted:        r.Attempted,
		Unattempted:      r.TotalQuestions - r.Attempted,
		Review:           review,
	}, nil
}
