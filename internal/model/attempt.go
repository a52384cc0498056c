package model

import (
	"time"

	"github.com/google/uuid"
)

// AttemptArchive is the durable record of a submitted attempt, queued for
// asynchronous persistence after the submission response has been sent.
type AttemptArchive struct {
	AttemptID      uuid.UUID `json:"attempt_id"`
	TestID         uuid.UUID `json:"test_id"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	CorrectAnswers int       `json:"correct_answers"`
	Attempted      int       `json:"attempted"`
	SubmittedAt    time.Time `json:"submitted_at"`
	Answers        AnswerMap `json:"answers"`
}
