package model

import (
	"github.com/google/uuid"
)

// AnswerMap maps a question ID to the selected option string. A question
// with no entry is unattempted.
type AnswerMap map[string]string

// QuestionStatus is the derived palette state of a single question.
type QuestionStatus string

const (
	StatusUnanswered     QuestionStatus = "unanswered"
	StatusAnswered       QuestionStatus = "answered"
	StatusReview         QuestionStatus = "review"
	StatusAnsweredReview QuestionStatus = "answered-review"
)

// Result is the persisted outcome of one completed attempt. Created exactly
// once at submission and never mutated afterwards.
type Result struct {
	TestID         uuid.UUID  `json:"test_id"`
	TestTitle      string     `json:"test_title"`
	Score          int        `json:"score"`
	TotalQuestions int        `json:"total_questions"`
	CorrectAnswers int        `json:"correct_answers"`
	Attempted      int        `json:"attempted"`
	Answers        AnswerMap  `json:"answers"`
	Questions      []Question `json:"questions"`
}

// QuestionReview is one line of the per-question results breakdown.
type QuestionReview struct {
	Number        int    `json:"number"`
	Text          string `json:"text"`
	Attempted     bool   `json:"attempted"`
	YourAnswer    string `json:"your_answer,omitempty"`
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correct_answer"`
}

// ResultBreakdown is the results view: the stored result plus derived counts
// and per-question review lines.
type ResultBreakdown struct {
	TestID           uuid.UUID        `json:"test_id"`
	TestTitle        string           `json:"test_title"`
	Score            int              `json:"score"`
	TotalQuestions   int              `json:"total_questions"`
	CorrectAnswers   int              `json:"correct_answers"`
	IncorrectAnswers int              `json:"incorrect_answers"`
	Attempted        int              `json:"attempted"`
	Unattempted      int              `json:"unattempted"`
	Review           []QuestionReview `json:"review"`
}
