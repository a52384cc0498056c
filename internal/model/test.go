package model

import (
	"time"

	"github.com/google/uuid"
)

// Section is one of the two fixed subject groupings partitioning a test's
// questions.
type Section string

const (
	SectionPhysicsChemistry Section = "Physics & Chemistry"
	SectionMathematics      Section = "Mathematics"
)

// Sections returns the fixed section ordering used by the exam interface.
// The first element is the initial active section of every attempt.
func Sections() []Section {
	return []Section{SectionPhysicsChemistry, SectionMathematics}
}

// ParseSection maps a raw string onto a known section. Anything that is not
// exactly "Mathematics" falls back to Physics & Chemistry, matching the
// authoring format's forgiving behavior.
func ParseSection(raw string) Section {
	if Section(raw) == SectionMathematics {
		return SectionMathematics
	}
	return SectionPhysicsChemistry
}

// ValidSection reports whether raw names one of the two fixed sections.
func ValidSection(raw string) bool {
	s := Section(raw)
	return s == SectionPhysicsChemistry || s == SectionMathematics
}

// Question is a single multiple-choice question.
type Question struct {
	ID            uuid.UUID `json:"id"`
	Text          string    `json:"text"`
	Options       []string  `json:"options"`
	CorrectAnswer string    `json:"correct_answer"`
	Section       Section   `json:"section"`
}

// Test is a scheduled practice exam. Immutable once created.
type Test struct {
	ID        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	StartTime time.Time  `json:"start_time"`
	EndTime   time.Time  `json:"end_time"`
	Questions []Question `json:"questions"`
	CreatedAt time.Time  `json:"created_at"`
}

// SectionQuestions returns the test's questions belonging to one section,
// preserving their order within the test.
func (t *Test) SectionQuestions(s Section) []Question {
	var qs []Question
	for _, q := range t.Questions {
		if q.Section == s {
			qs = append(qs, q)
		}
	}
	return qs
}

// WindowStatus classifies a test's schedule relative to the current time.
type WindowStatus string

const (
	WindowActive   WindowStatus = "ACTIVE"
	WindowUpcoming WindowStatus = "UPCOMING"
	WindowFinished WindowStatus = "FINISHED"
)

// Window returns the test's status at the given instant. The window is
// half-open: entry is allowed in [StartTime, EndTime).
func (t *Test) Window(now time.Time) WindowStatus {
	switch {
	case now.Before(t.StartTime):
		return WindowUpcoming
	case !now.Before(t.EndTime):
		return WindowFinished
	default:
		return WindowActive
	}
}

// TestSummary is a dashboard row: schedule plus window status, no questions.
type TestSummary struct {
	ID            uuid.UUID    `json:"id"`
	Title         string       `json:"title"`
	StartTime     time.Time    `json:"start_time"`
	EndTime       time.Time    `json:"end_time"`
	QuestionCount int          `json:"question_count"`
	Window        WindowStatus `json:"window"`
}

// PaperQuestion is a question as sent to a candidate: no correct answer.
type PaperQuestion struct {
	ID      uuid.UUID `json:"id"`
	Text    string    `json:"text"`
	Options []string  `json:"options"`
	Section Section   `json:"section"`
}

// Paper is the candidate-facing view of a test.
type Paper struct {
	TestID    uuid.UUID       `json:"test_id"`
	Title     string          `json:"title"`
	EndTime   time.Time       `json:"end_time"`
	Questions []PaperQuestion `json:"questions"`
}

// PaperFromTest strips correct answers from a test's questions.
func PaperFromTest(t *Test) *Paper {
	qs := make([]PaperQuestion, len(t.Questions))
	for i, q := range t.Questions {
		qs[i] = PaperQuestion{
			ID:      q.ID,
			Text:    q.Text,
			Options: q.Options,
			Section: q.Section,
		}
	}
	return &Paper{
		TestID:    t.ID,
		Title:     t.Title,
		EndTime:   t.EndTime,
		Questions: qs,
	}
}

// CreateTestRequest is the payload for creating a new test. The questions
// arrive in the manual text authoring format.
type CreateTestRequest struct {
	Title         string `json:"title" binding:"required,min=5,max=255"`
	StartDate     string `json:"start_date" binding:"required,datetime=2006-01-02"`
	StartTime     string `json:"start_time" binding:"required,hhmm"`
	QuestionsText string `json:"questions_text" binding:"required"`
}
