package exam

import (
	"testing"

	"github.com/google/uuid"

	"github.com/cetprep/cetprep-backend/internal/model"
)

func questionsWithKeys(keys ...string) []model.Question {
	qs := make([]model.Question, len(keys))
	for i, k := range keys {
		qs[i] = model.Question{
			ID:            uuid.New(),
			Text:          "q",
			Options:       []string{"A", "B", "C", "D"},
			CorrectAnswer: k,
			Section:       model.SectionPhysicsChemistry,
		}
	}
	return qs
}

func TestScore(t *testing.T) {
	tests := []struct {
		name          string
		keys          []string
		given         []string // given[i] answers questions[i]; "" = unattempted
		wantCorrect   int
		wantAttempted int
		wantScore     int
	}{
		{name: "all correct", keys: []string{"A", "B"}, given: []string{"A", "B"}, wantCorrect: 2, wantAttempted: 2, wantScore: 100},
		{name: "none attempted", keys: []string{"A", "B"}, given: []string{"", ""}, wantCorrect: 0, wantAttempted: 0, wantScore: 0},
		{name: "four of six rounds up", keys: []string{"A", "A", "A", "A", "A", "A"}, given: []string{"A", "A", "A", "A", "B", ""}, wantCorrect: 4, wantAttempted: 5, wantScore: 67},
		{name: "one of eight rounds half up", keys: []string{"A", "A", "A", "A", "A", "A", "A", "A"}, given: []string{"A", "", "", "", "", "", "", ""}, wantCorrect: 1, wantAttempted: 1, wantScore: 13},
		{name: "one of three rounds down", keys: []string{"A", "A", "A"}, given: []string{"A", "B", "B"}, wantCorrect: 1, wantAttempted: 3, wantScore: 33},
		{name: "strict string equality", keys: []string{"2x"}, given: []string{"2X"}, wantCorrect: 0, wantAttempted: 1, wantScore: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			qs := questionsWithKeys(tc.keys...)
			answers := make(model.AnswerMap)
			for i, a := range tc.given {
				if a != "" {
					answers[qs[i].ID.String()] = a
				}
			}

			correct, attempted, score := Score(qs, answers)
			if correct != tc.wantCorrect {
				t.Errorf("correct = %d, want %d", correct, tc.wantCorrect)
			}
			if attempted != tc.wantAttempted {
				t.Errorf("attempted = %d, want %d", attempted, tc.wantAttempted)
			}
			if score != tc.wantScore {
				t.Errorf("score = %d, want %d", score, tc.wantScore)
			}
		})
	}
}

func TestScoreNoQuestions(t *testing.T) {
	correct, attempted, score := Score(nil, model.AnswerMap{"ghost": "A"})
	if score != 0 {
		t.Errorf("score with zero questions = %d, want 0", score)
	}
	if correct != 0 {
		t.Errorf("correct = %d, want 0", correct)
	}
	if attempted != 1 {
		t.Errorf("attempted = %d, want 1", attempted)
	}
}
