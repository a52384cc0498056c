package repository

import (
	"time"

	"github.com/google/uuid"

	"github.com/cetprep/cetprep-backend/internal/model"
)

// sampleQuestions returns the standard six-question MHT-CET sample paper,
// three Physics & Chemistry and three Mathematics questions.
func sampleQuestions() []model.Question {
	return []model.Question{
		{
			ID:            uuid.New(),
			Text:          "Which of the following is a dimensionally correct equation?",
			Options:       []string{"v = u + at", "v^2 = u^2 + 2as^2", "s = ut + (1/2)at^3", "All of the above"},
			CorrectAnswer: "v = u + at",
			Section:       model.SectionPhysicsChemistry,
		},
		{
			ID:            uuid.New(),
			Text:          "The pH of a neutral solution is:",
			Options:       []string{"0", "7", "14", "1"},
			CorrectAnswer: "7",
			Section:       model.SectionPhysicsChemistry,
		},
		{
			ID:            uuid.New(),
			Text:          "What is the chemical formula for water?",
			Options:       []string{"H2O2", "CO2", "H2O", "NaCl"},
			CorrectAnswer: "H2O",
			Section:       model.SectionPhysicsChemistry,
		},
		{
			ID:            uuid.New(),
			Text:          "What is the derivative of x^2?",
			Options:       []string{"2x", "x", "x^3/3", "2"},
			CorrectAnswer: "2x",
			Section:       model.SectionMathematics,
		},
		{
			ID:            uuid.New(),
			Text:          "The integral of cos(x) is:",
			Options:       []string{"-sin(x)", "sin(x)", "cos(x)", "-cos(x)"},
			CorrectAnswer: "sin(x)",
			Section:       model.SectionMathematics,
		},
		{
			ID:            uuid.New(),
			Text:          "If a matrix A has m rows and n columns, its order is:",
			Options:       []string{"n x m", "m + n", "m x n", "m - n"},
			CorrectAnswer: "m x n",
			Section:       model.SectionMathematics,
		},
	}
}

// SeedTests builds the demo catalog relative to now: one active mock test,
// one scheduled for tomorrow and one already finished. Ordered newest-added
// first to match the store's prepend discipline.
func SeedTests(now time.Time) []model.Test {
	return []model.Test{
		{
			ID:        uuid.New(),
			Title:     "MHT-CET Mock Test 1",
			StartTime: now.Add(-90 * time.Minute),
			EndTime:   now.Add(90 * time.Minute),
			Questions: sampleQuestions(),
			CreatedAt: now,
		},
		{
			ID:        uuid.New(),
			Title:     "Full Length Practice Test",
			StartTime: now.Add(24 * time.Hour),
			EndTime:   now.Add(27 * time.Hour),
			Questions: sampleQuestions(),
			CreatedAt: now.Add(-time.Minute),
		},
		{
			ID:        uuid.New(),
			Title:     "Previous Year Paper (2023)",
			StartTime: now.Add(-48 * time.Hour),
			EndTime:   now.Add(-45 * time.Hour),
			Questions: sampleQuestions(),
			CreatedAt: now.Add(-2 * time.Minute),
		},
	}
}
