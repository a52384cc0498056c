package service

import (
	"testing"

	"github.com/cetprep/cetprep-backend/internal/model"
)

const sampleQuestionText = `Q1. What is the value of g on Earth?
A) 9.8 m/s²
B) 8.9 m/s²
C) 10.8 m/s²
D) 9.2 m/s²
Answer: A
Section: Physics & Chemistry
---
Q2. What is the integral of 2x?
A) x²
B) 2x²
C) x² + C
D) 2x + C
answer: C
section: Mathematics
---
Q3. The pH of a neutral solution is:
A) 0
B) 7
C) 14
D) 1
Answer: 7
`

func TestParseManualQuestions(t *testing.T) {
	qs := ParseManualQuestions(sampleQuestionText)
	if len(qs) != 3 {
		t.Fatalf("parsed %d questions, want 3", len(qs))
	}

	q := qs[0]
	if q.Text != "What is the value of g on Earth?" {
		t.Errorf("text = %q, numbering prefix not stripped", q.Text)
	}
	if len(q.Options) != 4 || q.Options[0] != "9.8 m/s²" {
		t.Errorf("options = %v", q.Options)
	}
	// "Answer: A" prefix-matches no option here, so the raw value is kept.
	if q.CorrectAnswer != "A" {
		t.Errorf("correct answer = %q, want raw %q", q.CorrectAnswer, "A")
	}
	if q.Section != model.SectionPhysicsChemistry {
		t.Errorf("section = %q", q.Section)
	}

	// Labels are matched case-insensitively.
	if qs[1].Section != model.SectionMathematics {
		t.Errorf("section = %q, want Mathematics", qs[1].Section)
	}

	// "Answer: 7" is a prefix of the option "7".
	if qs[2].CorrectAnswer != "7" {
		t.Errorf("correct answer = %q, want %q", qs[2].CorrectAnswer, "7")
	}
	// A missing Section line falls back to Physics & Chemistry.
	if qs[2].Section != model.SectionPhysicsChemistry {
		t.Errorf("section = %q, want fallback", qs[2].Section)
	}
}

func TestParseManualQuestionsAnswerPrefixMatch(t *testing.T) {
	qs := ParseManualQuestions(`Q1. Pick one.
A) Momentum
B) Moment of inertia
Answer: Moment
`)
	if len(qs) != 1 {
		t.Fatalf("parsed %d questions, want 1", len(qs))
	}
	// First option winning the prefix match, in authoring order.
	if qs[0].CorrectAnswer != "Momentum" {
		t.Errorf("correct answer = %q, want %q", qs[0].CorrectAnswer, "Momentum")
	}
}

func TestParseManualQuestionsEmptyBlocks(t *testing.T) {
	if qs := ParseManualQuestions(""); len(qs) != 0 {
		t.Errorf("empty input parsed %d questions", len(qs))
	}
	if qs := ParseManualQuestions("---\n   \n---"); len(qs) != 0 {
		t.Errorf("blank blocks parsed %d questions", len(qs))
	}

	qs := ParseManualQuestions("Just a bare line")
	if len(qs) != 1 {
		t.Fatalf("parsed %d questions, want 1", len(qs))
	}
	if qs[0].Text != "Just a bare line" || len(qs[0].Options) != 0 || qs[0].CorrectAnswer != "" {
		t.Errorf("bare block parsed as %+v", qs[0])
	}
}
