package exam

import (
	"testing"

	"github.com/cetprep/cetprep-backend/internal/model"
)

func TestComputeStatus(t *testing.T) {
	answers := model.AnswerMap{"q1": "A", "q3": "B"}
	marked := map[string]struct{}{"q2": {}, "q3": {}}

	tests := []struct {
		qid  string
		want model.QuestionStatus
	}{
		{"q1", model.StatusAnswered},
		{"q2", model.StatusReview},
		{"q3", model.StatusAnsweredReview},
		{"q4", model.StatusUnanswered},
	}

	for _, tc := range tests {
		if got := ComputeStatus(answers, marked, tc.qid); got != tc.want {
			t.Errorf("ComputeStatus(%s) = %q, want %q", tc.qid, got, tc.want)
		}
	}
}

func TestComputeStatusIsPure(t *testing.T) {
	answers := model.AnswerMap{"q1": "A"}
	marked := map[string]struct{}{"q1": {}}

	first := ComputeStatus(answers, marked, "q1")
	second := ComputeStatus(answers, marked, "q1")
	if first != second {
		t.Errorf("identical inputs produced %q then %q", first, second)
	}
	if len(answers) != 1 || len(marked) != 1 {
		t.Error("ComputeStatus mutated its inputs")
	}
}
