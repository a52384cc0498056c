package exam

import (
	"math"

	"github.com/cetprep/cetprep-backend/internal/model"
)

// Score grades an answer map against a question list. correct counts strict
// string matches against each question's answer key, attempted counts
// distinct recorded answers, and score is the integer percentage rounded
// half away from zero. An empty question list scores 0.
func Score(questions []model.Question, answers model.AnswerMap) (correct, attempted, score int) {
	for _, q := range questions {
		if got, ok := answers[q.ID.String()]; ok && got == q.CorrectAnswer {
			correct++
		}
	}
	attempted = len(answers)

	if len(questions) == 0 {
		return correct, attempted, 0
	}
	score = int(math.Round(float64(correct) / float64(len(questions)) * 100))
	return correct, attempted, score
}
