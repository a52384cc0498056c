package exam

import "github.com/cetprep/cetprep-backend/internal/model"

// ComputeStatus derives a question's palette status purely from the answer
// map and the review set. A question can be both answered and marked.
func ComputeStatus(answers model.AnswerMap, marked map[string]struct{}, questionID string) model.QuestionStatus {
	_, answered := answers[questionID]
	_, inReview := marked[questionID]

	switch {
	case answered && inReview:
		return model.StatusAnsweredReview
	case inReview:
		return model.StatusReview
	case answered:
		return model.StatusAnswered
	default:
		return model.StatusUnanswered
	}
}

// StatusMap derives statuses for a question list in one pass.
func StatusMap(questions []model.Question, answers model.AnswerMap, marked map[string]struct{}) map[string]model.QuestionStatus {
	statuses := make(map[string]model.QuestionStatus, len(questions))
	for _, q := range questions {
		id := q.ID.String()
		statuses[id] = ComputeStatus(answers, marked, id)
	}
	return statuses
}
