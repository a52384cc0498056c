package exam

import (
	"errors"

	"github.com/cetprep/cetprep-backend/internal/model"
)

// Domain Errors
var (
	// ErrSubmitted is returned by Submit on an engine that already produced
	// its result.
	ErrSubmitted = errors.New("attempt already submitted")
)

// Engine is the exam-taking state machine for a single attempt. It owns the
// navigation position, the answer map and the review set for the lifetime of
// the attempt; Submit is its single terminal transition.
//
// The engine is transport-free and not safe for concurrent use — the caller
// serializes access, mirroring the single event loop the exam interface
// runs on.
type Engine struct {
	test          *model.Test
	activeSection model.Section
	index         int
	answers       model.AnswerMap
	marked        map[string]struct{}
	submitted     bool
}

// NewEngine creates an engine positioned at the first question of the first
// section, with nothing answered and nothing marked.
func NewEngine(t *model.Test) *Engine {
	return &Engine{
		test:          t,
		activeSection: model.Sections()[0],
		answers:       make(model.AnswerMap),
		marked:        make(map[string]struct{}),
	}
}

// Test returns the test this engine runs.
func (e *Engine) Test() *model.Test { return e.test }

// ActiveSection returns the currently selected section.
func (e *Engine) ActiveSection() model.Section { return e.activeSection }

// CurrentIndex returns the question index within the active section.
func (e *Engine) CurrentIndex() int { return e.index }

// Submitted reports whether the terminal transition has happened.
func (e *Engine) Submitted() bool { return e.submitted }

// SectionQuestions returns the active section's question list in order.
func (e *Engine) SectionQuestions() []model.Question {
	return e.test.SectionQuestions(e.activeSection)
}

// Current returns the question at the navigation position. ok is false when
// the active section has no questions.
func (e *Engine) Current() (model.Question, bool) {
	qs := e.SectionQuestions()
	if e.index < 0 || e.index >= len(qs) {
		return model.Question{}, false
	}
	return qs[e.index], true
}

// SelectSection switches the active section and resets the position to the
// section's first question. Per-section question lists have independent
// indexing, so no position carries across.
func (e *Engine) SelectSection(s model.Section) {
	if e.submitted {
		return
	}
	e.activeSection = s
	e.index = 0
}

// Next advances within the active section. No-op at the last index: the
// position never wraps and never crosses into the other section.
func (e *Engine) Next() {
	if e.submitted {
		return
	}
	if e.index < len(e.SectionQuestions())-1 {
		e.index++
	}
}

// Previous steps back within the active section. No-op at index 0.
func (e *Engine) Previous() {
	if e.submitted {
		return
	}
	if e.index > 0 {
		e.index--
	}
}

// SelectQuestion jumps straight to an index within the active section, the
// palette's navigation action. Out-of-range indices are ignored.
func (e *Engine) SelectQuestion(i int) {
	if e.submitted {
		return
	}
	if i >= 0 && i < len(e.SectionQuestions()) {
		e.index = i
	}
}

// SetAnswer records value as the answer to the currently displayed question,
// overwriting any prior answer. No-op when the active section is empty.
func (e *Engine) SetAnswer(value string) {
	if e.submitted {
		return
	}
	q, ok := e.Current()
	if !ok {
		return
	}
	e.answers[q.ID.String()] = value
}

// ClearAnswer removes the answer entry for the currently displayed question.
// No-op if unattempted or the section is empty.
func (e *Engine) ClearAnswer() {
	if e.submitted {
		return
	}
	q, ok := e.Current()
	if !ok {
		return
	}
	delete(e.answers, q.ID.String())
}

// ToggleReview flips the current question's membership in the review set and
// then advances like Next. Marking couples with moving on; at the section
// boundary the advance is a no-op but the mark still flips.
func (e *Engine) ToggleReview() {
	if e.submitted {
		return
	}
	q, ok := e.Current()
	if !ok {
		return
	}
	id := q.ID.String()
	if _, marked := e.marked[id]; marked {
		delete(e.marked, id)
	} else {
		e.marked[id] = struct{}{}
	}
	e.Next()
}

// Answers returns a copy of the answer map.
func (e *Engine) Answers() model.AnswerMap {
	out := make(model.AnswerMap, len(e.answers))
	for k, v := range e.answers {
		out[k] = v
	}
	return out
}

// StatusOf derives the palette status of one question.
func (e *Engine) StatusOf(q model.Question) model.QuestionStatus {
	return ComputeStatus(e.answers, e.marked, q.ID.String())
}

// Statuses derives the palette status for every question in the test, not
// just the active section, so a section switch reflects state immediately.
func (e *Engine) Statuses() map[string]model.QuestionStatus {
	return StatusMap(e.test.Questions, e.answers, e.marked)
}

// Progress returns the answered share of the whole test as a percentage.
// Unrounded; the progress bar renders it as given.
func (e *Engine) Progress() float64 {
	total := len(e.test.Questions)
	if total == 0 {
		return 0
	}
	return float64(len(e.answers)) / float64(total) * 100
}

// Submit performs the terminal transition: it grades the full question list,
// builds the immutable result and discards the engine's mutable state. Every
// later operation is a no-op and a second Submit returns ErrSubmitted.
func (e *Engine) Submit() (*model.Result, error) {
	if e.submitted {
		return nil, ErrSubmitted
	}

	correct, attempted, score := Score(e.test.Questions, e.answers)

	questions := make([]model.Question, len(e.test.Questions))
	copy(questions, e.test.Questions)

	result := &model.Result{
		TestID:         e.test.ID,
		TestTitle:      e.test.Title,
		Score:          score,
		TotalQuestions: len(e.test.Questions),
		CorrectAnswers: correct,
		Attempted:      attempted,
		Answers:        e.Answers(),
		Questions:      questions,
	}

	e.submitted = true
	e.answers = nil
	e.marked = nil

	return result, nil
}
