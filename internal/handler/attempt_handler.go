package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cetprep/cetprep-backend/internal/exam"
	"github.com/cetprep/cetprep-backend/internal/repository"
	"github.com/cetprep/cetprep-backend/internal/response"
	"github.com/cetprep/cetprep-backend/internal/service"
	"github.com/cetprep/cetprep-backend/internal/validator"
)

// AttemptHandler drives a live attempt: navigation, answering, review marks
// and submission.
type AttemptHandler struct {
	attemptService *service.AttemptService
}

// NewAttemptHandler creates a new AttemptHandler.
func NewAttemptHandler(attemptService *service.AttemptService) *AttemptHandler {
	return &AttemptHandler{attemptService: attemptService}
}

// StartAttemptRequest selects the test to attempt.
type StartAttemptRequest struct {
	TestID string `json:"test_id" binding:"required,uuid"`
}

// AnswerRequest carries the selected option for the current question.
type AnswerRequest struct {
	Option string `json:"option" binding:"required"`
}

// SelectSectionRequest switches the active section.
type SelectSectionRequest struct {
	Section string `json:"section" binding:"required"`
}

// SelectQuestionRequest jumps to a palette position.
type SelectQuestionRequest struct {
	Index *int `json:"index" binding:"required,min=0"`
}

// Start godoc
// POST /api/v1/attempts
func (h *AttemptHandler) Start(c *gin.Context) {
	var req StartAttemptRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	testID, err := uuid.Parse(req.TestID)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	started, err := h.attemptService.Start(c.Request.Context(), testID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrTestNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, service.ErrTestNotStarted):
			response.Fail(c, http.StatusConflict, response.ErrTestNotStarted)
		case errors.Is(err, service.ErrTestFinished):
			response.Fail(c, http.StatusConflict, response.ErrTestFinished)
		case errors.Is(err, service.ErrNoQuestions):
			response.Fail(c, http.StatusConflict, response.ErrNoQuestions)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"attempt": started})
}

// State godoc
// GET /api/v1/attempts/:attempt_id
func (h *AttemptHandler) State(c *gin.Context) {
	h.respondState(c, h.attemptService.State)
}

// Next godoc
// POST /api/v1/attempts/:attempt_id/next
func (h *AttemptHandler) Next(c *gin.Context) {
	h.respondState(c, h.attemptService.Next)
}

// Previous godoc
// POST /api/v1/attempts/:attempt_id/previous
func (h *AttemptHandler) Previous(c *gin.Context) {
	h.respondState(c, h.attemptService.Previous)
}

// ToggleReview godoc
// POST /api/v1/attempts/:attempt_id/review
func (h *AttemptHandler) ToggleReview(c *gin.Context) {
	h.respondState(c, h.attemptService.ToggleReview)
}

// ClearAnswer godoc
// DELETE /api/v1/attempts/:attempt_id/answer
func (h *AttemptHandler) ClearAnswer(c *gin.Context) {
	h.respondState(c, h.attemptService.ClearAnswer)
}

// Answer godoc
// PUT /api/v1/attempts/:attempt_id/answer
func (h *AttemptHandler) Answer(c *gin.Context) {
	attemptID, ok := h.attemptID(c)
	if !ok {
		return
	}

	var req AnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	state, err := h.attemptService.Answer(attemptID, req.Option)
	if err != nil {
		h.failAttempt(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"state": state})
}

// SelectSection godoc
// PUT /api/v1/attempts/:attempt_id/section
func (h *AttemptHandler) SelectSection(c *gin.Context) {
	attemptID, ok := h.attemptID(c)
	if !ok {
		return
	}

	var req SelectSectionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	state, err := h.attemptService.SelectSection(attemptID, req.Section)
	if err != nil {
		if errors.Is(err, service.ErrInvalidSection) {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidSection)
			return
		}
		h.failAttempt(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"state": state})
}

// SelectQuestion godoc
// PUT /api/v1/attempts/:attempt_id/question
func (h *AttemptHandler) SelectQuestion(c *gin.Context) {
	attemptID, ok := h.attemptID(c)
	if !ok {
		return
	}

	var req SelectQuestionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	state, err := h.attemptService.SelectQuestion(attemptID, *req.Index)
	if err != nil {
		h.failAttempt(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"state": state})
}

// Submit godoc
// POST /api/v1/attempts/:attempt_id/submit
func (h *AttemptHandler) Submit(c *gin.Context) {
	attemptID, ok := h.attemptID(c)
	if !ok {
		return
	}

	result, err := h.attemptService.Submit(c.Request.Context(), attemptID)
	if err != nil {
		if errors.Is(err, exam.ErrSubmitted) {
			response.Fail(c, http.StatusConflict, response.ErrAttemptSubmitted)
			return
		}
		h.failAttempt(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"result": result})
}

// respondState runs a body-less attempt operation and returns the new state.
func (h *AttemptHandler) respondState(c *gin.Context, op func(uuid.UUID) (*service.AttemptState, error)) {
	attemptID, ok := h.attemptID(c)
	if !ok {
		return
	}

	state, err := op(attemptID)
	if err != nil {
		h.failAttempt(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"state": state})
}

func (h *AttemptHandler) attemptID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("attempt_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return uuid.Nil, false
	}
	return id, true
}

func (h *AttemptHandler) failAttempt(c *gin.Context, err error) {
	if errors.Is(err, service.ErrAttemptNotFound) {
		response.Fail(c, http.StatusNotFound, response.ErrAttemptNotFound)
		return
	}
	response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
}
