package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cetprep/cetprep-backend/internal/model"
	"github.com/cetprep/cetprep-backend/internal/repository"
	"github.com/cetprep/cetprep-backend/internal/response"
	"github.com/cetprep/cetprep-backend/internal/service"
	"github.com/cetprep/cetprep-backend/internal/validator"
)

// TestHandler serves the test catalog: the dashboard list and test creation.
type TestHandler struct {
	testService *service.TestService
}

// NewTestHandler creates a new TestHandler.
func NewTestHandler(testService *service.TestService) *TestHandler {
	return &TestHandler{testService: testService}
}

// List godoc
// GET /api/v1/tests
func (h *TestHandler) List(c *gin.Context) {
	tests, err := h.testService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if tests == nil {
		tests = []model.TestSummary{}
	}

	response.Success(c, http.StatusOK, gin.H{"tests": tests})
}

// GetByID godoc
// GET /api/v1/tests/:test_id
func (h *TestHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("test_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	test, err := h.testService.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrTestNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	// The catalog never exposes answer keys; clients get the paper shape.
	response.Success(c, http.StatusOK, gin.H{
		"test":   model.PaperFromTest(test),
		"window": test.Window(time.Now()),
	})
}

// Create godoc
// POST /api/v1/tests
func (h *TestHandler) Create(c *gin.Context) {
	var req model.CreateTestRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	test, err := h.testService.Create(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoQuestions):
			response.Fail(c, http.StatusBadRequest, response.ErrNoQuestions)
		case errors.Is(err, service.ErrInvalidStartTime):
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"test_id":        test.ID,
		"title":          test.Title,
		"start_time":     test.StartTime,
		"end_time":       test.EndTime,
		"question_count": len(test.Questions),
	})
}
