package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cetprep/cetprep-backend/internal/repository"
	"github.com/cetprep/cetprep-backend/internal/response"
	"github.com/cetprep/cetprep-backend/internal/service"
)

// ResultHandler serves the results breakdown for submitted tests.
type ResultHandler struct {
	resultService *service.ResultService
}

// NewResultHandler creates a new ResultHandler.
func NewResultHandler(resultService *service.ResultService) *ResultHandler {
	return &ResultHandler{resultService: resultService}
}

// Get godoc
// GET /api/v1/tests/:test_id/result
func (h *ResultHandler) Get(c *gin.Context) {
	testID, err := uuid.Parse(c.Param("test_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	breakdown, err := h.resultService.Get(c.Request.Context(), testID)
	if err != nil {
		if errors.Is(err, repository.ErrResultNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrResultNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"result": breakdown})
}
