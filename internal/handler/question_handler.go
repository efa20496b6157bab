package handler

import (
	"errors"
	"net/http"

	"github.com/folkadonis/proffessor/internal/middleware"
	"github.com/folkadonis/proffessor/internal/model"
	"github.com/folkadonis/proffessor/internal/response"
	"github.com/folkadonis/proffessor/internal/service"
	"github.com/folkadonis/proffessor/internal/validator"
	"github.com/gin-gonic/gin"
)

// QuestionHandler handles the admin question bank endpoints.
type QuestionHandler struct {
	questionService *service.QuestionService
}

// NewQuestionHandler creates a new QuestionHandler.
func NewQuestionHandler(questionService *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

// Create godoc
// POST /api/v1/admin/questions
func (h *QuestionHandler) Create(c *gin.Context) {
	var req model.SaveQuestionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	claims := middleware.GetClaims(c)
	question, err := h.questionService.Create(c.Request.Context(), claims.UserID, &req)
	if err != nil {
		failQuestion(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"question": question})
}

// List godoc
// GET /api/v1/admin/questions
func (h *QuestionHandler) List(c *gin.Context) {
	questions, err := h.questionService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"questions": questions})
}

// Update godoc
// PUT /api/v1/admin/questions/:id
func (h *QuestionHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req model.SaveQuestionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	question, err := h.questionService.Update(c.Request.Context(), id, &req)
	if err != nil {
		failQuestion(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"question": question})
}

// Delete godoc
// DELETE /api/v1/admin/questions/:id
// Also pulls the question from every module that references it; past
// attempt slots keep the id and score as incorrect.
func (h *QuestionHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.questionService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrQuestionNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}

func failQuestion(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrTooFewOptions):
		response.Fail(c, http.StatusBadRequest, response.ErrTooFewOptions)
	case errors.Is(err, model.ErrNoCorrectOption):
		response.Fail(c, http.StatusBadRequest, response.ErrNoCorrectOption)
	case errors.Is(err, service.ErrQuestionNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
