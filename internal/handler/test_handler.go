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

// TestHandler handles the test-taking endpoints.
type TestHandler struct {
	moduleService  *service.ModuleService
	attemptService *service.AttemptService
}

// NewTestHandler creates a new TestHandler.
func NewTestHandler(moduleService *service.ModuleService, attemptService *service.AttemptService) *TestHandler {
	return &TestHandler{moduleService: moduleService, attemptService: attemptService}
}

// Available godoc
// GET /api/v1/tests/available
// Lists active modules, each flagged with whether the user already
// completed it.
func (h *TestHandler) Available(c *gin.Context) {
	claims := middleware.GetClaims(c)

	tests, err := h.moduleService.ListAvailable(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"tests": tests})
}

// Start godoc
// POST /api/v1/tests/start/:module_id
// Begins an attempt and returns the sanitized paper. An attempt already in
// progress is reported with its id so the client can resume it.
func (h *TestHandler) Start(c *gin.Context) {
	moduleID, ok := parseIDParam(c, "module_id")
	if !ok {
		return
	}

	claims := middleware.GetClaims(c)
	started, err := h.attemptService.Start(c.Request.Context(), claims.UserID, moduleID)
	if err != nil {
		var inProgress *service.InProgressError
		switch {
		case errors.As(err, &inProgress):
			// 400 rather than 409: the attempt id in fields lets the client
			// resume instead of treating this as a hard failure.
			response.FailWithFields(c, http.StatusBadRequest, response.ErrTestInProgress,
				map[string]string{"attempt_id": inProgress.AttemptID.String()})
		case errors.Is(err, service.ErrAlreadyCompleted):
			response.Fail(c, http.StatusBadRequest, response.ErrTestAlreadyCompleted)
		case errors.Is(err, service.ErrTestNotAvailable):
			response.Fail(c, http.StatusNotFound, response.ErrTestNotAvailable)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}
	response.Success(c, http.StatusCreated, started)
}

// GetAttempt godoc
// GET /api/v1/tests/attempt/:attempt_id
// Returns the paper of an in-progress attempt with current selections, for
// resuming after a disconnect.
func (h *TestHandler) GetAttempt(c *gin.Context) {
	attemptID, ok := parseIDParam(c, "attempt_id")
	if !ok {
		return
	}

	claims := middleware.GetClaims(c)
	started, err := h.attemptService.Resume(c.Request.Context(), claims.UserID, attemptID)
	if err != nil {
		failAttempt(c, err)
		return
	}
	response.Success(c, http.StatusOK, started)
}

// Answer godoc
// PUT /api/v1/tests/answer/:attempt_id
// Records or overwrites the selection for one question.
func (h *TestHandler) Answer(c *gin.Context) {
	attemptID, ok := parseIDParam(c, "attempt_id")
	if !ok {
		return
	}

	var req model.AnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	claims := middleware.GetClaims(c)
	if err := h.attemptService.Answer(c.Request.Context(), claims.UserID, attemptID, &req); err != nil {
		if errors.Is(err, service.ErrQuestionNotInTest) {
			response.Fail(c, http.StatusBadRequest, response.ErrQuestionNotInTest)
			return
		}
		failAttempt(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}

// Submit godoc
// POST /api/v1/tests/submit/:attempt_id
// Grades the attempt and completes it. One-way; a repeated submit is
// rejected.
func (h *TestHandler) Submit(c *gin.Context) {
	attemptID, ok := parseIDParam(c, "attempt_id")
	if !ok {
		return
	}

	claims := middleware.GetClaims(c)
	result, err := h.attemptService.Submit(c.Request.Context(), claims.UserID, attemptID)
	if err != nil {
		failAttempt(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// Result godoc
// GET /api/v1/tests/result/:attempt_id
// Returns the graded detail of a completed attempt.
func (h *TestHandler) Result(c *gin.Context) {
	attemptID, ok := parseIDParam(c, "attempt_id")
	if !ok {
		return
	}

	claims := middleware.GetClaims(c)
	result, err := h.attemptService.Result(c.Request.Context(), claims.UserID, attemptID)
	if err != nil {
		failAttempt(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

func failAttempt(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAttemptNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrAttemptCompleted):
		response.Fail(c, http.StatusBadRequest, response.ErrTestAlreadyCompleted)
	case errors.Is(err, service.ErrResultNotReady):
		response.Fail(c, http.StatusBadRequest, response.ErrResultNotReady)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
