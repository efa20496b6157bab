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

// ModuleHandler handles the admin test module endpoints.
type ModuleHandler struct {
	moduleService *service.ModuleService
}

// NewModuleHandler creates a new ModuleHandler.
func NewModuleHandler(moduleService *service.ModuleService) *ModuleHandler {
	return &ModuleHandler{moduleService: moduleService}
}

// Create godoc
// POST /api/v1/admin/test-modules
func (h *ModuleHandler) Create(c *gin.Context) {
	var req model.SaveTestModuleRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	claims := middleware.GetClaims(c)
	module, err := h.moduleService.Create(c.Request.Context(), claims.UserID, &req)
	if err != nil {
		failModule(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"test_module": module})
}

// List godoc
// GET /api/v1/admin/test-modules
func (h *ModuleHandler) List(c *gin.Context) {
	modules, err := h.moduleService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"test_modules": modules})
}

// Update godoc
// PUT /api/v1/admin/test-modules/:id
func (h *ModuleHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req model.SaveTestModuleRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	module, err := h.moduleService.Update(c.Request.Context(), id, &req)
	if err != nil {
		failModule(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"test_module": module})
}

// Delete godoc
// DELETE /api/v1/admin/test-modules/:id
// Destroys the module's attempt history along with it.
func (h *ModuleHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.moduleService.Delete(c.Request.Context(), id); err != nil {
		failModule(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}

// failModule maps module catalog service errors to responses.
func failModule(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrModuleNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrUnknownQuestion):
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation,
			map[string]string{"questions": service.ErrUnknownQuestion.Error()})
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
