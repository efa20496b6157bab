package handler

import (
	"errors"
	"net/http"

	"github.com/folkadonis/proffessor/internal/response"
	"github.com/folkadonis/proffessor/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AdminUserHandler handles the admin account-management endpoints.
type AdminUserHandler struct {
	userService *service.UserService
	authService *service.AuthService
}

// NewAdminUserHandler creates a new AdminUserHandler.
func NewAdminUserHandler(userService *service.UserService, authService *service.AuthService) *AdminUserHandler {
	return &AdminUserHandler{userService: userService, authService: authService}
}

// ListUsers godoc
// GET /api/v1/admin/users
// Lists all non-admin accounts.
func (h *AdminUserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context(), false)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"users": users})
}

// ListPending godoc
// GET /api/v1/admin/users/pending
// Lists registrations awaiting approval.
func (h *AdminUserHandler) ListPending(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context(), true)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"users": users})
}

// Approve godoc
// PATCH /api/v1/admin/users/:id/approve
// Opens the test-taking gate for a user. Idempotent.
func (h *AdminUserHandler) Approve(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.Approve(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// Reject godoc
// DELETE /api/v1/admin/users/:id
// Deletes a registration outright.
func (h *AdminUserHandler) Reject(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.userService.Reject(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}

// ToggleStatus godoc
// PATCH /api/v1/admin/users/:id/toggle-status
// Flips a user's activation flag. Deactivated users cannot log in.
func (h *AdminUserHandler) ToggleStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.ToggleActive(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// ResetSession godoc
// POST /api/v1/admin/users/:id/reset-session
// Clears a user's active session so their outstanding token stops working.
func (h *AdminUserHandler) ResetSession(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.authService.ClearSession(c.Request.Context(), id); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}

// parseIDParam parses a UUID path parameter, failing the request itself on
// malformed input.
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return uuid.Nil, false
	}
	return id, true
}
