package handler

import (
	"net/http"

	"github.com/folkadonis/proffessor/internal/middleware"
	"github.com/folkadonis/proffessor/internal/model"
	"github.com/folkadonis/proffessor/internal/response"
	"github.com/folkadonis/proffessor/internal/service"
	"github.com/gin-gonic/gin"
)

// ReportHandler handles the completed-attempt report endpoints.
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// MyReports godoc
// GET /api/v1/user/history, GET /api/v1/reports/mine
// Returns the caller's completed attempts, newest first.
func (h *ReportHandler) MyReports(c *gin.Context) {
	claims := middleware.GetClaims(c)

	rows, err := h.reportService.UserRows(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reports": rows})
}

// MyStats godoc
// GET /api/v1/user/stats
// Returns aggregate counters over the caller's completed attempts.
func (h *ReportHandler) MyStats(c *gin.Context) {
	claims := middleware.GetClaims(c)

	stats, err := h.reportService.UserStats(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"stats": stats})
}

// AllReports godoc
// GET /api/v1/reports/all
// Returns every user's completed attempts for the admin report table.
func (h *ReportHandler) AllReports(c *gin.Context) {
	rows, err := h.reportService.AllRows(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reports": rows})
}

// Export godoc
// GET /api/v1/reports/export
// Returns export-shaped rows: all attempts for admins, own attempts for
// regular users. Formatting to a delimited file is the client's job.
func (h *ReportHandler) Export(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var (
		rows []model.ReportRow
		err  error
	)
	if claims.Role == model.RoleAdmin {
		rows, err = h.reportService.AllRows(c.Request.Context())
	} else {
		rows, err = h.reportService.UserRows(c.Request.Context(), claims.UserID)
	}
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reports": rows})
}
