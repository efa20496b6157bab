package handler

import (
	"net/http"

	"github.com/folkadonis/proffessor/internal/response"
	"github.com/folkadonis/proffessor/internal/service"
	"github.com/gin-gonic/gin"
)

// DashboardHandler serves the admin dashboard and statistics views.
type DashboardHandler struct {
	reportService *service.ReportService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(reportService *service.ReportService) *DashboardHandler {
	return &DashboardHandler{reportService: reportService}
}

// Dashboard godoc
// GET /api/v1/admin/dashboard
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	stats, err := h.reportService.DashboardStats(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"dashboard": stats})
}

// Statistics godoc
// GET /api/v1/admin/statistics
func (h *DashboardHandler) Statistics(c *gin.Context) {
	stats, err := h.reportService.PlatformStatistics(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"statistics": stats})
}
