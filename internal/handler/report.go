package handler

import (
	"net/http"

	"agencyhub/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ReportHandler interface {
	GetReport(c *gin.Context)
	GetPerformance(c *gin.Context)
	InvalidateCache(c *gin.Context)
}

type reportHandler struct {
	reports service.ReportService
	logger  *zap.Logger
}

func NewReportHandler(reports service.ReportService, logger *zap.Logger) ReportHandler {
	return &reportHandler{reports: reports, logger: logger}
}

// GetReport handles GET /api/creators/:platform/:userId/report?refresh=true
func (h *reportHandler) GetReport(c *gin.Context) {
	platform := c.Param("platform")
	userID := c.Param("userId")
	forceRefresh := c.Query("refresh") == "true"

	report, err := h.reports.GetReport(c.Request.Context(), platform, userID, forceRefresh)
	if err != nil {
		respondClientError(c, h.logger, err, "Failed to fetch creator report")
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetPerformance handles GET /api/creators/:platform/:userId/performance
func (h *reportHandler) GetPerformance(c *gin.Context) {
	data, err := h.reports.GetPerformance(c.Request.Context(), c.Param("platform"), c.Param("userId"))
	if err != nil {
		respondClientError(c, h.logger, err, "Failed to fetch performance data")
		return
	}

	c.JSON(http.StatusOK, data)
}

// InvalidateCache handles DELETE /api/creators/:platform/:userId/report
func (h *reportHandler) InvalidateCache(c *gin.Context) {
	platform := c.Param("platform")
	userID := c.Param("userId")

	if err := h.reports.InvalidateCache(platform, userID); err != nil {
		h.logger.Error("Failed to invalidate report cache",
			zap.String("platform", platform),
			zap.String("creator", userID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to invalidate report cache"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Report cache invalidated"})
}
