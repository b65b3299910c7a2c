package handler

import (
	"net/http"

	"agencyhub/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type DashboardHandler interface {
	Overview(c *gin.Context)
}

type dashboardHandler struct {
	campaigns repository.CampaignRepository
	tasks     repository.TaskRepository
	contracts repository.ContractRepository
	creators  repository.CreatorRepository
	logger    *zap.Logger
}

func NewDashboardHandler(campaigns repository.CampaignRepository, tasks repository.TaskRepository,
	contracts repository.ContractRepository, creators repository.CreatorRepository,
	logger *zap.Logger) DashboardHandler {
	return &dashboardHandler{
		campaigns: campaigns,
		tasks:     tasks,
		contracts: contracts,
		creators:  creators,
		logger:    logger,
	}
}

// Overview handles GET /api/dashboard: agency-wide counters for the home
// screen.
func (h *dashboardHandler) Overview(c *gin.Context) {
	campaignsByStatus, err := h.campaigns.CountByStatus()
	if err != nil {
		h.logger.Error("Failed to count campaigns", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build dashboard"})
		return
	}

	tasksByStage, err := h.tasks.CountByStage()
	if err != nil {
		h.logger.Error("Failed to count tasks", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build dashboard"})
		return
	}

	contractValue, err := h.contracts.TotalValue()
	if err != nil {
		h.logger.Error("Failed to sum contract value", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build dashboard"})
		return
	}

	creatorCount, err := h.creators.Count()
	if err != nil {
		h.logger.Error("Failed to count creators", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build dashboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"campaigns_by_status":  campaignsByStatus,
		"tasks_by_stage":       tasksByStage,
		"total_contract_value": contractValue,
		"creators_mirrored":    creatorCount,
	})
}
