package handler

import (
	"math"
	"net/http"
	"time"

	"agencyhub/internal/models"
	"agencyhub/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type CampaignHandler interface {
	Create(c *gin.Context)
	Get(c *gin.Context)
	List(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	Stats(c *gin.Context)
}

type campaignHandler struct {
	campaigns repository.CampaignRepository
	logger    *zap.Logger
}

func NewCampaignHandler(campaigns repository.CampaignRepository, logger *zap.Logger) CampaignHandler {
	return &campaignHandler{campaigns: campaigns, logger: logger}
}

type CampaignRequest struct {
	Name      string    `json:"name" binding:"required"`
	Brand     string    `json:"brand"`
	Platforms []string  `json:"platforms"`
	Budget    float64   `json:"budget"`
	Spent     float64   `json:"spent"`
	StartDate time.Time `json:"start_date" binding:"required"`
	EndDate   time.Time `json:"end_date" binding:"required"`
	Status    string    `json:"status"`
}

func (h *campaignHandler) Create(c *gin.Context) {
	var req CampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Status == "" {
		req.Status = models.CampaignStatusDraft
	}
	if !models.ValidCampaignStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown campaign status"})
		return
	}

	campaign := &models.Campaign{
		Name:      req.Name,
		Brand:     req.Brand,
		Platforms: pq.StringArray(req.Platforms),
		Budget:    req.Budget,
		Spent:     req.Spent,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Status:    req.Status,
	}
	if err := h.campaigns.Create(campaign); err != nil {
		h.logger.Error("Failed to create campaign", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create campaign"})
		return
	}

	c.JSON(http.StatusCreated, campaign)
}

func (h *campaignHandler) Get(c *gin.Context) {
	campaign, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, campaign)
}

func (h *campaignHandler) List(c *gin.Context) {
	status := c.Query("status")
	if status != "" && !models.ValidCampaignStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown campaign status"})
		return
	}

	campaigns, err := h.campaigns.List(status)
	if err != nil {
		h.logger.Error("Failed to list campaigns", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list campaigns"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"campaigns": campaigns})
}

func (h *campaignHandler) Update(c *gin.Context) {
	campaign, ok := h.lookup(c)
	if !ok {
		return
	}

	var req CampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Status != "" && !models.ValidCampaignStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown campaign status"})
		return
	}

	campaign.Name = req.Name
	campaign.Brand = req.Brand
	campaign.Platforms = pq.StringArray(req.Platforms)
	campaign.Budget = req.Budget
	campaign.Spent = req.Spent
	campaign.StartDate = req.StartDate
	campaign.EndDate = req.EndDate
	if req.Status != "" {
		campaign.Status = req.Status
	}

	if err := h.campaigns.Update(campaign); err != nil {
		h.logger.Error("Failed to update campaign", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update campaign"})
		return
	}
	c.JSON(http.StatusOK, campaign)
}

func (h *campaignHandler) Delete(c *gin.Context) {
	campaign, ok := h.lookup(c)
	if !ok {
		return
	}

	if err := h.campaigns.Delete(campaign.ID); err != nil {
		h.logger.Error("Failed to delete campaign", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete campaign"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Campaign deleted"})
}

// Stats handles GET /api/campaigns/:id/stats
func (h *campaignHandler) Stats(c *gin.Context) {
	campaign, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, CampaignStats(campaign, time.Now()))
}

// CampaignStats derives the budget and schedule figures the dashboard shows.
func CampaignStats(campaign *models.Campaign, now time.Time) *models.CampaignStats {
	stats := &models.CampaignStats{
		BudgetRemaining: campaign.Budget - campaign.Spent,
	}
	if campaign.Budget > 0 {
		stats.PercentSpent = math.Round(campaign.Spent/campaign.Budget*1000) / 10
	}
	if days := int(math.Ceil(campaign.EndDate.Sub(now).Hours() / 24)); days > 0 {
		stats.DaysRemaining = days
	}
	return stats
}

func (h *campaignHandler) lookup(c *gin.Context) (*models.Campaign, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid campaign id"})
		return nil, false
	}

	campaign, err := h.campaigns.GetByID(id)
	if err != nil {
		h.logger.Error("Failed to get campaign", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get campaign"})
		return nil, false
	}
	if campaign == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
		return nil, false
	}
	return campaign, true
}
