package handler

import (
	"net/http"

	"agencyhub/internal/models"
	"agencyhub/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ContractHandler interface {
	Create(c *gin.Context)
	Get(c *gin.Context)
	ListByCampaign(c *gin.Context)
	UpdateStatus(c *gin.Context)
	Delete(c *gin.Context)
}

type contractHandler struct {
	contracts repository.ContractRepository
	logger    *zap.Logger
}

func NewContractHandler(contracts repository.ContractRepository, logger *zap.Logger) ContractHandler {
	return &contractHandler{contracts: contracts, logger: logger}
}

type ContractRequest struct {
	CampaignID      uuid.UUID `json:"campaign_id" binding:"required"`
	CreatorPlatform string    `json:"creator_platform" binding:"required"`
	CreatorUserID   string    `json:"creator_user_id" binding:"required"`
	Title           string    `json:"title" binding:"required"`
	FileURL         string    `json:"file_url"`
	Value           float64   `json:"value"`
}

func (h *contractHandler) Create(c *gin.Context) {
	var req ContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contract := &models.Contract{
		CampaignID:      req.CampaignID,
		CreatorPlatform: req.CreatorPlatform,
		CreatorUserID:   req.CreatorUserID,
		Title:           req.Title,
		FileURL:         req.FileURL,
		Status:          models.ContractStatusDraft,
		Value:           req.Value,
	}
	if err := h.contracts.Create(contract); err != nil {
		h.logger.Error("Failed to create contract", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create contract"})
		return
	}

	c.JSON(http.StatusCreated, contract)
}

func (h *contractHandler) Get(c *gin.Context) {
	contract, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, contract)
}

// ListByCampaign handles GET /api/campaigns/:id/contracts
func (h *contractHandler) ListByCampaign(c *gin.Context) {
	campaignID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid campaign id"})
		return
	}

	contracts, err := h.contracts.ListByCampaign(campaignID)
	if err != nil {
		h.logger.Error("Failed to list contracts", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list contracts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"contracts": contracts})
}

// UpdateStatus handles PATCH /api/contracts/:id/status; contracts only move
// forward through draft, sent, signed.
func (h *contractHandler) UpdateStatus(c *gin.Context) {
	contract, ok := h.lookup(c)
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidContractStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown contract status"})
		return
	}
	if statusRank(req.Status) < statusRank(contract.Status) {
		c.JSON(http.StatusConflict, gin.H{"error": "Contract status cannot move backwards"})
		return
	}

	if err := h.contracts.UpdateStatus(contract.ID, req.Status); err != nil {
		h.logger.Error("Failed to update contract status", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update contract"})
		return
	}
	contract.Status = req.Status
	c.JSON(http.StatusOK, contract)
}

func (h *contractHandler) Delete(c *gin.Context) {
	contract, ok := h.lookup(c)
	if !ok {
		return
	}

	if err := h.contracts.Delete(contract.ID); err != nil {
		h.logger.Error("Failed to delete contract", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete contract"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Contract deleted"})
}

func statusRank(status string) int {
	switch status {
	case models.ContractStatusSent:
		return 1
	case models.ContractStatusSigned:
		return 2
	}
	return 0
}

func (h *contractHandler) lookup(c *gin.Context) (*models.Contract, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contract id"})
		return nil, false
	}

	contract, err := h.contracts.GetByID(id)
	if err != nil {
		h.logger.Error("Failed to get contract", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get contract"})
		return nil, false
	}
	if contract == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contract not found"})
		return nil, false
	}
	return contract, true
}
