package handler

import (
	"errors"
	"net/http"

	"agencyhub/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AdsHandler interface {
	Connect(c *gin.Context)
	Disconnect(c *gin.Context)
	ListAdAccounts(c *gin.Context)
	ListCampaigns(c *gin.Context)
}

type adsHandler struct {
	ads    service.AdsService
	logger *zap.Logger
}

func NewAdsHandler(ads service.AdsService, logger *zap.Logger) AdsHandler {
	return &adsHandler{ads: ads, logger: logger}
}

type ConnectRequest struct {
	Code        string `json:"code" binding:"required"`
	RedirectURI string `json:"redirect_uri" binding:"required"`
}

// Connect handles POST /api/ads/:provider/connect, finishing the OAuth flow
// started by the frontend.
func (h *adsHandler) Connect(c *gin.Context) {
	var req ConnectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.MustGet("user_id").(int64)
	provider := c.Param("provider")

	conn, err := h.ads.Connect(c.Request.Context(), userID, provider, req.Code, req.RedirectURI)
	if err != nil {
		h.logger.Error("Failed to connect ad provider",
			zap.String("provider", provider), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to connect ad provider"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"provider":   conn.Provider,
		"expires_at": conn.ExpiresAt,
	})
}

func (h *adsHandler) Disconnect(c *gin.Context) {
	userID := c.MustGet("user_id").(int64)
	provider := c.Param("provider")

	if err := h.ads.Disconnect(userID, provider); err != nil {
		h.logger.Error("Failed to disconnect ad provider",
			zap.String("provider", provider), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to disconnect ad provider"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Provider disconnected"})
}

func (h *adsHandler) ListAdAccounts(c *gin.Context) {
	userID := c.MustGet("user_id").(int64)
	provider := c.Param("provider")

	accounts, err := h.ads.ListAdAccounts(c.Request.Context(), userID, provider)
	if err != nil {
		h.respondAdsError(c, provider, err, "Failed to list ad accounts")
		return
	}
	c.JSON(http.StatusOK, gin.H{"accounts": accounts})
}

func (h *adsHandler) ListCampaigns(c *gin.Context) {
	userID := c.MustGet("user_id").(int64)
	provider := c.Param("provider")
	accountID := c.Param("accountId")

	campaigns, err := h.ads.ListCampaigns(c.Request.Context(), userID, provider, accountID)
	if err != nil {
		h.respondAdsError(c, provider, err, "Failed to list ad campaigns")
		return
	}
	c.JSON(http.StatusOK, gin.H{"campaigns": campaigns})
}

func (h *adsHandler) respondAdsError(c *gin.Context, provider string, err error, fallback string) {
	if errors.Is(err, service.ErrProviderNotConnected) {
		c.JSON(http.StatusConflict, gin.H{"error": "Ad provider is not connected"})
		return
	}
	h.logger.Error(fallback, zap.String("provider", provider), zap.Error(err))
	c.JSON(http.StatusBadGateway, gin.H{"error": fallback})
}
