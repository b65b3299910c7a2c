package handler

import (
	"net/http"
	"strconv"

	"agencyhub/internal/modash_client"
	"agencyhub/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CreatorHandler interface {
	List(c *gin.Context)
	Get(c *gin.Context)
}

type creatorHandler struct {
	creators repository.CreatorRepository
	logger   *zap.Logger
}

func NewCreatorHandler(creators repository.CreatorRepository, logger *zap.Logger) CreatorHandler {
	return &creatorHandler{creators: creators, logger: logger}
}

// List handles GET /api/creators?platform=...&limit=..., reading from the
// local mirror only; it never calls the provider.
func (h *creatorHandler) List(c *gin.Context) {
	platform := c.Query("platform")
	if platform != "" && !modash_client.ValidPlatform(platform) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported platform"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	creators, err := h.creators.List(platform, limit)
	if err != nil {
		h.logger.Error("Failed to list creators", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list creators"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"creators": creators})
}

// Get handles GET /api/creators/:platform/:userId
func (h *creatorHandler) Get(c *gin.Context) {
	platform := c.Param("platform")
	if !modash_client.ValidPlatform(platform) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported platform"})
		return
	}

	creator, err := h.creators.GetByKey(platform, c.Param("userId"))
	if err != nil {
		h.logger.Error("Failed to get creator", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get creator"})
		return
	}
	if creator == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Creator not found"})
		return
	}
	c.JSON(http.StatusOK, creator)
}
