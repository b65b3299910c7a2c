package handler

import (
	"net/http"

	"agencyhub/internal/mailer_client"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type MarketingHandler interface {
	Subscribe(c *gin.Context)
	Tag(c *gin.Context)
}

type marketingHandler struct {
	mailer *mailer_client.Client
	listID string
	logger *zap.Logger
}

func NewMarketingHandler(mailer *mailer_client.Client, listID string, logger *zap.Logger) MarketingHandler {
	return &marketingHandler{mailer: mailer, listID: listID, logger: logger}
}

type SubscribeRequest struct {
	Email       string            `json:"email" binding:"required,email"`
	MergeFields map[string]string `json:"merge_fields"`
	Tags        []string          `json:"tags"`
}

// Subscribe handles POST /api/marketing/subscribers, upserting the contact on
// the mailing list and tagging it in one go.
func (h *marketingHandler) Subscribe(c *gin.Context) {
	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	member, err := h.mailer.UpsertMember(c.Request.Context(), h.listID, req.Email, "subscribed", req.MergeFields)
	if err != nil {
		h.logger.Error("Failed to upsert list member", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to subscribe contact"})
		return
	}

	if len(req.Tags) > 0 {
		if err := h.mailer.AddTags(c.Request.Context(), h.listID, req.Email, req.Tags); err != nil {
			// The member exists at this point; report the partial failure
			// instead of rolling back.
			h.logger.Warn("Failed to tag list member", zap.Error(err))
			c.JSON(http.StatusOK, gin.H{"member": member, "warning": "Contact subscribed but tagging failed"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"member": member})
}

type TagRequest struct {
	Email string   `json:"email" binding:"required,email"`
	Tags  []string `json:"tags" binding:"required,min=1"`
}

// Tag handles POST /api/marketing/tags for an existing subscriber.
func (h *marketingHandler) Tag(c *gin.Context) {
	var req TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.mailer.AddTags(c.Request.Context(), h.listID, req.Email, req.Tags); err != nil {
		h.logger.Error("Failed to tag list member", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to tag contact"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Tags applied"})
}
