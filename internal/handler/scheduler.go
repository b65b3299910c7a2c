package handler

import (
	"net/http"
	"time"

	"agencyhub/internal/scheduler_client"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SchedulerHandler interface {
	CreatePost(c *gin.Context)
	SchedulePost(c *gin.Context)
	DeleteScheduledPost(c *gin.Context)
	AccountAnalytics(c *gin.Context)
}

type schedulerHandler struct {
	scheduler *scheduler_client.Client
	logger    *zap.Logger
}

func NewSchedulerHandler(scheduler *scheduler_client.Client, logger *zap.Logger) SchedulerHandler {
	return &schedulerHandler{scheduler: scheduler, logger: logger}
}

type PostRequest struct {
	AccountID   string     `json:"account_id" binding:"required"`
	Text        string     `json:"text" binding:"required"`
	MediaURLs   []string   `json:"media_urls"`
	ScheduledAt *time.Time `json:"scheduled_at"`
}

func (r *PostRequest) toClient() *scheduler_client.PostRequest {
	return &scheduler_client.PostRequest{
		AccountID:   r.AccountID,
		Text:        r.Text,
		MediaURLs:   r.MediaURLs,
		ScheduledAt: r.ScheduledAt,
	}
}

// CreatePost handles POST /api/posts, publishing immediately.
func (h *schedulerHandler) CreatePost(c *gin.Context) {
	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.scheduler.CreatePost(c.Request.Context(), req.toClient())
	if err != nil {
		h.logger.Error("Failed to create post", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to create post"})
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// SchedulePost handles POST /api/posts/schedule; scheduled_at is required.
func (h *schedulerHandler) SchedulePost(c *gin.Context) {
	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.ScheduledAt == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "scheduled_at is required"})
		return
	}

	resp, err := h.scheduler.SchedulePost(c.Request.Context(), req.toClient())
	if err != nil {
		h.logger.Error("Failed to schedule post", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to schedule post"})
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *schedulerHandler) DeleteScheduledPost(c *gin.Context) {
	postID := c.Param("id")

	if err := h.scheduler.DeleteScheduledPost(c.Request.Context(), postID); err != nil {
		h.logger.Error("Failed to delete scheduled post", zap.String("post_id", postID), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to delete scheduled post"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Scheduled post deleted"})
}

// AccountAnalytics handles GET /api/social-accounts/:id/analytics
func (h *schedulerHandler) AccountAnalytics(c *gin.Context) {
	accountID := c.Param("id")

	analytics, err := h.scheduler.GetAccountAnalytics(c.Request.Context(), accountID)
	if err != nil {
		h.logger.Error("Failed to fetch account analytics", zap.String("account_id", accountID), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch account analytics"})
		return
	}
	c.JSON(http.StatusOK, analytics)
}
