package handler

import (
	"errors"
	"net/http"
	"strconv"

	"agencyhub/internal/modash_client"
	"agencyhub/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type DiscoveryHandler interface {
	Search(c *gin.Context)
	Suggest(c *gin.Context)
	Dictionary(c *gin.Context)
	History(c *gin.Context)
}

type discoveryHandler struct {
	discovery service.DiscoveryService
	logger    *zap.Logger
}

func NewDiscoveryHandler(discovery service.DiscoveryService, logger *zap.Logger) DiscoveryHandler {
	return &discoveryHandler{discovery: discovery, logger: logger}
}

type SearchRequest struct {
	Platform string                      `json:"platform" binding:"required"`
	Filters  modash_client.SearchFilters `json:"filters"`
	Sort     *modash_client.SortSpec     `json:"sort"`
	Page     int                         `json:"page"`
}

// Search handles POST /api/discovery/search
func (h *discoveryHandler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.MustGet("user_id").(int64)
	result, err := h.discovery.Search(c.Request.Context(), userID, req.Platform, req.Filters, req.Sort, req.Page)
	if err != nil {
		respondClientError(c, h.logger, err, "Search failed")
		return
	}

	c.JSON(http.StatusOK, result)
}

// Suggest handles GET /api/discovery/suggest?platform=...&q=...
func (h *discoveryHandler) Suggest(c *gin.Context) {
	platform := c.Query("platform")
	query := c.Query("q")

	creators, err := h.discovery.Suggest(c.Request.Context(), platform, query)
	if err != nil {
		respondClientError(c, h.logger, err, "Suggestion lookup failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"creators": creators})
}

// Dictionary handles GET /api/discovery/dictionary/:kind?platform=...&q=...&limit=...
func (h *discoveryHandler) Dictionary(c *gin.Context) {
	kind := modash_client.DictionaryKind(c.Param("kind"))
	platform := c.Query("platform")
	query := c.Query("q")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	entries, err := h.discovery.Dictionary(c.Request.Context(), platform, kind, query, limit)
	if err != nil {
		respondClientError(c, h.logger, err, "Dictionary lookup failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// History handles GET /api/discovery/history?limit=...
func (h *discoveryHandler) History(c *gin.Context) {
	userID := c.MustGet("user_id").(int64)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	logs, err := h.discovery.History(userID, limit)
	if err != nil {
		h.logger.Error("Failed to load search history", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load search history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"searches": logs})
}

// respondClientError maps the analytics-client error taxonomy onto HTTP
// responses: invalid input is the caller's fault, rate limiting is 429,
// upstream trouble is 502, anything else is a plain 500.
func respondClientError(c *gin.Context, logger *zap.Logger, err error, fallback string) {
	var rateErr *modash_client.RateLimitError
	var apiErr *modash_client.APIError
	var maxErr *modash_client.MaxRetriesError
	var valErr *modash_client.ValidationError

	switch {
	case errors.Is(err, modash_client.ErrInvalidPlatform), errors.Is(err, modash_client.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &rateErr):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": rateErr.Error()})
	case errors.As(err, &apiErr):
		logger.Warn("Upstream API error", zap.Int("status", apiErr.StatusCode), zap.String("message", apiErr.Message))
		c.JSON(http.StatusBadGateway, gin.H{"error": apiErr.Message})
	case errors.As(err, &maxErr):
		logger.Error("Upstream unreachable", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Upstream service unreachable"})
	case errors.As(err, &valErr):
		logger.Error("Upstream payload failed validation", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Upstream returned an unusable payload"})
	default:
		logger.Error(fallback, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
