package handler

import (
	"net/http"

	"core/internal/model"
	"core/internal/service"

	"github.com/gin-gonic/gin"
)

// RecommendHandler handles recommendation HTTP requests
type RecommendHandler struct {
	recommend *service.RecommendService
	maxLimit  int
}

// NewRecommendHandler creates a new recommendation handler
func NewRecommendHandler(recommend *service.RecommendService, maxLimit int) *RecommendHandler {
	return &RecommendHandler{recommend: recommend, maxLimit: maxLimit}
}

// Recommend handles POST /api/v1/recommendations
func (h *RecommendHandler) Recommend(c *gin.Context) {
	var req model.RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	validModes := map[string]bool{
		"":                  true,
		service.ModeAuto:    true,
		service.ModePreview: true,
	}
	if !validModes[req.Mode] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid mode. Must be one of: auto, preview"})
		return
	}

	if req.Limit > h.maxLimit {
		req.Limit = h.maxLimit
	}

	response, err := h.recommend.Recommend(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Recommendation failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}

// SaveIntent handles POST /api/v1/search-intent
func (h *RecommendHandler) SaveIntent(c *gin.Context) {
	var req model.IntentSaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := h.recommend.SaveIntent(c.Request.Context(), req.UserID, req.City, req.Query); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save search intent: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetIntent handles GET /api/v1/search-intent
func (h *RecommendHandler) GetIntent(c *gin.Context) {
	intent := h.recommend.LoadIntent(c.Request.Context(), c.Query("user_id"))
	c.JSON(http.StatusOK, intent)
}
