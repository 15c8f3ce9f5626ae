package handler

import (
	"net/http"

	"core/internal/model"
	"core/internal/service"

	"github.com/gin-gonic/gin"
)

// FeedbackHandler handles feedback-related HTTP requests
type FeedbackHandler struct {
	recommend *service.RecommendService
}

// NewFeedbackHandler creates a new feedback handler
func NewFeedbackHandler(recommend *service.RecommendService) *FeedbackHandler {
	return &FeedbackHandler{recommend: recommend}
}

// Submit handles POST /api/v1/feedback
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req model.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	validActions := map[string]bool{
		"click":        true,
		"contact":      true,
		"view_details": true,
	}
	if !validActions[req.Action] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action. Must be one of: click, contact, view_details"})
		return
	}

	if err := h.recommend.LogFeedback(c.Request.Context(), req.RecommendationID, req.PropertyID, req.Action); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log feedback: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, model.FeedbackResponse{
		Success: true,
		Message: "Feedback logged successfully",
	})
}
