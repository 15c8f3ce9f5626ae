package handler

import (
	"net/http"
	"strconv"

	"core/internal/model"
	"core/internal/service"

	"github.com/gin-gonic/gin"
)

// PropertyHandler handles listing-related HTTP requests
type PropertyHandler struct {
	properties   *service.PropertyService
	defaultLimit int
	maxLimit     int
}

// NewPropertyHandler creates a new property handler
func NewPropertyHandler(properties *service.PropertyService, defaultLimit, maxLimit int) *PropertyHandler {
	return &PropertyHandler{
		properties:   properties,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
	}
}

// List handles GET /api/v1/properties
func (h *PropertyHandler) List(c *gin.Context) {
	filter := model.PropertyFilter{
		City: c.Query("city"),
		Sort: c.DefaultQuery("sort", service.SortRecent),
	}
	if v, err := strconv.ParseFloat(c.Query("min_price"), 64); err == nil {
		filter.MinPrice = v
	}
	if v, err := strconv.ParseFloat(c.Query("max_price"), 64); err == nil {
		filter.MaxPrice = v
	}

	validSorts := map[string]bool{
		service.SortQuality:   true,
		service.SortPriceAsc:  true,
		service.SortPriceDesc: true,
		service.SortRecent:    true,
	}
	if !validSorts[filter.Sort] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sort. Must be one of: quality, price_asc, price_desc, recent"})
		return
	}

	limit, offset := h.parseLimitOffset(c)

	items, total, err := h.properties.List(c.Request.Context(), filter, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list properties: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, model.PropertyListResponse{
		Items:  items,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

// Get handles GET /api/v1/properties/:id
func (h *PropertyHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing property ID"})
		return
	}

	property, err := h.properties.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get property: " + err.Error()})
		return
	}
	if property == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}

	c.JSON(http.StatusOK, property)
}

func (h *PropertyHandler) parseLimitOffset(c *gin.Context) (int, int) {
	limit := h.defaultLimit
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		limit = v
	}
	if limit > h.maxLimit {
		limit = h.maxLimit
	}

	offset := 0
	if v, err := strconv.Atoi(c.Query("offset")); err == nil && v > 0 {
		offset = v
	}
	return limit, offset
}
