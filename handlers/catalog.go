package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"foodiespot/models"
	"foodiespot/services/catalog"
	"foodiespot/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CatalogHandler serves read-only restaurant queries.
type CatalogHandler struct {
	Service catalog.Service
	Logger  *zap.Logger
}

func NewCatalogHandler(service catalog.Service, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{Service: service, Logger: logger}
}

// SearchRestaurantsHandler handles GET /api/restaurants with optional
// cuisine, location, max_price and min_capacity query filters.
func (h *CatalogHandler) SearchRestaurantsHandler(c *gin.Context) {
	filters := models.SearchFilters{
		Cuisine:  c.Query("cuisine"),
		Location: c.Query("location"),
	}
	if raw := c.Query("max_price"); raw != "" {
		tier, ok := models.ParsePriceTier(raw)
		if !ok {
			utils.JSONError(c, http.StatusBadRequest, "invalid request", "max_price must be low, medium or high")
			return
		}
		filters.MaxPriceTier = tier
	}
	if raw := c.Query("min_capacity"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			utils.JSONError(c, http.StatusBadRequest, "invalid request", "min_capacity must be a positive integer")
			return
		}
		filters.MinCapacity = n
	}

	restaurants, err := h.Service.Search(c.Request.Context(), filters)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to search restaurants", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"restaurants": restaurants, "count": len(restaurants)})
}

// GetRestaurantHandler handles GET /api/restaurants/:id.
func (h *CatalogHandler) GetRestaurantHandler(c *gin.Context) {
	restaurant, err := h.Service.GetRestaurant(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, catalog.ErrRestaurantNotFound) {
			utils.JSONError(c, http.StatusNotFound, "restaurant not found", c.Param("id"))
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to load restaurant", err.Error())
		return
	}
	c.JSON(http.StatusOK, restaurant)
}
