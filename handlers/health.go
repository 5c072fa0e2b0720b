package handlers

import (
	"net/http"

	"foodiespot/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler handles GET /healthz with the latest dependency snapshot.
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"deps":   utils.GetHealthStatus(),
	})
}
