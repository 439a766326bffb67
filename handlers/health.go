// Package handlers holds cross-cutting HTTP endpoints that do not belong to
// a single domain: health checks and API documentation.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterHealth registers the liveness endpoint used by the frontend and by
// container orchestration probes.
func RegisterHealth(rg *gin.RouterGroup) {
	rg.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "center-believer backend is running",
		})
	})
}
