package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NotFound отвечает на неизвестные маршруты и перечисляет доступные.
func NotFound(availableEndpoints []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success":            false,
			"message":            "Endpoint not found",
			"availableEndpoints": availableEndpoints,
		})
	}
}
