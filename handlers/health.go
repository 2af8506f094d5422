package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"message":   "Food Rescue Network API is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// NotFound answers any request no route matched.
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"error":  "Route not found",
		"path":   c.Request.URL.Path,
		"method": c.Request.Method,
	})
}
