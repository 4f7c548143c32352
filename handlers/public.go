package handlers

import (
	"net/http"

	"restaurant-orders-api/models"

	"github.com/gin-gonic/gin"
)

const (
	serviceName    = "Restaurant Order Management API"
	serviceVersion = "1.0.0"
)

// Health is the liveness probe
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": serviceName,
		"version": serviceVersion,
	})
}

func Welcome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":  "Welcome to the " + serviceName,
		"docs":     "/api/state-machine",
		"health":   "/health",
		"statuses": models.AllStatuses(),
	})
}
