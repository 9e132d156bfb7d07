package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/arunvm123/trainbooking/internal/httpmw"
	"github.com/arunvm123/trainbooking/notification-service/model"
	"github.com/gin-gonic/gin"
)

func newRouter(logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpmw.CORSMiddleware())
	r.Use(httpmw.RequestLogger(logger))

	// Health check endpoint only
	r.GET("/health", healthCheck)

	return r
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, model.HealthResponse{
		Status:    "healthy",
		Service:   "notification-service",
		Timestamp: time.Now(),
	})
}
