package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/arunvm123/trainbooking/booking-reference-service/generator"
	"github.com/gin-gonic/gin"
)

type ReferenceHandler struct {
	generator generator.Generator
	counter   string
	logger    *slog.Logger
}

func NewReferenceHandler(gen generator.Generator, counter string, logger *slog.Logger) *ReferenceHandler {
	return &ReferenceHandler{
		generator: gen,
		counter:   counter,
		logger:    logger,
	}
}

// NextReference returns a fresh booking reference as plain text
func (h *ReferenceHandler) NextReference(c *gin.Context) {
	ref, err := h.generator.Next(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to generate booking reference", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "generator_unavailable",
			"message": "Failed to generate booking reference",
		})
		return
	}

	c.String(http.StatusOK, ref)
}

// HealthCheck handles health check requests
func (h *ReferenceHandler) HealthCheck(c *gin.Context) {
	status := "healthy"
	code := http.StatusOK
	if err := h.generator.Ping(c.Request.Context()); err != nil {
		status = "unhealthy"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":    status,
		"service":   "booking-reference-service",
		"counter":   h.counter,
		"timestamp": time.Now(),
	})
}
