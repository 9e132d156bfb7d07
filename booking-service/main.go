package main

import (
	"context"
	"log"

	"github.com/arunvm123/trainbooking/booking-service/config"
	"github.com/arunvm123/trainbooking/internal/logging"
)

func main() {
	// Try to load from config.yaml first, fallback to environment variables
	cfg, err := config.Initialise("config.yaml", false)
	if err != nil {
		log.Printf("Config file not found or invalid, using environment variables: %v", err)
		cfg, err = config.Initialise("", true)
		if err != nil {
			log.Fatal("Failed to load configuration:", err)
		}
	}

	logger := logging.New(logging.ParseLevel(cfg.LogLevel))

	// Setup router with all dependencies
	router, closers, err := SetupRouter(context.Background(), cfg, logger)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		for _, c := range closers {
			c.Close()
		}
	}()

	logger.Info("starting booking service", "port", cfg.Port, "max_attempts", cfg.Reservation.MaxAttempts)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
