package main

import (
	"context"
	"log"

	"github.com/arunvm123/trainbooking/booking-reference-service/config"
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

	router, err := SetupRouter(context.Background(), cfg, logger)
	if err != nil {
		log.Fatal(err)
	}

	logger.Info("starting booking reference service", "port", cfg.Port, "counter", cfg.Counter.Driver)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
