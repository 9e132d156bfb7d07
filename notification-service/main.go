package main

import (
	"log"

	"github.com/arunvm123/trainbooking/internal/logging"
	"github.com/arunvm123/trainbooking/notification-service/config"
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
	router := newRouter(logger)

	logger.Info("starting notification service API", "port", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
