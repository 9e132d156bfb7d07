package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/arunvm123/trainbooking/internal/httpmw"
	"github.com/arunvm123/trainbooking/internal/serviceauth"
	"github.com/arunvm123/trainbooking/train-data-service/config"
	"github.com/arunvm123/trainbooking/train-data-service/fixtures"
	"github.com/arunvm123/trainbooking/train-data-service/repository"
	"github.com/arunvm123/trainbooking/train-data-service/repository/memory"
	"github.com/arunvm123/trainbooking/train-data-service/repository/postgres"
	"github.com/gin-gonic/gin"
)

// SetupRouter builds the ledger from config, seeds it from the fixtures file and wires the routes.
func SetupRouter(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*gin.Engine, error) {
	repo, err := newRepository(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize repository: %w", err)
	}

	if cfg.Storage.FixturesPath != "" {
		trains, err := fixtures.Load(cfg.Storage.FixturesPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load fixtures: %w", err)
		}
		if err := repo.Seed(ctx, trains); err != nil {
			return nil, fmt.Errorf("failed to seed trains: %w", err)
		}
		logger.Info("train fixtures loaded", "path", cfg.Storage.FixturesPath, "trains", len(trains))
	}

	tokens := serviceauth.NewTokenService(cfg.JWTSecret, "train-data-service")
	handler := NewTrainHandler(repo, cfg.Storage.Driver, logger)

	return newRouter(handler, tokens, logger), nil
}

func newRepository(cfg *config.Config, logger *slog.Logger) (repository.TrainRepository, error) {
	if cfg.Storage.Driver == config.StoragePostgres {
		return postgres.NewTrainRepository(cfg.Database.GetDatabaseURL(), postgres.PoolConfig{
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxLifetime: cfg.Database.GetConnMaxLifetime(),
		}, logger)
	}
	return memory.NewTrainRepository(), nil
}

func newRouter(handler *TrainHandler, tokens *serviceauth.TokenService, logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpmw.CORSMiddleware())
	r.Use(httpmw.RequestLogger(logger))

	// Health check endpoint (no auth required)
	r.GET("/health", handler.HealthCheck)

	// Reads are public
	r.GET("/data_for_train/:train_id", handler.GetTrain)

	// Ledger mutations require a service token
	protected := r.Group("")
	protected.Use(serviceauth.Middleware(tokens))
	protected.POST("/reserve", handler.Reserve)
	protected.POST("/reset/:train_id", handler.Reset)

	return r
}
