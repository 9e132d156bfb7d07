package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/arunvm123/trainbooking/booking-reference-service/config"
	"github.com/arunvm123/trainbooking/booking-reference-service/generator"
	"github.com/arunvm123/trainbooking/booking-reference-service/generator/memory"
	redisgen "github.com/arunvm123/trainbooking/booking-reference-service/generator/redis"
	"github.com/arunvm123/trainbooking/internal/httpmw"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func SetupRouter(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*gin.Engine, error) {
	gen, err := newGenerator(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize generator: %w", err)
	}

	return newRouter(NewReferenceHandler(gen, cfg.Counter.Driver, logger), logger), nil
}

func newGenerator(ctx context.Context, cfg *config.Config) (generator.Generator, error) {
	switch cfg.Counter.Driver {
	case config.CounterMemory:
		return memory.NewCounter(cfg.Counter.Seed), nil
	case config.CounterRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.GetRedisURL(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		return redisgen.NewCounter(ctx, client, cfg.Redis.Key, cfg.Counter.Seed)
	default:
		return nil, fmt.Errorf("unknown counter driver %q", cfg.Counter.Driver)
	}
}

func newRouter(handler *ReferenceHandler, logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpmw.CORSMiddleware())
	r.Use(httpmw.RequestLogger(logger))

	r.GET("/health", handler.HealthCheck)
	r.GET("/booking_reference", handler.NextReference)

	return r
}
