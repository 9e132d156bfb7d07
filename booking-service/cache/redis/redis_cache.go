package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/arunvm123/trainbooking/booking-service/model"
	"github.com/redis/go-redis/v9"
)

type RedisCacheRepository struct {
	client *redis.Client
}

func NewRedisCacheRepository(ctx context.Context, redisURL, password string, db int) (*RedisCacheRepository, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     redisURL,
		Password: password,
		DB:       db,
	})

	// Test connection
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisCacheRepository{client: client}, nil
}

// Cache key generator
func (r *RedisCacheRepository) reservationStatusKey(requestID string) string {
	return fmt.Sprintf("reservation_status:%s", requestID)
}

// GetReservationStatus retrieves the progress of a queued request
func (r *RedisCacheRepository) GetReservationStatus(ctx context.Context, requestID string) (*model.ReservationStatusUpdate, error) {
	statusData, err := r.client.Get(ctx, r.reservationStatusKey(requestID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var status model.ReservationStatusUpdate
	if err := json.Unmarshal(statusData, &status); err != nil {
		return nil, fmt.Errorf("failed to decode cached status: %w", err)
	}

	return &status, nil
}

// SetReservationStatus stores the progress of a queued request
func (r *RedisCacheRepository) SetReservationStatus(ctx context.Context, status *model.ReservationStatusUpdate, ttl time.Duration) error {
	statusData, err := json.Marshal(status)
	if err != nil {
		return err
	}

	return r.client.Set(ctx, r.reservationStatusKey(status.RequestID), statusData, ttl).Err()
}

// InvalidateReservationStatus removes a status from cache
func (r *RedisCacheRepository) InvalidateReservationStatus(ctx context.Context, requestID string) error {
	return r.client.Del(ctx, r.reservationStatusKey(requestID)).Err()
}

// Ping checks if Redis is healthy
func (r *RedisCacheRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close releases the connection pool
func (r *RedisCacheRepository) Close() error {
	return r.client.Close()
}
