package cache

import (
	"context"
	"time"

	"github.com/arunvm123/trainbooking/booking-service/model"
)

// StatusTTL is how long the progress of a queued request stays readable
const StatusTTL = 24 * time.Hour

// CacheRepository defines the interface for reservation status caching
type CacheRepository interface {
	// GetReservationStatus returns nil, nil on a cache miss
	GetReservationStatus(ctx context.Context, requestID string) (*model.ReservationStatusUpdate, error)
	SetReservationStatus(ctx context.Context, status *model.ReservationStatusUpdate, ttl time.Duration) error
	InvalidateReservationStatus(ctx context.Context, requestID string) error

	// Health check
	Ping(ctx context.Context) error
}
