package repository

import (
	"context"
	"errors"

	"github.com/arunvm123/trainbooking/booking-service/model"
)

var ErrRecordNotFound = errors.New("reservation record not found")

// ReservationRepository defines the interface for the reservation history
type ReservationRepository interface {
	CreateRecord(ctx context.Context, req model.CreateRecordRequest) (*model.ReservationRecord, error)
	CompleteRecord(ctx context.Context, req model.CompleteRecordRequest) error
	GetByRequestID(ctx context.Context, requestID string) (*model.ReservationRecord, error)
	GetByBookingReference(ctx context.Context, bookingReference string) (*model.ReservationRecord, error)

	// Health check
	Ping(ctx context.Context) error
}
