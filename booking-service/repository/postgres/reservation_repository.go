package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/arunvm123/trainbooking/booking-service/model"
	"github.com/arunvm123/trainbooking/booking-service/repository"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// PoolConfig carries the connection pool settings.
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type PostgresReservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(databaseURL string, pool PoolConfig, logger *slog.Logger) (*PostgresReservationRepository, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if pool.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(pool.ConnMaxLifetime)
	}

	// Auto-migrate the reservation table
	if err := db.AutoMigrate(&model.ReservationRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	logger.Info("database connected and reservation table migrated")

	return &PostgresReservationRepository{db: db}, nil
}

// CreateRecord opens a history entry in processing state
func (r *PostgresReservationRepository) CreateRecord(ctx context.Context, req model.CreateRecordRequest) (*model.ReservationRecord, error) {
	record := &model.ReservationRecord{
		ID:           uuid.NewString(),
		RequestID:    req.RequestID,
		TrainID:      req.TrainID,
		SeatCount:    req.SeatCount,
		Status:       model.StatusProcessing,
		Seats:        pq.StringArray{},
		ContactEmail: req.ContactEmail,
	}

	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, fmt.Errorf("failed to create reservation record: %w", err)
	}

	return record, nil
}

// CompleteRecord stores the outcome of a request
func (r *PostgresReservationRepository) CompleteRecord(ctx context.Context, req model.CompleteRecordRequest) error {
	updates := map[string]interface{}{
		"status":       req.Status,
		"completed_at": req.CompletedAt,
	}

	if req.Reservation != nil {
		updates["booking_reference"] = req.Reservation.BookingReference
		updates["seats"] = pq.StringArray(req.Reservation.Seats)
	}

	if req.ErrorMessage != nil {
		updates["error_message"] = *req.ErrorMessage
	}

	result := r.db.WithContext(ctx).Model(&model.ReservationRecord{}).
		Where("request_id = ?", req.RequestID).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to complete reservation record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrRecordNotFound
	}

	return nil
}

// GetByRequestID retrieves a record by the id of the request that created it
func (r *PostgresReservationRepository) GetByRequestID(ctx context.Context, requestID string) (*model.ReservationRecord, error) {
	return r.first(ctx, "request_id = ?", requestID)
}

// GetByBookingReference retrieves the record of a confirmed reservation
func (r *PostgresReservationRepository) GetByBookingReference(ctx context.Context, bookingReference string) (*model.ReservationRecord, error) {
	return r.first(ctx, "booking_reference = ?", bookingReference)
}

func (r *PostgresReservationRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *PostgresReservationRepository) first(ctx context.Context, query string, arg string) (*model.ReservationRecord, error) {
	var record model.ReservationRecord
	err := r.db.WithContext(ctx).Where(query, arg).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get reservation record: %w", err)
	}

	return &record, nil
}
