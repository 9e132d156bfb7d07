package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/arunvm123/trainbooking/train-data-service/model"
	"github.com/arunvm123/trainbooking/train-data-service/repository"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PoolConfig carries the connection pool settings.
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type PostgresTrainRepository struct {
	db *gorm.DB
}

func NewTrainRepository(databaseURL string, pool PoolConfig, logger *slog.Logger) (*PostgresTrainRepository, error) {
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

	if err := db.AutoMigrate(&model.Train{}, &model.Seat{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	logger.Info("database connected and train tables migrated")

	return &PostgresTrainRepository{db: db}, nil
}

func (r *PostgresTrainRepository) GetTrain(ctx context.Context, trainID string) (*model.TrainData, error) {
	db := r.db.WithContext(ctx)
	if err := r.trainExists(db, trainID); err != nil {
		return nil, err
	}

	var seats []model.Seat
	if err := db.Where("train_id = ?", trainID).Find(&seats).Error; err != nil {
		return nil, fmt.Errorf("failed to load seats: %w", err)
	}
	return model.ToTrainData(seats), nil
}

// Reserve locks the requested seat rows, validates them and writes the reference in
// one transaction.
func (r *PostgresTrainRepository) Reserve(ctx context.Context, req model.ReserveRequest) (*model.TrainData, error) {
	var result *model.TrainData

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.trainExists(tx, req.TrainID); err != nil {
			return err
		}

		var locked []model.Seat
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("train_id = ? AND seat_id IN ?", req.TrainID, req.Seats).
			Order("seat_id").
			Find(&locked).Error; err != nil {
			return fmt.Errorf("failed to lock seats: %w", err)
		}

		bySeatID := make(map[string]model.Seat, len(locked))
		for _, seat := range locked {
			bySeatID[seat.SeatID] = seat
		}

		var missing []string
		for _, seatID := range req.Seats {
			if _, ok := bySeatID[seatID]; !ok {
				missing = append(missing, seatID)
			}
		}
		if len(missing) > 0 {
			return &repository.SeatsError{Err: repository.ErrSeatsDoNotExist, Seats: missing}
		}

		var taken []string
		for _, seatID := range req.Seats {
			if bySeatID[seatID].BookingReference != nil {
				taken = append(taken, seatID)
			}
		}
		if len(taken) > 0 {
			return &repository.SeatsError{Err: repository.ErrSeatsAlreadyReserved, Seats: taken}
		}

		if err := tx.Model(&model.Seat{}).
			Where("train_id = ? AND seat_id IN ?", req.TrainID, req.Seats).
			Update("booking_reference", req.BookingReference).Error; err != nil {
			return fmt.Errorf("failed to reserve seats: %w", err)
		}

		var seats []model.Seat
		if err := tx.Where("train_id = ?", req.TrainID).Find(&seats).Error; err != nil {
			return fmt.Errorf("failed to load seats: %w", err)
		}
		result = model.ToTrainData(seats)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PostgresTrainRepository) Reset(ctx context.Context, trainID string) (*model.TrainData, error) {
	var result *model.TrainData

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.trainExists(tx, trainID); err != nil {
			return err
		}

		if err := tx.Model(&model.Seat{}).
			Where("train_id = ?", trainID).
			Update("booking_reference", gorm.Expr("NULL")).Error; err != nil {
			return fmt.Errorf("failed to reset train: %w", err)
		}

		var seats []model.Seat
		if err := tx.Where("train_id = ?", trainID).Find(&seats).Error; err != nil {
			return fmt.Errorf("failed to load seats: %w", err)
		}
		result = model.ToTrainData(seats)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// Seed inserts trains that do not exist yet. Existing ledgers are left untouched so a
// restart never wipes reservations.
func (r *PostgresTrainRepository) Seed(ctx context.Context, trains map[string]model.TrainData) error {
	for trainID, data := range trains {
		err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			train := model.Train{ID: trainID}
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&train)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return nil
			}

			seats := r.generateSeats(trainID, &data)
			if len(seats) == 0 {
				return nil
			}
			return tx.CreateInBatches(seats, 100).Error
		})
		if err != nil {
			return fmt.Errorf("failed to seed train %s: %w", trainID, err)
		}
	}
	return nil
}

func (r *PostgresTrainRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *PostgresTrainRepository) trainExists(db *gorm.DB, trainID string) error {
	var train model.Train
	if err := db.Where("id = ?", trainID).First(&train).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return repository.ErrTrainNotFound
		}
		return fmt.Errorf("failed to get train: %w", err)
	}
	return nil
}

func (r *PostgresTrainRepository) generateSeats(trainID string, data *model.TrainData) []model.Seat {
	seats := make([]model.Seat, 0, len(data.Seats))
	for _, seatID := range data.SeatIDs() {
		s := data.Seats[seatID]
		seat := model.Seat{
			ID:         uuid.New().String(),
			TrainID:    trainID,
			SeatID:     seatID,
			SeatNumber: s.SeatNumber,
			Coach:      s.Coach,
		}
		if s.BookingReference != "" {
			ref := s.BookingReference
			seat.BookingReference = &ref
		}
		seats = append(seats, seat)
	}
	return seats
}
