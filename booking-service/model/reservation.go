package model

import (
	"time"

	"github.com/lib/pq"
)

// Reservation is the outcome of a reservation request. A reservation with no booking
// reference and no seats means the request could not be fulfilled.
type Reservation struct {
	TrainID          string   `json:"train_id"`
	BookingReference *string  `json:"booking_reference"`
	Seats            []string `json:"seats"`
}

func NewReservation(trainID, bookingReference string, seats []string) Reservation {
	ref := bookingReference
	return Reservation{
		TrainID:          trainID,
		BookingReference: &ref,
		Seats:            append([]string(nil), seats...),
	}
}

func EmptyReservation(trainID string) Reservation {
	return Reservation{TrainID: trainID, Seats: []string{}}
}

func (r Reservation) IsEmpty() bool {
	return r.BookingReference == nil
}

// Reference returns the booking reference or "" when there is none.
func (r Reservation) Reference() string {
	if r.BookingReference == nil {
		return ""
	}
	return *r.BookingReference
}

// Reservation lifecycle states as recorded in the history table
const (
	StatusProcessing  = "processing"
	StatusConfirmed   = "confirmed"
	StatusUnfulfilled = "unfulfilled"
	StatusFailed      = "failed"
)

// ============================================================================
// DATABASE ENTITIES (Internal - GORM only, no JSON tags)
// ============================================================================

// ReservationRecord is the history entry of one reservation request
type ReservationRecord struct {
	ID               string         `gorm:"primary_key;type:uuid"`
	RequestID        string         `gorm:"type:varchar(64);not null;uniqueIndex"`
	TrainID          string         `gorm:"type:varchar(255);not null;index"`
	SeatCount        int            `gorm:"not null"`
	Status           string         `gorm:"type:varchar(20);not null;default:'processing'"`
	BookingReference *string        `gorm:"type:varchar(64);index"`
	Seats            pq.StringArray `gorm:"type:text[]"`
	ContactEmail     string         `gorm:"type:varchar(255)"`
	ErrorMessage     *string        `gorm:"type:text"`
	CreatedAt        time.Time      `gorm:"default:CURRENT_TIMESTAMP"`
	CompletedAt      *time.Time
}

// TableName sets the table name for GORM
func (ReservationRecord) TableName() string {
	return "reservations"
}

// ============================================================================
// REPOSITORY DATA TRANSFER OBJECTS (Internal - no JSON tags)
// ============================================================================

// CreateRecordRequest represents the data needed to open a history entry
type CreateRecordRequest struct {
	RequestID    string
	TrainID      string
	SeatCount    int
	ContactEmail string
}

// CompleteRecordRequest closes a history entry with its outcome
type CompleteRecordRequest struct {
	RequestID    string
	Status       string
	Reservation  *Reservation
	ErrorMessage *string
	CompletedAt  time.Time
}

// ============================================================================
// API DATA TRANSFER OBJECTS (External - JSON tags for HTTP)
// ============================================================================

// ReserveAPIRequest is the body of POST /api/reserve. SeatCount is validated by the
// orchestrator so that every invalid count maps to the same error.
type ReserveAPIRequest struct {
	TrainID   string `json:"train_id"`
	SeatCount int    `json:"seat_count"`
}

// ReservationRequestAPIRequest is the body of POST /api/reservation-requests
type ReservationRequestAPIRequest struct {
	TrainID      string `json:"train_id" binding:"required"`
	SeatCount    int    `json:"seat_count" binding:"required,gt=0"`
	ContactEmail string `json:"contact_email" binding:"omitempty,email"`
}

// ReservationRequestResponse is returned when a request is queued
type ReservationRequestResponse struct {
	RequestID string `json:"request_id"`
	Status    string `json:"status"`
	Message   string `json:"message"`
	StatusURL string `json:"status_url"`
}

// ReservationStatusUpdate is the cached progress of a queued request
type ReservationStatusUpdate struct {
	RequestID   string       `json:"request_id"`
	Status      string       `json:"status"`
	Message     string       `json:"message"`
	Reservation *Reservation `json:"reservation,omitempty"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// ReservationRecordResponse is the API view of a history entry
type ReservationRecordResponse struct {
	RequestID        string     `json:"request_id"`
	TrainID          string     `json:"train_id"`
	SeatCount        int        `json:"seat_count"`
	Status           string     `json:"status"`
	BookingReference *string    `json:"booking_reference"`
	Seats            []string   `json:"seats"`
	ErrorMessage     *string    `json:"error_message,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Service   string            `json:"service"`
	Checks    map[string]string `json:"checks,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

// ErrorResponse represents error response structure
type ErrorResponse struct {
	Error   string      `json:"error"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// ============================================================================
// KAFKA MESSAGE STRUCTURES
// ============================================================================

// ReservationRequestMessage is sent to the reservation request topic
type ReservationRequestMessage struct {
	RequestID    string    `json:"request_id"`
	TrainID      string    `json:"train_id"`
	SeatCount    int       `json:"seat_count"`
	ContactEmail string    `json:"contact_email,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// Notification types
const (
	NotificationReservationConfirmed   = "reservation_confirmed"
	NotificationReservationUnfulfilled = "reservation_unfulfilled"
)

// ReservationNotification is sent to the notification topic
type ReservationNotification struct {
	Type            string                      `json:"type"`
	RecipientEmail  string                      `json:"recipient_email"`
	ReservationData NotificationReservationData `json:"reservation_data"`
	Timestamp       time.Time                   `json:"timestamp"`
}

// NotificationReservationData carries the reservation in a notification
type NotificationReservationData struct {
	RequestID        string   `json:"request_id"`
	TrainID          string   `json:"train_id"`
	SeatCount        int      `json:"seat_count"`
	BookingReference string   `json:"booking_reference,omitempty"`
	Seats            []string `json:"seats"`
}

// ============================================================================
// CONVERSION METHODS
// ============================================================================

// ToRecordResponse converts a ReservationRecord entity to its API view
func (r *ReservationRecord) ToRecordResponse() *ReservationRecordResponse {
	seats := []string(r.Seats)
	if seats == nil {
		seats = []string{}
	}
	return &ReservationRecordResponse{
		RequestID:        r.RequestID,
		TrainID:          r.TrainID,
		SeatCount:        r.SeatCount,
		Status:           r.Status,
		BookingReference: r.BookingReference,
		Seats:            seats,
		ErrorMessage:     r.ErrorMessage,
		CreatedAt:        r.CreatedAt,
		CompletedAt:      r.CompletedAt,
	}
}

// ToReservation rebuilds the reservation a finished record describes
func (r *ReservationRecord) ToReservation() *Reservation {
	if r.Status != StatusConfirmed && r.Status != StatusUnfulfilled {
		return nil
	}
	if r.BookingReference == nil {
		res := EmptyReservation(r.TrainID)
		return &res
	}
	res := NewReservation(r.TrainID, *r.BookingReference, r.Seats)
	return &res
}

// NewNotification builds the notification for a finished reservation
func NewNotification(msg ReservationRequestMessage, res Reservation, now time.Time) ReservationNotification {
	notificationType := NotificationReservationConfirmed
	if res.IsEmpty() {
		notificationType = NotificationReservationUnfulfilled
	}
	return ReservationNotification{
		Type:           notificationType,
		RecipientEmail: msg.ContactEmail,
		ReservationData: NotificationReservationData{
			RequestID:        msg.RequestID,
			TrainID:          res.TrainID,
			SeatCount:        msg.SeatCount,
			BookingReference: res.Reference(),
			Seats:            res.Seats,
		},
		Timestamp: now,
	}
}
