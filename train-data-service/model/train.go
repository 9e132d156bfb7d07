package model

import (
	"sort"
	"time"
)

// ===============================
// Database Entities (Internal)
// ===============================

// Train represents the train entity in the database
type Train struct {
	ID        string `gorm:"type:text;primary_key"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Seats []Seat `gorm:"foreignKey:TrainID"`
}

// Seat represents one seat of a train. BookingReference is nil while the seat is free.
type Seat struct {
	ID               string  `gorm:"type:text;primary_key"`
	TrainID          string  `gorm:"type:text;not null;uniqueIndex:idx_train_seat"`
	SeatID           string  `gorm:"type:text;not null;uniqueIndex:idx_train_seat"`
	SeatNumber       string  `gorm:"not null"`
	Coach            string  `gorm:"not null"`
	BookingReference *string `gorm:"type:text"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ===============================
// Repository DTOs (Internal)
// ===============================

// SeatData is the state of one seat as seen by callers of the repository.
type SeatData struct {
	SeatNumber       string `yaml:"seat_number"`
	Coach            string `yaml:"coach"`
	BookingReference string `yaml:"booking_reference"`
}

// TrainData is the seat ledger of one train keyed by seat id ("1A").
type TrainData struct {
	Seats map[string]SeatData `yaml:"seats"`
}

// Clone returns a deep copy so callers never share the ledger map.
func (t *TrainData) Clone() *TrainData {
	out := &TrainData{Seats: make(map[string]SeatData, len(t.Seats))}
	for id, seat := range t.Seats {
		out.Seats[id] = seat
	}
	return out
}

// SeatIDs returns the seat ids in a stable order.
func (t *TrainData) SeatIDs() []string {
	ids := make([]string, 0, len(t.Seats))
	for id := range t.Seats {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ReserveRequest represents input for reserving seats in repository layer
type ReserveRequest struct {
	TrainID          string
	BookingReference string
	Seats            []string
}

// ToTrainData converts database rows to the repository DTO
func ToTrainData(seats []Seat) *TrainData {
	data := &TrainData{Seats: make(map[string]SeatData, len(seats))}
	for _, s := range seats {
		ref := ""
		if s.BookingReference != nil {
			ref = *s.BookingReference
		}
		data.Seats[s.SeatID] = SeatData{
			SeatNumber:       s.SeatNumber,
			Coach:            s.Coach,
			BookingReference: ref,
		}
	}
	return data
}

// ===============================
// API DTOs (External)
// ===============================

// ReserveAPIRequest represents the API request for reserving seats
type ReserveAPIRequest struct {
	TrainID          string   `json:"train_id" binding:"required"`
	BookingReference string   `json:"booking_reference" binding:"required"`
	Seats            []string `json:"seats" binding:"required,min=1"`
}

// ToReserveRequest converts API request to repository request
func (r *ReserveAPIRequest) ToReserveRequest() ReserveRequest {
	return ReserveRequest{
		TrainID:          r.TrainID,
		BookingReference: r.BookingReference,
		Seats:            r.Seats,
	}
}

// SeatResponse represents one seat in API responses
type SeatResponse struct {
	SeatNumber       string `json:"seat_number"`
	Coach            string `json:"coach"`
	BookingReference string `json:"booking_reference"`
}

// TrainResponse represents the seat ledger of a train in API responses
type TrainResponse struct {
	Seats map[string]SeatResponse `json:"seats"`
}

// ToTrainResponse converts the repository DTO to the API DTO
func (t *TrainData) ToTrainResponse() *TrainResponse {
	resp := &TrainResponse{Seats: make(map[string]SeatResponse, len(t.Seats))}
	for id, seat := range t.Seats {
		resp.Seats[id] = SeatResponse{
			SeatNumber:       seat.SeatNumber,
			Coach:            seat.Coach,
			BookingReference: seat.BookingReference,
		}
	}
	return resp
}

// ErrorResponse represents error responses
type ErrorResponse struct {
	Error   string      `json:"error"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// HealthResponse represents health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Service   string    `json:"service"`
	Storage   string    `json:"storage"`
	Timestamp time.Time `json:"timestamp"`
}
