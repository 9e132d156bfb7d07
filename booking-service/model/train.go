package model

import (
	"strings"
	"unicode"
)

// Seat is one seat of a train snapshot. An empty BookingReference means the seat is free.
type Seat struct {
	SeatNumber       string
	Coach            string
	BookingReference string
}

func (s Seat) IsFree() bool {
	return s.BookingReference == ""
}

// Train is a point-in-time snapshot of a train's seats keyed by seat id ("1A").
// It is never mutated once fetched.
type Train struct {
	ID    string
	Seats map[string]Seat
}

// ReservedCount returns how many seats of the snapshot carry a booking reference.
func (t *Train) ReservedCount() int {
	n := 0
	for _, seat := range t.Seats {
		if !seat.IsFree() {
			n++
		}
	}
	return n
}

// ============================================================================
// TRAIN DATA WIRE FORMAT
// ============================================================================

// TrainDataResponse is the body of GET /data_for_train/:train_id
type TrainDataResponse struct {
	Seats map[string]SeatData `json:"seats"`
}

// SeatData is one seat as reported by the train data service
type SeatData struct {
	SeatNumber       string `json:"seat_number"`
	Coach            string `json:"coach"`
	BookingReference string `json:"booking_reference"`
}

// ReserveSeatsRequest is the body of POST /reserve
type ReserveSeatsRequest struct {
	TrainID          string   `json:"train_id"`
	BookingReference string   `json:"booking_reference"`
	Seats            []string `json:"seats"`
}

// ToTrain converts the wire format into a snapshot. Seats that omit coach or seat
// number get them from the seat id.
func (r *TrainDataResponse) ToTrain(trainID string) *Train {
	train := &Train{ID: trainID, Seats: make(map[string]Seat, len(r.Seats))}
	for id, data := range r.Seats {
		number, coach := SplitSeatID(id)
		if data.SeatNumber != "" {
			number = data.SeatNumber
		}
		if data.Coach != "" {
			coach = data.Coach
		}
		train.Seats[id] = Seat{
			SeatNumber:       number,
			Coach:            coach,
			BookingReference: data.BookingReference,
		}
	}
	return train
}

// SplitSeatID splits "12B" into seat number "12" and coach "B".
func SplitSeatID(seatID string) (number, coach string) {
	i := strings.IndexFunc(seatID, func(r rune) bool { return !unicode.IsDigit(r) })
	if i < 0 {
		return seatID, ""
	}
	return seatID[:i], seatID[i:]
}
