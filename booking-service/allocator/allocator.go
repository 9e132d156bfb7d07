// Package allocator picks the seats for a booking from a train snapshot.
//
// The train-wide occupancy ceiling is hard: a booking that would take the train above
// 70% of its seats is refused. Within that limit every seat of a booking comes from one
// coach, and the coach left least full after the booking is preferred.
package allocator

import (
	"sort"
	"strconv"

	"github.com/arunvm123/trainbooking/booking-service/model"
)

// Train-wide ceiling as a fraction: at most MaxOccupancyNum/MaxOccupancyDen of all seats
// may be reserved.
const (
	MaxOccupancyNum = 7
	MaxOccupancyDen = 10
)

// CoachView aggregates one coach of a snapshot.
type CoachView struct {
	Coach string
	// Seat ids in ascending seat-number order
	SeatIDs   []string
	FreeSeats []string
	Reserved  int
	Total     int
}

// Allocation is a set of seats from a single coach, in ascending seat-number order.
type Allocation struct {
	Coach string
	Seats []string
}

// Capacity returns how many seats of a train of the given size may be reserved in total.
func Capacity(totalSeats int) int {
	return totalSeats * MaxOccupancyNum / MaxOccupancyDen
}

// Allocate chooses seatCount seats of train. It returns false when the booking would
// break the train-wide ceiling or no single coach has enough free seats.
func Allocate(train model.Train, seatCount int) (Allocation, bool) {
	if seatCount <= 0 {
		return Allocation{}, false
	}

	total := len(train.Seats)
	if train.ReservedCount()+seatCount > Capacity(total) {
		return Allocation{}, false
	}

	var best *CoachView
	for _, view := range CoachViews(train) {
		if len(view.FreeSeats) < seatCount {
			continue
		}
		if best == nil || prefer(view, *best, seatCount) {
			v := view
			best = &v
		}
	}
	if best == nil {
		return Allocation{}, false
	}

	seats := make([]string, seatCount)
	copy(seats, best.FreeSeats[:seatCount])
	return Allocation{Coach: best.Coach, Seats: seats}, true
}

// prefer reports whether coach a beats coach b for a booking of seatCount seats.
// Ratios are compared by cross-multiplication so no floating point is involved.
func prefer(a, b CoachView, seatCount int) bool {
	lhs := (a.Reserved + seatCount) * b.Total
	rhs := (b.Reserved + seatCount) * a.Total
	if lhs != rhs {
		return lhs < rhs
	}
	return a.Coach < b.Coach
}

// CoachViews groups the seats of train by coach, ordered by coach id.
func CoachViews(train model.Train) []CoachView {
	byCoach := make(map[string][]string)
	for id, seat := range train.Seats {
		byCoach[seat.Coach] = append(byCoach[seat.Coach], id)
	}

	views := make([]CoachView, 0, len(byCoach))
	for coach, ids := range byCoach {
		sortSeats(train, ids)

		view := CoachView{Coach: coach, SeatIDs: ids, Total: len(ids)}
		for _, id := range ids {
			if train.Seats[id].IsFree() {
				view.FreeSeats = append(view.FreeSeats, id)
			} else {
				view.Reserved++
			}
		}
		views = append(views, view)
	}

	sort.Slice(views, func(i, j int) bool { return views[i].Coach < views[j].Coach })
	return views
}

// sortSeats orders seat ids by numeric seat number. Non-numeric seat numbers sort after
// numeric ones; remaining ties fall back to the seat id.
func sortSeats(train model.Train, ids []string) {
	sort.Slice(ids, func(i, j int) bool {
		ni, errI := strconv.Atoi(train.Seats[ids[i]].SeatNumber)
		nj, errJ := strconv.Atoi(train.Seats[ids[j]].SeatNumber)
		switch {
		case errI == nil && errJ == nil && ni != nj:
			return ni < nj
		case errI == nil && errJ != nil:
			return true
		case errI != nil && errJ == nil:
			return false
		}
		return ids[i] < ids[j]
	})
}
