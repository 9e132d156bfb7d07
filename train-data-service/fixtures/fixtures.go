// Package fixtures loads the initial seat ledger. The file maps train ids to their
// seats; both YAML and JSON documents are accepted.
package fixtures

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/arunvm123/trainbooking/train-data-service/model"
	"gopkg.in/yaml.v3"
)

// Load reads the fixtures file at path.
func Load(path string) (map[string]model.TrainData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fixtures %s: %w", path, err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode parses a fixtures document and fills in missing seat numbers and coaches from
// the seat id ("12B" is seat 12 of coach B).
func Decode(r io.Reader) (map[string]model.TrainData, error) {
	trains := make(map[string]model.TrainData)
	if err := yaml.NewDecoder(r).Decode(&trains); err != nil {
		if errors.Is(err, io.EOF) {
			return trains, nil
		}
		return nil, fmt.Errorf("failed to decode fixtures: %w", err)
	}

	for trainID, train := range trains {
		if train.Seats == nil {
			train.Seats = make(map[string]model.SeatData)
		}
		for seatID, seat := range train.Seats {
			number, coach := splitSeatID(seatID)
			if seat.SeatNumber == "" {
				seat.SeatNumber = number
			}
			if seat.Coach == "" {
				seat.Coach = coach
			}
			if seat.Coach == "" {
				return nil, fmt.Errorf("seat %s of train %s has no coach", seatID, trainID)
			}
			train.Seats[seatID] = seat
		}
		trains[trainID] = train
	}

	return trains, nil
}

func splitSeatID(seatID string) (number, coach string) {
	i := strings.IndexFunc(seatID, func(r rune) bool { return !unicode.IsDigit(r) })
	if i < 0 {
		return seatID, ""
	}
	return seatID[:i], seatID[i:]
}
