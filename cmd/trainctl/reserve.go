package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/arunvm123/trainbooking/booking-service/reservation"
	"github.com/spf13/cobra"
)

func newReserveCmd(load backendLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "reserve <train_id> <seat_count>",
		Short: "Reserve seats together in one coach",
		Long: `Reserves seat_count seats in a single coach of the train and prints the reservation as JSON.
A reservation with a null booking_reference means the seats could not be reserved.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			seatCount, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("seat_count must be an integer: %w", err)
			}

			b, err := load(cmd)
			if err != nil {
				return err
			}

			orchestrator := reservation.NewOrchestrator(b.trains, b.refs,
				reservation.WithMaxAttempts(b.maxAttempts),
				reservation.WithLogger(b.logger),
			)

			res, err := orchestrator.Reserve(cmd.Context(), args[0], seatCount)
			if err != nil {
				return err
			}
			return printJSON(cmd, res)
		},
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
