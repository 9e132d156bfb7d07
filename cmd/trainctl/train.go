package main

import (
	"fmt"
	"io"

	"github.com/arunvm123/trainbooking/booking-service/allocator"
	"github.com/arunvm123/trainbooking/booking-service/model"
	"github.com/spf13/cobra"
)

func newTrainCmd(load backendLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "train <train_id>",
		Short: "Show occupancy of a train per coach",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := load(cmd)
			if err != nil {
				return err
			}

			train, err := b.trains.GetTrain(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printTrain(cmd.OutOrStdout(), train)
			return nil
		},
	}
}

func newResetCmd(load backendLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "reset <train_id>",
		Short: "Clear every reservation on a train",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := load(cmd)
			if err != nil {
				return err
			}

			train, err := b.trains.ResetTrain(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printTrain(cmd.OutOrStdout(), train)
			return nil
		},
	}
}

func newReferenceCmd(load backendLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "reference",
		Short: "Fetch a fresh booking reference",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := load(cmd)
			if err != nil {
				return err
			}

			ref, err := b.refs.CreateBookingReference(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ref)
			return nil
		},
	}
}

func printTrain(w io.Writer, train *model.Train) {
	total := len(train.Seats)
	fmt.Fprintf(w, "train %s: %d/%d reserved, capacity %d\n",
		train.ID, train.ReservedCount(), total, allocator.Capacity(total))
	for _, view := range allocator.CoachViews(*train) {
		fmt.Fprintf(w, "  coach %s: %d/%d reserved, free %v\n",
			view.Coach, view.Reserved, view.Total, view.FreeSeats)
	}
}
