package main

import (
	"log/slog"

	"github.com/arunvm123/trainbooking/booking-service/config"
	"github.com/arunvm123/trainbooking/booking-service/service"
	httpservice "github.com/arunvm123/trainbooking/booking-service/service/http"
	"github.com/arunvm123/trainbooking/internal/logging"
	"github.com/arunvm123/trainbooking/internal/serviceauth"
	"github.com/spf13/cobra"
)

// backends is everything a command talks to
type backends struct {
	trains      service.TrainDataService
	refs        service.BookingReferenceService
	maxAttempts int
	logger      *slog.Logger
}

type backendLoader func(cmd *cobra.Command) (*backends, error)

func newRootCmd(load backendLoader) *cobra.Command {
	root := &cobra.Command{
		Use:           "trainctl",
		Short:         "trainctl reserves seats on trains from the command line",
		Long:          `trainctl runs the ticket office reservation flow against the configured train data and booking reference services.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Persistent flags (available to all commands)
	root.PersistentFlags().String("config", "", "Path to a booking-service config.yaml (defaults to environment variables)")
	root.PersistentFlags().String("train-data-url", "", "Override the train data service base URL")
	root.PersistentFlags().String("booking-reference-url", "", "Override the booking reference service base URL")
	root.PersistentFlags().String("log-level", "", "Override the log level (debug, info, warn, error)")

	root.AddCommand(
		newReserveCmd(load),
		newTrainCmd(load),
		newResetCmd(load),
		newReferenceCmd(load),
	)
	return root
}

// loadBackends builds HTTP clients from the booking-service configuration
func loadBackends(cmd *cobra.Command) (*backends, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Initialise(path, path == "")
	if err != nil {
		return nil, err
	}

	if url, _ := cmd.Flags().GetString("train-data-url"); url != "" {
		cfg.TrainData.BaseURL = url
	}
	if url, _ := cmd.Flags().GetString("booking-reference-url"); url != "" {
		cfg.BookingReference.BaseURL = url
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}

	tokens := serviceauth.NewTokenService(cfg.JWTSecret, "trainctl")
	return &backends{
		trains:      httpservice.NewHTTPTrainDataService(&cfg.TrainData, tokens),
		refs:        httpservice.NewHTTPBookingReferenceService(&cfg.BookingReference),
		maxAttempts: cfg.Reservation.MaxAttempts,
		logger:      logging.New(logging.ParseLevel(cfg.LogLevel)),
	}, nil
}
