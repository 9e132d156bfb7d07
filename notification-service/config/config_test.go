package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialise_Defaults(t *testing.T) {
	cfg, err := Initialise("", true)
	require.NoError(t, err)

	assert.Equal(t, "8084", cfg.Port)
	assert.Equal(t, "reservation-notifications", cfg.Kafka.NotificationTopic)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "Train Booking System <noreply@trainbooking.example>", cfg.Email.From())
}

func TestInitialise_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: \"9000\"\nkafka:\n  notification_topic: alerts\n"), 0o600))

	cfg, err := Initialise(path, false)
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "alerts", cfg.Kafka.NotificationTopic)
	assert.Equal(t, "notification-service", cfg.Kafka.ConsumerGroup)
}
