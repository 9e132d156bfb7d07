package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Port     string `yaml:"port" env:"PORT" env-default:"8084"`
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	Kafka    Kafka  `yaml:"kafka"`
	Email    Email  `yaml:"email"`
}

type Kafka struct {
	Brokers           []string `yaml:"brokers" env:"KAFKA_BROKERS" env-default:"localhost:9092" env-separator:","`
	NotificationTopic string   `yaml:"notification_topic" env:"KAFKA_NOTIFICATION_TOPIC" env-default:"reservation-notifications"`
	ConsumerGroup     string   `yaml:"consumer_group" env:"KAFKA_CONSUMER_GROUP" env-default:"notification-service"`
}

type Email struct {
	FromEmail string `yaml:"from_email" env:"FROM_EMAIL" env-default:"noreply@trainbooking.example"`
	FromName  string `yaml:"from_name" env:"FROM_NAME" env-default:"Train Booking System"`
}

// From renders the sender header
func (e *Email) From() string {
	return fmt.Sprintf("%s <%s>", e.FromName, e.FromEmail)
}

func Initialise(configPath string, useEnv bool) (*Config, error) {
	cfg := &Config{}

	if !useEnv && configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			if err := cleanenv.ReadConfig(configPath, cfg); err != nil {
				return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
			}
			return cfg, nil
		}
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment variables: %w", err)
	}

	return cfg, nil
}
