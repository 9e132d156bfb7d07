package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Port             string      `yaml:"port" env:"PORT" env-default:"8083"`
	LogLevel         string      `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	JWTSecret        string      `yaml:"jwt_secret" env:"JWT_SECRET" env-required:"true"`
	Database         Database    `yaml:"database"`
	Redis            Redis       `yaml:"redis"`
	Kafka            Kafka       `yaml:"kafka"`
	TrainData        Upstream    `yaml:"train_data" env-prefix:"TRAIN_DATA_"`
	BookingReference Upstream    `yaml:"booking_reference" env-prefix:"BOOKING_REFERENCE_"`
	Reservation      Reservation `yaml:"reservation"`
	Worker           Worker      `yaml:"worker"`
}

type Reservation struct {
	MaxAttempts int `yaml:"max_attempts" env:"RESERVATION_MAX_ATTEMPTS" env-default:"3"`
}

type Worker struct {
	MaxWorkers  int    `yaml:"max_workers" env:"WORKER_MAX_WORKERS" env-default:"20"`
	MetricsPort string `yaml:"metrics_port" env:"WORKER_METRICS_PORT" env-default:"9102"`
}

type Database struct {
	User         string `yaml:"user" env:"DB_USER" env-default:"postgres"`
	Password     string `yaml:"password" env:"DB_PASSWORD" env-default:""`
	DatabaseName string `yaml:"database_name" env:"DB_NAME" env-default:"bookings"`
	Host         string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port         string `yaml:"port" env:"DB_PORT" env-default:"5432"`
	SSLMode      string `yaml:"ssl_mode" env:"DB_SSL_MODE" env-default:"disable"`

	// Connection Pool Settings
	MaxOpenConns    int `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS" env-default:"25"`
	MaxIdleConns    int `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS" env-default:"10"`
	ConnMaxLifetime int `yaml:"conn_max_lifetime_minutes" env:"DB_CONN_MAX_LIFETIME" env-default:"30"`
}

func (d *Database) GetDatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DatabaseName, d.SSLMode)
}

func (d *Database) GetConnMaxLifetime() time.Duration {
	return time.Duration(d.ConnMaxLifetime) * time.Minute
}

type Redis struct {
	Host     string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD" env-default:""`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

func (r *Redis) GetRedisURL() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}

type Kafka struct {
	Brokers           []string `yaml:"brokers" env:"KAFKA_BROKERS" env-default:"localhost:9092" env-separator:","`
	RequestTopic      string   `yaml:"request_topic" env:"KAFKA_REQUEST_TOPIC" env-default:"reservation-requests"`
	NotificationTopic string   `yaml:"notification_topic" env:"KAFKA_NOTIFICATION_TOPIC" env-default:"reservation-notifications"`
	ConsumerGroup     string   `yaml:"consumer_group" env:"KAFKA_CONSUMER_GROUP" env-default:"booking-service"`
}

// Upstream describes one of the HTTP services the ticket office depends on.
type Upstream struct {
	BaseURL string `yaml:"base_url" env:"URL"`

	// HTTP Connection Pool Settings
	MaxIdleConns        int `yaml:"max_idle_conns" env:"MAX_IDLE_CONNS" env-default:"20"`
	MaxIdleConnsPerHost int `yaml:"max_idle_conns_per_host" env:"MAX_IDLE_CONNS_PER_HOST" env-default:"10"`
	MaxConnsPerHost     int `yaml:"max_conns_per_host" env:"MAX_CONNS_PER_HOST" env-default:"20"`
	IdleConnTimeout     int `yaml:"idle_conn_timeout_seconds" env:"IDLE_CONN_TIMEOUT" env-default:"90"`
	RequestTimeout      int `yaml:"request_timeout_seconds" env:"REQUEST_TIMEOUT" env-default:"10"`
}

func (c *Config) setUpstreamDefaults() {
	if c.TrainData.BaseURL == "" {
		c.TrainData.BaseURL = "http://localhost:8081"
	}
	if c.BookingReference.BaseURL == "" {
		c.BookingReference.BaseURL = "http://localhost:8082"
	}
}

func Initialise(configPath string, useEnv bool) (*Config, error) {
	cfg := &Config{}

	if !useEnv && configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			if err := cleanenv.ReadConfig(configPath, cfg); err != nil {
				return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
			}
			cfg.setUpstreamDefaults()
			return cfg, nil
		}
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment variables: %w", err)
	}
	cfg.setUpstreamDefaults()

	return cfg, nil
}
