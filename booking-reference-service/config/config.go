package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	CounterMemory = "memory"
	CounterRedis  = "redis"
)

type Config struct {
	Port     string  `yaml:"port" env:"PORT" env-default:"8082"`
	LogLevel string  `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	Counter  Counter `yaml:"counter"`
	Redis    Redis   `yaml:"redis"`
}

type Counter struct {
	Driver string `yaml:"driver" env:"COUNTER_DRIVER" env-default:"memory"`
	Seed   uint64 `yaml:"seed" env:"COUNTER_SEED" env-default:"123456789"`
}

type Redis struct {
	Host     string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD" env-default:""`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
	Key      string `yaml:"key" env:"REDIS_COUNTER_KEY" env-default:"booking_reference:counter"`
}

func (r *Redis) GetRedisURL() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
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
