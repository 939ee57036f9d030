// Package config loads and validates process configuration from the environment.
package config

import (
	"fmt"
	"log/slog"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

// Store backends selectable via STORE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

type Config struct {
	AppEnv string `env:"APP_ENV" default:"development"`
	Port   string `env:"PORT" default:"5500"`

	StoreBackend string `env:"STORE_BACKEND" default:"redis"`
	RedisURL     string `env:"REDIS_URL"`
	DatabaseURL  string `env:"DATABASE_URL"`

	// Room codes are drawn uniformly from [RoomCodeMin, RoomCodeMax].
	RoomCodeMin int `env:"ROOM_CODE_MIN" default:"100000"`
	RoomCodeMax int `env:"ROOM_CODE_MAX" default:"999999"`

	// CreateRoomMaxAttempts bounds code regeneration on collision.
	CreateRoomMaxAttempts int `env:"CREATE_ROOM_MAX_ATTEMPTS" default:"5"`

	LogLevel  string `env:"LOG_LEVEL" default:"info"`
	LogFormat string `env:"LOG_FORMAT" default:"text"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	switch cfg.StoreBackend {
	case BackendMemory:
	case BackendRedis:
		if cfg.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required when STORE_BACKEND=redis")
		}
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when STORE_BACKEND=postgres")
		}
	default:
		return fmt.Errorf("STORE_BACKEND must be one of memory, redis, postgres; got %q", cfg.StoreBackend)
	}

	if cfg.RoomCodeMin < 0 || cfg.RoomCodeMax < cfg.RoomCodeMin {
		return fmt.Errorf("invalid room code range [%d, %d]", cfg.RoomCodeMin, cfg.RoomCodeMax)
	}

	if cfg.CreateRoomMaxAttempts < 1 {
		return fmt.Errorf("CREATE_ROOM_MAX_ATTEMPTS must be at least 1, got %d", cfg.CreateRoomMaxAttempts)
	}

	return nil
}
