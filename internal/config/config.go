package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the server configuration, loaded from the environment
type Config struct {
	HTTPAddr       string     `env:"HTTP_ADDR" envDefault:":8080"`
	LogLevel       slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	StorageBackend string     `env:"STORAGE_BACKEND" envDefault:"memory"`
	RedisURL       string     `env:"REDIS_URL" envDefault:"redis://localhost:6379"`
	DictionaryPath string     `env:"DICTIONARY_PATH" envDefault:""`

	SessionDuration  time.Duration `env:"SESSION_DURATION" envDefault:"24h"`
	RoomGracePeriod  time.Duration `env:"ROOM_GRACE_PERIOD" envDefault:"2m"`
	RoomIdleTimeout  time.Duration `env:"ROOM_IDLE_TIMEOUT" envDefault:"10m"`
	EvictionInterval time.Duration `env:"EVICTION_INTERVAL" envDefault:"30s"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}
