package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds the settings for the storefront API server, populated from
// environment variables.
type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=discgolf"`
}

type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR,        default=localhost:6379"`
	DB       int           `env:"REDIS_DB,          default=0"`
	CacheTTL time.Duration `env:"REDIS_CATALOG_TTL, default=30s"`
}

// ClientConfig holds the settings for the storefront client binary.
type ClientConfig struct {
	BaseURL  string `env:"API_BASE_URL, default=http://localhost:8080"`
	LogLevel string `env:"LOG_LEVEL,    default=warn"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return &cfg, nil
}

// LoadClient reads the storefront client configuration.
func LoadClient(ctx context.Context) (*ClientConfig, error) {
	var cfg ClientConfig
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return &cfg, nil
}
