// Package config loads the server configuration from the environment.
//
// Variables are read with a MOLDRAW_ prefix, after a .env file in the
// working directory (if any) has been merged into the environment:
//
//	MOLDRAW_ADDR=:8080
//	MOLDRAW_REDIS_URL=redis://localhost:6379/0
//	MOLDRAW_CACHE_DIR=/var/cache/moldraw
package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Prefix is the environment variable prefix.
const Prefix = "MOLDRAW"

type Config struct {
	Addr string `envconfig:"ADDR" default:":8080"`

	// RedisURL selects a shared Redis cache. When empty, CacheDir is used;
	// when both are empty, caching is off.
	RedisURL string        `envconfig:"REDIS_URL"`
	CacheDir string        `envconfig:"CACHE_DIR"`
	CacheTTL time.Duration `envconfig:"CACHE_TTL" default:"24h"`

	MaxBodyBytes   int64         `envconfig:"MAX_BODY_BYTES" default:"1048576"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"30s"`
	// MaxConcurrent bounds the number of drawings rendered at once.
	MaxConcurrent int `envconfig:"MAX_CONCURRENT" default:"8"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads the optional env files, then the environment.
// Missing env files are ignored.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, err
	}
	if cfg.MaxBodyBytes <= 0 {
		return nil, errors.New("MOLDRAW_MAX_BODY_BYTES must be positive")
	}
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 1
	}
	return &cfg, nil
}
