// Package config loads settings from the environment and an optional .env file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"go-simpler.org/env"

	"github.com/idilsaglam/nottodo/internal/model"
)

// Storage backends.
const (
	StoreJSON   = "json"
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

type Config struct {
	Store    string `env:"NOTTODO_STORE" default:"json"`
	Path     string `env:"NOTTODO_PATH"`
	RedisURL string `env:"NOTTODO_REDIS_URL" default:"redis://localhost:6379/0"`
	Key      string `env:"NOTTODO_KEY"`
	Theme    string `env:"NOTTODO_THEME" default:"classic"`
	LogLevel string `env:"LOG_LEVEL" default:"warn"`
	LogFile  string `env:"LOG_FILE"`
}

// Load reads .env (if present) and the process environment.
// The result is not validated; callers apply flag overrides and then Validate.
func Load() (*Config, error) {
	// a missing .env is the normal case
	_ = godotenv.Load()

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}
	return &cfg, nil
}

// Validate normalizes names and rejects values nothing can serve.
func (c *Config) Validate() error {
	c.Store = strings.ToLower(strings.TrimSpace(c.Store))
	c.Theme = strings.ToLower(strings.TrimSpace(c.Theme))

	switch c.Store {
	case StoreJSON, StoreSQLite, StoreRedis, StoreMemory:
	default:
		return fmt.Errorf("NOTTODO_STORE must be one of json, sqlite, redis, memory; got %q", c.Store)
	}
	switch c.Theme {
	case "classic", "neon", "mono":
	default:
		return fmt.Errorf("NOTTODO_THEME must be one of classic, neon, mono; got %q", c.Theme)
	}
	if c.Key != "" && strings.TrimSpace(c.Key) == "" {
		return fmt.Errorf("NOTTODO_KEY must not be blank")
	}
	if c.Store == StoreRedis && c.RedisURL == "" {
		return fmt.Errorf("NOTTODO_REDIS_URL is required for the redis store")
	}
	return nil
}

// StorageKey falls back to model.StorageKey when NOTTODO_KEY is unset.
func (c *Config) StorageKey() string {
	if c.Key == "" {
		return model.StorageKey
	}
	return c.Key
}

// DataPath returns Path, or the default file under ~/.nottodo for file backends.
func (c *Config) DataPath(fileName string) (string, error) {
	if c.Path != "" {
		return expandHome(c.Path)
	}
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// DataDir is ~/.nottodo.
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, ".nottodo"), nil
}

func expandHome(p string) (string, error) {
	if !strings.HasPrefix(p, "~/") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, p[2:]), nil
}
