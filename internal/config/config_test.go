package config_test

import (
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/idilsaglam/nottodo/internal/config"
)

func clearEnv(c *qt.C) {
	for _, k := range []string{"NOTTODO_STORE", "NOTTODO_PATH", "NOTTODO_REDIS_URL", "NOTTODO_KEY", "NOTTODO_THEME", "LOG_LEVEL", "LOG_FILE"} {
		c.Unsetenv(k)
	}
}

func TestLoad_Defaults(t *testing.T) {
	c := qt.New(t)
	clearEnv(c)

	cfg, err := config.Load()
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.Store, qt.Equals, "json")
	c.Assert(cfg.Key, qt.Equals, "")
	c.Assert(cfg.StorageKey(), qt.Equals, "notTodoItems")
	c.Assert(cfg.Theme, qt.Equals, "classic")
	c.Assert(cfg.LogLevel, qt.Equals, "warn")
	c.Assert(cfg.RedisURL, qt.Equals, "redis://localhost:6379/0")
	c.Assert(cfg.Validate(), qt.IsNil)
}

func TestLoad_FromEnv(t *testing.T) {
	c := qt.New(t)
	clearEnv(c)
	c.Setenv("NOTTODO_STORE", "SQLite")
	c.Setenv("NOTTODO_PATH", "/tmp/x.db")
	c.Setenv("NOTTODO_KEY", "mine")
	c.Setenv("NOTTODO_THEME", "neon")

	cfg, err := config.Load()
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.Validate(), qt.IsNil)
	c.Assert(cfg.Store, qt.Equals, config.StoreSQLite)
	c.Assert(cfg.Path, qt.Equals, "/tmp/x.db")
	c.Assert(cfg.StorageKey(), qt.Equals, "mine")
	c.Assert(cfg.Theme, qt.Equals, "neon")
}

func TestValidate_Errors(t *testing.T) {
	c := qt.New(t)

	tests := []struct {
		name    string
		cfg     config.Config
		wantErr string
	}{
		{
			name:    "unknown store",
			cfg:     config.Config{Store: "etcd", Theme: "classic", Key: "k"},
			wantErr: `NOTTODO_STORE must be one of .*"etcd"`,
		},
		{
			name:    "unknown theme",
			cfg:     config.Config{Store: "json", Theme: "vapor", Key: "k"},
			wantErr: `NOTTODO_THEME must be one of .*"vapor"`,
		},
		{
			name:    "blank key",
			cfg:     config.Config{Store: "json", Theme: "mono", Key: "  "},
			wantErr: "NOTTODO_KEY must not be blank",
		},
		{
			name:    "redis without url",
			cfg:     config.Config{Store: "redis", Theme: "mono", Key: "k"},
			wantErr: "NOTTODO_REDIS_URL is required.*",
		},
	}
	for _, tt := range tests {
		c.Run(tt.name, func(c *qt.C) {
			cfg := tt.cfg
			c.Assert(cfg.Validate(), qt.ErrorMatches, tt.wantErr)
		})
	}
}

func TestDataPath(t *testing.T) {
	c := qt.New(t)
	home := c.TempDir()
	c.Setenv("HOME", home)

	c.Run("default under ~/.nottodo", func(c *qt.C) {
		cfg := &config.Config{}
		p, err := cfg.DataPath("storage.json")
		c.Assert(err, qt.IsNil)
		c.Assert(p, qt.Equals, filepath.Join(home, ".nottodo", "storage.json"))
	})

	c.Run("explicit path with tilde", func(c *qt.C) {
		cfg := &config.Config{Path: "~/lists/x.json"}
		p, err := cfg.DataPath("storage.json")
		c.Assert(err, qt.IsNil)
		c.Assert(p, qt.Equals, filepath.Join(home, "lists", "x.json"))
	})

	c.Run("explicit absolute path", func(c *qt.C) {
		cfg := &config.Config{Path: "/var/lib/x.json"}
		p, err := cfg.DataPath("storage.json")
		c.Assert(err, qt.IsNil)
		c.Assert(p, qt.Equals, "/var/lib/x.json")
	})
}

func TestStorageKey_Fallback(t *testing.T) {
	c := qt.New(t)
	cfg := &config.Config{}
	c.Assert(cfg.StorageKey(), qt.Equals, "notTodoItems")
}
