package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration. The mapstructure tags carry the
// underscored viper keys onto the Go field names.
type Config struct {
	Server Server `mapstructure:"server"`
	UI     UI     `mapstructure:"ui"`
	Cache  Cache  `mapstructure:"cache"`
	Log    Log    `mapstructure:"log"`
}

// Server holds platform API settings.
type Server struct {
	BaseURL        string `mapstructure:"base_url"`
	Community      string `mapstructure:"community"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// UI holds presentation settings.
type UI struct {
	CommunitiesFile string `mapstructure:"communities_file"`
	Theme           string `mapstructure:"theme"`
}

// Cache holds local read-cache settings.
type Cache struct {
	Path string `mapstructure:"path"`
}

// Log holds file-logger settings.
type Log struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level"`
}

// Load reads configuration from file and env. Env var overrides use prefix
// KINDLING_, e.g. KINDLING_SERVER_BASE_URL.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("server.base_url", "https://api.kindling.cc")
	v.SetDefault("server.community", "")
	v.SetDefault("server.timeout_seconds", 15)
	v.SetDefault("ui.communities_file", "")
	v.SetDefault("ui.theme", "dark")
	v.SetDefault("cache.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "kindling", "cache.db"))
	v.SetDefault("log.path", filepath.Join(os.Getenv("HOME"), ".local", "state", "kindling", "kindling.log"))
	v.SetDefault("log.level", "info")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("KINDLING_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "kindling"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("KINDLING")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.Server.TimeoutSeconds <= 0 {
		c.Server.TimeoutSeconds = 15
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if
// needed. Only non-sensitive settings live here; the session token never
// goes through this file.
func Save(cfg Config) error {
	path := os.Getenv("KINDLING_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "kindling", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("server.base_url", cfg.Server.BaseURL)
	v.Set("server.community", cfg.Server.Community)
	v.Set("server.timeout_seconds", cfg.Server.TimeoutSeconds)
	v.Set("ui.communities_file", cfg.UI.CommunitiesFile)
	v.Set("ui.theme", cfg.UI.Theme)
	v.Set("cache.path", cfg.Cache.Path)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
