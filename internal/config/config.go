// Package config loads server settings from defaults, an optional config
// file and WORDGRID_* environment variables.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable
const EnvPrefix = "WORDGRID"

// Config holds the server settings
type Config struct {
	Port             int           `mapstructure:"port"`
	LogLevel         string        `mapstructure:"log_level"`
	StorageType      string        `mapstructure:"storage_type"`
	RedisURL         string        `mapstructure:"redis_url"`
	SQLitePath       string        `mapstructure:"sqlite_path"`
	DictionarySource string        `mapstructure:"dictionary_source"`
	DailySource      string        `mapstructure:"daily_source"`
	SessionTTL       time.Duration `mapstructure:"session_ttl"`
}

// Defaults returns the settings used when nothing overrides them
func Defaults() Config {
	return Config{
		Port:             8080,
		LogLevel:         "info",
		StorageType:      "memory",
		RedisURL:         "redis://localhost:6379",
		SQLitePath:       "wordgrid.db",
		DictionarySource: "data/dictionary.json",
		DailySource:      "data/grids.json",
		SessionTTL:       24 * time.Hour,
	}
}

// Load reads configuration. configFile may be empty, in which case
// WORDGRID_CONFIG is consulted; with neither set only defaults and the
// environment apply.
func Load(configFile string) (Config, error) {
	v := viper.New()

	defaults := Defaults()
	v.SetDefault("port", defaults.Port)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("storage_type", defaults.StorageType)
	v.SetDefault("redis_url", defaults.RedisURL)
	v.SetDefault("sqlite_path", defaults.SQLitePath)
	v.SetDefault("dictionary_source", defaults.DictionarySource)
	v.SetDefault("daily_source", defaults.DailySource)
	v.SetDefault("session_ttl", defaults.SessionTTL)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configFile == "" {
		configFile = v.GetString("config")
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail later at startup
func (c Config) Validate() error {
	switch c.StorageType {
	case "memory", "redis", "sqlite":
	default:
		return fmt.Errorf("invalid storage type %q: must be memory, redis or sqlite", c.StorageType)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.SessionTTL < 0 {
		return fmt.Errorf("invalid session ttl %s", c.SessionTTL)
	}
	return nil
}

// Addr is the listen address for the HTTP server
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// SlogLevel maps LogLevel onto a slog level, defaulting to info
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
