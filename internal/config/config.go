// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/jobfiller/internal/logging"
)

// Storage backends.
const (
	StorageMemory   = "memory"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
)

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values come from the environment or defaults.
type Config struct {
	// Storage
	Storage     string `json:"storage,omitempty" validate:"omitempty,oneof=memory sqlite postgres redis"`
	SQLitePath  string `json:"sqlite_path,omitempty"`
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	RedisURL    string `json:"redis_url,omitempty"`

	// AI collaborator
	Provider      string `json:"provider,omitempty" validate:"omitempty,oneof=gemini openai"`
	APIKey        string `json:"api_key,omitempty"`
	Model         string `json:"model,omitempty"`
	OpenAIBaseURL string `json:"openai_base_url,omitempty" validate:"omitempty,url"`

	// Server
	Port int `json:"port,omitempty" validate:"gte=0,lte=65535"`

	// Logging
	LogLevel  string `json:"log_level,omitempty" validate:"omitempty,oneof=debug info warn error"`
	LogFormat string `json:"log_format,omitempty" validate:"omitempty,oneof=json pretty"`

	// Behavior
	UseBrowser bool `json:"use_browser,omitempty"` // open live pages in headless Chrome
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() Config {
	return Config{
		Storage:    StorageSQLite,
		SQLitePath: DefaultSQLitePath(),
		Provider:   "openai",
		Port:       8080,
		LogLevel:   "info",
		LogFormat:  "json",
	}
}

// DefaultSQLitePath is ~/.jobfiller/jobfiller.db, or a relative path when
// the home directory is unknown.
func DefaultSQLitePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "jobfiller.db"
	}
	return filepath.Join(home, ".jobfiller", "jobfiller.db")
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv reads configuration from environment variables. Unset variables
// leave fields empty. The API key comes from OPENAI_API_KEY, or GEMINI_API_KEY
// when the provider is gemini.
func FromEnv() Config {
	cfg := Config{
		Storage:       os.Getenv("JOBFILLER_STORAGE"),
		SQLitePath:    os.Getenv("JOBFILLER_SQLITE_PATH"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisURL:      os.Getenv("REDIS_URL"),
		Provider:      os.Getenv("JOBFILLER_PROVIDER"),
		Model:         os.Getenv("JOBFILLER_MODEL"),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
		LogLevel:      os.Getenv("LOG_LEVEL"),
		LogFormat:     os.Getenv("LOG_FORMAT"),
	}
	if cfg.Provider == "gemini" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	} else {
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if port, err := strconv.Atoi(os.Getenv("PORT")); err == nil {
		cfg.Port = port
	}
	return cfg
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	switch c.Storage {
	case StoragePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config error: 'database_url' is required for postgres storage")
		}
	case StorageRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("config error: 'redis_url' is required for redis storage")
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// Bools cannot distinguish unset from false and are never merged.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	merge := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}
	merge(&result.Storage, defaults.Storage)
	merge(&result.SQLitePath, defaults.SQLitePath)
	merge(&result.DatabaseURL, defaults.DatabaseURL)
	merge(&result.RedisURL, defaults.RedisURL)
	merge(&result.Provider, defaults.Provider)
	merge(&result.APIKey, defaults.APIKey)
	merge(&result.Model, defaults.Model)
	merge(&result.OpenAIBaseURL, defaults.OpenAIBaseURL)
	merge(&result.LogLevel, defaults.LogLevel)
	merge(&result.LogFormat, defaults.LogFormat)

	if result.Port == 0 {
		result.Port = defaults.Port
	}

	return result
}

// Logging returns the logger settings.
func (c *Config) Logging() logging.Config {
	return logging.Config{Level: c.LogLevel, Format: c.LogFormat}
}
