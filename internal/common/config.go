// Package common provides shared utilities for stockquery
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for stockquery
type Config struct {
	Environment string        `toml:"environment"`
	Server      ServerConfig  `toml:"server"`
	Storage     StorageConfig `toml:"storage"`
	Clients     ClientsConfig `toml:"clients"`
	Query       QueryConfig   `toml:"query"`
	Logging     LoggingConfig `toml:"logging"`
	Auth        AuthConfig    `toml:"auth"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// StorageConfig holds path configuration for the 2 storage areas.
type StorageConfig struct {
	Internal AreaConfig `toml:"internal"` // User accounts + system KV (BadgerHold)
	Index    AreaConfig `toml:"index"`    // Cached index bars (BadgerHold)
}

// AreaConfig holds path configuration for a storage area.
type AreaConfig struct {
	Path string `toml:"path"`
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	Polygon PolygonConfig `toml:"polygon"`
	EODHD   EODHDConfig   `toml:"eodhd"`
	Gemini  GeminiConfig  `toml:"gemini"`
}

// PolygonConfig holds reference-data service configuration
type PolygonConfig struct {
	BaseURL   string `toml:"base_url"`
	APIKey    string `toml:"api_key"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *PolygonConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// EODHDConfig holds market-data provider configuration
type EODHDConfig struct {
	BaseURL   string `toml:"base_url"`
	APIKey    string `toml:"api_key"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *EODHDConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// GeminiConfig holds Gemini API configuration for the optional LLM extractor
type GeminiConfig struct {
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"`
}

// QueryConfig holds query-interpretation configuration.
type QueryConfig struct {
	Extractor  string `toml:"extractor"`   // "prose" (default) or "gemini"
	MaxMatches int    `toml:"max_matches"` // price points returned per match, default 10
}

// GetMaxMatches returns the configured match cap, defaulting to 10.
func (c *QueryConfig) GetMaxMatches() int {
	if c.MaxMatches <= 0 {
		return 10
	}
	return c.MaxMatches
}

// AuthConfig holds token issuance configuration.
type AuthConfig struct {
	JWTSecret   string `toml:"jwt_secret"`
	TokenExpiry string `toml:"token_expiry"` // duration string, default "24h"
}

// GetTokenExpiry parses and returns the token expiry duration.
func (c *AuthConfig) GetTokenExpiry() time.Duration {
	d, err := time.ParseDuration(c.TokenExpiry)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Storage: StorageConfig{
			Internal: AreaConfig{Path: "data/internal"},
			Index:    AreaConfig{Path: "data/index"},
		},
		Clients: ClientsConfig{
			Polygon: PolygonConfig{
				BaseURL:   "https://api.polygon.io",
				RateLimit: 5,
				Timeout:   "30s",
			},
			EODHD: EODHDConfig{
				BaseURL:   "https://eodhd.com/api",
				RateLimit: 10,
				Timeout:   "30s",
			},
			Gemini: GeminiConfig{
				Model: "gemini-2.0-flash",
			},
		},
		Query: QueryConfig{
			Extractor:  "prose",
			MaxMatches: 10,
		},
		Auth: AuthConfig{
			JWTSecret:   "dev-jwt-secret-change-in-production",
			TokenExpiry: "24h",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("STOCKQUERY_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("STOCKQUERY_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("STOCKQUERY_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("STOCKQUERY_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if path := os.Getenv("STOCKQUERY_DATA_PATH"); path != "" {
		config.Storage.Internal.Path = path + "/internal"
		config.Storage.Index.Path = path + "/index"
	}

	if v := os.Getenv("POLYGON_API_KEY"); v != "" {
		config.Clients.Polygon.APIKey = v
	}
	if v := os.Getenv("EODHD_API_KEY"); v != "" {
		config.Clients.EODHD.APIKey = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		config.Clients.Gemini.APIKey = v
	}

	if v := os.Getenv("STOCKQUERY_AUTH_JWT_SECRET"); v != "" {
		config.Auth.JWTSecret = v
	}
	if v := os.Getenv("STOCKQUERY_AUTH_TOKEN_EXPIRY"); v != "" {
		config.Auth.TokenExpiry = v
	}

	if v := os.Getenv("STOCKQUERY_EXTRACTOR"); v != "" {
		config.Query.Extractor = strings.ToLower(v)
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
