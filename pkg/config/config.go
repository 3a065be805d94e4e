package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	// Server configuration
	Server ServerConfig

	// Auth configuration
	Auth AuthConfig

	// Database configuration
	Database DatabaseConfig

	// CORS configuration
	CORS CORSConfig

	// Logging
	LogLevel string
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// AuthConfig holds the authentication surface configuration.
type AuthConfig struct {
	// JWTSecret signs session tokens. Required; the server refuses to
	// start without it.
	JWTSecret string

	// RESTPrefix is the path segment the REST endpoints are mounted under.
	RESTPrefix string

	// SflowAPIKey and OwnerSetUp seed the runtime settings store.
	SflowAPIKey string
	OwnerSetUp  bool

	// SettingsFile, when set, is a JSON file watched for runtime setting
	// changes (API key, owner flag).
	SettingsFile string
}

// DatabaseConfig holds PostgreSQL connection configuration.
type DatabaseConfig struct {
	PostgresURL string
}

// CORSConfig holds the allowed-origin policy. Origins lists exact
// matches; Patterns lists domain substrings matched with strings.Contains.
type CORSConfig struct {
	Origins  []string
	Patterns []string
}

// Default allowed-origin policy: local development frontends plus the
// production sflow domains and the worksapp partner domain.
var (
	defaultCORSOrigins = []string{
		"http://127.0.0.1:8080",
		"http://localhost:8080",
		"http://127.0.0.1:8083",
		"http://localhost:8083",
		"https://sf.easiio.cn",
	}
	defaultCORSPatterns = []string{
		"sflow.io",
		"sflow.pro",
		"sflow.cc",
		"worksapp.com",
	}
)

// LoadConfig loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnv("SFLOW_HOST", "0.0.0.0"),
			Port:            getEnv("SFLOW_PORT", "5678"),
			ReadTimeout:     getEnvDuration("SFLOW_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getEnvDuration("SFLOW_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:     getEnvDuration("SFLOW_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getEnvDuration("SFLOW_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Auth: AuthConfig{
			JWTSecret:    getEnv("SFLOW_JWT_SECRET", ""),
			RESTPrefix:   getEnv("SFLOW_REST_PREFIX", "rest"),
			SflowAPIKey:  getEnv("SFLOW_API_KEY", ""),
			OwnerSetUp:   getEnvBool("SFLOW_OWNER_SET_UP", false),
			SettingsFile: getEnv("SFLOW_SETTINGS_FILE", ""),
		},
		Database: DatabaseConfig{
			PostgresURL: getEnv("SFLOW_POSTGRES_URL", ""),
		},
		CORS: CORSConfig{
			Origins:  getEnvList("SFLOW_CORS_ORIGINS", defaultCORSOrigins),
			Patterns: getEnvList("SFLOW_CORS_PATTERNS", defaultCORSPatterns),
		},
		LogLevel: getEnv("SFLOW_LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if c.Auth.RESTPrefix == "" {
		return fmt.Errorf("REST prefix is required")
	}
	if strings.Contains(c.Auth.RESTPrefix, "/") {
		return fmt.Errorf("REST prefix must be a single path segment")
	}
	if c.Database.PostgresURL == "" {
		return fmt.Errorf("postgres URL is required")
	}
	return nil
}

// getEnv returns an environment variable value or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns a boolean environment variable or a default.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.ToLower(value) == "true" || value == "1"
	}
	return defaultValue
}

// getEnvDuration returns a duration environment variable or a default.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getEnvList returns a comma-separated environment variable as a slice,
// or a default.
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
