package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"todo-store/internal/logging"
)

// Storage backends
const (
	BackendSQLite = "sqlite"
	BackendBolt   = "bolt"
)

// Fetch window modes
const (
	// WindowStatic keeps the instant captured at startup for every fetch
	WindowStatic = "static"
	// WindowDay recomputes the calendar day on every fetch
	WindowDay = "day"
)

// Config holds all configuration options for the todo store
type Config struct {
	Database    DatabaseConfig
	Query       QueryConfig
	Logging     LoggingConfig
	Application ApplicationConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Backend        string        `env:"TODO_DB_BACKEND"`
	Dir            string        `env:"TODO_DB_DIR"`
	Filename       string        `env:"TODO_DB_FILENAME"`
	Bucket         string        `env:"TODO_DB_BUCKET"`
	QueryTimeout   time.Duration `env:"TODO_DB_QUERY_TIMEOUT"`
	DirPermissions uint32        `env:"TODO_DB_DIR_PERMISSIONS"`
}

// QueryConfig holds fetch filter configuration
type QueryConfig struct {
	Window string `env:"TODO_QUERY_WINDOW"`
}

// LoggingConfig holds logger configuration
type LoggingConfig struct {
	Level    string `env:"TODO_LOG_LEVEL"`
	Encoding string `env:"TODO_LOG_ENCODING"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `env:"TODO_APP_TIMEOUT"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Database: DatabaseConfig{
			Backend:        BackendSQLite,
			Dir:            filepath.Join(homeDir, ".todo"),
			Filename:       "todo.db",
			Bucket:         "tasks",
			QueryTimeout:   10 * time.Second,
			DirPermissions: 0755,
		},
		Query: QueryConfig{
			Window: WindowStatic,
		},
		Logging: LoggingConfig{
			Level:    "warn",
			Encoding: "console",
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
		},
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// GetQueryTimeout returns the database query timeout
func (c *Config) GetQueryTimeout() time.Duration {
	return c.Database.QueryTimeout
}

// LoggerConfig returns the settings for logging.New
func (c *Config) LoggerConfig() logging.Config {
	return logging.Config{Level: c.Logging.Level, Encoding: c.Logging.Encoding}
}

// LoadFromEnvironment loads configuration from environment variables.
// Unparseable values are ignored and the previous value is kept.
func (c *Config) LoadFromEnvironment() error {
	// Database configuration
	if backend := os.Getenv("TODO_DB_BACKEND"); backend != "" {
		c.Database.Backend = strings.ToLower(backend)
	}
	if dir := os.Getenv("TODO_DB_DIR"); dir != "" {
		c.Database.Dir = dir
	}
	if filename := os.Getenv("TODO_DB_FILENAME"); filename != "" {
		c.Database.Filename = filename
	}
	if bucket := os.Getenv("TODO_DB_BUCKET"); bucket != "" {
		c.Database.Bucket = bucket
	}
	if timeout := os.Getenv("TODO_DB_QUERY_TIMEOUT"); timeout != "" {
		c.Database.QueryTimeout = ParseDurationWithFallback(timeout, c.Database.QueryTimeout)
	}
	if perms := os.Getenv("TODO_DB_DIR_PERMISSIONS"); perms != "" {
		c.Database.DirPermissions = ParseUint32WithFallback(perms, 8, c.Database.DirPermissions)
	}

	if window := os.Getenv("TODO_QUERY_WINDOW"); window != "" {
		c.Query.Window = strings.ToLower(window)
	}

	if level := os.Getenv("TODO_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if encoding := os.Getenv("TODO_LOG_ENCODING"); encoding != "" {
		c.Logging.Encoding = encoding
	}

	if timeout := os.Getenv("TODO_APP_TIMEOUT"); timeout != "" {
		c.Application.Timeout = ParseDurationWithFallback(timeout, c.Application.Timeout)
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	switch c.Database.Backend {
	case BackendSQLite, BackendBolt:
	default:
		return &ConfigError{Field: "database.backend", Message: "backend must be \"sqlite\" or \"bolt\""}
	}
	if c.Database.Dir == "" {
		return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
	}
	if c.Database.Filename == "" {
		return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
	}
	if c.Database.Backend == BackendBolt && c.Database.Bucket == "" {
		return &ConfigError{Field: "database.bucket", Message: "bucket cannot be empty"}
	}
	if c.Database.QueryTimeout <= 0 {
		return &ConfigError{Field: "database.query_timeout", Message: "query timeout must be positive"}
	}

	switch c.Query.Window {
	case WindowStatic, WindowDay:
	default:
		return &ConfigError{Field: "query.window", Message: "window must be \"static\" or \"day\""}
	}

	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return &ConfigError{Field: "logging.level", Message: err.Error()}
	}
	switch c.Logging.Encoding {
	case "console", "json":
	default:
		return &ConfigError{Field: "logging.encoding", Message: "encoding must be \"console\" or \"json\""}
	}

	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}

// ParseDurationWithFallback parses a duration string with a fallback value
func ParseDurationWithFallback(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}

// ParseUint32WithFallback parses a uint32 string with a fallback value
func ParseUint32WithFallback(s string, base int, fallback uint32) uint32 {
	if u, err := strconv.ParseUint(s, base, 32); err == nil {
		return uint32(u)
	}
	return fallback
}
