package config

import (
	"os"
	"strconv"
	"time"

	"telemarketing/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig
	Upload    UploadConfig
	Dashboard DashboardConfig
	Logging   LoggingConfig
	Profiling ProfilingConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// UploadConfig bounds what the loader accepts
type UploadConfig struct {
	MaxBytes            int64
	MaxConcurrentParses int64
}

// DashboardConfig holds analysis and presentation settings
type DashboardConfig struct {
	OutcomeColumn string
	PreviewRows   int
	SessionTTL    time.Duration
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level string
}

// ProfilingConfig holds performance profiling settings
type ProfilingConfig struct {
	Port    string
	Enabled bool
}

// MinSessionTTL is the shortest accepted idle timeout for sessions
const MinSessionTTL = time.Minute

// Default returns the configuration used when no environment is set
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:    "8080",
			GinMode: "debug",
		},
		Upload: UploadConfig{
			MaxBytes:            50 * 1024 * 1024,
			MaxConcurrentParses: 4,
		},
		Dashboard: DashboardConfig{
			OutcomeColumn: "y",
			PreviewRows:   5,
			SessionTTL:    2 * time.Hour,
		},
		Logging: LoggingConfig{
			Level: "INFO",
		},
		Profiling: ProfilingConfig{
			Port:    "6060",
			Enabled: false,
		},
	}
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	defaults := Default()
	config := &Config{
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", defaults.Server.Port),
			GinMode: getEnvOrDefault("GIN_MODE", defaults.Server.GinMode),
		},
		Upload: UploadConfig{
			MaxBytes:            getEnvInt64OrDefault("UPLOAD_MAX_BYTES", defaults.Upload.MaxBytes),
			MaxConcurrentParses: getEnvInt64OrDefault("MAX_CONCURRENT_PARSES", defaults.Upload.MaxConcurrentParses),
		},
		Dashboard: DashboardConfig{
			OutcomeColumn: getEnvOrDefault("OUTCOME_COLUMN", defaults.Dashboard.OutcomeColumn),
			PreviewRows:   getEnvIntOrDefault("PREVIEW_ROWS", defaults.Dashboard.PreviewRows),
			SessionTTL:    getEnvDurationOrDefault("SESSION_TTL", defaults.Dashboard.SessionTTL),
		},
		Logging: LoggingConfig{
			Level: getEnvOrDefault("LOG_LEVEL", defaults.Logging.Level),
		},
		Profiling: ProfilingConfig{
			Port:    getEnvOrDefault("PPROF_PORT", defaults.Profiling.Port),
			Enabled: getEnvBoolOrDefault("PPROF_ENABLED", defaults.Profiling.Enabled),
		},
	}

	if err := Validate(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

// Validate checks the fields that have no usable zero value
func Validate(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if config.Upload.MaxBytes <= 0 {
		return errors.ConfigInvalid("UPLOAD_MAX_BYTES must be positive")
	}
	if config.Upload.MaxConcurrentParses <= 0 {
		return errors.ConfigInvalid("MAX_CONCURRENT_PARSES must be positive")
	}
	if config.Dashboard.OutcomeColumn == "" {
		return errors.ConfigInvalid("OUTCOME_COLUMN is required")
	}
	if config.Dashboard.PreviewRows <= 0 {
		return errors.ConfigInvalid("PREVIEW_ROWS must be positive")
	}
	if config.Dashboard.SessionTTL < MinSessionTTL {
		return errors.ConfigInvalid("SESSION_TTL must be at least " + MinSessionTTL.String())
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
