package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"burntest/internal/errors"

	"github.com/go-playground/validator/v10"
)

// Config represents the complete application configuration
type Config struct {
	Server  ServerConfig
	Backend BackendConfig
	Storage StorageConfig
	Reports ReportConfig
	Log     LogConfig
	Session SessionConfig
	Metrics MetricsConfig
}

// ServerConfig holds listen settings for the dashboard UI and the backend API
type ServerConfig struct {
	Port    string `validate:"required,numeric"`
	APIPort string `validate:"required,numeric"`
	GinMode string `validate:"oneof=debug release test"`
}

// BackendConfig describes how the dashboard reaches the REST backend
type BackendConfig struct {
	URL string `validate:"required,url"`
	// Timeout of zero means requests wait indefinitely.
	Timeout time.Duration
}

// StorageConfig selects where imported order lines live
type StorageConfig struct {
	Driver      string `validate:"oneof=xlsx postgres"`
	DataFile    string `validate:"required_if=Driver xlsx"`
	DatabaseURL string `validate:"required_if=Driver postgres"`
	UploadDir   string `validate:"required"`
	TemplateDir string `validate:"required"`
}

// ReportConfig selects where generated reports are archived
type ReportConfig struct {
	Storage  string `validate:"oneof=local s3"`
	Dir      string `validate:"required_if=Storage local"`
	Bucket   string `validate:"required_if=Storage s3"`
	Prefix   string
	Region   string
	// Endpoint overrides the S3 endpoint, e.g. for LocalStack
	Endpoint string
}

// LogConfig holds logger settings
type LogConfig struct {
	Env string `validate:"oneof=development production"`
}

// SessionConfig holds dashboard session settings
type SessionConfig struct {
	TTL time.Duration
}

// MetricsConfig toggles the prometheus endpoint
type MetricsConfig struct {
	Enabled bool
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	timeout, err := getEnvDurationOrDefault("REQUEST_TIMEOUT", 0)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load backend configuration")
	}
	sessionTTL, err := getEnvDurationOrDefault("SESSION_TTL", 30*time.Minute)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load session configuration")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			APIPort: getEnvOrDefault("API_PORT", "8000"),
			GinMode: getEnvOrDefault("GIN_MODE", "release"),
		},
		Backend: BackendConfig{
			URL:     getEnvOrDefault("BACKEND_URL", "http://localhost:8000/api"),
			Timeout: timeout,
		},
		Storage: StorageConfig{
			Driver:      strings.ToLower(getEnvOrDefault("STORE_DRIVER", "xlsx")),
			DataFile:    getEnvOrDefault("DATA_FILE", "data/data.xlsx"),
			DatabaseURL: os.Getenv("DATABASE_URL"),
			UploadDir:   getEnvOrDefault("UPLOAD_DIR", "uploads"),
			TemplateDir: getEnvOrDefault("TEMPLATE_DIR", "templates"),
		},
		Reports: ReportConfig{
			Storage:  strings.ToLower(getEnvOrDefault("REPORT_STORAGE", "local")),
			Dir:      getEnvOrDefault("EXPORT_DIR", "exports"),
			Bucket:   os.Getenv("S3_BUCKET"),
			Prefix:   getEnvOrDefault("S3_PREFIX", "reports/"),
			Region:   getEnvOrDefault("AWS_REGION", "us-east-1"),
			Endpoint: os.Getenv("AWS_S3_ENDPOINT"),
		},
		Log: LogConfig{
			Env: getEnvOrDefault("APP_ENV", "development"),
		},
		Session: SessionConfig{
			TTL: sessionTTL,
		},
		Metrics: MetricsConfig{
			Enabled: getEnvBoolOrDefault("METRICS_ENABLED", true),
		},
	}

	if err := Validate(cfg); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return cfg, nil
}

// Validate checks struct tags plus the rules tags cannot express
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			problems := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				problems = append(problems, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
			}
			return errors.ConfigInvalid("invalid fields: " + strings.Join(problems, ", "))
		}
		return errors.Wrap(err, "validator failed")
	}
	if cfg.Backend.Timeout < 0 {
		return errors.ConfigInvalid("REQUEST_TIMEOUT must not be negative")
	}
	if cfg.Session.TTL <= 0 {
		return errors.ConfigInvalid("SESSION_TTL must be positive")
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

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return 0, errors.ConfigInvalid(fmt.Sprintf("%s: %v", key, err))
	}
	return duration, nil
}
