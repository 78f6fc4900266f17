package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// maxPresignExpiry is the longest expiry S3 accepts for a SigV4 presigned URL.
const maxPresignExpiry = 7 * 24 * time.Hour

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in a configuration.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("configuration validation failed:\n%s", strings.Join(msgs, "\n"))
}

// ValidateConfig checks the configuration and reports all problems at once
func ValidateConfig(cfg *Config) error {
	var errs ValidationErrors

	if port, err := strconv.Atoi(cfg.ServerPort); err != nil || port < 1 || port > 65535 {
		errs = append(errs, ValidationError{Field: "PORT", Message: fmt.Sprintf("invalid port %q", cfg.ServerPort)})
	}
	if cfg.ShutdownTimeout <= 0 {
		errs = append(errs, ValidationError{Field: "SHUTDOWN_TIMEOUT", Message: "must be positive"})
	}

	switch cfg.DatasetSource {
	case DatasetSourceFile:
		if cfg.DatasetPath == "" {
			errs = append(errs, ValidationError{Field: "DATASET_PATH", Message: "required for file dataset source"})
		}
	case DatasetSourceDatabase:
		if cfg.DatabaseURL == "" {
			errs = append(errs, ValidationError{Field: "DATABASE_URL", Message: "required for database dataset source"})
		}
		if cfg.DatabaseDriver != "postgres" && cfg.DatabaseDriver != "sqlite" {
			errs = append(errs, ValidationError{Field: "DATABASE_DRIVER", Message: fmt.Sprintf("unsupported driver %q", cfg.DatabaseDriver)})
		}
	default:
		errs = append(errs, ValidationError{Field: "DATASET_SOURCE", Message: fmt.Sprintf("unknown source %q", cfg.DatasetSource)})
	}

	if cfg.RateLimit < 0 {
		errs = append(errs, ValidationError{Field: "RATE_LIMIT", Message: "must not be negative"})
	}
	if cfg.RateLimit > 0 && cfg.RateLimitWindow <= 0 {
		errs = append(errs, ValidationError{Field: "RATE_LIMIT_WINDOW", Message: "must be positive"})
	}

	if cfg.ImagesEnabled() && (cfg.ImageURLTTL <= 0 || cfg.ImageURLTTL > maxPresignExpiry) {
		errs = append(errs, ValidationError{Field: "IMAGE_URL_TTL", Message: "must be between 0 and 7 days"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
