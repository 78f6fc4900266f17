package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Dataset source kinds
const (
	DatasetSourceFile     = "file"
	DatasetSourceDatabase = "database"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerHost      string
	ServerPort      string
	PublicURL       string
	ShutdownTimeout time.Duration

	// Dataset configuration
	DatasetSource  string
	DatasetPath    string
	DatabaseDriver string
	DatabaseURL    string

	// Rate limiting is opt-in; a zero RateLimit disables it
	RedisURL        string
	RateLimit       int
	RateLimitWindow time.Duration

	// Image storage; images are disabled when S3BucketName is empty
	S3BucketName  string
	S3ImagePrefix string
	S3Endpoint    string
	AWSRegion     string
	ImageURLTTL   time.Duration
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := &Config{Environment: env}

	var errs ValidationErrors

	cfg.ServerHost = getEnv("HOST", env.DefaultHost())
	cfg.ServerPort = getEnv("PORT", "8080")
	cfg.PublicURL = firstEnv("PUBLIC_URL", "RAILWAY_STATIC_URL", "RAILWAY_PUBLIC_DOMAIN")
	cfg.ShutdownTimeout = getDuration("SHUTDOWN_TIMEOUT", 5*time.Second, &errs)

	cfg.DatasetSource = getEnv("DATASET_SOURCE", DatasetSourceFile)
	cfg.DatasetPath = getEnv("DATASET_PATH", filepath.Join("data", "ingredientes_macros.json"))
	cfg.DatabaseDriver = getEnv("DATABASE_DRIVER", "postgres")
	cfg.DatabaseURL = getEnvOrSecret("DATABASE_URL", "database_url")

	cfg.RedisURL = getEnvOrSecret("REDIS_URL", "redis_url")
	cfg.RateLimit = getInt("RATE_LIMIT", 0, &errs)
	cfg.RateLimitWindow = getDuration("RATE_LIMIT_WINDOW", time.Minute, &errs)

	cfg.S3BucketName = os.Getenv("S3_BUCKET_NAME")
	cfg.S3ImagePrefix = getEnv("S3_IMAGE_PREFIX", "ingredients/")
	cfg.S3Endpoint = os.Getenv("S3_ENDPOINT")
	cfg.AWSRegion = os.Getenv("AWS_REGION")
	cfg.ImageURLTTL = getDuration("IMAGE_URL_TTL", 15*time.Minute, &errs)

	if len(errs) > 0 {
		return nil, fmt.Errorf("failed to load %s configuration: %w", env, errs)
	}

	// Validate the configuration
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// BaseURL returns the public URL of the API used in startup messages.
func (c *Config) BaseURL() string {
	if c.PublicURL == "" {
		host := c.ServerHost
		if host == "0.0.0.0" || host == "" {
			host = "localhost"
		}
		return "http://" + host + ":" + c.ServerPort
	}
	if !strings.Contains(c.PublicURL, "://") {
		return "https://" + strings.TrimSuffix(c.PublicURL, "/")
	}
	return strings.TrimSuffix(c.PublicURL, "/")
}

// ImagesEnabled reports whether an image bucket is configured.
func (c *Config) ImagesEnabled() bool {
	return c.S3BucketName != ""
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v
		}
	}
	return ""
}

// getEnvOrSecret prefers the environment variable and falls back to a Docker secret.
func getEnvOrSecret(key, secret string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return readSecret(secret)
}

func getInt(key string, fallback int, errs *ValidationErrors) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		*errs = append(*errs, ValidationError{Field: key, Message: fmt.Sprintf("invalid integer %q", raw)})
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration, errs *ValidationErrors) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		*errs = append(*errs, ValidationError{Field: key, Message: fmt.Sprintf("invalid duration %q", raw)})
		return fallback
	}
	return v
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
