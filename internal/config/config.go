package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config carries every tunable of the service. Breaker and retry settings
// mirror the resilient classification client's policy knobs.
type Config struct {
	Host               string
	Port               string
	RequestTimeout     time.Duration
	MaxRequestBodySize int64

	// Classification provider
	VisionAPIKey    string
	LabelMaxResults int64

	// Resilient client policy
	CallTimeout    time.Duration
	MaxRetries     int
	RetryBaseDelay time.Duration

	// Circuit breaker
	FailureThreshold         int
	ResetTimeout             time.Duration
	HalfOpenSuccessThreshold int

	// Rate-by-URL fetching
	ImageFetchTimeout time.Duration
}

func (c *Config) ServerAddress() string {
	host := strings.TrimSpace(c.Host)
	port := strings.TrimSpace(c.Port)
	return net.JoinHostPort(host, port)
}

func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Host:               getEnvOrDefault("HOST", "0.0.0.0"),
		Port:               getEnvOrDefault("PORT", "8080"),
		RequestTimeout:     parseDurationOrDefault("REQUEST_TIMEOUT", 60*time.Second),
		MaxRequestBodySize: parseIntOrDefault("MAX_REQUEST_BODY_SIZE", 10*1024*1024), // 10MB

		VisionAPIKey:    os.Getenv("VISION_API_KEY"),
		LabelMaxResults: parseIntOrDefault("LABEL_MAX_RESULTS", 20),

		CallTimeout:    parseDurationOrDefault("CLASSIFY_CALL_TIMEOUT", 30*time.Second),
		MaxRetries:     int(parseIntOrDefault("CLASSIFY_MAX_RETRIES", 3)),
		RetryBaseDelay: parseDurationOrDefault("CLASSIFY_RETRY_BASE_DELAY", 500*time.Millisecond),

		FailureThreshold:         int(parseIntOrDefault("BREAKER_FAILURE_THRESHOLD", 5)),
		ResetTimeout:             parseDurationOrDefault("BREAKER_RESET_TIMEOUT", 60*time.Second),
		HalfOpenSuccessThreshold: int(parseIntOrDefault("BREAKER_HALF_OPEN_SUCCESSES", 2)),

		ImageFetchTimeout: parseDurationOrDefault("IMAGE_FETCH_TIMEOUT", 15*time.Second),
	}

	// Validate port is numeric and in range
	p, err := strconv.Atoi(strings.TrimSpace(cfg.Port))
	if err != nil || p < 1 || p > 65535 {
		return nil, fmt.Errorf("invalid PORT: %q", cfg.Port)
	}
	if cfg.MaxRequestBodySize <= 0 {
		return nil, fmt.Errorf("MAX_REQUEST_BODY_SIZE must be > 0 (got %d)", cfg.MaxRequestBodySize)
	}
	if cfg.RequestTimeout <= 0 || cfg.CallTimeout <= 0 || cfg.ImageFetchTimeout <= 0 {
		return nil, fmt.Errorf("timeouts must be > 0 (got request=%s, call=%s, fetch=%s)",
			cfg.RequestTimeout, cfg.CallTimeout, cfg.ImageFetchTimeout)
	}
	if cfg.MaxRetries < 1 {
		return nil, fmt.Errorf("CLASSIFY_MAX_RETRIES must be >= 1 (got %d)", cfg.MaxRetries)
	}
	if cfg.RetryBaseDelay <= 0 {
		return nil, fmt.Errorf("CLASSIFY_RETRY_BASE_DELAY must be > 0 (got %s)", cfg.RetryBaseDelay)
	}
	if cfg.FailureThreshold < 1 || cfg.HalfOpenSuccessThreshold < 1 {
		return nil, fmt.Errorf("breaker thresholds must be >= 1 (got failure=%d, half_open=%d)",
			cfg.FailureThreshold, cfg.HalfOpenSuccessThreshold)
	}
	if cfg.ResetTimeout <= 0 {
		return nil, fmt.Errorf("BREAKER_RESET_TIMEOUT must be > 0 (got %s)", cfg.ResetTimeout)
	}
	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(strings.TrimSpace(value)); err == nil && duration > 0 {
			return duration
		}
	}
	return defaultValue
}

func parseIntOrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
