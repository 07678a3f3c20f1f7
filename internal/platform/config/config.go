package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
)

var (
	errInvalidPort           = errors.New("config: invalid PORT number")
	errSampleOutOfRange      = errors.New("config: LINK_SAMPLE_LIMIT must be 1-50")
	errConcurrencyOutOfRange = errors.New("config: PROBE_CONCURRENCY must be 1-100")
	errInvalidRateLimit      = errors.New("config: RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
)

// Config is the audit service's runtime configuration, sourced from
// environment variables.
type Config struct {
	Port             string
	LogLevel         string
	LinkSampleLimit  int
	ProbeConcurrency int
	RateLimitRPS     float64
	RateLimitBurst   int
}

// Load reads the environment, falling back to defaults for anything unset.
func Load() (Config, error) {
	cfg := Config{
		Port:             getEnv("PORT", "8080"),
		LogLevel:         getEnv("LOG_LEVEL", "ERROR"),
		LinkSampleLimit:  getEnvAsInt("LINK_SAMPLE_LIMIT", 3),
		ProbeConcurrency: getEnvAsInt("PROBE_CONCURRENCY", 4),
		RateLimitRPS:     getEnvAsFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst:   getEnvAsInt("RATE_LIMIT_BURST", 10),
	}

	return cfg, cfg.validate()
}

func (c Config) validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("%w: %q", errInvalidPort, c.Port)
	}

	if c.LinkSampleLimit < 1 || c.LinkSampleLimit > 50 {
		return fmt.Errorf("%w: got %d", errSampleOutOfRange, c.LinkSampleLimit)
	}

	if c.ProbeConcurrency < 1 || c.ProbeConcurrency > 100 {
		return fmt.Errorf("%w: got %d", errConcurrencyOutOfRange, c.ProbeConcurrency)
	}

	if c.RateLimitRPS <= 0 || c.RateLimitBurst < 1 {
		return fmt.Errorf("%w: got rps=%v burst=%d", errInvalidRateLimit, c.RateLimitRPS, c.RateLimitBurst)
	}

	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return v
}

func getEnvAsFloat(key string, fallback float64) float64 {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback
	}
	return v
}
