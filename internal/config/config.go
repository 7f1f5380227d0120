// Package config provides configuration management for the item API server.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Default configuration values.
const (
	DefaultServerPort      = 8080
	DefaultProbePort       = 9090
	DefaultLogLevel        = "info"
	DefaultShutdownTimeout = 30 * time.Second
	DefaultMetricsEnabled  = true
	DefaultMaxItems        = 100
	DefaultSeedFixtures    = true
	DefaultRateLimit       = 0
	DefaultRateLimitBurst  = 20
	DefaultEventsEnabled   = true
)

// Environment variable names.
const (
	EnvServerPort      = "APP_SERVER_PORT"
	EnvProbePort       = "APP_PROBE_PORT"
	EnvLogLevel        = "APP_LOG_LEVEL"
	EnvShutdownTimeout = "APP_SHUTDOWN_TIMEOUT"
	EnvMetricsEnabled  = "APP_METRICS_ENABLED"
	EnvMaxItems        = "APP_MAX_ITEMS"
	EnvSeedFixtures    = "APP_SEED_FIXTURES"
	EnvRateLimit       = "APP_RATE_LIMIT"
	EnvRateLimitBurst  = "APP_RATE_LIMIT_BURST"
	EnvEventsEnabled   = "APP_EVENTS_ENABLED"
)

// Config holds the application configuration.
type Config struct {
	// Server settings.
	ServerPort      int
	ProbePort       int // Probe server port (0 = disabled).
	LogLevel        string
	ShutdownTimeout time.Duration
	MetricsEnabled  bool

	// Item storage settings.
	MaxItems     int
	SeedFixtures bool

	// Rate limiting in requests per second (0 = disabled).
	RateLimit      float64
	RateLimitBurst int

	// EventsEnabled exposes the /ws item event stream.
	EventsEnabled bool
}

// Validation errors.
var (
	ErrInvalidServerPort      = errors.New("server port must be between 1 and 65535")
	ErrInvalidLogLevel        = errors.New("log level must be one of: debug, info, warn, error")
	ErrInvalidShutdownTimeout = errors.New("shutdown timeout must be positive")
	ErrInvalidProbePort       = errors.New("probe port must be between 0 and 65535")
	ErrProbePortConflict      = errors.New("probe port must differ from server port when probe port is not 0")
	ErrInvalidMaxItems        = errors.New("max items must be positive")
	ErrInvalidRateLimit       = errors.New("rate limit must not be negative")
	ErrInvalidRateLimitBurst  = errors.New("rate limit burst must be positive when rate limiting is enabled")
)

// Load reads configuration from environment variables with defaults.
// Environment variables have priority over default values.
func Load() (*Config, error) {
	cfg := Default()

	if err := cfg.loadFromEnv(); err != nil {
		return nil, fmt.Errorf("loading config from environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Default returns a configuration populated with default values.
func Default() *Config {
	return &Config{
		ServerPort:      DefaultServerPort,
		ProbePort:       DefaultProbePort,
		LogLevel:        DefaultLogLevel,
		ShutdownTimeout: DefaultShutdownTimeout,
		MetricsEnabled:  DefaultMetricsEnabled,
		MaxItems:        DefaultMaxItems,
		SeedFixtures:    DefaultSeedFixtures,
		RateLimit:       DefaultRateLimit,
		RateLimitBurst:  DefaultRateLimitBurst,
		EventsEnabled:   DefaultEventsEnabled,
	}
}

// loadFromEnv loads configuration values from environment variables.
func (c *Config) loadFromEnv() error {
	if err := c.loadServerEnv(); err != nil {
		return err
	}

	if err := c.loadItemEnv(); err != nil {
		return err
	}

	return nil
}

// loadServerEnv loads server-related environment variables.
func (c *Config) loadServerEnv() error {
	if err := envInt(EnvServerPort, &c.ServerPort); err != nil {
		return err
	}

	if err := envInt(EnvProbePort, &c.ProbePort); err != nil {
		return err
	}

	if val := os.Getenv(EnvLogLevel); val != "" {
		c.LogLevel = val
	}

	if val := os.Getenv(EnvShutdownTimeout); val != "" {
		timeout, err := time.ParseDuration(val)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvShutdownTimeout, err)
		}
		c.ShutdownTimeout = timeout
	}

	if err := envBool(EnvMetricsEnabled, &c.MetricsEnabled); err != nil {
		return err
	}

	if val := os.Getenv(EnvRateLimit); val != "" {
		limit, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvRateLimit, err)
		}
		c.RateLimit = limit
	}

	return envInt(EnvRateLimitBurst, &c.RateLimitBurst)
}

// loadItemEnv loads item storage and event stream environment variables.
func (c *Config) loadItemEnv() error {
	if err := envInt(EnvMaxItems, &c.MaxItems); err != nil {
		return err
	}

	if err := envBool(EnvSeedFixtures, &c.SeedFixtures); err != nil {
		return err
	}

	return envBool(EnvEventsEnabled, &c.EventsEnabled)
}

func envInt(name string, dst *int) error {
	val := os.Getenv(name)
	if val == "" {
		return nil
	}

	n, err := strconv.Atoi(val)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}
	*dst = n
	return nil
}

func envBool(name string, dst *bool) error {
	val := os.Getenv(name)
	if val == "" {
		return nil
	}

	b, err := strconv.ParseBool(val)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}
	*dst = b
	return nil
}

// Validate checks if the configuration values are valid.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	return c.validateItems()
}

// validateServer validates server-related configuration.
func (c *Config) validateServer() error {
	if c.ServerPort < 1 || c.ServerPort > 65535 {
		return ErrInvalidServerPort
	}

	if c.ProbePort < 0 || c.ProbePort > 65535 {
		return ErrInvalidProbePort
	}

	if c.ProbePort != 0 && c.ProbePort == c.ServerPort {
		return ErrProbePortConflict
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return ErrInvalidLogLevel
	}

	if c.ShutdownTimeout <= 0 {
		return ErrInvalidShutdownTimeout
	}

	if c.RateLimit < 0 {
		return ErrInvalidRateLimit
	}

	if c.RateLimitEnabled() && c.RateLimitBurst < 1 {
		return ErrInvalidRateLimitBurst
	}

	return nil
}

// validateItems validates item storage configuration.
func (c *Config) validateItems() error {
	if c.MaxItems < 1 {
		return ErrInvalidMaxItems
	}

	return nil
}

// RateLimitEnabled reports whether requests are rate limited.
func (c *Config) RateLimitEnabled() bool {
	return c.RateLimit > 0
}

// Address returns the server address in host:port format.
func (c *Config) Address() string {
	return fmt.Sprintf(":%d", c.ServerPort)
}

// ProbeAddress returns the probe server address in host:port format.
func (c *Config) ProbeAddress() string {
	return fmt.Sprintf(":%d", c.ProbePort)
}
