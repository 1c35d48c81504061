package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	DefaultStreamingThreshold = 1000
	DefaultQueueCapacity      = 1000
	DefaultStrategy           = "auto"
	DefaultFetchURL           = "https://httpbin.org/get"
	DefaultFetchTimeout       = 10 * time.Second
	DefaultTaskDelay          = 5 * time.Second
)

// Config holds all application configuration
type Config struct {
	// Engine settings
	StreamingThreshold int
	QueueCapacity      int
	Strategy           string

	// Task blueprint settings
	FetchURL     string
	FetchTimeout time.Duration
	TaskDelay    time.Duration
}

// fileConfig mirrors Config with durations as strings ("10s", "250ms").
type fileConfig struct {
	StreamingThreshold *int    `toml:"streaming_threshold"`
	QueueCapacity      *int    `toml:"queue_capacity"`
	Strategy           *string `toml:"strategy"`
	FetchURL           *string `toml:"fetch_url"`
	FetchTimeout       *string `toml:"fetch_timeout"`
	TaskDelay          *string `toml:"task_delay"`
}

// NewConfig creates a new configuration with default values
func NewConfig() *Config {
	return &Config{
		StreamingThreshold: DefaultStreamingThreshold,
		QueueCapacity:      DefaultQueueCapacity,
		Strategy:           DefaultStrategy,
		FetchURL:           DefaultFetchURL,
		FetchTimeout:       DefaultFetchTimeout,
		TaskDelay:          DefaultTaskDelay,
	}
}

// LoadFromFile overrides values with the ones present in a TOML file.
// Keys missing from the file keep their current value.
func (c *Config) LoadFromFile(path string) error {
	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	if fc.StreamingThreshold != nil {
		c.StreamingThreshold = *fc.StreamingThreshold
	}
	if fc.QueueCapacity != nil {
		c.QueueCapacity = *fc.QueueCapacity
	}
	if fc.Strategy != nil {
		c.Strategy = *fc.Strategy
	}
	if fc.FetchURL != nil {
		c.FetchURL = *fc.FetchURL
	}
	if fc.FetchTimeout != nil {
		d, err := time.ParseDuration(*fc.FetchTimeout)
		if err != nil {
			return fmt.Errorf("invalid fetch_timeout %q: %w", *fc.FetchTimeout, err)
		}
		c.FetchTimeout = d
	}
	if fc.TaskDelay != nil {
		d, err := time.ParseDuration(*fc.TaskDelay)
		if err != nil {
			return fmt.Errorf("invalid task_delay %q: %w", *fc.TaskDelay, err)
		}
		c.TaskDelay = d
	}

	return nil
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() {
	if threshold := os.Getenv("TASK_STREAMING_THRESHOLD"); threshold != "" {
		if t, err := strconv.Atoi(threshold); err == nil {
			c.StreamingThreshold = t
		}
	}

	if capacity := os.Getenv("TASK_QUEUE_CAPACITY"); capacity != "" {
		if q, err := strconv.Atoi(capacity); err == nil {
			c.QueueCapacity = q
		}
	}

	if strategy := os.Getenv("TASK_STRATEGY"); strategy != "" {
		c.Strategy = strategy
	}

	if fetchURL := os.Getenv("TASK_FETCH_URL"); fetchURL != "" {
		c.FetchURL = fetchURL
	}

	if timeout := os.Getenv("TASK_FETCH_TIMEOUT"); timeout != "" {
		if t, err := strconv.Atoi(timeout); err == nil {
			c.FetchTimeout = time.Duration(t) * time.Millisecond
		}
	}

	if delay := os.Getenv("TASK_DELAY"); delay != "" {
		if d, err := strconv.Atoi(delay); err == nil {
			c.TaskDelay = time.Duration(d) * time.Millisecond
		}
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.StreamingThreshold < 0 {
		return fmt.Errorf("streaming threshold must be non-negative, got: %d", c.StreamingThreshold)
	}

	if c.QueueCapacity <= 0 {
		return fmt.Errorf("queue capacity must be positive, got: %d", c.QueueCapacity)
	}

	switch c.Strategy {
	case "auto", "queue", "pool":
	default:
		return fmt.Errorf("strategy must be one of auto, queue or pool, got: %q", c.Strategy)
	}

	if c.FetchURL == "" {
		return fmt.Errorf("fetch URL cannot be empty")
	}

	if u, err := url.Parse(c.FetchURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("fetch URL must be absolute, got: %q", c.FetchURL)
	}

	if c.FetchTimeout <= 0 {
		return fmt.Errorf("fetch timeout must be positive, got: %s", c.FetchTimeout)
	}

	if c.TaskDelay < 0 {
		return fmt.Errorf("task delay must be non-negative, got: %s", c.TaskDelay)
	}

	return nil
}
