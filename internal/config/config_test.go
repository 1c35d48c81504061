package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, 1000, cfg.StreamingThreshold)
	assert.Equal(t, 1000, cfg.QueueCapacity)
	assert.Equal(t, "auto", cfg.Strategy)
	assert.Equal(t, "https://httpbin.org/get", cfg.FetchURL)
	assert.Equal(t, 10*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 5*time.Second, cfg.TaskDelay)
	require.NoError(t, cfg.Validate())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("TASK_STREAMING_THRESHOLD", "10")
	t.Setenv("TASK_QUEUE_CAPACITY", "5")
	t.Setenv("TASK_STRATEGY", "pool")
	t.Setenv("TASK_FETCH_URL", "http://localhost:8080/get")
	t.Setenv("TASK_FETCH_TIMEOUT", "1500")
	t.Setenv("TASK_DELAY", "0")

	cfg := NewConfig()
	cfg.LoadFromEnvironment()

	assert.Equal(t, 10, cfg.StreamingThreshold)
	assert.Equal(t, 5, cfg.QueueCapacity)
	assert.Equal(t, "pool", cfg.Strategy)
	assert.Equal(t, "http://localhost:8080/get", cfg.FetchURL)
	assert.Equal(t, 1500*time.Millisecond, cfg.FetchTimeout)
	assert.Equal(t, time.Duration(0), cfg.TaskDelay)
}

func TestLoadFromEnvironmentIgnoresGarbage(t *testing.T) {
	t.Setenv("TASK_STREAMING_THRESHOLD", "lots")
	t.Setenv("TASK_DELAY", "soon")

	cfg := NewConfig()
	cfg.LoadFromEnvironment()

	assert.Equal(t, DefaultStreamingThreshold, cfg.StreamingThreshold)
	assert.Equal(t, DefaultTaskDelay, cfg.TaskDelay)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orchestrator.toml")
	content := `
streaming_threshold = 20
strategy = "queue"
fetch_url = "http://example.test/health"
task_delay = "250ms"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg := NewConfig()
	require.NoError(t, cfg.LoadFromFile(path))

	assert.Equal(t, 20, cfg.StreamingThreshold)
	assert.Equal(t, DefaultQueueCapacity, cfg.QueueCapacity)
	assert.Equal(t, "queue", cfg.Strategy)
	assert.Equal(t, "http://example.test/health", cfg.FetchURL)
	assert.Equal(t, DefaultFetchTimeout, cfg.FetchTimeout)
	assert.Equal(t, 250*time.Millisecond, cfg.TaskDelay)
}

func TestLoadFromFileErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		err := NewConfig().LoadFromFile(filepath.Join(dir, "missing.toml"))
		assert.Error(t, err)
	})

	t.Run("bad duration", func(t *testing.T) {
		path := filepath.Join(dir, "bad.toml")
		require.NoError(t, os.WriteFile(path, []byte(`fetch_timeout = "forever"`), 0600))

		err := NewConfig().LoadFromFile(path)
		assert.ErrorContains(t, err, "invalid fetch_timeout")
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative threshold", func(c *Config) { c.StreamingThreshold = -1 }},
		{"zero queue capacity", func(c *Config) { c.QueueCapacity = 0 }},
		{"unknown strategy", func(c *Config) { c.Strategy = "lifo" }},
		{"empty url", func(c *Config) { c.FetchURL = "" }},
		{"relative url", func(c *Config) { c.FetchURL = "/get" }},
		{"zero timeout", func(c *Config) { c.FetchTimeout = 0 }},
		{"negative delay", func(c *Config) { c.TaskDelay = -time.Second }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("TASK_QUEUE_CAPACITY=42\n"), 0600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	// registers cleanup for the variable godotenv is about to set
	t.Setenv("TASK_QUEUE_CAPACITY", "")
	require.NoError(t, os.Unsetenv("TASK_QUEUE_CAPACITY"))

	LoadDotEnv()

	cfg := NewConfig()
	cfg.LoadFromEnvironment()
	assert.Equal(t, 42, cfg.QueueCapacity)
}
