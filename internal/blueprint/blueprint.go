// Package blueprint is the reference task workload: fetch a URL, wait a
// fixed delay, then report completion.
package blueprint

import (
	"context"
	"time"

	"github.com/kelsos/task-orchestrator/internal/client"
	"github.com/kelsos/task-orchestrator/internal/config"
	"github.com/kelsos/task-orchestrator/internal/logger"
	"github.com/kelsos/task-orchestrator/internal/models"
)

// Fetcher is the HTTP capability a blueprint needs.
type Fetcher interface {
	Fetch(ctx context.Context, url string) error
}

// Blueprint implements async.Executor. It holds no per-task state.
type Blueprint struct {
	fetcher Fetcher
	url     string
	delay   time.Duration
}

func New(fetcher Fetcher, url string, delay time.Duration) *Blueprint {
	return &Blueprint{
		fetcher: fetcher,
		url:     url,
		delay:   delay,
	}
}

// NewFromConfig builds a blueprint backed by an APIClient.
func NewFromConfig(cfg *config.Config) *Blueprint {
	return New(client.NewAPIClient(cfg.FetchTimeout), cfg.FetchURL, cfg.TaskDelay)
}

func (b *Blueprint) Execute(ctx context.Context, taskID models.TaskID) error {
	if err := b.fetcher.Fetch(ctx, b.url); err != nil {
		return err
	}

	if err := b.wait(ctx); err != nil {
		return err
	}

	logger.Info("Task %d completed successfully", taskID)
	return nil
}

func (b *Blueprint) wait(ctx context.Context) error {
	if b.delay <= 0 {
		return nil
	}

	timer := time.NewTimer(b.delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
