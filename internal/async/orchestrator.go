package async

import (
	"context"
	"fmt"
	"time"

	"github.com/kelsos/task-orchestrator/internal/config"
	"github.com/kelsos/task-orchestrator/internal/logger"
	"github.com/kelsos/task-orchestrator/internal/models"
)

type Strategy string

const (
	// StrategyAuto picks StrategyPool above the streaming threshold and
	// StrategyQueue otherwise.
	StrategyAuto  Strategy = "auto"
	StrategyQueue Strategy = "queue"
	StrategyPool  Strategy = "pool"
)

// ParseStrategy validates a strategy name coming from flags or config.
func ParseStrategy(name string) (Strategy, error) {
	switch s := Strategy(name); s {
	case StrategyAuto, StrategyQueue, StrategyPool:
		return s, nil
	case "":
		return StrategyAuto, nil
	default:
		return "", fmt.Errorf("unknown strategy %q (want auto, queue or pool)", name)
	}
}

// Observer is notified of every result as it is collected. It is always
// called from the collecting goroutine, never concurrently.
type Observer func(result models.TaskResult)

// Option configures an Orchestrator at construction time.
type Option func(*Orchestrator)

// WithStreamingThreshold sets the task count above which the pooled strategy
// is used.
func WithStreamingThreshold(n int) Option {
	return func(o *Orchestrator) {
		o.streamingThreshold = n
	}
}

// WithQueueCapacity sets the completion queue capacity of the queued strategy.
func WithQueueCapacity(n int) Option {
	return func(o *Orchestrator) {
		o.queueCapacity = n
	}
}

// WithStrategy bypasses automatic strategy selection.
func WithStrategy(s Strategy) Option {
	return func(o *Orchestrator) {
		o.strategy = s
	}
}

// WithObserver attaches an observer to receive every collected result.
func WithObserver(observer Observer) Option {
	return func(o *Orchestrator) {
		o.observer = observer
	}
}

// Orchestrator runs a batch of tasks concurrently and collects exactly one
// terminal result per submitted task.
type Orchestrator struct {
	executor           Executor
	streamingThreshold int
	queueCapacity      int
	strategy           Strategy
	observer           Observer
}

func NewOrchestrator(executor Executor, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		executor:           executor,
		streamingThreshold: config.DefaultStreamingThreshold,
		queueCapacity:      config.DefaultQueueCapacity,
		strategy:           StrategyAuto,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.queueCapacity <= 0 {
		o.queueCapacity = config.DefaultQueueCapacity
	}
	return o
}

// SelectStrategy returns the strategy Run uses for a batch of n tasks.
func (o *Orchestrator) SelectStrategy(n int) Strategy {
	if o.strategy == StrategyQueue || o.strategy == StrategyPool {
		return o.strategy
	}
	if n > o.streamingThreshold {
		return StrategyPool
	}
	return StrategyQueue
}

// Run executes every task and returns the results in completion order.
// It returns only after every launched task has finished.
func (o *Orchestrator) Run(ctx context.Context, tasks []models.TaskInput) []models.TaskResult {
	strategy := o.SelectStrategy(len(tasks))
	logger.Info("Running %d tasks with the %s strategy", len(tasks), strategy)

	start := time.Now()
	var results []models.TaskResult
	if strategy == StrategyPool {
		results = o.runPooled(ctx, tasks)
	} else {
		results = o.runQueued(ctx, tasks)
	}

	logger.Info("Collected %d results in %v", len(results), time.Since(start))
	return results
}

func (o *Orchestrator) observe(result models.TaskResult) {
	if o.observer != nil {
		o.observer(result)
	}
}
