package services

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/kelsos/task-orchestrator/internal/async"
	"github.com/kelsos/task-orchestrator/internal/config"
	"github.com/kelsos/task-orchestrator/internal/logger"
	"github.com/kelsos/task-orchestrator/internal/models"
	"github.com/kelsos/task-orchestrator/internal/report"
	"github.com/kelsos/task-orchestrator/internal/storage"
)

// Monitor follows a run as it progresses. Observer is called from the
// collecting goroutine only.
type Monitor interface {
	Start(runID string, strategy async.Strategy, total int)
	Observer() async.Observer
	Finish(summary report.Summary)
}

// Sink consumes the report rows of a finished run.
type Sink func(outputs []models.TaskOutput) error

// WriterSink writes the report as CSV to w.
func WriterSink(w io.Writer) Sink {
	return func(outputs []models.TaskOutput) error {
		return storage.WriteResults(w, outputs)
	}
}

// FileSink writes the report as CSV to the file at path.
func FileSink(path string) Sink {
	return func(outputs []models.TaskOutput) error {
		return storage.WriteResultsFile(path, outputs)
	}
}

type Option func(*RunService)

// WithMonitor attaches a monitor to the run.
func WithMonitor(monitor Monitor) Option {
	return func(s *RunService) {
		s.monitor = monitor
	}
}

// RunService wires the task source, the orchestrator, the report and the
// sink for a single batch.
type RunService struct {
	runID        string
	orchestrator *async.Orchestrator
	monitor      Monitor
}

// NewRunService creates a run service that executes tasks with executor.
func NewRunService(cfg *config.Config, executor async.Executor, opts ...Option) (*RunService, error) {
	strategy, err := async.ParseStrategy(cfg.Strategy)
	if err != nil {
		return nil, err
	}

	s := &RunService{
		runID: uuid.NewString(),
	}
	for _, opt := range opts {
		opt(s)
	}

	options := []async.Option{
		async.WithStreamingThreshold(cfg.StreamingThreshold),
		async.WithQueueCapacity(cfg.QueueCapacity),
		async.WithStrategy(strategy),
	}
	if s.monitor != nil {
		options = append(options, async.WithObserver(s.monitor.Observer()))
	}
	s.orchestrator = async.NewOrchestrator(executor, options...)

	return s, nil
}

// RunID identifies this batch in logs.
func (s *RunService) RunID() string {
	return s.runID
}

// Orchestrator exposes the engine, e.g. to inspect strategy selection.
func (s *RunService) Orchestrator() *async.Orchestrator {
	return s.orchestrator
}

// Execute runs every task and returns one report row per distinct task ID.
func (s *RunService) Execute(ctx context.Context, tasks []models.TaskInput) ([]models.TaskOutput, report.Summary) {
	logger.Info("Starting run %s with %d tasks", s.runID, len(tasks))
	if s.monitor != nil {
		s.monitor.Start(s.runID, s.orchestrator.SelectStrategy(len(tasks)), len(tasks))
	}

	results := s.orchestrator.Run(ctx, tasks)
	outputs := report.Aggregate(results)
	summary := report.Summarize(results, outputs)

	logger.Info("Run %s finished: %d completed, %d failed, %d duplicate results dropped",
		s.runID, summary.Completed, summary.Failed, summary.Duplicates)
	if s.monitor != nil {
		s.monitor.Finish(summary)
	}
	return outputs, summary
}

// ProcessFile reads tasks from inputPath, executes them and hands the report
// to sink. Input errors abort before any task runs.
func (s *RunService) ProcessFile(ctx context.Context, inputPath string, sink Sink) (report.Summary, error) {
	tasks, err := storage.ReadTasks(inputPath)
	if err != nil {
		return report.Summary{}, err
	}
	logger.Debug("Loaded %d tasks from %s", len(tasks), inputPath)

	outputs, summary := s.Execute(ctx, tasks)

	if err := sink(outputs); err != nil {
		return summary, fmt.Errorf("run %s: %w", s.runID, err)
	}
	return summary, nil
}
