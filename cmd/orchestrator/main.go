package main

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/kelsos/task-orchestrator/internal/async"
	"github.com/kelsos/task-orchestrator/internal/blueprint"
	"github.com/kelsos/task-orchestrator/internal/config"
	"github.com/kelsos/task-orchestrator/internal/logger"
	"github.com/kelsos/task-orchestrator/internal/services"
	"github.com/kelsos/task-orchestrator/internal/tui"
)

type runOptions struct {
	configFile    string
	output        string
	threshold     int
	queueCapacity int
	strategy      string
	fetchURL      string
	timeout       time.Duration
	delay         time.Duration
	monitor       bool
}

// loadConfig applies defaults, the config file, the environment and finally
// the flags the user actually set.
func loadConfig(cmd *cobra.Command, opts *runOptions) (*config.Config, error) {
	cfg := config.NewConfig()

	if opts.configFile != "" {
		if err := cfg.LoadFromFile(opts.configFile); err != nil {
			return nil, err
		}
	}

	cfg.LoadFromEnvironment()

	flags := cmd.Flags()
	if flags.Changed("threshold") {
		cfg.StreamingThreshold = opts.threshold
	}
	if flags.Changed("queue-capacity") {
		cfg.QueueCapacity = opts.queueCapacity
	}
	if flags.Changed("strategy") {
		cfg.Strategy = opts.strategy
	}
	if flags.Changed("url") {
		cfg.FetchURL = opts.fetchURL
	}
	if flags.Changed("timeout") {
		cfg.FetchTimeout = opts.timeout
	}
	if flags.Changed("delay") {
		cfg.TaskDelay = opts.delay
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func runTasks(cmd *cobra.Command, inputPath string, opts *runOptions, cfg *config.Config, executor async.Executor) error {
	sink := services.WriterSink(cmd.OutOrStdout())
	if opts.output != "" {
		sink = services.FileSink(opts.output)
	}

	if !opts.monitor {
		svc, err := services.NewRunService(cfg, executor)
		if err != nil {
			return err
		}
		logger.WithRunID(svc.RunID())
		_, err = svc.ProcessFile(cmd.Context(), inputPath, sink)
		return err
	}

	// The monitor owns the terminal, so logs go to a file and the monitor
	// renders on stderr to keep stdout for the report.
	logPath, err := logger.InitFileOnly()
	if err != nil {
		return err
	}
	defer logger.Close()

	monitor := tui.NewRunMonitor(tea.WithAltScreen(), tea.WithOutput(cmd.ErrOrStderr()))
	svc, err := services.NewRunService(cfg, executor, services.WithMonitor(monitor))
	if err != nil {
		return err
	}
	logger.WithRunID(svc.RunID())

	err = monitor.Run(func() error {
		_, err := svc.ProcessFile(cmd.Context(), inputPath, sink)
		return err
	})
	fmt.Fprintf(cmd.ErrOrStderr(), "Run %s logs: %s\n", svc.RunID(), logPath)
	return err
}

// newRootCmd builds the CLI. A nil executor selects the HTTP blueprint
// built from the loaded configuration.
func newRootCmd(executor async.Executor) *cobra.Command {
	opts := &runOptions{}

	rootCmd := &cobra.Command{
		Use:   "task-orchestrator <tasks.csv>",
		Short: "Run a batch of tasks concurrently and report one status per task",
		Long: `task-orchestrator reads tasks from a CSV file with a task_id,task_type header,
runs every task concurrently and writes a task_id,final_status,error_info CSV
report with one row per distinct task_id.`,
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}

			exec := executor
			if exec == nil {
				exec = blueprint.NewFromConfig(cfg)
			}
			return runTasks(cmd, args[0], opts, cfg, exec)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "Path to a TOML config file")
	flags.StringVarP(&opts.output, "output", "o", "", "Write the report to this file instead of stdout")
	flags.IntVarP(&opts.threshold, "threshold", "t", config.DefaultStreamingThreshold, "Task count above which the pooled strategy is used")
	flags.IntVarP(&opts.queueCapacity, "queue-capacity", "q", config.DefaultQueueCapacity, "Completion queue capacity of the queued strategy")
	flags.StringVarP(&opts.strategy, "strategy", "s", config.DefaultStrategy, "Dispatch strategy: auto, queue or pool")
	flags.StringVarP(&opts.fetchURL, "url", "u", config.DefaultFetchURL, "URL each task fetches")
	flags.DurationVarP(&opts.timeout, "timeout", "", config.DefaultFetchTimeout, "HTTP timeout per task")
	flags.DurationVarP(&opts.delay, "delay", "d", config.DefaultTaskDelay, "Delay each task waits after fetching")
	flags.BoolVarP(&opts.monitor, "tui", "", false, "Show a live progress monitor")

	return rootCmd
}

// setup initializes logging and loads .env files, then re-reads the log level
// so DEBUG from a .env file applies.
func setup() {
	logger.Init()
	config.LoadDotEnv()
	logger.SetLevelFromEnvironment()
}

func main() {
	setup()

	if err := newRootCmd(nil).ExecuteContext(context.Background()); err != nil {
		logger.Fatal("Failed to execute command: %v", err)
	}
}
