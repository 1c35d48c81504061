package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kelsos/task-orchestrator/internal/async"
	"github.com/kelsos/task-orchestrator/internal/models"
	"github.com/kelsos/task-orchestrator/internal/report"
)

// RunMonitor renders the progress of one run while it executes.
type RunMonitor struct {
	program *tea.Program
}

func NewRunMonitor(opts ...tea.ProgramOption) *RunMonitor {
	if len(opts) == 0 {
		opts = []tea.ProgramOption{tea.WithAltScreen()}
	}
	return &RunMonitor{
		program: tea.NewProgram(NewModel(), opts...),
	}
}

// Observer forwards every collected result to the monitor.
func (rm *RunMonitor) Observer() async.Observer {
	return func(result models.TaskResult) {
		rm.program.Send(ResultCollected{Result: result})
	}
}

func (rm *RunMonitor) Start(runID string, strategy async.Strategy, total int) {
	rm.program.Send(RunStarted{RunID: runID, Strategy: strategy, Total: total})
}

func (rm *RunMonitor) Finish(summary report.Summary) {
	rm.program.Send(RunFinished{Summary: summary})
}

// Run executes work in the background and blocks until the monitor exits.
// Closing the monitor early does not stop the work; Run still waits for it
// and returns its error.
func (rm *RunMonitor) Run(work func() error) error {
	workErr := make(chan error, 1)
	go func() {
		err := work()
		workErr <- err
		rm.program.Quit()
	}()

	if _, err := rm.program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	return <-workErr
}
