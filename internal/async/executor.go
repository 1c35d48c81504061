package async

import (
	"context"
	"fmt"

	"github.com/kelsos/task-orchestrator/internal/logger"
	"github.com/kelsos/task-orchestrator/internal/models"
)

// Executor performs the work of a single task. Implementations must be safe
// for concurrent use; the orchestrator calls Execute once per submitted task.
type Executor interface {
	Execute(ctx context.Context, taskID models.TaskID) error
}

// ExecutorFunc adapts a plain function to the Executor interface.
type ExecutorFunc func(ctx context.Context, taskID models.TaskID) error

func (f ExecutorFunc) Execute(ctx context.Context, taskID models.TaskID) error {
	return f(ctx, taskID)
}

// executeSingle runs one task and turns its outcome into a terminal result.
// Failures, panics included, become data here and never reach sibling tasks.
func executeSingle(ctx context.Context, executor Executor, taskID models.TaskID) (result models.TaskResult) {
	status := models.TaskStatusPending
	logger.Debug("Task %d is %s", taskID, status)

	defer func() {
		if r := recover(); r != nil {
			errorInfo := fmt.Sprintf("task panicked: %v", r)
			logger.Error("Task %d: %s", taskID, errorInfo)
			result = models.TaskResult{
				TaskID:    taskID,
				Status:    models.TaskStatusFailed,
				ErrorInfo: &errorInfo,
			}
		}
	}()

	status = models.TaskStatusRunning
	logger.Debug("Task %d is %s", taskID, status)

	if err := executor.Execute(ctx, taskID); err != nil {
		errorInfo := err.Error()
		logger.Warn("Task %d failed: %s", taskID, errorInfo)
		return models.TaskResult{
			TaskID:    taskID,
			Status:    models.TaskStatusFailed,
			ErrorInfo: &errorInfo,
		}
	}

	return models.TaskResult{
		TaskID: taskID,
		Status: models.TaskStatusCompleted,
	}
}
