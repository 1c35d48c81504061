package models

import (
	"fmt"
	"strconv"
)

type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "Pending"
	TaskStatusRunning   TaskStatus = "Running"
	TaskStatusCompleted TaskStatus = "Completed"
	TaskStatusFailed    TaskStatus = "Failed"
)

// IsTerminal reports whether the status may be handed to the report.
func (s TaskStatus) IsTerminal() bool {
	return s == TaskStatusCompleted || s == TaskStatusFailed
}

type TaskID uint64

// UnmarshalCSV accepts plain decimal digits only. Empty, signed, fractional
// and prefixed forms are rejected.
func (id *TaskID) UnmarshalCSV(s string) error {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid task_id %q: %w", s, err)
	}
	*id = TaskID(v)
	return nil
}

// TaskInput is one row of the task source. TaskID is not unique across rows.
type TaskInput struct {
	TaskID   TaskID `csv:"task_id"`
	TaskType string `csv:"task_type"`
}

// TaskResult is produced exactly once per execution attempt and never mutated
// afterwards.
type TaskResult struct {
	TaskID    TaskID
	Status    TaskStatus
	ErrorInfo *string
}

// TaskOutput is one row of the report.
type TaskOutput struct {
	TaskID      TaskID `csv:"task_id"`
	FinalStatus string `csv:"final_status"`
	ErrorInfo   string `csv:"error_info"`
}

// NewTaskOutput projects a result into a report row. Anything that is not
// Completed is reported as Failed.
func NewTaskOutput(result TaskResult) TaskOutput {
	finalStatus := string(TaskStatusFailed)
	if result.Status == TaskStatusCompleted {
		finalStatus = string(TaskStatusCompleted)
	}

	var errorInfo string
	if result.ErrorInfo != nil {
		errorInfo = *result.ErrorInfo
	}

	return TaskOutput{
		TaskID:      result.TaskID,
		FinalStatus: finalStatus,
		ErrorInfo:   errorInfo,
	}
}
