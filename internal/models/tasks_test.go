package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTaskOutput(t *testing.T) {
	boom := "boom"

	tests := []struct {
		name   string
		result TaskResult
		want   TaskOutput
	}{
		{
			name:   "completed without error info",
			result: TaskResult{TaskID: 101, Status: TaskStatusCompleted},
			want:   TaskOutput{TaskID: 101, FinalStatus: "Completed"},
		},
		{
			name:   "failed keeps error info verbatim",
			result: TaskResult{TaskID: 201, Status: TaskStatusFailed, ErrorInfo: &boom},
			want:   TaskOutput{TaskID: 201, FinalStatus: "Failed", ErrorInfo: "boom"},
		},
		{
			name:   "running collapses to failed",
			result: TaskResult{TaskID: 301, Status: TaskStatusRunning},
			want:   TaskOutput{TaskID: 301, FinalStatus: "Failed"},
		},
		{
			name:   "pending collapses to failed",
			result: TaskResult{TaskID: 302, Status: TaskStatusPending},
			want:   TaskOutput{TaskID: 302, FinalStatus: "Failed"},
		},
		{
			name:   "unknown status collapses to failed",
			result: TaskResult{TaskID: 303, Status: TaskStatus("weird")},
			want:   TaskOutput{TaskID: 303, FinalStatus: "Failed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewTaskOutput(tt.result))
		})
	}
}

func TestTaskStatusIsTerminal(t *testing.T) {
	assert.True(t, TaskStatusCompleted.IsTerminal())
	assert.True(t, TaskStatusFailed.IsTerminal())
	assert.False(t, TaskStatusPending.IsTerminal())
	assert.False(t, TaskStatusRunning.IsTerminal())
}

func TestTaskIDUnmarshalCSV(t *testing.T) {
	var id TaskID
	require.NoError(t, id.UnmarshalCSV("18446744073709551615"))
	assert.Equal(t, TaskID(18446744073709551615), id)

	for _, raw := range []string{"", "101.9", "0x65", "0b11", "1_000", "-1", "+1", " 101", "18446744073709551616"} {
		t.Run(raw, func(t *testing.T) {
			var got TaskID
			assert.Error(t, got.UnmarshalCSV(raw))
			assert.Zero(t, got)
		})
	}
}
