package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kelsos/task-orchestrator/internal/models"
)

func strPtr(s string) *string { return &s }

func TestAggregate_DistinctIDs(t *testing.T) {
	results := []models.TaskResult{
		{TaskID: 101, Status: models.TaskStatusCompleted},
		{TaskID: 102, Status: models.TaskStatusFailed, ErrorInfo: strPtr("Network error")},
	}

	outputs := Aggregate(results)

	assert.ElementsMatch(t, []models.TaskOutput{
		{TaskID: 101, FinalStatus: "Completed"},
		{TaskID: 102, FinalStatus: "Failed", ErrorInfo: "Network error"},
	}, outputs)
}

func TestAggregate_LastCollectedWins(t *testing.T) {
	results := []models.TaskResult{
		{TaskID: 101, Status: models.TaskStatusRunning},
		{TaskID: 102, Status: models.TaskStatusCompleted},
		{TaskID: 101, Status: models.TaskStatusCompleted},
	}

	outputs := Aggregate(results)

	require.Len(t, outputs, 2)
	assert.Contains(t, outputs, models.TaskOutput{TaskID: 101, FinalStatus: "Completed"})

	// Reversed collection order flips the surviving record.
	results[0], results[2] = results[2], results[0]
	results[2] = models.TaskResult{TaskID: 101, Status: models.TaskStatusFailed, ErrorInfo: strPtr("late")}

	outputs = Aggregate(results)

	require.Len(t, outputs, 2)
	assert.Contains(t, outputs, models.TaskOutput{TaskID: 101, FinalStatus: "Failed", ErrorInfo: "late"})
}

func TestAggregate_NeverEmitsTransientStatus(t *testing.T) {
	results := []models.TaskResult{
		{TaskID: 1, Status: models.TaskStatusPending},
		{TaskID: 2, Status: models.TaskStatusRunning},
		{TaskID: 3, Status: models.TaskStatusCompleted},
	}

	for _, output := range Aggregate(results) {
		assert.Contains(t, []string{"Completed", "Failed"}, output.FinalStatus)
	}
}

func TestAggregate_Empty(t *testing.T) {
	outputs := Aggregate(nil)

	assert.NotNil(t, outputs)
	assert.Empty(t, outputs)
}

func TestSummarize(t *testing.T) {
	results := []models.TaskResult{
		{TaskID: 1, Status: models.TaskStatusCompleted},
		{TaskID: 1, Status: models.TaskStatusCompleted},
		{TaskID: 2, Status: models.TaskStatusFailed, ErrorInfo: strPtr("boom")},
	}

	s := Summarize(results, Aggregate(results))

	assert.Equal(t, Summary{Results: 3, Unique: 2, Duplicates: 1, Completed: 1, Failed: 1}, s)
}
