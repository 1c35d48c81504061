// Package report folds collected task results into one row per task ID.
package report

import (
	"github.com/kelsos/task-orchestrator/internal/models"
)

// Summary counts what happened during a run.
type Summary struct {
	Results    int
	Unique     int
	Duplicates int
	Completed  int
	Failed     int
}

// Deduplicate keeps the last collected result for each task ID.
func Deduplicate(results []models.TaskResult) map[models.TaskID]models.TaskResult {
	unique := make(map[models.TaskID]models.TaskResult, len(results))
	for _, result := range results {
		unique[result.TaskID] = result
	}
	return unique
}

// Aggregate deduplicates results and projects the survivors into report rows.
// Row order follows map iteration and is not stable between runs.
func Aggregate(results []models.TaskResult) []models.TaskOutput {
	unique := Deduplicate(results)

	outputs := make([]models.TaskOutput, 0, len(unique))
	for _, result := range unique {
		outputs = append(outputs, models.NewTaskOutput(result))
	}
	return outputs
}

// Summarize counts raw results against the rows they produced.
func Summarize(results []models.TaskResult, outputs []models.TaskOutput) Summary {
	s := Summary{
		Results:    len(results),
		Unique:     len(outputs),
		Duplicates: len(results) - len(outputs),
	}
	for _, output := range outputs {
		if output.FinalStatus == string(models.TaskStatusCompleted) {
			s.Completed++
		} else {
			s.Failed++
		}
	}
	return s
}
