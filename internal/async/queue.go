package async

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/kelsos/task-orchestrator/internal/models"
)

// runQueued fans tasks out to one goroutine each and fans their results in
// through a bounded channel. Producers only block when the collector falls
// queueCapacity results behind.
func (o *Orchestrator) runQueued(ctx context.Context, tasks []models.TaskInput) []models.TaskResult {
	resultChan := make(chan models.TaskResult, o.queueCapacity)

	var producers errgroup.Group
	for _, task := range tasks {
		producers.Go(func() error {
			resultChan <- executeSingle(ctx, o.executor, task.TaskID)
			return nil
		})
	}

	// The channel is closed only once no producer can send anymore.
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		_ = producers.Wait()
		close(resultChan)
	}()

	results := make([]models.TaskResult, 0, len(tasks))
	for result := range resultChan {
		results = append(results, result)
		o.observe(result)
	}

	<-drained
	return results
}
