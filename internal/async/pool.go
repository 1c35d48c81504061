package async

import (
	"context"
	"sync"

	"github.com/kelsos/task-orchestrator/internal/models"
)

// pendingSet tracks in-flight tasks and hands out results in the order they
// complete. It grows with the number of finished but uncollected results
// instead of reserving a fixed buffer up front.
type pendingSet struct {
	mu      sync.Mutex
	cond    *sync.Cond
	pending int
	ready   []models.TaskResult
}

func newPendingSet() *pendingSet {
	s := &pendingSet{}
	s.cond = sync.NewCond(&s.mu)
	return s
}

func (s *pendingSet) add() {
	s.mu.Lock()
	s.pending++
	s.mu.Unlock()
}

func (s *pendingSet) complete(result models.TaskResult) {
	s.mu.Lock()
	s.pending--
	s.ready = append(s.ready, result)
	s.mu.Unlock()
	s.cond.Signal()
}

// next blocks until a member completes. It returns false once the set holds
// neither pending nor ready members.
func (s *pendingSet) next() (models.TaskResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for len(s.ready) == 0 {
		if s.pending == 0 {
			return models.TaskResult{}, false
		}
		s.cond.Wait()
	}

	result := s.ready[0]
	s.ready[0] = models.TaskResult{}
	s.ready = s.ready[1:]
	return result, true
}

// runPooled registers every task in a single pending set and polls it until
// it is empty.
func (o *Orchestrator) runPooled(ctx context.Context, tasks []models.TaskInput) []models.TaskResult {
	set := newPendingSet()

	var wg sync.WaitGroup
	for _, task := range tasks {
		set.add()
		wg.Add(1)
		go func() {
			defer wg.Done()
			set.complete(executeSingle(ctx, o.executor, task.TaskID))
		}()
	}

	results := make([]models.TaskResult, 0, len(tasks))
	for {
		result, ok := set.next()
		if !ok {
			break
		}
		results = append(results, result)
		o.observe(result)
	}

	wg.Wait()
	return results
}
