package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/styleforge/datagovern/internal/domain/catalog"
)

// TaskRepository keeps the process-wide task list in memory. Lifecycle is
// the application session; a restart loses all state. The mutex is needed
// because the HTTP server and background enrichment runs share it.
type TaskRepository struct {
	mu    sync.RWMutex
	order []string
	tasks map[string]catalog.Task
	now   func() time.Time
}

func NewTaskRepository() *TaskRepository {
	return &TaskRepository{
		tasks: make(map[string]catalog.Task),
		now:   time.Now,
	}
}

func (r *TaskRepository) Create(ctx context.Context, task catalog.Task) error {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tasks[task.ID]; exists {
		return fmt.Errorf("task %s already exists", task.ID)
	}
	r.order = append(r.order, task.ID)
	r.tasks[task.ID] = task
	return nil
}

func (r *TaskRepository) Get(ctx context.Context, id string) (catalog.Task, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	task, ok := r.tasks[id]
	if !ok {
		return catalog.Task{}, catalog.ErrTaskNotFound
	}
	return task, nil
}

func (r *TaskRepository) List(ctx context.Context) ([]catalog.Task, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]catalog.Task, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.tasks[id])
	}
	return out, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return catalog.ErrTaskNotFound
	}
	delete(r.tasks, id)
	for i, candidate := range r.order {
		if candidate == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *TaskRepository) SetStatus(ctx context.Context, id string, status catalog.TaskStatus) error {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[id]
	if !ok {
		return catalog.ErrTaskNotFound
	}
	task.Status = status
	task.UpdatedAt = r.now()
	r.tasks[id] = task
	return nil
}

func (r *TaskRepository) UpdateAIState(ctx context.Context, id string, status catalog.AIStatus, progress int) error {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[id]
	if !ok {
		return catalog.ErrTaskNotFound
	}
	task.AIStatus = status
	task.AIProgress = progress
	task.UpdatedAt = r.now()
	r.tasks[id] = task
	return nil
}
