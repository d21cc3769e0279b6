package governance

import (
	"context"
	"fmt"
	"strings"

	"github.com/styleforge/datagovern/internal/domain/catalog"
)

type TaskOutput struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Source     string `json:"source"`
	TotalRows  int    `json:"total_rows"`
	AIProgress int    `json:"ai_progress"`
	Status     string `json:"status"`
	AIStatus   string `json:"ai_status"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

func toTaskOutput(task catalog.Task) TaskOutput {
	return TaskOutput{
		ID:         task.ID,
		Name:       task.Name,
		Source:     string(task.Source),
		TotalRows:  task.TotalRows,
		AIProgress: task.AIProgress,
		Status:     string(task.Status),
		AIStatus:   string(task.AIStatus),
		CreatedAt:  task.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:  task.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

type ListTasksInput struct {
	Status string
	Query  string
}

type ListTasksOutput struct {
	Tasks []TaskOutput `json:"tasks"`
}

type ListTasks interface {
	Execute(ctx context.Context, in ListTasksInput) (ListTasksOutput, error)
}

type listTasks struct {
	tasks catalog.TaskRepository
}

func NewListTasks(tasks catalog.TaskRepository) ListTasks {
	return &listTasks{tasks: tasks}
}

func (uc *listTasks) Execute(ctx context.Context, in ListTasksInput) (ListTasksOutput, error) {
	all, err := uc.tasks.List(ctx)
	if err != nil {
		return ListTasksOutput{}, fmt.Errorf("list tasks: %w", err)
	}

	status := strings.TrimSpace(in.Status)
	query := strings.ToLower(strings.TrimSpace(in.Query))

	out := ListTasksOutput{Tasks: make([]TaskOutput, 0, len(all))}
	for _, task := range all {
		if status != "" && string(task.Status) != status {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(task.Name), query) {
			continue
		}
		out.Tasks = append(out.Tasks, toTaskOutput(task))
	}
	return out, nil
}

type GetTaskInput struct {
	ID string
}

type GetTask interface {
	Execute(ctx context.Context, in GetTaskInput) (TaskOutput, error)
}

type getTask struct {
	tasks catalog.TaskRepository
}

func NewGetTask(tasks catalog.TaskRepository) GetTask {
	return &getTask{tasks: tasks}
}

func (uc *getTask) Execute(ctx context.Context, in GetTaskInput) (TaskOutput, error) {
	task, err := uc.tasks.Get(ctx, in.ID)
	if err != nil {
		return TaskOutput{}, err
	}
	return toTaskOutput(task), nil
}

type DeleteTaskInput struct {
	ID string
}

type DeleteTask interface {
	Execute(ctx context.Context, in DeleteTaskInput) error
}

type deleteTask struct {
	tasks catalog.TaskRepository
	rows  catalog.RowStore
	views *ViewRegistry
}

func NewDeleteTask(tasks catalog.TaskRepository, rows catalog.RowStore, views *ViewRegistry) DeleteTask {
	return &deleteTask{tasks: tasks, rows: rows, views: views}
}

func (uc *deleteTask) Execute(ctx context.Context, in DeleteTaskInput) error {
	if err := uc.tasks.Delete(ctx, in.ID); err != nil {
		return err
	}
	if err := uc.rows.DropTask(ctx, in.ID); err != nil {
		return fmt.Errorf("drop rows for task %s: %w", in.ID, err)
	}
	uc.views.Drop(in.ID)
	return nil
}
