package governance

import (
	"context"
	"fmt"
	"strings"

	"github.com/styleforge/datagovern/internal/domain/catalog"
)

type TransmitTaskInput struct {
	TaskID      string
	Destination string
	RowIDs      []string
}

type TransmitTaskOutput struct {
	TaskID      string `json:"task_id"`
	Status      string `json:"status"`
	RowsSent    int    `json:"rows_sent"`
	Destination string `json:"destination"`
}

type TransmitTask interface {
	Execute(ctx context.Context, in TransmitTaskInput) (TransmitTaskOutput, error)
}

type transmitTask struct {
	tasks       catalog.TaskRepository
	rows        catalog.RowStore
	transmitter catalog.Transmitter
}

func NewTransmitTask(tasks catalog.TaskRepository, rows catalog.RowStore, transmitter catalog.Transmitter) TransmitTask {
	return &transmitTask{tasks: tasks, rows: rows, transmitter: transmitter}
}

// Execute sends the task's rows (or a selected subset) to the destination.
// On failure the task status is left untouched so the user can retry; on
// success the task becomes Transmitted, which is terminal.
func (uc *transmitTask) Execute(ctx context.Context, in TransmitTaskInput) (TransmitTaskOutput, error) {
	destination := strings.TrimSpace(in.Destination)
	if destination == "" {
		return TransmitTaskOutput{}, fmt.Errorf("%w: destination is required", ErrInvalidTaskInput)
	}

	task, err := uc.tasks.Get(ctx, in.TaskID)
	if err != nil {
		return TransmitTaskOutput{}, err
	}
	if !task.Transmittable() {
		return TransmitTaskOutput{}, fmt.Errorf("%w: status is %s", ErrTaskNotTransmittable, task.Status)
	}

	all, err := uc.rows.ListAll(ctx, in.TaskID)
	if err != nil {
		return TransmitTaskOutput{}, fmt.Errorf("list rows: %w", err)
	}

	selected := all
	if len(in.RowIDs) > 0 {
		wanted := make(map[string]struct{}, len(in.RowIDs))
		for _, id := range in.RowIDs {
			wanted[id] = struct{}{}
		}
		selected = selected[:0:0]
		for _, row := range all {
			if _, ok := wanted[row.ID]; ok {
				selected = append(selected, row)
			}
		}
	}
	if len(selected) == 0 {
		return TransmitTaskOutput{}, fmt.Errorf("%w: no matching rows", ErrInvalidTaskInput)
	}

	if err := uc.transmitter.Transmit(ctx, task, selected, destination); err != nil {
		return TransmitTaskOutput{}, fmt.Errorf("%w: %v", ErrTransmitFailed, err)
	}

	if err := uc.tasks.SetStatus(ctx, in.TaskID, catalog.StatusTransmitted); err != nil {
		return TransmitTaskOutput{}, fmt.Errorf("mark task transmitted: %w", err)
	}

	return TransmitTaskOutput{
		TaskID:      in.TaskID,
		Status:      string(catalog.StatusTransmitted),
		RowsSent:    len(selected),
		Destination: destination,
	}, nil
}
