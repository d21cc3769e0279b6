package governance

import (
	"context"
	"fmt"

	"github.com/styleforge/datagovern/internal/domain/catalog"
)

type RowOutput struct {
	ID        string            `json:"id"`
	SKU       string            `json:"sku"`
	ImageRef  string            `json:"image_ref"`
	Fields    map[string]string `json:"fields"`
	Confirmed bool              `json:"confirmed"`
}

// RowToOutput converts a domain row for API payloads.
func RowToOutput(row catalog.Row) RowOutput {
	fields := make(map[string]string, len(row.Fields))
	for name, value := range row.Fields {
		fields[string(name)] = value
	}
	return RowOutput{
		ID:        row.ID,
		SKU:       row.SKU,
		ImageRef:  row.ImageRef,
		Fields:    fields,
		Confirmed: row.Confirmed,
	}
}

type UpdateRowFieldInput struct {
	TaskID string
	RowID  string
	Field  string
	Value  string
}

type UpdateRowField interface {
	Execute(ctx context.Context, in UpdateRowFieldInput) (RowOutput, error)
}

type updateRowField struct {
	tasks catalog.TaskRepository
	rows  catalog.RowStore
}

func NewUpdateRowField(tasks catalog.TaskRepository, rows catalog.RowStore) UpdateRowField {
	return &updateRowField{tasks: tasks, rows: rows}
}

// Execute overwrites one attribute unconditionally after checking the
// column is editable for the task's source. Library-import tasks keep most
// columns locked.
func (uc *updateRowField) Execute(ctx context.Context, in UpdateRowFieldInput) (RowOutput, error) {
	name, err := catalog.ParseFieldName(in.Field)
	if err != nil {
		return RowOutput{}, err
	}

	task, err := uc.tasks.Get(ctx, in.TaskID)
	if err != nil {
		return RowOutput{}, err
	}
	if !catalog.FieldMutable(task.Source, name) {
		return RowOutput{}, fmt.Errorf("%w: %s", catalog.ErrFieldLocked, name)
	}

	row, err := uc.rows.UpdateField(ctx, in.TaskID, in.RowID, name, in.Value)
	if err != nil {
		return RowOutput{}, err
	}
	return RowToOutput(row), nil
}

type SetRowConfirmedInput struct {
	TaskID    string
	RowID     string
	Confirmed bool
}

type SetRowConfirmed interface {
	Execute(ctx context.Context, in SetRowConfirmedInput) (RowOutput, error)
}

type setRowConfirmed struct {
	rows catalog.RowStore
}

func NewSetRowConfirmed(rows catalog.RowStore) SetRowConfirmed {
	return &setRowConfirmed{rows: rows}
}

func (uc *setRowConfirmed) Execute(ctx context.Context, in SetRowConfirmedInput) (RowOutput, error) {
	row, err := uc.rows.SetConfirmed(ctx, in.TaskID, in.RowID, in.Confirmed)
	if err != nil {
		return RowOutput{}, err
	}
	return RowToOutput(row), nil
}
