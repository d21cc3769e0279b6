package governance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/styleforge/datagovern/internal/domain/catalog"
)

// RowSource opens the raw-row payload an upload produced. Spreadsheet
// parsing happens upstream; by the time a file reaches this service it is a
// JSON array of raw rows.
type RowSource interface {
	Open(ctx context.Context, sourcePath string) (io.ReadCloser, error)
}

// RawRow is one record as produced by the upload or library collaborator.
type RawRow struct {
	SKU      string            `json:"sku"`
	ImageRef string            `json:"image_ref"`
	Fields   map[string]string `json:"fields"`
}

type CreateTaskInput struct {
	Name       string
	Source     string
	SourcePath string
	Rows       []RawRow
}

type CreateTaskOutput struct {
	TaskID    string `json:"task_id"`
	Status    string `json:"status"`
	TotalRows int    `json:"total_rows"`
}

type CreateTask interface {
	Execute(ctx context.Context, in CreateTaskInput) (CreateTaskOutput, error)
}

type createTask struct {
	tasks  catalog.TaskRepository
	rows   catalog.RowStore
	source RowSource
	now    func() time.Time
}

func NewCreateTask(tasks catalog.TaskRepository, rows catalog.RowStore, source RowSource) CreateTask {
	return &createTask{tasks: tasks, rows: rows, source: source, now: time.Now}
}

func (uc *createTask) Execute(ctx context.Context, in CreateTaskInput) (CreateTaskOutput, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return CreateTaskOutput{}, fmt.Errorf("%w: name is required", ErrInvalidTaskInput)
	}

	source, err := catalog.ParseTaskSource(in.Source)
	if err != nil {
		return CreateTaskOutput{}, fmt.Errorf("%w: %v", ErrInvalidTaskInput, err)
	}

	raw := in.Rows
	if path := strings.TrimSpace(in.SourcePath); path != "" {
		if strings.ToLower(filepath.Ext(path)) != ".json" {
			return CreateTaskOutput{}, fmt.Errorf("%w: source_path must be a .json file", ErrInvalidTaskInput)
		}
		raw, err = uc.readRows(ctx, path)
		if err != nil {
			return CreateTaskOutput{}, err
		}
	}
	if len(raw) == 0 {
		return CreateTaskOutput{}, fmt.Errorf("%w: no rows to import", ErrInvalidTaskInput)
	}

	rows := make([]catalog.Row, 0, len(raw))
	for i, candidate := range raw {
		row, err := toDomainRow(candidate)
		if err != nil {
			return CreateTaskOutput{}, fmt.Errorf("%w: row %d: %v", ErrInvalidRowPayload, i, err)
		}
		rows = append(rows, row)
	}

	task, err := catalog.NewTask(uuid.NewString(), name, source, len(rows), uc.now())
	if err != nil {
		return CreateTaskOutput{}, fmt.Errorf("%w: %v", ErrInvalidTaskInput, err)
	}

	if err := uc.tasks.Create(ctx, task); err != nil {
		return CreateTaskOutput{}, fmt.Errorf("create task: %w", err)
	}
	for _, row := range rows {
		if err := uc.rows.Add(ctx, task.ID, row); err != nil {
			return CreateTaskOutput{}, fmt.Errorf("store row %s: %w", row.SKU, err)
		}
	}

	return CreateTaskOutput{
		TaskID:    task.ID,
		Status:    string(task.Status),
		TotalRows: task.TotalRows,
	}, nil
}

func (uc *createTask) readRows(ctx context.Context, path string) ([]RawRow, error) {
	reader, err := uc.source.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: open source: %v", ErrInvalidTaskInput, err)
	}
	defer reader.Close()

	dec := json.NewDecoder(reader)

	token, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: read payload start: %v", ErrInvalidRowPayload, err)
	}
	if delim, ok := token.(json.Delim); !ok || delim != '[' {
		return nil, fmt.Errorf("%w: payload must be a JSON array", ErrInvalidRowPayload)
	}

	var rows []RawRow
	for dec.More() {
		var row RawRow
		if err := dec.Decode(&row); err != nil {
			return nil, fmt.Errorf("%w: decode row %d: %v", ErrInvalidRowPayload, len(rows), err)
		}
		rows = append(rows, row)
	}
	if _, err := dec.Token(); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: read payload end: %v", ErrInvalidRowPayload, err)
	}
	return rows, nil
}

func toDomainRow(raw RawRow) (catalog.Row, error) {
	fields := catalog.FieldValues{}
	for key, value := range raw.Fields {
		name, err := catalog.ParseFieldName(key)
		if err != nil {
			return catalog.Row{}, fmt.Errorf("field %q: %w", key, err)
		}
		fields[name] = value
	}
	return catalog.NewRow(uuid.NewString(), raw.SKU, raw.ImageRef, fields)
}
