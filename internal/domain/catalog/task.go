package catalog

import (
	"strings"
	"time"
)

// TaskSource records where a task's rows came from. Library imports arrive
// with most catalog attributes already authoritative, which restricts which
// columns stay editable (see MutableFields).
type TaskSource string

const (
	SourceSpreadsheet   TaskSource = "spreadsheet"
	SourceStyleLibrary  TaskSource = "style_library"
	SourceFabricLibrary TaskSource = "fabric_library"
)

func ParseTaskSource(raw string) (TaskSource, error) {
	switch TaskSource(strings.TrimSpace(raw)) {
	case SourceSpreadsheet:
		return SourceSpreadsheet, nil
	case SourceStyleLibrary:
		return SourceStyleLibrary, nil
	case SourceFabricLibrary:
		return SourceFabricLibrary, nil
	}
	return "", ErrUnknownSource
}

// MutableFields returns the columns a user may edit for rows of the given
// source. Spreadsheet uploads are fully editable; library imports keep their
// catalog attributes locked and expose only the AI-governed columns.
func MutableFields(source TaskSource) []FieldName {
	switch source {
	case SourceStyleLibrary, SourceFabricLibrary:
		return []FieldName{FieldMaterial, FieldColor}
	default:
		return AllFields()
	}
}

func FieldMutable(source TaskSource, name FieldName) bool {
	for _, candidate := range MutableFields(source) {
		if candidate == name {
			return true
		}
	}
	return false
}

// TaskStatus is the review lifecycle of a batch. Transmitted is terminal.
type TaskStatus string

const (
	StatusPending     TaskStatus = "pending"
	StatusProcessing  TaskStatus = "processing"
	StatusCompleted   TaskStatus = "completed"
	StatusTransmitted TaskStatus = "transmitted"
)

// AIStatus tracks the enrichment run independently of the review lifecycle,
// so a failed run can be retried without losing review state.
type AIStatus string

const (
	AIPending    AIStatus = "pending"
	AIProcessing AIStatus = "processing"
	AICompleted  AIStatus = "completed"
	AIFailed     AIStatus = "failed"
)

// Task is a batch of rows imported together and tracked through enrichment
// to completion and transmission.
type Task struct {
	ID         string
	Name       string
	Source     TaskSource
	TotalRows  int
	AIProgress int
	Status     TaskStatus
	AIStatus   AIStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func NewTask(id, name string, source TaskSource, totalRows int, now time.Time) (Task, error) {
	if strings.TrimSpace(id) == "" || strings.TrimSpace(name) == "" {
		return Task{}, ErrInvalidTask
	}
	if totalRows < 0 {
		return Task{}, ErrInvalidTask
	}
	return Task{
		ID:        id,
		Name:      name,
		Source:    source,
		TotalRows: totalRows,
		Status:    StatusPending,
		AIStatus:  AIPending,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Transmittable reports whether the batch has finished review and can still
// be sent out. A transmitted task never becomes transmittable again.
func (t Task) Transmittable() bool {
	return t.Status == StatusCompleted
}
