package catalog

import "context"

// TaskRepository owns the process-wide task list.
type TaskRepository interface {
	Create(ctx context.Context, task Task) error
	Get(ctx context.Context, id string) (Task, error)
	List(ctx context.Context) ([]Task, error)
	Delete(ctx context.Context, id string) error
	SetStatus(ctx context.Context, id string, status TaskStatus) error
	UpdateAIState(ctx context.Context, id string, status AIStatus, progress int) error
}

// RowStore is the authoritative mapping from row id to Row for each task,
// insertion order preserved.
type RowStore interface {
	Add(ctx context.Context, taskID string, row Row) error
	Get(ctx context.Context, taskID, rowID string) (Row, error)
	ListAll(ctx context.Context, taskID string) ([]Row, error)
	// UpdateField overwrites unconditionally: an explicit user edit always
	// wins, even over a non-empty inferred value.
	UpdateField(ctx context.Context, taskID, rowID string, name FieldName, value string) (Row, error)
	// ApplyFields replaces the row's whole field map with an already-merged one.
	ApplyFields(ctx context.Context, taskID, rowID string, fields FieldValues) (Row, error)
	SetConfirmed(ctx context.Context, taskID, rowID string, confirmed bool) (Row, error)
	DropTask(ctx context.Context, taskID string) error
}

type FieldConfigStore interface {
	Get(ctx context.Context) (FieldConfig, error)
	Put(ctx context.Context, config FieldConfig) error
}

// AttributeAnalyzer is the external attribute-inference capability.
// Coverage is best effort: absent target fields mean "no data", not an error.
type AttributeAnalyzer interface {
	InferAttributes(ctx context.Context, imageRef string, targets []FieldName) (FieldValues, error)
}

// ConceptGenerator produces new style proposals from a free-text seed.
type ConceptGenerator interface {
	GenerateConcepts(ctx context.Context, seed string, count int) ([]StyleConcept, error)
}

// ImageSynthesizer renders a concept image for a text prompt. An empty
// result with an error means the caller must substitute a placeholder.
type ImageSynthesizer interface {
	SynthesizeImage(ctx context.Context, prompt string) (string, error)
}

// Transmitter returns a task's finalized rows to an external destination.
type Transmitter interface {
	Transmit(ctx context.Context, task Task, rows []Row, destination string) error
}
