package memory

import (
	"context"
	"sync"

	"github.com/styleforge/datagovern/internal/domain/catalog"
)

type taskRows struct {
	order []string
	byID  map[string]catalog.Row
}

// AttributeStore is the in-memory row store, insertion order preserved per
// task. Rows are cloned on the way in and out so callers never alias the
// stored field maps.
type AttributeStore struct {
	mu   sync.RWMutex
	rows map[string]*taskRows
}

func NewAttributeStore() *AttributeStore {
	return &AttributeStore{rows: make(map[string]*taskRows)}
}

func (s *AttributeStore) Add(ctx context.Context, taskID string, row catalog.Row) error {
	_ = ctx

	s.mu.Lock()
	defer s.mu.Unlock()

	bucket, ok := s.rows[taskID]
	if !ok {
		bucket = &taskRows{byID: make(map[string]catalog.Row)}
		s.rows[taskID] = bucket
	}
	if _, exists := bucket.byID[row.ID]; !exists {
		bucket.order = append(bucket.order, row.ID)
	}
	row.Fields = row.Fields.Clone()
	bucket.byID[row.ID] = row
	return nil
}

func (s *AttributeStore) Get(ctx context.Context, taskID, rowID string) (catalog.Row, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	bucket, ok := s.rows[taskID]
	if !ok {
		return catalog.Row{}, catalog.ErrRowNotFound
	}
	row, ok := bucket.byID[rowID]
	if !ok {
		return catalog.Row{}, catalog.ErrRowNotFound
	}
	row.Fields = row.Fields.Clone()
	return row, nil
}

func (s *AttributeStore) ListAll(ctx context.Context, taskID string) ([]catalog.Row, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	bucket, ok := s.rows[taskID]
	if !ok {
		return nil, nil
	}
	out := make([]catalog.Row, 0, len(bucket.order))
	for _, id := range bucket.order {
		row := bucket.byID[id]
		row.Fields = row.Fields.Clone()
		out = append(out, row)
	}
	return out, nil
}

func (s *AttributeStore) UpdateField(ctx context.Context, taskID, rowID string, name catalog.FieldName, value string) (catalog.Row, error) {
	return s.mutate(ctx, taskID, rowID, func(row *catalog.Row) {
		row.Fields[name] = value
	})
}

func (s *AttributeStore) ApplyFields(ctx context.Context, taskID, rowID string, fields catalog.FieldValues) (catalog.Row, error) {
	return s.mutate(ctx, taskID, rowID, func(row *catalog.Row) {
		row.Fields = fields.Clone()
	})
}

func (s *AttributeStore) SetConfirmed(ctx context.Context, taskID, rowID string, confirmed bool) (catalog.Row, error) {
	return s.mutate(ctx, taskID, rowID, func(row *catalog.Row) {
		row.Confirmed = confirmed
	})
}

func (s *AttributeStore) DropTask(ctx context.Context, taskID string) error {
	_ = ctx

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.rows, taskID)
	return nil
}

func (s *AttributeStore) mutate(ctx context.Context, taskID, rowID string, apply func(*catalog.Row)) (catalog.Row, error) {
	_ = ctx

	s.mu.Lock()
	defer s.mu.Unlock()

	bucket, ok := s.rows[taskID]
	if !ok {
		return catalog.Row{}, catalog.ErrRowNotFound
	}
	row, ok := bucket.byID[rowID]
	if !ok {
		return catalog.Row{}, catalog.ErrRowNotFound
	}

	row.Fields = row.Fields.Clone()
	apply(&row)
	bucket.byID[rowID] = row

	row.Fields = row.Fields.Clone()
	return row, nil
}
