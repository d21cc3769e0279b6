package memory

import (
	"context"
	"sync"

	"github.com/styleforge/datagovern/internal/domain/catalog"
)

// FieldConfigStore holds the session's AI target-field configuration.
type FieldConfigStore struct {
	mu     sync.RWMutex
	config catalog.FieldConfig
}

func NewFieldConfigStore() *FieldConfigStore {
	return &FieldConfigStore{config: catalog.DefaultFieldConfig()}
}

func (s *FieldConfigStore) Get(ctx context.Context) (catalog.FieldConfig, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()
	return catalog.FieldConfig{
		Style:  append([]catalog.FieldName(nil), s.config.Style...),
		Fabric: append([]catalog.FieldName(nil), s.config.Fabric...),
	}, nil
}

func (s *FieldConfigStore) Put(ctx context.Context, config catalog.FieldConfig) error {
	_ = ctx

	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = catalog.FieldConfig{
		Style:  append([]catalog.FieldName(nil), config.Style...),
		Fabric: append([]catalog.FieldName(nil), config.Fabric...),
	}
	return nil
}
