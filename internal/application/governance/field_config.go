package governance

import (
	"context"
	"fmt"

	"github.com/styleforge/datagovern/internal/domain/catalog"
)

type FieldConfigOutput struct {
	Style  []string `json:"style"`
	Fabric []string `json:"fabric"`
}

type UpdateFieldConfigInput struct {
	Style  []string
	Fabric []string
}

type FieldConfigService interface {
	Get(ctx context.Context) (FieldConfigOutput, error)
	Update(ctx context.Context, in UpdateFieldConfigInput) (FieldConfigOutput, error)
}

type fieldConfigService struct {
	store catalog.FieldConfigStore
}

func NewFieldConfigService(store catalog.FieldConfigStore) FieldConfigService {
	return &fieldConfigService{store: store}
}

func (s *fieldConfigService) Get(ctx context.Context) (FieldConfigOutput, error) {
	config, err := s.store.Get(ctx)
	if err != nil {
		return FieldConfigOutput{}, fmt.Errorf("load field config: %w", err)
	}
	return toFieldConfigOutput(config), nil
}

func (s *fieldConfigService) Update(ctx context.Context, in UpdateFieldConfigInput) (FieldConfigOutput, error) {
	style, err := parseFieldList(in.Style)
	if err != nil {
		return FieldConfigOutput{}, err
	}
	fabric, err := parseFieldList(in.Fabric)
	if err != nil {
		return FieldConfigOutput{}, err
	}
	if len(style) == 0 || len(fabric) == 0 {
		return FieldConfigOutput{}, fmt.Errorf("%w: each domain needs at least one target field", ErrInvalidFieldConfig)
	}

	config := catalog.FieldConfig{Style: style, Fabric: fabric}
	if err := s.store.Put(ctx, config); err != nil {
		return FieldConfigOutput{}, fmt.Errorf("store field config: %w", err)
	}
	return toFieldConfigOutput(config), nil
}

func parseFieldList(raw []string) ([]catalog.FieldName, error) {
	names := make([]catalog.FieldName, 0, len(raw))
	seen := make(map[catalog.FieldName]struct{}, len(raw))
	for _, candidate := range raw {
		name, err := catalog.ParseFieldName(candidate)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidFieldConfig, candidate)
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names, nil
}

func toFieldConfigOutput(config catalog.FieldConfig) FieldConfigOutput {
	out := FieldConfigOutput{
		Style:  make([]string, 0, len(config.Style)),
		Fabric: make([]string, 0, len(config.Fabric)),
	}
	for _, name := range config.Style {
		out.Style = append(out.Style, string(name))
	}
	for _, name := range config.Fabric {
		out.Fabric = append(out.Fabric, string(name))
	}
	return out
}
