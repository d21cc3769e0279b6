package catalog_test

import (
	"testing"
	"time"

	"github.com/styleforge/datagovern/internal/domain/catalog"
)

func TestNewTaskDefaults(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	task, err := catalog.NewTask("t1", "春季连衣裙批次", catalog.SourceSpreadsheet, 25, now)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if task.Status != catalog.StatusPending {
		t.Fatalf("expected pending status, got %s", task.Status)
	}
	if task.AIStatus != catalog.AIPending {
		t.Fatalf("expected pending ai status, got %s", task.AIStatus)
	}
	if task.AIProgress != 0 {
		t.Fatalf("expected zero progress, got %d", task.AIProgress)
	}
	if !task.CreatedAt.Equal(now) || !task.UpdatedAt.Equal(now) {
		t.Fatal("timestamps must be set from the supplied clock")
	}
}

func TestNewTaskRejectsBadInput(t *testing.T) {
	t.Parallel()

	if _, err := catalog.NewTask("t1", "   ", catalog.SourceSpreadsheet, 1, time.Now()); err != catalog.ErrInvalidTask {
		t.Fatalf("expected ErrInvalidTask for blank name, got %v", err)
	}
	if _, err := catalog.NewTask("t1", "batch", catalog.SourceSpreadsheet, -1, time.Now()); err != catalog.ErrInvalidTask {
		t.Fatalf("expected ErrInvalidTask for negative row count, got %v", err)
	}
}

func TestParseTaskSource(t *testing.T) {
	t.Parallel()

	source, err := catalog.ParseTaskSource(" fabric_library ")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if source != catalog.SourceFabricLibrary {
		t.Fatalf("unexpected source: %s", source)
	}

	if _, err := catalog.ParseTaskSource("erp"); err != catalog.ErrUnknownSource {
		t.Fatalf("expected ErrUnknownSource, got %v", err)
	}
}

func TestTransmittable(t *testing.T) {
	t.Parallel()

	task, err := catalog.NewTask("t1", "batch", catalog.SourceSpreadsheet, 1, time.Now())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	for status, want := range map[catalog.TaskStatus]bool{
		catalog.StatusPending:     false,
		catalog.StatusProcessing:  false,
		catalog.StatusCompleted:   true,
		catalog.StatusTransmitted: false,
	} {
		task.Status = status
		if task.Transmittable() != want {
			t.Fatalf("status %s: expected transmittable=%v", status, want)
		}
	}
}

func TestFieldConfigTargetsFor(t *testing.T) {
	t.Parallel()

	config := catalog.FieldConfig{
		Style:  []catalog.FieldName{catalog.FieldStyle, catalog.FieldSeason},
		Fabric: []catalog.FieldName{catalog.FieldMaterial},
	}

	if got := config.TargetsFor(catalog.SourceFabricLibrary); len(got) != 1 || got[0] != catalog.FieldMaterial {
		t.Fatalf("fabric source must use the fabric list, got %v", got)
	}
	if got := config.TargetsFor(catalog.SourceSpreadsheet); len(got) != 2 || got[0] != catalog.FieldStyle {
		t.Fatalf("spreadsheet source must use the style list, got %v", got)
	}
	if got := config.TargetsFor(catalog.SourceStyleLibrary); len(got) != 2 {
		t.Fatalf("style library source must use the style list, got %v", got)
	}
}

func TestDefaultFieldConfig(t *testing.T) {
	t.Parallel()

	config := catalog.DefaultFieldConfig()
	for _, targets := range [][]catalog.FieldName{config.Style, config.Fabric} {
		if len(targets) != 2 || targets[0] != catalog.FieldMaterial || targets[1] != catalog.FieldColor {
			t.Fatalf("default targets must be material and color, got %v", targets)
		}
	}
}
