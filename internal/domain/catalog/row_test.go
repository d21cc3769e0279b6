package catalog_test

import (
	"testing"

	"github.com/styleforge/datagovern/internal/domain/catalog"
)

func TestNewRowValid(t *testing.T) {
	t.Parallel()

	row, err := catalog.NewRow("r1", "TS-WH-001", "https://img.example/1.jpg", catalog.FieldValues{
		catalog.FieldMaterial: "棉",
		catalog.FieldColor:    "白色",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if row.Confirmed {
		t.Fatal("new rows must start unconfirmed")
	}
	if row.Fields[catalog.FieldMaterial] != "棉" {
		t.Fatalf("unexpected material: %q", row.Fields[catalog.FieldMaterial])
	}
}

func TestNewRowRejectsEmptySKU(t *testing.T) {
	t.Parallel()

	if _, err := catalog.NewRow("r1", "  ", "", nil); err != catalog.ErrInvalidRow {
		t.Fatalf("expected ErrInvalidRow, got %v", err)
	}
}

func TestNewRowClonesFields(t *testing.T) {
	t.Parallel()

	fields := catalog.FieldValues{catalog.FieldColor: "蓝色"}
	row, err := catalog.NewRow("r1", "JN-BL-002", "", fields)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	fields[catalog.FieldColor] = "红色"
	if row.Fields[catalog.FieldColor] != "蓝色" {
		t.Fatal("row must not alias the caller's field map")
	}
}

func TestParseFieldName(t *testing.T) {
	t.Parallel()

	name, err := catalog.ParseFieldName("collarType")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if name != catalog.FieldCollarType {
		t.Fatalf("unexpected field: %s", name)
	}

	if _, err := catalog.ParseFieldName("weight"); err != catalog.ErrUnknownField {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestFieldValuesMissing(t *testing.T) {
	t.Parallel()

	fields := catalog.FieldValues{
		catalog.FieldMaterial: "  ",
		catalog.FieldColor:    "黑色",
	}

	if !fields.Missing(catalog.FieldMaterial) {
		t.Fatal("whitespace-only value must count as missing")
	}
	if fields.Missing(catalog.FieldColor) {
		t.Fatal("non-empty value must not count as missing")
	}
	if !fields.Missing(catalog.FieldSeason) {
		t.Fatal("absent key must count as missing")
	}
	if !fields.MissingAny([]catalog.FieldName{catalog.FieldColor, catalog.FieldMaterial}) {
		t.Fatal("expected MissingAny to report the missing material")
	}
}

func TestMutableFieldsBySource(t *testing.T) {
	t.Parallel()

	if got := len(catalog.MutableFields(catalog.SourceSpreadsheet)); got != len(catalog.AllFields()) {
		t.Fatalf("spreadsheet tasks must keep all fields editable, got %d", got)
	}

	for _, source := range []catalog.TaskSource{catalog.SourceStyleLibrary, catalog.SourceFabricLibrary} {
		if !catalog.FieldMutable(source, catalog.FieldMaterial) {
			t.Fatalf("%s: material must stay editable", source)
		}
		if !catalog.FieldMutable(source, catalog.FieldColor) {
			t.Fatalf("%s: color must stay editable", source)
		}
		if catalog.FieldMutable(source, catalog.FieldSeason) {
			t.Fatalf("%s: season must be locked", source)
		}
		if catalog.FieldMutable(source, catalog.FieldCollarType) {
			t.Fatalf("%s: collarType must be locked", source)
		}
	}
}
