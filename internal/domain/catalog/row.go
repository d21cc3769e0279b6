package catalog

import "strings"

// FieldName identifies one attribute column of a product or fabric record.
// The set is closed: merge rules, mutability checks and the enrichment
// target list all iterate over these constants rather than free-form keys.
type FieldName string

const (
	FieldMaterial   FieldName = "material"
	FieldColor      FieldName = "color"
	FieldStyle      FieldName = "style"
	FieldSeason     FieldName = "season"
	FieldCategory   FieldName = "category"
	FieldCollarType FieldName = "collarType"
)

// AllFields returns every attribute column in display order.
func AllFields() []FieldName {
	return []FieldName{
		FieldMaterial,
		FieldColor,
		FieldStyle,
		FieldSeason,
		FieldCategory,
		FieldCollarType,
	}
}

func ParseFieldName(raw string) (FieldName, error) {
	for _, name := range AllFields() {
		if string(name) == strings.TrimSpace(raw) {
			return name, nil
		}
	}
	return "", ErrUnknownField
}

// FieldValues maps attribute columns to their current value. An absent key
// or a whitespace-only value both mean the attribute is missing.
type FieldValues map[FieldName]string

func (v FieldValues) Missing(name FieldName) bool {
	return strings.TrimSpace(v[name]) == ""
}

// MissingAny reports whether at least one of the given columns is missing.
func (v FieldValues) MissingAny(names []FieldName) bool {
	for _, name := range names {
		if v.Missing(name) {
			return true
		}
	}
	return false
}

func (v FieldValues) Clone() FieldValues {
	out := make(FieldValues, len(v))
	for name, value := range v {
		out[name] = value
	}
	return out
}

// Row is one product or fabric record tracked through enrichment. ID and SKU
// are immutable after creation; Confirmed is only ever set by user action.
type Row struct {
	ID        string
	SKU       string
	ImageRef  string
	Fields    FieldValues
	Confirmed bool
}

func NewRow(id, sku, imageRef string, fields FieldValues) (Row, error) {
	if strings.TrimSpace(id) == "" || strings.TrimSpace(sku) == "" {
		return Row{}, ErrInvalidRow
	}
	if fields == nil {
		fields = FieldValues{}
	}
	return Row{
		ID:       id,
		SKU:      sku,
		ImageRef: imageRef,
		Fields:   fields.Clone(),
	}, nil
}
