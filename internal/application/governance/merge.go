package governance

import (
	"strings"

	"github.com/styleforge/datagovern/internal/domain/catalog"
)

// MergeFields fills gaps in existing with inferred values. Only columns in
// targets are considered, and a target is written only when the existing
// value is missing and the inferred value is non-empty. Human-entered data
// is never overwritten; columns outside targets pass through untouched.
func MergeFields(existing, inferred catalog.FieldValues, targets []catalog.FieldName) catalog.FieldValues {
	merged := existing.Clone()
	for _, name := range targets {
		if !merged.Missing(name) {
			continue
		}
		value := strings.TrimSpace(inferred[name])
		if value == "" {
			continue
		}
		merged[name] = value
	}
	return merged
}
