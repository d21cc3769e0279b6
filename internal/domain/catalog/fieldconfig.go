package catalog

// FieldConfig holds the per-domain target-field lists the enrichment runner
// reads. Garment styles and fabrics are configured independently.
type FieldConfig struct {
	Style  []FieldName
	Fabric []FieldName
}

// DefaultFieldConfig targets only the two columns the product trusts the
// model with out of the box.
func DefaultFieldConfig() FieldConfig {
	return FieldConfig{
		Style:  []FieldName{FieldMaterial, FieldColor},
		Fabric: []FieldName{FieldMaterial, FieldColor},
	}
}

// TargetsFor picks the target list matching a task's source. Spreadsheet
// uploads carry garment records and follow the style configuration.
func (c FieldConfig) TargetsFor(source TaskSource) []FieldName {
	if source == SourceFabricLibrary {
		return c.Fabric
	}
	return c.Style
}
