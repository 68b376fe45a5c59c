package mapping

// MappingFile represents the root of a YAML mapping override file.
// This is the authoritative, human-reviewed mapping for one template.
type MappingFile struct {
	// Version of the mapping schema (for future compatibility).
	Version string `yaml:"version,omitempty"`

	// Template optionally names the template the mappings were reviewed against.
	Template string `yaml:"template,omitempty"`

	// Fields lists the field mappings in fill order.
	Fields []FieldMapping `yaml:"fields"`
}

// FieldMapping binds one PDF form field to one record data path.
// Several mappings may share a PDFFieldName; the filler reconciles them.
type FieldMapping struct {
	// PDFFieldName is the fully qualified form field name.
	PDFFieldName string `yaml:"pdf_field" json:"pdfFieldName"`

	// DataPath is the "<category>.<leaf>" path into the transaction record.
	DataPath string `yaml:"path" json:"dataPath"`

	// Transform is applied to the resolved value. Empty means pass-through.
	Transform Transform `yaml:"transform,omitempty" json:"transform,omitempty"`

	// DefaultValue substitutes missing, optional data.
	DefaultValue *string `yaml:"default,omitempty" json:"defaultValue,omitempty"`

	// Required marks data whose absence is reported as a validation error.
	Required bool `yaml:"required,omitempty" json:"required"`

	// AutoMapped is true when the mapping was inferred from the field name.
	AutoMapped bool `yaml:"auto,omitempty" json:"autoMapped"`

	// Score is the auto-mapper's confidence (0-100). Zero for manual mappings.
	Score int `yaml:"score,omitempty" json:"score,omitempty"`

	// Priority overrides the filler's conflict priority when positive.
	Priority int `yaml:"priority,omitempty" json:"priority,omitempty"`
}

// Default returns the default value and whether one is set.
func (m FieldMapping) Default() (string, bool) {
	if m.DefaultValue == nil {
		return "", false
	}

	return *m.DefaultValue, true
}

// StringPtr returns a pointer to s. Handy for DefaultValue literals.
func StringPtr(s string) *string {
	return &s
}
