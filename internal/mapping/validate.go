package mapping

import (
	"fmt"
	"strings"

	"dealdocs/internal/diagnostic"
)

// Validate checks a mapping file structurally. A missing field name or an
// unparseable data path is an error; an unknown transform is a warning.
func Validate(mf *MappingFile) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if mf == nil {
		res.AddError("mapping_is_nil", "mapping file is nil", "", "")
		return res
	}

	res.Merge(*ValidateMappings(mf.Fields))

	return res
}

// ValidateMappings validates a list of field mappings.
// Exact duplicates (same field and path) are reported as warnings; a field
// name that appears with different paths is legal and left to the filler.
func ValidateMappings(fields []FieldMapping) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	seen := map[string]struct{}{}

	for i := range fields {
		fm := &fields[i]

		if strings.TrimSpace(fm.PDFFieldName) == "" {
			res.AddError(diagnostic.CodeEmptyField,
				fmt.Sprintf("mapping #%d has no pdf_field", i+1), "", fm.DataPath)

			continue
		}

		if _, err := ParseDataPath(fm.DataPath); err != nil {
			res.AddError(diagnostic.CodeInvalidPath, err.Error(), fm.PDFFieldName, fm.DataPath)
		}

		if !fm.Transform.IsKnown() {
			res.AddWarning(diagnostic.CodeUnknownTransform,
				fmt.Sprintf("unknown transform %q is applied as pass-through", fm.Transform), fm.PDFFieldName, fm.DataPath)
		}

		key := fm.PDFFieldName + "\x00" + fm.DataPath
		if _, ok := seen[key]; ok {
			res.AddWarning(diagnostic.CodeDuplicateMapping, "duplicate mapping", fm.PDFFieldName, fm.DataPath)
			continue
		}

		seen[key] = struct{}{}
	}

	return res
}
