package prepare

import (
	"fmt"

	"go.uber.org/zap"

	"dealdocs/internal/diagnostic"
	"dealdocs/internal/mapping"
	"dealdocs/internal/record"
)

// PreparedField is the value destined for one form field.
// Either Skipped is true and Value is empty, or Value holds the string to write.
type PreparedField struct {
	PDFFieldName    string `json:"pdfFieldName"`
	Value           string `json:"value"`
	Skipped         bool   `json:"skipped"`
	ValidationError string `json:"validationError,omitempty"`

	// DataPath and Priority carry the mapping's identity to the filler,
	// which needs them to rank candidates sharing a field name.
	DataPath string `json:"dataPath,omitempty"`
	Priority int    `json:"priority,omitempty"`
}

// ValidationError reports required data missing from the record.
type ValidationError struct {
	Field    string `json:"field"`
	DataPath string `json:"dataPath"`
	Message  string `json:"message"`
}

// Error implements error.
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s (%s): %s", e.Field, e.DataPath, e.Message)
}

// Result is the output of Prepare.
type Result struct {
	Fields           []PreparedField
	ValidationErrors []ValidationError
	Diagnostics      diagnostic.Diagnostics
}

// Skipped returns the number of skipped fields.
func (r *Result) Skipped() int {
	n := 0

	for i := range r.Fields {
		if r.Fields[i].Skipped {
			n++
		}
	}

	return n
}

type options struct {
	logger *zap.Logger
}

// Option configures Prepare.
type Option func(*options)

// WithLogger sets the logger used for transform warnings.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Prepare resolves every mapping against rec.
// It is deterministic and has no side effects beyond logging.
func Prepare(mappings []mapping.FieldMapping, rec *record.Transaction, opts ...Option) Result {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	res := Result{Fields: make([]PreparedField, 0, len(mappings))}

	for i := range mappings {
		res.Fields = append(res.Fields, prepareOne(&mappings[i], rec, &res, o.logger))
	}

	return res
}

func prepareOne(m *mapping.FieldMapping, rec *record.Transaction, res *Result, logger *zap.Logger) PreparedField {
	out := PreparedField{
		PDFFieldName: m.PDFFieldName,
		DataPath:     m.DataPath,
		Priority:     m.Priority,
	}

	path, err := mapping.ParseDataPath(m.DataPath)
	if err != nil {
		res.Diagnostics.AddWarning(diagnostic.CodeInvalidPath, err.Error(), m.PDFFieldName, m.DataPath)
	}

	var (
		raw     any
		present bool
	)

	if err == nil {
		raw, present = rec.Lookup(path)
		present = present && !record.IsBlank(raw)
	}

	if !present {
		switch def, hasDefault := m.Default(); {
		case m.Required:
			msg := "required value missing"
			out.Skipped = true
			out.ValidationError = msg
			res.ValidationErrors = append(res.ValidationErrors, ValidationError{
				Field:    m.PDFFieldName,
				DataPath: m.DataPath,
				Message:  msg,
			})
			res.Diagnostics.AddError(diagnostic.CodeRequiredMissing, msg, m.PDFFieldName, m.DataPath)
		case hasDefault:
			out.Value = def
		default:
			out.Skipped = true
		}

		return out
	}

	value, warning := m.Transform.Apply(raw)
	if warning != "" {
		logger.Warn("transform fell back",
			zap.String("field", m.PDFFieldName),
			zap.String("path", m.DataPath),
			zap.String("transform", string(m.Transform)),
			zap.String("warning", warning))
		res.Diagnostics.AddWarning(diagnostic.CodeTransformFallback, warning, m.PDFFieldName, m.DataPath)
	}

	if !m.Transform.IsKnown() {
		res.Diagnostics.AddWarning(diagnostic.CodeUnknownTransform,
			fmt.Sprintf("unknown transform %q applied as pass-through", m.Transform), m.PDFFieldName, m.DataPath)
	}

	out.Value = value

	return out
}
