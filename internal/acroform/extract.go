package acroform

import (
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"go.uber.org/zap"
)

// Field is one fillable field of a template.
type Field struct {
	// Name is the fully qualified name, partial names joined by ".".
	Name string `json:"name"`
	Kind Kind   `json:"kind"`
}

// Stats summarizes one extraction.
type Stats struct {
	// Skipped counts malformed nodes left out of the result.
	Skipped int `json:"skipped"`
	// Unclassified counts returned fields of KindUnknown.
	Unclassified int `json:"unclassified"`
}

// Extract lists the template's terminal fields in document order, one
// entry per distinct name.
func Extract(template []byte, opts ...Option) ([]Field, error) {
	fields, _, err := ExtractWithStats(template, opts...)

	return fields, err
}

// ExtractWithStats is Extract plus counts of skipped and unclassified nodes.
func ExtractWithStats(template []byte, opts ...Option) ([]Field, Stats, error) {
	o := newOptions(opts)

	f, err := openForm(template)
	if err != nil {
		return nil, Stats{}, err
	}

	fields := f.fields()
	stats := Stats{Skipped: f.skipped}

	for _, fl := range fields {
		if fl.Kind == KindUnknown {
			stats.Unclassified++
		}
	}

	if stats.Skipped > 0 {
		o.logger.Warn("skipped malformed form nodes", zap.Int("skipped", stats.Skipped))
	}

	if stats.Unclassified > 0 {
		o.logger.Warn("form has unclassified fields", zap.Int("unclassified", stats.Unclassified))
	}

	o.logger.Debug("fields extracted", zap.Int("fields", len(fields)))

	return fields, stats, nil
}

// ReadValues returns the current value of every terminal field that has
// one. Text and choice values are decoded strings; button values are
// state names.
func ReadValues(template []byte) (map[string]string, error) {
	f, err := openForm(template)
	if err != nil {
		return nil, err
	}

	values := make(map[string]string, len(f.nodes))

	for _, n := range f.nodes {
		o, ok := n.dict.Find("V")
		if !ok {
			continue
		}

		if v, ok := valueString(f.ctx, o); ok {
			if _, dup := values[n.name]; !dup {
				values[n.name] = v
			}
		}
	}

	return values, nil
}

func valueString(ctx *model.Context, o types.Object) (string, bool) {
	if s, err := ctx.DereferenceStringOrHexLiteral(o, model.V10, nil); err == nil {
		return s, true
	}

	if n, err := ctx.DereferenceName(o, model.V10, nil); err == nil {
		return string(n), true
	}

	if arr, err := ctx.DereferenceArray(o); err == nil && len(arr) > 0 {
		return valueString(ctx, arr[0])
	}

	return "", false
}
