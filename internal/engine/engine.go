package engine

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"dealdocs/internal/acroform"
	"dealdocs/internal/diagnostic"
	"dealdocs/internal/mapping"
	"dealdocs/internal/match"
	"dealdocs/internal/prepare"
	"dealdocs/internal/record"
)

// ErrNilRecord is returned by Fill when no record is given.
var ErrNilRecord = errors.New("transaction record is nil")

// MappingError rejects a manual mapping list that cannot be applied.
type MappingError struct {
	Diagnostics diagnostic.Diagnostics
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("invalid mappings: %v", e.Diagnostics.Error())
}

// Engine runs the document assembly pipeline.
type Engine struct {
	logger   *zap.Logger
	priority acroform.PriorityFunc
	schema   *match.Schema
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithPriority replaces the filler's default conflict priority.
func WithPriority(fn acroform.PriorityFunc) Option {
	return func(e *Engine) {
		if fn != nil {
			e.priority = fn
		}
	}
}

// WithSchema replaces the compiled-in alias schema.
func WithSchema(s *match.Schema) Option {
	return func(e *Engine) {
		if s != nil {
			e.schema = s
		}
	}
}

// New returns an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		logger:   zap.NewNop(),
		priority: acroform.DefaultPriority,
		schema:   match.DefaultSchema(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// FillResult is the filled document plus an account of every field.
type FillResult struct {
	RunID            string                      `json:"runId"`
	Document         []byte                      `json:"-"`
	Filled           int                         `json:"filled"`
	Skipped          int                         `json:"skipped"`
	Mappings         []mapping.FieldMapping      `json:"mappings"`
	Fields           []prepare.PreparedField     `json:"fields"`
	ValidationErrors []prepare.ValidationError   `json:"validationErrors"`
	WriteErrors      []*acroform.FieldWriteError `json:"-"`
	Diagnostics      diagnostic.Diagnostics      `json:"diagnostics"`
}

// Extract lists the fields of template.
func (e *Engine) Extract(template []byte) ([]acroform.Field, error) {
	return acroform.Extract(template, acroform.WithLogger(e.logger))
}

// Map extracts and auto-maps template.
func (e *Engine) Map(template []byte) (*match.Result, error) {
	fields, stats, err := acroform.ExtractWithStats(template, acroform.WithLogger(e.logger))
	if err != nil {
		return nil, err
	}

	res := e.schema.Map(fields)
	res.Diagnostics.Merge(extractDiagnostics(fields, stats))

	return res, nil
}

// Fill fills template from rec. With nil mappings the template is
// extracted and auto-mapped first; otherwise mappings are used as given.
func (e *Engine) Fill(template []byte, rec *record.Transaction, mappings []mapping.FieldMapping) (*FillResult, error) {
	if rec == nil {
		return nil, ErrNilRecord
	}

	res := &FillResult{RunID: uuid.NewString()}
	log := e.logger.With(zap.String("run", res.RunID))

	if mappings == nil {
		mapped, err := e.withLogger(log).Map(template)
		if err != nil {
			return nil, err
		}

		mappings = mapped.Mappings
		res.Diagnostics.Merge(mapped.Diagnostics)

		log.Debug("auto-mapped template",
			zap.Int("mappings", len(mapped.Mappings)),
			zap.Int("unmatched", len(mapped.Unmatched)),
			zap.Int("excluded", len(mapped.Excluded)))
	} else {
		checked := mapping.ValidateMappings(mappings)
		if checked.HasErrors() {
			return nil, &MappingError{Diagnostics: *checked}
		}

		for _, w := range checked.Warnings {
			if w.Code == diagnostic.CodeDuplicateMapping {
				res.Diagnostics.Warnings = append(res.Diagnostics.Warnings, w)
			}
		}
	}

	res.Mappings = mappings

	prepared := prepare.Prepare(mappings, rec, prepare.WithLogger(log))
	res.Fields = prepared.Fields
	res.ValidationErrors = prepared.ValidationErrors
	res.Skipped = prepared.Skipped()
	res.Diagnostics.Merge(prepared.Diagnostics)

	filled, err := acroform.Fill(template, prepared.Fields,
		acroform.WithLogger(log), acroform.WithPriority(e.priority))
	if err != nil {
		return nil, err
	}

	res.Document = filled.Document
	res.Filled = filled.Filled
	res.WriteErrors = filled.WriteErrors

	for _, we := range filled.WriteErrors {
		res.Diagnostics.AddWarning(diagnostic.CodeWriteFailed, we.Err.Error(), we.Field, "")
	}

	log.Info("document filled",
		zap.Int("filled", res.Filled),
		zap.Int("skipped", res.Skipped),
		zap.Int("validation_errors", len(res.ValidationErrors)),
		zap.Int("write_errors", len(res.WriteErrors)))

	return res, nil
}

func (e *Engine) withLogger(l *zap.Logger) *Engine {
	c := *e
	c.logger = l

	return &c
}

func extractDiagnostics(fields []acroform.Field, stats acroform.Stats) diagnostic.Diagnostics {
	var d diagnostic.Diagnostics

	if stats.Skipped > 0 {
		d.AddWarning(diagnostic.CodeSkippedNodes,
			fmt.Sprintf("%d malformed form nodes skipped", stats.Skipped), "", "")
	}

	for _, f := range fields {
		if f.Kind == acroform.KindUnknown {
			d.AddWarning(diagnostic.CodeUnclassified, "field kind not recognized", f.Name, "")
		}
	}

	return d
}
