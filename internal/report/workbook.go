package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"dealdocs/internal/diagnostic"
	"dealdocs/internal/engine"
	"dealdocs/internal/match"
)

// Sheet names.
const (
	SheetMappings    = "Mappings"
	SheetFields      = "Fields"
	SheetDiagnostics = "Diagnostics"
)

// Mapping review statuses.
const (
	StatusMapped    = "mapped"
	StatusUnmatched = "unmatched"
	StatusExcluded  = "excluded"
)

// MappingWorkbook lists every template field with its auto-mapping outcome,
// in template order.
func MappingWorkbook(res *match.Result) ([]byte, error) {
	w, err := newWorkbook(SheetMappings,
		[]string{"Field", "Kind", "Status", "Data Path", "Transform", "Required", "Score", "Suggestion"},
		[]float64{36, 12, 11, 28, 11, 10, 8, 28})
	if err != nil {
		return nil, err
	}
	defer w.f.Close()

	mapped := make(map[string]int, len(res.Mappings))
	for i, m := range res.Mappings {
		if _, ok := mapped[m.PDFFieldName]; !ok {
			mapped[m.PDFFieldName] = i
		}
	}

	unmatched := make(map[string]match.Unmatched, len(res.Unmatched))
	for _, u := range res.Unmatched {
		unmatched[u.Field] = u
	}

	excluded := make(map[string]bool, len(res.Excluded))
	for _, name := range res.Excluded {
		excluded[name] = true
	}

	for _, f := range res.Fields {
		row := []any{f.Name, f.Kind.String()}

		switch i, ok := mapped[f.Name]; {
		case ok:
			m := res.Mappings[i]
			row = append(row, StatusMapped, m.DataPath, string(m.Transform), m.Required, m.Score, "")
		case excluded[f.Name]:
			row = append(row, StatusExcluded, "", "", false, 0, "")
		default:
			row = append(row, StatusUnmatched, "", "", false, 0, unmatched[f.Name].Suggestion)
		}

		if err := w.append(SheetMappings, row); err != nil {
			return nil, err
		}
	}

	if err := w.diagnostics(res.Diagnostics); err != nil {
		return nil, err
	}

	return w.bytes()
}

// FillWorkbook lists every prepared field of a fill run and its diagnostics.
func FillWorkbook(res *engine.FillResult) ([]byte, error) {
	w, err := newWorkbook(SheetFields,
		[]string{"Field", "Data Path", "Value", "Skipped", "Validation Error"},
		[]float64{36, 28, 36, 10, 32})
	if err != nil {
		return nil, err
	}
	defer w.f.Close()

	for _, pf := range res.Fields {
		if err := w.append(SheetFields, []any{pf.PDFFieldName, pf.DataPath, pf.Value, pf.Skipped, pf.ValidationError}); err != nil {
			return nil, err
		}
	}

	if err := w.diagnostics(res.Diagnostics); err != nil {
		return nil, err
	}

	return w.bytes()
}

type workbook struct {
	f    *excelize.File
	rows map[string]int
	bold int
}

func newWorkbook(sheet string, headers []string, widths []float64) (*workbook, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	w := &workbook{f: f, rows: make(map[string]int), bold: bold}
	if err := w.header(sheet, headers, widths); err != nil {
		return nil, err
	}

	return w, nil
}

func (w *workbook) header(sheet string, headers []string, widths []float64) error {
	if err := w.append(sheet, toAny(headers)); err != nil {
		return err
	}

	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := w.f.SetCellStyle(sheet, "A1", last, w.bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i, width := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		_ = w.f.SetColWidth(sheet, col, col, width)
	}

	return nil
}

func (w *workbook) append(sheet string, values []any) error {
	w.rows[sheet]++

	cell, err := excelize.CoordinatesToCellName(1, w.rows[sheet])
	if err != nil {
		return err
	}

	if err := w.f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write row %d: %w", w.rows[sheet], err)
	}

	return nil
}

func (w *workbook) diagnostics(d diagnostic.Diagnostics) error {
	if _, err := w.f.NewSheet(SheetDiagnostics); err != nil {
		return fmt.Errorf("add sheet: %w", err)
	}

	if err := w.header(SheetDiagnostics,
		[]string{"Severity", "Code", "Field", "Data Path", "Message"},
		[]float64{10, 20, 36, 28, 60}); err != nil {
		return err
	}

	for _, list := range [][]diagnostic.Diagnostic{d.Errors, d.Warnings, d.Infos} {
		for _, diag := range list {
			if err := w.append(SheetDiagnostics,
				[]any{diag.Severity.String(), diag.Code, diag.Field, diag.DataPath, diag.Message}); err != nil {
				return err
			}
		}
	}

	return nil
}

func (w *workbook) bytes() ([]byte, error) {
	buf, err := w.f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	return buf.Bytes(), nil
}

func toAny(s []string) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = v
	}

	return out
}
