package acroform

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"go.uber.org/zap"

	"dealdocs/internal/prepare"
)

// FillResult is the filled document and what happened to each field.
type FillResult struct {
	Document []byte
	// Filled counts field names written successfully.
	Filled int
	// WriteErrors lists fields that could not be written.
	WriteErrors []*FieldWriteError
}

// Fill writes fields into a copy of template. Candidates sharing a name are
// reduced to one by priority; skipped candidates are ignored. A field that
// cannot be written is recorded in WriteErrors and the rest continue.
// Only template parse, format, and serialization failures return an error.
// The form stays editable: NeedAppearances is set and nothing is flattened.
func Fill(template []byte, fields []prepare.PreparedField, opts ...Option) (*FillResult, error) {
	o := newOptions(opts)

	f, err := openForm(template)
	if err != nil {
		return nil, err
	}

	byName := f.index()
	res := &FillResult{}

	for _, pf := range Dedupe(fields, o.priority) {
		nodes := byName[pf.PDFFieldName]
		if len(nodes) == 0 {
			res.fail(o.logger, &FieldWriteError{Field: pf.PDFFieldName, Value: pf.Value, Err: ErrFieldNotFound})

			continue
		}

		if werr := f.writeAll(nodes, pf); werr != nil {
			res.fail(o.logger, werr)

			continue
		}

		res.Filled++

		o.logger.Debug("field written",
			zap.String("field", pf.PDFFieldName),
			zap.String("kind", nodes[0].kind.String()),
			zap.Int("widgets", len(nodes)))
	}

	f.acro["NeedAppearances"] = types.Boolean(true)

	var buf bytes.Buffer
	if err := api.WriteContext(f.ctx, &buf); err != nil {
		return nil, fmt.Errorf("write filled document: %w", err)
	}

	res.Document = buf.Bytes()

	return res, nil
}

func (r *FillResult) fail(logger *zap.Logger, err *FieldWriteError) {
	logger.Warn("field not written",
		zap.String("field", err.Field),
		zap.String("kind", err.Kind.String()),
		zap.Error(err.Err))

	r.WriteErrors = append(r.WriteErrors, err)
}

// writeAll writes every terminal node carrying the name.
func (f *form) writeAll(nodes []*node, pf prepare.PreparedField) *FieldWriteError {
	for _, n := range nodes {
		if err := f.write(n, pf.Value); err != nil {
			return &FieldWriteError{Field: pf.PDFFieldName, Kind: n.kind, Value: pf.Value, Err: err}
		}
	}

	return nil
}

func (f *form) write(n *node, value string) error {
	switch n.kind {
	case KindTextField:
		f.setText(n, value)
	case KindCheckBox:
		f.setCheckBox(n, value)
	case KindDropdown:
		return f.setChoice(n, value)
	case KindRadioGroup:
		return f.setRadio(n, value)
	default:
		return ErrUnsupportedKind
	}

	return nil
}

func (f *form) setText(n *node, value string) {
	n.dict["V"] = textString(value)
	dropAppearances(n)
}

// setCheckBox checks the box for "true", "yes", or "1" and clears it
// otherwise.
func (f *form) setCheckBox(n *node, value string) {
	if !truthy(value) {
		n.dict["V"] = types.Name("Off")
		for _, w := range n.widgets {
			w["AS"] = types.Name("Off")
		}

		return
	}

	state := "Yes"

	for _, w := range n.widgets {
		if s := onState(f.ctx, w); s != "" {
			state = s

			break
		}
	}

	n.dict["V"] = types.Name(state)

	for _, w := range n.widgets {
		as := onState(f.ctx, w)
		if as == "" {
			as = state
		}

		w["AS"] = types.Name(as)
	}
}

// setRadio selects the widget whose state, or /Opt export value, matches.
// An empty value clears the group.
func (f *form) setRadio(n *node, value string) error {
	chosen := "Off"

	if strings.TrimSpace(value) != "" {
		chosen = ""
		opts := choiceOptions(f.ctx, n.dict)

		for i, w := range n.widgets {
			s := onState(f.ctx, w)
			if s == "" {
				continue
			}

			if strings.EqualFold(s, value) ||
				(i < len(opts) && (strings.EqualFold(opts[i].export, value) || strings.EqualFold(opts[i].display, value))) {
				chosen = s

				break
			}
		}

		if chosen == "" {
			return ErrOptionNotFound
		}
	}

	n.dict["V"] = types.Name(chosen)

	for _, w := range n.widgets {
		as := "Off"
		if chosen != "Off" && onState(f.ctx, w) == chosen {
			as = chosen
		}

		w["AS"] = types.Name(as)
	}

	return nil
}

// setChoice selects an option by export or display value. Editable combo
// boxes and option-less fields accept any value.
func (f *form) setChoice(n *node, value string) error {
	chosen := value

	if opts := choiceOptions(f.ctx, n.dict); len(opts) > 0 && value != "" {
		export, ok := matchOption(opts, value)

		switch {
		case ok:
			chosen = export
		case n.flags&flagCombo != 0 && n.flags&flagEdit != 0:
		default:
			return ErrOptionNotFound
		}
	}

	n.dict["V"] = textString(chosen)
	delete(n.dict, "I")
	dropAppearances(n)

	return nil
}

func matchOption(opts []choiceOption, value string) (string, bool) {
	for _, o := range opts {
		if o.export == value || o.display == value {
			return o.export, true
		}
	}

	for _, o := range opts {
		if strings.EqualFold(o.export, value) || strings.EqualFold(o.display, value) {
			return o.export, true
		}
	}

	return "", false
}

// dropAppearances removes stale appearance streams so viewers rebuild them
// from the new value.
func dropAppearances(n *node) {
	for _, w := range n.widgets {
		delete(w, "AP")
	}
}

func truthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "yes", "1":
		return true
	default:
		return false
	}
}

// textString encodes s as a PDF text string: raw bytes for ASCII,
// UTF-16BE with a byte order mark otherwise.
func textString(s string) types.HexLiteral {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return types.NewHexLiteral([]byte(types.EncodeUTF16String(s)))
		}
	}

	return types.NewHexLiteral([]byte(s))
}
