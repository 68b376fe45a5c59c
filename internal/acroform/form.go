package acroform

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// maxDepth bounds the field tree walk.
const maxDepth = 32

var disableConfigDir sync.Once

func newConfiguration() *model.Configuration {
	disableConfigDir.Do(api.DisableConfigDir)

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	return conf
}

// node is a terminal field: a field dictionary whose kids, if any, are
// widget annotations only.
type node struct {
	name    string
	kind    Kind
	flags   int
	dict    types.Dict
	widgets []types.Dict
}

// form is a parsed template with its terminal fields in document order.
type form struct {
	ctx     *model.Context
	acro    types.Dict
	nodes   []*node
	skipped int
}

// openForm parses template and walks its field tree.
func openForm(template []byte) (f *form, err error) {
	if len(template) == 0 {
		return nil, &TemplateParseError{Err: errors.New("empty document")}
	}

	defer func() {
		if r := recover(); r != nil {
			f, err = nil, &TemplateParseError{Err: fmt.Errorf("reader panic: %v", r)}
		}
	}()

	ctx, err := api.ReadContext(bytes.NewReader(template), newConfiguration())
	if err != nil {
		return nil, &TemplateParseError{Err: err}
	}

	root, err := ctx.Catalog()
	if err != nil {
		return nil, &TemplateParseError{Err: err}
	}

	obj, ok := root.Find("AcroForm")
	if !ok {
		return nil, &TemplateFormatError{Reason: "catalog has no /AcroForm"}
	}

	acro, err := ctx.DereferenceDict(obj)
	if err != nil || acro == nil {
		return nil, &TemplateFormatError{Reason: "/AcroForm is not a dictionary"}
	}

	fieldsObj, ok := acro.Find("Fields")
	if !ok {
		return nil, &TemplateFormatError{Reason: "/AcroForm has no /Fields"}
	}

	fields, err := ctx.DereferenceArray(fieldsObj)
	if err != nil {
		return nil, &TemplateFormatError{Reason: "/Fields is not an array"}
	}

	f = &form{ctx: ctx, acro: acro}
	w := walker{form: f, seen: make(map[int]bool)}

	for _, o := range fields {
		w.walk(o, "", inherited{}, 0)
	}

	return f, nil
}

// fields returns one Field per distinct name, in first-appearance order.
func (f *form) fields() []Field {
	out := make([]Field, 0, len(f.nodes))
	seen := make(map[string]bool, len(f.nodes))

	for _, n := range f.nodes {
		if seen[n.name] {
			continue
		}

		seen[n.name] = true
		out = append(out, Field{Name: n.name, Kind: n.kind})
	}

	return out
}

// index groups terminal nodes by name. Linked fields share one name.
func (f *form) index() map[string][]*node {
	idx := make(map[string][]*node, len(f.nodes))
	for _, n := range f.nodes {
		idx[n.name] = append(idx[n.name], n)
	}

	return idx
}

// inherited carries the inheritable entries down the tree.
type inherited struct {
	ft string
	ff int
}

type walker struct {
	form *form
	seen map[int]bool
}

func (w *walker) skip() {
	w.form.skipped++
}

func (w *walker) walk(obj types.Object, parent string, inh inherited, depth int) {
	if depth > maxDepth {
		w.skip()

		return
	}

	if ref, ok := obj.(types.IndirectRef); ok {
		nr := ref.ObjectNumber.Value()
		if w.seen[nr] {
			w.skip()

			return
		}

		w.seen[nr] = true
	}

	ctx := w.form.ctx

	d, err := ctx.DereferenceDict(obj)
	if err != nil || d == nil {
		w.skip()

		return
	}

	name := parent

	if o, ok := d.Find("T"); ok {
		partial, err := ctx.DereferenceStringOrHexLiteral(o, model.V10, nil)
		if err != nil {
			w.skip()

			return
		}

		name = joinName(parent, partial)
	}

	if ft := nameEntry(ctx, d, "FT"); ft != "" {
		inh.ft = ft
	}

	if o, ok := d.Find("Ff"); ok {
		if i, err := ctx.DereferenceInteger(o); err == nil && i != nil {
			inh.ff = i.Value()
		}
	}

	var (
		fieldKids []types.Object
		widgets   []types.Dict
	)

	if o, ok := d.Find("Kids"); ok {
		kids, err := ctx.DereferenceArray(o)
		if err != nil {
			w.skip()

			return
		}

		for _, k := range kids {
			kd, err := ctx.DereferenceDict(k)
			if err != nil || kd == nil {
				w.skip()

				continue
			}

			if isFieldNode(kd) {
				fieldKids = append(fieldKids, k)
			} else {
				widgets = append(widgets, kd)
			}
		}
	} else {
		widgets = []types.Dict{d}
	}

	if len(fieldKids) > 0 {
		for _, k := range fieldKids {
			w.walk(k, name, inh, depth+1)
		}

		return
	}

	if strings.TrimSpace(name) == "" {
		w.skip()

		return
	}

	w.form.nodes = append(w.form.nodes, &node{
		name:    name,
		kind:    kindOf(inh.ft, inh.ff),
		flags:   inh.ff,
		dict:    d,
		widgets: widgets,
	})
}

// isFieldNode tells field dictionaries from pure widget annotations.
func isFieldNode(d types.Dict) bool {
	if _, ok := d.Find("T"); ok {
		return true
	}

	_, ok := d.Find("Kids")

	return ok
}

func joinName(parent, partial string) string {
	switch {
	case parent == "":
		return partial
	case partial == "":
		return parent
	default:
		return parent + "." + partial
	}
}

func nameEntry(ctx *model.Context, d types.Dict, key string) string {
	o, ok := d.Find(key)
	if !ok {
		return ""
	}

	n, err := ctx.DereferenceName(o, model.V10, nil)
	if err != nil {
		return ""
	}

	return string(n)
}

// onStates returns the widget's non-Off appearance state names, sorted.
func onStates(ctx *model.Context, widget types.Dict) []string {
	o, ok := widget.Find("AP")
	if !ok {
		return nil
	}

	ap, err := ctx.DereferenceDict(o)
	if err != nil || ap == nil {
		return nil
	}

	o, ok = ap.Find("N")
	if !ok {
		return nil
	}

	normal, err := ctx.DereferenceDict(o)
	if err != nil || normal == nil {
		return nil
	}

	var states []string

	for k := range normal {
		if k != "Off" {
			states = append(states, k)
		}
	}

	sort.Strings(states)

	return states
}

// onState returns the widget's first on-state, or "".
func onState(ctx *model.Context, widget types.Dict) string {
	if s := onStates(ctx, widget); len(s) > 0 {
		return s[0]
	}

	return ""
}

// choiceOption is one /Opt entry.
type choiceOption struct {
	export  string
	display string
}

func choiceOptions(ctx *model.Context, d types.Dict) []choiceOption {
	o, ok := d.Find("Opt")
	if !ok {
		return nil
	}

	arr, err := ctx.DereferenceArray(o)
	if err != nil {
		return nil
	}

	out := make([]choiceOption, 0, len(arr))

	for _, item := range arr {
		if s, err := ctx.DereferenceStringOrHexLiteral(item, model.V10, nil); err == nil {
			out = append(out, choiceOption{export: s, display: s})

			continue
		}

		pair, err := ctx.DereferenceArray(item)
		if err != nil || len(pair) < 2 {
			continue
		}

		export, err1 := ctx.DereferenceStringOrHexLiteral(pair[0], model.V10, nil)
		display, err2 := ctx.DereferenceStringOrHexLiteral(pair[1], model.V10, nil)

		if err1 == nil && err2 == nil {
			out = append(out, choiceOption{export: export, display: display})
		}
	}

	return out
}
