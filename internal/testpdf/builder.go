package testpdf

import (
	"bytes"
	"fmt"
	"strings"
)

// Field flag bits (/Ff), zero-based.
const (
	FlagRadio      = 1 << 15
	FlagPushbutton = 1 << 16
	FlagCombo      = 1 << 17
	FlagEdit       = 1 << 18

	flagNoToggleToOff = 1 << 14
)

// FieldSpec describes one terminal field. A dotted Name becomes a chain of
// parent fields; siblings under one prefix share their parents.
type FieldSpec struct {
	Name  string
	FT    string
	Flags int
	// Value is written as the initial /V text string.
	Value string
	// Options become /Opt for choice fields.
	Options []string
	// States creates one widget kid per state (radio groups); a single
	// state gives a merged checkbox widget with that on-state.
	States []string
}

// Builder assembles a document. The zero value is not usable; call New.
type Builder struct {
	fields     []FieldSpec
	noAcroForm bool
	noFields   bool
	broken     bool
}

// New returns an empty builder.
func New() *Builder {
	return &Builder{}
}

// Add appends a field.
func (b *Builder) Add(f FieldSpec) *Builder {
	b.fields = append(b.fields, f)

	return b
}

// Text adds text fields.
func (b *Builder) Text(names ...string) *Builder {
	for _, n := range names {
		b.Add(FieldSpec{Name: n, FT: "Tx"})
	}

	return b
}

// CheckBox adds a checkbox whose on-state is "Yes".
func (b *Builder) CheckBox(name string) *Builder {
	return b.Add(FieldSpec{Name: name, FT: "Btn", States: []string{"Yes"}})
}

// Radio adds a radio group with one widget per state.
func (b *Builder) Radio(name string, states ...string) *Builder {
	return b.Add(FieldSpec{Name: name, FT: "Btn", Flags: FlagRadio | flagNoToggleToOff, States: states})
}

// Dropdown adds a combo box.
func (b *Builder) Dropdown(name string, options ...string) *Builder {
	return b.Add(FieldSpec{Name: name, FT: "Ch", Flags: FlagCombo, Options: options})
}

// Signature adds a signature field.
func (b *Builder) Signature(name string) *Builder {
	return b.Add(FieldSpec{Name: name, FT: "Sig"})
}

// PushButton adds a push button.
func (b *Builder) PushButton(name string) *Builder {
	return b.Add(FieldSpec{Name: name, FT: "Btn", Flags: FlagPushbutton})
}

// WithoutAcroForm leaves /AcroForm out of the catalog.
func (b *Builder) WithoutAcroForm() *Builder {
	b.noAcroForm = true

	return b
}

// WithoutFields leaves /Fields out of the /AcroForm dictionary.
func (b *Builder) WithoutFields() *Builder {
	b.noFields = true

	return b
}

// WithBrokenNodes appends two malformed fields: one whose /Kids is not an
// array and one whose name is whitespace.
func (b *Builder) WithBrokenNodes() *Builder {
	b.broken = true

	return b
}

// document collects numbered objects. Object n lives at objs[n-1].
type document struct {
	objs    []string
	annots  []int
	fields  []int
	parents map[string]int
	kids    map[int][]int
	partial map[int]string
	up      map[int]int
	order   []int
}

func (d *document) alloc() int {
	d.objs = append(d.objs, "")

	return len(d.objs)
}

func (d *document) set(n int, body string) {
	d.objs[n-1] = body
}

// Bytes renders the document with an exact cross-reference table.
func (b *Builder) Bytes() []byte {
	d := &document{
		parents: make(map[string]int),
		kids:    make(map[int][]int),
		partial: make(map[int]string),
		up:      make(map[int]int),
	}

	catalog := d.alloc()
	pages := d.alloc()
	page := d.alloc()
	acro := d.alloc()
	appearance := d.alloc()

	d.set(appearance, "<< /Type /XObject /Subtype /Form /BBox [0 0 10 10] /Length 3 >>\nstream\nq Q\nendstream")

	for i, f := range b.fields {
		d.addField(f, i, page, appearance)
	}

	for _, p := range d.order {
		body := fmt.Sprintf("<< /T %s /Kids %s", literal(d.partial[p]), refs(d.kids[p]))
		if up, ok := d.up[p]; ok {
			body += fmt.Sprintf(" /Parent %d 0 R", up)
		}

		d.set(p, body+" >>")
	}

	if b.broken {
		bad := d.alloc()
		d.set(bad, "<< /T (Broken) /FT /Tx /Kids 5 >>")

		blank := d.alloc()
		d.set(blank, fmt.Sprintf("<< /T (   ) /FT /Tx /Type /Annot /Subtype /Widget /Rect [0 0 10 10] /P %d 0 R >>", page))

		d.fields = append(d.fields, bad, blank)
		d.annots = append(d.annots, blank)
	}

	cat := fmt.Sprintf("<< /Type /Catalog /Pages %d 0 R", pages)
	if !b.noAcroForm {
		cat += fmt.Sprintf(" /AcroForm %d 0 R", acro)
	}

	d.set(catalog, cat+" >>")
	d.set(pages, fmt.Sprintf("<< /Type /Pages /Kids [%d 0 R] /Count 1 >>", page))
	d.set(page, fmt.Sprintf(
		"<< /Type /Page /Parent %d 0 R /MediaBox [0 0 612 792] /Resources << >> /Annots %s >>",
		pages, refs(d.annots)))

	if b.noFields {
		d.set(acro, "<< /DA (/Helv 0 Tf 0 g) >>")
	} else {
		d.set(acro, fmt.Sprintf("<< /Fields %s /DA (/Helv 0 Tf 0 g) >>", refs(d.fields)))
	}

	return d.render(catalog)
}

// addField allocates the parent chain and the terminal field.
func (d *document) addField(f FieldSpec, i, page, appearance int) {
	parts := strings.Split(f.Name, ".")
	parent := 0

	for j := range len(parts) - 1 {
		key := strings.Join(parts[:j+1], ".")

		n, ok := d.parents[key]
		if !ok {
			n = d.alloc()
			d.parents[key] = n
			d.partial[n] = parts[j]
			d.order = append(d.order, n)
			d.link(parent, n)
		}

		parent = n
	}

	term := d.alloc()
	d.link(parent, term)

	var sb strings.Builder

	fmt.Fprintf(&sb, "<< /T %s", literal(parts[len(parts)-1]))

	if f.FT != "" {
		fmt.Fprintf(&sb, " /FT /%s", f.FT)
	}

	if f.Flags != 0 {
		fmt.Fprintf(&sb, " /Ff %d", f.Flags)
	}

	if f.Value != "" {
		fmt.Fprintf(&sb, " /V %s", literal(f.Value))
	}

	if len(f.Options) > 0 {
		opts := make([]string, 0, len(f.Options))
		for _, o := range f.Options {
			opts = append(opts, literal(o))
		}

		fmt.Fprintf(&sb, " /Opt [%s]", strings.Join(opts, " "))
	}

	if parent != 0 {
		fmt.Fprintf(&sb, " /Parent %d 0 R", parent)
	}

	rect := rectFor(i)

	if len(f.States) > 1 {
		widgets := make([]int, 0, len(f.States))

		for k, s := range f.States {
			w := d.alloc()
			d.set(w, fmt.Sprintf(
				"<< /Type /Annot /Subtype /Widget /Rect %s /P %d 0 R /Parent %d 0 R /AS /Off /AP << /N << /%s %d 0 R /Off %d 0 R >> >> >>",
				rectFor(i*10+k), page, term, s, appearance, appearance))
			widgets = append(widgets, w)
			d.annots = append(d.annots, w)
		}

		fmt.Fprintf(&sb, " /Kids %s >>", refs(widgets))
		d.set(term, sb.String())

		return
	}

	fmt.Fprintf(&sb, " /Type /Annot /Subtype /Widget /Rect %s /P %d 0 R", rect, page)

	if len(f.States) == 1 {
		fmt.Fprintf(&sb, " /AS /Off /AP << /N << /%s %d 0 R /Off %d 0 R >> >>", f.States[0], appearance, appearance)
	} else {
		fmt.Fprintf(&sb, " /AP << /N %d 0 R >>", appearance)
	}

	sb.WriteString(" >>")
	d.set(term, sb.String())
	d.annots = append(d.annots, term)
}

func (d *document) link(parent, child int) {
	if parent == 0 {
		d.fields = append(d.fields, child)

		return
	}

	d.kids[parent] = append(d.kids[parent], child)
	d.up[child] = parent
}

func (d *document) render(root int) []byte {
	var buf bytes.Buffer

	buf.WriteString("%PDF-1.7\n%\xe2\xe3\xcf\xd3\n")

	offsets := make([]int, len(d.objs))

	for i, body := range d.objs {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}

	xref := buf.Len()

	fmt.Fprintf(&buf, "xref\n0 %d\n", len(d.objs)+1)
	buf.WriteString("0000000000 65535 f\r\n")

	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n\r\n", off)
	}

	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root %d 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(d.objs)+1, root, xref)

	return buf.Bytes()
}

func refs(nums []int) string {
	parts := make([]string, 0, len(nums))
	for _, n := range nums {
		parts = append(parts, fmt.Sprintf("%d 0 R", n))
	}

	return "[" + strings.Join(parts, " ") + "]"
}

func rectFor(i int) string {
	y := 750 - (i%35)*20

	return fmt.Sprintf("[72 %d 300 %d]", y, y+16)
}

// literal renders s as a PDF literal string.
func literal(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)

	return "(" + r.Replace(s) + ")"
}
