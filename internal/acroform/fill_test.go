package acroform

import (
	"errors"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"dealdocs/internal/prepare"
	"dealdocs/internal/testpdf"
)

func pf(name, value string) prepare.PreparedField {
	return prepare.PreparedField{PDFFieldName: name, Value: value}
}

func TestFill_TextRoundTrip(t *testing.T) {
	doc := testpdf.New().Text("VIN", "Buyer", "Notes", "PurchasersTransferees.0").Bytes()

	values := map[string]string{
		"VIN":                     "1HGCM82633A004352",
		"Buyer":                   "José Núñez",
		"Notes":                   "Trade-in: 2019 Accord (grey)",
		"PurchasersTransferees.0": "Jane Doe",
	}

	var fields []prepare.PreparedField
	for _, name := range []string{"VIN", "Buyer", "Notes", "PurchasersTransferees.0"} {
		fields = append(fields, pf(name, values[name]))
	}

	res, err := Fill(doc, fields)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Filled)
	assert.Empty(t, res.WriteErrors)

	got, err := ReadValues(res.Document)
	require.NoError(t, err)
	assert.Equal(t, values, got)
}

func TestFill_FormStaysEditable(t *testing.T) {
	doc := testpdf.New().Text("VIN", "Model").Bytes()

	res, err := Fill(doc, []prepare.PreparedField{pf("VIN", "ABC")})
	require.NoError(t, err)

	fields, err := Extract(res.Document)
	require.NoError(t, err)
	assert.Len(t, fields, 2)

	f, err := openForm(res.Document)
	require.NoError(t, err)

	need, ok := f.acro.Find("NeedAppearances")
	require.True(t, ok)
	assert.Equal(t, types.Boolean(true), need)

	for _, n := range f.nodes {
		if n.name == "VIN" {
			_, hasAP := n.dict.Find("AP")
			assert.False(t, hasAP, "stale appearance kept")
		}

		if n.name == "Model" {
			_, hasAP := n.dict.Find("AP")
			assert.True(t, hasAP, "untouched field lost its appearance")
		}
	}
}

func TestFill_LinkedFieldsAllWritten(t *testing.T) {
	doc := testpdf.New().Text("Model", "VIN", "Model").Bytes()

	res, err := Fill(doc, []prepare.PreparedField{pf("Model", "Civic")})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Filled)

	f, err := openForm(res.Document)
	require.NoError(t, err)

	written := 0

	for _, n := range f.nodes {
		if n.name != "Model" {
			continue
		}

		o, ok := n.dict.Find("V")
		require.True(t, ok)

		s, err := f.ctx.DereferenceStringOrHexLiteral(o, model.V10, nil)
		require.NoError(t, err)
		assert.Equal(t, "Civic", s)

		written++
	}

	assert.Equal(t, 2, written)
}

func TestFill_PriorityDedup(t *testing.T) {
	doc := testpdf.New().Text("Model").Bytes()

	vinLike := prepare.PreparedField{PDFFieldName: "Model", Value: "1HGCM82633A004352", DataPath: "vehicle.vin"}
	genuine := prepare.PreparedField{PDFFieldName: "Model", Value: "Civic", DataPath: "vehicle.model"}

	for _, order := range [][]prepare.PreparedField{{vinLike, genuine}, {genuine, vinLike}} {
		res, err := Fill(doc, order)
		require.NoError(t, err)
		assert.Equal(t, 1, res.Filled)

		got, err := ReadValues(res.Document)
		require.NoError(t, err)
		assert.Equal(t, "1HGCM82633A004352", got["Model"])
	}
}

func TestFill_WithPriority(t *testing.T) {
	doc := testpdf.New().Text("Model").Bytes()

	fields := []prepare.PreparedField{
		{PDFFieldName: "Model", Value: "from vin", DataPath: "vehicle.vin"},
		{PDFFieldName: "Model", Value: "from model", DataPath: "vehicle.model"},
	}

	last := func(p prepare.PreparedField) int {
		if p.DataPath == "vehicle.model" {
			return 1000
		}

		return 1
	}

	res, err := Fill(doc, fields, WithPriority(last))
	require.NoError(t, err)

	got, err := ReadValues(res.Document)
	require.NoError(t, err)
	assert.Equal(t, "from model", got["Model"])
}

func TestFill_SkippedNeverWritten(t *testing.T) {
	doc := testpdf.New().Add(testpdf.FieldSpec{Name: "Model", FT: "Tx", Value: "Keep"}).Bytes()

	res, err := Fill(doc, []prepare.PreparedField{
		{PDFFieldName: "Model", Skipped: true, DataPath: "vehicle.vin", ValidationError: "required value missing"},
	})
	require.NoError(t, err)
	assert.Zero(t, res.Filled)
	assert.Empty(t, res.WriteErrors)

	got, err := ReadValues(res.Document)
	require.NoError(t, err)
	assert.Equal(t, "Keep", got["Model"])
}

func TestFill_CheckBox(t *testing.T) {
	doc := testpdf.New().CheckBox("A").CheckBox("B").CheckBox("C").CheckBox("D").Bytes()

	res, err := Fill(doc, []prepare.PreparedField{
		pf("A", "true"), pf("B", "YES"), pf("C", "1"), pf("D", "no"),
	})
	require.NoError(t, err)
	assert.Equal(t, 4, res.Filled)

	got, err := ReadValues(res.Document)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"A": "Yes", "B": "Yes", "C": "Yes", "D": "Off"}, got)
}

func TestFill_RadioAndDropdown(t *testing.T) {
	doc := testpdf.New().
		Radio("Condition", "New", "Used").
		Dropdown("State", "CA", "NV").
		Add(testpdf.FieldSpec{Name: "Color", FT: "Ch", Flags: testpdf.FlagCombo | testpdf.FlagEdit, Options: []string{"Red"}}).
		Bytes()

	res, err := Fill(doc, []prepare.PreparedField{
		pf("Condition", "used"), pf("State", "nv"), pf("Color", "Teal"),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Filled)

	got, err := ReadValues(res.Document)
	require.NoError(t, err)
	assert.Equal(t, "Used", got["Condition"])
	assert.Equal(t, "NV", got["State"])
	assert.Equal(t, "Teal", got["Color"])

	f, err := openForm(res.Document)
	require.NoError(t, err)

	for _, n := range f.nodes {
		if n.name != "Condition" {
			continue
		}

		var states []string

		for _, w := range n.widgets {
			as, ok := w.Find("AS")
			require.True(t, ok)
			states = append(states, string(as.(types.Name)))
		}

		assert.Equal(t, []string{"Off", "Used"}, states)
	}
}

func TestFill_WriteErrorsContinue(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)

	doc := testpdf.New().
		Text("VIN").
		Signature("Buyer Signature").
		PushButton("Reset").
		Dropdown("State", "CA", "NV").
		Radio("Condition", "New", "Used").
		Bytes()

	res, err := Fill(doc, []prepare.PreparedField{
		pf("Buyer Signature", "Jane"),
		pf("Reset", "x"),
		pf("State", "TX"),
		pf("Condition", "Salvage"),
		pf("Missing", "x"),
		pf("VIN", "ABC"),
	}, WithLogger(zap.New(core)))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Filled)
	require.Len(t, res.WriteErrors, 5)

	wantCause := map[string]error{
		"Buyer Signature": ErrUnsupportedKind,
		"Reset":           ErrUnsupportedKind,
		"State":           ErrOptionNotFound,
		"Condition":       ErrOptionNotFound,
		"Missing":         ErrFieldNotFound,
	}

	for _, we := range res.WriteErrors {
		assert.True(t, errors.Is(we, wantCause[we.Field]), "%s: %v", we.Field, we)

		var target *FieldWriteError
		assert.True(t, errors.As(error(we), &target))
	}

	assert.Equal(t, KindSignature, res.WriteErrors[0].Kind)
	assert.Equal(t, 5, logs.FilterMessage("field not written").Len())

	got, err := ReadValues(res.Document)
	require.NoError(t, err)
	assert.Equal(t, "ABC", got["VIN"])
}

func TestFill_InvalidTemplate(t *testing.T) {
	_, err := Fill([]byte("%PDF-nope"), []prepare.PreparedField{pf("VIN", "x")})

	var parseErr *TemplateParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestTextString(t *testing.T) {
	tests := []struct {
		in   string
		want []byte
	}{
		{"Civic", []byte("Civic")},
		{"", []byte{}},
		{"Né", []byte{0xFE, 0xFF, 0x00, 'N', 0x00, 0xE9}},
		{"€5", []byte{0xFE, 0xFF, 0x20, 0xAC, 0x00, '5'}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := textString(tt.in).Bytes()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
