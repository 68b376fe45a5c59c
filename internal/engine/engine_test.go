package engine

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"dealdocs/internal/acroform"
	"dealdocs/internal/diagnostic"
	"dealdocs/internal/mapping"
	"dealdocs/internal/prepare"
	"dealdocs/internal/record"
	"dealdocs/internal/testpdf"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func scenarioTemplate() []byte {
	return testpdf.New().
		Text("VIN", "Year", "Make", "Model", "PurchasersTransferees.0", "phone1_1").
		Signature("Buyer Signature").
		Bytes()
}

func scenarioRecord() *record.Transaction {
	return &record.Transaction{
		PrimaryParty: record.Branch{"fullName": "Jane Doe", "phone": "555-1212"},
		Vehicle: record.Branch{
			"vin":   "1HGCM82633A004352",
			"year":  2024,
			"make":  "Honda",
			"model": "Civic",
		},
		Deal: record.Branch{},
	}
}

func TestFill_EndToEnd(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	res, err := New(WithLogger(zap.New(core))).Fill(scenarioTemplate(), scenarioRecord(), nil)
	require.NoError(t, err)

	assert.Empty(t, res.ValidationErrors)
	assert.Empty(t, res.WriteErrors)
	assert.Equal(t, 6, res.Filled)
	assert.Zero(t, res.Skipped)
	assert.Len(t, res.Mappings, 6)
	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, 1, res.Diagnostics.Count(diagnostic.CodeExcluded))

	got, err := acroform.ReadValues(res.Document)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"VIN":                     "1HGCM82633A004352",
		"Year":                    "2024",
		"Make":                    "Honda",
		"Model":                   "Civic",
		"PurchasersTransferees.0": "Jane Doe",
		"phone1_1":                "555-1212",
	}, got)

	entries := logs.FilterMessage("document filled").All()
	require.Len(t, entries, 1)
	assert.Equal(t, res.RunID, entries[0].ContextMap()["run"])
}

func TestFill_RequiredMissingStillProducesDocument(t *testing.T) {
	rec := scenarioRecord()
	delete(rec.Vehicle, "model")
	rec.Vehicle["vin"] = "   "

	res, err := New().Fill(scenarioTemplate(), rec, nil)
	require.NoError(t, err)
	require.NotEmpty(t, res.Document)

	assert.Equal(t, 4, res.Filled)
	assert.Equal(t, 2, res.Skipped)
	require.Len(t, res.ValidationErrors, 2)
	assert.Equal(t, "VIN", res.ValidationErrors[0].Field)
	assert.Equal(t, "Model", res.ValidationErrors[1].Field)
	assert.Equal(t, 2, res.Diagnostics.Count(diagnostic.CodeRequiredMissing))
}

func TestFill_ManualMappings(t *testing.T) {
	tpl := testpdf.New().Text("Model", "Dealer", "Sold").Bytes()

	rec := scenarioRecord()
	rec.Organization = record.Branch{"name": "Main Street Motors"}
	rec.Deal["saleDate"] = 0

	mappings := []mapping.FieldMapping{
		{PDFFieldName: "Model", DataPath: "vehicle.model"},
		{PDFFieldName: "Model", DataPath: "vehicle.vin"},
		{PDFFieldName: "Dealer", DataPath: "organization.name", Transform: mapping.TransformUppercase},
		{PDFFieldName: "Sold", DataPath: "deal.saleDate", Transform: mapping.TransformDate},
		{PDFFieldName: "Sold", DataPath: "deal.saleDate", Transform: mapping.TransformDate},
	}

	res, err := New().Fill(tpl, rec, mappings)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Filled)
	assert.Len(t, res.Fields, 5)
	assert.Equal(t, 1, res.Diagnostics.Count(diagnostic.CodeDuplicateMapping))

	got, err := acroform.ReadValues(res.Document)
	require.NoError(t, err)
	assert.Equal(t, "1HGCM82633A004352", got["Model"])
	assert.Equal(t, "MAIN STREET MOTORS", got["Dealer"])
	assert.Equal(t, "01/01/1970", got["Sold"])
}

func TestFill_WithPriority(t *testing.T) {
	tpl := testpdf.New().Text("Model").Bytes()

	mappings := []mapping.FieldMapping{
		{PDFFieldName: "Model", DataPath: "vehicle.vin"},
		{PDFFieldName: "Model", DataPath: "vehicle.model", Priority: 1000},
	}

	res, err := New().Fill(tpl, scenarioRecord(), mappings)
	require.NoError(t, err)

	got, err := acroform.ReadValues(res.Document)
	require.NoError(t, err)
	assert.Equal(t, "Civic", got["Model"])

	preferModel := func(pf prepare.PreparedField) int {
		if pf.DataPath == "vehicle.model" {
			return 2
		}

		return 1
	}

	plain := []mapping.FieldMapping{
		{PDFFieldName: "Model", DataPath: "vehicle.vin"},
		{PDFFieldName: "Model", DataPath: "vehicle.model"},
	}

	res, err = New(WithPriority(preferModel)).Fill(tpl, scenarioRecord(), plain)
	require.NoError(t, err)

	got, err = acroform.ReadValues(res.Document)
	require.NoError(t, err)
	assert.Equal(t, "Civic", got["Model"])

	res, err = New().Fill(tpl, scenarioRecord(), plain)
	require.NoError(t, err)

	got, err = acroform.ReadValues(res.Document)
	require.NoError(t, err)
	assert.Equal(t, "1HGCM82633A004352", got["Model"])
}

func TestFill_Errors(t *testing.T) {
	e := New()

	_, err := e.Fill(scenarioTemplate(), nil, nil)
	require.ErrorIs(t, err, ErrNilRecord)

	_, err = e.Fill([]byte("not a pdf"), scenarioRecord(), nil)

	var parseErr *acroform.TemplateParseError
	require.ErrorAs(t, err, &parseErr)

	_, err = e.Fill(testpdf.New().Text("VIN").WithoutAcroForm().Bytes(), scenarioRecord(), nil)

	var formatErr *acroform.TemplateFormatError
	require.ErrorAs(t, err, &formatErr)

	_, err = e.Fill(scenarioTemplate(), scenarioRecord(), []mapping.FieldMapping{
		{PDFFieldName: "VIN", DataPath: "car.vin"},
	})

	var mappingErr *MappingError
	require.True(t, errors.As(err, &mappingErr))
	assert.Equal(t, 1, mappingErr.Diagnostics.Count(diagnostic.CodeInvalidPath))
}

func TestFill_WriteErrorsReported(t *testing.T) {
	tpl := testpdf.New().Text("VIN").Bytes()

	res, err := New().Fill(tpl, scenarioRecord(), []mapping.FieldMapping{
		{PDFFieldName: "VIN", DataPath: "vehicle.vin"},
		{PDFFieldName: "Ghost", DataPath: "vehicle.make"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Filled)
	require.Len(t, res.WriteErrors, 1)
	assert.ErrorIs(t, res.WriteErrors[0], acroform.ErrFieldNotFound)
	assert.Equal(t, 1, res.Diagnostics.Count(diagnostic.CodeWriteFailed))
}

func TestMap(t *testing.T) {
	tpl := testpdf.New().Text("VIN", "Odometr").PushButton("Reset").WithBrokenNodes().Bytes()

	res, err := New().Map(tpl)
	require.NoError(t, err)
	require.Len(t, res.Mappings, 1)
	assert.Equal(t, "vehicle.vin", res.Mappings[0].DataPath)
	assert.Equal(t, 1, res.Diagnostics.Count(diagnostic.CodeSkippedNodes))
	assert.Equal(t, 1, res.Diagnostics.Count(diagnostic.CodeUnclassified))

	assert.Equal(t, []acroform.Field{
		{Name: "VIN", Kind: acroform.KindTextField},
		{Name: "Odometr", Kind: acroform.KindTextField},
		{Name: "Reset", Kind: acroform.KindUnknown},
	}, res.Fields)
}

func TestEngine_Concurrent(t *testing.T) {
	e := New()
	tpl := scenarioTemplate()

	want, err := e.Fill(tpl, scenarioRecord(), nil)
	require.NoError(t, err)

	wantValues, err := acroform.ReadValues(want.Document)
	require.NoError(t, err)

	var wg sync.WaitGroup

	errs := make(chan error, 16)

	for range 16 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			res, err := e.Fill(tpl, scenarioRecord(), nil)
			if err != nil {
				errs <- err

				return
			}

			got, err := acroform.ReadValues(res.Document)
			if err != nil {
				errs <- err

				return
			}

			if len(got) != len(wantValues) || got["VIN"] != wantValues["VIN"] {
				errs <- errors.New("concurrent fill produced different values")
			}
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}
