package prepare

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"dealdocs/internal/diagnostic"
	"dealdocs/internal/mapping"
	"dealdocs/internal/record"
)

func testRecord() *record.Transaction {
	return &record.Transaction{
		PrimaryParty: record.Branch{"fullName": "jane doe", "phone": "555-1212", "email": ""},
		Vehicle: record.Branch{
			"vin":   "1hgcm82633a004352",
			"year":  2024,
			"make":  "Honda",
			"price": "not-a-number",
		},
		Deal: record.Branch{"saleAmount": "1234.5", "saleDate": 0, "closedOn": "garbage"},
	}
}

func TestPrepare(t *testing.T) {
	mappings := []mapping.FieldMapping{
		{PDFFieldName: "VIN", DataPath: "vehicle.vin", Transform: mapping.TransformUppercase, Required: true},
		{PDFFieldName: "Year", DataPath: "vehicle.year", Required: true},
		{PDFFieldName: "Model", DataPath: "vehicle.model", Required: true},
		{PDFFieldName: "Buyer", DataPath: "primaryParty.fullName", Transform: mapping.TransformTitlecase},
		{PDFFieldName: "Email", DataPath: "primaryParty.email"},
		{PDFFieldName: "Co-Buyer", DataPath: "secondaryParty.fullName", DefaultValue: mapping.StringPtr("N/A")},
		{PDFFieldName: "Price", DataPath: "deal.saleAmount", Transform: mapping.TransformCurrency},
		{PDFFieldName: "List", DataPath: "vehicle.price", Transform: mapping.TransformCurrency},
		{PDFFieldName: "Date", DataPath: "deal.saleDate", Transform: mapping.TransformDate},
		{PDFFieldName: "Closed", DataPath: "deal.closedOn", Transform: mapping.TransformDate},
	}

	res := Prepare(mappings, testRecord())

	want := []PreparedField{
		{PDFFieldName: "VIN", DataPath: "vehicle.vin", Value: "1HGCM82633A004352"},
		{PDFFieldName: "Year", DataPath: "vehicle.year", Value: "2024"},
		{PDFFieldName: "Model", DataPath: "vehicle.model", Skipped: true, ValidationError: "required value missing"},
		{PDFFieldName: "Buyer", DataPath: "primaryParty.fullName", Value: "Jane Doe"},
		{PDFFieldName: "Email", DataPath: "primaryParty.email", Skipped: true},
		{PDFFieldName: "Co-Buyer", DataPath: "secondaryParty.fullName", Value: "N/A"},
		{PDFFieldName: "Price", DataPath: "deal.saleAmount", Value: "$1,234.50"},
		{PDFFieldName: "List", DataPath: "vehicle.price", Value: "$0.00"},
		{PDFFieldName: "Date", DataPath: "deal.saleDate", Value: "01/01/1970"},
		{PDFFieldName: "Closed", DataPath: "deal.closedOn", Value: ""},
	}

	if diff := cmp.Diff(want, res.Fields); diff != "" {
		t.Errorf("Prepare() mismatch (-want +got):\n%s", diff)
	}

	require.Len(t, res.ValidationErrors, 1)
	assert.Equal(t, "Model", res.ValidationErrors[0].Field)
	assert.Equal(t, "vehicle.model", res.ValidationErrors[0].DataPath)
	assert.Equal(t, 2, res.Skipped())
	assert.Equal(t, 2, res.Diagnostics.Count(diagnostic.CodeTransformFallback))
	assert.Equal(t, 1, res.Diagnostics.Count(diagnostic.CodeRequiredMissing))
}

func TestPrepare_OneFieldPerMapping(t *testing.T) {
	mappings := []mapping.FieldMapping{
		{PDFFieldName: "Model", DataPath: "vehicle.vin"},
		{PDFFieldName: "Model", DataPath: "vehicle.make"},
		{PDFFieldName: "Model", DataPath: "vehicle.model"},
	}

	res := Prepare(mappings, testRecord())
	require.Len(t, res.Fields, len(mappings))

	for i, f := range res.Fields {
		assert.Equal(t, mappings[i].DataPath, f.DataPath)
		// Skipped fields never carry a value.
		if f.Skipped {
			assert.Empty(t, f.Value)
		}
	}
}

func TestPrepare_Idempotent(t *testing.T) {
	mappings := []mapping.FieldMapping{
		{PDFFieldName: "VIN", DataPath: "vehicle.vin", Transform: mapping.TransformUppercase, Required: true},
		{PDFFieldName: "Model", DataPath: "vehicle.model", Required: true},
		{PDFFieldName: "Price", DataPath: "vehicle.price", Transform: mapping.TransformCurrency},
	}
	rec := testRecord()

	first := Prepare(mappings, rec)
	second := Prepare(mappings, rec)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Prepare() not idempotent (-first +second):\n%s", diff)
	}
}

func TestPrepare_InvalidPathAndUnknownTransform(t *testing.T) {
	mappings := []mapping.FieldMapping{
		{PDFFieldName: "Dealer", DataPath: "dealer.name", DefaultValue: mapping.StringPtr("Acme Motors")},
		{PDFFieldName: "Make", DataPath: "vehicle.make", Transform: "reverse"},
	}

	res := Prepare(mappings, testRecord())

	require.Len(t, res.Fields, 2)
	assert.Equal(t, "Acme Motors", res.Fields[0].Value)
	assert.Equal(t, "Honda", res.Fields[1].Value)
	assert.Equal(t, 1, res.Diagnostics.Count(diagnostic.CodeInvalidPath))
	assert.Equal(t, 1, res.Diagnostics.Count(diagnostic.CodeUnknownTransform))
}

func TestPrepare_LogsTransformWarnings(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)

	Prepare([]mapping.FieldMapping{
		{PDFFieldName: "List", DataPath: "vehicle.price", Transform: mapping.TransformCurrency},
	}, testRecord(), WithLogger(zap.New(core)))

	entries := logs.FilterMessage("transform fell back").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "List", entries[0].ContextMap()["field"])
}

func TestPrepare_CarriesPriority(t *testing.T) {
	res := Prepare([]mapping.FieldMapping{
		{PDFFieldName: "Make", DataPath: "vehicle.make", Priority: 75},
	}, testRecord())

	require.Len(t, res.Fields, 1)
	assert.Equal(t, 75, res.Fields[0].Priority)
}
