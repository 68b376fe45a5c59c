package mapping

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTransform_Apply(t *testing.T) {
	tests := []struct {
		name      string
		transform Transform
		in        any
		want      string
		wantWarn  bool
	}{
		{"none string", TransformNone, "Civic", "Civic", false},
		{"none int", TransformNone, 2024, "2024", false},
		{"none float", TransformNone, 2024.0, "2024", false},
		{"none bool", TransformNone, true, "true", false},
		{"uppercase", TransformUppercase, "1hgcm82633a004352", "1HGCM82633A004352", false},
		{"lowercase", TransformLowercase, "JANE@EXAMPLE.COM", "jane@example.com", false},
		{"titlecase", TransformTitlecase, "jANE  mARY doe", "Jane  Mary Doe", false},
		{"titlecase keeps hyphen words", TransformTitlecase, "MARY-KATE o'BRIEN", "Mary-kate O'brien", false},
		{"currency string", TransformCurrency, "1234.5", "$1,234.50", false},
		{"currency float", TransformCurrency, 1234567.891, "$1,234,567.89", false},
		{"currency int", TransformCurrency, 0, "$0.00", false},
		{"currency negative", TransformCurrency, -42.5, "-$42.50", false},
		{"currency rounds to zero", TransformCurrency, -0.001, "$0.00", false},
		{"currency rounds to negative cents", TransformCurrency, "-0.019", "-$0.02", false},
		{"currency formatted input", TransformCurrency, "$2,500", "$2,500.00", false},
		{"currency garbage", TransformCurrency, "not-a-number", "$0.00", true},
		{"currency nil", TransformCurrency, nil, "$0.00", true},
		{"date epoch ms zero", TransformDate, 0, "01/01/1970", false},
		{"date epoch ms int64", TransformDate, int64(1709251200000), "03/01/2024", false},
		{"date epoch string", TransformDate, "1709251200000", "03/01/2024", false},
		{"date iso", TransformDate, "2024-03-01", "03/01/2024", false},
		{"date rfc3339", TransformDate, "2024-03-01T10:30:00Z", "03/01/2024", false},
		{"date us", TransformDate, "3/1/2024", "03/01/2024", false},
		{"date time value", TransformDate, time.Date(2023, 12, 31, 8, 0, 0, 0, time.UTC), "12/31/2023", false},
		{"date garbage", TransformDate, "garbage", "", true},
		{"unknown passes through", Transform("rot13"), "abc", "abc", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, warn := tt.transform.Apply(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantWarn, warn != "", "warning: %q", warn)
		})
	}
}

func TestTransform_IsKnown(t *testing.T) {
	for _, tr := range []Transform{TransformNone, TransformUppercase, TransformLowercase,
		TransformTitlecase, TransformCurrency, TransformDate} {
		assert.True(t, tr.IsKnown(), tr)
	}

	assert.False(t, Transform("phone").IsKnown())
}

func TestStringify(t *testing.T) {
	assert.Empty(t, Stringify(nil))
	assert.Equal(t, "555-1212", Stringify("555-1212"))
	assert.Equal(t, "12.75", Stringify(12.75))
	assert.Equal(t, "-3", Stringify(int64(-3)))
	assert.Equal(t, "2024-03-01T00:00:00Z", Stringify(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
}
