package match

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dealdocs/internal/mapping"
)

func TestAllowedCategories(t *testing.T) {
	tests := []struct {
		name      string
		secondary bool
		primary   bool
		vehicle   bool
	}{
		{"Phone", false, true, true},
		{"phone1_1", false, true, true},
		{"phone2_1", true, false, false},
		{"CoBuyer Phone", true, false, true},
		{"Co-Purchaser Name", true, false, true},
		{"Address Line 2", false, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := AllowedCategories(Normalize(tt.name))
			assert.Equal(t, tt.secondary, set.Contains(mapping.CategorySecondaryParty))
			assert.Equal(t, tt.primary, set.Contains(mapping.CategoryPrimaryParty))
			assert.Equal(t, tt.vehicle, set.Contains(mapping.CategoryVehicle))
			assert.False(t, set.Contains(mapping.CategoryOrganization))
		})
	}
}

func TestExcluded(t *testing.T) {
	excluded := []string{
		"Buyer Signature", "Signature1", "Initials", "Buyer Initial", "NotaryPublic",
		"Notarized By", "Insurance Company", "Insurer", "LienHolder", "Lien Holder Name",
		"Sig_Date", "Lienor",
	}
	for _, name := range excluded {
		assert.True(t, Excluded(Normalize(name)), name)
	}

	kept := []string{"VIN", "Buyer Name", "Design", "Single", "Initialized Date", "Alien Registration"}
	for _, name := range kept {
		assert.False(t, Excluded(Normalize(name)), name)
	}
}

func TestBarred(t *testing.T) {
	s := DefaultSchema()
	vin := s.Lookup("vehicle.vin")
	model := s.Lookup("vehicle.model")
	color := s.Lookup("vehicle.color")
	year := s.Lookup("vehicle.year")

	assert.True(t, Barred(Normalize("VIN"), model))
	assert.True(t, Barred(Normalize("VIN"), color))
	assert.True(t, Barred(Normalize("Serial Model"), model))
	assert.True(t, Barred(Normalize("Car_Model"), vin))
	assert.True(t, Barred(Normalize("Exterior Color"), vin))
	assert.False(t, Barred(Normalize("VIN"), vin))
	assert.False(t, Barred(Normalize("Model"), model))
	assert.False(t, Barred(Normalize("Model Year"), year))
}
