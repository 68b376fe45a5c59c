package mapping

import (
	"errors"
	"fmt"
	"strings"
)

// Category is the top-level branch of a transaction record.
type Category string

const (
	CategoryPrimaryParty   Category = "primaryParty"
	CategorySecondaryParty Category = "secondaryParty"
	CategoryVehicle        Category = "vehicle"
	CategoryDeal           Category = "deal"

	// CategoryOrganization is addressable by manual overrides only; the
	// auto-mapper never targets it.
	CategoryOrganization Category = "organization"
)

// SchemaCategories lists the categories the auto-mapper may target, in
// declaration order.
var SchemaCategories = []Category{
	CategoryPrimaryParty,
	CategorySecondaryParty,
	CategoryVehicle,
	CategoryDeal,
}

// IsSchema returns true for the four auto-mappable categories.
func (c Category) IsSchema() bool {
	switch c {
	case CategoryPrimaryParty, CategorySecondaryParty, CategoryVehicle, CategoryDeal:
		return true
	default:
		return false
	}
}

// IsValid returns true if the category names a record branch.
func (c Category) IsValid() bool {
	return c.IsSchema() || c == CategoryOrganization
}

// DataPath is a parsed "<category>.<leaf>" record path.
type DataPath struct {
	Category Category
	Leaf     string
}

// String returns the dotted form.
func (p DataPath) String() string {
	return string(p.Category) + "." + p.Leaf
}

// ParseDataPath parses a record path such as "vehicle.vin".
func ParseDataPath(path string) (DataPath, error) {
	if path == "" {
		return DataPath{}, errors.New("empty path")
	}

	category, leaf, ok := strings.Cut(path, ".")
	if !ok {
		return DataPath{}, fmt.Errorf("invalid path %q: expected <category>.<leaf>", path)
	}

	if !Category(category).IsValid() {
		return DataPath{}, fmt.Errorf("invalid path %q: unknown category %q", path, category)
	}

	if !isValidIdent(leaf) {
		return DataPath{}, fmt.Errorf("invalid path %q: invalid leaf %q", path, leaf)
	}

	return DataPath{Category: Category(category), Leaf: leaf}, nil
}

// MustParseDataPath is like ParseDataPath but panics on error.
// Intended for compiled-in tables.
func MustParseDataPath(path string) DataPath {
	p, err := ParseDataPath(path)
	if err != nil {
		panic(err)
	}

	return p
}

// isValidIdent checks that a leaf is a plain identifier.
func isValidIdent(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		if i == 0 {
			if !isLetter(r) && r != '_' {
				return false
			}
		} else if !isLetter(r) && !isDigit(r) && r != '_' {
			return false
		}
	}

	return true
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
