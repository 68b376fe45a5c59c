package match

import (
	"slices"
	"strings"

	"dealdocs/internal/mapping"
)

// CategorySet is the set of record branches a field may map into.
type CategorySet []mapping.Category

// Contains returns true if c is in the set.
func (s CategorySet) Contains(c mapping.Category) bool {
	return slices.Contains(s, c)
}

var (
	primaryRouting   = CategorySet{mapping.CategoryPrimaryParty, mapping.CategoryVehicle, mapping.CategoryDeal}
	secondaryMarked  = CategorySet{mapping.CategorySecondaryParty, mapping.CategoryVehicle, mapping.CategoryDeal}
	secondaryRouting = CategorySet{mapping.CategorySecondaryParty}
)

// AllowedCategories routes a field by its party suffix and markers.
// A "2" suffix reaches the secondary party only. A co-buyer marker swaps
// the primary party for the secondary one. Everything else, including a
// "1" suffix, can never reach the secondary party.
func AllowedCategories(n Normalized) CategorySet {
	switch {
	case n.Suffix == SuffixSecondary:
		return secondaryRouting
	case n.IsSecondaryMarked():
		return secondaryMarked
	default:
		return primaryRouting
	}
}

// Fragments of names left for manual completion.
var (
	excludedFragments = []string{
		"signature", "initials", "notary", "notariz", "notaris",
		"insurance", "insurer", "lienholder", "lienor",
	}
	excludedTokens = []string{"sig", "sign", "signed", "signer", "initial", "initials", "init", "lien"}
)

// Excluded returns true for signature, initials, notarization, insurance
// carrier, or lien-holder fields. These are never auto-populated.
func Excluded(n Normalized) bool {
	if containsAny(n.Full, excludedFragments) {
		return true
	}

	return n.hasToken(excludedTokens...)
}

// Barred returns true if the field may not map to e regardless of score:
// an identifier field never fills model or color, and a model or color
// field never fills the identifier.
func Barred(n Normalized, e *SchemaEntry) bool {
	if e.Path.Category != mapping.CategoryVehicle {
		return false
	}

	switch strings.ToLower(e.Path.Leaf) {
	case "model", "color":
		return n.HasVINMarker()
	case "vin":
		return n.HasModelMarker() || n.HasColorMarker()
	}

	return false
}
