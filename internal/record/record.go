package record

import (
	"strings"

	"dealdocs/internal/mapping"
)

// Branch is a flat map of named scalar values.
type Branch map[string]any

// Transaction is the structured deal data a template is filled from.
type Transaction struct {
	PrimaryParty   Branch `json:"primaryParty" yaml:"primaryParty"`
	SecondaryParty Branch `json:"secondaryParty,omitempty" yaml:"secondaryParty,omitempty"`
	Vehicle        Branch `json:"vehicle" yaml:"vehicle"`
	Deal           Branch `json:"deal" yaml:"deal"`
	Organization   Branch `json:"organization,omitempty" yaml:"organization,omitempty"`
}

// Branch returns the branch for a category, or nil if absent.
func (t *Transaction) Branch(c mapping.Category) Branch {
	if t == nil {
		return nil
	}

	switch c {
	case mapping.CategoryPrimaryParty:
		return t.PrimaryParty
	case mapping.CategorySecondaryParty:
		return t.SecondaryParty
	case mapping.CategoryVehicle:
		return t.Vehicle
	case mapping.CategoryDeal:
		return t.Deal
	case mapping.CategoryOrganization:
		return t.Organization
	default:
		return nil
	}
}

// Lookup resolves a parsed data path. The second result is false when the
// branch, the key, or the value itself is absent.
func (t *Transaction) Lookup(p mapping.DataPath) (any, bool) {
	branch := t.Branch(p.Category)
	if branch == nil {
		return nil, false
	}

	v, ok := branch[p.Leaf]
	if !ok || v == nil {
		return nil, false
	}

	return v, true
}

// Resolve parses path and looks it up. Unparseable paths resolve to missing.
func (t *Transaction) Resolve(path string) (any, bool) {
	p, err := mapping.ParseDataPath(path)
	if err != nil {
		return nil, false
	}

	return t.Lookup(p)
}

// IsBlank reports whether a resolved value carries no data: nil or a
// whitespace-only string.
func IsBlank(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(val) == ""
	default:
		return false
	}
}
