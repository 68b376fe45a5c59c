package match

import (
	"fmt"

	"dealdocs/internal/acroform"
	"dealdocs/internal/diagnostic"
	"dealdocs/internal/mapping"
)

// suggestThreshold is the minimum similarity for an alias suggestion.
const suggestThreshold = 0.6

// requiredPaths are the vehicle identity fields every document needs.
var requiredPaths = map[string]bool{
	"vehicle.vin":   true,
	"vehicle.year":  true,
	"vehicle.make":  true,
	"vehicle.model": true,
}

// IsRequiredPath returns true for the four vehicle identity paths.
func IsRequiredPath(path string) bool {
	return requiredPaths[path]
}

// Unmatched describes a field no schema entry accepted.
type Unmatched struct {
	Field string `json:"field"`
	// Suggestion is the closest data path by edit distance, if any.
	// It is informational and never applied.
	Suggestion string  `json:"suggestion,omitempty"`
	Similarity float64 `json:"similarity,omitempty"`
}

// Result is the outcome of mapping one field list.
type Result struct {
	// Fields is the input field list the result was built from.
	Fields      []acroform.Field       `json:"fields"`
	Mappings    []mapping.FieldMapping `json:"mappings"`
	Unmatched   []Unmatched            `json:"unmatched,omitempty"`
	Excluded    []string               `json:"excluded,omitempty"`
	Diagnostics diagnostic.Diagnostics `json:"diagnostics"`
}

// AutoMap maps fields with the default schema. Fields that cannot be
// matched are omitted. The result is deterministic for a given input order.
func AutoMap(fields []acroform.Field) []mapping.FieldMapping {
	return DefaultSchema().Map(fields).Mappings
}

// Map runs normalize, filter, score, and select over every field.
// Repeated names are mapped once.
func (s *Schema) Map(fields []acroform.Field) *Result {
	res := &Result{Fields: fields}
	seen := make(map[string]bool, len(fields))

	for _, f := range fields {
		if f.Name == "" || seen[f.Name] {
			continue
		}

		seen[f.Name] = true

		n := Normalize(f.Name)

		if f.Kind == acroform.KindSignature || Excluded(n) {
			res.Excluded = append(res.Excluded, f.Name)
			res.Diagnostics.AddInfo(diagnostic.CodeExcluded,
				"left for manual completion", f.Name, "")

			continue
		}

		best := SelectBest(Rank(n, s))
		if best == nil {
			u := s.suggest(n)
			res.Unmatched = append(res.Unmatched, u)

			msg := "no schema entry matched"
			if u.Suggestion != "" {
				msg = fmt.Sprintf("%s; closest is %s (%.2f)", msg, u.Suggestion, u.Similarity)
			}

			res.Diagnostics.AddInfo(diagnostic.CodeUnmapped, msg, f.Name, u.Suggestion)

			continue
		}

		res.Mappings = append(res.Mappings, newMapping(f.Name, best))
	}

	return res
}

func newMapping(field string, c *Candidate) mapping.FieldMapping {
	path := c.Entry.Path.String()

	return mapping.FieldMapping{
		PDFFieldName: field,
		DataPath:     path,
		Transform:    c.Entry.Transform,
		Required:     IsRequiredPath(path),
		AutoMapped:   true,
		Score:        c.Score,
	}
}

// suggest finds the entry whose alias is closest to n within the
// categories n may reach.
func (s *Schema) suggest(n Normalized) Unmatched {
	u := Unmatched{Field: n.Raw}
	if n.Compact == "" {
		return u
	}

	allowed := AllowedCategories(n)

	for _, e := range s.entries {
		if !allowed.Contains(e.Category()) || Barred(n, e) {
			continue
		}

		for _, a := range e.compact {
			sim := ratio(n.Compact, a)
			if sim > u.Similarity {
				u.Similarity = sim
				u.Suggestion = e.Path.String()
			}
		}
	}

	if u.Similarity < suggestThreshold {
		return Unmatched{Field: n.Raw}
	}

	return u
}

// Explanation shows how one field name was judged.
type Explanation struct {
	Normalized Normalized    `json:"normalized"`
	Excluded   bool          `json:"excluded"`
	Allowed    CategorySet   `json:"allowed"`
	Candidates CandidateList `json:"candidates"`
	// Selected is nil when the field stays unmapped.
	Selected *Candidate            `json:"selected,omitempty"`
	Mapping  *mapping.FieldMapping `json:"mapping,omitempty"`
}

// Explain returns the ranked candidates for name under the default schema.
func Explain(name string) Explanation {
	return DefaultSchema().Explain(name)
}

// Explain returns the ranked candidates for name.
func (s *Schema) Explain(name string) Explanation {
	n := Normalize(name)
	ex := Explanation{
		Normalized: n,
		Excluded:   Excluded(n),
		Allowed:    AllowedCategories(n),
	}

	if ex.Excluded {
		return ex
	}

	ex.Candidates = Rank(n, s)
	if best := SelectBest(ex.Candidates); best != nil {
		ex.Selected = best
		m := newMapping(name, best)
		ex.Mapping = &m
	}

	return ex
}
