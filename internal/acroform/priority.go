package acroform

import (
	"strings"
	"unicode"

	"dealdocs/internal/prepare"
)

// PriorityFunc ranks candidates competing for one field name.
// Higher wins; on equal priority the earlier candidate wins.
type PriorityFunc func(prepare.PreparedField) int

// Default priorities.
const (
	PriorityIdentifier = 100
	PriorityModel      = 80
	PriorityColor      = 60
	PriorityVehicle    = 50
	PriorityDefault    = 10
)

// DefaultPriority uses the candidate's explicit Priority when positive.
// Otherwise it ranks by the source name: the data path leaf, or the field
// name when the candidate carries no path.
func DefaultPriority(pf prepare.PreparedField) int {
	if pf.Priority > 0 {
		return pf.Priority
	}

	source := pf.PDFFieldName
	if pf.DataPath != "" {
		source = pf.DataPath
		if i := strings.LastIndexByte(source, '.'); i >= 0 {
			source = source[i+1:]
		}
	}

	return NamePriority(source)
}

// NamePriority is the name-sniffing table: identifier, then model (unless
// the name also looks like a year), then color, then make, year, or trim.
func NamePriority(name string) int {
	s := compact(name)

	switch {
	case strings.Contains(s, "vin") || strings.Contains(s, "serial"):
		return PriorityIdentifier
	case strings.Contains(s, "model") && !strings.Contains(s, "year"):
		return PriorityModel
	case strings.Contains(s, "color") || strings.Contains(s, "colour") || strings.Contains(s, "exterior"):
		return PriorityColor
	case strings.Contains(s, "make") || strings.Contains(s, "year") || strings.Contains(s, "trim"):
		return PriorityVehicle
	default:
		return PriorityDefault
	}
}

func compact(s string) string {
	var b strings.Builder

	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}

	return b.String()
}

// Dedupe collapses candidates sharing a field name to the single winner
// under priority. Skipped candidates never compete. Winners are returned
// in the order their names first appear.
func Dedupe(fields []prepare.PreparedField, priority PriorityFunc) []prepare.PreparedField {
	if priority == nil {
		priority = DefaultPriority
	}

	type slot struct {
		field    prepare.PreparedField
		priority int
	}

	var order []string

	best := make(map[string]*slot, len(fields))

	for _, pf := range fields {
		if pf.Skipped {
			continue
		}

		p := priority(pf)

		cur, ok := best[pf.PDFFieldName]
		if !ok {
			order = append(order, pf.PDFFieldName)
			best[pf.PDFFieldName] = &slot{field: pf, priority: p}

			continue
		}

		if p > cur.priority {
			cur.field, cur.priority = pf, p
		}
	}

	out := make([]prepare.PreparedField, 0, len(order))
	for _, name := range order {
		out = append(out, best[name].field)
	}

	return out
}
