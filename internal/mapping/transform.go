package mapping

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Transform names a value conversion applied before a value is written.
type Transform string

const (
	TransformNone      Transform = ""
	TransformUppercase Transform = "uppercase"
	TransformLowercase Transform = "lowercase"
	TransformTitlecase Transform = "titlecase"
	TransformCurrency  Transform = "currency"
	TransformDate      Transform = "date"
)

// DateLayout is the output layout of the date transform.
const DateLayout = "01/02/2006"

// knownTransforms lists every transform Apply understands.
var knownTransforms = map[Transform]bool{
	TransformNone:      true,
	TransformUppercase: true,
	TransformLowercase: true,
	TransformTitlecase: true,
	TransformCurrency:  true,
	TransformDate:      true,
}

// dateLayouts are tried in order when a date arrives as a string.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.DateOnly,
	"01/02/2006",
	"1/2/2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

// IsKnown returns true if the transform is supported.
func (t Transform) IsKnown() bool {
	return knownTransforms[t]
}

// Apply converts a raw record value into the string written to the form.
// A non-empty warning means the value degraded to a fallback ("$0.00" for
// currency, "" for date); the returned value is still usable.
// Unknown transforms pass the value through unchanged.
func (t Transform) Apply(v any) (value, warning string) {
	switch t {
	case TransformUppercase:
		return strings.ToUpper(Stringify(v)), ""
	case TransformLowercase:
		return strings.ToLower(Stringify(v)), ""
	case TransformTitlecase:
		return titleCase(Stringify(v)), ""
	case TransformCurrency:
		return formatCurrency(v)
	case TransformDate:
		return formatDate(v)
	default:
		return Stringify(v), ""
	}
}

// Stringify renders a scalar record value without any transform.
func Stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint:
		return strconv.FormatUint(uint64(val), 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case time.Time:
		return val.Format(time.RFC3339)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

// titleCase lowercases s and upper-cases the first letter of every
// whitespace-delimited word. Whitespace is preserved as is.
func titleCase(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	startOfWord := true

	for _, r := range strings.ToLower(s) {
		if unicode.IsSpace(r) {
			startOfWord = true

			b.WriteRune(r)

			continue
		}

		if startOfWord {
			r = unicode.ToUpper(r)
			startOfWord = false
		}

		b.WriteRune(r)
	}

	return b.String()
}

func formatCurrency(v any) (string, string) {
	f, ok := toFloat(v)
	if !ok {
		return "$0.00", fmt.Sprintf("currency: %q is not a number", Stringify(v))
	}

	cents := math.Round(f * 100)

	sign := ""
	if cents < 0 {
		sign = "-"
	}

	f = math.Abs(cents) / 100

	// Printer groups digits per locale: 1234.5 -> "1,234.50".
	p := message.NewPrinter(language.English)

	return sign + "$" + p.Sprintf("%.2f", f), ""
}

func formatDate(v any) (string, string) {
	t, ok := toTime(v)
	if !ok {
		return "", fmt.Sprintf("date: cannot parse %q", Stringify(v))
	}

	return t.UTC().Format(DateLayout), ""
}

func toFloat(v any) (float64, bool) {
	var f float64

	switch val := v.(type) {
	case nil:
		return 0, false
	case float64:
		f = val
	case float32:
		f = float64(val)
	case int:
		f = float64(val)
	case int32:
		f = float64(val)
	case int64:
		f = float64(val)
	case uint:
		f = float64(val)
	case uint64:
		f = float64(val)
	default:
		s := strings.TrimSpace(Stringify(v))
		s = strings.NewReplacer("$", "", ",", "").Replace(s)

		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}

		f = parsed
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}

	return f, true
}

// toTime accepts time values, epoch milliseconds, and date-like strings.
func toTime(v any) (time.Time, bool) {
	switch val := v.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		return val, !val.IsZero()
	case *time.Time:
		if val == nil {
			return time.Time{}, false
		}

		return *val, !val.IsZero()
	case int, int32, int64, uint, uint64, float32, float64:
		f, ok := toFloat(val)
		if !ok {
			return time.Time{}, false
		}

		return time.UnixMilli(int64(f)), true
	}

	s := strings.TrimSpace(Stringify(v))
	if s == "" {
		return time.Time{}, false
	}

	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms), true
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}
