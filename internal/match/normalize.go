package match

import (
	"regexp"
	"strings"
	"unicode"
)

// Party suffixes used by templates that repeat one layout for two parties,
// e.g. "phone1_1" (buyer) and "phone2_1" (co-buyer).
const (
	SuffixNone      = 0
	SuffixPrimary   = 1
	SuffixSecondary = 2
)

// partySuffix captures a trailing party digit, optionally followed by a
// widget index: "name2", "name_2", "name 2", "phone2_1".
var partySuffix = regexp.MustCompile(`^(.*[a-z])_?([12])(?:_[0-9]+)?$`)

// Marker fragments, compared against the compact form.
var (
	secondaryMarkers = []string{
		"cobuyer", "coborrower", "coapplicant", "copurchaser", "cotransferee",
		"coowner", "cosigner", "secondbuyer", "secondpurchaser", "additionalbuyer",
	}
	vinMarkers   = []string{"vin", "serial"}
	modelMarkers = []string{"model"}
	colorMarkers = []string{"color", "colour", "exterior"}
)

// Normalized is a field name prepared for matching.
type Normalized struct {
	// Raw is the field name as found in the template.
	Raw string
	// Name is the lowercase token form with the party suffix removed,
	// tokens joined by "_": "Buyer First Name 2" -> "buyer_first_name".
	Name string
	// Compact is Name without separators: "buyerfirstname".
	Compact string
	// Full is the compact form of the whole name, suffix included.
	Full string
	// Tokens are the lowercase tokens of Name.
	Tokens []string
	// Suffix is SuffixPrimary, SuffixSecondary, or SuffixNone.
	Suffix int
}

// Normalize lowercases and tokenizes a field name and detects its party
// suffix. CamelCase boundaries and any non-alphanumeric rune split tokens.
func Normalize(name string) Normalized {
	tokens := TokenizeIdent(strings.TrimSpace(name))
	joined := strings.Join(tokens, "_")

	n := Normalized{
		Raw:  name,
		Name: joined,
		Full: NormalizeIdent(name),
	}

	if m := partySuffix.FindStringSubmatch(joined); m != nil && !strings.HasSuffix(m[1], "line") {
		n.Name = m[1]
		n.Suffix = int(m[2][0] - '0')
	}

	if n.Name != "" {
		n.Tokens = strings.Split(n.Name, "_")
	}

	n.Compact = strings.ReplaceAll(n.Name, "_", "")

	return n
}

// HasSuffix returns true if a party suffix was detected.
func (n Normalized) HasSuffix() bool {
	return n.Suffix != SuffixNone
}

// IsSecondaryMarked returns true for explicit co-buyer style names.
func (n Normalized) IsSecondaryMarked() bool {
	return containsAny(n.Full, secondaryMarkers)
}

// HasVINMarker returns true if the name mentions a vehicle identifier.
func (n Normalized) HasVINMarker() bool {
	return containsAny(n.Full, vinMarkers)
}

// HasModelMarker returns true if the name mentions a vehicle model.
func (n Normalized) HasModelMarker() bool {
	return containsAny(n.Full, modelMarkers)
}

// HasColorMarker returns true if the name mentions a color.
func (n Normalized) HasColorMarker() bool {
	return containsAny(n.Full, colorMarkers)
}

// hasToken reports whether any token equals one of candidates.
func (n Normalized) hasToken(candidates ...string) bool {
	for _, tok := range n.Tokens {
		for _, c := range candidates {
			if tok == c {
				return true
			}
		}
	}

	return false
}

// NormalizeIdent lowercases an identifier and strips every separator:
// "Buyer_First-Name" -> "buyerfirstname".
func NormalizeIdent(s string) string {
	return strings.Join(TokenizeIdent(s), "")
}

// TokenizeIdent splits an identifier into normalized lowercase tokens.
func TokenizeIdent(s string) []string {
	tokens := tokenizeCamelCase(s)
	for i, t := range tokens {
		tokens[i] = strings.ToLower(t)
	}

	return tokens
}

// tokenizeCamelCase splits a CamelCase or camelCase string into tokens.
// Examples:
//   - "BuyerFirstName" -> ["Buyer", "First", "Name"]
//   - "VINNumber" -> ["VIN", "Number"]
//   - "PurchasersTransferees.0" -> ["Purchasers", "Transferees", "0"]
//   - "phone2_1" -> ["phone2", "1"]
func tokenizeCamelCase(s string) []string {
	if s == "" {
		return nil
	}

	var tokens []string

	var current strings.Builder

	runes := []rune(s)
	for i := range runes {
		r := runes[i]

		// Handle separators - start a new token
		if isSeparator(r) {
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}

			continue
		}

		if i == 0 {
			current.WriteRune(r)

			continue
		}

		if shouldStartNewToken(runes, i) {
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
		}

		current.WriteRune(r)
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

// isSeparator returns true for any rune that is neither letter nor digit.
func isSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// shouldStartNewToken determines if a new token should start at position i.
func shouldStartNewToken(runes []rune, i int) bool {
	r := runes[i]
	prevRune := runes[i-1]
	isUpper := unicode.IsUpper(r)
	isPrevUpper := unicode.IsUpper(prevRune)
	isPrevSep := isSeparator(prevRune)

	// Transition from lowercase to uppercase: start new token
	// e.g., "firstName" -> split before 'N'
	if isUpper && !isPrevUpper && !isPrevSep {
		return true
	}

	// End of acronym: check if next character is lowercase
	// e.g., "VINNumber" -> "VIN" + "Number", split before 'N'
	hasNextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
	if isUpper && isPrevUpper && hasNextLower {
		return true
	}

	return false
}

func containsAny(s string, fragments []string) bool {
	for _, f := range fragments {
		if strings.Contains(s, f) {
			return true
		}
	}

	return false
}
