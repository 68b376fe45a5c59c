package match

import (
	"fmt"
	"strings"
	"sync"

	"dealdocs/internal/mapping"
)

// Minimum scores an entry accepts.
const (
	MinScore       = ScoreSubstring
	MinScoreStrict = ScoreNormalizedExact
)

// SchemaEntry is one known data element and the field names it answers to.
type SchemaEntry struct {
	// Path is the canonical record path, e.g. "vehicle.vin".
	Path mapping.DataPath
	// Aliases are normalized names ("buyer_first_name"), in preference order.
	Aliases []string
	// Strict entries accept only exact or normalized-exact matches.
	Strict bool
	// Transform is attached to every mapping produced for this entry.
	Transform mapping.Transform

	compact []string
}

// Category returns the record branch the entry lives in.
func (e *SchemaEntry) Category() mapping.Category {
	return e.Path.Category
}

// MinScore returns the lowest score the entry accepts.
func (e *SchemaEntry) MinScore() int {
	if e.Strict {
		return MinScoreStrict
	}

	return MinScore
}

// Schema is an immutable, ordered table of entries. Declaration order breaks
// score ties. A Schema is safe for concurrent use.
type Schema struct {
	entries []*SchemaEntry
}

// NewSchema validates entries and normalizes their aliases.
func NewSchema(entries []SchemaEntry) (*Schema, error) {
	s := &Schema{entries: make([]*SchemaEntry, 0, len(entries))}
	seen := make(map[string]bool, len(entries))

	for i := range entries {
		e := entries[i]

		if !e.Path.Category.IsSchema() {
			return nil, fmt.Errorf("schema entry %q: category %q is not mappable", e.Path, e.Path.Category)
		}

		if seen[e.Path.String()] {
			return nil, fmt.Errorf("schema entry %q declared twice", e.Path)
		}

		seen[e.Path.String()] = true

		if len(e.Aliases) == 0 {
			return nil, fmt.Errorf("schema entry %q has no aliases", e.Path)
		}

		aliases := make([]string, 0, len(e.Aliases))
		compact := make([]string, 0, len(e.Aliases))

		for _, a := range e.Aliases {
			name := strings.Join(TokenizeIdent(a), "_")
			if name == "" {
				return nil, fmt.Errorf("schema entry %q has an empty alias", e.Path)
			}

			aliases = append(aliases, name)
			compact = append(compact, strings.ReplaceAll(name, "_", ""))
		}

		e.Aliases = aliases
		e.compact = compact
		s.entries = append(s.entries, &e)
	}

	return s, nil
}

// Entries returns the entries in declaration order.
func (s *Schema) Entries() []*SchemaEntry {
	out := make([]*SchemaEntry, len(s.entries))
	copy(out, s.entries)

	return out
}

// Lookup returns the entry for a canonical path, or nil.
func (s *Schema) Lookup(path string) *SchemaEntry {
	for _, e := range s.entries {
		if e.Path.String() == path {
			return e
		}
	}

	return nil
}

// defaultSchema is built on first use and never mutated afterwards.
var defaultSchema = sync.OnceValue(func() *Schema {
	s, err := NewSchema(defaultEntries())
	if err != nil {
		panic(err)
	}

	return s
})

// DefaultSchema returns the compiled-in schema.
func DefaultSchema() *Schema {
	return defaultSchema()
}

// partyField describes one leaf shared by both parties.
type partyField struct {
	leaf      string
	aliases   []string
	strict    bool
	transform mapping.Transform
}

var partyFields = []partyField{
	{leaf: "firstName", aliases: []string{"first_name", "fname", "first", "given_name"}},
	{leaf: "lastName", aliases: []string{"last_name", "lname", "last", "surname", "family_name"}},
	{leaf: "fullName", aliases: []string{
		"full_name", "name", "purchasers_transferees", "purchaser_transferee", "transferee",
		"owner_name", "new_owner",
	}},
	{leaf: "email", aliases: []string{"email", "e_mail", "email_address"}},
	{leaf: "phone", strict: true, aliases: []string{
		"phone", "phone_number", "phone_no", "telephone", "tel", "cell", "cell_phone", "mobile", "home_phone",
	}},
	{leaf: "address", aliases: []string{"address", "street_address", "street", "addr", "address_line_1", "residence_address"}},
	{leaf: "city", aliases: []string{"city", "town"}},
	{leaf: "state", aliases: []string{"state", "province"}},
	{leaf: "zipCode", aliases: []string{"zip", "zip_code", "zipcode", "postal_code", "postal"}},
	{leaf: "county", aliases: []string{"county"}},
	{leaf: "driversLicense", aliases: []string{
		"drivers_license", "driver_license", "drivers_license_number", "dl", "dl_number", "license_number",
	}},
	{leaf: "dateOfBirth", transform: mapping.TransformDate, aliases: []string{"date_of_birth", "dob", "birth_date", "birthdate"}},
}

// Party role prefixes. Unprefixed aliases are shared by both parties; the
// suffix and marker filters decide which party a field can reach.
var (
	primaryRoles   = []string{"", "buyer_", "purchaser_", "customer_"}
	secondaryRoles = []string{"", "buyer_", "purchaser_", "co_buyer_", "cobuyer_", "co_purchaser_", "second_buyer_"}
)

var vehicleEntries = []SchemaEntry{
	{Path: mapping.MustParseDataPath("vehicle.vin"), Strict: true, Transform: mapping.TransformUppercase, Aliases: []string{
		"vin", "vin_number", "vin_no", "vehicle_identification_number", "vehicle_id_number",
		"serial", "serial_number", "serial_no",
	}},
	{Path: mapping.MustParseDataPath("vehicle.year"), Aliases: []string{"year", "vehicle_year", "model_year", "veh_year", "yr"}},
	{Path: mapping.MustParseDataPath("vehicle.make"), Aliases: []string{"make", "vehicle_make", "veh_make", "manufacturer", "mfr"}},
	{Path: mapping.MustParseDataPath("vehicle.model"), Strict: true, Aliases: []string{
		"model", "vehicle_model", "car_model", "veh_model", "model_name",
	}},
	{Path: mapping.MustParseDataPath("vehicle.trim"), Aliases: []string{"trim", "trim_level", "series"}},
	{Path: mapping.MustParseDataPath("vehicle.body"), Aliases: []string{"body", "body_style", "body_type"}},
	{Path: mapping.MustParseDataPath("vehicle.color"), Aliases: []string{"color", "colour", "exterior_color", "ext_color", "exterior"}},
	{Path: mapping.MustParseDataPath("vehicle.mileage"), Aliases: []string{"mileage", "odometer", "odometer_reading", "miles"}},
	{Path: mapping.MustParseDataPath("vehicle.stockNumber"), Aliases: []string{"stock_number", "stock_no", "stock"}},
	{Path: mapping.MustParseDataPath("vehicle.titleNumber"), Aliases: []string{"title_number", "title_no", "title"}},
	{Path: mapping.MustParseDataPath("vehicle.engine"), Aliases: []string{"engine", "engine_size"}},
	{Path: mapping.MustParseDataPath("vehicle.transmission"), Aliases: []string{"transmission", "trans"}},
	{Path: mapping.MustParseDataPath("vehicle.cylinders"), Aliases: []string{"cylinders", "cyl"}},
	{Path: mapping.MustParseDataPath("vehicle.doors"), Aliases: []string{"doors"}},
	{Path: mapping.MustParseDataPath("vehicle.price"), Transform: mapping.TransformCurrency, Aliases: []string{
		"price", "vehicle_price", "list_price", "cash_price",
	}},
}

var dealEntries = []SchemaEntry{
	{Path: mapping.MustParseDataPath("deal.saleDate"), Transform: mapping.TransformDate, Aliases: []string{
		"sale_date", "date_of_sale", "purchase_date", "date_sold", "sold_date", "date",
	}},
	{Path: mapping.MustParseDataPath("deal.saleAmount"), Transform: mapping.TransformCurrency, Aliases: []string{
		"sale_price", "sale_amount", "sales_price", "selling_price", "purchase_price",
	}},
	{Path: mapping.MustParseDataPath("deal.salesTax"), Transform: mapping.TransformCurrency, Aliases: []string{"sales_tax", "tax"}},
	{Path: mapping.MustParseDataPath("deal.docFee"), Transform: mapping.TransformCurrency, Aliases: []string{
		"doc_fee", "documentation_fee", "document_fee",
	}},
	{Path: mapping.MustParseDataPath("deal.tradeInValue"), Transform: mapping.TransformCurrency, Aliases: []string{
		"trade_in_value", "trade_in", "trade_allowance", "trade",
	}},
	{Path: mapping.MustParseDataPath("deal.downPayment"), Transform: mapping.TransformCurrency, Aliases: []string{
		"down_payment", "cash_down", "deposit",
	}},
	{Path: mapping.MustParseDataPath("deal.financedAmount"), Transform: mapping.TransformCurrency, Aliases: []string{
		"amount_financed", "financed_amount", "balance_financed",
	}},
	{Path: mapping.MustParseDataPath("deal.totalAmount"), Transform: mapping.TransformCurrency, Aliases: []string{
		"total_amount", "total_price", "total_due", "balance_due", "total",
	}},
}

// defaultEntries declares the table in tie-break order: primary party,
// secondary party, vehicle, deal.
func defaultEntries() []SchemaEntry {
	entries := make([]SchemaEntry, 0, 2*len(partyFields)+len(vehicleEntries)+len(dealEntries))
	entries = append(entries, partyEntries(mapping.CategoryPrimaryParty, primaryRoles)...)
	entries = append(entries, partyEntries(mapping.CategorySecondaryParty, secondaryRoles)...)
	entries = append(entries, vehicleEntries...)
	entries = append(entries, dealEntries...)

	return entries
}

func partyEntries(category mapping.Category, roles []string) []SchemaEntry {
	out := make([]SchemaEntry, 0, len(partyFields))

	for _, f := range partyFields {
		aliases := make([]string, 0, len(f.aliases)*len(roles))
		for _, role := range roles {
			for _, a := range f.aliases {
				aliases = append(aliases, role+a)
			}
		}

		// Role-only names ("Buyer", "Purchaser") denote the whole name.
		if f.leaf == "fullName" {
			for _, role := range roles {
				if role != "" {
					aliases = append(aliases, strings.TrimSuffix(role, "_"))
				}
			}
		}

		out = append(out, SchemaEntry{
			Path:      mapping.DataPath{Category: category, Leaf: f.leaf},
			Aliases:   aliases,
			Strict:    f.strict,
			Transform: f.transform,
		})
	}

	return out
}
