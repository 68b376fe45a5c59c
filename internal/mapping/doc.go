// Package mapping defines how PDF form fields bind to transaction record data,
// together with the value transforms applied on the way in.
//
// Mappings come from two places: the auto-mapper (package match) produces them
// from field names, and reviewers can pin them in a YAML override file that
// bypasses auto-mapping entirely.
//
// # Override file
//
//	version: "1"
//	template: bill-of-sale.pdf
//	fields:
//	  - pdf_field: VIN
//	    path: vehicle.vin
//	    transform: uppercase
//	    required: true
//	  - pdf_field: "PurchasersTransferees.0"
//	    path: primaryParty.fullName
//	  - pdf_field: Sale Price
//	    path: deal.saleAmount
//	    transform: currency
//	    default: "0"
//
// # Data paths
//
// A data path always has the form "<category>.<leaf>", where the category is
// one of the record branches: primaryParty, secondaryParty, vehicle, deal.
// Manual overrides may additionally address the organization branch.
//
// # Transforms
//
//   - uppercase, lowercase: case conversion
//   - titlecase: lowercase, then capitalize every whitespace-delimited word
//   - currency: "$1,234.50"; unparseable input becomes "$0.00" with a warning
//   - date: MM/DD/YYYY in UTC from time values, epoch milliseconds, or date-like
//     strings; unparseable input becomes "" with a warning
package mapping
