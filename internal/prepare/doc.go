// Package prepare resolves field mappings against a transaction record and
// produces the formatted string for every form field.
//
// Prepare never fails as a whole. Missing required data becomes a validation
// error on a skipped field, bad numbers become "$0.00", bad dates become "".
// The output has exactly one PreparedField per input mapping, in input order.
package prepare
