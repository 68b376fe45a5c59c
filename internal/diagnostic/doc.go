// Package diagnostic collects structured warnings, errors, and notes produced
// while mapping form fields and preparing their values.
//
// Data-level problems never abort document assembly. They are recorded here
// and surfaced to the caller next to the (best-effort) result:
//   - required data missing from the transaction record
//   - transform fallbacks (unparseable amounts or dates)
//   - fields that could not be classified or matched
//   - fields that failed to write into the template
package diagnostic
