// Package record models the transaction record the engine fills templates
// from, and loads it from JSON or YAML files.
//
// A record has fixed top-level branches (primaryParty, secondaryParty,
// vehicle, deal, organization); every branch is a flat map of scalar values.
// The engine only reads records. Files are validated against a JSON Schema on
// load so that malformed input fails before any template work starts.
package record
