// Package acroform reads and writes the interactive form of a PDF template.
//
// Extract lists every terminal field with its kind. Fill writes prepared
// values into a copy of the template, collapsing candidates that share a
// field name by priority, and leaves the form editable. Both operate on an
// in-memory byte slice and share no state between calls.
package acroform
