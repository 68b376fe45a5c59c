// Package engine wires extraction, auto-mapping, preparation, and filling
// into the two entry points callers use: Extract and Fill.
//
// An Engine holds only read-only configuration and is safe for concurrent
// use. Structural template problems are returned as errors; data problems
// are reported in FillResult and never stop the document from being built.
package engine
