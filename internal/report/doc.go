// Package report renders mapping and fill results as XLSX workbooks for
// human review before a mapping file is locked in.
package report
