// Package testpdf builds small single-page AcroForm documents for tests.
package testpdf
