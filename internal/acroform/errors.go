package acroform

import (
	"errors"
	"fmt"
)

// Causes carried by FieldWriteError.
var (
	ErrFieldNotFound   = errors.New("field not found in template")
	ErrUnsupportedKind = errors.New("field kind cannot be filled")
	ErrOptionNotFound  = errors.New("value is not one of the field's options")
)

// TemplateParseError means the bytes are not a readable PDF.
type TemplateParseError struct {
	Err error
}

func (e *TemplateParseError) Error() string {
	return fmt.Sprintf("template parse: %v", e.Err)
}

func (e *TemplateParseError) Unwrap() error {
	return e.Err
}

// TemplateFormatError means the PDF is readable but has no form.
type TemplateFormatError struct {
	Reason string
}

func (e *TemplateFormatError) Error() string {
	return "template has no fillable form: " + e.Reason
}

// FieldWriteError reports one field that could not be written.
// Filling continues past it.
type FieldWriteError struct {
	Field string
	Kind  Kind
	Value string
	Err   error
}

func (e *FieldWriteError) Error() string {
	return fmt.Sprintf("write field %q (%s): %v", e.Field, e.Kind, e.Err)
}

func (e *FieldWriteError) Unwrap() error {
	return e.Err
}
