package mapping

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// CurrentVersion is written into every mapping file this package produces.
const CurrentVersion = "1"

// LoadFile reads a reviewed mapping file.
func LoadFile(path string) (*MappingFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping file %s: %w", path, err)
	}

	mf, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return mf, nil
}

// Parse decodes a mapping file. Unknown keys are rejected so a typo such as
// "pdf_feild" fails loudly instead of producing an empty mapping.
func Parse(data []byte) (*MappingFile, error) {
	var mf MappingFile

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&mf); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse mapping YAML: %w", err)
	}

	if mf.Version == "" {
		mf.Version = CurrentVersion
	}

	for i := range mf.Fields {
		f := &mf.Fields[i]
		f.DataPath = strings.TrimSpace(f.DataPath)
		// Whatever the file says, a loaded mapping is a manual override.
		f.AutoMapped = false
	}

	return &mf, nil
}

// Marshal encodes a mapping file with two-space indentation.
func Marshal(mf *MappingFile) ([]byte, error) {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(mf); err != nil {
		return nil, err
	}

	if err := enc.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// WriteFile writes mf to path for review.
func WriteFile(mf *MappingFile, path string) error {
	data, err := Marshal(mf)
	if err != nil {
		return fmt.Errorf("failed to marshal mapping: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write mapping file %s: %w", path, err)
	}

	return nil
}

// NewMappingFile wraps mappings, typically auto-mapped ones, into a file that
// reviewers edit and feed back to fill as an override.
func NewMappingFile(template string, fields []FieldMapping) *MappingFile {
	return &MappingFile{
		Version:  CurrentVersion,
		Template: template,
		Fields:   append([]FieldMapping(nil), fields...),
	}
}
