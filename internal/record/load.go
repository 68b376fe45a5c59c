package record

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	gojson "github.com/goccy/go-json"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// compiledSchema is built once; the schema is constant.
var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	b, err := gojson.Marshal(Schema())
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("record.json", bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}

	return compiler.Compile("record.json")
})

// Schema returns the JSON Schema every record file must satisfy.
func Schema() map[string]any {
	scalar := map[string]any{
		"type": []any{"string", "number", "integer", "boolean", "null"},
	}
	branch := map[string]any{
		"type":                 "object",
		"additionalProperties": scalar,
	}
	optionalBranch := map[string]any{
		"type":                 []any{"object", "null"},
		"additionalProperties": scalar,
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"primaryParty":   branch,
			"secondaryParty": optionalBranch,
			"vehicle":        branch,
			"deal":           branch,
			"organization":   optionalBranch,
		},
		"required": []any{"primaryParty", "vehicle", "deal"},
	}
}

// LoadFile reads a record from a .json, .yaml, or .yml file.
func LoadFile(path string) (*Transaction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read record file %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return ParseJSON(data)
	}
}

// ParseJSON validates and decodes a JSON record.
func ParseJSON(data []byte) (*Transaction, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}

	var tx Transaction

	dec := gojson.NewDecoder(bytes.NewReader(data))
	// Keep numbers as written: a model year stays "2024", not "2024.0".
	dec.UseNumber()

	if err := dec.Decode(&tx); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}

	return &tx, nil
}

// ParseYAML converts a YAML record to JSON and parses it with ParseJSON, so
// both formats go through the same schema.
func ParseYAML(data []byte) (*Transaction, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("parse record YAML: %w", err)
	}

	b, err := gojson.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("convert record YAML: %w", err)
	}

	return ParseJSON(b)
}

// Validate checks raw JSON against Schema.
func Validate(data []byte) error {
	schema, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile record schema: %w", err)
	}

	var v any

	dec := gojson.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("unmarshal record: %w", err)
	}

	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("record does not match schema: %w", err)
	}

	return nil
}
