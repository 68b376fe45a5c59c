package mapping

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML reads a transform name case-insensitively, so "UpperCase"
// and "uppercase" load the same. Unknown names load as written and are
// reported by Validate.
func (t *Transform) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: transform must be a name", node.Line)
	}

	*t = Transform(strings.ToLower(strings.TrimSpace(node.Value)))

	return nil
}
