package dscp

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

func (v Value) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

func (v *Value) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// UnmarshalYAML accepts both `dscp: af41` and `dscp: 34`.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: DSCP must be a scalar", node.Line)
	}
	parsed, err := Parse(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*v = parsed
	return nil
}

// ValueList is an expanded range list, written in config as "af11-af13,46".
type ValueList []Value

func (l *ValueList) UnmarshalYAML(node *yaml.Node) error {
	var spec string
	switch node.Kind {
	case yaml.ScalarNode:
		spec = node.Value
	case yaml.SequenceNode:
		items := make([]string, 0, len(node.Content))
		for _, item := range node.Content {
			items = append(items, item.Value)
		}
		spec = strings.Join(items, ",")
	default:
		return fmt.Errorf("line %d: DSCP list must be a string or sequence", node.Line)
	}

	values, err := ExpandRanges(spec)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*l = values
	return nil
}

func (l ValueList) String() string {
	parts := make([]string, len(l))
	for i, v := range l {
		parts[i] = v.String()
	}
	return strings.Join(parts, ",")
}
