package obj

import (
	"fmt"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DecodeYAML parses YAML bytes into the decoded value domain.
// Mapping key order follows the source bytes; integers become float64.
func DecodeYAML(data []byte) (any, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	return FromYAMLNode(&root)
}

// FromYAMLNode converts a yaml.Node tree into the decoded value domain.
func FromYAMLNode(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return FromYAMLNode(n.Content[0])
	case yaml.AliasNode:
		return FromYAMLNode(n.Alias)
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		switch t := v.(type) {
		case int:
			return float64(t), nil
		case int64:
			return float64(t), nil
		case uint64:
			return float64(t), nil
		default:
			return v, nil
		}
	case yaml.SequenceNode:
		list := make([]any, len(n.Content))
		for i, c := range n.Content {
			v, err := FromYAMLNode(c)
			if err != nil {
				return nil, err
			}
			list[i] = v
		}
		return list, nil
	case yaml.MappingNode:
		o := New()
		for i := 0; i+1 < len(n.Content); i += 2 {
			var key string
			if err := n.Content[i].Decode(&key); err != nil {
				return nil, err
			}
			v, err := FromYAMLNode(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			o.Set(key, v)
		}
		return o, nil
	default:
		return nil, fmt.Errorf("unsupported YAML node kind: %v", n.Kind)
	}
}

// ToYAMLNode converts a decoded value into a yaml.Node tree.
func ToYAMLNode(v any) (*yaml.Node, error) {
	switch t := v.(type) {
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(t)}, nil
	case float64:
		if t == math.Trunc(t) && math.Abs(t) < 1e15 {
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatFloat(t, 'f', -1, 64)}, nil
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: strconv.FormatFloat(t, 'g', -1, 64)}, nil
	case string:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: t}, nil
	case []any:
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, e := range t {
			c, err := ToYAMLNode(e)
			if err != nil {
				return nil, err
			}
			seq.Content = append(seq.Content, c)
		}
		return seq, nil
	case *Object:
		m := &yaml.Node{Kind: yaml.MappingNode}
		var convErr error
		t.Iter(func(key string, value any) bool {
			k := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
			c, err := ToYAMLNode(value)
			if err != nil {
				convErr = err
				return false
			}
			m.Content = append(m.Content, k, c)
			return true
		})
		if convErr != nil {
			return nil, convErr
		}
		return m, nil
	default:
		return nil, fmt.Errorf("value %T is outside the decoded value domain", v)
	}
}

func (o *Object) MarshalYAML() (interface{}, error) {
	return ToYAMLNode(o)
}

func (o *Object) UnmarshalYAML(node *yaml.Node) error {
	v, err := FromYAMLNode(node)
	if err != nil {
		return err
	}
	decoded, ok := v.(*Object)
	if !ok {
		return fmt.Errorf("expected a YAML mapping, got %T", v)
	}
	*o = *decoded
	return nil
}
