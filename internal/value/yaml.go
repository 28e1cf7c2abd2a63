package value

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML builds a Value straight from the YAML node tree so number
// literals, null and nested mappings keep their shape.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := fromNode(node)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// MarshalYAML renders v as a YAML node with sorted mapping keys
func (v Value) MarshalYAML() (any, error) {
	return v.toNode(), nil
}

func fromNode(node *yaml.Node) (Value, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return Null(), nil
		}
		return fromNode(node.Content[0])
	case yaml.AliasNode:
		return fromNode(node.Alias)
	case yaml.SequenceNode:
		arr := make([]Value, len(node.Content))
		for i, child := range node.Content {
			item, err := fromNode(child)
			if err != nil {
				return Value{}, err
			}
			arr[i] = item
		}
		return Value{kind: KindArray, arr: arr}, nil
	case yaml.MappingNode:
		obj := make(map[string]Value, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode := node.Content[i]
			if keyNode.Kind != yaml.ScalarNode {
				return Value{}, fmt.Errorf("line %d: mapping keys must be scalars", keyNode.Line)
			}
			item, err := fromNode(node.Content[i+1])
			if err != nil {
				return Value{}, err
			}
			obj[keyNode.Value] = item
		}
		return Value{kind: KindObject, obj: obj}, nil
	case yaml.ScalarNode:
		return fromScalar(node)
	default:
		return Value{}, fmt.Errorf("line %d: unsupported YAML node", node.Line)
	}
}

func fromScalar(node *yaml.Node) (Value, error) {
	switch node.ShortTag() {
	case "!!null":
		return Null(), nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return Value{}, err
		}
		return Bool(b), nil
	case "!!int":
		if IsNumberLiteral(node.Value) {
			return Value{kind: KindNumber, s: node.Value}, nil
		}
		// 0x1F, 0o17, 1_000 and friends
		var n int64
		if err := node.Decode(&n); err != nil {
			return Value{}, err
		}
		return Int(n), nil
	case "!!float":
		if IsNumberLiteral(node.Value) {
			return Value{kind: KindNumber, s: node.Value}, nil
		}
		var f float64
		if err := node.Decode(&f); err != nil {
			return Value{}, err
		}
		v, err := Float(f)
		if err != nil {
			return Value{}, fmt.Errorf("line %d: %w", node.Line, err)
		}
		return v, nil
	default:
		// !!str, !!timestamp, !!binary and custom tags stay textual
		return String(node.Value), nil
	}
}

func (v Value) toNode() *yaml.Node {
	switch v.kind {
	case KindNull:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	case KindBool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v.b)}
	case KindNumber:
		tag := "!!float"
		if _, err := strconv.ParseInt(v.s, 10, 64); err == nil {
			tag = "!!int"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: v.s}
	case KindString:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.s}
	case KindArray:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.arr {
			node.Content = append(node.Content, item.toNode())
		}
		return node
	case KindObject:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, k := range v.Keys() {
			node.Content = append(node.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
				v.obj[k].toNode(),
			)
		}
		return node
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}
