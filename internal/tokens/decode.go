package tokens

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"gopkg.in/yaml.v3"

	delvuierrors "github.com/delvui/delvui/pkg/errors"
)

// ReplaceTag marks a YAML mapping as a wholesale replacement.
const ReplaceTag = "!replace"

// ReplaceKey marks a JSON or TOML table as a wholesale replacement:
// {"$replace": {...}}.
const ReplaceKey = "$replace"

// UnmarshalYAML decodes a mapping node into a token tree. Non-scalar leaves
// and scalars that are not strings or numbers are rejected with a
// TokenValueError annotated with the source line.
func (t *Tree) UnmarshalYAML(value *yaml.Node) error {
	tree, err := fromYAML(value, "")
	if err != nil {
		return err
	}
	*t = tree
	return nil
}

// UnmarshalJSON decodes a JSON object into a token tree.
func (t *Tree) UnmarshalJSON(data []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var raw map[string]any
	if err := decoder.Decode(&raw); err != nil {
		return err
	}
	tree, err := FromMap(raw)
	if err != nil {
		return err
	}
	*t = tree
	return nil
}

func fromYAML(node *yaml.Node, path string) (Tree, error) {
	node = resolveAlias(node)
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = resolveAlias(node.Content[0])
	}
	if node.Kind != yaml.MappingNode {
		return nil, lineError(node, delvuierrors.NewTokenValueError(displayPath(path), describeYAML(node)))
	}

	tree := make(Tree, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		child, err := yamlNode(node.Content[i+1], joinPath(path, key))
		if err != nil {
			return nil, err
		}
		tree[key] = child
	}
	return tree, nil
}

func yamlNode(node *yaml.Node, path string) (Node, error) {
	tag := node.Tag
	node = resolveAlias(node)

	switch node.Kind {
	case yaml.MappingNode:
		sub, err := fromYAML(node, path)
		if err != nil {
			return nil, err
		}
		if tag == ReplaceTag {
			return Replacement(sub), nil
		}
		return sub, nil
	case yaml.ScalarNode:
		return yamlScalar(node, path)
	default:
		return nil, lineError(node, delvuierrors.NewTokenValueError(path, describeYAML(node)))
	}
}

func yamlScalar(node *yaml.Node, path string) (Node, error) {
	switch node.ShortTag() {
	case "!!str":
		return String(node.Value), nil
	case "!!int", "!!float":
		var number float64
		if err := node.Decode(&number); err != nil {
			return nil, lineError(node, delvuierrors.NewTokenValueError(path, node.Value))
		}
		if math.IsInf(number, 0) || math.IsNaN(number) {
			return nil, lineError(node, delvuierrors.NewTokenValueError(path, number))
		}
		return Number(number), nil
	default:
		var decoded any
		if err := node.Decode(&decoded); err != nil {
			decoded = node.Value
		}
		return nil, lineError(node, delvuierrors.NewTokenValueError(path, decoded))
	}
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

func describeYAML(node *yaml.Node) any {
	switch node.Kind {
	case yaml.SequenceNode:
		return []any{}
	case yaml.ScalarNode:
		return node.Value
	default:
		return nil
	}
}

func lineError(node *yaml.Node, err error) error {
	if node.Line == 0 {
		return err
	}
	return fmt.Errorf("line %d: %w", node.Line, err)
}

// FromMap converts a generic decoded document (JSON, TOML) into a token tree.
// A root wrapped in {"$replace": {...}} is unwrapped; use FromMapRoot to learn
// whether it was.
func FromMap(raw map[string]any) (Tree, error) {
	tree, _, err := FromMapRoot(raw)
	return tree, err
}

// FromMapRoot is FromMap that also reports whether the root itself was marked
// as a wholesale replacement.
func FromMapRoot(raw map[string]any) (Tree, bool, error) {
	if inner, ok := replacementBody(raw); ok {
		tree, err := fromMap(inner, "")
		return tree, true, err
	}
	tree, err := fromMap(raw, "")
	return tree, false, err
}

// IsReplacementJSON reports whether data is an object of the form
// {"$replace": {...}}.
func IsReplacementJSON(data []byte) bool {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil || len(raw) != 1 {
		return false
	}
	body, ok := raw[ReplaceKey]
	if !ok {
		return false
	}
	body = bytes.TrimSpace(body)
	return len(body) > 0 && body[0] == '{'
}

// IsReplacementYAML reports whether node is a mapping tagged !replace.
func IsReplacementYAML(node *yaml.Node) bool {
	if node == nil || node.Tag != ReplaceTag {
		return false
	}
	return resolveAlias(node).Kind == yaml.MappingNode
}

func fromMap(raw map[string]any, path string) (Tree, error) {
	tree := make(Tree, len(raw))
	for key, value := range raw {
		if key == ReplaceKey {
			// Only valid as the single key of a table.
			return nil, delvuierrors.NewTokenValueError(joinPath(path, key), value)
		}
		node, err := fromValue(value, joinPath(path, key))
		if err != nil {
			return nil, err
		}
		tree[key] = node
	}
	return tree, nil
}

func fromValue(value any, path string) (Node, error) {
	switch v := value.(type) {
	case string:
		return String(v), nil
	case json.Number:
		number, err := v.Float64()
		if err != nil {
			return nil, delvuierrors.NewTokenValueError(path, v.String())
		}
		return Number(number), nil
	case float64:
		return finite(v, path)
	case float32:
		return finite(float64(v), path)
	case int:
		return Number(float64(v)), nil
	case int64:
		return Number(float64(v)), nil
	case int32:
		return Number(float64(v)), nil
	case uint64:
		return Number(float64(v)), nil
	case map[string]any:
		if inner, ok := replacementBody(v); ok {
			sub, err := fromMap(inner, path)
			if err != nil {
				return nil, err
			}
			return Replacement(sub), nil
		}
		return fromMap(v, path)
	default:
		return nil, delvuierrors.NewTokenValueError(path, value)
	}
}

func replacementBody(m map[string]any) (map[string]any, bool) {
	if len(m) != 1 {
		return nil, false
	}
	inner, ok := m[ReplaceKey].(map[string]any)
	return inner, ok
}

func finite(value float64, path string) (Node, error) {
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return nil, delvuierrors.NewTokenValueError(path, value)
	}
	return Number(value), nil
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func displayPath(path string) string {
	if path == "" {
		return "(root)"
	}
	return path
}
