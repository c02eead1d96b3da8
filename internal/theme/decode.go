package theme

import (
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/delvui/delvui/internal/tokens"
)

// UnmarshalYAML decodes an override and records `colors: !replace` and
// `components.<name>: !replace` roots.
func (o *Override) UnmarshalYAML(value *yaml.Node) error {
	type plain Override
	var decoded plain
	if err := value.Decode(&decoded); err != nil {
		return err
	}
	*o = Override(decoded)

	node := resolveAlias(value)
	if node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		child := node.Content[i+1]
		switch node.Content[i].Value {
		case "colors":
			if tokens.IsReplacementYAML(child) {
				o.markReplaced(colorsRoot)
			}
		case "components":
			components := resolveAlias(child)
			if components.Kind != yaml.MappingNode {
				continue
			}
			for j := 0; j+1 < len(components.Content); j += 2 {
				if tokens.IsReplacementYAML(components.Content[j+1]) {
					o.markReplaced(componentRoot(components.Content[j].Value))
				}
			}
		}
	}
	return nil
}

// UnmarshalJSON decodes an override and records colors or component roots
// wrapped in {"$replace": {...}}. TOML documents reach this through JSON.
func (o *Override) UnmarshalJSON(data []byte) error {
	type plain Override
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}

	var roots struct {
		Colors     json.RawMessage            `json:"colors"`
		Components map[string]json.RawMessage `json:"components"`
	}
	if err := json.Unmarshal(data, &roots); err != nil {
		return err
	}

	*o = Override(decoded)
	if tokens.IsReplacementJSON(roots.Colors) {
		o.markReplaced(colorsRoot)
	}
	for name, raw := range roots.Components {
		if tokens.IsReplacementJSON(raw) {
			o.markReplaced(componentRoot(name))
		}
	}
	return nil
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}
