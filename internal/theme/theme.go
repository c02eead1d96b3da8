// Package theme defines resolved DelvUI themes, the sparse override layers
// applied on top of them, and the composition that merges the two.
package theme

import (
	"github.com/delvui/delvui/internal/tokens"
)

// ComponentButton is the only component token tree every theme must supply.
const ComponentButton = "button"

// Theme is a fully resolved token set.
type Theme struct {
	Name        string                 `yaml:"name" json:"name"`
	Version     string                 `yaml:"version" json:"version"`
	Description string                 `yaml:"description,omitempty" json:"description,omitempty"`
	Colors      tokens.Tree            `yaml:"colors" json:"colors"`
	Components  map[string]tokens.Tree `yaml:"components" json:"components"`
	CSSPrefix   string                 `yaml:"cssPrefix" json:"cssPrefix"`
	Metadata    Metadata               `yaml:"metadata" json:"metadata"`
}

// Metadata describes a theme for listings and tooling.
type Metadata struct {
	DarkMode    bool     `yaml:"darkMode" json:"darkMode"`
	ColorScheme string   `yaml:"colorScheme" json:"colorScheme"`
	Author      string   `yaml:"author,omitempty" json:"author,omitempty"`
	License     string   `yaml:"license,omitempty" json:"license,omitempty"`
	Tags        []string `yaml:"tags,omitempty" json:"tags,omitempty"`
}

// Override is a sparse layer over a Theme. Empty fields leave the underlying
// value untouched.
type Override struct {
	Name        string                 `yaml:"name,omitempty" json:"name,omitempty"`
	Description string                 `yaml:"description,omitempty" json:"description,omitempty"`
	CSSPrefix   string                 `yaml:"cssPrefix,omitempty" json:"cssPrefix,omitempty"`
	Colors      tokens.Tree            `yaml:"colors,omitempty" json:"colors,omitempty"`
	Components  map[string]tokens.Tree `yaml:"components,omitempty" json:"components,omitempty"`
	Metadata    *MetadataOverride      `yaml:"metadata,omitempty" json:"metadata,omitempty"`

	// replaced holds the roots ("colors", "components.<name>") that replace
	// the underlying tree instead of merging into it.
	replaced map[string]bool
}

const colorsRoot = "colors"

func componentRoot(name string) string {
	return "components." + name
}

// ReplaceColors sets the palette and marks it as a wholesale replacement.
func (o *Override) ReplaceColors(tree tokens.Tree) {
	o.Colors = tree
	o.markReplaced(colorsRoot)
}

// ReplaceComponent sets a component tree and marks it as a wholesale replacement.
func (o *Override) ReplaceComponent(name string, tree tokens.Tree) {
	if tree == nil {
		tree = tokens.Tree{}
	}
	if o.Components == nil {
		o.Components = make(map[string]tokens.Tree)
	}
	o.Components[name] = tree
	o.markReplaced(componentRoot(name))
}

// ReplacesColors reports whether the palette replaces the underlying one.
func (o Override) ReplacesColors() bool {
	return o.replaced[colorsRoot]
}

// ReplacesComponent reports whether the named component tree replaces the underlying one.
func (o Override) ReplacesComponent(name string) bool {
	return o.replaced[componentRoot(name)]
}

// HasReplacements reports whether any root is marked as a replacement.
func (o Override) HasReplacements() bool {
	return len(o.replaced) > 0
}

func (o *Override) markReplaced(root string) {
	if o.replaced == nil {
		o.replaced = make(map[string]bool)
	}
	o.replaced[root] = true
}

// MetadataOverride is the sparse form of Metadata. A non-nil Tags slice
// replaces the base tags wholesale.
type MetadataOverride struct {
	DarkMode    *bool    `yaml:"darkMode,omitempty" json:"darkMode,omitempty"`
	ColorScheme *string  `yaml:"colorScheme,omitempty" json:"colorScheme,omitempty" validate:"omitempty,oneof=light dark auto"`
	Author      *string  `yaml:"author,omitempty" json:"author,omitempty"`
	License     *string  `yaml:"license,omitempty" json:"license,omitempty"`
	Tags        []string `yaml:"tags,omitempty" json:"tags,omitempty"`
}

// Clone returns a deep copy of t.
func (t Theme) Clone() Theme {
	out := t
	out.Colors = t.Colors.Plain()
	if t.Components != nil {
		out.Components = make(map[string]tokens.Tree, len(t.Components))
		for name, tree := range t.Components {
			out.Components[name] = tree.Plain()
		}
	}
	if t.Metadata.Tags != nil {
		out.Metadata.Tags = append([]string(nil), t.Metadata.Tags...)
	}
	return out
}

// Clone returns a deep copy of o.
func (o Override) Clone() Override {
	out := o
	out.Colors = o.Colors.Clone()
	if o.Components != nil {
		out.Components = make(map[string]tokens.Tree, len(o.Components))
		for name, tree := range o.Components {
			out.Components[name] = tree.Clone()
		}
	}
	if o.Metadata != nil {
		meta := o.Metadata.clone()
		out.Metadata = &meta
	}
	if o.replaced != nil {
		out.replaced = make(map[string]bool, len(o.replaced))
		for root := range o.replaced {
			out.replaced[root] = true
		}
	}
	return out
}

func (m MetadataOverride) clone() MetadataOverride {
	out := MetadataOverride{Tags: m.Tags}
	if m.Tags != nil {
		out.Tags = append([]string(nil), m.Tags...)
	}
	if m.DarkMode != nil {
		v := *m.DarkMode
		out.DarkMode = &v
	}
	out.ColorScheme = cloneString(m.ColorScheme)
	out.Author = cloneString(m.Author)
	out.License = cloneString(m.License)
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// Button returns the button token tree.
func (t Theme) Button() tokens.Tree {
	return t.Components[ComponentButton]
}

// Leaves counts the color and component leaves of t.
func (t Theme) Leaves() int {
	count := t.Colors.Leaves()
	for _, tree := range t.Components {
		count += tree.Leaves()
	}
	return count
}

// Equal reports whether two themes hold the same values.
func Equal(a, b Theme) bool {
	if a.Name != b.Name || a.Version != b.Version || a.Description != b.Description || a.CSSPrefix != b.CSSPrefix {
		return false
	}
	if !metadataEqual(a.Metadata, b.Metadata) {
		return false
	}
	if !tokens.Equal(a.Colors, b.Colors) {
		return false
	}
	if len(a.Components) != len(b.Components) {
		return false
	}
	for name, tree := range a.Components {
		other, ok := b.Components[name]
		if !ok || !tokens.Equal(tree, other) {
			return false
		}
	}
	return true
}

func metadataEqual(a, b Metadata) bool {
	if a.DarkMode != b.DarkMode || a.ColorScheme != b.ColorScheme || a.Author != b.Author || a.License != b.License {
		return false
	}
	if len(a.Tags) != len(b.Tags) {
		return false
	}
	for i := range a.Tags {
		if a.Tags[i] != b.Tags[i] {
			return false
		}
	}
	return true
}
