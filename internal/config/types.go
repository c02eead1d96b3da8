package config

import (
	"github.com/delvui/delvui/internal/theme"
	"github.com/delvui/delvui/internal/tokens"
)

// DefaultFilenames are the theme config files looked up in a project, in order.
var DefaultFilenames = []string{
	"delvui.theme.yaml",
	"delvui.theme.yml",
	"delvui.theme.json",
	"delvui.theme.toml",
}

// Frameworks lists the framework targets recognised by the CLI.
var Frameworks = []string{"react", "vue", "angular", "react-native", "vanilla", "none"}

// ThemeConfig represents a project theme configuration document.
type ThemeConfig struct {
	Version        string         `yaml:"version,omitempty" json:"version,omitempty" validate:"omitempty,semver"`
	Name           string         `yaml:"name" json:"name" validate:"required,min=1,max=100"`
	Description    string         `yaml:"description,omitempty" json:"description,omitempty"`
	Preset         string         `yaml:"preset,omitempty" json:"preset,omitempty" validate:"omitempty,preset_name"`
	Prefix         string         `yaml:"prefix,omitempty" json:"prefix,omitempty" validate:"omitempty,css_prefix"`
	Selector       string         `yaml:"selector,omitempty" json:"selector,omitempty"`
	Format         string         `yaml:"format,omitempty" json:"format,omitempty" validate:"omitempty,oneof=css scss js json ts"`
	Output         string         `yaml:"output,omitempty" json:"output,omitempty"`
	Framework      string         `yaml:"framework,omitempty" json:"framework,omitempty" validate:"omitempty,oneof=react vue angular react-native vanilla none"`
	Minify         bool           `yaml:"minify,omitempty" json:"minify,omitempty"`
	Customizations *Customization `yaml:"customizations,omitempty" json:"customizations,omitempty"`
	Overrides      theme.Override `yaml:"overrides,omitempty" json:"overrides,omitempty"`
}

// Customization holds the quick settings collected by `theme customize`.
type Customization struct {
	Name           string `yaml:"name,omitempty" json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	PrimaryColor   string `yaml:"primaryColor,omitempty" json:"primaryColor,omitempty" validate:"omitempty,hexcolor"`
	SecondaryColor string `yaml:"secondaryColor,omitempty" json:"secondaryColor,omitempty" validate:"omitempty,hexcolor"`
	BorderRadius   string `yaml:"borderRadius,omitempty" json:"borderRadius,omitempty" validate:"omitempty,css_length"`
}

// Override converts the customization into a theme override layer. The
// primary color lands on brand 500, the secondary color on neutral 600 and the
// radius on the button root.
func (c Customization) Override() theme.Override {
	var out theme.Override
	if c.PrimaryColor != "" || c.SecondaryColor != "" {
		out.Colors = tokens.Tree{}
	}
	if c.PrimaryColor != "" {
		out.Colors.Set([]string{"brand", "500"}, tokens.String(c.PrimaryColor))
	}
	if c.SecondaryColor != "" {
		out.Colors.Set([]string{"neutral", "600"}, tokens.String(c.SecondaryColor))
	}
	if c.BorderRadius != "" {
		out.Components = map[string]tokens.Tree{
			theme.ComponentButton: {"root": tokens.Tree{"borderRadius": tokens.String(c.BorderRadius)}},
		}
	}
	return out
}

// IsZero reports whether no customization is set.
func (c Customization) IsZero() bool {
	return c == Customization{}
}

// Layers returns the override layers the config contributes, in application order.
func (c *ThemeConfig) Layers() []theme.Override {
	if c == nil {
		return nil
	}

	var layers []theme.Override
	if c.Customizations != nil && !c.Customizations.IsZero() {
		layers = append(layers, c.Customizations.Override())
	}
	overrides := c.Overrides
	if overrides.CSSPrefix == "" && c.Prefix != "" {
		overrides.CSSPrefix = c.Prefix
	}
	if !isEmptyOverride(overrides) {
		layers = append(layers, overrides)
	}
	return layers
}

func isEmptyOverride(o theme.Override) bool {
	return o.Name == "" && o.Description == "" && o.CSSPrefix == "" &&
		len(o.Colors) == 0 && len(o.Components) == 0 && o.Metadata == nil && !o.HasReplacements()
}
