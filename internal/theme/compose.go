package theme

import (
	"github.com/delvui/delvui/internal/tokens"
	delvuierrors "github.com/delvui/delvui/pkg/errors"
)

// Validate checks the invariants of a resolved theme: a non-empty colors tree
// and a non-empty button component tree.
func Validate(t Theme) error {
	if len(t.Colors) == 0 {
		return delvuierrors.NewInvalidThemeError(t.Name, "colors", "required token tree is missing")
	}
	if len(t.Button()) == 0 {
		return delvuierrors.NewInvalidThemeError(t.Name, "components."+ComponentButton, "required token tree is missing")
	}
	return nil
}

// Compose layers overrides onto base from left to right and returns a new
// theme. Later overrides win. Neither base nor the overrides are modified.
func Compose(base Theme, overrides ...Override) (Theme, error) {
	if err := Validate(base); err != nil {
		return Theme{}, err
	}

	out := base.Clone()
	for _, override := range overrides {
		apply(&out, override)
	}

	if err := Validate(out); err != nil {
		return Theme{}, err
	}
	return out, nil
}

func apply(t *Theme, o Override) {
	if o.Name != "" {
		t.Name = o.Name
	}
	if o.Description != "" {
		t.Description = o.Description
	}
	if o.CSSPrefix != "" {
		t.CSSPrefix = o.CSSPrefix
	}

	switch {
	case o.ReplacesColors():
		t.Colors = o.Colors.Plain()
	case len(o.Colors) > 0:
		t.Colors = tokens.Merge(t.Colors, o.Colors)
	}

	for name, tree := range o.Components {
		if t.Components == nil {
			t.Components = make(map[string]tokens.Tree)
		}
		if o.ReplacesComponent(name) {
			t.Components[name] = tree.Plain()
			continue
		}
		t.Components[name] = tokens.Merge(t.Components[name], tree)
	}

	if o.Metadata != nil {
		applyMetadata(&t.Metadata, *o.Metadata)
	}
}

func applyMetadata(m *Metadata, o MetadataOverride) {
	if o.DarkMode != nil {
		m.DarkMode = *o.DarkMode
	}
	if o.ColorScheme != nil {
		m.ColorScheme = *o.ColorScheme
	}
	if o.Author != nil {
		m.Author = *o.Author
	}
	if o.License != nil {
		m.License = *o.License
	}
	if o.Tags != nil {
		m.Tags = append([]string(nil), o.Tags...)
	}
}
