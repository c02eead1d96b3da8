// Package cssvars flattens resolved themes into CSS custom properties and
// renders them as CSS rulesets.
package cssvars

import (
	"sort"
	"strings"
	"unicode"

	"github.com/delvui/delvui/internal/theme"
	"github.com/delvui/delvui/internal/tokens"
	delvuierrors "github.com/delvui/delvui/pkg/errors"
)

// DefaultPrefix is used when a theme carries no CSS prefix.
const DefaultPrefix = "delvui"

// colorNamespace is the segment inserted between the prefix and a palette path.
const colorNamespace = "color"

// Variables maps CSS custom property names, without the leading "--", to values.
type Variables map[string]string

// Names returns the variable names in sorted order.
func (v Variables) Names() []string {
	names := make([]string, 0, len(v))
	for name := range v {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NormalizePrefix strips leading dashes and falls back to DefaultPrefix.
func NormalizePrefix(prefix string) string {
	prefix = strings.TrimLeft(strings.TrimSpace(prefix), "-")
	if prefix == "" {
		return DefaultPrefix
	}
	return prefix
}

// ColorName returns the variable name for a palette path.
func ColorName(prefix string, path ...string) string {
	parts := make([]string, 0, len(path)+2)
	parts = append(parts, NormalizePrefix(prefix), colorNamespace)
	parts = append(parts, path...)
	return strings.Join(parts, "-")
}

// ComponentName returns the variable name for a path inside a component tree.
// Each path segment is converted to kebab case on its own.
func ComponentName(prefix, component string, path ...string) string {
	parts := make([]string, 0, len(path)+2)
	parts = append(parts, NormalizePrefix(prefix), component)
	for _, segment := range path {
		parts = append(parts, Kebab(segment))
	}
	return strings.Join(parts, "-")
}

// Kebab converts a camelCase segment to dash-lowercase. Digits and
// lowercase letters pass through unchanged.
func Kebab(segment string) string {
	var b strings.Builder
	b.Grow(len(segment) + 4)
	for i, r := range segment {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Flatten converts the colors and components of t into one variable map.
//
// Trees are walked in sorted key order. Two token paths that produce the same
// variable name fail with a VariableCollisionError naming both paths.
func Flatten(t theme.Theme) (Variables, error) {
	f := flattener{
		vars:    make(Variables, t.Leaves()),
		sources: make(map[string]string, t.Leaves()),
	}

	err := t.Colors.Walk(func(path []string, leaf tokens.Leaf) error {
		return f.add(ColorName(t.CSSPrefix, path...), "colors."+strings.Join(path, "."), leaf)
	})
	if err != nil {
		return nil, err
	}

	components := make([]string, 0, len(t.Components))
	for name := range t.Components {
		components = append(components, name)
	}
	sort.Strings(components)

	for _, component := range components {
		err := t.Components[component].Walk(func(path []string, leaf tokens.Leaf) error {
			source := "components." + component + "." + strings.Join(path, ".")
			return f.add(ComponentName(t.CSSPrefix, component, path...), source, leaf)
		})
		if err != nil {
			return nil, err
		}
	}

	return f.vars, nil
}

type flattener struct {
	vars    Variables
	sources map[string]string
}

func (f flattener) add(name, source string, leaf tokens.Leaf) error {
	if previous, exists := f.sources[name]; exists {
		return delvuierrors.NewVariableCollisionError(name, previous, source)
	}
	f.sources[name] = source
	f.vars[name] = leaf.String()
	return nil
}
