// Package preview renders a resolved theme for humans: palette swatches and
// button samples in the terminal, or a small static page for the browser.
package preview

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/delvui/delvui/internal/cssvars"
	"github.com/delvui/delvui/internal/theme"
	"github.com/delvui/delvui/internal/tokens"
)

// maxIndirections bounds var() chains so cyclic references terminate.
const maxIndirections = 8

var (
	varRefRegex   = regexp.MustCompile(`^var\(\s*--([^,\s)]+)\s*(?:,\s*(.+?))?\s*\)$`)
	hexColorRegex = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
)

// buttonGroups are the button token trees that hold variant samples, in
// display order.
var buttonGroups = []string{"root", "outlined", "text"}

// Swatch is a single color token.
type Swatch struct {
	Shade    string
	Variable string
	Value    string
}

// Palette groups the swatches sharing a parent tree, such as "brand" or
// "semantic.success".
type Palette struct {
	Name     string
	Swatches []Swatch
}

// ButtonSample describes one button variant with its colors resolved through
// var() references where possible.
type ButtonSample struct {
	Group       string
	Variant     string
	Background  string
	Color       string
	BorderColor string
}

// Label is the human readable sample name, e.g. "Outlined Primary".
func (b ButtonSample) Label() string {
	variant := title(b.Variant)
	if b.Group == "root" {
		return variant
	}
	return title(b.Group) + " " + variant
}

// Class lists the CSS classes the HTML preview uses for the sample.
func (b ButtonSample) Class(prefix string) string {
	base := cssvars.NormalizePrefix(prefix) + "-button"
	if b.Group == "root" {
		return base + " " + base + "--" + cssvars.Kebab(b.Variant)
	}
	return base + " " + base + "--" + cssvars.Kebab(b.Group) + "-" + cssvars.Kebab(b.Variant)
}

// Palettes groups the color tokens of t by parent path. Groups follow the
// sorted token order and numeric shades sort numerically.
func Palettes(t theme.Theme) []Palette {
	var out []Palette
	index := make(map[string]int)

	_ = t.Colors.Walk(func(path []string, leaf tokens.Leaf) error {
		group := strings.Join(path[:len(path)-1], ".")
		if group == "" {
			group = path[0]
		}
		i, ok := index[group]
		if !ok {
			i = len(out)
			index[group] = i
			out = append(out, Palette{Name: group})
		}
		out[i].Swatches = append(out[i].Swatches, Swatch{
			Shade:    path[len(path)-1],
			Variable: "--" + cssvars.ColorName(t.CSSPrefix, path...),
			Value:    leaf.String(),
		})
		return nil
	})

	for _, p := range out {
		sort.SliceStable(p.Swatches, func(i, j int) bool {
			return shadeLess(p.Swatches[i].Shade, p.Swatches[j].Shade)
		})
	}
	return out
}

// Buttons lists the button variants of t that define both a background and
// a text color.
func Buttons(t theme.Theme, vars cssvars.Variables) []ButtonSample {
	button := t.Button()

	var out []ButtonSample
	for _, group := range buttonGroups {
		node, ok := button.Get(group)
		if !ok {
			continue
		}
		variants, ok := node.(tokens.Tree)
		if !ok {
			continue
		}
		for _, name := range variants.Keys() {
			variant, ok := variants[name].(tokens.Tree)
			if !ok {
				continue
			}
			background, hasBackground := leafValue(variant, "background")
			color, hasColor := leafValue(variant, "color")
			if !hasBackground || !hasColor {
				continue
			}
			border, _ := leafValue(variant, "borderColor")

			out = append(out, ButtonSample{
				Group:       group,
				Variant:     name,
				Background:  ResolveValue(background, vars),
				Color:       ResolveValue(color, vars),
				BorderColor: ResolveValue(border, vars),
			})
		}
	}
	return out
}

// ResolveValue follows var(--name) references through vars. An unknown
// reference falls back to its default when one is given; otherwise the
// reference is returned unchanged.
func ResolveValue(value string, vars cssvars.Variables) string {
	for i := 0; i < maxIndirections; i++ {
		m := varRefRegex.FindStringSubmatch(strings.TrimSpace(value))
		if m == nil {
			return value
		}
		if next, ok := vars[m[1]]; ok {
			value = next
			continue
		}
		if m[2] != "" {
			value = m[2]
			continue
		}
		return value
	}
	return value
}

// IsHexColor reports whether value is a #rgb or #rrggbb color.
func IsHexColor(value string) bool {
	return hexColorRegex.MatchString(value)
}

func leafValue(t tokens.Tree, key string) (string, bool) {
	leaf, ok := t[key].(tokens.Leaf)
	if !ok {
		return "", false
	}
	return leaf.String(), true
}

func shadeLess(a, b string) bool {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	switch {
	case errA == nil && errB == nil:
		return na < nb
	case errA == nil:
		return true
	case errB == nil:
		return false
	default:
		return a < b
	}
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
