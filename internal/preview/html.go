package preview

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/delvui/delvui/internal/cssvars"
	"github.com/delvui/delvui/internal/theme"
)

// HTML preview file names.
const (
	IndexFile = "index.html"
	CSSFile   = "theme.css"
)

var pageTemplate = template.Must(template.New("preview").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>DelvUI Theme Preview - {{.Name}}</title>
  <link rel="stylesheet" href="theme.css">
</head>
<body class="{{.Prefix}}-preview">
  <h1>DelvUI Theme Preview: {{.Name}}</h1>
{{- if .Description}}
  <p>{{.Description}}</p>
{{- end}}

  <section class="preview-section">
    <h2>Buttons</h2>
{{- range .ButtonRows}}
    <div class="button-grid">
{{- range .}}
      <button class="{{.Class}}">{{.Label}}</button>
{{- end}}
    </div>
{{- end}}
  </section>

  <section class="preview-section">
    <h2>Color Palette</h2>
{{- range .Palettes}}
    <h3>{{.Name}}</h3>
    <div class="swatch-grid">
{{- range .Swatches}}
      <div class="swatch" style="{{.Style}}"><span>{{.Shade}}</span><code>{{.Value}}</code></div>
{{- end}}
    </div>
{{- end}}
  </section>
</body>
</html>
`))

type page struct {
	Name        string
	Description string
	Prefix      string
	ButtonRows  [][]pageButton
	Palettes    []pagePalette
}

type pagePalette struct {
	Name     string
	Swatches []pageSwatch
}

type pageSwatch struct {
	Shade string
	Value string
	Style template.CSS
}

type pageButton struct {
	Class string
	Label string
}

// HTML renders the preview page. It links theme.css, produced by Stylesheet.
func HTML(t theme.Theme, vars cssvars.Variables) ([]byte, error) {
	prefix := cssvars.NormalizePrefix(t.CSSPrefix)
	p := page{
		Name:        t.Name,
		Description: t.Description,
		Prefix:      prefix,
	}

	for _, palette := range Palettes(t) {
		pp := pagePalette{Name: palette.Name}
		for _, sw := range palette.Swatches {
			pp.Swatches = append(pp.Swatches, pageSwatch{
				Shade: sw.Shade,
				Value: sw.Value,
				Style: template.CSS("background: var(" + sw.Variable + ")"),
			})
		}
		p.Palettes = append(p.Palettes, pp)
	}

	samples := Buttons(t, vars)
	for _, group := range buttonGroups {
		var row []pageButton
		for _, sample := range samples {
			if sample.Group == group {
				row = append(row, pageButton{Class: sample.Class(prefix), Label: sample.Label()})
			}
		}
		if len(row) > 0 {
			p.ButtonRows = append(p.ButtonRows, row)
		}
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, p); err != nil {
		return nil, fmt.Errorf("render preview page: %w", err)
	}
	return buf.Bytes(), nil
}

// Stylesheet renders the variables of t followed by the classes used by the
// preview page. Every class reads its values from the theme variables.
func Stylesheet(t theme.Theme, vars cssvars.Variables) string {
	prefix := cssvars.NormalizePrefix(t.CSSPrefix)
	button := prefix + "-button"
	v := func(path ...string) string {
		return "var(--" + cssvars.ComponentName(prefix, theme.ComponentButton, path...) + ")"
	}

	var b strings.Builder
	b.WriteString(cssvars.Emit(vars, cssvars.DefaultSelector))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "body { font-family: system-ui, sans-serif; padding: 2rem; background: var(--%s, #fafafa); }\n",
		cssvars.ColorName(prefix, "neutral", "50"))
	b.WriteString(".preview-section { margin: 2rem 0; padding: 1rem; border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }\n")
	b.WriteString(".button-grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(150px, 1fr)); gap: 1rem; margin: 1rem 0; }\n")
	b.WriteString(".swatch-grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(90px, 1fr)); gap: 0.5rem; }\n")
	b.WriteString(".swatch { display: flex; flex-direction: column; justify-content: flex-end; height: 4rem; padding: 0.25rem; border-radius: 4px; font-size: 0.75rem; }\n\n")

	fmt.Fprintf(&b, ".%s {\n", button)
	fmt.Fprintf(&b, "  display: inline-flex;\n  align-items: center;\n  justify-content: center;\n")
	fmt.Fprintf(&b, "  gap: %s;\n", v("root", "gap"))
	fmt.Fprintf(&b, "  padding: %s %s;\n", v("root", "paddingY"), v("root", "paddingX"))
	fmt.Fprintf(&b, "  font-size: %s;\n", v("root", "fontSize"))
	fmt.Fprintf(&b, "  font-weight: %s;\n", v("root", "fontWeight"))
	fmt.Fprintf(&b, "  border-radius: %s;\n", v("root", "borderRadius"))
	fmt.Fprintf(&b, "  border: %s %s transparent;\n", v("root", "borderWidth"), v("root", "borderStyle"))
	fmt.Fprintf(&b, "  transition-duration: %s;\n", v("root", "transitionDuration"))
	b.WriteString("  cursor: pointer;\n}\n")

	for _, sample := range Buttons(t, vars) {
		modifier := cssvars.Kebab(sample.Variant)
		if sample.Group != "root" {
			modifier = cssvars.Kebab(sample.Group) + "-" + modifier
		}
		fmt.Fprintf(&b, "\n.%s--%s {\n", button, modifier)
		fmt.Fprintf(&b, "  background: %s;\n", v(sample.Group, sample.Variant, "background"))
		fmt.Fprintf(&b, "  color: %s;\n", v(sample.Group, sample.Variant, "color"))
		if sample.BorderColor != "" {
			fmt.Fprintf(&b, "  border-color: %s;\n", v(sample.Group, sample.Variant, "borderColor"))
		}
		b.WriteString("}\n")
	}

	return b.String()
}

// WriteHTML writes index.html and theme.css into dir and returns the page path.
func WriteHTML(dir string, t theme.Theme, vars cssvars.Variables) (string, error) {
	page, err := HTML(t, vars)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create preview directory: %w", err)
	}

	css := filepath.Join(dir, CSSFile)
	if err := os.WriteFile(css, []byte(Stylesheet(t, vars)), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", css, err)
	}

	index := filepath.Join(dir, IndexFile)
	if err := os.WriteFile(index, page, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", index, err)
	}
	return index, nil
}
