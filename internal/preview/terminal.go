package preview

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/delvui/delvui/internal/cssvars"
	"github.com/delvui/delvui/internal/theme"
)

const swatchWidth = 6

// Terminal writes a colored preview of t to w. Colors are only emitted when
// w supports them.
func Terminal(w io.Writer, t theme.Theme, vars cssvars.Variables) error {
	r := lipgloss.NewRenderer(w)
	s := newStyles(r)

	var b strings.Builder
	b.WriteString(s.title.Render(fmt.Sprintf("DelvUI Theme Preview: %s", t.Name)))
	b.WriteString("\n")
	if t.Description != "" {
		b.WriteString(s.muted.Render(t.Description))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(s.header.Render("Color Palette"))
	b.WriteString("\n")
	for _, p := range Palettes(t) {
		b.WriteString(renderPalette(r, s, p))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(s.header.Render("Buttons"))
	b.WriteString("\n")
	for _, group := range buttonGroups {
		row := renderButtons(r, group, Buttons(t, vars))
		if row == "" {
			continue
		}
		b.WriteString(row)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(s.muted.Render(fmt.Sprintf("%d variables, prefix --%s", len(vars), cssvars.NormalizePrefix(t.CSSPrefix))))
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

type styles struct {
	title  lipgloss.Style
	header lipgloss.Style
	label  lipgloss.Style
	muted  lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(0),
		header: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("245")),
		label: r.NewStyle().
			Width(20),
		muted: r.NewStyle().
			Foreground(lipgloss.Color("245")),
	}
}

func renderPalette(r *lipgloss.Renderer, s styles, p Palette) string {
	cells := make([]string, 0, len(p.Swatches))
	for _, sw := range p.Swatches {
		block := r.NewStyle().Width(swatchWidth).Align(lipgloss.Center)
		if IsHexColor(sw.Value) {
			block = block.Background(lipgloss.Color(sw.Value))
		}
		cells = append(cells, lipgloss.JoinVertical(lipgloss.Center,
			block.Render(" "),
			s.muted.Width(swatchWidth).Align(lipgloss.Center).Render(sw.Shade),
		))
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top, cells...)
	return lipgloss.JoinHorizontal(lipgloss.Top, s.label.Render(p.Name), row)
}

func renderButtons(r *lipgloss.Renderer, group string, samples []ButtonSample) string {
	var cells []string
	for _, sample := range samples {
		if sample.Group != group {
			continue
		}

		style := r.NewStyle().Padding(0, 2).MarginRight(1)
		if IsHexColor(sample.Background) {
			style = style.Background(lipgloss.Color(sample.Background))
		}
		if IsHexColor(sample.Color) {
			style = style.Foreground(lipgloss.Color(sample.Color))
		}
		if IsHexColor(sample.BorderColor) && group == "outlined" {
			style = style.Underline(true)
		}
		cells = append(cells, style.Render(sample.Label()))
	}
	if len(cells) == 0 {
		return ""
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}
