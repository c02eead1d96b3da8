package wizard

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1)

	promptStyle = lipgloss.NewStyle().
			Bold(true)

	answerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)
)

// View renders the wizard.
func (m Model) View() string {
	if m.Done() || m.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Interactive Theme Customization"))
	b.WriteString("\n")
	if m.preset != "" {
		b.WriteString(mutedStyle.Render("Using base theme: " + m.preset))
		b.WriteString("\n\n")
	}

	for i := stepName; i < stepRadius && i <= m.step; i++ {
		b.WriteString(promptStyle.Render(prompts[i] + ":"))
		if i < m.step {
			b.WriteString(" ")
			b.WriteString(answerStyle.Render(m.answer(i)))
			b.WriteString("\n")
			continue
		}
		b.WriteString("\n")
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}

	if m.step == stepRadius {
		b.WriteString(promptStyle.Render("Button border radius:"))
		b.WriteString("\n")
		m.radius.render(&b)
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	help := "enter: confirm • esc: cancel"
	if m.step == stepRadius {
		help = "↑/↓: choose • " + help
	}
	b.WriteString(mutedStyle.Render(help))
	return b.String()
}

// View renders the generate flow.
func (m GenerateModel) View() string {
	if m.Done() || m.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Interactive Theme Generation"))
	b.WriteString("\n")

	b.WriteString(promptStyle.Render("Theme name:"))
	if m.step == genName {
		b.WriteString("\n")
		b.WriteString(m.name.View())
		b.WriteString("\n")
	} else {
		b.WriteString(" ")
		b.WriteString(answerStyle.Render(m.nameAnswer()))
		b.WriteString("\n")
	}

	for s := genPreset; s <= m.step && s < genDone; s++ {
		list := m.list(s)
		b.WriteString(promptStyle.Render(generatePrompts[s] + ":"))
		if s < m.step {
			b.WriteString(" ")
			b.WriteString(answerStyle.Render(list.selected()))
			b.WriteString("\n")
			continue
		}
		b.WriteString("\n")
		list.render(&b)
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	help := "enter: confirm • esc: cancel"
	if m.step != genName {
		help = "↑/↓: choose • " + help
	}
	b.WriteString(mutedStyle.Render(help))
	return b.String()
}
