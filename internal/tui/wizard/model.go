// Package wizard implements the interactive theme flows. Model drives
// `theme customize` (a name, primary and secondary colors, and a button border
// radius); GenerateModel drives `theme generate --interactive` (a name, base
// preset, output format and target framework).
package wizard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/delvui/delvui/internal/config"
)

// ErrCancelled is returned by Run when the user leaves the wizard early.
var ErrCancelled = errors.New("customization cancelled")

// Defaults offered when an answer is left empty.
const (
	DefaultName           = "my-custom-theme"
	DefaultPrimaryColor   = "#0ea5e9"
	DefaultSecondaryColor = "#64748b"
)

// RadiusChoice is one entry of the border radius list.
type RadiusChoice struct {
	Label string
	Value string
}

// RadiusChoices are the radii offered by the wizard.
var RadiusChoices = []RadiusChoice{
	{Label: "Sharp", Value: "0px"},
	{Label: "Minimal", Value: "2px"},
	{Label: "Small", Value: "4px"},
	{Label: "Medium", Value: "6px"},
	{Label: "Large", Value: "8px"},
	{Label: "Round", Value: "16px"},
}

// defaultRadius points at Medium, the radius closest to the base theme.
const defaultRadius = 3

func radiusLabels() []string {
	labels := make([]string, len(RadiusChoices))
	for i, choice := range RadiusChoices {
		labels[i] = fmt.Sprintf("%s (%s)", choice.Label, choice.Value)
	}
	return labels
}

type step int

const (
	stepName step = iota
	stepPrimary
	stepSecondary
	stepRadius
	stepDone
)

const inputCount = int(stepRadius)

var prompts = [inputCount]string{
	"Custom theme name",
	"Primary color (hex)",
	"Secondary color (hex)",
}

var defaults = [inputCount]string{DefaultName, DefaultPrimaryColor, DefaultSecondaryColor}

// Model is the wizard state.
type Model struct {
	preset    string
	step      step
	inputs    [inputCount]textinput.Model
	radius    choiceList
	errMsg    string
	result    config.Customization
	cancelled bool
}

// New creates a wizard customizing preset.
func New(preset string) Model {
	m := Model{preset: preset, radius: newChoiceList(radiusLabels(), defaultRadius)}
	for i := range m.inputs {
		input := textinput.New()
		input.Placeholder = defaults[i]
		input.Prompt = "> "
		input.CharLimit = 100
		if i != int(stepName) {
			input.CharLimit = 7
		}
		m.inputs[i] = input
	}
	m.inputs[stepName].Focus()
	return m
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key presses.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.step < stepRadius {
			var cmd tea.Cmd
			m.inputs[m.step], cmd = m.inputs[m.step].Update(msg)
			return m, cmd
		}
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "esc":
		m.cancelled = true
		return m, tea.Quit
	}

	switch m.step {
	case stepName, stepPrimary, stepSecondary:
		return m.handleInputKeys(key)
	case stepRadius:
		return m.handleRadiusKeys(key)
	default:
		return m, nil
	}
}

func (m Model) handleInputKeys(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Type != tea.KeyEnter {
		var cmd tea.Cmd
		m.inputs[m.step], cmd = m.inputs[m.step].Update(key)
		return m, cmd
	}

	value := m.answer(m.step)
	if msg := validate(m.step, value); msg != "" {
		m.errMsg = msg
		return m, nil
	}

	m.errMsg = ""
	m.inputs[m.step].SetValue(value)
	m.inputs[m.step].Blur()
	m.step++
	if m.step < stepRadius {
		return m, m.inputs[m.step].Focus()
	}
	return m, nil
}

func (m Model) handleRadiusKeys(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Type != tea.KeyEnter {
		m.radius = m.radius.move(key.String())
		return m, nil
	}

	m.result = config.Customization{
		Name:           m.answer(stepName),
		PrimaryColor:   m.answer(stepPrimary),
		SecondaryColor: m.answer(stepSecondary),
		BorderRadius:   RadiusChoices[m.radius.cursor].Value,
	}
	m.step = stepDone
	return m, tea.Quit
}

// answer returns the typed value for s, or its default when left empty.
func (m Model) answer(s step) string {
	value := strings.TrimSpace(m.inputs[s].Value())
	if value == "" {
		return defaults[s]
	}
	return value
}

func validate(s step, value string) string {
	var c config.Customization
	switch s {
	case stepName:
		if strings.ContainsAny(value, `/\`) {
			return "Theme name cannot contain path separators"
		}
		c.Name = value
	case stepPrimary:
		c.PrimaryColor = value
	case stepSecondary:
		c.SecondaryColor = value
	}

	if err := config.ValidateCustomization(c); err != nil {
		if s == stepName {
			return "Please enter a name up to 100 characters"
		}
		return "Please enter a valid hex color"
	}
	return ""
}

// Done reports whether every answer was collected.
func (m Model) Done() bool {
	return m.step == stepDone
}

// Cancelled reports whether the user quit before finishing.
func (m Model) Cancelled() bool {
	return m.cancelled
}

// Result returns the collected customization once Done is true.
func (m Model) Result() config.Customization {
	return m.result
}

// Run drives the wizard on in/out until it finishes or ctx is cancelled.
func Run(ctx context.Context, preset string, in io.Reader, out io.Writer) (config.Customization, error) {
	p := tea.NewProgram(New(preset),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)

	final, err := p.Run()
	if err != nil {
		return config.Customization{}, err
	}

	m, ok := final.(Model)
	if !ok || m.Cancelled() || !m.Done() {
		return config.Customization{}, ErrCancelled
	}
	return m.Result(), nil
}
