package wizard

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// GenerateAnswers are the choices collected by the interactive generate flow.
type GenerateAnswers struct {
	Name      string
	Preset    string
	Format    string
	Framework string
}

// GenerateOptions lists what the generate flow offers. Each Default* value
// preselects the matching entry.
type GenerateOptions struct {
	Presets          []string
	Formats          []string
	Frameworks       []string
	DefaultPreset    string
	DefaultFormat    string
	DefaultFramework string
}

type generateStep int

const (
	genName generateStep = iota
	genPreset
	genFormat
	genFramework
	genDone
)

var generatePrompts = map[generateStep]string{
	genPreset:    "Base preset",
	genFormat:    "Output format",
	genFramework: "Target framework",
}

// GenerateModel is the state of `theme generate --interactive`.
type GenerateModel struct {
	step      generateStep
	name      textinput.Model
	lists     [genDone - genPreset]choiceList
	errMsg    string
	result    GenerateAnswers
	cancelled bool
}

// NewGenerate creates the generate flow.
func NewGenerate(opts GenerateOptions) GenerateModel {
	name := textinput.New()
	name.Placeholder = DefaultName
	name.Prompt = "> "
	name.CharLimit = 100
	name.Focus()

	return GenerateModel{
		name: name,
		lists: [genDone - genPreset]choiceList{
			newChoiceList(opts.Presets, indexOf(opts.Presets, opts.DefaultPreset)),
			newChoiceList(opts.Formats, indexOf(opts.Formats, opts.DefaultFormat)),
			newChoiceList(opts.Frameworks, indexOf(opts.Frameworks, opts.DefaultFramework)),
		},
	}
}

// Init starts the cursor blink.
func (m GenerateModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key presses.
func (m GenerateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.step == genName {
			var cmd tea.Cmd
			m.name, cmd = m.name.Update(msg)
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
	case genName:
		return m.handleNameKeys(key)
	case genPreset, genFormat, genFramework:
		return m.handleListKeys(key)
	default:
		return m, nil
	}
}

func (m GenerateModel) handleNameKeys(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Type != tea.KeyEnter {
		var cmd tea.Cmd
		m.name, cmd = m.name.Update(key)
		return m, cmd
	}

	value := m.nameAnswer()
	if msg := validate(stepName, value); msg != "" {
		m.errMsg = msg
		return m, nil
	}

	m.errMsg = ""
	m.name.SetValue(value)
	m.name.Blur()
	m.step = genPreset
	return m, nil
}

func (m GenerateModel) handleListKeys(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Type != tea.KeyEnter {
		m.lists[m.step-genPreset] = m.list(m.step).move(key.String())
		return m, nil
	}

	m.step++
	if m.step < genDone {
		return m, nil
	}

	m.result = GenerateAnswers{
		Name:      m.nameAnswer(),
		Preset:    m.list(genPreset).selected(),
		Format:    m.list(genFormat).selected(),
		Framework: m.list(genFramework).selected(),
	}
	return m, tea.Quit
}

func (m GenerateModel) list(s generateStep) choiceList {
	return m.lists[s-genPreset]
}

func (m GenerateModel) nameAnswer() string {
	value := strings.TrimSpace(m.name.Value())
	if value == "" {
		return DefaultName
	}
	return value
}

// Done reports whether every answer was collected.
func (m GenerateModel) Done() bool {
	return m.step == genDone
}

// Cancelled reports whether the user quit before finishing.
func (m GenerateModel) Cancelled() bool {
	return m.cancelled
}

// Result returns the collected answers once Done is true.
func (m GenerateModel) Result() GenerateAnswers {
	return m.result
}

// RunGenerate drives the generate flow on in/out until it finishes or ctx is cancelled.
func RunGenerate(ctx context.Context, opts GenerateOptions, in io.Reader, out io.Writer) (GenerateAnswers, error) {
	p := tea.NewProgram(NewGenerate(opts),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)

	final, err := p.Run()
	if err != nil {
		return GenerateAnswers{}, err
	}

	m, ok := final.(GenerateModel)
	if !ok || m.Cancelled() || !m.Done() {
		return GenerateAnswers{}, ErrCancelled
	}
	return m.Result(), nil
}
