package intake

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jakechorley/project-prioritization/pkg/core/model"
	"github.com/jakechorley/project-prioritization/pkg/core/scoring"
)

// ErrCancelled is returned when the user leaves the wizard before submitting
var ErrCancelled = errors.New("intake cancelled")

// DefaultOption is the option highlighted when a criterion is first shown
const DefaultOption = 2

type step int

const (
	stepName step = iota
	stepLegal
	stepCriteria
	stepConfirm
	stepDone
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	sectionStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("170")).Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
)

// Model walks the user through one project submission. Every criterion is answered by
// picking one of its fixed descriptions, so the result always scores.
type Model struct {
	scales    []scoring.Scale
	name      textinput.Model
	legal     bool
	cursors   []int
	step      step
	criterion int
	cancelled bool
	err       string
}

// New returns a wizard with the name field focused and every criterion on the default option
func New() Model {
	name := textinput.New()
	name.Placeholder = "Nome do Projeto"
	name.CharLimit = 200
	name.Width = 60
	name.Focus()

	scales := scoring.Scales()
	cursors := make([]int, len(scales))
	for i := range cursors {
		cursors[i] = DefaultOption
	}

	return Model{
		scales:  scales,
		name:    name,
		cursors: cursors,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.step == stepName {
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
	case "shift+tab":
		m.back()
		return m, nil
	}

	switch m.step {
	case stepName:
		return m.updateName(key)
	case stepLegal:
		m.updateLegal(key)
	case stepCriteria:
		m.updateCriterion(key)
	case stepConfirm:
		switch key.String() {
		case "enter", "y":
			m.step = stepDone
			return m, tea.Quit
		case "n":
			m.step = stepName
			m.name.Focus()
		}
	}
	return m, nil
}

func (m Model) updateName(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Type == tea.KeyEnter {
		if strings.TrimSpace(m.name.Value()) == "" {
			m.err = "o nome do projeto é obrigatório"
			return m, nil
		}
		m.err = ""
		m.name.Blur()
		m.step = stepLegal
		return m, nil
	}

	var cmd tea.Cmd
	m.name, cmd = m.name.Update(key)
	return m, cmd
}

func (m *Model) updateLegal(key tea.KeyMsg) {
	switch key.String() {
	case "up", "down", "left", "right", "k", "j", "tab":
		m.legal = !m.legal
	case "y", "s":
		m.legal = true
	case "n":
		m.legal = false
	case "enter":
		m.step = stepCriteria
		m.criterion = 0
	}
}

func (m *Model) updateCriterion(key tea.KeyMsg) {
	cursor := &m.cursors[m.criterion]
	switch key.String() {
	case "up", "k":
		if *cursor > 0 {
			*cursor--
		}
	case "down", "j":
		if *cursor < scoring.OptionCount-1 {
			*cursor++
		}
	case "1", "2", "3", "4", "5":
		*cursor = int(key.Runes[0] - '1')
	case "enter":
		if m.criterion < len(m.scales)-1 {
			m.criterion++
		} else {
			m.step = stepConfirm
		}
	}
}

func (m *Model) back() {
	switch m.step {
	case stepLegal:
		m.step = stepName
		m.name.Focus()
	case stepCriteria:
		if m.criterion > 0 {
			m.criterion--
		} else {
			m.step = stepLegal
		}
	case stepConfirm:
		m.step = stepCriteria
		m.criterion = len(m.scales) - 1
	}
}

func (m Model) View() string {
	if m.step == stepDone || m.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Ferramenta de Priorização de Projetos"))
	b.WriteString("\n\n")

	switch m.step {
	case stepName:
		b.WriteString("Nome do Projeto\n")
		b.WriteString(m.name.View())
		b.WriteString("\n")
		if m.err != "" {
			b.WriteString(errorStyle.Render(m.err))
			b.WriteString("\n")
		}
	case stepLegal:
		b.WriteString("É uma Demanda Legal ou de Auditoria? (prioridade máxima)\n\n")
		b.WriteString(choice("Não", !m.legal))
		b.WriteString(choice("Sim", m.legal))
	case stepCriteria:
		scale := m.scales[m.criterion]
		header := "Critérios de Impacto"
		if scale.Axis == scoring.AxisEffort {
			header = "Critérios de Esforço"
		}
		b.WriteString(sectionStyle.Render(fmt.Sprintf("%s (%d/%d)", header, m.criterion+1, len(m.scales))))
		b.WriteString("\n")
		b.WriteString(scale.Title)
		b.WriteString("\n\n")
		for i, option := range scale.Options {
			b.WriteString(choice(option, i == m.cursors[m.criterion]))
		}
	case stepConfirm:
		p := m.Project()
		fmt.Fprintf(&b, "%s\n", p.Name)
		fmt.Fprintf(&b, "Demanda legal: %s\n\n", yesNo(p.IsLegalDemand))
		for _, scale := range m.scales {
			fmt.Fprintf(&b, "%s: %s\n", sectionStyle.Render(scale.Title), p.Answer(scale.Criterion))
		}
		b.WriteString("\nSalvar projeto? (enter/y para confirmar, n para recomeçar)\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ selecionar • enter avançar • shift+tab voltar • esc cancelar"))
	b.WriteString("\n")
	return b.String()
}

func choice(label string, selected bool) string {
	if selected {
		return selectedStyle.Render("> "+label) + "\n"
	}
	return "  " + label + "\n"
}

func yesNo(v bool) string {
	if v {
		return "Sim"
	}
	return "Não"
}

// Done reports whether the user confirmed the submission
func (m Model) Done() bool {
	return m.step == stepDone
}

// Cancelled reports whether the user left the wizard
func (m Model) Cancelled() bool {
	return m.cancelled
}

// Project returns the answers collected so far. ID, CreatedAt and Source are left to the caller.
func (m Model) Project() model.Project {
	p := model.Project{
		Name:          strings.TrimSpace(m.name.Value()),
		IsLegalDemand: m.legal,
	}
	for i, scale := range m.scales {
		p.SetAnswer(scale.Criterion, scale.Options[m.cursors[i]])
	}
	return p
}

// Run shows the wizard on the given terminal streams and returns the confirmed answers
func Run(in io.Reader, out io.Writer) (model.Project, error) {
	final, err := tea.NewProgram(New(), tea.WithInput(in), tea.WithOutput(out)).Run()
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to run intake form: %w", err)
	}

	m, ok := final.(Model)
	if !ok || !m.Done() {
		return model.Project{}, ErrCancelled
	}
	return m.Project(), nil
}
