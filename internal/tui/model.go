// Package tui is the interactive four-digit form behind `traingame play`.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"traingame/internal/output"
	"traingame/internal/shape"
	"traingame/internal/solver"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	focusStyle  = boxStyle.BorderForeground(lipgloss.Color("205"))
	headerStyle = lipgloss.NewStyle().Bold(true).MarginTop(1)
	exprStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	emptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1)
)

// Model holds the four inputs and the last search.
type Model struct {
	solver  *solver.Solver
	inputs  [shape.Operands]textinput.Model
	focus   int
	header  string
	results []string
	err     string
}

// New returns a form with the first field focused.
func New(s *solver.Solver) Model {
	m := Model{solver: s}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = "_"
		ti.CharLimit = 1
		ti.Width = 1
		m.inputs[i] = ti
	}
	m.inputs[0].Focus()
	return m
}

// Run starts the form on the terminal and blocks until the user quits.
func Run(s *solver.Solver) error {
	_, err := tea.NewProgram(New(s)).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}

	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyEnter:
		m.submit()
	case tea.KeyTab, tea.KeyRight:
		m.setFocus(m.focus + 1)
	case tea.KeyShiftTab, tea.KeyLeft:
		m.setFocus(m.focus - 1)
	case tea.KeyBackspace, tea.KeyDelete:
		if m.inputs[m.focus].Value() == "" {
			m.setFocus(m.focus - 1)
		} else {
			m.inputs[m.focus].SetValue("")
		}
	case tea.KeyRunes:
		if len(key.Runes) == 1 && key.Runes[0] >= '0' && key.Runes[0] <= '9' {
			m.inputs[m.focus].SetValue(string(key.Runes))
			m.err = ""
			m.setFocus(m.focus + 1)
		}
	}
	return m, nil
}

// setFocus ignores indexes outside the form.
func (m *Model) setFocus(i int) {
	if i < 0 || i >= len(m.inputs) {
		return
	}
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[m.focus].Focus()
}

func (m *Model) submit() {
	args := make([]string, len(m.inputs))
	for i, in := range m.inputs {
		args[i] = in.Value()
		if args[i] == "" {
			m.err = fmt.Sprintf("field %d is empty", i+1)
			m.setFocus(i)
			return
		}
	}
	ops, err := solver.ParseOperands(args)
	if err != nil {
		m.err = err.Error()
		return
	}

	m.err = ""
	m.header = fmt.Sprintf("Results for %s", ops)
	m.results = m.solver.Expressions(ops)
	for i := range m.inputs {
		m.inputs[i].SetValue("")
	}
	m.setFocus(0)
}

// Results returns the header and expressions of the last search.
func (m Model) Results() (string, []string) { return m.header, m.results }

// Err returns the current validation message, if any.
func (m Model) Err() string { return m.err }

// Focused returns the index of the focused field.
func (m Model) Focused() int { return m.focus }

// Value returns the text of field i.
func (m Model) Value(i int) string { return m.inputs[i].Value() }

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Make 10 from four digits"))
	b.WriteString("\n")

	boxes := make([]string, len(m.inputs))
	for i, in := range m.inputs {
		style := boxStyle
		if i == m.focus {
			style = focusStyle
		}
		boxes[i] = style.Render(in.View())
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, boxes...))

	if m.err != "" {
		b.WriteString("\n")
		b.WriteString(errStyle.Render(m.err))
	}

	if m.header != "" {
		b.WriteString("\n")
		b.WriteString(headerStyle.Render(m.header))
		if len(m.results) == 0 {
			b.WriteString("\n")
			b.WriteString(emptyStyle.Render(output.NoSolutions))
		}
		for _, r := range m.results {
			b.WriteString("\n")
			b.WriteString(exprStyle.Render(r))
		}
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("digits to fill • enter solve • tab/←/→ move • esc quit"))
	b.WriteString("\n")
	return b.String()
}
