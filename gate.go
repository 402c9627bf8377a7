package main

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/olivier-w/conveyor/internal/ui"
)

// gateModel asks for the password before handing the program over to the
// conveyor. Unlocking lasts for the process only.
type gateModel struct {
	input    textinput.Model
	password string
	conveyor ui.Model
	errMsg   string
	width    int
	height   int
}

func newGateModel(conveyor ui.Model, password string) gateModel {
	ti := textinput.New()
	ti.Placeholder = "password"
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	ti.CharLimit = 128
	ti.Width = 32
	ti.Focus()

	return gateModel{
		input:    ti,
		password: password,
		conveyor: conveyor,
	}
}

func (m gateModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tea.SetWindowTitle("conveyor"))
}

func (m gateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c":
			return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
		case "enter":
			if m.input.Value() != m.password {
				m.errMsg = "Incorrect password."
				m.input.Reset()
				return m, nil
			}
			return m.unlock()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// unlock swaps the conveyor in, replaying the last window size so it can lay
// itself out.
func (m gateModel) unlock() (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{m.conveyor.Init()}
	if m.width > 0 || m.height > 0 {
		w, h := m.width, m.height
		cmds = append(cmds, func() tea.Msg {
			return tea.WindowSizeMsg{Width: w, Height: h}
		})
	}
	return m.conveyor, tea.Batch(cmds...)
}

func (m gateModel) View() string {
	var b strings.Builder
	b.WriteString("\n  ")
	b.WriteString(gateHeaderStyle.Render("conveyor"))
	b.WriteString("\n\n  ")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.errMsg != "" {
		b.WriteString("\n  ")
		b.WriteString(gateErrorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}
	b.WriteString("\n  ")
	b.WriteString(gateHelpStyle.Render("enter unlock  esc quit"))
	b.WriteString("\n")
	return b.String()
}

var (
	gateHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"})
	gateHelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#999999", Dark: "#666666"})
	gateErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#A00000", Dark: "#FF8080"})
)
