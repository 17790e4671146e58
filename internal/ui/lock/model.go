// Package lock implements the passcode screen shown before the diary opens
// when the app lock is enabled.
package lock

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/piappstudio/digitaldiary/internal/credential"
	"github.com/piappstudio/digitaldiary/internal/theme"
)

// UnlockedMsg is sent when the correct passcode has been entered.
type UnlockedMsg struct{}

// verifyResultMsg carries the outcome of a passcode check.
type verifyResultMsg struct {
	ok  bool
	err error
}

// Model is the passcode prompt view.
type Model struct {
	input    textinput.Model
	errText  string
	attempts int
	width    int
	height   int
}

// New creates a new lock screen model.
func New(width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "passcode"
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	ti.CharLimit = 32
	ti.Width = 24

	return Model{
		input:  ti,
		width:  width,
		height: height,
	}
}

// Init focuses the passcode input.
func (m Model) Init() tea.Cmd {
	return m.input.Focus()
}

// Update handles messages for the lock screen.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case verifyResultMsg:
		if msg.err != nil {
			m.errText = "keyring unavailable: " + msg.err.Error()
			return m, nil
		}
		if msg.ok {
			return m, func() tea.Msg { return UnlockedMsg{} }
		}
		m.attempts++
		m.errText = "Wrong passcode, try again"
		m.input.Reset()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			passcode := m.input.Value()
			return m, func() tea.Msg {
				ok, err := credential.VerifyPasscode(passcode)
				return verifyResultMsg{ok: ok, err: err}
			}
		case "ctrl+c":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the lock screen centered in the terminal.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	lines := []string{
		titleStyle.Render("Digital Diary is locked"),
		m.input.View(),
	}
	if m.errText != "" {
		lines = append(lines, lipgloss.NewStyle().
			Foreground(theme.ColorRed).
			Render(m.errText))
	}
	lines = append(lines, theme.HelpStyle.Render("enter to unlock, ctrl+c to quit"))

	box := theme.BorderStyle.
		Padding(1, 3).
		Render(lipgloss.JoinVertical(lipgloss.Center, lines...))

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(box)
}

// SetSize updates the lock screen dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
