package help

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/piappstudio/digitaldiary/internal/keys"
	"github.com/piappstudio/digitaldiary/internal/theme"
)

// Model is the help overlay view.
type Model struct {
	keys   *keys.KeyMap
	help   help.Model
	width  int
	height int
}

// New creates a new help view model.
func New(keys *keys.KeyMap, width, height int) Model {
	h := help.New()
	h.Width = width
	return Model{
		keys:   keys,
		help:   h,
		width:  width,
		height: height,
	}
}

// CloseMsg asks the app to dismiss the help overlay.
type CloseMsg struct{}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		return m, func() tea.Msg { return CloseMsg{} }
	}
	return m, nil
}

// View renders the help overlay: a title, the full key listing and a hint on
// how to close the overlay.
func (m Model) View() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorTeal).
		Render("Digital Diary")
	subtitle := theme.HelpStyle.
		MarginBottom(1).
		Render("keys work the same in the diary and reminder views")

	m.help.Width = m.width - 4
	m.help.ShowAll = true
	helpText := m.help.View(m.keys)

	hint := theme.HelpStyle.
		MarginTop(1).
		Render("press ? or esc to close")

	content := lipgloss.JoinVertical(lipgloss.Left, title, subtitle, helpText, hint)

	return theme.DetailPanelStyle.
		Width(m.width - 4).
		Height(m.height - 4).
		Render(content)
}

// SetSize updates the help view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width - 4
}
