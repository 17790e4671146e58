package detail

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/piappstudio/digitaldiary/internal/keys"
	"github.com/piappstudio/digitaldiary/internal/model"
	"github.com/piappstudio/digitaldiary/internal/storage"
	"github.com/piappstudio/digitaldiary/internal/store"
	"github.com/piappstudio/digitaldiary/internal/theme"
)

// BackMsg signals the parent to navigate back to the list view.
type BackMsg struct{}

// EntryLoadedMsg carries the loaded entry, nil when it no longer exists.
type EntryLoadedMsg struct {
	Entry *model.UserEvent
}

// Model is the diary entry detail view component.
type Model struct {
	entry    *model.UserEvent
	viewport viewport.Model
	store    store.Store
	keys     *keys.KeyMap
	width    int
	height   int
	loading  bool
}

// New creates a new detail view model.
func New(s store.Store, keys *keys.KeyMap, width, height int) Model {
	vp := viewport.New(width, height-2)
	vp.Style = lipgloss.NewStyle()

	return Model{
		viewport: vp,
		store:    s,
		keys:     keys,
		width:    width,
		height:   height,
	}
}

// Init returns the initial command for the detail view.
func (m Model) Init() tea.Cmd {
	return nil
}

// Load returns a tea.Cmd that fetches the entry with its children.
func (m Model) Load(id int64) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		entry, err := s.GetEntryByID(context.Background(), id)
		if err != nil {
			return EntryLoadedMsg{Entry: nil}
		}
		return EntryLoadedMsg{Entry: entry}
	}
}

// Update handles messages for the detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EntryLoadedMsg:
		m.entry = msg.Entry
		m.loading = false
		m.viewport.SetContent(m.renderContent())
		m.viewport.GotoTop()
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Back) {
			return m, func() tea.Msg {
				return BackMsg{}
			}
		}
	}

	// Delegate to viewport for scrolling (j/k, up/down, pgup/pgdn)
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// Entry returns the entry currently being displayed, or nil.
func (m Model) Entry() *model.UserEvent {
	return m.entry
}

// SetLoading sets the loading state.
func (m *Model) SetLoading(loading bool) {
	m.loading = loading
}

// View renders the detail view.
func (m Model) View() string {
	if m.loading {
		loadingStyle := lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray)
		return loadingStyle.Render("Loading entry...")
	}

	if m.entry == nil {
		emptyStyle := lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray)
		return emptyStyle.Render("Entry not found")
	}

	return m.viewport.View()
}

// renderContent builds the full detail content string for the viewport.
func (m Model) renderContent() string {
	if m.entry == nil {
		return ""
	}

	entry := m.entry
	var sections []string

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	sections = append(sections, titleStyle.Render(entry.EventInfo.Title))

	moodBadge := theme.MoodStyle(entry.EventInfo.Emotion).Render(entry.EventInfo.Emotion)
	dateStr := lipgloss.NewStyle().
		Foreground(theme.ColorGray).
		Render(entry.EventInfo.DateInfo)

	badgeLine := lipgloss.JoinHorizontal(lipgloss.Top, moodBadge, "  ", dateStr)
	sections = append(sections, badgeLine)

	if len(entry.Tags) > 0 {
		var chips []string
		for _, t := range entry.Tags {
			chips = append(chips, theme.TagStyle.Render(t.TagName))
		}
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, chips...))
	}

	sepStyle := lipgloss.NewStyle().Foreground(theme.ColorSubtle)
	separator := sepStyle.Render(strings.Repeat("─", min(m.width-4, 80)))
	sections = append(sections, "")
	sections = append(sections, separator)
	sections = append(sections, "")

	body := entry.EventInfo.Description
	if body == "" {
		body = lipgloss.NewStyle().
			Foreground(theme.ColorGray).
			Italic(true).
			Render("No description")
	}
	sections = append(sections, body)

	if len(entry.Medias) > 0 {
		sections = append(sections, "")
		sections = append(sections, separator)
		sections = append(sections, "")

		mediaHeaderStyle := lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.ColorWhite)
		sections = append(sections, mediaHeaderStyle.Render(
			fmt.Sprintf("Attachments (%d)", len(entry.Medias)),
		))

		nameStyle := lipgloss.NewStyle().Foreground(theme.ColorBlue)
		kindStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)
		for _, med := range entry.Medias {
			kind := "audio"
			if storage.IsImage(med.MediaPath) {
				kind = "image"
			}
			sections = append(sections, fmt.Sprintf(
				"  %s %s",
				nameStyle.Render(filepath.Base(med.MediaPath)),
				kindStyle.Render("("+kind+")"),
			))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetSize updates the detail view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height - 2
}
