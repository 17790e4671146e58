package entrylist

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/piappstudio/digitaldiary/internal/keys"
	"github.com/piappstudio/digitaldiary/internal/model"
	"github.com/piappstudio/digitaldiary/internal/store"
	"github.com/piappstudio/digitaldiary/internal/theme"
)

// EntriesLoadedMsg is sent when diary entries have been loaded from the store.
type EntriesLoadedMsg struct {
	Entries []model.UserEvent
}

// SelectedEntryMsg is sent when a user selects an entry to view details.
type SelectedEntryMsg struct {
	EventID int64
}

// sortModes defines the sort order cycle driven by Tab.
var sortModes = []store.EventSort{
	store.EventSortNewest,
	store.EventSortOldest,
	store.EventSortTitleAZ,
	store.EventSortTitleZA,
}

// Model is the diary entry list view component.
type Model struct {
	list        list.Model
	store       store.Store
	keys        *keys.KeyMap
	filter      store.EventFilter
	sortIndex   int
	searchMode  bool
	searchInput textinput.Model
	width       int
	height      int
}

// New creates a new entry list model.
func New(s store.Store, k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, ItemDelegate{}, width, height-2)
	l.Title = "Diary"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	si := textinput.New()
	si.Placeholder = "search entries..."
	si.Prompt = "/ "
	si.Width = width - 4

	return Model{
		list:        l,
		store:       s,
		keys:        k,
		filter:      store.EventFilter{Sort: store.EventSortNewest},
		searchInput: si,
		width:       width,
		height:      height,
	}
}

// Init returns a command that loads the initial set of entries.
func (m Model) Init() tea.Cmd {
	return m.LoadEntries()
}

// Update handles messages for the entry list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EntriesLoadedMsg:
		items := make([]list.Item, len(msg.Entries))
		for i, entry := range msg.Entries {
			items[i] = EntryItem{Entry: entry}
		}
		cmd := m.list.SetItems(items)
		return m, cmd

	case tea.KeyMsg:
		if m.searchMode {
			return m.handleSearchKeys(msg)
		}
		return m.handleNormalKeys(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleSearchKeys processes key input while in search mode.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchMode = false
		m.filter.Query = m.searchInput.Value()
		return m, m.LoadEntries()

	case "esc":
		m.searchMode = false
		m.searchInput.Reset()
		m.filter.Query = ""
		return m, m.LoadEntries()
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// handleNormalKeys processes key input in normal (non-search) mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		item, ok := m.list.SelectedItem().(EntryItem)
		if !ok {
			return m, nil
		}
		id := item.Entry.ID()
		return m, func() tea.Msg {
			return SelectedEntryMsg{EventID: id}
		}

	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.searchInput.Reset()
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.CycleSort):
		m.sortIndex = (m.sortIndex + 1) % len(sortModes)
		m.filter.Sort = sortModes[m.sortIndex]
		return m, m.LoadEntries()
	}

	// Delegate to the list for navigation keys (up/down/pgup/pgdn)
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// Selected returns the currently highlighted entry, or nil.
func (m Model) Selected() *model.UserEvent {
	item, ok := m.list.SelectedItem().(EntryItem)
	if !ok {
		return nil
	}
	entry := item.Entry
	return &entry
}

// View renders the entry list view.
func (m Model) View() string {
	if m.searchMode {
		searchBar := lipgloss.NewStyle().
			Foreground(theme.ColorWhite).
			Padding(0, 1).
			Render(m.searchInput.View())
		return lipgloss.JoinVertical(lipgloss.Left, searchBar, m.list.View())
	}

	if len(m.list.Items()) == 0 {
		return m.renderEmptyState()
	}

	return m.list.View()
}

// renderEmptyState shows guidance text when no entries are available.
func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if m.filter.Query != "" {
		return style.Render("No matching entries.\nTry a different search.")
	}

	return style.Render("Your diary is empty.\n\nPress n to write your first entry.")
}

// LoadEntries returns a tea.Cmd that queries the store with the current filter.
func (m Model) LoadEntries() tea.Cmd {
	filter := m.filter
	s := m.store
	return func() tea.Msg {
		entries, err := s.GetEntries(context.Background(), filter)
		if err != nil {
			return EntriesLoadedMsg{Entries: nil}
		}
		return EntriesLoadedMsg{Entries: entries}
	}
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
	m.searchInput.Width = width - 4
}
