package app

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/piappstudio/digitaldiary/internal/export"
	"github.com/piappstudio/digitaldiary/internal/model"
	"github.com/piappstudio/digitaldiary/internal/remind"
	"github.com/piappstudio/digitaldiary/internal/storage"
	"github.com/piappstudio/digitaldiary/internal/store"
	"github.com/piappstudio/digitaldiary/internal/ui"
	"github.com/piappstudio/digitaldiary/internal/ui/detail"
	"github.com/piappstudio/digitaldiary/internal/ui/entryform"
	"github.com/piappstudio/digitaldiary/internal/ui/entrylist"
	helpview "github.com/piappstudio/digitaldiary/internal/ui/help"
	lockview "github.com/piappstudio/digitaldiary/internal/ui/lock"
	"github.com/piappstudio/digitaldiary/internal/ui/reminderform"
	"github.com/piappstudio/digitaldiary/internal/ui/reminderlist"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewLock ViewState = iota
	ViewDiary
	ViewReminders
	ViewDetail
	ViewEntryCreate
	ViewEntryEdit
	ViewReminderCreate
	ViewReminderEdit
	ViewHelp
)

// Model is the root Bubble Tea model that manages view routing, layout,
// and access to the persistence layer.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	store        store.Store
	keys         *KeyMap
	cfg          *model.AppConfig

	entryList    entrylist.Model
	reminderList reminderlist.Model
	detail       detail.Model
	entryForm    entryform.Model
	reminderForm reminderform.Model
	helpView     helpview.Model
	lockView     lockview.Model

	files    storage.FileStorage
	exporter *export.Exporter
	poller   *remind.Poller

	watchCtx       context.Context
	watchCancel    context.CancelFunc
	entryEvents    <-chan []model.UserEvent
	reminderEvents <-chan []model.ReminderInfo

	ready      bool
	alertText  string
	statusText string
}

// New creates a new root application model.
func New(s store.Store, cfg *model.AppConfig, files storage.FileStorage, exporter *export.Exporter) Model {
	keys := DefaultKeyMap()
	interval := time.Duration(cfg.Display.ReminderPollSec) * time.Second
	p := remind.New(s, interval)

	initialView := ViewDiary
	if cfg.AppLock {
		initialView = ViewLock
	}

	watchCtx, watchCancel := context.WithCancel(context.Background())

	return Model{
		currentView:  initialView,
		store:        s,
		keys:         keys,
		cfg:          cfg,
		watchCtx:     watchCtx,
		watchCancel:  watchCancel,
		entryList:    entrylist.New(s, keys, 80, 24),
		reminderList: reminderlist.New(s, keys, 80, 24),
		detail:       detail.New(s, keys, 80, 24),
		entryForm:    entryform.New(80, 24),
		reminderForm: reminderform.New(80, 24),
		helpView:     helpview.New(keys, 80, 24),
		lockView:     lockview.New(80, 24),
		files:        files,
		exporter:     exporter,
		poller:       p,
	}
}

// Init loads the initial views and starts the reminder poller. Behind the
// app lock only the passcode prompt is initialized.
func (m Model) Init() tea.Cmd {
	if m.currentView == ViewLock {
		return m.lockView.Init()
	}
	return tea.Batch(
		m.entryList.Init(),
		m.reminderList.Init(),
		m.startWatches(),
		m.poller.Start(),
	)
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.entryList.SetSize(contentWidth, contentHeight)
		m.reminderList.SetSize(contentWidth, contentHeight)
		m.detail.SetSize(contentWidth, contentHeight)
		m.entryForm.SetSize(contentWidth, contentHeight)
		m.reminderForm.SetSize(contentWidth, contentHeight)
		m.helpView.SetSize(contentWidth, contentHeight)
		m.lockView.SetSize(contentWidth, contentHeight)
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case lockview.UnlockedMsg:
		m.currentView = ViewDiary
		return m, tea.Batch(
			m.entryList.Init(),
			m.reminderList.Init(),
			m.startWatches(),
			m.poller.Start(),
		)

	case watchStartedMsg:
		if msg.err != nil {
			m.statusText = "live updates unavailable: " + msg.err.Error()
			return m, nil
		}
		m.entryEvents = msg.entries
		m.reminderEvents = msg.reminders
		return m, tea.Batch(m.waitForEntryChange(), m.waitForReminderChange())

	case entriesInvalidatedMsg:
		return m, tea.Batch(
			m.entryList.LoadEntries(),
			m.reloadDetail(),
			m.waitForEntryChange(),
		)

	case remindersInvalidatedMsg:
		// Reminder edits can re-open alert windows.
		m.poller.Refresh()
		return m, tea.Batch(
			m.reminderList.LoadReminders(),
			m.waitForReminderChange(),
		)

	case remind.AlertMsg:
		if msg.Error == nil && len(msg.Reminders) > 0 {
			m.alertText = alertBanner(msg.Reminders)
		}
		return m, m.poller.WaitForAlert()

	case entrylist.SelectedEntryMsg:
		m.previousView = m.currentView
		m.currentView = ViewDetail
		m.detail.SetLoading(true)
		return m, m.detail.Load(msg.EventID)

	case reminderlist.SelectedReminderMsg:
		r := m.reminderList.Selected()
		if r == nil {
			return m, nil
		}
		m.previousView = m.currentView
		m.currentView = ViewReminderEdit
		return m, m.reminderForm.StartEdit(*r)

	case detail.BackMsg:
		m.currentView = ViewDiary
		return m, nil

	case helpview.CloseMsg:
		m.currentView = m.previousView
		return m, nil

	case entryform.EntryCreatedMsg:
		m.currentView = ViewDiary
		return m, m.createEntry(msg.Entry)

	case entryform.EntryUpdatedMsg:
		m.currentView = ViewDiary
		return m, m.updateEntry(msg.Entry)

	case entryform.CancelMsg:
		m.currentView = m.previousView
		return m, nil

	case reminderform.ReminderCreatedMsg:
		m.currentView = ViewReminders
		return m, m.createReminder(msg.Reminder)

	case reminderform.ReminderUpdatedMsg:
		m.currentView = ViewReminders
		return m, m.updateReminder(msg.Reminder)

	case reminderform.CancelMsg:
		m.currentView = ViewReminders
		return m, nil

	// Successful writes reload through the table watches; the handlers here
	// only surface errors, with a direct reload as a fallback when the watch
	// subscription never came up.
	case entryChangedMsg:
		if msg.err != nil {
			m.statusText = msg.err.Error()
		} else {
			m.statusText = ""
		}
		if m.entryEvents == nil {
			return m, tea.Batch(m.entryList.LoadEntries(), m.reloadDetail())
		}
		return m, nil

	case reminderChangedMsg:
		if msg.err != nil {
			m.statusText = msg.err.Error()
		} else {
			m.statusText = ""
		}
		if m.reminderEvents == nil {
			m.poller.Refresh()
			return m, m.reminderList.LoadReminders()
		}
		return m, nil

	case entryExportedMsg:
		if msg.err != nil {
			m.statusText = "export failed: " + msg.err.Error()
		} else {
			m.statusText = "exported to " + msg.path
		}
		return m, nil

	case tea.KeyMsg:
		if m.currentView == ViewLock {
			break
		}
		if mm, cmd, handled := m.handleGlobalKeys(msg); handled {
			return mm, cmd
		}
	}

	return m.updateActiveView(msg)
}

// handleGlobalKeys processes keys that work regardless of the focused view.
// Returns handled=false when the key should fall through to the active view.
func (m Model) handleGlobalKeys(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	inForm := m.currentView == ViewEntryCreate || m.currentView == ViewEntryEdit ||
		m.currentView == ViewReminderCreate || m.currentView == ViewReminderEdit

	switch msg.String() {
	case "ctrl+c":
		m.poller.Stop()
		m.watchCancel()
		return m, tea.Quit, true

	case "q":
		if m.currentView == ViewDiary || m.currentView == ViewReminders {
			m.poller.Stop()
			m.watchCancel()
			return m, tea.Quit, true
		}

	case "?":
		if inForm {
			break
		}
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return m, nil, true
		}
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return m, nil, true

	case "1":
		if m.currentView == ViewReminders {
			m.currentView = ViewDiary
			m.alertText = ""
			return m, m.entryList.LoadEntries(), true
		}

	case "2":
		if m.currentView == ViewDiary {
			m.currentView = ViewReminders
			m.alertText = ""
			return m, m.reminderList.LoadReminders(), true
		}

	case "n":
		switch m.currentView {
		case ViewDiary:
			m.previousView = m.currentView
			m.currentView = ViewEntryCreate
			return m, m.entryForm.StartCreate(), true
		case ViewReminders:
			m.previousView = m.currentView
			m.currentView = ViewReminderCreate
			return m, m.reminderForm.StartCreate(), true
		}

	case "e":
		switch m.currentView {
		case ViewDiary:
			if entry := m.entryList.Selected(); entry != nil {
				m.previousView = m.currentView
				m.currentView = ViewEntryEdit
				return m, m.entryForm.StartEdit(*entry), true
			}
		case ViewDetail:
			if entry := m.detail.Entry(); entry != nil {
				m.previousView = m.currentView
				m.currentView = ViewEntryEdit
				return m, m.entryForm.StartEdit(*entry), true
			}
		case ViewReminders:
			if r := m.reminderList.Selected(); r != nil {
				m.previousView = m.currentView
				m.currentView = ViewReminderEdit
				return m, m.reminderForm.StartEdit(*r), true
			}
		}

	case "d":
		switch m.currentView {
		case ViewDiary:
			if entry := m.entryList.Selected(); entry != nil {
				return m, m.deleteEntry(entry.ID()), true
			}
		case ViewReminders:
			if r := m.reminderList.Selected(); r != nil {
				return m, m.deleteReminder(r.ID()), true
			}
		}

	case "x":
		switch m.currentView {
		case ViewDiary:
			if entry := m.entryList.Selected(); entry != nil {
				return m, m.exportEntry(entry.ID()), true
			}
		case ViewDetail:
			if entry := m.detail.Entry(); entry != nil {
				return m, m.exportEntry(entry.ID()), true
			}
		}
	}

	return m, nil, false
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewLock:
		m.lockView, cmd = m.lockView.Update(msg)
	case ViewDiary:
		m.entryList, cmd = m.entryList.Update(msg)
	case ViewReminders:
		m.reminderList, cmd = m.reminderList.Update(msg)
	case ViewDetail:
		m.detail, cmd = m.detail.Update(msg)
	case ViewEntryCreate, ViewEntryEdit:
		m.entryForm, cmd = m.entryForm.Update(msg)
	case ViewReminderCreate, ViewReminderEdit:
		m.reminderForm, cmd = m.reminderForm.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.currentView == ViewLock {
		return m.lockView.View()
	}

	header := m.layout.RenderHeader("Digital Diary", m.headerStatus())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewDiary:
		return m.entryList.View()
	case ViewReminders:
		return m.reminderList.View()
	case ViewDetail:
		return m.detail.View()
	case ViewEntryCreate, ViewEntryEdit:
		return m.entryForm.View()
	case ViewReminderCreate, ViewReminderEdit:
		return m.reminderForm.View()
	case ViewHelp:
		return m.helpView.View()
	default:
		return ""
	}
}

// headerStatus returns the right-hand header fragment: a due-reminder
// banner when one is pending, otherwise the active view name.
func (m Model) headerStatus() string {
	if m.alertText != "" {
		return m.alertText
	}
	switch m.currentView {
	case ViewReminders:
		return "reminders"
	default:
		return "diary"
	}
}

// alertBanner formats a short banner for newly due reminders.
func alertBanner(reminders []model.ReminderInfo) string {
	if len(reminders) == 1 {
		return "due: " + reminders[0].Title
	}
	return fmt.Sprintf("%d reminders due", len(reminders))
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	if m.statusText != "" &&
		(m.currentView == ViewDiary || m.currentView == ViewReminders) {
		return m.statusText
	}

	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewDetail:
		return "esc back | e edit | x export | j/k scroll"
	case ViewEntryCreate, ViewEntryEdit,
		ViewReminderCreate, ViewReminderEdit:
		return "enter submit | esc cancel"
	case ViewReminders:
		return "q quit | ? help | n new | e edit | d delete | / search | 1 diary | tab sort"
	default:
		return "q quit | ? help | n new | e edit | d delete | x export | / search | 2 reminders | tab sort"
	}
}
