package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/piappstudio/digitaldiary/internal/model"
	"github.com/piappstudio/digitaldiary/internal/store"
)

// watchStartedMsg carries the live-query channels once subscribed.
type watchStartedMsg struct {
	entries   <-chan []model.UserEvent
	reminders <-chan []model.ReminderInfo
	err       error
}

// entriesInvalidatedMsg is sent whenever a write touches a diary table.
type entriesInvalidatedMsg struct{}

// remindersInvalidatedMsg is sent whenever a write touches the reminder table.
type remindersInvalidatedMsg struct{}

// startWatches subscribes to the store's live queries. The payloads are
// discarded; the channels act as invalidation signals and each view reloads
// with its own filter applied.
func (m Model) startWatches() tea.Cmd {
	s := m.store
	ctx := m.watchCtx
	return func() tea.Msg {
		entries, err := s.WatchEntries(ctx, store.EventFilter{})
		if err != nil {
			return watchStartedMsg{err: err}
		}
		reminders, err := s.WatchReminders(ctx, store.ReminderFilter{})
		if err != nil {
			return watchStartedMsg{err: err}
		}
		return watchStartedMsg{entries: entries, reminders: reminders}
	}
}

// waitForEntryChange blocks until the diary tables change. The channel
// closes when the watch context is cancelled, which ends the subscription.
func (m Model) waitForEntryChange() tea.Cmd {
	ch := m.entryEvents
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return entriesInvalidatedMsg{}
	}
}

// waitForReminderChange blocks until the reminder table changes.
func (m Model) waitForReminderChange() tea.Cmd {
	ch := m.reminderEvents
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return remindersInvalidatedMsg{}
	}
}
