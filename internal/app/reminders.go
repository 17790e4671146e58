package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/piappstudio/digitaldiary/internal/model"
)

// reminderChangedMsg reports the outcome of a reminder write.
type reminderChangedMsg struct {
	err error
}

// createReminder returns a command that inserts a new reminder.
func (m Model) createReminder(r model.ReminderInfo) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		_, err := s.InsertReminder(context.Background(), &r)
		return reminderChangedMsg{err: err}
	}
}

// updateReminder returns a command that updates an existing reminder.
func (m Model) updateReminder(r model.ReminderInfo) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		err := s.UpdateReminder(context.Background(), r)
		return reminderChangedMsg{err: err}
	}
}

// deleteReminder returns a command that removes a reminder.
func (m Model) deleteReminder(id int64) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		err := s.DeleteReminder(context.Background(), id)
		return reminderChangedMsg{err: err}
	}
}
