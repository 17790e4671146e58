package reminderlist

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/piappstudio/digitaldiary/internal/model"
	"github.com/piappstudio/digitaldiary/internal/theme"
)

// DueSoonWindow defines how close a deadline must be before it is
// highlighted as due soon.
var DueSoonWindow = 48 * time.Hour

// ReminderItem wraps a model.ReminderInfo so it can be used in a bubbles/list.
type ReminderItem struct {
	Reminder model.ReminderInfo
}

// FilterValue returns the string used for fuzzy filtering.
func (i ReminderItem) FilterValue() string { return i.Reminder.Title }

// Title returns the reminder title for the list.
func (i ReminderItem) Title() string { return i.Reminder.Title }

// Description returns a short summary line for the list.
func (i ReminderItem) Description() string {
	parts := []string{deadlineLabel(i.Reminder)}
	if i.Reminder.IsReminderRequired {
		parts = append(parts, "alert on")
	}
	return strings.Join(parts, " | ")
}

// ItemDelegate implements list.ItemDelegate for rendering reminder lines.
type ItemDelegate struct{}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single reminder line with a color-coded deadline.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(ReminderItem)
	if !ok {
		return
	}

	r := i.Reminder
	isSelected := index == m.Index()

	overdue, dueSoon := deadlineState(r, time.Now())
	deadline := theme.DeadlineStyle(overdue, dueSoon).Render(deadlineLabel(r))

	bell := ""
	if r.IsReminderRequired {
		bell = lipgloss.NewStyle().
			Foreground(theme.ColorYellow).
			Render(" ♪")
	}

	line := fmt.Sprintf("%s %s%s", deadline, r.Title, bell)

	if isSelected {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}

// deadlineLabel renders the reminder's end date as a calendar day.
func deadlineLabel(r model.ReminderInfo) string {
	if r.EndDate == nil {
		return "no deadline"
	}
	if len(*r.EndDate) >= 10 {
		return (*r.EndDate)[:10]
	}
	return *r.EndDate
}

// deadlineState classifies the reminder's deadline relative to now.
func deadlineState(r model.ReminderInfo, now time.Time) (overdue, dueSoon bool) {
	if r.EndDate == nil {
		return false, false
	}
	end, err := model.ParseDate(*r.EndDate)
	if err != nil {
		return false, false
	}
	if now.After(end) {
		return true, false
	}
	return false, end.Sub(now) <= DueSoonWindow
}
