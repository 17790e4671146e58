package entrylist

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/piappstudio/digitaldiary/internal/model"
	"github.com/piappstudio/digitaldiary/internal/theme"
)

// EntryItem wraps a model.UserEvent so it can be used in a bubbles/list.
type EntryItem struct {
	Entry model.UserEvent
}

// FilterValue returns the string used for fuzzy filtering.
func (i EntryItem) FilterValue() string { return i.Entry.EventInfo.Title }

// Title returns the entry title for the list.
func (i EntryItem) Title() string { return i.Entry.EventInfo.Title }

// Description returns a short summary line for the list.
func (i EntryItem) Description() string {
	parts := []string{
		i.Entry.EventInfo.Emotion,
		entryDay(i.Entry.EventInfo.DateInfo),
	}
	return strings.Join(parts, " | ")
}

// ItemDelegate implements list.ItemDelegate for rendering entry lines.
type ItemDelegate struct{}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single entry line: date, mood badge, title, tag chips and
// an attachment marker.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(EntryItem)
	if !ok {
		return
	}

	entry := i.Entry
	isSelected := index == m.Index()

	dateStr := lipgloss.NewStyle().
		Foreground(theme.ColorGray).
		Render(entryDay(entry.EventInfo.DateInfo))

	moodBadge := theme.MoodStyle(entry.EventInfo.Emotion).Render(entry.EventInfo.Emotion)

	tagBadge := ""
	if len(entry.Tags) > 0 {
		var names []string
		for _, t := range entry.Tags {
			names = append(names, t.TagName)
		}
		// Show max 2 tags to avoid overflow
		display := names
		if len(display) > 2 {
			display = display[:2]
			display = append(display, "…")
		}
		tagBadge = theme.TagStyle.Render(strings.Join(display, ","))
	}

	mediaBadge := ""
	if len(entry.Medias) > 0 {
		mediaBadge = lipgloss.NewStyle().
			Foreground(theme.ColorBlue).
			Render(fmt.Sprintf(" [%d]", len(entry.Medias)))
	}

	line := fmt.Sprintf("%s %s %s%s%s",
		dateStr, moodBadge, entry.EventInfo.Title, tagBadge, mediaBadge)

	if isSelected {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}

// entryDay extracts the calendar-day prefix of a stored timestamp.
func entryDay(dateInfo string) string {
	if len(dateInfo) >= 10 {
		return dateInfo[:10]
	}
	return dateInfo
}
