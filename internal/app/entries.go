package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/piappstudio/digitaldiary/internal/model"
)

// entryChangedMsg reports the outcome of an entry write.
type entryChangedMsg struct {
	err error
}

// entryExportedMsg reports the outcome of an entry export.
type entryExportedMsg struct {
	path string
	err  error
}

// createEntry returns a command that copies the entry's attachments into the
// media directory and inserts the entry.
func (m Model) createEntry(entry model.UserEvent) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		if err := m.importMedia(&entry); err != nil {
			return entryChangedMsg{err: err}
		}
		_, err := s.InsertEntry(context.Background(), &entry)
		return entryChangedMsg{err: err}
	}
}

// updateEntry returns a command that replaces an entry's header, tags and
// media with the edited values. Newly referenced attachments are copied into
// the media directory first.
func (m Model) updateEntry(entry model.UserEvent) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		if err := m.importMedia(&entry); err != nil {
			return entryChangedMsg{err: err}
		}
		err := s.UpdateFullEntry(context.Background(), &entry)
		return entryChangedMsg{err: err}
	}
}

// importMedia copies attachments the user referenced from arbitrary paths
// into the managed media directory and rewrites each MediaPath to the stored
// copy. Paths already inside the media directory are left alone, so an edit
// does not duplicate attachments that survived from a previous save.
func (m Model) importMedia(entry *model.UserEvent) error {
	mediaRoot := filepath.Clean(m.cfg.MediaDir) + string(filepath.Separator)

	for i := range entry.Medias {
		path := entry.Medias[i].MediaPath
		if path == "" || strings.HasPrefix(filepath.Clean(path), mediaRoot) {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading attachment %s: %w", path, err)
		}
		stored, err := m.files.Save(data, filepath.Base(path))
		if err != nil {
			return err
		}
		entry.Medias[i].MediaPath = stored
	}
	return nil
}

// deleteEntry returns a command that removes an entry and its children.
func (m Model) deleteEntry(id int64) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		err := s.DeleteEntry(context.Background(), id)
		return entryChangedMsg{err: err}
	}
}

// exportEntry returns a command that writes the entry as an .eml file.
func (m Model) exportEntry(id int64) tea.Cmd {
	s := m.store
	exporter := m.exporter
	return func() tea.Msg {
		entry, err := s.GetEntryByID(context.Background(), id)
		if err != nil {
			return entryExportedMsg{err: err}
		}
		if entry == nil {
			return entryExportedMsg{err: fmt.Errorf("entry %d not found", id)}
		}
		path, err := exporter.ExportEntry(entry)
		return entryExportedMsg{path: path, err: err}
	}
}

// reloadDetail refreshes the detail view after a write when it is showing
// the affected entry.
func (m Model) reloadDetail() tea.Cmd {
	if m.currentView != ViewDetail {
		return nil
	}
	entry := m.detail.Entry()
	if entry == nil {
		return nil
	}
	return m.detail.Load(entry.ID())
}
