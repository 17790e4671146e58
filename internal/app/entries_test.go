package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/piappstudio/digitaldiary/internal/model"
	"github.com/piappstudio/digitaldiary/internal/storage"
	"github.com/piappstudio/digitaldiary/tests/testutil"
)

func mediaTestModel(t *testing.T) (Model, string) {
	t.Helper()

	mediaDir := filepath.Join(t.TempDir(), "media")
	files, err := storage.NewLocalStorage(mediaDir)
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}

	m := Model{
		store: testutil.NewTestStore(t),
		cfg:   &model.AppConfig{MediaDir: mediaDir},
		files: files,
	}
	return m, mediaDir
}

func TestImportMediaCopiesIntoMediaDir(t *testing.T) {
	m, mediaDir := mediaTestModel(t)

	src := filepath.Join(t.TempDir(), "sunset.png")
	content := []byte("not really a png")
	if err := os.WriteFile(src, content, 0o644); err != nil {
		t.Fatalf("writing source file: %v", err)
	}

	entry := model.UserEvent{
		EventInfo: model.EventInfo{Title: "Beach day"},
		Medias:    []model.MediaInfo{{MediaPath: src}},
	}
	if err := m.importMedia(&entry); err != nil {
		t.Fatalf("importMedia: %v", err)
	}

	stored := entry.Medias[0].MediaPath
	if stored == src {
		t.Fatal("media path was not rewritten to the stored copy")
	}
	if !strings.HasPrefix(stored, mediaDir+string(filepath.Separator)) {
		t.Errorf("stored path %q is outside the media directory %q", stored, mediaDir)
	}
	got, err := os.ReadFile(stored)
	if err != nil {
		t.Fatalf("reading stored copy: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Error("stored copy differs from the original file")
	}
}

func TestImportMediaKeepsManagedPaths(t *testing.T) {
	m, _ := mediaTestModel(t)

	stored, err := m.files.Save([]byte("already managed"), "walk.jpg")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	entry := model.UserEvent{
		EventInfo: model.EventInfo{Title: "Morning walk"},
		Medias:    []model.MediaInfo{{MediaPath: stored}},
	}
	if err := m.importMedia(&entry); err != nil {
		t.Fatalf("importMedia: %v", err)
	}
	if entry.Medias[0].MediaPath != stored {
		t.Errorf("managed path rewritten: %q -> %q", stored, entry.Medias[0].MediaPath)
	}
}

func TestImportMediaMissingFileFails(t *testing.T) {
	m, _ := mediaTestModel(t)

	entry := model.UserEvent{
		EventInfo: model.EventInfo{Title: "Lost photo"},
		Medias:    []model.MediaInfo{{MediaPath: "/nonexistent/photo.jpg"}},
	}
	if err := m.importMedia(&entry); err == nil {
		t.Fatal("importMedia succeeded for a missing file")
	}
}

func TestCreateEntryPersistsStoredPaths(t *testing.T) {
	m, mediaDir := mediaTestModel(t)

	src := filepath.Join(t.TempDir(), "hike.jpg")
	if err := os.WriteFile(src, []byte("trail"), 0o644); err != nil {
		t.Fatalf("writing source file: %v", err)
	}

	entry := model.UserEvent{
		EventInfo: model.EventInfo{
			Title:    "Forest hike",
			DateInfo: model.FormatDate(time.Now()),
		},
		Medias: []model.MediaInfo{{MediaPath: src}},
	}

	msg := m.createEntry(entry)()
	changed, ok := msg.(entryChangedMsg)
	if !ok {
		t.Fatalf("createEntry returned %T, want entryChangedMsg", msg)
	}
	if changed.err != nil {
		t.Fatalf("createEntry: %v", changed.err)
	}

	entries, err := m.store.GetAllEntries(context.Background())
	if err != nil {
		t.Fatalf("GetAllEntries: %v", err)
	}
	if len(entries) != 1 || len(entries[0].Medias) != 1 {
		t.Fatalf("entries = %+v, want one entry with one attachment", entries)
	}
	persisted := entries[0].Medias[0].MediaPath
	if !strings.HasPrefix(persisted, mediaDir+string(filepath.Separator)) {
		t.Errorf("persisted path %q is outside the media directory", persisted)
	}
}
