package export

import (
	"bytes"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/emersion/go-message/mail"

	"github.com/piappstudio/digitaldiary/internal/model"
	"github.com/piappstudio/digitaldiary/internal/storage"
)

func TestExportEntryWritesEml(t *testing.T) {
	base := t.TempDir()
	files, err := storage.NewLocalStorage(filepath.Join(base, "media"))
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}
	mediaPath, err := files.Save([]byte("fake image bytes"), "sunset.png")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	e, err := New(files, filepath.Join(base, "exports"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	id := int64(7)
	entry := &model.UserEvent{
		EventInfo: model.EventInfo{
			EventID:     &id,
			Title:       "Evening Walk",
			Description: "Walked along the river at dusk.",
			Emotion:     "Calm",
			DateInfo:    "2026-02-05 18:30:00.000000Z",
		},
		Tags:   []model.TagInfo{{TagName: "Nature"}, {TagName: "Evening"}},
		Medias: []model.MediaInfo{{MediaPath: mediaPath, EventKey: id}},
	}

	path, err := e.ExportEntry(entry)
	if err != nil {
		t.Fatalf("ExportEntry: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	content := string(data)

	for _, want := range []string{
		"Subject: Evening Walk",
		"Walked along the river at dusk.",
		"Mood: Calm",
		"Tags: Nature, Evening",
		"sunset.png",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("export missing %q", want)
		}
	}
}

func TestExportEntryAttachesImageThumbnail(t *testing.T) {
	base := t.TempDir()
	files, err := storage.NewLocalStorage(filepath.Join(base, "media"))
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}

	// A real decodable image, large enough that the thumbnail shrinks it.
	img := image.NewRGBA(image.Rect(0, 0, 800, 600))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding test image: %v", err)
	}
	mediaPath, err := files.Save(buf.Bytes(), "lake.png")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	e, err := New(files, filepath.Join(base, "exports"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	id := int64(3)
	entry := &model.UserEvent{
		EventInfo: model.EventInfo{EventID: &id, Title: "Lake Trip",
			DateInfo: "2026-02-05 18:30:00.000000Z"},
		Medias: []model.MediaInfo{{MediaPath: mediaPath, EventKey: id}},
	}

	path, err := e.ExportEntry(entry)
	if err != nil {
		t.Fatalf("ExportEntry: %v", err)
	}

	names := attachmentNames(t, path)
	if len(names) != 2 {
		t.Fatalf("attachments = %v, want the image plus its thumbnail", names)
	}
	if !strings.HasSuffix(names[1], "_thumb.jpg") {
		t.Errorf("second attachment %q is not a thumbnail", names[1])
	}
}

// attachmentNames parses an exported .eml file and returns its attachment
// filenames in order.
func attachmentNames(t *testing.T, path string) []string {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening export: %v", err)
	}
	defer f.Close()

	mr, err := mail.CreateReader(f)
	if err != nil {
		t.Fatalf("parsing export: %v", err)
	}

	var names []string
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("reading part: %v", err)
		}
		if ah, ok := part.Header.(*mail.AttachmentHeader); ok {
			name, err := ah.Filename()
			if err != nil {
				t.Fatalf("attachment filename: %v", err)
			}
			names = append(names, name)
		}
	}
	return names
}

func TestExportEntryMissingAttachmentFails(t *testing.T) {
	base := t.TempDir()
	files, err := storage.NewLocalStorage(filepath.Join(base, "media"))
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}
	e, err := New(files, filepath.Join(base, "exports"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	id := int64(1)
	entry := &model.UserEvent{
		EventInfo: model.EventInfo{EventID: &id, Title: "Broken",
			DateInfo: "2026-02-05 18:30:00.000000Z"},
		Medias: []model.MediaInfo{{MediaPath: filepath.Join(base, "gone.png"), EventKey: id}},
	}

	if _, err := e.ExportEntry(entry); err == nil {
		t.Error("ExportEntry with missing attachment succeeded, want error")
	}

	// A failed export must not leave a partial file behind.
	entries, err := os.ReadDir(filepath.Join(base, "exports"))
	if err != nil {
		t.Fatalf("reading export dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("partial export left behind: %v", entries)
	}
}
