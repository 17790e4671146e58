// Package export writes diary entries to RFC 5322 .eml files so they can be
// opened, archived, or mailed with any standard mail client.
package export

import (
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/emersion/go-message/mail"

	"github.com/piappstudio/digitaldiary/internal/model"
	"github.com/piappstudio/digitaldiary/internal/storage"
)

// fromAddress identifies the application in exported messages.
var fromAddress = &mail.Address{Name: "Digital Diary", Address: "diary@localhost"}

// Exporter writes entries as .eml files into a directory.
type Exporter struct {
	files storage.FileStorage
	dir   string
}

// New creates an Exporter writing into dir, creating it if needed.
func New(files storage.FileStorage, dir string) (*Exporter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating export directory %s: %w", dir, err)
	}
	return &Exporter{files: files, dir: dir}, nil
}

// ExportEntry writes the entry, with its media files attached, as an .eml
// file and returns the written path.
func (e *Exporter) ExportEntry(entry *model.UserEvent) (string, error) {
	name := fmt.Sprintf("entry_%d_%s.eml", entry.ID(),
		time.Now().UTC().Format("20060102T150405"))
	path := filepath.Join(e.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating export file %s: %w", path, err)
	}
	defer f.Close()

	if err := e.writeMessage(f, entry); err != nil {
		os.Remove(path)
		return "", err
	}

	return path, nil
}

// writeMessage renders the entry as a MIME message with an inline text body
// and one attachment per media row.
func (e *Exporter) writeMessage(w io.Writer, entry *model.UserEvent) error {
	var h mail.Header
	h.SetDate(entryDate(entry))
	h.SetSubject(entry.EventInfo.Title)
	h.SetAddressList("From", []*mail.Address{fromAddress})
	h.SetAddressList("To", []*mail.Address{fromAddress})

	mw, err := mail.CreateWriter(w, h)
	if err != nil {
		return fmt.Errorf("creating message writer: %w", err)
	}
	defer mw.Close()

	tw, err := mw.CreateInline()
	if err != nil {
		return fmt.Errorf("creating inline part: %w", err)
	}
	var th mail.InlineHeader
	th.Set("Content-Type", "text/plain; charset=utf-8")
	pw, err := tw.CreatePart(th)
	if err != nil {
		return fmt.Errorf("creating text part: %w", err)
	}
	if _, err := io.WriteString(pw, entryBody(entry)); err != nil {
		return fmt.Errorf("writing entry body: %w", err)
	}
	pw.Close()
	tw.Close()

	for _, m := range entry.Medias {
		data, err := e.files.Read(m.MediaPath)
		if err != nil {
			return fmt.Errorf("reading attachment: %w", err)
		}

		var ah mail.AttachmentHeader
		ah.Set("Content-Type", attachmentType(m.MediaPath))
		ah.SetFilename(filepath.Base(m.MediaPath))
		aw, err := mw.CreateAttachment(ah)
		if err != nil {
			return fmt.Errorf("creating attachment part: %w", err)
		}
		if _, err := aw.Write(data); err != nil {
			return fmt.Errorf("writing attachment %s: %w", m.MediaPath, err)
		}
		aw.Close()

		if err := e.attachThumbnail(mw, m.MediaPath); err != nil {
			return err
		}
	}

	return nil
}

// attachThumbnail adds a small JPEG preview after an image attachment so the
// exported message shows something readable without opening the full file.
// Files that do not decode as images are skipped.
func (e *Exporter) attachThumbnail(mw *mail.Writer, path string) error {
	if !storage.IsImage(path) {
		return nil
	}
	thumb, err := storage.Thumbnail(path)
	if err != nil {
		return nil
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	var ah mail.AttachmentHeader
	ah.Set("Content-Type", "image/jpeg")
	ah.SetFilename(base + "_thumb.jpg")
	aw, err := mw.CreateAttachment(ah)
	if err != nil {
		return fmt.Errorf("creating thumbnail part: %w", err)
	}
	if _, err := aw.Write(thumb); err != nil {
		return fmt.Errorf("writing thumbnail for %s: %w", path, err)
	}
	aw.Close()
	return nil
}

// entryBody renders the plain-text body of an exported entry.
func entryBody(entry *model.UserEvent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", entry.EventInfo.Description)
	fmt.Fprintf(&b, "Mood: %s\n", entry.EventInfo.Emotion)
	fmt.Fprintf(&b, "Date: %s\n", entry.EventInfo.DateInfo)
	if len(entry.Tags) > 0 {
		names := make([]string, len(entry.Tags))
		for i, t := range entry.Tags {
			names[i] = t.TagName
		}
		fmt.Fprintf(&b, "Tags: %s\n", strings.Join(names, ", "))
	}
	return b.String()
}

// entryDate parses the entry's stored timestamp, falling back to now.
func entryDate(entry *model.UserEvent) time.Time {
	t, err := model.ParseDate(entry.EventInfo.DateInfo)
	if err != nil {
		return time.Now()
	}
	return t
}

// attachmentType guesses a MIME type from the file extension.
func attachmentType(path string) string {
	if t := mime.TypeByExtension(filepath.Ext(path)); t != "" {
		return t
	}
	return "application/octet-stream"
}
