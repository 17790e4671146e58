// Package storage persists media attachments on the local filesystem.
// The database stores only the path strings returned from here; raw bytes
// never pass through the persistence layer.
package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/nfnt/resize"
)

// thumbnailSize is the bounding box for generated thumbnails.
const thumbnailSize = 300

// FileStorage saves bytes under a name and returns a locator, and reads
// bytes back from a locator.
type FileStorage interface {
	Save(data []byte, fileName string) (string, error)
	Read(path string) ([]byte, error)
	Delete(path string) error
}

// LocalStorage implements FileStorage on a local directory.
type LocalStorage struct {
	dir string
}

// NewLocalStorage creates the media directory if needed.
func NewLocalStorage(dir string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating media directory %s: %w", dir, err)
	}
	return &LocalStorage{dir: dir}, nil
}

// Save writes data under a unique name derived from fileName and returns the
// stored path. The uuid prefix keeps repeated attachments with the same
// original name from colliding.
func (l *LocalStorage) Save(data []byte, fileName string) (string, error) {
	name := uuid.New().String() + "_" + filepath.Base(fileName)
	path := filepath.Join(l.dir, name)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("saving media %s: %w", fileName, err)
	}
	return path, nil
}

// Read returns the bytes stored at path.
func (l *LocalStorage) Read(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading media %s: %w", path, err)
	}
	return data, nil
}

// Delete removes the file at path. A missing file is not an error.
func (l *LocalStorage) Delete(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting media %s: %w", path, err)
	}
	return nil
}

// IsImage reports whether the path looks like a decodable image.
func IsImage(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg", ".png":
		return true
	}
	return false
}

// Thumbnail decodes the image at path and returns a JPEG thumbnail fitting
// within a 300x300 box, preserving aspect ratio.
func Thumbnail(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening image %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding image %s: %w", path, err)
	}

	thumb := resize.Thumbnail(thumbnailSize, thumbnailSize, img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: 85}); err != nil {
		return nil, fmt.Errorf("encoding thumbnail for %s: %w", path, err)
	}
	return buf.Bytes(), nil
}
