// Package storage persists uploaded class images on the local filesystem.
// Files are served statically under /uploads, so filenames are sanitized
// before they ever touch the disk.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var ErrInvalidName = errors.New("invalid image name")
var ErrEmptyContent = errors.New("empty image content")

// ImageStore writes uploaded images into a single directory.
type ImageStore struct {
	dir string
}

// NewImageStore creates the upload directory if needed and returns a store
// rooted at it.
func NewImageStore(dir string) (*ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &ImageStore{dir: dir}, nil
}

// Dir returns the directory the store writes into.
func (s *ImageStore) Dir() string { return s.dir }

// Save writes content under a sanitized version of name and returns the
// filename actually used. Existing files are never overwritten: on collision
// a numeric suffix is appended before the extension (foto.png, foto-1.png,
// foto-2.png, ...).
func (s *ImageStore) Save(name string, content []byte) (string, error) {
	clean := SanitizeFilename(name)
	if clean == "" {
		return "", ErrInvalidName
	}
	if len(content) == 0 {
		return "", ErrEmptyContent
	}

	ext := filepath.Ext(clean)
	stem := strings.TrimSuffix(clean, ext)

	final := clean
	for attempt := 1; ; attempt++ {
		if _, err := os.Stat(filepath.Join(s.dir, final)); os.IsNotExist(err) {
			break
		} else if err != nil {
			return "", fmt.Errorf("stat %s: %w", final, err)
		}
		final = fmt.Sprintf("%s-%d%s", stem, attempt, ext)
	}

	if err := os.WriteFile(filepath.Join(s.dir, final), content, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return final, nil
}

// SanitizeFilename strips any path components and replaces characters that
// are unsafe in filenames (path separators, shell metacharacters, control
// characters) with underscores.
func SanitizeFilename(name string) string {
	base := filepath.Base(strings.TrimSpace(name))
	if base == "." || base == string(filepath.Separator) {
		return ""
	}

	var b strings.Builder
	for _, r := range base {
		switch {
		case r < 0x20:
			b.WriteRune('_')
		case strings.ContainsRune(`<>:"/\|?*`, r):
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
