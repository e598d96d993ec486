package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"foto.png", "foto.png"},
		{"  foto.png  ", "foto.png"},
		{"../../etc/passwd", "passwd"},
		{`mi<clase>:"spin".png`, `mi_clase___spin_.png`},
		{"con\x00trol.jpg", "con_trol.jpg"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := SanitizeFilename(tc.in); got != tc.want {
			t.Fatalf("SanitizeFilename(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestImageStore_Save(t *testing.T) {
	store, err := NewImageStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewImageStore: %v", err)
	}

	name, err := store.Save("spin.png", []byte{0x89, 0x50})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if name != "spin.png" {
		t.Fatalf("expected spin.png, got %q", name)
	}
	if _, err := os.Stat(filepath.Join(store.Dir(), "spin.png")); err != nil {
		t.Fatalf("saved file missing: %v", err)
	}
}

func TestImageStore_Save_Collision(t *testing.T) {
	store, err := NewImageStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewImageStore: %v", err)
	}

	original := []byte("first")
	if _, err := store.Save("clase.png", original); err != nil {
		t.Fatalf("first save: %v", err)
	}

	name, err := store.Save("clase.png", []byte("second"))
	if err != nil {
		t.Fatalf("second save: %v", err)
	}
	if name != "clase-1.png" {
		t.Fatalf("expected clase-1.png, got %q", name)
	}

	name, err = store.Save("clase.png", []byte("third"))
	if err != nil {
		t.Fatalf("third save: %v", err)
	}
	if name != "clase-2.png" {
		t.Fatalf("expected clase-2.png, got %q", name)
	}

	// The original must be untouched.
	content, err := os.ReadFile(filepath.Join(store.Dir(), "clase.png"))
	if err != nil {
		t.Fatalf("read original: %v", err)
	}
	if string(content) != "first" {
		t.Fatalf("original file was overwritten: %q", content)
	}
}

func TestImageStore_Save_Rejects(t *testing.T) {
	store, err := NewImageStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewImageStore: %v", err)
	}

	if _, err := store.Save("   ", []byte("x")); err != ErrInvalidName {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
	if _, err := store.Save("foto.png", nil); err != ErrEmptyContent {
		t.Fatalf("expected ErrEmptyContent, got %v", err)
	}
}
