package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalStorageSavePhoto(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir)
	if err != nil {
		t.Fatalf("unexpected error creating storage: %v", err)
	}

	path, err := store.SavePhoto(context.Background(), []byte("fake-png-bytes"), 42, ".PNG")
	if err != nil {
		t.Fatalf("unexpected error saving photo: %v", err)
	}
	if !strings.HasPrefix(path, "stores/42/") || !strings.HasSuffix(path, ".png") {
		t.Fatalf("unexpected photo path %q", path)
	}

	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(path)))
	if err != nil {
		t.Fatalf("expected photo file on disk: %v", err)
	}
	if string(data) != "fake-png-bytes" {
		t.Fatalf("unexpected file contents %q", data)
	}
}

func TestLocalStorageRejectsEmptyPayload(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error creating storage: %v", err)
	}
	if _, err := store.SavePhoto(context.Background(), nil, 1, "png"); err == nil {
		t.Fatal("expected error for empty payload")
	}
}

func TestDetectContentType(t *testing.T) {
	tests := []struct {
		ext  string
		want string
	}{
		{"jpg", "image/jpeg"},
		{".JPEG", "image/jpeg"},
		{"png", "image/png"},
		{"webp", "image/webp"},
		{"exe", ""},
	}
	for _, tt := range tests {
		if got := detectContentType(tt.ext); got != tt.want {
			t.Errorf("detectContentType(%q) = %q, want %q", tt.ext, got, tt.want)
		}
	}
}
