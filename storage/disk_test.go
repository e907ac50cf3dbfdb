package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveAudio(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("new disk store: %v", err)
	}

	path, err := store.SaveAudio(context.Background(), "vm-1", []byte("audio"))
	if err != nil {
		t.Fatalf("save audio: %v", err)
	}

	base := filepath.Base(path)
	if !strings.HasPrefix(base, "vm-1-") || !strings.HasSuffix(base, ".mp3") {
		t.Fatalf("unexpected file name %q", base)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "audio" {
		t.Fatalf("unexpected contents %q", data)
	}
}

func TestSaveAudio_RerunsDoNotOverwrite(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("new disk store: %v", err)
	}

	first, err := store.SaveAudio(context.Background(), "vm-1", []byte("first"))
	if err != nil {
		t.Fatalf("save first: %v", err)
	}
	second, err := store.SaveAudio(context.Background(), "vm-1", []byte("second"))
	if err != nil {
		t.Fatalf("save second: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct paths per run, got %q twice", first)
	}

	data, err := os.ReadFile(first)
	if err != nil {
		t.Fatalf("read first: %v", err)
	}
	if string(data) != "first" {
		t.Fatalf("first file rewritten to %q", data)
	}
}

func TestSaveAudio_RejectsEmptyPayload(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("new disk store: %v", err)
	}

	if _, err := store.SaveAudio(context.Background(), "vm-1", nil); err == nil {
		t.Fatalf("expected error for empty payload")
	}
}

func TestNewDiskStore_CreatesNestedDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data", "audio")

	if _, err := NewDiskStore(dir); err != nil {
		t.Fatalf("new disk store: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if !info.IsDir() {
		t.Fatalf("expected directory at %s", dir)
	}

	if _, err := NewDiskStore(""); err == nil {
		t.Fatalf("expected error for empty dir")
	}
}
