package os

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEnsureDirCreatesMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "fresh")

	created, err := EnsureDir(dir, true)
	if err != nil {
		t.Fatalf("EnsureDir: %v", err)
	}
	if !created {
		t.Fatal("expected created=true for a missing directory")
	}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("expected %s to exist as a directory", dir)
	}
}

func TestEnsureDirRejectsNonEmptyWhenEmptyRequired(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "f"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := EnsureDir(dir, true)
	if err == nil {
		t.Fatal("expected an error for a non-empty directory")
	}
}

func TestIsDirEmpty(t *testing.T) {
	dir := t.TempDir()
	empty, err := IsDirEmpty(dir)
	if err != nil || !empty {
		t.Fatalf("expected empty=true, nil, got %v, %v", empty, err)
	}

	if err := os.WriteFile(filepath.Join(dir, "f"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	empty, err = IsDirEmpty(dir)
	if err != nil || empty {
		t.Fatalf("expected empty=false, nil, got %v, %v", empty, err)
	}
}
