package utils

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestBytesToMB_RoundsToTwoDecimals(t *testing.T) {
	tests := []struct {
		name string
		size int64
		want float64
	}{
		{name: "zero", size: 0, want: 0},
		{name: "one megabyte", size: 1024 * 1024, want: 1},
		{name: "half megabyte", size: 512 * 1024, want: 0.5},
		{name: "small file rounds", size: 1024 * 1024 / 3, want: 0.33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BytesToMB(tt.size); got != tt.want {
				t.Errorf("BytesToMB(%d) = %v, want %v", tt.size, got, tt.want)
			}
		})
	}
}

func TestFileSizeMB_MissingFileIsZero(t *testing.T) {
	if got := FileSizeMB(filepath.Join(t.TempDir(), "nope")); got != 0 {
		t.Errorf("expected 0 for missing file, got %v", got)
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "present.txt")
	if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	if !FileExists(path) {
		t.Error("expected FileExists to report true for a regular file")
	}
	if FileExists(filepath.Join(dir, "absent.txt")) {
		t.Error("expected FileExists to report false for a missing file")
	}
	if FileExists(dir) {
		t.Error("expected FileExists to report false for a directory")
	}
}

func TestDirExists(t *testing.T) {
	dir := t.TempDir()

	if !DirExists(dir) {
		t.Error("expected DirExists to report true for an existing directory")
	}
	if DirExists(filepath.Join(dir, "absent")) {
		t.Error("expected DirExists to report false for a missing directory")
	}
}

func TestCopyFile_CreatesParentDirs(t *testing.T) {
	dir := t.TempDir()

	src := filepath.Join(dir, "src.db")
	content := []byte("database bytes")
	if err := os.WriteFile(src, content, 0o600); err != nil {
		t.Fatalf("write source: %v", err)
	}

	dst := filepath.Join(dir, "backups", "nested", "copy.db")
	if err := CopyFile(src, dst); err != nil {
		t.Fatalf("CopyFile error: %v", err)
	}

	copied, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read destination: %v", err)
	}
	if !bytes.Equal(copied, content) {
		t.Error("destination content differs from source")
	}
}

func TestCopyFile_MissingSource(t *testing.T) {
	dir := t.TempDir()

	err := CopyFile(filepath.Join(dir, "nope.db"), filepath.Join(dir, "copy.db"))
	if err == nil {
		t.Fatal("expected error for missing source file")
	}
}

func TestCopyFile_TruncatesExistingDestination(t *testing.T) {
	dir := t.TempDir()

	src := filepath.Join(dir, "src.db")
	if err := os.WriteFile(src, []byte("new"), 0o600); err != nil {
		t.Fatalf("write source: %v", err)
	}

	dst := filepath.Join(dir, "copy.db")
	if err := os.WriteFile(dst, []byte("old longer content"), 0o600); err != nil {
		t.Fatalf("write destination: %v", err)
	}

	if err := CopyFile(src, dst); err != nil {
		t.Fatalf("CopyFile error: %v", err)
	}

	copied, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read destination: %v", err)
	}
	if string(copied) != "new" {
		t.Errorf("expected destination to be truncated, got %q", copied)
	}
}
