package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestUniquePath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "talk.srt")

	if got := UniquePath(path); got != path {
		t.Fatalf("fresh path should be unchanged, got %q", got)
	}

	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	first := UniquePath(path)
	if first != filepath.Join(dir, "talk-1.srt") {
		t.Fatalf("first collision = %q", first)
	}

	if err := os.WriteFile(first, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := UniquePath(path); got != filepath.Join(dir, "talk-2.srt") {
		t.Fatalf("second collision = %q", got)
	}
}

func TestCheckDirWritable(t *testing.T) {
	dir := t.TempDir()
	if err := CheckDirWritable(dir); err != nil {
		t.Fatalf("temp dir should be writable: %v", err)
	}
	if err := CheckDirWritable(filepath.Join(dir, "missing")); err == nil {
		t.Fatal("expected error for missing directory")
	}
	file := filepath.Join(dir, "file")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := CheckDirWritable(file); err == nil {
		t.Fatal("expected error for non-directory")
	}
}
