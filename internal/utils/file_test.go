package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestHasTargetExtension(t *testing.T) {
	cases := map[string]bool{
		"a.png":      true,
		"dir.v2.png": true,
		".png":       true,
		"a.PNG":      false,
		"a.Png":      false,
		"a.jpg":      false,
		"a.png.bak":  false,
		"png":        false,
		"":           false,
	}
	for name, want := range cases {
		if got := HasTargetExtension(name); got != want {
			t.Errorf("HasTargetExtension(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "c")
	if err := EnsureDir(dir); err != nil {
		t.Fatalf("EnsureDir: %v", err)
	}
	if !DirExists(dir) {
		t.Fatal("directory was not created")
	}
	if err := EnsureDir(dir); err != nil {
		t.Errorf("EnsureDir should be idempotent: %v", err)
	}
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if !FileExists(file) || FileExists(dir) {
		t.Error("FileExists misclassified entries")
	}
	if !DirExists(dir) || DirExists(file) {
		t.Error("DirExists misclassified entries")
	}
	if FileExists(filepath.Join(dir, "missing")) || DirExists(filepath.Join(dir, "missing")) {
		t.Error("missing paths should not exist")
	}
}

func TestFormatFileSize(t *testing.T) {
	cases := map[int64]string{
		0:       "0 B",
		512:     "512 B",
		2048:    "2.0 KiB",
		5 << 20: "5.0 MiB",
		-1:      "0 B",
	}
	for in, want := range cases {
		if got := FormatFileSize(in); got != want {
			t.Errorf("FormatFileSize(%d) = %q, want %q", in, got, want)
		}
	}
}
